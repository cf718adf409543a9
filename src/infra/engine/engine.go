// Package engine holds the Processing Engine clients used by the event forwarder.
package engine

import (
	"context"

	"github.com/contre95/hotfolder/src/features/hotfolder"
)

// Client is a Processing Engine transport.
type Client interface {
	hotfolder.Engine
	// Health reports whether the engine is reachable and healthy.
	Health(ctx context.Context) (bool, error)
	Name() string
}
