package notify

import (
	"context"
	"errors"

	"github.com/contre95/hotfolder/src/features/hotfolder"
)

// Fanout publishes to every sink and joins their errors. A failing sink does not
// stop the others.
type Fanout []hotfolder.Notifier

func (f Fanout) Publish(ctx context.Context, event hotfolder.WatcherEvent) error {
	var errs []error
	for _, sink := range f {
		if sink == nil {
			continue
		}
		if err := sink.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
