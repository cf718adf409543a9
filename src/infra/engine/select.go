package engine

import (
	"fmt"

	"github.com/contre95/hotfolder/src/features/config"
	"github.com/contre95/hotfolder/src/infra/queue"
)

// FromConfig builds the client for the configured transport. q backs the local transport.
func FromConfig(cfg config.Engine, q *queue.InMemoryQueue) (Client, error) {
	switch cfg.Transport {
	case "", "http":
		return NewHTTPClient(cfg.URL, cfg.Timeout()), nil
	case "redis":
		return NewRedisStream(RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Stream:   cfg.Redis.Stream,
			MaxLen:   cfg.Redis.MaxLen,
		}), nil
	case "local":
		return NewLocal(q), nil
	default:
		return nil, fmt.Errorf("unknown engine transport %q", cfg.Transport)
	}
}
