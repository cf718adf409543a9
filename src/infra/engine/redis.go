package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/contre95/hotfolder/src/features/hotfolder"
	"github.com/redis/go-redis/v9"
)

const defaultStream = "hotfolder:ingest"

// RedisStream appends ingestion requests to a Redis stream consumed by the engine.
type RedisStream struct {
	client *redis.Client
	stream string
	maxLen int64
}

// RedisOptions configures NewRedisStream.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Stream   string
	MaxLen   int64
}

// NewRedisStream creates a stream transport. The connection is lazy.
func NewRedisStream(opts RedisOptions) *RedisStream {
	stream := opts.Stream
	if stream == "" {
		stream = defaultStream
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return &RedisStream{client: client, stream: stream, maxLen: opts.MaxLen}
}

func (r *RedisStream) Name() string {
	return "redis"
}

// Submit XADDs req to the stream.
func (r *RedisStream) Submit(ctx context.Context, req hotfolder.IngestRequest) error {
	if err := r.client.XAdd(ctx, r.addArgs(req, time.Now().UTC())).Err(); err != nil {
		return fmt.Errorf("failed to append to stream %s: %w", r.stream, err)
	}
	return nil
}

func (r *RedisStream) addArgs(req hotfolder.IngestRequest, at time.Time) *redis.XAddArgs {
	args := &redis.XAddArgs{
		Stream: r.stream,
		Values: map[string]any{
			"path":         req.Path,
			"folder_id":    req.FolderID,
			"priority":     string(req.Priority),
			"submitted_at": at.Format(time.RFC3339Nano),
		},
	}
	if r.maxLen > 0 {
		args.MaxLen = r.maxLen
		args.Approx = true
	}
	return args
}

// Health pings the Redis server.
func (r *RedisStream) Health(ctx context.Context) (bool, error) {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return false, err
	}
	return true, nil
}

// Close closes the Redis connection pool.
func (r *RedisStream) Close() error {
	return r.client.Close()
}
