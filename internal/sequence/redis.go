package sequence

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps counters as Redis integers. INCR is atomic on the server,
// so durability depends on the Redis persistence settings (AOF recommended).
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore constructs a Redis counter store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "counter:"}
}

// Increment runs INCR, which creates the key at zero when missing.
func (s *RedisStore) Increment(ctx context.Context, category string) (int64, error) {
	return s.client.Incr(ctx, s.prefix+category).Result()
}

// Current reads the counter without modifying it.
func (s *RedisStore) Current(ctx context.Context, category string) (int64, error) {
	seq, err := s.client.Get(ctx, s.prefix+category).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return seq, err
}

var _ Store = (*RedisStore)(nil)
