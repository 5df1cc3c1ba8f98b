package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements KeyHashStore on Redis hashes. Each collection is
// a single Redis hash, so Put/Remove map onto HSET/HDEL which are atomic
// per key. That atomicity is the only concurrency guarantee the service
// relies on.
type RedisStore struct {
	Client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client}
}

func (s *RedisStore) Get(ctx context.Context, collection, key string) ([]byte, error) {
	v, err := s.Client.HGet(ctx, collection, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return v, nil
}

func (s *RedisStore) Put(ctx context.Context, collection, key string, value []byte) error {
	return s.Client.HSet(ctx, collection, key, value).Err()
}

// Remove returns the number of hash fields actually deleted. HDEL reports
// zero when the key was already gone, which callers use for lost-update
// detection.
func (s *RedisStore) Remove(ctx context.Context, collection, key string) (int64, error) {
	return s.Client.HDel(ctx, collection, key).Result()
}

func (s *RedisStore) Values(ctx context.Context, collection string) ([][]byte, error) {
	vals, err := s.Client.HVals(ctx, collection).Result()
	if err != nil {
		return nil, err
	}
	out := make([][]byte, 0, len(vals))
	for _, v := range vals {
		out = append(out, []byte(v))
	}
	return out, nil
}

func (s *RedisStore) Count(ctx context.Context, collection string) (int64, error) {
	return s.Client.HLen(ctx, collection).Result()
}
