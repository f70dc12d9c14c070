package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisVisitorStore keeps the visitor blob in Redis. MaxAge maps to the
// key TTL, so the blob expires the way a max-age cookie would.
type RedisVisitorStore struct {
	Client *redis.Client
}

func NewRedisVisitorStore(client *redis.Client) *RedisVisitorStore {
	return &RedisVisitorStore{Client: client}
}

func (s *RedisVisitorStore) Read(ctx context.Context, key string) (string, error) {
	value, err := s.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *RedisVisitorStore) Write(ctx context.Context, key, value string, attrs Attributes) error {
	return s.Client.Set(ctx, key, value, time.Duration(attrs.MaxAge)*time.Second).Err()
}

var _ VisitorStore = (*RedisVisitorStore)(nil)
