package infra

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"tabi/pkg/utils"
)

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing REDIS_URL: %w", err)
	}
	return &RedisStore{client: redis.NewClient(opts)}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, utils.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrStoreFailure, err)
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStoreFailure, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStoreFailure, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
