package infra

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"tabi/internal/config"
	mem "tabi/pkg/memcache"
	"tabi/pkg/utils"
)

// KeyValueStore is the durable local state the trip overrides, packing checks
// and preferences live in. Get returns utils.ErrKeyNotFound for absent keys.
// Set replaces the whole value under key in one write.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NewKeyValueStore picks the backend named by STORE_BACKEND.
func NewKeyValueStore(cfg *config.Config, logger *zap.Logger) (KeyValueStore, error) {
	logger.Info("opening key-value store", zap.String("backend", cfg.StoreBackend))

	switch cfg.StoreBackend {
	case "", "disk":
		return NewDiskStore(cfg.StorePath)
	case "memory":
		return mem.NewStore(), nil
	case "redis":
		return NewRedisStore(cfg.RedisURL)
	case "postgres":
		db, err := InitPostgresql(cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(db)
	default:
		return nil, fmt.Errorf("%w: store backend %q", utils.ErrUnsupportedConfig, cfg.StoreBackend)
	}
}
