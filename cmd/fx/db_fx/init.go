package db_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"tabi/internal/config"
	"tabi/internal/infra"
	"tabi/internal/repositories"
)

// Module opens the local state store and the repositories on top of it.
var Module = fx.Provide(
	provideStore,
	provideStoreKeys,
	repositories.NewOverrideRepository,
	repositories.NewPackingStateRepository,
	repositories.NewPreferenceRepository,
)

func provideStore(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (infra.KeyValueStore, error) {
	store, err := infra.NewKeyValueStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return store.Close()
		},
	})
	return store, nil
}

func provideStoreKeys(cfg *config.Config) repositories.StoreKeys {
	return repositories.StoreKeys{Prefix: cfg.StoreKeyPrefix}
}
