package repositories

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"tabi/internal/infra"
	"tabi/pkg/utils"
)

type PreferenceRepository interface {
	// GetPrepTime returns the stored prep time, or def when unset or unreadable.
	GetPrepTime(ctx context.Context, def int) int
	SetPrepTime(ctx context.Context, minutes int) error
}

type preferenceRepository struct {
	store  infra.KeyValueStore
	keys   StoreKeys
	logger *zap.Logger
}

func NewPreferenceRepository(store infra.KeyValueStore, keys StoreKeys, logger *zap.Logger) PreferenceRepository {
	return &preferenceRepository{store: store, keys: keys, logger: logger}
}

func (r *preferenceRepository) GetPrepTime(ctx context.Context, def int) int {
	raw, err := r.store.Get(ctx, r.keys.key(prepTimeKey))
	if err != nil {
		if !errors.Is(err, utils.ErrKeyNotFound) {
			r.logger.Warn("reading prep time", zap.Error(err))
		}
		return def
	}

	v, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		r.logger.Warn("ignoring corrupt prep time", zap.ByteString("value", raw))
		return def
	}
	return v
}

func (r *preferenceRepository) SetPrepTime(ctx context.Context, minutes int) error {
	return r.store.Set(ctx, r.keys.key(prepTimeKey), []byte(strconv.Itoa(minutes)))
}
