package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"tabi/internal/infra"
	"tabi/pkg/utils"
)

// PackingStateRepository keeps the checked flags of packing items, keyed by
// "{category}-{item}" and independent of the packing list itself.
type PackingStateRepository interface {
	LoadChecked(ctx context.Context) map[string]bool
	Toggle(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context) error
}

type packingStateRepository struct {
	mu     sync.Mutex
	store  infra.KeyValueStore
	key    string
	logger *zap.Logger
}

func NewPackingStateRepository(store infra.KeyValueStore, keys StoreKeys, logger *zap.Logger) PackingStateRepository {
	return &packingStateRepository{
		store:  store,
		key:    keys.key(packingStateKey),
		logger: logger,
	}
}

func (r *packingStateRepository) LoadChecked(ctx context.Context) map[string]bool {
	checked, err := r.load(ctx)
	if err != nil {
		r.logger.Warn("reading packing state", zap.Error(err))
		return map[string]bool{}
	}
	return checked
}

// load returns an empty mapping for a missing or corrupt value and the error for a failed read.
func (r *packingStateRepository) load(ctx context.Context) (map[string]bool, error) {
	raw, err := r.store.Get(ctx, r.key)
	if errors.Is(err, utils.ErrKeyNotFound) {
		return map[string]bool{}, nil
	}
	if err != nil {
		return nil, err
	}

	checked := map[string]bool{}
	if err := json.Unmarshal(raw, &checked); err != nil || checked == nil {
		r.logger.Warn("ignoring corrupt packing state", zap.Error(err))
		return map[string]bool{}, nil
	}
	return checked, nil
}

// Toggle flips the flag under key and returns the new value.
func (r *packingStateRepository) Toggle(ctx context.Context, key string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	checked, err := r.load(ctx)
	if err != nil {
		return false, fmt.Errorf("reading packing state before toggle: %w", err)
	}
	checked[key] = !checked[key]

	data, err := json.Marshal(checked)
	if err != nil {
		return false, fmt.Errorf("encoding packing state: %w", err)
	}
	if err := r.store.Set(ctx, r.key, data); err != nil {
		return false, err
	}
	return checked[key], nil
}

func (r *packingStateRepository) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Set(ctx, r.key, []byte("{}"))
}
