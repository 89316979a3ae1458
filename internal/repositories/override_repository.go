package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"tabi/internal/infra"
	"tabi/internal/models/trip_models"
	"tabi/pkg/utils"
)

// OverrideRepository persists whole-day replacements of the itinerary as one
// JSON mapping from date key to entries.
type OverrideRepository interface {
	LoadOverrides(ctx context.Context) trip_models.DayOverrides
	SaveOverrideForDay(ctx context.Context, date string, entries []trip_models.ItineraryEntry) error
	DeleteOverrideForDay(ctx context.Context, date string) error
	DeleteAllOverrides(ctx context.Context) error
}

type overrideRepository struct {
	mu         sync.Mutex
	store      infra.KeyValueStore
	key        string
	normalizer *utils.DateNormalizer
	logger     *zap.Logger
}

func NewOverrideRepository(store infra.KeyValueStore, keys StoreKeys, normalizer *utils.DateNormalizer, logger *zap.Logger) OverrideRepository {
	return &overrideRepository{
		store:      store,
		key:        keys.key(overridesKey),
		normalizer: normalizer,
		logger:     logger,
	}
}

// LoadOverrides never fails: a missing, unreadable or corrupt value is "no overrides".
func (r *overrideRepository) LoadOverrides(ctx context.Context) trip_models.DayOverrides {
	overrides, err := r.load(ctx)
	if err != nil {
		r.logger.Warn("reading itinerary overrides", zap.Error(err))
		return trip_models.DayOverrides{}
	}
	return overrides
}

// load is the read side of a rewrite. A missing or corrupt value is empty;
// a failed read is returned so the caller does not overwrite state it never saw.
func (r *overrideRepository) load(ctx context.Context) (trip_models.DayOverrides, error) {
	raw, err := r.store.Get(ctx, r.key)
	if errors.Is(err, utils.ErrKeyNotFound) {
		return trip_models.DayOverrides{}, nil
	}
	if err != nil {
		return nil, err
	}

	overrides := trip_models.DayOverrides{}
	if err := json.Unmarshal(raw, &overrides); err != nil {
		r.logger.Warn("ignoring corrupt itinerary overrides", zap.Error(err))
		return trip_models.DayOverrides{}, nil
	}
	if overrides == nil {
		return trip_models.DayOverrides{}, nil
	}
	return overrides, nil
}

// SaveOverrideForDay files entries under date, repairing each entry's Date and
// recomputing its timestamp from date and the entry's own Time.
func (r *overrideRepository) SaveOverrideForDay(ctx context.Context, date string, entries []trip_models.ItineraryEntry) error {
	if date == "" {
		return utils.ErrMissingDate
	}

	stamped := make([]trip_models.ItineraryEntry, 0, len(entries))
	for _, e := range entries {
		e.Date = date
		e.Timestamp = r.normalizer.CalculateTimestamp(date, e.Time)
		stamped = append(stamped, e)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	overrides, err := r.load(ctx)
	if err != nil {
		return fmt.Errorf("reading overrides before save: %w", err)
	}
	overrides[date] = stamped
	return r.write(ctx, overrides)
}

func (r *overrideRepository) DeleteOverrideForDay(ctx context.Context, date string) error {
	if date == "" {
		return utils.ErrMissingDate
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	overrides, err := r.load(ctx)
	if err != nil {
		return fmt.Errorf("reading overrides before delete: %w", err)
	}
	if _, ok := overrides[date]; !ok {
		return nil
	}
	delete(overrides, date)
	return r.write(ctx, overrides)
}

func (r *overrideRepository) DeleteAllOverrides(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Delete(ctx, r.key)
}

func (r *overrideRepository) write(ctx context.Context, overrides trip_models.DayOverrides) error {
	data, err := json.Marshal(overrides)
	if err != nil {
		return fmt.Errorf("encoding overrides: %w", err)
	}
	return r.store.Set(ctx, r.key, data)
}
