package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"tabi/internal/models/response_models"
	"tabi/internal/models/trip_models"
	"tabi/internal/repositories"
	"tabi/pkg/utils"
)

type PackingServiceInterface interface {
	Checklist(ctx context.Context) response_models.PackingChecklistResponse
	Toggle(ctx context.Context, category, item string) (bool, error)
	Reset(ctx context.Context) error
}

type PackingService struct {
	tripData TripDataServiceInterface
	state    repositories.PackingStateRepository
	logger   *zap.Logger
}

func NewPackingService(tripData TripDataServiceInterface, state repositories.PackingStateRepository, logger *zap.Logger) PackingServiceInterface {
	return &PackingService{tripData: tripData, state: state, logger: logger}
}

// Checklist groups the current packing list by category in first-appearance
// order. Checked flags of items no longer on the list are kept but not counted.
func (s *PackingService) Checklist(ctx context.Context) response_models.PackingChecklistResponse {
	return BuildChecklist(s.tripData.Current(ctx).Packing, s.state.LoadChecked(ctx))
}

func (s *PackingService) Toggle(ctx context.Context, category, item string) (bool, error) {
	category, item = strings.TrimSpace(category), strings.TrimSpace(item)
	if item == "" {
		return false, utils.ErrInvalidInput
	}
	if category == "" {
		category = trip_models.DefaultPackingCategory
	}

	checked, err := s.state.Toggle(ctx, trip_models.CheckKey(category, item))
	if err != nil {
		return false, fmt.Errorf("%w: %v", utils.ErrStoreFailure, err)
	}
	return checked, nil
}

func (s *PackingService) Reset(ctx context.Context) error {
	if err := s.state.Reset(ctx); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStoreFailure, err)
	}
	s.logger.Info("cleared packing checks")
	return nil
}

func BuildChecklist(items []trip_models.PackingEntry, checked map[string]bool) response_models.PackingChecklistResponse {
	resp := response_models.PackingChecklistResponse{
		Categories: []response_models.PackingCategoryResponse{},
		Total:      len(items),
	}
	index := map[string]int{}
	for _, it := range items {
		category := it.Category
		if category == "" {
			category = trip_models.DefaultPackingCategory
		}
		i, ok := index[category]
		if !ok {
			i = len(resp.Categories)
			index[category] = i
			resp.Categories = append(resp.Categories, response_models.PackingCategoryResponse{Category: category})
		}

		isChecked := checked[trip_models.CheckKey(category, it.Item)]
		if isChecked {
			resp.Packed++
		}
		resp.Categories[i].Items = append(resp.Categories[i].Items, response_models.PackingItemResponse{
			ID:      it.ID,
			Item:    it.Item,
			Note:    it.Note,
			Checked: isChecked,
		})
	}
	return resp
}
