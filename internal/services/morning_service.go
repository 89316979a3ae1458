package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"tabi/internal/models/response_models"
	"tabi/internal/models/trip_models"
	"tabi/internal/repositories"
	"tabi/pkg/utils"
)

type MorningConfig struct {
	TripStart       time.Time
	DefaultPrepTime int
}

type MorningServiceInterface interface {
	PrepTime(ctx context.Context) int
	SetPrepTime(ctx context.Context, minutes int) (int, error)
	AdjustPrepTime(ctx context.Context, delta int) (int, error)
	Countdown(now time.Time) trip_models.Countdown
	NextMorning(ctx context.Context, now time.Time) *trip_models.MorningPlan
	Status(ctx context.Context, now time.Time) response_models.HomeStatusResponse
}

type MorningService struct {
	cfg         MorningConfig
	itinerary   ItineraryServiceInterface
	preferences repositories.PreferenceRepository
	logger      *zap.Logger
}

func NewMorningService(
	cfg MorningConfig,
	itinerary ItineraryServiceInterface,
	preferences repositories.PreferenceRepository,
	logger *zap.Logger,
) MorningServiceInterface {
	if cfg.DefaultPrepTime < 0 {
		cfg.DefaultPrepTime = 0
	}
	return &MorningService{
		cfg:         cfg,
		itinerary:   itinerary,
		preferences: preferences,
		logger:      logger,
	}
}

func (s *MorningService) PrepTime(ctx context.Context) int {
	return s.preferences.GetPrepTime(ctx, s.cfg.DefaultPrepTime)
}

// SetPrepTime stores minutes clamped to zero and returns the stored value.
func (s *MorningService) SetPrepTime(ctx context.Context, minutes int) (int, error) {
	if minutes < 0 {
		minutes = 0
	}
	if err := s.preferences.SetPrepTime(ctx, minutes); err != nil {
		return 0, fmt.Errorf("%w: %v", utils.ErrStoreFailure, err)
	}
	return minutes, nil
}

func (s *MorningService) AdjustPrepTime(ctx context.Context, delta int) (int, error) {
	return s.SetPrepTime(ctx, s.PrepTime(ctx)+delta)
}

// Countdown is the time left until the trip starts, zero once it has.
func (s *MorningService) Countdown(now time.Time) trip_models.Countdown {
	diff := s.cfg.TripStart.Sub(now)
	if diff <= 0 {
		return trip_models.Countdown{}
	}
	return trip_models.Countdown{
		Days:    int(diff / (24 * time.Hour)),
		Hours:   int(diff % (24 * time.Hour) / time.Hour),
		Minutes: int(diff % time.Hour / time.Minute),
	}
}

func (s *MorningService) NextMorning(ctx context.Context, now time.Time) *trip_models.MorningPlan {
	return ProjectMorning(s.itinerary.Entries(ctx), s.PrepTime(ctx), now)
}

func (s *MorningService) Status(ctx context.Context, now time.Time) response_models.HomeStatusResponse {
	prep := s.PrepTime(ctx)
	resp := response_models.HomeStatusResponse{
		Now:       now.UnixMilli(),
		Countdown: s.Countdown(now),
	}
	if plan := ProjectMorning(s.itinerary.Entries(ctx), prep, now); plan != nil {
		resp.Morning = &response_models.MorningPlanResponse{
			Activity:      plan.Activity.Activity,
			ActivityTime:  utils.FormatClock(plan.ActivityTime),
			WakeUp:        utils.FormatClock(plan.WakeUpTime),
			Departure:     utils.FormatClock(plan.DepartureTime),
			WakeUpAt:      plan.WakeUpTime.UnixMilli(),
			DepartureAt:   plan.DepartureTime.UnixMilli(),
			IsTomorrow:    plan.IsTomorrow,
			PrepTime:      prep,
			TravelMinutes: plan.Activity.TravelTimeMinutes,
		}
	}
	return resp
}

// ProjectMorning plans the wake-up and departure for the first entry of sorted
// that starts strictly after now. It returns nil when nothing is left.
func ProjectMorning(sorted []trip_models.ItineraryEntry, prepMinutes int, now time.Time) *trip_models.MorningPlan {
	nowMillis := now.UnixMilli()
	for _, e := range sorted {
		if e.Timestamp <= nowMillis {
			continue
		}
		activityTime := time.UnixMilli(e.Timestamp).In(now.Location())
		departure := activityTime.Add(-time.Duration(e.TravelTimeMinutes) * time.Minute)
		return &trip_models.MorningPlan{
			Activity:      e,
			ActivityTime:  activityTime,
			DepartureTime: departure,
			WakeUpTime:    departure.Add(-time.Duration(prepMinutes) * time.Minute),
			IsTomorrow:    !utils.SameCalendarDay(now, activityTime),
		}
	}
	return nil
}
