package services

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"tabi/internal/models/trip_models"
	"tabi/internal/repositories"
	mem "tabi/pkg/memcache"
)

func TestProjectMorning(t *testing.T) {
	now := time.Date(2026, 3, 5, 20, 0, 0, 0, time.UTC)
	sorted := []trip_models.ItineraryEntry{
		{Activity: "dinner", Timestamp: ms(time.March, 5, 19, 0)},
		{Activity: "exactly now", Timestamp: now.UnixMilli()},
		{Activity: "castle", Timestamp: ms(time.March, 6, 9, 0), TravelTimeMinutes: 30},
		{Activity: "lunch", Timestamp: ms(time.March, 6, 12, 0)},
	}

	plan := ProjectMorning(sorted, 60, now)
	if plan == nil {
		t.Fatal("ProjectMorning = nil, want a plan")
	}
	if plan.Activity.Activity != "castle" {
		t.Errorf("activity = %q, want castle", plan.Activity.Activity)
	}
	T := time.UnixMilli(ms(time.March, 6, 9, 0))
	if !plan.DepartureTime.Equal(T.Add(-30 * time.Minute)) {
		t.Errorf("departure = %v, want T-30m", plan.DepartureTime)
	}
	if !plan.WakeUpTime.Equal(T.Add(-90 * time.Minute)) {
		t.Errorf("wake up = %v, want T-90m", plan.WakeUpTime)
	}
	if !plan.IsTomorrow {
		t.Error("IsTomorrow = false for an activity on the next day")
	}
}

func TestProjectMorningSameDayAndNone(t *testing.T) {
	now := time.Date(2026, 3, 6, 7, 0, 0, 0, time.UTC)
	sorted := []trip_models.ItineraryEntry{
		{Activity: "invalid", Timestamp: -1 << 63},
		{Activity: "castle", Timestamp: ms(time.March, 6, 9, 0)},
	}

	plan := ProjectMorning(sorted, 0, now)
	if plan == nil || plan.Activity.Activity != "castle" || plan.IsTomorrow {
		t.Fatalf("plan = %+v, want castle today", plan)
	}
	if !plan.WakeUpTime.Equal(plan.ActivityTime) {
		t.Errorf("zero travel and prep should wake at activity time, got %v", plan.WakeUpTime)
	}

	later := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	if got := ProjectMorning(sorted, 60, later); got != nil {
		t.Errorf("ProjectMorning after the last entry = %+v, want nil", got)
	}
	if got := ProjectMorning(nil, 60, later); got != nil {
		t.Errorf("ProjectMorning(nil) = %+v, want nil", got)
	}
}

func newTestMorningService(remote []trip_models.ItineraryEntry) MorningServiceInterface {
	store := mem.NewStore()
	keys := repositories.StoreKeys{Prefix: "osaka_"}
	itinerary := NewItineraryService(
		&stubTripData{data: trip_models.TripData{Itinerary: remote}},
		repositories.NewOverrideRepository(store, keys, testNormalizer, zap.NewNop()),
		testNormalizer, zap.NewNop(),
	)
	return NewMorningService(MorningConfig{
		TripStart:       time.Date(2026, 3, 5, 10, 20, 0, 0, time.UTC),
		DefaultPrepTime: 60,
	}, itinerary, repositories.NewPreferenceRepository(store, keys, zap.NewNop()), zap.NewNop())
}

func TestPrepTimeClampAndAdjust(t *testing.T) {
	svc := newTestMorningService(nil)
	ctx := context.Background()

	if got := svc.PrepTime(ctx); got != 60 {
		t.Errorf("default PrepTime = %d, want 60", got)
	}
	if got, err := svc.AdjustPrepTime(ctx, 10); err != nil || got != 70 {
		t.Errorf("AdjustPrepTime(+10) = %d, %v, want 70", got, err)
	}
	if got, err := svc.SetPrepTime(ctx, -5); err != nil || got != 0 {
		t.Errorf("SetPrepTime(-5) = %d, %v, want 0", got, err)
	}
	if got, err := svc.AdjustPrepTime(ctx, -10); err != nil || got != 0 {
		t.Errorf("AdjustPrepTime(-10) at zero = %d, %v, want 0", got, err)
	}
	if got := svc.PrepTime(ctx); got != 0 {
		t.Errorf("persisted PrepTime = %d, want 0", got)
	}
}

func TestCountdown(t *testing.T) {
	svc := newTestMorningService(nil)

	got := svc.Countdown(time.Date(2026, 3, 3, 8, 5, 30, 0, time.UTC))
	want := trip_models.Countdown{Days: 2, Hours: 2, Minutes: 14}
	if got != want {
		t.Errorf("Countdown = %+v, want %+v", got, want)
	}
	if got := svc.Countdown(time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)); got != (trip_models.Countdown{}) {
		t.Errorf("Countdown after start = %+v, want zero", got)
	}
}

func TestStatus(t *testing.T) {
	svc := newTestMorningService([]trip_models.ItineraryEntry{
		{Date: "3/6", Time: "9:00", Activity: "castle", TravelTimeMinutes: 30},
	})
	now := time.Date(2026, 3, 5, 21, 0, 0, 0, time.UTC)

	status := svc.Status(context.Background(), now)
	if status.Morning == nil {
		t.Fatal("Status.Morning = nil")
	}
	m := status.Morning
	if m.WakeUp != "07:30" || m.Departure != "08:30" || m.ActivityTime != "09:00" || !m.IsTomorrow {
		t.Errorf("morning = %+v", m)
	}
	if m.PrepTime != 60 || m.TravelMinutes != 30 {
		t.Errorf("morning prep/travel = %d/%d", m.PrepTime, m.TravelMinutes)
	}
	if status.Countdown != (trip_models.Countdown{}) {
		t.Errorf("countdown during the trip = %+v", status.Countdown)
	}
}
