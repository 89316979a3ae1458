package services

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"go.uber.org/zap"
	"tabi/internal/models/trip_models"
	"tabi/internal/repositories"
	mem "tabi/pkg/memcache"
	"tabi/pkg/utils"
)

type stubTripData struct {
	data trip_models.TripData
}

func (s *stubTripData) FetchTripData(context.Context) trip_models.TripData { return s.data }
func (s *stubTripData) Reload(context.Context) trip_models.TripData        { return s.data }
func (s *stubTripData) Current(context.Context) trip_models.TripData       { return s.data }

var testNormalizer = utils.NewDateNormalizer(2026, time.UTC)

func ms(month time.Month, day, hour, minute int) int64 {
	return time.Date(2026, month, day, hour, minute, 0, 0, time.UTC).UnixMilli()
}

func newTestItineraryService(remote []trip_models.ItineraryEntry) (ItineraryServiceInterface, repositories.OverrideRepository) {
	overrides := repositories.NewOverrideRepository(mem.NewStore(), repositories.StoreKeys{Prefix: "osaka_"}, testNormalizer, zap.NewNop())
	svc := NewItineraryService(&stubTripData{data: trip_models.TripData{Itinerary: remote}}, overrides, testNormalizer, zap.NewNop())
	return svc, overrides
}

func TestReconcileReplacesWholeDay(t *testing.T) {
	remote := []trip_models.ItineraryEntry{
		{Date: "3/5", Time: "09:00", Activity: "remote breakfast"},
		{Date: "3/5", Time: "12:00", Activity: "remote lunch"},
		{Date: "3/5", Time: "18:00", Activity: "remote dinner"},
		{Date: "3/6", Time: "10:00", Activity: "USJ"},
	}
	overrides := trip_models.DayOverrides{
		"3/5": {
			{Date: "3/6", Time: "11:00", Activity: "X"},
			{Time: "08:00", Activity: "Y"},
		},
	}

	got := Reconcile(remote, overrides, testNormalizer)

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3: %+v", len(got), got)
	}
	want := []string{"Y", "X", "USJ"}
	for i, e := range got {
		if e.Activity != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, e.Activity, want[i])
		}
		if e.Activity != "USJ" && e.Date != "3/5" {
			t.Errorf("override entry %q has date %q, want 3/5", e.Activity, e.Date)
		}
	}
	if got[1].Timestamp != ms(time.March, 5, 11, 0) {
		t.Errorf("X timestamp = %d, want %d", got[1].Timestamp, ms(time.March, 5, 11, 0))
	}
}

func TestReconcileIsSortedAndStable(t *testing.T) {
	remote := []trip_models.ItineraryEntry{
		{Date: "3/7", Time: "10:00", Activity: "a"},
		{Date: "3/5", Time: "10:00", Activity: "b"},
		{Date: "3/5", Time: "10:00", Activity: "c"},
		{Date: "3/x", Time: "10:00", Activity: "invalid"},
		{Date: "", Time: "", Activity: "undated"},
		{Date: "3/6", Time: "", Activity: "midnight"},
	}
	overrides := trip_models.DayOverrides{
		"3/8": {{Time: "10:00", Activity: "d"}},
		"3/9": {{Time: "07:00", Activity: "e"}},
	}

	got := Reconcile(remote, overrides, testNormalizer)

	if !sort.SliceIsSorted(got, func(i, j int) bool { return got[i].Timestamp < got[j].Timestamp }) {
		t.Fatalf("not sorted: %+v", got)
	}
	order := make([]string, 0, len(got))
	for _, e := range got {
		order = append(order, e.Activity)
	}
	want := []string{"invalid", "undated", "b", "c", "midnight", "a", "d", "e"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
	if got[0].Timestamp != utils.InvalidTimestamp {
		t.Errorf("invalid entry timestamp = %d, want InvalidTimestamp", got[0].Timestamp)
	}
}

func TestReconcileOverrideForMissingDay(t *testing.T) {
	got := Reconcile(nil, trip_models.DayOverrides{"3/10": {{Time: "9:30", Activity: "extra day"}}}, testNormalizer)
	if len(got) != 1 || got[0].Date != "3/10" || got[0].Timestamp != ms(time.March, 10, 9, 30) {
		t.Errorf("got %+v", got)
	}
}

func TestGroupByDay(t *testing.T) {
	entries := []trip_models.ItineraryEntry{
		{Date: "3/6", Activity: "b"},
		{Date: "3/5", Activity: "a1"},
		{Date: "", Activity: "someday"},
		{Date: "3/5", Activity: "a2"},
	}

	days := GroupByDay(entries, testNormalizer)

	if len(days) != 3 {
		t.Fatalf("len(days) = %d, want 3", len(days))
	}
	wantDates := []string{trip_models.UndatedDayKey, "3/5", "3/6"}
	for i, d := range days {
		if d.Date != wantDates[i] || d.DayNumber != i+1 {
			t.Errorf("days[%d] = {%q %d}, want {%q %d}", i, d.Date, d.DayNumber, wantDates[i], i+1)
		}
	}
	if len(days[1].Entries) != 2 || days[1].Entries[0].Activity != "a1" {
		t.Errorf("3/5 entries = %+v", days[1].Entries)
	}
}

func TestImportDayRejectsBadInput(t *testing.T) {
	svc, _ := newTestItineraryService(nil)
	ctx := context.Background()

	tests := []struct {
		name string
		date string
		raw  string
		want error
	}{
		{"no date", "", `[]`, utils.ErrMissingDate},
		{"not json", "3/5", `[{"Activity":`, utils.ErrImportMalformed},
		{"object", "3/5", `{"Activity":"x"}`, utils.ErrImportNotArray},
		{"string", "3/5", `"hello"`, utils.ErrImportNotArray},
		{"element not object", "3/5", `[1, 2]`, utils.ErrImportMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ImportDay(ctx, tt.date, tt.raw)
			if !errors.Is(err, tt.want) {
				t.Errorf("ImportDay error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestImportDayReplacesDay(t *testing.T) {
	remote := []trip_models.ItineraryEntry{
		{Date: "3/5", Time: "09:00", Activity: "remote"},
		{Date: "3/6", Time: "09:00", Activity: "USJ"},
	}
	svc, _ := newTestItineraryService(remote)
	ctx := context.Background()

	saved, err := svc.ImportDay(ctx, "3/5", `[
		{"Date":"3/9","Time":"10:00","Activity":"Castle","travelTime":20,"Link":"Castle|https://c.example"},
		{"Time":"13:00","Activity":"Lunch","Type":"預約","travelTime":"15"}
	]`)
	if err != nil {
		t.Fatalf("ImportDay: %v", err)
	}
	if len(saved) != 2 || saved[0].Date != "3/5" || saved[0].Type != trip_models.DefaultEntryType {
		t.Fatalf("saved = %+v", saved)
	}
	if saved[0].TravelTimeMinutes != 20 || saved[1].TravelTimeMinutes != 15 {
		t.Errorf("travel times = %d, %d", saved[0].TravelTimeMinutes, saved[1].TravelTimeMinutes)
	}

	items := svc.Itinerary(ctx)
	if len(items) != 3 {
		t.Fatalf("len(itinerary) = %d, want 3", len(items))
	}
	if items[0].Activity != "Castle" || items[0].Destinations[0].Label != "Castle" {
		t.Errorf("first item = %+v", items[0])
	}
	if items[1].Kind != trip_models.KindReservation {
		t.Errorf("Lunch kind = %q, want reservation", items[1].Kind)
	}

	if err := svc.ResetDay(ctx, "3/5"); err != nil {
		t.Fatalf("ResetDay: %v", err)
	}
	if got := svc.Entries(ctx); len(got) != 2 || got[0].Activity != "remote" {
		t.Errorf("after reset = %+v", got)
	}
}

func TestResetAll(t *testing.T) {
	svc, overrides := newTestItineraryService(nil)
	ctx := context.Background()

	for _, d := range []string{"3/5", "3/6"} {
		if _, err := svc.ImportDay(ctx, d, `[{"Activity":"x"}]`); err != nil {
			t.Fatalf("ImportDay(%s): %v", d, err)
		}
	}
	if err := svc.ResetAll(ctx); err != nil {
		t.Fatalf("ResetAll: %v", err)
	}
	if got := overrides.LoadOverrides(ctx); len(got) != 0 {
		t.Errorf("overrides after ResetAll = %v", got)
	}
}

func TestDay(t *testing.T) {
	svc, _ := newTestItineraryService([]trip_models.ItineraryEntry{{Date: "3/5", Time: "10:00", Activity: "a"}})
	ctx := context.Background()

	day, err := svc.Day(ctx, "3/5")
	if err != nil || day.DayNumber != 1 || len(day.Entries) != 1 {
		t.Errorf("Day(3/5) = %+v, %v", day, err)
	}
	if _, err := svc.Day(ctx, "3/9"); !errors.Is(err, utils.ErrDayNotFound) {
		t.Errorf("Day(3/9) error = %v, want ErrDayNotFound", err)
	}
}

func TestDestinationsSearchFallback(t *testing.T) {
	svc, _ := newTestItineraryService(nil)

	resp := svc.Destinations("Osaka Castle", "")
	if !resp.SearchFallback || len(resp.Destinations) != 1 {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.Rule != trip_models.RuleNone || resp.Destinations[0].URL != MapSearchURL("Osaka Castle") {
		t.Errorf("resp = %+v", resp)
	}

	resp = svc.Destinations("Osaka Castle", "https://c.example")
	if resp.SearchFallback || resp.Destinations[0].Label != "Open Map" {
		t.Errorf("resp = %+v", resp)
	}
}
