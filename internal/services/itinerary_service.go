package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"
	"tabi/internal/models/response_models"
	"tabi/internal/models/trip_models"
	"tabi/internal/repositories"
	"tabi/pkg/utils"
)

type ItineraryServiceInterface interface {
	Entries(ctx context.Context) []trip_models.ItineraryEntry
	Itinerary(ctx context.Context) []response_models.EntryResponse
	Days(ctx context.Context) []response_models.DayResponse
	Day(ctx context.Context, date string) (*response_models.DayResponse, error)
	Destinations(activity, rawLink string) response_models.DestinationResponse
	ImportDay(ctx context.Context, date, rawText string) ([]trip_models.ItineraryEntry, error)
	ResetDay(ctx context.Context, date string) error
	ResetAll(ctx context.Context) error
}

type ItineraryService struct {
	tripData   TripDataServiceInterface
	overrides  repositories.OverrideRepository
	normalizer *utils.DateNormalizer
	logger     *zap.Logger
}

func NewItineraryService(
	tripData TripDataServiceInterface,
	overrides repositories.OverrideRepository,
	normalizer *utils.DateNormalizer,
	logger *zap.Logger,
) ItineraryServiceInterface {
	return &ItineraryService{
		tripData:   tripData,
		overrides:  overrides,
		normalizer: normalizer,
		logger:     logger,
	}
}

// Entries is the remote itinerary with day overrides applied, sorted by timestamp.
func (s *ItineraryService) Entries(ctx context.Context) []trip_models.ItineraryEntry {
	remote := s.tripData.Current(ctx).Itinerary
	return Reconcile(remote, s.overrides.LoadOverrides(ctx), s.normalizer)
}

func (s *ItineraryService) Itinerary(ctx context.Context) []response_models.EntryResponse {
	entries := s.Entries(ctx)
	out := make([]response_models.EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	return out
}

func (s *ItineraryService) Days(ctx context.Context) []response_models.DayResponse {
	days := GroupByDay(s.Entries(ctx), s.normalizer)
	out := make([]response_models.DayResponse, 0, len(days))
	for _, d := range days {
		out = append(out, toDayResponse(d))
	}
	return out
}

func (s *ItineraryService) Day(ctx context.Context, date string) (*response_models.DayResponse, error) {
	if date == "" {
		return nil, utils.ErrMissingDate
	}
	for _, d := range GroupByDay(s.Entries(ctx), s.normalizer) {
		if d.Date == date {
			resp := toDayResponse(d)
			return &resp, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", utils.ErrDayNotFound, date)
}

// Destinations resolves a link field and adds a map search for the activity
// when nothing could be resolved.
func (s *ItineraryService) Destinations(activity, rawLink string) response_models.DestinationResponse {
	dests, rule := ResolveDestinationsWithRule(activity, rawLink)
	resp := response_models.DestinationResponse{Destinations: dests, Rule: rule}
	if len(dests) == 0 && activity != "" {
		resp.Destinations = []trip_models.MapDestination{{Label: activity, URL: MapSearchURL(activity)}}
		resp.SearchFallback = true
	}
	return resp
}

// ImportDay replaces the whole day with the entries of a pasted JSON array.
func (s *ItineraryService) ImportDay(ctx context.Context, date, rawText string) ([]trip_models.ItineraryEntry, error) {
	if date == "" {
		return nil, utils.ErrMissingDate
	}

	var parsed any
	if err := json.Unmarshal([]byte(rawText), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrImportMalformed, err)
	}
	items, ok := parsed.([]any)
	if !ok {
		return nil, utils.ErrImportNotArray
	}

	entries := make([]trip_models.ItineraryEntry, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is not an object", utils.ErrImportMalformed, i)
		}
		entries = append(entries, entryFromImport(obj))
	}

	if err := s.overrides.SaveOverrideForDay(ctx, date, entries); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrStoreFailure, err)
	}
	s.logger.Info("imported day override", zap.String("date", date), zap.Int("entries", len(entries)))
	return s.overrides.LoadOverrides(ctx)[date], nil
}

func (s *ItineraryService) ResetDay(ctx context.Context, date string) error {
	if date == "" {
		return utils.ErrMissingDate
	}
	if err := s.overrides.DeleteOverrideForDay(ctx, date); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStoreFailure, err)
	}
	s.logger.Info("reset day override", zap.String("date", date))
	return nil
}

func (s *ItineraryService) ResetAll(ctx context.Context) error {
	if err := s.overrides.DeleteAllOverrides(ctx); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStoreFailure, err)
	}
	s.logger.Info("reset all day overrides")
	return nil
}

// Reconcile replaces every overridden day of remote wholesale and sorts the
// result by timestamp. Equal timestamps keep remote order, then override days
// in date order.
func Reconcile(remote []trip_models.ItineraryEntry, overrides trip_models.DayOverrides, normalizer *utils.DateNormalizer) []trip_models.ItineraryEntry {
	merged := make([]trip_models.ItineraryEntry, 0, len(remote))
	for _, e := range remote {
		if _, overridden := overrides[e.Date]; overridden {
			continue
		}
		e.Timestamp = normalizer.CalculateTimestamp(e.Date, e.Time)
		merged = append(merged, e)
	}

	for _, date := range sortedDateKeys(overrides, normalizer) {
		for _, e := range overrides[date] {
			e.Date = date
			e.Timestamp = normalizer.CalculateTimestamp(date, e.Time)
			merged = append(merged, e)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp < merged[j].Timestamp
	})
	return merged
}

// GroupByDay buckets entries by their date string. Days are ordered by
// normalized date, ties by first appearance.
func GroupByDay(entries []trip_models.ItineraryEntry, normalizer *utils.DateNormalizer) []trip_models.DaySchedule {
	index := map[string]int{}
	var days []trip_models.DaySchedule
	for _, e := range entries {
		key := e.Date
		if key == "" {
			key = trip_models.UndatedDayKey
		}
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, trip_models.DaySchedule{Date: key})
		}
		days[i].Entries = append(days[i].Entries, e)
	}

	sort.SliceStable(days, func(i, j int) bool {
		return dayKeyMillis(days[i].Date, normalizer) < dayKeyMillis(days[j].Date, normalizer)
	})
	for i := range days {
		days[i].DayNumber = i + 1
	}
	return days
}

func dayKeyMillis(key string, normalizer *utils.DateNormalizer) int64 {
	if key == trip_models.UndatedDayKey {
		key = ""
	}
	return normalizer.NormalizeDate(key).UnixMilli()
}

func sortedDateKeys(overrides trip_models.DayOverrides, normalizer *utils.DateNormalizer) []string {
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ti, tj := normalizer.NormalizeDate(keys[i]).UnixMilli(), normalizer.NormalizeDate(keys[j]).UnixMilli()
		if ti != tj {
			return ti < tj
		}
		return keys[i] < keys[j]
	})
	return keys
}

func toEntryResponse(e trip_models.ItineraryEntry) response_models.EntryResponse {
	return response_models.EntryResponse{
		ItineraryEntry: e,
		Kind:           e.Kind(),
		Destinations:   ResolveDestinations(e.Activity, e.RawLink),
	}
}

func toDayResponse(d trip_models.DaySchedule) response_models.DayResponse {
	entries := make([]response_models.EntryResponse, 0, len(d.Entries))
	for _, e := range d.Entries {
		entries = append(entries, toEntryResponse(e))
	}
	return response_models.DayResponse{Date: d.Date, DayNumber: d.DayNumber, Entries: entries}
}

// entryFromImport reads one pasted object. Values of any JSON type are
// accepted for the text fields; travel time may be a number or text.
func entryFromImport(obj map[string]any) trip_models.ItineraryEntry {
	e := trip_models.ItineraryEntry{
		Date:     importText(obj["Date"]),
		Time:     importText(obj["Time"]),
		Activity: importText(obj["Activity"]),
		Type:     importText(obj["Type"]),
		Note:     importText(obj["Note"]),
		RawLink:  importText(obj["Link"]),
	}
	if e.RawLink == "" {
		e.RawLink = importText(obj["GoogleMap"])
	}
	if e.Type == "" {
		e.Type = trip_models.DefaultEntryType
	}
	if travel, ok := utils.ParseLooseInt(importText(obj["travelTime"])); ok && travel > 0 {
		e.TravelTimeMinutes = travel
	}
	return e
}

func importText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}
