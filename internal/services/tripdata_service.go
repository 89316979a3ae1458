package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"tabi/internal/models/trip_models"
	"tabi/pkg/utils"
)

type TripDataServiceInterface interface {
	// FetchTripData loads both sheets. Any failure yields empty itinerary and packing lists.
	FetchTripData(ctx context.Context) trip_models.TripData
	// Reload fetches and installs the result unless a later-started load already installed one.
	Reload(ctx context.Context) trip_models.TripData
	// Current returns the installed snapshot, loading it on first use.
	Current(ctx context.Context) trip_models.TripData
}

type TripDataConfig struct {
	ItineraryURL string
	PackingURL   string
	Timeout      time.Duration
}

type TripDataService struct {
	HTTP       *http.Client
	cfg        TripDataConfig
	normalizer *utils.DateNormalizer
	logger     *zap.Logger

	started atomic.Uint64

	mu           sync.RWMutex
	installedSeq uint64
	current      trip_models.TripData
}

func NewTripDataService(cfg TripDataConfig, normalizer *utils.DateNormalizer, logger *zap.Logger) *TripDataService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &TripDataService{
		HTTP:       &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		normalizer: normalizer,
		logger:     logger,
		current:    emptyTripData(),
	}
}

func emptyTripData() trip_models.TripData {
	return trip_models.TripData{
		Itinerary: []trip_models.ItineraryEntry{},
		Packing:   []trip_models.PackingEntry{},
	}
}

func (s *TripDataService) FetchTripData(ctx context.Context) trip_models.TripData {
	var itineraryRows, packingRows []map[string]string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.fetchCSV(gctx, s.cfg.ItineraryURL)
		if err != nil {
			return fmt.Errorf("itinerary sheet: %w", err)
		}
		itineraryRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.fetchCSV(gctx, s.cfg.PackingURL)
		if err != nil {
			return fmt.Errorf("packing sheet: %w", err)
		}
		packingRows = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Warn("fetching trip data, continuing without remote data", zap.Error(err))
		return emptyTripData()
	}

	data := emptyTripData()
	for _, row := range itineraryRows {
		data.Itinerary = append(data.Itinerary, s.mapItineraryRow(row))
	}
	for i, row := range packingRows {
		data.Packing = append(data.Packing, mapPackingRow(i, row))
	}
	return data
}

func (s *TripDataService) Reload(ctx context.Context) trip_models.TripData {
	seq := s.started.Add(1)
	data := s.FetchTripData(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq > s.installedSeq {
		s.current = data
		s.installedSeq = seq
	} else {
		s.logger.Debug("dropping superseded trip data load", zap.Uint64("seq", seq), zap.Uint64("installed", s.installedSeq))
	}
	return s.current
}

func (s *TripDataService) Current(ctx context.Context) trip_models.TripData {
	s.mu.RLock()
	loaded := s.installedSeq > 0
	current := s.current
	s.mu.RUnlock()

	if !loaded {
		return s.Reload(ctx)
	}
	return current
}

func (s *TripDataService) mapItineraryRow(row map[string]string) trip_models.ItineraryEntry {
	entry := trip_models.ItineraryEntry{
		Date:     row["Date"],
		Time:     row["Time"],
		Activity: row["Activity"],
		Type:     row["Type"],
		Note:     row["Note"],
		RawLink:  row["GoogleMap"],
	}
	if entry.Type == "" {
		entry.Type = trip_models.DefaultEntryType
	}
	if entry.RawLink == "" {
		entry.RawLink = row["Link"]
	}
	if travel, ok := utils.ParseLooseInt(row["TravelTime"]); ok && travel > 0 {
		entry.TravelTimeMinutes = travel
	}
	entry.Timestamp = s.normalizer.CalculateTimestamp(entry.Date, entry.Time)
	return entry
}

func mapPackingRow(index int, row map[string]string) trip_models.PackingEntry {
	entry := trip_models.PackingEntry{
		ID:       fmt.Sprintf("item-%d", index),
		Category: row["Category"],
		Item:     row["Item"],
		Note:     row["Note"],
	}
	if entry.Category == "" {
		entry.Category = trip_models.DefaultPackingCategory
	}
	return entry
}

func (s *TripDataService) fetchCSV(ctx context.Context, url string) ([]map[string]string, error) {
	if url == "" {
		return nil, errors.New("no sheet url configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: bad status %s", utils.ErrUpstreamFailure, resp.Status)
	}
	return parseCSVRows(resp.Body)
}

// parseCSVRows reads a header row and returns one column->value map per data row.
// Rows whose cells are all blank are skipped; values are trimmed.
func parseCSVRows(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}

		row := make(map[string]string, len(header))
		blank := true
		for i, h := range header {
			if i >= len(record) || h == "" {
				continue
			}
			v := strings.TrimSpace(record[i])
			if v != "" {
				blank = false
			}
			row[h] = v
		}
		if !blank {
			rows = append(rows, row)
		}
	}
	return rows, nil
}
