package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"tabi/internal/models/response_models"
	mem "tabi/pkg/memcache"
	"tabi/pkg/utils"
)

const (
	openMeteoForecastURL = "https://api.open-meteo.com/v1/forecast"
	weatherCacheKey      = "weather:current"
)

type WeatherConfig struct {
	BaseURL   string
	Latitude  float64
	Longitude float64
	CacheTTL  time.Duration
}

type WeatherServiceInterface interface {
	Current(ctx context.Context) (*response_models.WeatherResponse, error)
}

type WeatherService struct {
	HTTP   *http.Client
	cfg    WeatherConfig
	cache  *mem.Store
	logger *zap.Logger
}

func NewWeatherService(cfg WeatherConfig, cache *mem.Store, logger *zap.Logger) WeatherServiceInterface {
	if cfg.BaseURL == "" {
		cfg.BaseURL = openMeteoForecastURL
	}
	return &WeatherService{
		HTTP:   &http.Client{Timeout: 10 * time.Second},
		cfg:    cfg,
		cache:  cache,
		logger: logger,
	}
}

type openMeteoResponse struct {
	Current struct {
		Temperature2m float64 `json:"temperature_2m"`
		WeatherCode   int     `json:"weather_code"`
	} `json:"current"`
}

// Current returns the rounded temperature and weather code at the trip location.
func (s *WeatherService) Current(ctx context.Context) (*response_models.WeatherResponse, error) {
	if cached, err := s.cache.Get(ctx, weatherCacheKey); err == nil {
		var w response_models.WeatherResponse
		if json.Unmarshal(cached, &w) == nil {
			return &w, nil
		}
	}

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(s.cfg.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(s.cfg.Longitude, 'f', -1, 64))
	q.Set("current", "temperature_2m,weather_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: weather status %s", utils.ErrUpstreamFailure, resp.Status)
	}

	var body openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decoding weather: %v", utils.ErrUpstreamFailure, err)
	}

	w := &response_models.WeatherResponse{
		Temp: int(math.Round(body.Current.Temperature2m)),
		Code: body.Current.WeatherCode,
	}
	if data, err := json.Marshal(w); err == nil {
		if err := s.cache.SetWithTTL(ctx, weatherCacheKey, data, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("caching weather", zap.Error(err))
		}
	}
	return w, nil
}
