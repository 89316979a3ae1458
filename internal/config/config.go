package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// AppName names the optional config file (tabi.yaml, tabi.toml, ...).
	AppName = "tabi"

	tripStartLayout = "2006-01-02T15:04:05"

	defaultItinerarySheetURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vTaKs1HDt0BLIkLSjs7XBhJohWzu1KGyH-rIDWscT-6vG5AE4XTqCEJfIaSZurURlHMZkBeTW4teySq/pub?gid=207150597&single=true&output=csv"
	defaultPackingSheetURL   = "https://docs.google.com/spreadsheets/d/e/2PACX-1vTaKs1HDt0BLIkLSjs7XBhJohWzu1KGyH-rIDWscT-6vG5AE4XTqCEJfIaSZurURlHMZkBeTW4teySq/pub?gid=1273873651&single=true&output=csv"
)

type Config struct {
	Port   string
	AppEnv string

	TripYear  int
	TripStart time.Time

	ItinerarySheetURL string
	PackingSheetURL   string
	FetchTimeout      time.Duration

	StoreBackend   string
	StorePath      string
	StoreKeyPrefix string
	RedisURL       string
	PostgresURL    string

	AIProvider   string
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string

	WeatherLatitude  float64
	WeatherLongitude float64
	WeatherCacheTTL  time.Duration

	ExchangeRate    float64
	DefaultPrepTime int

	CORSOrigins            []string
	GuideRequestsPerMinute int
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("app_env", "development")
	v.SetDefault("trip_year", 2026)
	v.SetDefault("trip_start", "2026-03-05T10:20:00")
	v.SetDefault("itinerary_sheet_url", defaultItinerarySheetURL)
	v.SetDefault("packing_sheet_url", defaultPackingSheetURL)
	v.SetDefault("fetch_timeout", "15s")
	v.SetDefault("store_backend", "disk")
	v.SetDefault("store_path", "~/.tabi")
	v.SetDefault("store_key_prefix", "osaka_")
	v.SetDefault("redis_url", "redis://localhost:6379/0")
	v.SetDefault("postgres_url", "")
	v.SetDefault("ai_provider", "gemini")
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", "gemini-1.5-flash")
	v.SetDefault("openai_api_key", "")
	v.SetDefault("openai_model", "gpt-4o-mini")
	v.SetDefault("weather_latitude", 34.6937)
	v.SetDefault("weather_longitude", 135.5023)
	v.SetDefault("weather_cache_ttl", "10m")
	v.SetDefault("exchange_rate", 0.22)
	v.SetDefault("default_prep_time", 60)
	v.SetDefault("cors_origins", "*")
	v.SetDefault("guide_requests_per_minute", 10)
}

// Load reads .env (if present), the environment and an optional tabi config file,
// on top of the defaults above.
func Load() (*Config, error) {
	_ = godotenv.Load() // no .env is fine

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	v.SetConfigName(AppName)
	if override := os.Getenv("TABI_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	tripStart, err := time.ParseInLocation(tripStartLayout, v.GetString("trip_start"), time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid TRIP_START %q: %w", v.GetString("trip_start"), err)
	}

	storePath, err := homedir.Expand(v.GetString("store_path"))
	if err != nil {
		return nil, fmt.Errorf("expanding STORE_PATH: %w", err)
	}

	prep := v.GetInt("default_prep_time")
	if prep < 0 {
		prep = 0
	}

	return &Config{
		Port:                   strings.TrimPrefix(v.GetString("port"), ":"),
		AppEnv:                 v.GetString("app_env"),
		TripYear:               v.GetInt("trip_year"),
		TripStart:              tripStart,
		ItinerarySheetURL:      v.GetString("itinerary_sheet_url"),
		PackingSheetURL:        v.GetString("packing_sheet_url"),
		FetchTimeout:           v.GetDuration("fetch_timeout"),
		StoreBackend:           strings.ToLower(v.GetString("store_backend")),
		StorePath:              storePath,
		StoreKeyPrefix:         v.GetString("store_key_prefix"),
		RedisURL:               v.GetString("redis_url"),
		PostgresURL:            v.GetString("postgres_url"),
		AIProvider:             strings.ToLower(v.GetString("ai_provider")),
		GeminiAPIKey:           v.GetString("gemini_api_key"),
		GeminiModel:            v.GetString("gemini_model"),
		OpenAIAPIKey:           v.GetString("openai_api_key"),
		OpenAIModel:            v.GetString("openai_model"),
		WeatherLatitude:        v.GetFloat64("weather_latitude"),
		WeatherLongitude:       v.GetFloat64("weather_longitude"),
		WeatherCacheTTL:        v.GetDuration("weather_cache_ttl"),
		ExchangeRate:           v.GetFloat64("exchange_rate"),
		DefaultPrepTime:        prep,
		CORSOrigins:            splitList(v.GetString("cors_origins")),
		GuideRequestsPerMinute: v.GetInt("guide_requests_per_minute"),
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
