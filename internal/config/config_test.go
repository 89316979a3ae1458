package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.TripYear != 2026 {
		t.Errorf("TripYear = %d, want 2026", cfg.TripYear)
	}
	want := time.Date(2026, 3, 5, 10, 20, 0, 0, time.Local)
	if !cfg.TripStart.Equal(want) {
		t.Errorf("TripStart = %v, want %v", cfg.TripStart, want)
	}
	if cfg.FetchTimeout != 15*time.Second {
		t.Errorf("FetchTimeout = %v", cfg.FetchTimeout)
	}
	if cfg.StoreBackend != "disk" {
		t.Errorf("StoreBackend = %q", cfg.StoreBackend)
	}
	if cfg.ExchangeRate != 0.22 {
		t.Errorf("ExchangeRate = %v", cfg.ExchangeRate)
	}
	if cfg.DefaultPrepTime != 60 {
		t.Errorf("DefaultPrepTime = %d", cfg.DefaultPrepTime)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", ":9090")
	t.Setenv("TRIP_YEAR", "2027")
	t.Setenv("STORE_BACKEND", "Memory")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, https://trip.example")
	t.Setenv("DEFAULT_PREP_TIME", "-15")
	t.Setenv("FETCH_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.TripYear != 2027 {
		t.Errorf("TripYear = %d", cfg.TripYear)
	}
	if cfg.StoreBackend != "memory" {
		t.Errorf("StoreBackend = %q", cfg.StoreBackend)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://trip.example" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.DefaultPrepTime != 0 {
		t.Errorf("DefaultPrepTime = %d, want clamp to 0", cfg.DefaultPrepTime)
	}
	if cfg.FetchTimeout != 3*time.Second {
		t.Errorf("FetchTimeout = %v", cfg.FetchTimeout)
	}
}

func TestLoadRejectsBadTripStart(t *testing.T) {
	t.Setenv("TRIP_START", "next spring")
	if _, err := Load(); err == nil {
		t.Fatal("Load succeeded with malformed TRIP_START")
	}
}
