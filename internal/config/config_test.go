package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.BaseURL != "https://crossfit2-rzeszow.cms.efitness.com.pl" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %v, want 30s", cfg.HTTPTimeout)
	}
	if cfg.GymTitle != "CrossFit 2.0 Rzeszów" {
		t.Errorf("GymTitle = %q", cfg.GymTitle)
	}
	if cfg.GymLatitude != 50.0386 || cfg.GymLongitude != 22.0026 {
		t.Errorf("coordinates = %v,%v", cfg.GymLatitude, cfg.GymLongitude)
	}
	if cfg.DefaultDurationMin != 60 {
		t.Errorf("DefaultDurationMin = %d, want 60", cfg.DefaultDurationMin)
	}
	if cfg.AllowedOrigins != nil {
		t.Errorf("AllowedOrigins = %v, want nil", cfg.AllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SCRAPER_BASE_URL", "https://example.com")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "5")
	t.Setenv("GYM_LATITUDE", "51.5")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()

	if cfg.BaseURL != "https://example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if cfg.GymLatitude != 51.5 {
		t.Errorf("GymLatitude = %v", cfg.GymLatitude)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT_SECONDS", "soon")
	t.Setenv("GYM_LONGITUDE", "east")

	cfg := Load()

	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %v, want default", cfg.HTTPTimeout)
	}
	if cfg.GymLongitude != 22.0026 {
		t.Errorf("GymLongitude = %v, want default", cfg.GymLongitude)
	}
}
