package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort  string
	GinMode     string
	LogLevel    string
	LogFormat   string
	BaseURL     string
	HTTPTimeout time.Duration
	AuthToken   string
	// Location, when set, pins the venue address and skips the
	// per-request address scrape.
	Location string
	// AllowedOrigins controls HTTP CORS. Empty slice means all origins
	// are permitted (dev default).
	AllowedOrigins []string

	// Venue constants consumed by the calendar renderer.
	GymTitle           string
	GymFallbackAddress string
	GymLatitude        float64
	GymLongitude       float64
	DefaultDurationMin int
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error — .env is optional

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "pretty"),
		BaseURL:            getEnv("SCRAPER_BASE_URL", "https://crossfit2-rzeszow.cms.efitness.com.pl"),
		HTTPTimeout:        time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		AuthToken:          getEnv("AUTH_TOKEN", "default-token-change-me"),
		Location:           getEnv("LOCATION", ""),
		AllowedOrigins:     parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
		GymTitle:           getEnv("GYM_TITLE", "CrossFit 2.0 Rzeszów"),
		GymFallbackAddress: getEnv("GYM_ADDRESS", "Boya-Żeleńskiego 15, 35-105 Rzeszów, Poland"),
		GymLatitude:        getEnvFloat("GYM_LATITUDE", 50.0386),
		GymLongitude:       getEnvFloat("GYM_LONGITUDE", 22.0026),
		DefaultDurationMin: getEnvInt("DEFAULT_DURATION_MIN", 60),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
