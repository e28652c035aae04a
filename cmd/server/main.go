package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/crossfit-rzeszow/timetable-api/internal/config"
	"github.com/crossfit-rzeszow/timetable-api/internal/handler"
	"github.com/crossfit-rzeszow/timetable-api/internal/ical"
	"github.com/crossfit-rzeszow/timetable-api/internal/logger"
	"github.com/crossfit-rzeszow/timetable-api/internal/router"
	"github.com/crossfit-rzeszow/timetable-api/internal/scraper"
	"github.com/crossfit-rzeszow/timetable-api/internal/service"
	"github.com/crossfit-rzeszow/timetable-api/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Str("base_url", cfg.BaseURL).
		Msg("Starting CrossFit Timetable API")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	// ─── Initialize Scraper and Exporter ───────────────────────────────
	sc := scraper.New(cfg.BaseURL, cfg.HTTPTimeout, log)
	exporter := ical.NewExporter(ical.Config{
		Title:              cfg.GymTitle,
		FallbackAddress:    cfg.GymFallbackAddress,
		Latitude:           cfg.GymLatitude,
		Longitude:          cfg.GymLongitude,
		DefaultDurationMin: cfg.DefaultDurationMin,
	})

	// ─── Initialize Services ──────────────────────────────────────────
	timetableService := service.NewTimetableService(sc, exporter, cfg.Location, nil, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Timetable: handler.NewTimetableHandler(timetableService, log),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
