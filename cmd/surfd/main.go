package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lucasinocencio1/surf-forecast/internal/config"
	"github.com/lucasinocencio1/surf-forecast/internal/database"
	"github.com/lucasinocencio1/surf-forecast/internal/forecast"
	"github.com/lucasinocencio1/surf-forecast/internal/geocoding"
	"github.com/lucasinocencio1/surf-forecast/internal/observability"
	"github.com/lucasinocencio1/surf-forecast/internal/openmeteo"
	"github.com/lucasinocencio1/surf-forecast/internal/scoring"
	"github.com/lucasinocencio1/surf-forecast/internal/server"
	"github.com/lucasinocencio1/surf-forecast/internal/spots"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config failed")
	}

	log.Logger = observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	logger := log.Logger

	metrics := observability.NewMetrics()

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("opening database failed")
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		log.Fatal().Err(err).Msg("preparing database failed")
	}

	repo := spots.NewRepository(db)
	if err := repo.SeedDefaults(); err != nil {
		log.Fatal().Err(err).Msg("seeding default spots failed")
	}

	engine, err := scoring.NewEngine(cfg.Scoring)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid scoring config")
	}

	geocoder := geocoding.NewGeocoder()
	spotSvc := spots.NewService(repo, geocoder)
	history := spots.NewHistoryRepository(db)

	forecastSvc, err := forecast.NewService(
		openmeteo.NewMarineClient(), openmeteo.NewWindClient(),
		engine, history, cfg.Fetch, logger,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid fetch config")
	}

	handlers := server.NewHandlers(spotSvc, forecastSvc, history, geocoder, metrics, logger)
	srv := server.New(server.Config{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout),
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout),
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout),
	}, handlers, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("api server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("api server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}
