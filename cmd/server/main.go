// Package main is the entry point for the sugoroku game server.
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"sugoroku/internal/config"
	"sugoroku/internal/game/sugoroku"
	"sugoroku/internal/pkg/db"
	"sugoroku/internal/pkg/lock"
	"sugoroku/internal/repository"
	"sugoroku/internal/server"
	"sugoroku/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	setupLogger(cfg.Log)

	log.Info().
		Str("addr", cfg.Server.Addr).
		Str("layout", cfg.Game.Layout).
		Bool("database", cfg.Database.Enabled).
		Msg("Configuration loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := &server.Dependencies{Config: cfg.Server}
	var opts []service.Option

	// Result storage is optional; without it games still play.
	if cfg.Database.Enabled {
		dbPool, err := db.NewPool(ctx, &cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer dbPool.Close()

		if err := repository.Migrate(ctx, dbPool.Pool); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}

		resultRepo := repository.NewResultRepository(dbPool.Pool)
		opts = append(opts, service.WithRecorder(service.RecordTo(resultRepo)))
		deps.RankingService = service.NewRankingService(resultRepo)
		deps.Database = dbPool
	}

	layouts := sugoroku.DefaultLayouts()
	if _, err := layouts.Get(cfg.Game.Layout); err != nil {
		log.Fatal().Err(err).Msg("Invalid default layout")
	}
	gameLock := lock.NewGameLock(cfg.Server.LockTimeout)
	deps.GameStore = service.NewGameStore(cfg.Game, gameLock, layouts, opts...)

	log.Info().Strs("layouts", layouts.Names()).Msg("Layouts registered")

	if err := server.New(deps).Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("HTTP server failed")
	}
	log.Info().Msg("Server stopped gracefully")
}

func setupLogger(cfg config.LogConfig) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}
