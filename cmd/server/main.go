package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"leavehub/internal/app/server"
	"leavehub/internal/platform/config"
	"leavehub/internal/platform/logging"
)

func main() {
	// Missing .env is fine; containers configure through real env vars.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.Environment)
	log.Logger = logger

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	app, err := server.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("startup failed")
	}
	defer app.Pool.Close()

	if err := app.Run(); err != nil {
		logger.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
