package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/user-product-api/internal/api"
	"github.com/example/user-product-api/internal/core/service"
	"github.com/example/user-product-api/internal/infrastructure/config"
	"github.com/example/user-product-api/internal/infrastructure/db/postgres"
	"github.com/example/user-product-api/migrations"
	"github.com/example/user-product-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.LogLevel, cfg.Env, os.Stdout)
	log.Info().Str("env", cfg.Env).Msg("starting user-product-api")

	// Prices are serialized as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.Database.DSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer db.Close()

	if err := migrations.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	userRepo := postgres.NewUserRepository(db, log)
	roleRepo := postgres.NewRoleRepository(db, log)
	seeder := postgres.NewSeeder(userRepo, roleRepo, service.NewBcryptHasher(), log)
	if err := seeder.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to seed initial data")
	}

	e := api.NewRouter(db, cfg.JWTSecret, cfg.TokenTTL, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	log.Info().Msg("server stopped")
}
