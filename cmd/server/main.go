package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gleysonwener/new-lu/internal/config"
	"github.com/gleysonwener/new-lu/internal/infra"
	"github.com/gleysonwener/new-lu/internal/repository"
	"github.com/gleysonwener/new-lu/internal/router"
	"github.com/gleysonwener/new-lu/internal/service"
	"github.com/gleysonwener/new-lu/internal/telemetry"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Error telemetry: handlers enqueue, the pool drains and logs.
	reporter := telemetry.NewRedisReporter(rdb)
	telemetry.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize)

	// Ensure an admin account exists on an empty user table.
	userRepo := repository.NewUserRepository(db)
	userSvc := service.NewUserService(userRepo, cfg)
	if err := userSvc.Bootstrap(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap admin user")
	}

	r := router.New(cfg, db, rdb, reporter)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("orders backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
