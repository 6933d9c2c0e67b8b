package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meikuraledutech/pipeline"
	"github.com/meikuraledutech/pipeline/postgres"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	var store pipeline.HistoryStore
	if cfg.HistoryEnabled() {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("connect", zap.Error(err))
		}
		defer pool.Close()

		pg := postgres.New(pool)
		if cfg.AutoMigrate {
			if err := pg.CreateSchema(context.Background()); err != nil {
				logger.Fatal("create schema", zap.Error(err))
			}
		}
		store = pg
	} else {
		logger.Info("validation history disabled, DATABASE_URL is not set")
	}

	app := newApp(cfg, logger, store, prometheus.NewRegistry())

	go func() {
		logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
			zap.Bool("history", cfg.HistoryEnabled()),
		)
		if err := app.Listen(cfg.ServerAddress, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}
}
