package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/anonballot/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/anonballot/internal/config"
	"github.com/vncsmyrnk/anonballot/internal/core/services"
	"github.com/vncsmyrnk/anonballot/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.JSON)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	// Use a timeout for the job execution to prevent it from hanging indefinitely
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal("failed to connect", zap.Error(err))
	}
	defer db.Close()

	sweepService := services.NewSweepService(postgres.NewCredentialRepository(db), time.Minute, log)

	log.Info("starting credential sweep")

	deleted, err := sweepService.SweepExpired(ctx)
	if err != nil {
		log.Fatal("credential sweep failed", zap.Error(err))
	}

	log.Info("credential sweep completed", zap.Int64("deleted", deleted))
}
