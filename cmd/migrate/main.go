package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	mongoMigration "carrental/internal/migrations/mongo"
	"carrental/pkg/config"
)

const (
	JobName    = "mongo-migration"
	JobTimeout = 120 * time.Second
)

func main() {
	cfg := config.Load(JobName)
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cfg.SetMongo(ctx); err != nil {
		cfg.Log.Fatal("Gave up connecting to MongoDB", "error", err)
	}
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Mongo migration job")

	ctx, cancel := context.WithTimeout(ctx, JobTimeout)
	defer cancel()

	if err := migrateMongo(ctx, cfg); err != nil {
		cfg.Log.Error("Migration failed", "error", err)
		cancel()
		cfg.GracefulShutdown()
		os.Exit(1)
	}
	cfg.Log.Info("Migration completed successfully")
}

func migrateMongo(ctx context.Context, cfg *config.Config) error {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)

	if err := mongoMigration.RunMigration(ctx, db, cfg.Log); err != nil {
		return err
	}
	if _, err := mongoMigration.SeedCars(ctx, db, cfg.Log); err != nil {
		return err
	}
	return nil
}
