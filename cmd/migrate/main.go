package main

// Run database migrations:
//   go run ./cmd/migrate

import (
	"context"
	"log"
	"os"
	"time"

	"ats-backend/internal/shared/config"
	"ats-backend/internal/shared/storage/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("config: %v", err)
		os.Exit(1)
	}
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.ConnectWithRetry(ctx, cfg.DatabaseDriver, cfg.DatabaseURL, opts, 30*time.Second)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB, cfg.DatabaseDriver); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}
	version, err := db.MigrationVersion(ctx, sqlDB, cfg.DatabaseDriver)
	if err != nil {
		log.Printf("failed to read migration version: %v", err)
		os.Exit(1)
	}
	log.Printf("migrations applied; schema version %d", version)
}
