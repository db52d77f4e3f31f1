package main

import (
	"context"
	"os"

	"github.com/safar/shopfront/internal/config"
	"github.com/safar/shopfront/internal/database"
	"github.com/safar/shopfront/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New(config.LogConfig{}).Fatalf("Load config: %v", err)
	}
	log := logging.New(cfg.Log)

	if len(os.Args) < 2 {
		log.Fatal("Usage: go run scripts/run_migrations.go [up|down]")
	}

	direction := database.Direction(os.Args[1])
	if direction != database.Up && direction != database.Down {
		log.Fatal("Direction must be 'up' or 'down'")
	}

	ctx := context.Background()
	db, err := database.NewConnection(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Connect to database: %v", err)
	}
	defer db.Close()

	ran, err := database.Migrate(ctx, db, "migrations", direction, log)
	if err != nil {
		log.Fatalf("Migrate %s: %v", direction, err)
	}

	log.Infof("Successfully ran %d migration(s) %s", ran, direction)
}
