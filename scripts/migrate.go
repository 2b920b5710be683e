package main

import (
	"flag"
	"log"
	"os"

	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"

	"github.com/johnquangdev/meet-agent/internal/infrastructure/database"
	"github.com/johnquangdev/meet-agent/pkg/config"
)

// Applies or rolls back the embedded analysis archive migrations.
//
//	go run ./scripts -direction=up
//	go run ./scripts -direction=down -max=1
//	go run ./scripts -status
func main() {
	direction := flag.String("direction", "up", "up or down")
	limit := flag.Int("max", 0, "maximum migrations to apply (0 = all)")
	status := flag.Bool("status", false, "list applied migrations and exit")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	// Get the underlying SQL database connection from GORM
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get database connection", zap.Error(err))
	}

	if *status {
		records, err := migrate.GetMigrationRecords(sqlDB, "postgres")
		if err != nil {
			logger.Fatal("Failed to read migration records", zap.Error(err))
		}
		for _, r := range records {
			logger.Info("applied", zap.String("id", r.Id), zap.Time("at", r.AppliedAt))
		}
		return
	}

	dir := migrate.Up
	switch *direction {
	case "up":
	case "down":
		dir = migrate.Down
	default:
		logger.Error("Unknown direction", zap.String("direction", *direction))
		os.Exit(2)
	}

	logger.Info("🔄 Applying migrations", zap.String("direction", *direction))
	n, err := migrate.ExecMax(sqlDB, "postgres", database.Migrations(), dir, *limit)
	if err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	logger.Info("✅ Migrations applied", zap.Int("count", n))
}
