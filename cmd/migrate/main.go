package main

import (
	"database/sql"
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"

	"user-crud-api/internal/config"
	"user-crud-api/internal/database"
)

func main() {
	var (
		dbPath  = flag.String("db", config.GetEnv("SQLITE_PATH", "./data/users.db"), "Database file path")
		action  = flag.String("action", "up", "Migration action: up, down, status")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	// Setup logger
	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	logger.WithFields(logrus.Fields{
		"db_path": *dbPath,
		"action":  *action,
	}).Info("Starting migration tool")

	connCfg := database.DefaultConnectionConfig()
	connCfg.DatabasePath = *dbPath
	connCfg.Logger = logger
	connCfg.SkipMigrations = true

	db, err := database.Open(connCfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open database")
	}
	defer db.Close()

	mm := database.NewMigrationManager(db, logger)

	switch *action {
	case "up":
		if err := mm.RunMigrations(); err != nil {
			logger.WithError(err).Fatal("Migration up failed")
		}
	case "down":
		if err := mm.RollbackMigrations(); err != nil {
			logger.WithError(err).Fatal("Migration down failed")
		}
	case "status":
	default:
		logger.WithField("action", *action).Fatal("Unknown action. Use: up, down, status")
	}

	if err := printStatus(db, mm); err != nil {
		logger.WithError(err).Fatal("Failed to get migration status")
	}
	logger.Info("Migration tool completed successfully")
}

func printStatus(db *sql.DB, mm *database.MigrationManager) error {
	status, err := mm.GetMigrationStatus()
	if err != nil {
		return err
	}

	var items int
	// the items table is absent after a full rollback
	_ = db.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&items)

	fmt.Printf("Migration version: %d\n", status.Version)
	fmt.Printf("Dirty: %t\n", status.Dirty)
	fmt.Printf("Stored items: %d\n", items)
	return nil
}
