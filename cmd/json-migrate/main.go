package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"

	"user-crud-api/internal/config"
	"user-crud-api/internal/migration"
	"user-crud-api/pkg/server"
)

func main() {
	var (
		jsonPath = flag.String("json", "./data/users.json", "JSON export of user payloads")
		action   = flag.String("action", "migrate", "Action: migrate, check")
		dryRun   = flag.Bool("dry-run", false, "Validate the export without writing")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	switch *action {
	case "check":
		if !migration.NewJSONMigrator(nil, *jsonPath, logger).CheckJSONFileExists() {
			logger.WithField("json_path", *jsonPath).Fatal("JSON export not found")
		}
		fmt.Printf("Found %s\n", *jsonPath)
	case "migrate":
		if err := runMigration(*jsonPath, *dryRun, logger); err != nil {
			logger.WithError(err).Fatal("Migration failed")
		}
	default:
		logger.WithField("action", *action).Fatal("Unknown action. Use: check, migrate")
	}
}

func runMigration(jsonPath string, dryRun bool, logger *logrus.Logger) error {
	ctx := context.Background()

	if dryRun {
		result, err := migration.NewJSONMigrator(nil, jsonPath, logger).MigrateFromJSON(ctx, true)
		if err != nil {
			return err
		}
		printResult(result)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	container, err := server.NewContainer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	defer container.Close()

	result, err := migration.NewJSONMigrator(container.UserRepo, jsonPath, logger).MigrateFromJSON(ctx, false)
	if err != nil {
		return err
	}
	printResult(result)
	return nil
}

func printResult(result *migration.MigrationResult) {
	fmt.Printf("Users read: %d\n", result.UsersRead)
	fmt.Printf("Users imported: %d\n", result.UsersImported)
	for _, e := range result.Errors {
		fmt.Printf("  error: %s\n", e)
	}
}
