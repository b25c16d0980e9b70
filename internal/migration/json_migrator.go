package migration

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"user-crud-api/internal/models"
	"user-crud-api/internal/repositories"
)

// JSONMigrator imports user payloads from a JSON export into a repository
type JSONMigrator struct {
	repo     repositories.UserRepository
	logger   logrus.FieldLogger
	jsonPath string
}

// NewJSONMigrator creates a new JSON migrator. repo may be nil for checks
// and dry runs.
func NewJSONMigrator(repo repositories.UserRepository, jsonPath string, logger logrus.FieldLogger) *JSONMigrator {
	if logger == nil {
		logger = logrus.New()
	}
	return &JSONMigrator{
		repo:     repo,
		logger:   logger,
		jsonPath: jsonPath,
	}
}

// MigrationResult contains the results of the migration
type MigrationResult struct {
	UsersRead     int
	UsersImported int
	Errors        []string
}

// CheckJSONFileExists reports whether the export file is present
func (m *JSONMigrator) CheckJSONFileExists() bool {
	info, err := os.Stat(m.jsonPath)
	return err == nil && !info.IsDir()
}

// MigrateFromJSON validates every user in the export and creates the valid
// ones. Each import mints a fresh id. A dry run only validates.
func (m *JSONMigrator) MigrateFromJSON(ctx context.Context, dryRun bool) (*MigrationResult, error) {
	m.logger.WithFields(logrus.Fields{
		"json_path": m.jsonPath,
		"dry_run":   dryRun,
	}).Info("Starting JSON user import")

	users, err := m.loadUsers()
	if err != nil {
		return nil, err
	}
	if !dryRun && m.repo == nil {
		return nil, fmt.Errorf("a repository is required to import users")
	}

	result := &MigrationResult{
		UsersRead: len(users),
		Errors:    make([]string, 0),
	}

	for i := range users {
		user := &users[i]
		if err := user.Validate(); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("user %d: %v", i, err))
			continue
		}
		if dryRun {
			continue
		}

		if err := m.repo.Create(ctx, user); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("user %d: %v", i, err))
			continue
		}
		result.UsersImported++
	}

	m.logger.WithFields(logrus.Fields{
		"users_read":     result.UsersRead,
		"users_imported": result.UsersImported,
		"errors":         len(result.Errors),
	}).Info("JSON user import finished")

	return result, nil
}

func (m *JSONMigrator) loadUsers() ([]models.User, error) {
	data, err := os.ReadFile(m.jsonPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", m.jsonPath, err)
	}

	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", m.jsonPath, err)
	}
	return users, nil
}
