package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// ConnectionConfig holds database connection configuration
type ConnectionConfig struct {
	DatabasePath    string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SkipMigrations  bool
	Logger          logrus.FieldLogger
}

// DefaultConnectionConfig returns a default configuration
func DefaultConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		DatabasePath:    "./data/users.db",
		MaxOpenConns:    1, // SQLite works best with single connection
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		Logger:          logrus.New(),
	}
}

// Open opens the SQLite database at cfg.DatabasePath and applies all pending
// migrations unless cfg.SkipMigrations is set. The parent directory is created
// when missing.
func Open(cfg *ConnectionConfig) (*sql.DB, error) {
	if cfg == nil {
		cfg = DefaultConnectionConfig()
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}

	dsn := cfg.DatabasePath
	if dsn != ":memory:" {
		dbPath, err := filepath.Abs(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute database path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = dbPath
	}

	db, err := sql.Open("sqlite3", dsn+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if !cfg.SkipMigrations {
		if err := NewMigrationManager(db, cfg.Logger).RunMigrations(); err != nil {
			db.Close()
			return nil, err
		}
	}

	cfg.Logger.WithField("db_path", dsn).Info("Database connection established")
	return db, nil
}
