package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"user-crud-api/internal/database"
)

// StoreType represents the type of gateway implementation
type StoreType string

const (
	StoreTypeDynamoDB StoreType = "dynamodb"
	StoreTypeSQLite   StoreType = "sqlite"
	StoreTypeRedis    StoreType = "redis"
	StoreTypeMemory   StoreType = "memory"
)

// Config represents configuration for gateway providers
type Config struct {
	Type          string `json:"type" yaml:"type"`
	Region        string `json:"region" yaml:"region"`         // For DynamoDB
	Endpoint      string `json:"endpoint" yaml:"endpoint"`     // For DynamoDB Local
	SQLitePath    string `json:"sqlite_path" yaml:"sqlite_path"`
	RedisAddr     string `json:"redis_addr" yaml:"redis_addr"`
	RedisPassword string `json:"redis_password" yaml:"redis_password"`
	RedisDB       int    `json:"redis_db" yaml:"redis_db"`
}

// Factory creates Gateway instances based on configuration
type Factory struct {
	logger logrus.FieldLogger
}

// NewFactory creates a new gateway factory
func NewFactory(logger logrus.FieldLogger) *Factory {
	if logger == nil {
		logger = logrus.New()
	}
	return &Factory{logger: logger}
}

// Create creates a Gateway instance based on the provided configuration
func (f *Factory) Create(ctx context.Context, cfg *Config) (Gateway, error) {
	if cfg == nil {
		return nil, fmt.Errorf("store config is required")
	}

	storeType := StoreType(strings.ToLower(cfg.Type))

	var gw Gateway
	var err error

	switch storeType {
	case StoreTypeDynamoDB:
		gw, err = NewDynamoDBGatewayFromEnv(ctx, cfg.Region, cfg.Endpoint)
	case StoreTypeSQLite:
		gw, err = f.createSQLiteGateway(cfg)
	case StoreTypeRedis:
		gw, err = DialRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case StoreTypeMemory:
		gw = NewMemoryGateway()
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, cfg.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create %s store: %w", cfg.Type, err)
	}

	f.logger.WithField("store_type", storeType).Info("Store gateway initialized")
	return gw, nil
}

func (f *Factory) createSQLiteGateway(cfg *Config) (Gateway, error) {
	connCfg := database.DefaultConnectionConfig()
	if cfg.SQLitePath != "" {
		connCfg.DatabasePath = cfg.SQLitePath
	}
	connCfg.Logger = f.logger

	db, err := database.Open(connCfg)
	if err != nil {
		return nil, err
	}
	return NewSQLiteGateway(db, f.logger), nil
}
