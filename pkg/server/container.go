package server

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"user-crud-api/internal/adapters/store"
	"user-crud-api/internal/config"
	"user-crud-api/internal/handlers"
	"user-crud-api/internal/repositories"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logrus.Logger
	Gateway     store.Gateway
	UserRepo    repositories.UserRepository
	UserHandler *handlers.UserHandler
}

// NewContainer creates a new dependency injection container, opening the
// store selected by cfg.Store.Type
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Log)

	gw, err := store.NewFactory(logger).Create(ctx, cfg.Store.Gateway())
	if err != nil {
		return nil, fmt.Errorf("failed to create store gateway: %w", err)
	}

	return NewContainerWithGateway(cfg, logger, gw), nil
}

// NewContainerWithGateway wires the container around an already opened gateway
func NewContainerWithGateway(cfg *config.Config, logger *logrus.Logger, gw store.Gateway) *Container {
	if logger == nil {
		logger = logrus.New()
	}

	repo := repositories.NewUserRepository(gw, cfg.Store.TableName, logger)

	logger.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"store_type":  cfg.Store.Type,
		"table":       cfg.Store.TableName,
	}).Debug("Container initialized")

	return &Container{
		Config:      cfg,
		Logger:      logger,
		Gateway:     gw,
		UserRepo:    repo,
		UserHandler: handlers.NewUserHandler(repo, logger),
	}
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.Gateway != nil {
		if err := c.Gateway.Close(); err != nil {
			return fmt.Errorf("failed to close store: %w", err)
		}
	}
	return nil
}
