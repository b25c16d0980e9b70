package server

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"user-crud-api/internal/config"
)

// ConnectionManager keeps one Container alive across warm Lambda invocations
type ConnectionManager struct {
	container *Container
	mu        sync.RWMutex

	// loadConfig, build and serverless are replaced in tests
	loadConfig func() (*config.Config, error)
	build      func(ctx context.Context, cfg *config.Config) (*Container, error)
	serverless func() *config.ServerlessConfig
}

var (
	globalConnectionManager *ConnectionManager
	connectionManagerOnce   sync.Once
)

// GetConnectionManager returns the global connection manager instance
func GetConnectionManager() *ConnectionManager {
	connectionManagerOnce.Do(func() {
		globalConnectionManager = NewConnectionManager()
	})
	return globalConnectionManager
}

// NewConnectionManager creates a connection manager that loads the
// deployment-optimized configuration on first use
func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		loadConfig: config.GetOptimizedConfig,
		build:      NewContainer,
		serverless: config.GetServerlessConfig,
	}
}

// GetContainer returns the cached container, building it on first use. A
// failed build is not cached so the next invocation retries.
func (cm *ConnectionManager) GetContainer(ctx context.Context) (*Container, error) {
	cm.mu.RLock()
	if cm.container != nil {
		container := cm.container
		cm.mu.RUnlock()
		return container, nil
	}
	cm.mu.RUnlock()

	cm.mu.Lock()
	defer cm.mu.Unlock()

	// Another invocation may have won the race
	if cm.container != nil {
		return cm.container, nil
	}

	cfg, err := cm.loadConfig()
	if err != nil {
		return nil, err
	}
	container, err := cm.build(ctx, cfg)
	if err != nil {
		return nil, err
	}

	fields := logrus.Fields{"mode": config.GetDeploymentMode()}
	if cm.serverless != nil {
		sc := cm.serverless()
		fields["function"] = sc.FunctionName
		fields["stage"] = sc.Stage
	}
	container.Logger.WithFields(fields).Info("Cold start: container ready")

	cm.container = container
	return container, nil
}

// Cleanup closes the cached container. The next GetContainer builds a new one.
func (cm *ConnectionManager) Cleanup() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container == nil {
		return nil
	}
	err := cm.container.Close()
	cm.container = nil
	return err
}
