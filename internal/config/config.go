package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"user-crud-api/internal/adapters/store"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	Store       StoreConfig
	Log         LogConfig
	RateLimit   RateLimitConfig
}

// StoreConfig holds key-value store configuration
type StoreConfig struct {
	Type          string // "dynamodb", "sqlite", "redis" or "memory"
	TableName     string
	Region        string
	Endpoint      string
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Format string // "json" or "text"
}

// RateLimitConfig holds the local server rate limit. Zero RPS disables it.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("TABLE_NAME", "users")
	v.SetDefault("STORE_TYPE", string(store.StoreTypeSQLite))
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("SQLITE_PATH", "./data/users.db")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		Store: StoreConfig{
			Type:          strings.ToLower(v.GetString("STORE_TYPE")),
			TableName:     v.GetString("TABLE_NAME"),
			Region:        v.GetString("AWS_REGION"),
			Endpoint:      v.GetString("DYNAMODB_ENDPOINT"),
			SQLitePath:    v.GetString("SQLITE_PATH"),
			RedisAddr:     v.GetString("REDIS_ADDR"),
			RedisPassword: v.GetString("REDIS_PASSWORD"),
			RedisDB:       v.GetInt("REDIS_DB"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	return config, nil
}

// Validate reports the first configuration value the application cannot run with
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Store.TableName) == "" {
		return fmt.Errorf("TABLE_NAME must not be empty")
	}

	switch store.StoreType(c.Store.Type) {
	case store.StoreTypeDynamoDB, store.StoreTypeSQLite, store.StoreTypeRedis, store.StoreTypeMemory:
	default:
		return fmt.Errorf("unsupported STORE_TYPE %q", c.Store.Type)
	}

	if c.Store.Type == string(store.StoreTypeRedis) && c.Store.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required for the redis store")
	}

	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid PORT %q: %w", c.Port, err)
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("unsupported LOG_FORMAT %q", c.Log.Format)
	}

	if c.RateLimit.RequestsPerSecond < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limit values must not be negative")
	}
	return nil
}

// Gateway converts the store section into gateway factory configuration
func (s StoreConfig) Gateway() *store.Config {
	return &store.Config{
		Type:          s.Type,
		Region:        s.Region,
		Endpoint:      s.Endpoint,
		SQLitePath:    s.SQLitePath,
		RedisAddr:     s.RedisAddr,
		RedisPassword: s.RedisPassword,
		RedisDB:       s.RedisDB,
	}
}

// IsProduction reports whether the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
