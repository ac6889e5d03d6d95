// Package config loads process settings from the environment and game
// content from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/mcoot/protocasual/internal/model"
)

// StorageType selects the persistence backend
type StorageType string

const (
	StorageMemory StorageType = "memory"
	StorageSQLite StorageType = "sqlite"
	StorageRedis  StorageType = "redis"
	StorageS3     StorageType = "s3"
)

// AnalyticsKind selects the analytics sink
type AnalyticsKind string

const (
	AnalyticsLog  AnalyticsKind = "log"
	AnalyticsOTel AnalyticsKind = "otel"
	AnalyticsNone AnalyticsKind = "none"
)

// Config holds process configuration
type Config struct {
	LogLevel string `env:"PROTOCASUAL_LOG_LEVEL" envDefault:"info"`

	Storage    StorageType `env:"PROTOCASUAL_STORAGE" envDefault:"memory"`
	SaveKey    string      `env:"PROTOCASUAL_SAVE_KEY" envDefault:"player_data"`
	SQLitePath string      `env:"PROTOCASUAL_SQLITE_PATH" envDefault:"protocasual.db"`
	RedisURL   string      `env:"PROTOCASUAL_REDIS_URL" envDefault:"redis://localhost:6379"`

	S3Bucket    string `env:"PROTOCASUAL_S3_BUCKET"`
	S3Prefix    string `env:"PROTOCASUAL_S3_PREFIX" envDefault:"protocasual/"`
	S3Region    string `env:"PROTOCASUAL_S3_REGION" envDefault:"auto"`
	S3Endpoint  string `env:"PROTOCASUAL_S3_ENDPOINT"`
	S3AccessKey string `env:"PROTOCASUAL_S3_ACCESS_KEY_ID"`
	S3SecretKey string `env:"PROTOCASUAL_S3_SECRET_ACCESS_KEY"`

	ContentFile string        `env:"PROTOCASUAL_CONTENT_FILE"`
	Analytics   AnalyticsKind `env:"PROTOCASUAL_ANALYTICS" envDefault:"log"`

	// OTelEndpoint is the OTLP/HTTP traces URL; empty exports spans to stdout
	OTelEndpoint string `env:"PROTOCASUAL_OTEL_ENDPOINT"`

	Port                int           `env:"PROTOCASUAL_PORT" envDefault:"8080"`
	StreakCheckInterval time.Duration `env:"PROTOCASUAL_STREAK_CHECK_INTERVAL" envDefault:"1h"`
	CheckpointInterval  time.Duration `env:"PROTOCASUAL_CHECKPOINT_INTERVAL" envDefault:"5m"`
}

// Load reads an optional .env file, then the environment
func Load(dotenvFiles ...string) (*Config, error) {
	if err := godotenv.Load(dotenvFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load dotenv: %w", err)
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration an empty environment produces
func Default() *Config {
	cfg := &Config{}
	_ = env.ParseWithOptions(cfg, env.Options{Environment: map[string]string{}})
	return cfg
}

// Validate checks cross-field constraints
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageMemory, StorageRedis:
	case StorageSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("%w: sqlite path is required", model.ErrInvalidConfig)
		}
	case StorageS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("%w: s3 bucket is required", model.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage type %q", model.ErrInvalidConfig, c.Storage)
	}
	switch c.Analytics {
	case AnalyticsLog, AnalyticsOTel, AnalyticsNone:
	default:
		return fmt.Errorf("%w: unknown analytics sink %q", model.ErrInvalidConfig, c.Analytics)
	}
	if c.SaveKey == "" {
		return fmt.Errorf("%w: save key is required", model.ErrInvalidConfig)
	}
	return nil
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
