package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Port     string `env:"PORT" env-default:"8000"`
	Env      string `env:"ENV" env-default:"development"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	Database DatabaseConfig

	// DevUserID is the fixed identity every request acts as
	DevUserID string `env:"DEV_USER_ID" env-default:"00000000-0000-0000-0000-000000000000"`

	CORSOrigins        string `env:"CORS_ORIGINS" env-default:"http://localhost:8000,http://127.0.0.1:8000"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" env-default:"200"`

	// RequestTimeout bounds the context every operation runs under
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" env-default:"10s"`
}

type DatabaseConfig struct {
	Driver          string `env:"DB_DRIVER" env-default:"sqlite3"`
	URL             string `env:"DATABASE_URL" env-default:"./data/notes.db"`
	ConnectAttempts uint   `env:"DB_CONNECT_ATTEMPTS" env-default:"5"`
}

// Load reads .env (if present) and the process environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	id, err := uuid.Parse(c.DevUserID)
	if err != nil {
		return fmt.Errorf("DEV_USER_ID must be a UUID: %w", err)
	}
	c.DevUserID = id.String()

	switch c.Database.Driver {
	case "sqlite3", "pgx":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite3 or pgx, got %q", c.Database.Driver)
	}

	if c.RateLimitPerMinute < 1 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
