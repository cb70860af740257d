// Package config loads process settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/linguoquest/linguoquest/internal/logging"
)

// Prefix is prepended to every variable name, e.g. LINGUOQUEST_SERVER_ADDR.
const Prefix = "LINGUOQUEST"

// Config is the full process configuration.
type Config struct {
	// DBPath is the ledger file. Empty resolves to the per-user data dir.
	DBPath  string         `envconfig:"DB"`
	Player  string         `envconfig:"PLAYER" default:"player" validate:"required,max=64"`
	Log     logging.Config `envconfig:"LOG"`
	Redis   RedisConfig    `envconfig:"REDIS"`
	Server  ServerConfig   `envconfig:"SERVER"`
	Content ContentConfig  `envconfig:"CONTENT"`
}

// RedisConfig points at the shared question bank. An empty Addr keeps the
// bank in memory.
type RedisConfig struct {
	Addr     string `envconfig:"ADDR"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB" default:"0" validate:"gte=0,lte=15"`
}

// ServerConfig configures `serve`.
type ServerConfig struct {
	Addr            string        `envconfig:"ADDR" default:":8080" validate:"required"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s" validate:"gte=0"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s" validate:"gt=0"`
}

// ContentConfig tunes content generation.
type ContentConfig struct {
	Cooldown     time.Duration `envconfig:"COOLDOWN" default:"3s" validate:"gte=0"`
	BankTTL      time.Duration `envconfig:"BANK_TTL" default:"30m" validate:"gte=0"`
	FetchTimeout time.Duration `envconfig:"FETCH_TIMEOUT" default:"60s" validate:"gt=0"`
}

// Load reads an optional .env file, then the environment.
func Load(envFiles ...string) (*Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks ranges.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
