package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	GinMode  string `env:"GIN_MODE" envDefault:"debug"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	JWTSecret string `env:"JWT_SECRET,required"`

	// Store selects the meeting store: "mongo" or "memory". Empty picks
	// mongo when MONGODB_URI is set.
	Store         string `env:"STORE"`
	MongoURI      string `env:"MONGODB_URI"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"actionmate"`

	HotWindowMinutes   int           `env:"HOT_WINDOW_MINUTES" envDefault:"180"`
	LifecycleInterval  time.Duration `env:"LIFECYCLE_INTERVAL" envDefault:"1m"`
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"60"`
	CORSOrigins        []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:8081,http://localhost:19006"`
}

// Load reads an optional .env file and parses the environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load dotenv: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Store == "" {
		cfg.Store = "memory"
		if cfg.MongoURI != "" {
			cfg.Store = "mongo"
		}
	}
	if cfg.Store != "memory" && cfg.Store != "mongo" {
		return nil, fmt.Errorf("unknown STORE %q", cfg.Store)
	}
	if cfg.Store == "mongo" && cfg.MongoURI == "" {
		return nil, errors.New("MONGODB_URI must be set when STORE=mongo")
	}
	if cfg.RateLimitPerMinute <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", cfg.RateLimitPerMinute)
	}
	return &cfg, nil
}

func (c *Config) Release() bool {
	return c.GinMode == "release"
}
