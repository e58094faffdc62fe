package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Centavo"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	// Storage selects where snapshots live: sqlite (embedded file),
	// postgres, or memory (process lifetime only).
	Storage struct {
		Backend    string `envconfig:"STORAGE_BACKEND" default:"sqlite"`
		SQLitePath string `envconfig:"SQLITE_PATH" default:"./data/centavo.db"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"centavo"`
	}

	Auth struct {
		// Empty secret disables token checks (local demo mode).
		Secret string        `envconfig:"AUTH_SECRET" default:""`
		TTL    time.Duration `envconfig:"AUTH_TTL" default:"24h"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
