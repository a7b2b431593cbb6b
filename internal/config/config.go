package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"FinWise"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Store struct {
		// Backend selects the document store: "postgres" or "memory".
		// Memory keeps records for the process lifetime only.
		Backend string `envconfig:"STORE_BACKEND" default:"postgres"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"finwise"`
	}

	Auth struct {
		Secret string `envconfig:"AUTH_SECRET"`
	}

	Advisor struct {
		APIKey  string        `envconfig:"ADVISOR_API_KEY"`
		Model   string        `envconfig:"ADVISOR_MODEL" default:"gemini-2.0-flash"`
		BaseURL string        `envconfig:"ADVISOR_BASE_URL" default:"https://generativelanguage.googleapis.com/v1beta"`
		Timeout time.Duration `envconfig:"ADVISOR_TIMEOUT" default:"30s"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	TUI struct {
		// Owner is the record owner the terminal client works as. The TUI
		// talks to the store directly, so there is no token to take it from.
		Owner string `envconfig:"TUI_OWNER" default:"local"`
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
