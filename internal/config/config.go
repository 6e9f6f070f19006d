package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every setting the API server reads from the environment.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	DatabaseDriver  string        `env:"DB_DRIVER" envDefault:"postgres"`
	DatabaseURL     string        `env:"DATABASE_URL,required"`
	DBMaxOpenConns  int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns  int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	DBConnLifetime  time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"1h"`

	JWTSecret string `env:"JWT_SECRET,required"`

	// Seeded at startup when both are set.
	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"40"`

	ExpirySchedule string `env:"EXPIRY_SCHEDULE" envDefault:"@hourly"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
}

// Load reads an optional .env file and decodes the environment into a Config.
// A missing .env file is fine; deployments usually set the variables directly.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DatabaseDriver)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit must be positive, got rps=%v burst=%d", c.RateLimitRPS, c.RateLimitBurst)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
