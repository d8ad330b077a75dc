// Package config loads runtime settings from the environment and the site
// configuration from its YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds the runtime settings of the service, populated from
// environment variables (and a .env file when present).
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"development"`
	Port   int    `env:"PORT" envDefault:"8080"`

	// Database (Supabase Postgres)
	DatabaseURL         string   `env:"DATABASE_URL"`
	DatabaseReplicaURLs []string `env:"DATABASE_REPLICA_URLS" envSeparator:","`

	// Optional; the contact rate limiter falls back to in-process buckets without it
	RedisURL string `env:"REDIS_URL"`

	SiteConfigPath string `env:"SITE_CONFIG_PATH" envDefault:"site.yaml"`
	CVPath         string `env:"CV_PATH" envDefault:"content/cv.yaml"`
	ContentDir     string `env:"CONTENT_DIR" envDefault:"content/posts"`
	BaseURL        string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	// Bearer token required on write and admin endpoints
	AdminToken      string   `env:"ADMIN_TOKEN"`
	AcceptedOrigins []string `env:"ACCEPTED_ORIGINS" envSeparator:","`

	// Honour X-Forwarded-For/X-Real-IP only behind a proxy that sets them
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"180s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"180s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"180s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	ContactRatePerMinute int   `env:"CONTACT_RATE_PER_MINUTE" envDefault:"5"`
	ContactBurst         int   `env:"CONTACT_BURST" envDefault:"3"`
	MaxRequestBodySize   int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`

	OwnerEmail string       `env:"OWNER_EMAIL"`
	Resend     ResendConfig `envPrefix:"RESEND_"`
	Twilio     TwilioConfig `envPrefix:"TWILIO_"`
}

type ResendConfig struct {
	APIKey    string `env:"API_KEY"`
	FromEmail string `env:"FROM_EMAIL"`
	BaseURL   string `env:"BASE_URL" envDefault:"https://api.resend.com"`
}

type TwilioConfig struct {
	AccountSID  string `env:"ACCOUNT_SID"`
	AuthToken   string `env:"AUTH_TOKEN"`
	FromNumber  string `env:"FROM_NUMBER"`
	OwnerNumber string `env:"OWNER_NUMBER"`
}

// Enabled reports whether every credential needed to send mail is present
func (r ResendConfig) Enabled() bool {
	return r.APIKey != "" && r.FromEmail != ""
}

func (t TwilioConfig) Enabled() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.FromNumber != "" && t.OwnerNumber != ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Address is the listen address; binds 0.0.0.0 for external access
func (c *Config) Address() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}

// RequireDatabase returns an error when DATABASE_URL is unset
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}
	return nil
}

// dotEnvPaths are tried in order; the first one found wins
var dotEnvPaths = []string{
	".env",                      // Current directory
	filepath.Join("..", ".env"), // Parent directory
}

// LoadDotEnv loads the first .env file found. Variables already set in the
// environment are never overwritten.
func LoadDotEnv(paths ...string) (string, bool) {
	if len(paths) == 0 {
		paths = dotEnvPaths
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Failed to parse .env file")
			continue
		}
		return path, true
	}
	return "", false
}

// Load reads .env (if any) and parses the environment into a Config
func Load() (*Config, error) {
	if path, ok := LoadDotEnv(); ok {
		log.Debug().Str("path", path).Msg("Loaded .env file")
	} else {
		log.Debug().Msg("No .env file found, using existing environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
