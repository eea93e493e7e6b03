// Package config loads process configuration from defaults, an optional
// YAML file, and HMP_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config contains process configuration. Keys are flat; the HMP_ env prefix
// maps HMP_DATABASE_URL to database_url and so on.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr is the HTTP listen address, e.g. ":8081".
	Addr string `koanf:"addr"`

	// DatabaseURL is the PostgreSQL connection URL.
	DatabaseURL string `koanf:"database_url"`

	// GeminiAPIKey authenticates against the Gemini API.
	GeminiAPIKey string `koanf:"gemini_api_key"`

	// ScraperBaseURL and ScraperAPIKey point at the LinkedIn scraping
	// service.
	ScraperBaseURL string `koanf:"scraper_base_url"`
	ScraperAPIKey  string `koanf:"scraper_api_key"`

	// ScrapePollSeconds is the gap between import status polls;
	// ScrapeMaxPolls bounds the total wait.
	ScrapePollSeconds int `koanf:"scrape_poll_seconds"`
	ScrapeMaxPolls    int `koanf:"scrape_max_polls"`

	// JWTSecret signs access tokens; JWTExpirationHours is their lifetime.
	JWTSecret          string `koanf:"jwt_secret"`
	JWTExpirationHours int    `koanf:"jwt_expiration_hours"`

	// BcryptCost tunes password hashing; PasswordPepper is an optional
	// global secret mixed into every password.
	BcryptCost     int    `koanf:"bcrypt_cost"`
	PasswordPepper string `koanf:"password_pepper"`
}

// New returns a Config with defaults applied.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":8081",
		ScrapePollSeconds:  5,
		ScrapeMaxPolls:     60,
		JWTExpirationHours: 24,
		BcryptCost:         12,
	}
}

// Load builds a Config by layering defaults, an optional YAML file, and
// environment variables. Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if HMP_CONFIG is set
//  3. env (prefix HMP_)
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("HMP_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider("HMP_", ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "hmp_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if c.ScrapePollSeconds < 1 {
		return fmt.Errorf("scrape_poll_seconds must be at least 1, got %d", c.ScrapePollSeconds)
	}
	if c.ScrapeMaxPolls < 1 {
		return fmt.Errorf("scrape_max_polls must be at least 1, got %d", c.ScrapeMaxPolls)
	}
	return nil
}
