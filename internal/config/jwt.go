package config

import "fmt"

// JWTConfig holds configuration for token generation and validation.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// JWT extracts the JWT section, failing when the signing secret is missing.
func (c *Config) JWT() (*JWTConfig, error) {
	cfg := &JWTConfig{
		Secret:          c.JWTSecret,
		ExpirationHours: c.JWTExpirationHours,
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("jwt_secret is required but not set")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("jwt_expiration_hours must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
