package config

import (
	"fmt"
	"os"
	"strconv"
)

// Defaults for token settings read from the environment.
const (
	DefaultJWTExpirationHours = 24
	DefaultJWTIssuer          = "resume-ats"
)

// JWTConfig holds the settings the server uses to validate bearer tokens.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
	Issuer          string
}

// NewJWTConfig reads JWT_SECRET (required), JWT_EXPIRATION_HOURS (default 24)
// and JWT_ISSUER (default "resume-ats") from the process environment.
func NewJWTConfig() (*JWTConfig, error) {
	return JWTConfigFromLookup(os.LookupEnv)
}

// JWTConfigFromLookup builds a JWTConfig from an arbitrary variable source.
func JWTConfigFromLookup(lookup func(string) (string, bool)) (*JWTConfig, error) {
	cfg := &JWTConfig{
		ExpirationHours: DefaultJWTExpirationHours,
		Issuer:          DefaultJWTIssuer,
	}

	if secret, ok := lookup("JWT_SECRET"); ok {
		cfg.Secret = secret
	}

	if raw, ok := lookup("JWT_EXPIRATION_HOURS"); ok && raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %w", err)
		}
		cfg.ExpirationHours = hours
	}

	if issuer, ok := lookup("JWT_ISSUER"); ok && issuer != "" {
		cfg.Issuer = issuer
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required but not set")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
