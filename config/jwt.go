package config

import (
	"fmt"
	"log/slog"
	"time"
)

const (
	devSecret          = "dev-only-secret-change-this-in-production!"
	MinJWTSecretLength = 32
	MinJWTTTL          = 24 * time.Hour
	MaxJWTTTL          = 7 * 24 * time.Hour
)

type JWTConfig struct {
	Secret string        `env:"SECRET"`
	TTL    time.Duration `env:"TTL" envDefault:"72h"`
	Issuer string        `env:"ISSUER" envDefault:"blog-api"`
}

func (j *JWTConfig) validate(development bool) error {
	if j.Secret == "" {
		if !development {
			return fmt.Errorf("JWT_SECRET is required")
		}
		slog.Warn("JWT_SECRET not set, using development secret")
		j.Secret = devSecret
	}
	if !development && len(j.Secret) < MinJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes long, got %d", MinJWTSecretLength, len(j.Secret))
	}
	if !development && j.Secret == devSecret {
		return fmt.Errorf("JWT_SECRET is the development default and must not be used")
	}

	if j.TTL < MinJWTTTL || j.TTL > MaxJWTTTL {
		return fmt.Errorf("JWT_TTL must be between %s and %s, got %s", MinJWTTTL, MaxJWTTTL, j.TTL)
	}
	return nil
}
