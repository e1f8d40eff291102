package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Database DatabaseConfig `envPrefix:"DB_"`
	JWT      JWTConfig      `envPrefix:"JWT_"`

	BcryptCost   int  `env:"BCRYPT_COST" envDefault:"10"`
	CookieSecure bool `env:"COOKIE_SECURE" envDefault:"false"`

	// DeleteUserContent removes a user's posts and comments together with the account.
	DeleteUserContent bool `env:"DELETE_USER_CONTENT" envDefault:"false"`

	SigninRateLimit float64 `env:"SIGNIN_RATE_LIMIT" envDefault:"0.5"`
	SigninBurst     int     `env:"SIGNIN_BURST" envDefault:"5"`

	// CORSOrigin is the single browser origin allowed to send credentialed
	// requests. Empty means same-origin only.
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"http://localhost:5173"`

	// TrustedProxies lists the proxy IPs or CIDRs whose X-Forwarded-For is
	// believed when resolving the client IP. Empty means the peer address.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	DefaultProfilePicture string `env:"DEFAULT_PROFILE_PICTURE"`
	DefaultPostImage      string `env:"DEFAULT_POST_IMAGE"`
}

type DatabaseConfig struct {
	Driver   string `env:"DRIVER" envDefault:"postgres"`
	DSN      string `env:"DSN"`
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME" envDefault:"blog"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// SlogLevel maps LOG_LEVEL onto slog; unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads an optional .env file and parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return Parse()
}

// Parse builds a Config from the current process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.Database.Driver)
	}

	if c.BcryptCost < MinBcryptCost || c.BcryptCost > MaxBcryptCost {
		clamped := min(max(c.BcryptCost, MinBcryptCost), MaxBcryptCost)
		slog.Warn("BCRYPT_COST out of range, clamping", "value", c.BcryptCost, "using", clamped)
		c.BcryptCost = clamped
	}

	if c.SigninRateLimit <= 0 {
		c.SigninRateLimit = 0.5
	}
	if c.SigninBurst <= 0 {
		c.SigninBurst = 5
	}
	if strings.TrimSpace(c.CORSOrigin) == "*" {
		return errors.New("CORS_ORIGIN cannot be a wildcard when cookies carry the session")
	}
	for i, proxy := range c.TrustedProxies {
		proxy = strings.TrimSpace(proxy)
		c.TrustedProxies[i] = proxy
		if net.ParseIP(proxy) != nil {
			continue
		}
		if _, _, err := net.ParseCIDR(proxy); err != nil {
			return fmt.Errorf("TRUSTED_PROXIES entry %q is not an IP or CIDR", proxy)
		}
	}

	return c.JWT.validate(c.IsDevelopment())
}

const (
	MinBcryptCost = 10
	MaxBcryptCost = 14
)

// Default returns a development configuration backed by in-memory sqlite.
func Default() *Config {
	return &Config{
		Env:             "development",
		Port:            8080,
		LogLevel:        "info",
		Database:        DatabaseConfig{Driver: DriverSQLite, DSN: "file::memory:"},
		JWT:             JWTConfig{Secret: devSecret, TTL: 72 * time.Hour, Issuer: "blog-api"},
		BcryptCost:      MinBcryptCost,
		SigninRateLimit: 0.5,
		SigninBurst:     5,
		CORSOrigin:      "http://localhost:5173",
	}
}
