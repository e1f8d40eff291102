package config

import (
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

const prodSecret = "a-production-secret-that-is-long-enough"

// unsetenv removes keys for the duration of the test.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestParseDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_DRIVER", "sqlite")
	unsetenv(t, "JWT_SECRET", "JWT_TTL", "JWT_ISSUER", "BCRYPT_COST", "DELETE_USER_CONTENT", "TRUSTED_PROXIES")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, devSecret, cfg.JWT.Secret)
	assert.Equal(t, 72*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "blog-api", cfg.JWT.Issuer)
	assert.Equal(t, MinBcryptCost, cfg.BcryptCost)
	assert.False(t, cfg.DeleteUserContent)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestParseProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("JWT_SECRET", prodSecret)
	t.Setenv("JWT_TTL", "48h")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("PORT", "9000")
	t.Setenv("DELETE_USER_CONTENT", "true")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 172.16.0.0/12")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, []string{"10.0.0.1", "172.16.0.0/12"}, cfg.TrustedProxies)
	assert.Equal(t, 48*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.True(t, cfg.DeleteUserContent)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing secret", map[string]string{"JWT_SECRET": ""}, "JWT_SECRET is required"},
		{"short secret", map[string]string{"JWT_SECRET": "short"}, "at least"},
		{"dev secret in production", map[string]string{"JWT_SECRET": devSecret}, "development default"},
		{"ttl too short", map[string]string{"JWT_TTL": "1h"}, "JWT_TTL"},
		{"ttl too long", map[string]string{"JWT_TTL": "200h"}, "JWT_TTL"},
		{"unknown driver", map[string]string{"DB_DRIVER": "mysql"}, "DB_DRIVER"},
		{"wildcard cors", map[string]string{"CORS_ORIGIN": "*"}, "CORS_ORIGIN"},
		{"bad proxy", map[string]string{"TRUSTED_PROXIES": "10.0.0.1,proxy.local"}, "TRUSTED_PROXIES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", "production")
			t.Setenv("DB_DRIVER", "postgres")
			t.Setenv("JWT_SECRET", prodSecret)
			t.Setenv("JWT_TTL", "72h")
			t.Setenv("CORS_ORIGIN", "https://blog.example.com")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Parse()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBcryptCostClampsToNearestBound(t *testing.T) {
	for in, want := range map[string]int{
		"4":  MinBcryptCost,
		"10": 10,
		"14": 14,
		"15": MaxBcryptCost,
		"31": MaxBcryptCost,
	} {
		t.Run(in, func(t *testing.T) {
			t.Setenv("APP_ENV", "development")
			t.Setenv("DB_DRIVER", "sqlite")
			t.Setenv("JWT_TTL", "72h")
			t.Setenv("BCRYPT_COST", in)

			cfg, err := Parse()
			require.NoError(t, err)
			assert.Equal(t, want, cfg.BcryptCost)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	} {
		assert.Equal(t, want, Config{LogLevel: in}.SlogLevel(), in)
	}
}

func TestDatabaseDSN(t *testing.T) {
	pg := DatabaseConfig{Driver: DriverPostgres, Host: "db", Port: 5432, User: "blog", Password: "pw", Name: "blog", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=blog password=pw dbname=blog sslmode=disable", pg.dsn())

	pg.DSN = "postgres://override"
	assert.Equal(t, "postgres://override", pg.dsn())

	assert.True(t, strings.HasSuffix(DatabaseConfig{Driver: DriverSQLite}.dsn(), ".db"))
}

func TestInitDBAndMigrateSQLite(t *testing.T) {
	db, err := InitDB(Default().Database, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	assert.True(t, db.Migrator().HasTable("users"))
	assert.True(t, db.Migrator().HasTable("posts"))
	assert.True(t, db.Migrator().HasTable("comments"))
	assert.True(t, db.Migrator().HasIndex("posts", "idx_posts_slug"))
}
