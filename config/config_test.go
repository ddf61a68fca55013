package config_test

import (
	"testing"
	"time"

	"go-jobportal-backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, config.StoreMongo, cfg.StoreDriver)
	assert.Equal(t, "jobportal", cfg.MongoDatabase)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 100, cfg.RateLimitGlobalThreshold)
	assert.Equal(t, 10, cfg.RateLimitAuthThreshold)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.True(t, cfg.RunMigrations)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "prod-secret")
	t.Setenv("STORE_DRIVER", "POSTGRES")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/jobs")
	t.Setenv("JWT_EXPIRATION_MINUTES", "30")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com/, https://b.example.com")
	t.Setenv("DB_RUN_MIGRATIONS", "false")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, config.StorePostgres, cfg.StoreDriver)
	assert.Equal(t, "prod-secret", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiration)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.RunMigrations)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadConfig_ProductionNeedsSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := config.LoadConfig()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadConfig_PostgresNeedsURL(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := config.LoadConfig()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoadConfig_UnknownDriver(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("STORE_DRIVER", "cassandra")

	_, err := config.LoadConfig()
	assert.ErrorContains(t, err, "STORE_DRIVER")
}
