package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// devJWTSecret is only accepted when APP_ENV=development.
const devJWTSecret = "dev-only-insecure-secret-change-me"

type Config struct {
	Port     string
	AppEnv   string
	LogLevel string

	StoreDriver   string
	MongoURI      string
	MongoDatabase string
	DBUrl         string
	RunMigrations bool

	JWTSecret     string
	JWTIssuer     string
	JWTExpiration time.Duration
	BcryptCost    int

	// Redis for distributed rate limiting; empty URL means in-memory fallback
	RedisURL      string
	RedisPassword string

	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	RateLimitAuthThreshold   int

	CORSAllowedOrigins []string
	RequestTimeout     time.Duration
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func LoadConfig() (*Config, error) {
	// Load .env file when present; real environment variables win.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Port:     v.GetString("PORT"),
		AppEnv:   strings.ToLower(v.GetString("APP_ENV")),
		LogLevel: v.GetString("LOG_LEVEL"),

		StoreDriver:   strings.ToLower(v.GetString("STORE_DRIVER")),
		MongoURI:      v.GetString("MONGO_URI"),
		MongoDatabase: v.GetString("MONGO_DATABASE"),
		DBUrl:         v.GetString("DATABASE_URL"),
		RunMigrations: v.GetBool("DB_RUN_MIGRATIONS"),

		JWTSecret:     v.GetString("JWT_SECRET"),
		JWTIssuer:     v.GetString("JWT_ISSUER"),
		JWTExpiration: time.Duration(v.GetInt("JWT_EXPIRATION_MINUTES")) * time.Minute,
		BcryptCost:    v.GetInt("BCRYPT_COST"),

		RedisURL:      v.GetString("REDIS_URL"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),

		RateLimitWindowSeconds:   v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		RateLimitGlobalThreshold: v.GetInt("RATE_LIMIT_GLOBAL_THRESHOLD"),
		RateLimitAuthThreshold:   v.GetInt("RATE_LIMIT_AUTH_THRESHOLD"),

		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RequestTimeout:     time.Duration(v.GetInt("REQUEST_TIMEOUT_SECONDS")) * time.Second,
	}

	if cfg.JWTSecret == "" && cfg.IsDevelopment() {
		cfg.JWTSecret = devJWTSecret
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", StoreMongo)
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "jobportal")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_RUN_MIGRATIONS", true)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "jobportal")
	v.SetDefault("JWT_EXPIRATION_MINUTES", 1440)
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	v.SetDefault("RATE_LIMIT_GLOBAL_THRESHOLD", 100)
	v.SetDefault("RATE_LIMIT_AUTH_THRESHOLD", 10)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", 15)
}

func (c *Config) validate() error {
	var errs []error
	switch c.StoreDriver {
	case StoreMongo, StoreMemory:
	case StorePostgres:
		if c.DBUrl == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when STORE_DRIVER=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required outside development"))
	}
	if c.JWTExpiration <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRATION_MINUTES must be positive"))
	}
	if c.RateLimitWindowSeconds <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WINDOW_SECONDS must be positive"))
	}
	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimRight(strings.TrimSpace(part), "/"); p != "" {
			out = append(out, p)
		}
	}
	return out
}
