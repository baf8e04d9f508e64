package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName  string
	AppEnv   string
	Port     string
	Timezone *time.Location // calendar days for streaks and expiry

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Achievements
	SeedTemplates bool

	// Admin API
	AdminJWTSecret string
	AdminJWTExpiry time.Duration

	// Unlock e-mail (optional)
	EmailFrom     string
	ResendAPIKey  string
	NotifyEmailTo string

	// Observability (optional)
	SentryDSN string

	// Report export (S3-compatible: MinIO, AWS S3, Cloudflare R2, etc.; optional)
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string
	S3PresignExpiry time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:  envString("APP_NAME", "Goal Tracker"),
		AppEnv:   envString("APP_ENV", "development"),
		Port:     envString("PORT", "8090"),
		Timezone: envLocation("TIMEZONE", time.Local),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/goals.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Achievements
		SeedTemplates: envBool("SEED_TEMPLATES", true),

		// Admin API (ADMIN_JWT_SECRET optional in development, required in production)
		AdminJWTSecret: envString("ADMIN_JWT_SECRET", ""),
		AdminJWTExpiry: envDuration("ADMIN_JWT_EXPIRY", 24*time.Hour),

		// Email
		EmailFrom:     envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey:  envString("RESEND_API_KEY", ""),
		NotifyEmailTo: envString("NOTIFY_EMAIL_TO", ""),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage
		S3Region:        envString("S3_REGION", "us-east-1"),
		S3Bucket:        envString("S3_BUCKET", ""),
		S3AccessKey:     envString("S3_ACCESS_KEY", ""),
		S3SecretKey:     envString("S3_SECRET_KEY", ""),
		S3Endpoint:      envString("S3_ENDPOINT", ""),
		S3PresignExpiry: envDuration("S3_PRESIGN_EXPIRY", 1*time.Hour),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures all required services are configured for production deployments.
func validateProduction(cfg *Config) {
	if cfg.AdminJWTSecret == "" {
		slog.Error("production deployment requires ADMIN_JWT_SECRET",
			"hint", "set APP_ENV=development to run without admin authentication")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envLocation(key string, def *time.Location) *time.Location {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	loc, err := time.LoadLocation(v)
	if err != nil {
		slog.Warn("config invalid timezone, using default", "key", key, "value", v, "default", def.String())
		return def
	}
	return loc
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
