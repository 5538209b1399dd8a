// Package config loads runtime settings from the environment. A .env file in
// the working directory is read first when present; real environment
// variables win over it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/kitesurf-admin/internal/database"
)

// Session store backends.
const (
	SessionStoreMemory   = "memory"
	SessionStoreDatabase = "database"
	SessionStoreRedis    = "redis"
)

// devSessionSecret signs cookies outside production when SESSION_SECRET is unset.
const devSessionSecret = "kitesurf-dev-secret-change-me"

type Config struct {
	Env      string // development or production
	Port     string
	LogLevel string

	Database database.Config

	SessionSecret  string
	SessionTTL     time.Duration
	SessionStore   string
	SessionRolling bool
	SessionSweep   time.Duration

	FrontendURLs []string
	TrustProxy   bool

	BcryptCost    int
	AdminPassword string

	RabbitMQURL    string
	BookingQueue   string
	MetricsEnabled bool

	Redis     RedisConfig
	RateLimit RateLimitConfig
}

// IsProduction switches on secure cross-site cookies and JSON logs.
func (c Config) IsProduction() bool { return c.Env == "production" }

// LoadDotEnv reads .env if it exists. Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load builds a Config from the environment and validates it.
func Load() (Config, error) {
	env := strings.ToLower(envStr("APP_ENV", envStr("NODE_ENV", "development")))
	if env == "prod" {
		env = "production"
	}
	dbURL := envStr("DATABASE_URL", "")

	defaultStore := SessionStoreMemory
	if dbURL != "" {
		defaultStore = SessionStoreDatabase
	}

	cfg := Config{
		Env:      env,
		Port:     envStr("PORT", "5000"),
		LogLevel: envStr("LOG_LEVEL", "info"),
		Database: database.Config{
			DatabaseURL: dbURL,
			SQLitePath:  envStr("SQLITE_PATH", "kitesurfing.db"),
			Pool:        database.PoolConfigFromEnv(),
		},
		SessionSecret:  envStr("SESSION_SECRET", ""),
		SessionTTL:     envDur("SESSION_TTL", 24*time.Hour),
		SessionStore:   strings.ToLower(envStr("SESSION_STORE", defaultStore)),
		SessionRolling: envBool("SESSION_ROLLING", false),
		SessionSweep:   envDur("SESSION_SWEEP_INTERVAL", 15*time.Minute),
		FrontendURLs:   envList("FRONTEND_URL", []string{"http://localhost:3000"}),
		TrustProxy:     envBool("TRUST_PROXY", true),
		BcryptCost:     envInt("BCRYPT_COST", 10),
		AdminPassword:  envStr("ADMIN_DEFAULT_PASSWORD", "password"),
		RabbitMQURL:    envStr("RABBITMQ_URL", ""),
		BookingQueue:   envStr("BOOKING_EVENTS_QUEUE", "booking.events"),
		MetricsEnabled: envBool("METRICS_ENABLED", true),
		Redis:          LoadRedisConfig(),
		RateLimit:      LoadRateLimitConfig(),
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.SessionSecret == "" {
		if c.IsProduction() {
			return errors.New("SESSION_SECRET is required in production")
		}
		c.SessionSecret = devSessionSecret
	}
	switch c.SessionStore {
	case SessionStoreMemory, SessionStoreDatabase:
	case SessionStoreRedis:
		if !c.Redis.Configured() {
			return errors.New("SESSION_STORE=redis needs REDIS_ADDR or REDIS_HOST")
		}
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", c.SessionStore)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	return nil
}
