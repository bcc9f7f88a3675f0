package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/pkg/validator"
	"github.com/joho/godotenv"
)

type Config struct {
	Backend  BackendConfig
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Cache    CacheConfig
	Session  SessionConfig
	Jobs     JobsConfig
	Holiday  HolidayConfig
}

// BackendConfig points at the leave management API the BFF fronts.
type BackendConfig struct {
	BaseURL  string        `validate:"required,url"`
	Timeout  time.Duration `validate:"min=0"`
	MaxPages int           `validate:"min=1,max=1000"`
}

// DatabaseConfig is optional. Without a URL holidays come from the built-in
// list and cannot be edited.
type DatabaseConfig struct {
	URL      string
	MaxConns int32 `validate:"min=0"`
	MinConns int32 `validate:"min=0"`
}

// JWTConfig holds the secret shared with the backend. Empty disables
// signature verification at the edge.
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Name           string `validate:"required"`
	Version        string
	Port           int    `validate:"min=1,max=65535"`
	Env            string `validate:"oneof=development staging production test"`
	LogLevel       string `validate:"oneof=debug info warn error"`
	AllowedOrigins []string
}

type CacheConfig struct {
	TTL time.Duration `validate:"min=0"`
}

type SessionConfig struct {
	IdleTimeout time.Duration `validate:"min=0"`
}

// JobsConfig holds scheduler intervals. Zero disables a job.
type JobsConfig struct {
	CacheSweepInterval   time.Duration `validate:"min=0"`
	SessionSweepInterval time.Duration `validate:"min=0"`
	HolidaySeedInterval  time.Duration `validate:"min=0"`
}

type HolidayConfig struct {
	Country string `validate:"required,len=2"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
		slog.Debug("No .env file found, using process environment")
	}

	config := &Config{}

	// Backend configuration
	backendTimeout, err := getEnvDuration("BACKEND_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	backendMaxPages, err := getEnvInt("BACKEND_MAX_PAGES", 50)
	if err != nil {
		return nil, err
	}

	config.Backend = BackendConfig{
		BaseURL:  strings.TrimRight(getEnv("BACKEND_BASE_URL", "http://localhost:8081/api"), "/"),
		Timeout:  backendTimeout,
		MaxPages: backendMaxPages,
	}

	// Database configuration
	dbMaxConns, err := getEnvInt("DB_MAX_CONNS", 5)
	if err != nil {
		return nil, err
	}
	dbMinConns, err := getEnvInt("DB_MIN_CONNS", 1)
	if err != nil {
		return nil, err
	}

	config.Database = DatabaseConfig{
		URL:      getEnv("DATABASE_URL", ""),
		MaxConns: int32(dbMaxConns),
		MinConns: int32(dbMinConns),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Application configuration
	appPort, err := getEnvInt("APP_PORT", 8080)
	if err != nil {
		return nil, err
	}

	config.App = AppConfig{
		Name:           getEnv("APP_NAME", "leave-calendar"),
		Version:        getEnv("APP_VERSION", "dev"),
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}

	// Cache and session configuration
	cacheTTL, err := getEnvDuration("CACHE_TTL", 30*time.Second)
	if err != nil {
		return nil, err
	}
	sessionIdle, err := getEnvDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	config.Cache = CacheConfig{TTL: cacheTTL}
	config.Session = SessionConfig{IdleTimeout: sessionIdle}

	// Scheduler configuration
	cacheSweep, err := getEnvDuration("JOB_CACHE_SWEEP_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}
	sessionSweep, err := getEnvDuration("JOB_SESSION_SWEEP_INTERVAL", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	holidaySeed, err := getEnvDuration("JOB_HOLIDAY_SEED_INTERVAL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	config.Jobs = JobsConfig{
		CacheSweepInterval:   cacheSweep,
		SessionSweepInterval: sessionSweep,
		HolidaySeedInterval:  holidaySeed,
	}

	config.Holiday = HolidayConfig{
		Country: strings.ToUpper(getEnv("HOLIDAY_COUNTRY", "RW")),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	return validator.Struct(c)
}

// HasDatabase reports whether a holidays store is configured.
func (c *Config) HasDatabase() bool {
	return c.Database.URL != ""
}

// SlogLevel maps LOG_LEVEL to a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.App.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
