package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Simplici0/printprofit/internal/pricing"
)

const (
	defaultDBPath         = "./dev.db"
	defaultPort           = "8080"
	defaultEnv            = "dev"
	defaultMigrationsDir  = "migrations"
	defaultCurrencySymbol = "₹"
	defaultTheme          = "light"
	defaultSessionTTL     = 12 * time.Hour
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env            string
	Port           string
	DBPath         string
	MigrationsDir  string
	CurrencySymbol string
	DefaultTheme   string
	SessionSecret  string
	SessionTTL     time.Duration
	LogLevel       string
	LogFile        string
	DefaultsFile   string

	// Defaults is the input record fresh and reset sessions start from.
	Defaults pricing.JobCostInput

	// Warnings collects non-fatal problems found while loading, for the
	// caller to log once a logger exists.
	Warnings []string
}

// IsDev reports whether the application runs in local development mode.
func (c Config) IsDev() bool {
	return c.Env == "" || c.Env == defaultEnv
}

// Load reads envFile (when present) and the process environment.
// A missing env file is not an error; production should use real env injection.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	cfg := Config{
		Env:            getenvWithDefault("APP_ENV", defaultEnv),
		Port:           getenvWithDefault("PORT", defaultPort),
		DBPath:         getenvWithDefault("DB_PATH", defaultDBPath),
		MigrationsDir:  getenvWithDefault("MIGRATIONS_DIR", defaultMigrationsDir),
		CurrencySymbol: getenvWithDefault("CURRENCY_SYMBOL", defaultCurrencySymbol),
		DefaultTheme:   strings.ToLower(getenvWithDefault("DEFAULT_THEME", defaultTheme)),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		LogFile:        os.Getenv("LOG_FILE"),
		DefaultsFile:   os.Getenv("DEFAULTS_FILE"),
		SessionTTL:     defaultSessionTTL,
		Defaults:       pricing.Defaults(),
	}

	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return Config{}, fmt.Errorf("SESSION_TTL must be a positive duration, got %q", raw)
		}
		cfg.SessionTTL = ttl
	}

	if cfg.DefaultTheme != "light" && cfg.DefaultTheme != "dark" {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("DEFAULT_THEME %q is not light or dark, using light", cfg.DefaultTheme))
		cfg.DefaultTheme = defaultTheme
	}

	if cfg.DefaultsFile != "" {
		defaults, err := LoadDefaults(cfg.DefaultsFile, cfg.Defaults)
		if err != nil {
			return Config{}, err
		}
		cfg.Defaults = defaults
	}

	if cfg.SessionSecret == "" {
		cfg.Warnings = append(cfg.Warnings, "SESSION_SECRET is not set, sessions will not survive a restart")
	}

	return cfg, nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
