package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/gas-sensor-assistant/internal/store"
)

const (
	defaultDatabaseURL     = "https://projet-fin-d-etude-4632f-default-rtdb.firebaseio.com/"
	defaultSensorPath      = "sensor_data"
	defaultCredentialsFile = "firebase-credentials.json"
)

type AppConfig struct {
	AppEnv   string
	LogLevel slog.Level

	Port string

	// CORSAllowOrigins is passed to the CORS middleware as is.
	CORSAllowOrigins string

	// StoreTimeout bounds every read of the sensor collection.
	StoreTimeout time.Duration

	// ProbeInterval controls how often the store is pinged (0 = disabled).
	ProbeInterval time.Duration

	Store store.Options
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
	cfg := &AppConfig{}

	cfg.AppEnv = getenvDefault("APP_ENV", "dev")
	switch cfg.AppEnv {
	case "dev", "prod":
	default:
		return nil, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", cfg.AppEnv)
	}

	level, err := parseLogLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	cfg.Port = getenvDefault("PORT", "5000")
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", cfg.Port, err)
	}
	cfg.CORSAllowOrigins = getenvDefault("CORS_ALLOW_ORIGINS", "*")

	if cfg.StoreTimeout, err = getenvDuration("STORE_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.StoreTimeout <= 0 {
		return nil, fmt.Errorf("invalid STORE_TIMEOUT: must be positive")
	}
	if cfg.ProbeInterval, err = getenvDuration("STORE_PROBE_INTERVAL", time.Minute); err != nil {
		return nil, err
	}

	cfg.Store.Backend = getenvDefault("STORE_BACKEND", store.BackendFirebase)
	switch cfg.Store.Backend {
	case store.BackendFirebase, store.BackendMemory:
	default:
		return nil, fmt.Errorf("invalid STORE_BACKEND %q (allowed: %s, %s)", cfg.Store.Backend, store.BackendFirebase, store.BackendMemory)
	}
	cfg.Store.FixtureFile = os.Getenv("SENSOR_FIXTURE")
	cfg.Store.Firebase = store.FirebaseOptions{
		DatabaseURL:     getenvDefault("FIREBASE_DATABASE_URL", defaultDatabaseURL),
		Path:            getenvDefault("FIREBASE_PATH", defaultSensorPath),
		CredentialsJSON: strings.TrimSpace(os.Getenv("FIREBASE_CREDENTIALS")),
		CredentialsFile: getenvDefault("FIREBASE_CREDENTIALS_FILE", defaultCredentialsFile),
	}

	failures, err := getenvInt("BREAKER_FAILURES", 5)
	if err != nil {
		return nil, err
	}
	if failures <= 0 {
		return nil, fmt.Errorf("invalid BREAKER_FAILURES: must be positive")
	}
	cfg.Store.Breaker.ConsecutiveFailures = uint32(failures)
	if cfg.Store.Breaker.OpenTimeout, err = getenvDuration("BREAKER_OPEN_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
