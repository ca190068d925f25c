package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/i474232898/gas-sensor-assistant/internal/store"
)

var configKeys = []string{
	"APP_ENV", "LOG_LEVEL", "PORT", "CORS_ALLOW_ORIGINS",
	"STORE_TIMEOUT", "STORE_PROBE_INTERVAL", "STORE_BACKEND", "SENSOR_FIXTURE",
	"FIREBASE_DATABASE_URL", "FIREBASE_PATH", "FIREBASE_CREDENTIALS", "FIREBASE_CREDENTIALS_FILE",
	"BREAKER_FAILURES", "BREAKER_OPEN_TIMEOUT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "5000" {
		t.Errorf("Port=%q want 5000", cfg.Port)
	}
	if cfg.AppEnv != "dev" || cfg.LogLevel != slog.LevelInfo {
		t.Errorf("AppEnv=%q LogLevel=%v", cfg.AppEnv, cfg.LogLevel)
	}
	if cfg.CORSAllowOrigins != "*" {
		t.Errorf("CORSAllowOrigins=%q want *", cfg.CORSAllowOrigins)
	}
	if cfg.StoreTimeout != 5*time.Second || cfg.ProbeInterval != time.Minute {
		t.Errorf("StoreTimeout=%v ProbeInterval=%v", cfg.StoreTimeout, cfg.ProbeInterval)
	}
	if cfg.Store.Backend != store.BackendFirebase {
		t.Errorf("Backend=%q want firebase", cfg.Store.Backend)
	}
	fb := cfg.Store.Firebase
	if fb.Path != "sensor_data" || fb.CredentialsFile != "firebase-credentials.json" || fb.DatabaseURL == "" {
		t.Errorf("unexpected firebase options %+v", fb)
	}
	if cfg.Store.Breaker.ConsecutiveFailures != 5 || cfg.Store.Breaker.OpenTimeout != 30*time.Second {
		t.Errorf("unexpected breaker options %+v", cfg.Store.Breaker)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("PORT", "8081")
	t.Setenv("STORE_TIMEOUT", "2s")
	t.Setenv("STORE_PROBE_INTERVAL", "0")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("SENSOR_FIXTURE", "testdata/sensors.json")
	t.Setenv("FIREBASE_CREDENTIALS", ` {"type":"service_account"} `)
	t.Setenv("BREAKER_FAILURES", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AppEnv != "prod" || cfg.LogLevel != slog.LevelWarn || cfg.Port != "8081" {
		t.Errorf("AppEnv=%q LogLevel=%v Port=%q", cfg.AppEnv, cfg.LogLevel, cfg.Port)
	}
	if cfg.StoreTimeout != 2*time.Second || cfg.ProbeInterval != 0 {
		t.Errorf("StoreTimeout=%v ProbeInterval=%v", cfg.StoreTimeout, cfg.ProbeInterval)
	}
	if cfg.Store.Backend != store.BackendMemory || cfg.Store.FixtureFile != "testdata/sensors.json" {
		t.Errorf("unexpected store options %+v", cfg.Store)
	}
	if cfg.Store.Firebase.CredentialsJSON != `{"type":"service_account"}` {
		t.Errorf("CredentialsJSON=%q", cfg.Store.Firebase.CredentialsJSON)
	}
	if cfg.Store.Breaker.ConsecutiveFailures != 3 {
		t.Errorf("ConsecutiveFailures=%d want 3", cfg.Store.Breaker.ConsecutiveFailures)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"APP_ENV":              "staging",
		"LOG_LEVEL":            "verbose",
		"PORT":                 "http",
		"STORE_TIMEOUT":        "soon",
		"STORE_PROBE_INTERVAL": "5 minutes",
		"STORE_BACKEND":        "redis",
		"BREAKER_FAILURES":     "many",
		"BREAKER_OPEN_TIMEOUT": "-",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}

	t.Run("zero timeout", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORE_TIMEOUT", "0s")
		if _, err := Load(); err == nil {
			t.Fatal("expected error for zero STORE_TIMEOUT")
		}
	})
}
