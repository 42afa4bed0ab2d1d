package config

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func defaultRate(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parsing decimal %q: %v", s, err)
	}
	return d
}

func TestLoadDefaults(t *testing.T) {
	// Clear any env vars that might affect defaults
	for _, key := range []string{"DATABASE_URL", "HTTP_PORT", "ADMIN_API_KEY", "DEFAULT_USD_IDR_RATE", "TIMEZONE_OFFSET_HOURS", "RATE_WORKER_INTERVAL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	if cfg.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want empty", cfg.DatabaseURL)
	}
	if cfg.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %q, want 8080", cfg.HTTPPort)
	}
	if !cfg.DefaultUSDIDRRate.Equal(defaultRate(t, "16000")) {
		t.Errorf("DefaultUSDIDRRate = %s, want 16000", cfg.DefaultUSDIDRRate)
	}
	if cfg.TimezoneOffsetHours != 7 {
		t.Errorf("TimezoneOffsetHours = %d, want 7", cfg.TimezoneOffsetHours)
	}
	if cfg.RateWorkerInterval != 6*time.Hour {
		t.Errorf("RateWorkerInterval = %v, want 6h", cfg.RateWorkerInterval)
	}
	if cfg.SnapshotWorkerInterval != 24*time.Hour {
		t.Errorf("SnapshotWorkerInterval = %v, want 24h", cfg.SnapshotWorkerInterval)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/testdb")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DEFAULT_USD_IDR_RATE", "15750.25")
	t.Setenv("TIMEZONE_OFFSET_HOURS", "8")
	t.Setenv("RATE_WORKER_INTERVAL", "30m")

	cfg := Load()

	if cfg.DatabaseURL != "postgres://localhost/testdb" {
		t.Errorf("DatabaseURL = %q, want override", cfg.DatabaseURL)
	}
	if cfg.HTTPPort != "9090" {
		t.Errorf("HTTPPort = %q, want 9090", cfg.HTTPPort)
	}
	if !cfg.DefaultUSDIDRRate.Equal(defaultRate(t, "15750.25")) {
		t.Errorf("DefaultUSDIDRRate = %s, want 15750.25", cfg.DefaultUSDIDRRate)
	}
	if cfg.TimezoneOffsetHours != 8 {
		t.Errorf("TimezoneOffsetHours = %d, want 8", cfg.TimezoneOffsetHours)
	}
	if cfg.RateWorkerInterval != 30*time.Minute {
		t.Errorf("RateWorkerInterval = %v, want 30m", cfg.RateWorkerInterval)
	}
}

func TestLoadInvalidEnvFallsBackToDefault(t *testing.T) {
	t.Setenv("DEFAULT_USD_IDR_RATE", "not-a-number")
	t.Setenv("TIMEZONE_OFFSET_HOURS", "west")
	t.Setenv("RATE_WORKER_INTERVAL", "invalid-duration")

	cfg := Load()

	if !cfg.DefaultUSDIDRRate.Equal(defaultRate(t, "16000")) {
		t.Errorf("DefaultUSDIDRRate = %s, want default 16000 on invalid input", cfg.DefaultUSDIDRRate)
	}
	if cfg.TimezoneOffsetHours != 7 {
		t.Errorf("TimezoneOffsetHours = %d, want default 7 on invalid input", cfg.TimezoneOffsetHours)
	}
	if cfg.RateWorkerInterval != 6*time.Hour {
		t.Errorf("RateWorkerInterval = %v, want default 6h on invalid input", cfg.RateWorkerInterval)
	}
}

func TestTimezone(t *testing.T) {
	cfg := Config{TimezoneOffsetHours: 7}
	loc := cfg.Timezone()

	at := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC).In(loc)
	if at.Hour() != 7 {
		t.Errorf("hour in WIB = %d, want 7", at.Hour())
	}
}
