package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DatabaseURL            string
	HTTPPort               string
	AdminAPIKey            string
	RateAPIURL             string
	RateAPIKey             string
	DefaultUSDIDRRate      decimal.Decimal
	TimezoneOffsetHours    int
	RateWorkerInterval     time.Duration
	SnapshotWorkerInterval time.Duration
	SheetsSpreadsheetID    string
	SheetsCredentialsJSON  string
	ExportXLSXPath         string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		DatabaseURL:            envOrDefaultWarn("DATABASE_URL", ""),
		HTTPPort:               envOrDefault("HTTP_PORT", "8080"),
		AdminAPIKey:            envOrDefault("ADMIN_API_KEY", ""),
		RateAPIURL:             envOrDefault("RATE_API_URL", "https://api.currencyfreaks.com/v2.0/rates/latest"),
		RateAPIKey:             envOrDefault("RATE_API_KEY", ""),
		DefaultUSDIDRRate:      envOrDefaultDecimal("DEFAULT_USD_IDR_RATE", decimal.NewFromInt(16000)),
		TimezoneOffsetHours:    envOrDefaultInt("TIMEZONE_OFFSET_HOURS", 7),
		RateWorkerInterval:     envOrDefaultDuration("RATE_WORKER_INTERVAL", 6*time.Hour),
		SnapshotWorkerInterval: envOrDefaultDuration("SNAPSHOT_WORKER_INTERVAL", 24*time.Hour),
		SheetsSpreadsheetID:    envOrDefault("SHEETS_SPREADSHEET_ID", ""),
		SheetsCredentialsJSON:  envOrDefault("SHEETS_CREDENTIALS_JSON", ""),
		ExportXLSXPath:         envOrDefault("EXPORT_XLSX_PATH", "portfolio-report.xlsx"),
	}
}

// Timezone returns the fixed display timezone. History dates are rendered
// and daily rate caches roll over in this zone, WIB (UTC+7) by default.
func (c Config) Timezone() *time.Location {
	name := "UTC+" + strconv.Itoa(c.TimezoneOffsetHours)
	if c.TimezoneOffsetHours == 7 {
		name = "WIB"
	}
	return time.FixedZone(name, c.TimezoneOffsetHours*3600)
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultWarn(key, defaultVal string) string {
	v := envOrDefault(key, defaultVal)
	if v == "" {
		slog.Warn("required env var not set", "key", key)
	}
	return v
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return n
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}

func envOrDefaultDecimal(key string, defaultVal decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			slog.Warn("invalid decimal env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}
