package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides applies LIBDEPS_* environment overrides.
func ApplyEnvOverrides(cfg *Config) {
	setEnvString(&cfg.Root, "LIBDEPS_ROOT")
	setEnvString(&cfg.RootModule, "LIBDEPS_ROOT_MODULE")

	setEnvInt(&cfg.Scan.Workers, "LIBDEPS_SCAN_WORKERS")

	setEnvBool(&cfg.DB.Enabled, "LIBDEPS_DB_ENABLED")
	setEnvString(&cfg.DB.Path, "LIBDEPS_DB_PATH")

	setEnvDuration(&cfg.Watch.Debounce, "LIBDEPS_WATCH_DEBOUNCE")

	setEnvBool(&cfg.Metrics.Enabled, "LIBDEPS_METRICS_ENABLED")
	setEnvString(&cfg.Metrics.Address, "LIBDEPS_METRICS_ADDRESS")

	setEnvBool(&cfg.Tracing.Enabled, "LIBDEPS_TRACING_ENABLED")
	setEnvString(&cfg.Tracing.Endpoint, "LIBDEPS_TRACING_ENDPOINT")
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		slog.Debug("applying env override", "key", key, "value", val)
		*target = val
	}
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = i
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(strings.ToLower(val))
		if err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = b
		}
	}
}

func setEnvDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = d
		}
	}
}
