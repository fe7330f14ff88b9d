package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lvillani/vagrant-metadata/internal/config"
)

// ConfigValues holds form values that map to Config struct.
// Numeric and duration fields are stored as strings for form editing.
type ConfigValues struct {
	ManifestOutput string

	Workers string

	CacheEnabled   bool
	CacheTTL       string
	CacheDirectory string

	LogLevel  string
	LogFormat string
}

// FromConfig converts a Config to ConfigValues for form editing
func FromConfig(cfg *config.Config) *ConfigValues {
	return &ConfigValues{
		ManifestOutput: cfg.Manifest.Output,

		Workers: strconv.Itoa(cfg.Digest.Workers),

		CacheEnabled:   cfg.Cache.Enabled,
		CacheTTL:       formatDuration(cfg.Cache.TTL),
		CacheDirectory: cfg.Cache.Directory,

		LogLevel:  cfg.Logging.Level,
		LogFormat: cfg.Logging.Format,
	}
}

// ToConfig converts the form values back into a validated Config. Empty
// fields fall back to their defaults.
func (v *ConfigValues) ToConfig() (*config.Config, error) {
	workers, err := parseIntOrDefault(v.Workers, config.DefaultWorkers)
	if err != nil {
		return nil, fmt.Errorf("invalid workers: %w", err)
	}

	ttl, err := parseDurationOrDefault(v.CacheTTL, config.DefaultCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid cache TTL: %w", err)
	}

	cfg := &config.Config{
		Manifest: config.ManifestConfig{
			Output: strings.TrimSpace(v.ManifestOutput),
		},
		Digest: config.DigestConfig{
			Workers: workers,
		},
		Cache: config.CacheConfig{
			Enabled:   v.CacheEnabled,
			TTL:       ttl,
			Directory: strings.TrimSpace(v.CacheDirectory),
		},
		Logging: config.LoggingConfig{
			Level:  v.LogLevel,
			Format: v.LogFormat,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// formatDuration renders d the way a user would type it, e.g. 720h or 90m
func formatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	s := d.String()
	if strings.HasSuffix(s, "m0s") {
		s = strings.TrimSuffix(s, "0s")
	}
	if strings.HasSuffix(s, "h0m") {
		s = strings.TrimSuffix(s, "0m")
	}
	return s
}

func parseDurationOrDefault(s string, defaultVal time.Duration) (time.Duration, error) {
	if strings.TrimSpace(s) == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(strings.TrimSpace(s))
}

func parseIntOrDefault(s string, defaultVal int) (int, error) {
	if strings.TrimSpace(s) == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(strings.TrimSpace(s))
}
