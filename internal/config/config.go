package config

import (
	"fmt"
	"time"
)

// Config represents the application configuration
type Config struct {
	Manifest ManifestConfig `mapstructure:"manifest" yaml:"manifest"`
	Digest   DigestConfig   `mapstructure:"digest" yaml:"digest"`
	Cache    CacheConfig    `mapstructure:"cache" yaml:"cache"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// ManifestConfig contains manifest file settings
type ManifestConfig struct {
	// Output is the manifest path. Relative paths are resolved against
	// the box root.
	Output string `mapstructure:"output" yaml:"output"`
}

// DigestConfig contains checksum computation settings
type DigestConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// CacheConfig contains digest cache settings
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL       time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Directory string        `mapstructure:"directory" yaml:"directory"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration, replacing out of range values
// with their defaults
func (c *Config) Validate() error {
	if c.Manifest.Output == "" {
		c.Manifest.Output = DefaultManifestFile
	}
	if c.Digest.Workers < 1 {
		c.Digest.Workers = DefaultWorkers
	}
	if c.Cache.TTL < 0 {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Cache.Directory == "" {
		c.Cache.Directory = CacheDir()
	}

	switch c.Logging.Level {
	case "":
		c.Logging.Level = DefaultLogLevel
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %q (must be debug, info, warn, or error)", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "":
		c.Logging.Format = DefaultLogFormat
	case "pretty", "json":
	default:
		return fmt.Errorf("invalid logging.format: %q (must be pretty or json)", c.Logging.Format)
	}

	return nil
}
