package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Validation error messages
var (
	ErrRequired       = errors.New("this field is required")
	ErrInvalidNumber  = errors.New("must be a valid number")
	ErrInvalidRange   = errors.New("value out of valid range")
	ErrManifestFormat = errors.New("manifest must end in .json, .yaml or .yml")
)

// ValidateRequired ensures a string value is not empty
func ValidateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrRequired
	}
	return nil
}

// ValidateDuration validates that a string can be parsed as a time.Duration
func ValidateDuration(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil // Empty is valid (will use default)
	}
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid duration format (use: 90m, 24h, 720h): %w", err)
	}
	if d < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrInvalidRange)
	}
	return nil
}

// ValidateIntRange validates that a string represents an integer within a range
func ValidateIntRange(min, max int) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return ErrInvalidNumber
		}
		if n < min || n > max {
			return fmt.Errorf("%w: must be between %d and %d", ErrInvalidRange, min, max)
		}
		return nil
	}
}

// ValidateManifestPath checks the manifest file has an extension the
// writer knows how to encode
func ValidateManifestPath(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	switch strings.ToLower(filepath.Ext(s)) {
	case ".json", ".yaml", ".yml":
		return nil
	}
	return ErrManifestFormat
}
