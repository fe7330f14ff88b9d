package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lvillani/vagrant-metadata/internal/domain"
	"gopkg.in/yaml.v3"
)

// Loader loads and validates manifest files
type Loader struct{}

// NewLoader creates a new manifest loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads, parses and validates a manifest file from the given path
func (l *Loader) Load(path string) (*domain.Manifest, error) {
	m, err := l.read(path)
	if err != nil {
		return nil, err
	}
	if err := Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadFromBytes parses and validates a manifest from raw bytes
func (l *Loader) LoadFromBytes(data []byte, ext string) (*domain.Manifest, error) {
	m, err := parse(data, ext)
	if err != nil {
		return nil, err
	}
	if err := Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (l *Loader) read(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	return parse(data, filepath.Ext(path))
}

func parse(data []byte, ext string) (*domain.Manifest, error) {
	var m domain.Manifest
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExt, ext)
	}

	if m.Versions == nil {
		m.Versions = []domain.Version{}
	}
	return &m, nil
}

// Seed loads the manifest at path when it exists and builds a fresh one
// from the given fields otherwise. Non-empty fields override the values
// read from disk, so they can complete a manifest lacking name or baseurl.
func (l *Loader) Seed(path, name, description, baseURL string) (*domain.Manifest, error) {
	m, err := l.read(path)
	switch {
	case err == nil:
		if name != "" {
			m.Name = name
		}
		if description != "" {
			m.Description = description
		}
		if baseURL != "" {
			m.BaseURL = baseURL
		}
	case errors.Is(err, ErrFileNotFound):
		m = domain.NewManifest(name, description, baseURL)
	default:
		return nil, err
	}

	if err := Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the fields reconciliation depends on
func Validate(m *domain.Manifest) error {
	if m.Name == "" {
		return fmt.Errorf("%w: %v", ErrMissingField, domain.NewValidationError("name", "is required"))
	}
	if m.BaseURL == "" {
		return fmt.Errorf("%w: %v", ErrMissingField, domain.NewValidationError("baseurl", "is required"))
	}
	return nil
}
