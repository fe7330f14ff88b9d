package config

import (
	"fmt"

	"github.com/lvillani/vagrant-metadata/internal/utils"
	"gopkg.in/yaml.v3"
)

// Save writes cfg as YAML to path, creating parent directories
func Save(cfg *Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := utils.WriteFileAtomic(utils.ExpandPath(path), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
