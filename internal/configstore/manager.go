// Package configstore persists the nexusctl YAML configuration file.
package configstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shaharia-lab/nexusctl/internal/config"
	"gopkg.in/yaml.v3"
)

// ConfigManager loads and saves the configuration file
type ConfigManager interface {
	LoadConfig() (config.Config, error)
	SaveConfig(cfg config.Config) error
	ConfigExists() bool
}

// DefaultConfigManager stores the configuration as YAML at a fixed path
type DefaultConfigManager struct {
	configFilePath string
}

var _ ConfigManager = (*DefaultConfigManager)(nil)

// NewDefaultConfigManager returns a manager for the file at configFilePath
func NewDefaultConfigManager(configFilePath string) *DefaultConfigManager {
	return &DefaultConfigManager{configFilePath: configFilePath}
}

// Path returns the managed file path
func (cm *DefaultConfigManager) Path() string {
	return cm.configFilePath
}

// LoadConfig loads the configuration, writing the defaults first when the
// file is missing or empty. Fields absent from the file take default values.
func (cm *DefaultConfigManager) LoadConfig() (config.Config, error) {
	defaultConfig := config.Config{}.Default()

	if cm.configFilePath == "" {
		return defaultConfig, fmt.Errorf("config file path not set")
	}

	if !cm.ConfigExists() {
		if err := cm.SaveConfig(defaultConfig); err != nil {
			return config.Config{}, fmt.Errorf("failed to save default config: %w", err)
		}
		return defaultConfig, nil
	}

	configFile, err := os.ReadFile(cm.configFilePath)
	if err != nil {
		return defaultConfig, fmt.Errorf("failed to read config file: %w", err)
	}

	if len(configFile) == 0 {
		if err := cm.SaveConfig(defaultConfig); err != nil {
			return config.Config{}, fmt.Errorf("failed to save default config to empty file: %w", err)
		}
		return defaultConfig, nil
	}

	var cfg config.Config
	if err := yaml.Unmarshal(configFile, &cfg); err != nil {
		return defaultConfig, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg.WithDefaults(), nil
}

// SaveConfig writes cfg to disk. The file holds the API key, so it is only
// readable by the owner.
func (cm *DefaultConfigManager) SaveConfig(cfg config.Config) error {
	if cm.configFilePath == "" {
		return fmt.Errorf("config file path not set")
	}

	yamlData, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cm.configFilePath), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return os.WriteFile(cm.configFilePath, yamlData, 0600)
}

// ConfigExists checks if the configuration file already exists
func (cm *DefaultConfigManager) ConfigExists() bool {
	_, err := os.Stat(cm.configFilePath)
	return !os.IsNotExist(err)
}
