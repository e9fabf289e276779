// Package project persists user data on disk: the application config,
// saved designs, cabinet presets, and whole-data backups. Everything
// is plain JSON under the application directory.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rodor-repo/ThreeJS-sub001/internal/model"
)

// DefaultConfigDir returns the application directory.
// On all platforms this is ~/.sub001/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".sub001")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}
	var config model.AppConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, err
	}
	// Ensure RecentDesigns is never nil
	if config.RecentDesigns == nil {
		config.RecentDesigns = []string{}
	}
	return config, nil
}
