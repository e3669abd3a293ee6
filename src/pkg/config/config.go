// Package config provides functionality for loading, saving, and managing
// application configuration settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"treescape/local-app/src/pkg/model"
)

// Global variables to store the current configuration and its file path.
var (
	currentConfig *model.Config
	configPath    = "./data/config.json"
)

// ConfigLoad loads the configuration from the JSON file.
// If the file doesn't exist, it creates a default configuration.
func ConfigLoad() error {
	// Ensure the data directory exists
	dataDir := filepath.Dir(configPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %v", err)
	}

	// Check if the config file exists, if not create a default one
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		defaultConfig := &model.Config{
			DatabaseType:    "sqlite",
			DatabaseDir:     "./data",
			DatabaseFile:    "treescape.db",
			LogFolder:       "./logs",
			CommandLog:      "commands.log",
			ErrorLog:        "errors.log",
			InfoLog:         "info.log",
			HistoryFile:     "./data/history.txt",
			ExportDir:       "./exports",
			DefaultTreeName: "default",
		}
		if err := ConfigSave(defaultConfig); err != nil {
			return fmt.Errorf("failed to create default config: %v", err)
		}
		currentConfig = defaultConfig
		return nil
	}

	// Read and parse the existing config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %v", err)
	}

	var cfg model.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %v", err)
	}

	currentConfig = &cfg
	return nil
}

// ConfigSave writes the given configuration to the JSON file.
func ConfigSave(cfg *model.Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %v", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %v", err)
	}

	currentConfig = cfg
	return nil
}

// ConfigGet returns the currently loaded configuration.
func ConfigGet() *model.Config {
	return currentConfig
}

// ConfigSetPath overrides the config file location. Used by tests to keep
// configuration inside a temporary directory.
func ConfigSetPath(path string) {
	configPath = path
	currentConfig = nil
}
