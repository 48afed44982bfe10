package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - HROPS_CONFIG_PATH: config file location (default: ~/.config/hrops.toml)
//   - HROPS_HOME: base directory for hrops data (default: ~/.local/share/hrops)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"data_dir":    filepath.Join(baseDir, "data"),
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

// getConfigPath returns the config file path, checking HROPS_CONFIG_PATH env var first,
// then falling back to the default ~/.config/hrops.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("HROPS_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "hrops.toml"), nil
}

// getBaseDir returns the base directory for hrops data, checking HROPS_HOME env var first,
// then falling back to the XDG default ~/.local/share/hrops.
func getBaseDir() (string, error) {
	if path := os.Getenv("HROPS_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "hrops"), nil
}
