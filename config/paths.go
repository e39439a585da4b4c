// ABOUTME: XDG-based data and config directory resolution for fishbone.
// ABOUTME: Checks XDG_DATA_HOME / XDG_CONFIG_HOME, falls back to ~/.local/share/fishbone and ~/.config/fishbone.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "fishbone"

// DataDir returns the directory for persistent state such as the progress database.
func DataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(home, ".local", "share", appName), nil
}

// ConfigDir returns the directory searched for fishbone.yaml and .env after the working directory.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(home, ".config", appName), nil
}

// DefaultDBPath is the progress database location when server.db is unset.
func DefaultDBPath() string {
	dir, err := DataDir()
	if err != nil {
		return "progress.db"
	}
	return filepath.Join(dir, "progress.db")
}
