// internal/config/discover.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPath returns the XDG-compliant default config path.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./mkvcat.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "mkvcat", "config.toml")
}

// ErrNotFound is wrapped by Discover when no config file exists.
var ErrNotFound = errors.New("config not found")

// Discover finds the config file using the standard search order.
// Search order:
//  1. MKVCAT_CONFIG environment variable
//  2. ./mkvcat.toml (current directory)
//  3. $XDG_CONFIG_HOME/mkvcat/config.toml
//  4. /etc/mkvcat/config.toml
func Discover() (string, error) {
	if envPath := os.Getenv("MKVCAT_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("MKVCAT_CONFIG=%s: %w", envPath, err)
		}
		return envPath, nil
	}

	paths := []string{
		"./mkvcat.toml",
		DefaultPath(),
		"/etc/mkvcat/config.toml",
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w, checked: %s", ErrNotFound, strings.Join(paths, ", "))
}
