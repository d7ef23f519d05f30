package xdgpath

import (
	"fmt"
	"os"
	"path/filepath"
)

func getConfigHome() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return configHome, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get user home directory: %w", err)
	}
	return filepath.Join(home, ".config"), nil
}

// ConfigPath returns the path of a file under the herald config directory.
// The directory is not created; a missing config file means defaults.
func ConfigPath(elem ...string) (string, error) {
	base, err := getConfigHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{base, "herald"}, elem...)...), nil
}

// SystemdUserUnitPath returns the path of a systemd user unit file,
// creating the unit directory if needed.
func SystemdUserUnitPath(unit string) (string, error) {
	base, err := getConfigHome()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "systemd", "user")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, unit), nil
}
