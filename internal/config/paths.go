package config

import (
	"os"
	"path/filepath"
)

// DataDir returns the directory used to store pypub state (run history,
// publisher profile). PYPUB_HOME overrides the default, which is a
// dot-directory in the user's home on all platforms.
func DataDir() (string, error) {
	if d := os.Getenv("PYPUB_HOME"); d != "" {
		return filepath.Join(d, ".pypub"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pypub"), nil
}

// EnsureDataDir creates the data directory if needed and returns its path.
func EnsureDataDir() (string, error) {
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(d, 0o755); err != nil {
		return "", err
	}
	return d, nil
}

// DBPath returns the full path to the SQLite run-history database file.
func DBPath() (string, error) {
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "pypub.db"), nil
}
