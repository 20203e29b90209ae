// Package config resolves where gho keeps its on-disk documents.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	accountsFile = "accounts.json"
	stateFile    = "state.json"
	lockFile     = "gho.lock"
)

// Config holds the base path for configuration files.
type Config struct {
	Dir string
}

// New returns the default configuration rooted at ~/.config/gho.
func New() (Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("failed to determine home directory: %w", err)
	}
	return Config{Dir: filepath.Join(homeDir, ".config", "gho")}, nil
}

// WithDir returns a configuration rooted at a custom directory.
func WithDir(dir string) Config {
	return Config{Dir: dir}
}

// AccountsPath is the path to the accounts document.
func (c Config) AccountsPath() string {
	return filepath.Join(c.Dir, accountsFile)
}

// StatePath is the path to the state document.
func (c Config) StatePath() string {
	return filepath.Join(c.Dir, stateFile)
}

// LockPath is the path to the advisory lock file guarding writes.
func (c Config) LockPath() string {
	return filepath.Join(c.Dir, lockFile)
}
