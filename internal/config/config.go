// Package config handles the XDG configuration directory and persisted
// settings.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"sytask/internal/quicknote"
	"sytask/internal/task"
)

const (
	// AppName is the application directory name.
	AppName = "sytask"

	// SettingsFile holds the persisted settings.
	SettingsFile = "settings.json"

	// DefaultServer is the host kernel's default local endpoint.
	DefaultServer = "http://127.0.0.1:6806"
)

// Settings is the persisted configuration: host connection plus the
// user-authored quick-note and status configuration.
type Settings struct {
	Server    string             `json:"server"`
	Token     string             `json:"token,omitempty"`
	QuickNote quicknote.Config   `json:"quickNote"`
	Statuses  *task.StatusConfig `json:"statuses,omitempty"`
}

// Config holds configuration paths and runtime flags.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables diagnostic logging to stderr.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/sytask or $HOME/.config/sytask.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir}, nil
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SettingsPath returns the path to the settings file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// EnsureDir creates the config directory if it doesn't exist.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasSettings checks whether a settings file exists.
func (c *Config) HasSettings() bool {
	_, err := os.Stat(c.SettingsPath())
	return err == nil
}

// LoadSettings reads the settings file. A missing file yields defaults,
// not an error; a malformed file is an error.
func (c *Config) LoadSettings() (*Settings, error) {
	data, err := os.ReadFile(c.SettingsPath())
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	s := DefaultSettings()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}
	if s.Server == "" {
		s.Server = DefaultServer
	}
	return s, nil
}

// SaveSettings writes the settings file, creating the directory first.
// The file is written with mode 0600 since it carries the API token.
func (c *Config) SaveSettings(s *Settings) error {
	if err := c.EnsureDir(); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.SettingsPath(), append(data, '\n'), 0600)
}

// DefaultSettings returns settings for a fresh installation.
func DefaultSettings() *Settings {
	return &Settings{
		Server:    DefaultServer,
		QuickNote: quicknote.DefaultConfig(),
	}
}
