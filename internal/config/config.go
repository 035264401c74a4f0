package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"rapidmcp/internal/command"
	"rapidmcp/internal/logging"
	"rapidmcp/pkg/fileops"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const APP_NAME = "rapidmcp" // application name used for config directory

const (
	// DefaultCommandsDir is resolved against the working directory.
	DefaultCommandsDir = "commands"

	// DefaultMaxFileSize caps a single command file.
	DefaultMaxFileSize = command.DefaultMaxFileSize

	// maxConfigFileSize caps the config file itself.
	maxConfigFileSize int64 = 1024 * 1024
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Config holds user configuration for rapidmcp.
type Config struct {
	// CommandsDir is the directory the command registry is loaded from.
	CommandsDir string `yaml:"commands_dir"`
	MaxFileSize int64  `yaml:"max_file_size"` // bytes, per command file
	LogLevel    string `yaml:"log_level,omitempty"`
}

// ConfigPath returns the standard config file path for the current platform.
func ConfigPath() string {
	configPath := filepath.Join(xdg.ConfigHome, APP_NAME, "config.yaml")
	logging.Debug("Determined config path", "path", configPath)
	return configPath
}

// FindConfigFile returns the path to an existing config file, and whether it
// exists. The XDG config directories are searched in order of preference; if
// none holds a config file the primary location is returned.
func FindConfigFile() (string, bool) {
	found, err := xdg.SearchConfigFile(filepath.Join(APP_NAME, "config.yaml"))
	if err == nil {
		logging.Debug("Config found", "path", found)
		return found, true
	}

	return ConfigPath(), false
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		CommandsDir: DefaultCommandsDir,
		MaxFileSize: DefaultMaxFileSize,
	}
}

// Load reads the config file at path. An empty path selects the standard
// location; when nothing exists there the defaults are returned. An explicit
// path that does not exist is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		found, exists := FindConfigFile()
		if !exists {
			logging.Debug("No config file found, using defaults", "path", found)
			cfg := DefaultConfig()
			return &cfg, nil
		}
		path = found
	}

	return LoadFrom(path)
}

// LoadFrom loads config from a specific path. Keys missing from the file keep
// their default values.
func LoadFrom(path string) (*Config, error) {
	logging.Debug("Reading config file", "path", path)

	if err := fileops.ValidateFileSizeLimit(path, maxConfigFileSize); err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.CommandsDir) == "" {
		return fmt.Errorf("commands_dir must not be empty")
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("max_file_size must be positive, got %d", c.MaxFileSize)
	}
	if c.LogLevel != "" && !isValidLogLevel(c.LogLevel) {
		return fmt.Errorf("log_level must be one of %s, got %q", strings.Join(validLogLevels, ", "), c.LogLevel)
	}
	return nil
}

func isValidLogLevel(level string) bool {
	level = strings.ToLower(strings.TrimSpace(level))
	for _, valid := range validLogLevels {
		if level == valid {
			return true
		}
	}
	return false
}

// Save writes the config to the standard location
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo writes the config to a specific path
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid config: %w", err)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
