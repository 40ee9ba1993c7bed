package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"pathmark/internal/store"
)

const (
	// AppName names the per-user configuration directory.
	AppName = "pathmark"

	// ConfigFilename is the YAML file inside Dir().
	ConfigFilename = "config.yaml"

	// DatabaseFilename is the default store file inside Dir().
	DatabaseFilename = "paths.db"
)

// Config holds all pathmark configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig configures the bookmark database.
type StorageConfig struct {
	Location string `yaml:"location"` // file path or sqlite:// connection string
	Driver   string `yaml:"driver"`   // sqlite3 (cgo) or sqlite (pure Go)
}

// Dir returns the per-user configuration directory: $PATHMARK_HOME when
// set, otherwise <user config dir>/pathmark.
func Dir() (string, error) {
	if home := os.Getenv("PATHMARK_HOME"); home != "" {
		return home, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFilename), nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	location := DatabaseFilename
	if dir, err := Dir(); err == nil {
		location = filepath.Join(dir, DatabaseFilename)
	}

	return &Config{
		Storage: StorageConfig{
			Location: location,
			Driver:   "sqlite3",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if loc := os.Getenv("PATHMARK_DB"); loc != "" {
		c.Storage.Location = loc
	}
	if driver := os.Getenv("PATHMARK_DRIVER"); driver != "" {
		c.Storage.Driver = driver
	}
	if level := os.Getenv("PATHMARK_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Storage.Location) == "" {
		return fmt.Errorf("storage.location must not be empty")
	}

	if _, err := store.ParseDriver(c.Storage.Driver); err != nil {
		return fmt.Errorf("invalid storage driver: %w", err)
	}

	return c.Logging.Validate()
}
