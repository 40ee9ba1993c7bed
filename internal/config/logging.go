package config

import "fmt"

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`          // debug, info, warn, error
	Format string `yaml:"format"`         // json, console
	File   string `yaml:"file,omitempty"` // empty = stderr
}

// ValidLevels lists the accepted logging.level values.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// Validate checks level and format.
func (c *LoggingConfig) Validate() error {
	switch c.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("invalid logging format: %s (valid: json, console)", c.Format)
	}

	if c.Level == "" {
		return nil
	}
	for _, l := range ValidLevels {
		if c.Level == l {
			return nil
		}
	}
	return fmt.Errorf("invalid logging level: %s (valid: %v)", c.Level, ValidLevels)
}
