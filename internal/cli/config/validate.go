package config

import (
	"fmt"
	"slices"

	"github.com/leapstack-labs/leapsoql/internal/cli/output"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := output.ParseMode(c.Output); err != nil {
		return err
	}
	if c.Style != StyleCanonical && c.Style != StylePretty {
		return fmt.Errorf("unknown style %q (want %s or %s)", c.Style, StyleCanonical, StylePretty)
	}
	if !slices.Contains(logLevels, c.LogLevel) {
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	if c.Indent <= 0 {
		return fmt.Errorf("indent must be positive, got %d", c.Indent)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions must not be empty")
	}
	return nil
}
