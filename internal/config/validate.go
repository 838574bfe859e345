package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCombine(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateCombine() error {
	if strings.ContainsAny(c.Combine.Pattern, "/\\") {
		return errors.New("combine.pattern must be a file glob, not a path")
	}
	if c.Combine.JPEGQuality < 1 || c.Combine.JPEGQuality > 100 {
		return fmt.Errorf("combine.jpeg_quality must be between 1 and 100, got %d", c.Combine.JPEGQuality)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
