package config

import (
	"errors"
	"fmt"
)

var knownLevels = map[string]struct{}{
	"trace": {},
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStream(); err != nil {
		return err
	}
	if c.LogDir == "" {
		return errors.New("log_dir must be set")
	}
	return nil
}

func (c *Config) validateStream() error {
	if c.Stream.IndentWidth < 1 || c.Stream.IndentWidth > 8 {
		return fmt.Errorf("stream.indent_width must be between 1 and 8, got %d", c.Stream.IndentWidth)
	}
	if _, ok := knownLevels[c.Stream.Level]; !ok {
		return fmt.Errorf("stream.level: unsupported value %q", c.Stream.Level)
	}
	return nil
}
