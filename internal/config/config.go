package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Stream contains configuration for the emitted YAML stream.
type Stream struct {
	IndentWidth int    `toml:"indent_width"`
	Timestamps  bool   `toml:"timestamps"`
	Level       string `toml:"level"`
}

// Sink contains configuration for the log file destination.
type Sink struct {
	// Lock takes an advisory lock so no second writer shares the file.
	Lock bool `toml:"lock"`
	// Durable forces an fsync after every record.
	Durable bool `toml:"durable"`
}

// Session contains configuration for per-run session identification.
type Session struct {
	Enabled bool `toml:"enabled"`
}

// Config encapsulates all configuration values for ymlog.
type Config struct {
	LogDir  string  `toml:"log_dir"`
	Stream  Stream  `toml:"stream"`
	Sink    Sink    `toml:"sink"`
	Session Session `toml:"session"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/ymlog/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded. It reports the resolved path and
// whether a file was actually found; a missing file is not an error, the
// defaults apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	if strings.TrimSpace(c.LogDir) == "" {
		if value, ok := os.LookupEnv("YMLOG_LOG_DIR"); ok && strings.TrimSpace(value) != "" {
			c.LogDir = value
		} else {
			c.LogDir = defaultLogDir
		}
	}
	expanded, err := expandPath(c.LogDir)
	if err != nil {
		return fmt.Errorf("log_dir: %w", err)
	}
	c.LogDir = expanded

	c.Stream.Level = strings.ToLower(strings.TrimSpace(c.Stream.Level))
	if c.Stream.Level == "" {
		c.Stream.Level = defaultLevel
	}
	if c.Stream.IndentWidth == 0 {
		c.Stream.IndentWidth = defaultIndentWidth
	}
	return nil
}

// EnsureDirectories creates the log directory if it is missing.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.LogDir, 0o755); err != nil {
		return fmt.Errorf("create log directory %q: %w", c.LogDir, err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	trimmed := strings.TrimSpace(pathValue)
	if trimmed == "" {
		return "", errors.New("path is empty")
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			return home, nil
		}
		return filepath.Join(home, trimmed[2:]), nil
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", trimmed, err)
	}
	return abs, nil
}

// ExpandPath resolves tildes and relative segments in user-supplied paths.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes the embedded sample configuration to path.
func CreateSample(path string) error {
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
