package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultsValidateAfterNormalize(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.Stream.IndentWidth != 2 {
		t.Errorf("IndentWidth = %d, want 2", cfg.Stream.IndentWidth)
	}
	if cfg.Stream.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Stream.Level)
	}
	if !cfg.Stream.Timestamps || !cfg.Sink.Lock || !cfg.Sink.Durable {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Session.Enabled {
		t.Error("session identification should default off")
	}
	if strings.HasPrefix(cfg.LogDir, "~") {
		t.Errorf("LogDir not expanded: %q", cfg.LogDir)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Error("exists = true for missing file")
	}
	if resolved != path {
		t.Errorf("resolved = %q, want %q", resolved, path)
	}
	if cfg.Stream.Level != "info" {
		t.Errorf("Level = %q, want default info", cfg.Stream.Level)
	}
}

func TestLoadParsesAndOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `log_dir = "` + filepath.Join(dir, "logs") + `"

[stream]
indent_width = 4
level = "DEBUG"
timestamps = false

[sink]
durable = false

[session]
enabled = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("exists = false for present file")
	}
	if cfg.Stream.IndentWidth != 4 {
		t.Errorf("IndentWidth = %d, want 4", cfg.Stream.IndentWidth)
	}
	if cfg.Stream.Level != "debug" {
		t.Errorf("Level = %q, want lowercased debug", cfg.Stream.Level)
	}
	if cfg.Stream.Timestamps {
		t.Error("Timestamps should be disabled by the file")
	}
	if cfg.Sink.Durable {
		t.Error("Durable should be disabled by the file")
	}
	if !cfg.Session.Enabled {
		t.Error("Session should be enabled by the file")
	}
	if cfg.LogDir != filepath.Join(dir, "logs") {
		t.Errorf("LogDir = %q", cfg.LogDir)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"indent too wide", "[stream]\nindent_width = 12\n"},
		{"unknown level", "[stream]\nlevel = \"verbose\"\n"},
		{"broken toml", "stream = [\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, _, _, err := Load(path); err == nil {
				t.Error("expected Load to fail")
			}
		})
	}
}

func TestLogDirEnvFallback(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("YMLOG_LOG_DIR", dir)

	cfg := Config{
		Stream: Stream{IndentWidth: 2, Level: "info"},
	}
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.LogDir != dir {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, dir)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("UserHomeDir: %v", err)
	}

	got, err := ExpandPath("~/logs")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "logs") {
		t.Errorf("ExpandPath(~/logs) = %q", got)
	}

	if _, err := ExpandPath("   "); err == nil {
		t.Error("expected error for blank path")
	}
}

func TestEnsureDirectories(t *testing.T) {
	cfg := Default()
	cfg.LogDir = filepath.Join(t.TempDir(), "nested", "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	info, err := os.Stat(cfg.LogDir)
	if err != nil {
		t.Fatalf("stat log dir: %v", err)
	}
	if !info.IsDir() {
		t.Error("log dir is not a directory")
	}
}

func TestCreateSampleLoadsCleanly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	if _, _, exists, err := Load(path); err != nil {
		t.Fatalf("Load sample: %v", err)
	} else if !exists {
		t.Error("sample config not detected")
	}
}
