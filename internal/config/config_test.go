package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestConfigDirEnv(t *testing.T) {
	t.Setenv("ME_CONFIG_HOME", "/tmp/me-config")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/me-config" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/me-config")
	}

	t.Setenv("ME_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/xdg/me" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/xdg/me")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("ME_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	def := Default()
	if cfg.Theme.SyntaxComment != def.Theme.SyntaxComment {
		t.Fatalf("defaults not applied")
	}
	if !cfg.Editor.Clock {
		t.Fatalf("clock default = false, want true")
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ME_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "config.toml"), `
[editor]
line-numbers = true
clock = false

[theme]
syntax-string = "#123456"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !cfg.Editor.LineNumbers {
		t.Fatalf("LineNumbers = false, want true")
	}
	if cfg.Editor.Clock {
		t.Fatalf("Clock = true, want false")
	}
	if cfg.Theme.SyntaxString != "#123456" {
		t.Fatalf("SyntaxString = %q", cfg.Theme.SyntaxString)
	}
	// Untouched keys keep defaults.
	if cfg.Theme.SyntaxComment != Default().Theme.SyntaxComment {
		t.Fatalf("SyntaxComment lost its default")
	}
}

func TestLoadBadTOML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ME_CONFIG_HOME", dir)
	writeFile(t, filepath.Join(dir, "config.toml"), "[editor\n")
	if _, err := Load(); err == nil {
		t.Fatalf("Load accepted malformed TOML")
	}
}
