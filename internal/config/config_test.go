package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Analysis.CharLimit != nil || cfg.UI.Theme != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[analysis]
exclude-spaces = true
char-limit = 140
wpm = 300

[ui]
theme = "light"

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Analysis.ExcludeSpaces == nil || !*cfg.Analysis.ExcludeSpaces {
		t.Fatalf("expected exclude-spaces true")
	}
	if cfg.Analysis.CharLimit == nil || *cfg.Analysis.CharLimit != 140 {
		t.Fatalf("expected char-limit 140")
	}
	if cfg.Analysis.WordsPerMinute == nil || *cfg.Analysis.WordsPerMinute != 300 {
		t.Fatalf("expected wpm 300")
	}
	if cfg.UI.Theme == nil || *cfg.UI.Theme != "light" {
		t.Fatalf("expected light theme")
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" {
		t.Fatalf("expected debug level")
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"unknown key":  "[analysis]\nwords = 10\n",
		"negative wpm": "[analysis]\nwpm = -1\n",
		"bad limit":    "[analysis]\nchar-limit = -3\n",
		"syntax":       "[analysis\n",
	}
	for name, body := range cases {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestEnsureFileWritesTemplateOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textlens", "config.toml")
	created, err := EnsureFile(path)
	if err != nil || !created {
		t.Fatalf("expected file to be created, got %v, %v", created, err)
	}
	if err := os.WriteFile(path, []byte("[ui]\ntheme = \"light\"\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	created, err = EnsureFile(path)
	if err != nil || created {
		t.Fatalf("expected existing file to be kept, got %v, %v", created, err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "light") {
		t.Fatalf("existing config was overwritten")
	}
	if _, err := LoadConfig(path); err != nil {
		t.Fatalf("load: %v", err)
	}
}

func TestTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(DefaultTemplate), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err != nil {
		t.Fatalf("template must decode cleanly: %v", err)
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "cfg"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	if got := DefaultConfigPath(); got != filepath.Join(dir, "cfg", "textlens", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join(dir, "data", "textlens", "textlens.db") {
		t.Fatalf("unexpected db path %q", got)
	}
	if got := DefaultLogPath(); got != filepath.Join(dir, "state", "textlens", "textlens.log") {
		t.Fatalf("unexpected log path %q", got)
	}
}
