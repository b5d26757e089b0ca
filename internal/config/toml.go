// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Analysis AnalysisConfig `toml:"analysis"`
	UI       UIConfig       `toml:"ui"`
	Log      LogConfig      `toml:"log"`
}

// AnalysisConfig maps analysis defaults.
type AnalysisConfig struct {
	ExcludeSpaces  *bool `toml:"exclude-spaces"`
	CharLimit      *int  `toml:"char-limit"`
	WordsPerMinute *int  `toml:"wpm"`
}

// UIConfig maps presentation defaults.
type UIConfig struct {
	Theme *string `toml:"theme"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level  *string `toml:"level"`
	Format *string `toml:"format"`
	File   *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}

// Validate checks value ranges that TOML types cannot express.
func (c FileConfig) Validate() error {
	if v := c.Analysis.WordsPerMinute; v != nil && *v <= 0 {
		return fmt.Errorf("analysis.wpm must be positive, got %d", *v)
	}
	if v := c.Analysis.CharLimit; v != nil && *v < 0 {
		return fmt.Errorf("analysis.char-limit must not be negative, got %d", *v)
	}
	return nil
}

// DefaultTemplate is written by `textlens config` when no file exists.
const DefaultTemplate = `# textlens configuration

[analysis]
# exclude-spaces = false
# char-limit = 280
# wpm = 225

[ui]
# theme = "dark"

[log]
# level = "info"
# format = "text"
# file = ""
`

// EnsureFile creates path with DefaultTemplate unless it already exists.
func EnsureFile(path string) (created bool, err error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(DefaultTemplate), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config: %w", err)
	}
	return true, nil
}
