// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// DefaultWordsPerMinute is the reading speed used for reading-time estimates.
const DefaultWordsPerMinute = 225

// DefaultCharLimit seeds the character limit the first time it is enabled.
const DefaultCharLimit = 280

// AnalysisConfig controls how the buffer is analysed.
type AnalysisConfig struct {
	ExcludeSpaces bool
	// CharLimit is nil when the limit feature is disabled.
	CharLimit      *int
	WordsPerMinute int
}

// LetterStat is a single row of the letter-frequency distribution.
type LetterStat struct {
	Letter     string `json:"letter" yaml:"letter"`
	Count      int    `json:"count" yaml:"count"`
	Percentage string `json:"percentage" yaml:"percentage"`
}

// DerivedStats holds everything computed from the buffer and config.
type DerivedStats struct {
	CharCount         int          `json:"charCount" yaml:"charCount"`
	WordCount         int          `json:"wordCount" yaml:"wordCount"`
	SentenceCount     int          `json:"sentenceCount" yaml:"sentenceCount"`
	ReadingTime       string       `json:"readingTime" yaml:"readingTime"`
	LetterFrequencies []LetterStat `json:"letterFrequencies" yaml:"letterFrequencies"`
	ExceedsLimit      bool         `json:"exceedsLimit" yaml:"exceedsLimit"`
}

// Theme is the color scheme of the interface.
type Theme int

const (
	ThemeDark Theme = iota
	ThemeLight
)

func (t Theme) String() string {
	if t == ThemeLight {
		return "light"
	}
	return "dark"
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// ParseTheme parses "dark" or "light".
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dark":
		return ThemeDark, nil
	case "light":
		return ThemeLight, nil
	default:
		return ThemeDark, fmt.Errorf("unknown theme %q (use dark or light)", s)
	}
}

// UIState is presentation state mutated only by discrete user actions.
type UIState struct {
	Theme           Theme
	ShowAllLetters  bool
	ShortcutsOpen   bool
	FocusTrapActive bool
}

// Snapshot is a saved set of derived counts. It never contains the buffer.
type Snapshot struct {
	ID            int64
	CreatedAt     time.Time
	Source        string
	CharCount     int
	WordCount     int
	SentenceCount int
	ReadingTime   string
	ExcludeSpaces bool
	CharLimit     *int
	ExceedsLimit  bool
}

// SnapshotLetter stores a letter count for a snapshot.
type SnapshotLetter struct {
	Letter string
	Count  int
}

// HistoryConfig defines filters for snapshot listings.
type HistoryConfig struct {
	Since *time.Time
	Last  int
}
