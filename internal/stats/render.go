// Package stats contains text statistics and reporting.
package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/textlens/internal/model"
)

// Output formats accepted by RenderStats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

const barGlyph = "█"

// RenderStats writes derived stats in the requested format.
func RenderStats(w io.Writer, format string, st model.DerivedStats, cfg model.AnalysisConfig) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	case FormatYAML:
		data, err := yaml.Marshal(st)
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "", FormatText:
		return renderText(w, st, cfg)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func renderText(w io.Writer, st model.DerivedStats, cfg model.AnalysisConfig) error {
	label := "Total Characters"
	if cfg.ExcludeSpaces {
		label = "Total Characters (no spaces)"
	}
	lines := []string{
		fmt.Sprintf("%s: %d", label, st.CharCount),
		fmt.Sprintf("Word Count: %d", st.WordCount),
		fmt.Sprintf("Sentence Count: %d", st.SentenceCount),
		fmt.Sprintf("Approx. reading time: %s", st.ReadingTime),
	}
	if cfg.CharLimit != nil {
		status := "within limit"
		if st.ExceedsLimit {
			status = "exceeds limit"
		}
		lines = append(lines, fmt.Sprintf("Character limit: %d (%s)", *cfg.CharLimit, status))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return RenderLetterTable(w, st.LetterFrequencies, 20)
}

// RenderLetterTable prints the letter-frequency distribution with proportional bars.
func RenderLetterTable(w io.Writer, freqs []model.LetterStat, barWidth int) error {
	if len(freqs) == 0 {
		_, err := fmt.Fprintln(w, "No letters found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Letter Density"); err != nil {
		return err
	}
	table := newTextTable(
		column{title: "Letter"},
		column{title: "Count", right: true},
		column{title: "Share", right: true},
		column{bar: barWidth},
	)
	for _, f := range freqs {
		table.addRow(strings.ToUpper(f.Letter), fmt.Sprintf("%d", f.Count), f.Percentage, f.Percentage)
	}
	return table.write(w)
}

// Bar renders a percentage string ("12.34%") as a bar of at most width cells.
func Bar(percentage string, width int) string {
	if width <= 0 {
		return ""
	}
	var pct float64
	if _, err := fmt.Sscanf(strings.TrimSuffix(percentage, "%"), "%g", &pct); err != nil {
		return ""
	}
	cells := int(pct/100*float64(width) + 0.5)
	if cells < 0 {
		cells = 0
	}
	if cells > width {
		cells = width
	}
	return strings.Repeat(barGlyph, cells)
}
