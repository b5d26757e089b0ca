package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
)

// wrapText word-wraps plain text to width cells. Words longer than width are
// left intact.
func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wordwrap.String(s, width)
}

// padRight pads s with spaces to width display cells.
func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// truncate shortens s to at most width display cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// columnWidth returns the widest display width among values.
func columnWidth(values []string) int {
	widest := 0
	for _, v := range values {
		if w := runewidth.StringWidth(v); w > widest {
			widest = w
		}
	}
	return widest
}
