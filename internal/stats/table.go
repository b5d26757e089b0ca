package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// column describes one table column. A bar column holds a percentage string
// per row and draws it as a proportional bar of exactly bar cells.
type column struct {
	title string
	right bool
	bar   int
}

// textTable lays out rows in columns sized by terminal display width.
type textTable struct {
	cols []column
	rows [][]string
}

func newTextTable(cols ...column) *textTable {
	return &textTable{cols: cols}
}

func (t *textTable) addRow(cells ...string) {
	row := make([]string, len(t.cols))
	copy(row, cells)
	for i, c := range t.cols {
		if c.bar > 0 {
			row[i] = Bar(row[i], c.bar)
		}
	}
	t.rows = append(t.rows, row)
}

// lines renders the header and rows with trailing blanks trimmed.
func (t *textTable) lines() []string {
	if len(t.cols) == 0 {
		return nil
	}
	widths := make([]int, len(t.cols))
	for i, c := range t.cols {
		widths[i] = max(runewidth.StringWidth(c.title), c.bar)
		for _, row := range t.rows {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}

	header := make([]string, len(t.cols))
	for i, c := range t.cols {
		header[i] = c.title
	}
	out := make([]string, 0, len(t.rows)+1)
	out = append(out, t.formatRow(header, widths))
	for _, row := range t.rows {
		out = append(out, t.formatRow(row, widths))
	}
	return out
}

func (t *textTable) formatRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		gap := strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell))
		if t.cols[i].right {
			parts[i] = gap + cell
		} else {
			parts[i] = cell + gap
		}
	}
	return strings.TrimRight(strings.Join(parts, " "), " ")
}

func (t *textTable) write(w io.Writer) error {
	for _, line := range t.lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
