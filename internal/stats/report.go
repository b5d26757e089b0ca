// Package stats contains text statistics and reporting.
package stats

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/textlens/internal/model"
	"github.com/verte-zerg/textlens/internal/store"
)

const sparkChars = " .:-=+*#%@"

// History contains precomputed data for snapshot history rendering.
type History struct {
	Snapshots    []model.Snapshot
	LetterTotals []model.SnapshotLetter
}

// BuildHistory loads and prepares snapshot data for rendering.
func BuildHistory(ctx context.Context, st *store.Store, cfg model.HistoryConfig) (History, error) {
	snaps, err := st.ListSnapshots(ctx, cfg)
	if err != nil {
		return History{}, err
	}
	if cfg.Last > 0 && len(snaps) > cfg.Last {
		snaps = snaps[len(snaps)-cfg.Last:]
	}
	totals, err := st.LetterTotals(ctx, snapshotIDs(snaps))
	if err != nil {
		return History{}, err
	}
	return History{Snapshots: snaps, LetterTotals: totals}, nil
}

// RenderHistory prints the snapshot table, a word-count sparkline and letter totals.
func RenderHistory(w io.Writer, h History) error {
	if len(h.Snapshots) == 0 {
		_, err := fmt.Fprintln(w, "No snapshots found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Snapshots"); err != nil {
		return err
	}
	table := newTextTable(
		column{title: "ID", right: true},
		column{title: "Saved"},
		column{title: "Source"},
		column{title: "Chars", right: true},
		column{title: "Words", right: true},
		column{title: "Sentences", right: true},
		column{title: "Reading"},
		column{title: "Limit", right: true},
	)
	words := make([]float64, 0, len(h.Snapshots))
	for _, s := range h.Snapshots {
		limit := "-"
		if s.CharLimit != nil {
			limit = fmt.Sprintf("%d", *s.CharLimit)
			if s.ExceedsLimit {
				limit += "!"
			}
		}
		chars := fmt.Sprintf("%d", s.CharCount)
		if s.ExcludeSpaces {
			chars += "*"
		}
		table.addRow(
			fmt.Sprintf("%d", s.ID),
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			s.Source,
			chars,
			fmt.Sprintf("%d", s.WordCount),
			fmt.Sprintf("%d", s.SentenceCount),
			s.ReadingTime,
			limit,
		)
		words = append(words, float64(s.WordCount))
	}
	if err := table.write(w); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\nWords trend: [%s]\n\n", Sparkline(words)); err != nil {
		return err
	}
	return RenderLetterTable(w, LettersFromTotals(h.LetterTotals), 20)
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// LettersFromTotals turns aggregated counts (already ordered by count) into letter rows.
func LettersFromTotals(totals []model.SnapshotLetter) []model.LetterStat {
	sum := 0
	for _, t := range totals {
		sum += t.Count
	}
	if sum == 0 {
		return nil
	}
	out := make([]model.LetterStat, 0, len(totals))
	for _, t := range totals {
		if t.Letter == "" || t.Count <= 0 {
			continue
		}
		out = append(out, model.LetterStat{
			Letter:     t.Letter,
			Count:      t.Count,
			Percentage: fmt.Sprintf("%.2f%%", float64(t.Count)/float64(sum)*100),
		})
	}
	return out
}

func snapshotIDs(snaps []model.Snapshot) []int64 {
	ids := make([]int64, len(snaps))
	for i, s := range snaps {
		ids[i] = s.ID
	}
	return ids
}

// SnapshotOf builds a storable snapshot from derived stats. The buffer itself is not kept.
func SnapshotOf(st model.DerivedStats, cfg model.AnalysisConfig, source string, at time.Time) (model.Snapshot, []model.SnapshotLetter) {
	snap := model.Snapshot{
		CreatedAt:     at,
		Source:        source,
		CharCount:     st.CharCount,
		WordCount:     st.WordCount,
		SentenceCount: st.SentenceCount,
		ReadingTime:   st.ReadingTime,
		ExcludeSpaces: cfg.ExcludeSpaces,
		ExceedsLimit:  st.ExceedsLimit,
	}
	if cfg.CharLimit != nil {
		v := *cfg.CharLimit
		snap.CharLimit = &v
	}
	letters := make([]model.SnapshotLetter, 0, len(st.LetterFrequencies))
	for _, f := range st.LetterFrequencies {
		letters = append(letters, model.SnapshotLetter{Letter: f.Letter, Count: f.Count})
	}
	return snap, letters
}
