package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/textlens/internal/model"
	"github.com/verte-zerg/textlens/internal/store"
)

func TestBuildHistory(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "textlens.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	texts := []string{"Hello there.", "Aaa bbb. Ccc!", "Zebra"}
	var ids []int64
	for i, text := range texts {
		cfg := model.AnalysisConfig{}
		derived := Recompute(text, cfg)
		snap, letters := SnapshotOf(derived, cfg, "test", time.Unix(0, 0).Add(time.Duration(i)*time.Minute))
		id, err := st.InsertSnapshot(ctx, snap, letters)
		if err != nil {
			t.Fatalf("insert snapshot: %v", err)
		}
		ids = append(ids, id)
	}

	h, err := BuildHistory(ctx, st, model.HistoryConfig{Last: 2})
	if err != nil {
		t.Fatalf("build history: %v", err)
	}
	if len(h.Snapshots) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(h.Snapshots))
	}
	if h.Snapshots[0].ID != ids[1] || h.Snapshots[1].ID != ids[2] {
		t.Fatalf("unexpected snapshot ids: %+v", h.Snapshots)
	}
	if len(h.LetterTotals) == 0 {
		t.Fatalf("expected letter totals")
	}
	if h.LetterTotals[0].Letter != "a" || h.LetterTotals[0].Count != 4 {
		t.Fatalf("expected a=4 first, got %+v", h.LetterTotals[0])
	}

	var buf bytes.Buffer
	if err := RenderHistory(&buf, h); err != nil {
		t.Fatalf("render history: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Snapshots", "Words trend", "Letter Density"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHistory(&buf, History{}); err != nil {
		t.Fatalf("render history: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No snapshots found." {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestSnapshotOfCopiesLimit(t *testing.T) {
	limit := 3
	cfg := model.AnalysisConfig{CharLimit: &limit}
	snap, letters := SnapshotOf(Recompute("abcd", cfg), cfg, "stdin", time.Now())
	limit = 99
	if snap.CharLimit == nil || *snap.CharLimit != 3 {
		t.Fatalf("expected copied limit 3, got %v", snap.CharLimit)
	}
	if !snap.ExceedsLimit {
		t.Fatalf("expected exceeds limit")
	}
	if len(letters) != 4 {
		t.Fatalf("expected 4 letters, got %d", len(letters))
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{1, 1, 1}); got != "+++" {
		t.Fatalf("expected flat sparkline, got %q", got)
	}
	if got := Sparkline([]float64{0, 9}); got != " @" {
		t.Fatalf("expected min/max glyphs, got %q", got)
	}
}
