package historyui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/textlens/internal/model"
	"github.com/verte-zerg/textlens/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func seed(t *testing.T, st *store.Store) {
	t.Helper()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	limit := 10
	snaps := []model.Snapshot{
		{CreatedAt: base, Source: "draft.txt", CharCount: 12, WordCount: 2, SentenceCount: 1, ReadingTime: "1 second"},
		{CreatedAt: base.Add(time.Hour), Source: "stdin", CharCount: 40, WordCount: 8, SentenceCount: 2, ReadingTime: "3 seconds", CharLimit: &limit, ExceedsLimit: true},
	}
	letters := [][]model.SnapshotLetter{
		{{Letter: "a", Count: 3}, {Letter: "b", Count: 1}},
		{{Letter: "a", Count: 5}, {Letter: "z", Count: 2}},
	}
	for i, s := range snaps {
		if _, err := st.InsertSnapshot(context.Background(), s, letters[i]); err != nil {
			t.Fatalf("insert snapshot: %v", err)
		}
	}
}

func sized(m *Model) *Model {
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return m
}

func TestOverviewShowsSummary(t *testing.T) {
	st := openStore(t)
	seed(t, st)
	m := sized(NewModel(st, model.HistoryConfig{}))

	if got := len(m.History().Snapshots); got != 2 {
		t.Fatalf("expected 2 snapshots, got %d", got)
	}
	view := m.View()
	for _, want := range []string{"Overview", "Avg Words", "5.0", "Over Limit", "Words trend"} {
		if !strings.Contains(view, want) {
			t.Fatalf("overview missing %q:\n%s", want, view)
		}
	}
}

func TestTabsShowTables(t *testing.T) {
	st := openStore(t)
	seed(t, st)
	m := sized(NewModel(st, model.HistoryConfig{}))

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	view := m.View()
	if !strings.Contains(view, "draft.txt") || !strings.Contains(view, "10!") {
		t.Fatalf("snapshots tab missing rows:\n%s", view)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	view = m.View()
	if !strings.Contains(view, "Letter") || !strings.Contains(view, "8") {
		t.Fatalf("letters tab missing totals:\n%s", view)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabOverview {
		t.Fatalf("expected tab navigation to wrap, got %d", m.activeTab)
	}
}

func TestFilterLimitsSnapshots(t *testing.T) {
	st := openStore(t)
	seed(t, st)
	m := sized(NewModel(st, model.HistoryConfig{}))

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	if !m.filterMode {
		t.Fatalf("expected filter mode")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.filterMode {
		t.Fatalf("expected filter mode to close on apply")
	}
	snaps := m.History().Snapshots
	if len(snaps) != 1 || snaps[0].Source != "stdin" {
		t.Fatalf("expected only the latest snapshot, got %+v", snaps)
	}
	if !strings.Contains(m.View(), "last=1") {
		t.Fatalf("expected filter summary to show last=1")
	}
}

func TestFilterRejectsBadDate(t *testing.T) {
	st := openStore(t)
	m := sized(NewModel(st, model.HistoryConfig{}))

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	for _, r := range "soon" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.filterMode || !strings.Contains(m.View(), "invalid since date") {
		t.Fatalf("expected filter error to keep the form open")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.filterMode {
		t.Fatalf("expected esc to cancel the filter form")
	}
}

func TestEmptyHistory(t *testing.T) {
	m := sized(NewModel(openStore(t), model.HistoryConfig{}))
	if !strings.Contains(m.View(), "No snapshots found.") {
		t.Fatalf("expected empty state")
	}
}

func TestQuit(t *testing.T) {
	m := sized(NewModel(openStore(t), model.HistoryConfig{}))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestParseFilter(t *testing.T) {
	cfg, err := parseFilter(" 2026-03-01 ", "3")
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cfg.Since == nil || cfg.Since.Day() != 1 || cfg.Last != 3 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if _, err := parseFilter("", "-2"); err == nil {
		t.Fatalf("expected negative last to fail")
	}
}

func TestTruncateLineWideRunes(t *testing.T) {
	got := truncateLine("日本語テキスト", 7)
	if w := runewidth.StringWidth(got); w > 7 {
		t.Fatalf("expected width <= 7, got %d for %q", w, got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis, got %q", got)
	}
	if got := truncateLine("draft.txt", 20); got != "draft.txt" {
		t.Fatalf("expected short line unchanged, got %q", got)
	}
	if got := truncateLine("日本語", 3); runewidth.StringWidth(got) > 3 {
		t.Fatalf("expected narrow truncation to fit, got %q", got)
	}
}
