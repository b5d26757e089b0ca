package stats

import (
	"testing"

	"github.com/verte-zerg/textlens/internal/model"
)

func TestTopLetters(t *testing.T) {
	freqs := LetterFrequencies("abcdefg aabbc")
	top := TopLetters(freqs, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 letters, got %d", len(top))
	}
	if top[0].Letter != "a" || top[1].Letter != "b" {
		t.Fatalf("unexpected order: %+v", top)
	}
	if got := TopLetters(freqs, 100); len(got) != len(freqs) {
		t.Fatalf("expected clamp to %d, got %d", len(freqs), len(got))
	}
	if got := TopLetters(nil, 5); got != nil {
		t.Fatalf("expected nil for empty input, got %+v", got)
	}
}

func TestVisibleLettersToggleRoundTrip(t *testing.T) {
	freqs := LetterFrequencies("the quick brown fox")
	collapsed := VisibleLetters(freqs, false)
	if len(collapsed) != CollapsedLetters {
		t.Fatalf("expected %d collapsed rows, got %d", CollapsedLetters, len(collapsed))
	}
	expanded := VisibleLetters(freqs, true)
	if len(expanded) != len(freqs) {
		t.Fatalf("expected all %d rows, got %d", len(freqs), len(expanded))
	}
	showAll := false
	showAll = !showAll
	showAll = !showAll
	again := VisibleLetters(freqs, showAll)
	if !sameLetters(again, collapsed) {
		t.Fatalf("expected toggling twice to restore collapsed rows")
	}
}

func sameLetters(a, b []model.LetterStat) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
