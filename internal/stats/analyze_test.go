package stats

import (
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/verte-zerg/textlens/internal/model"
)

const ambassador = "Design is the silent ambassador."

func TestRecomputeEndToEnd(t *testing.T) {
	got := Recompute(ambassador, model.AnalysisConfig{})
	if got.CharCount != 32 {
		t.Fatalf("expected 32 chars, got %d", got.CharCount)
	}
	if got.WordCount != 5 {
		t.Fatalf("expected 5 words, got %d", got.WordCount)
	}
	if got.SentenceCount != 1 {
		t.Fatalf("expected 1 sentence, got %d", got.SentenceCount)
	}
	noSpaces := Recompute(ambassador, model.AnalysisConfig{ExcludeSpaces: true})
	if got.CharCount-noSpaces.CharCount != 4 {
		t.Fatalf("expected excluding spaces to drop 4 chars, got %d -> %d", got.CharCount, noSpaces.CharCount)
	}
}

func TestRecomputeDeterministic(t *testing.T) {
	limit := 10
	cfg := model.AnalysisConfig{ExcludeSpaces: true, CharLimit: &limit}
	buffers := []string{"", "   ", ambassador, "Wow!! Really?? yes...", "ÄÖÜ straße 123"}
	for _, b := range buffers {
		first := Recompute(b, cfg)
		second := Recompute(b, cfg)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("recompute not deterministic for %q: %+v vs %+v", b, first, second)
		}
	}
}

func TestCharCountExcludeSpaces(t *testing.T) {
	cases := []struct {
		in        string
		hasSpaces bool
	}{
		{"abc", false},
		{"a b\tc\n", true},
		{"", false},
		{"日本語", false},
		{"x y", true},
	}
	for _, tc := range cases {
		with := CharCount(tc.in, false)
		without := CharCount(tc.in, true)
		if without > with {
			t.Fatalf("%q: excluding spaces increased count %d > %d", tc.in, without, with)
		}
		if (with == without) == tc.hasSpaces {
			t.Fatalf("%q: equality should hold iff no whitespace (with=%d without=%d)", tc.in, with, without)
		}
	}
	if got := CharCount("日本語", false); got != 3 {
		t.Fatalf("expected rune count 3, got %d", got)
	}
}

func TestWordCount(t *testing.T) {
	cases := map[string]int{
		"":             0,
		"   ":          0,
		"a b  c":       3,
		"  lead trail ": 2,
		"one\ttwo\nthree": 3,
	}
	for in, want := range cases {
		if got := WordCount(in); got != want {
			t.Fatalf("WordCount(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestWhitespaceSet(t *testing.T) {
	if got := WordCount("a\u0085b"); got != 1 {
		t.Fatalf("expected NEL to join words, got %d", got)
	}
	if got := CharCount("a\u0085b", true); got != 3 {
		t.Fatalf("expected NEL to be counted, got %d", got)
	}
	if got := WordCount("a\ufeffb"); got != 2 {
		t.Fatalf("expected BOM to separate words, got %d", got)
	}
	if got := CharCount("a\ufeffb", true); got != 2 {
		t.Fatalf("expected BOM to be excluded, got %d", got)
	}
	if got := WordCount("a\u00a0b\u3000c"); got != 3 {
		t.Fatalf("expected NBSP and ideographic space to separate words, got %d", got)
	}
}

func TestSentenceCount(t *testing.T) {
	cases := map[string]int{
		"":                    0,
		"  \n ":               0,
		"Hello. World!":       2,
		"no terminators":      1,
		"...":                 0,
		"Wait... what?! Ok.":  3,
		"One. . . Two":        2,
		ambassador:            1,
	}
	for in, want := range cases {
		if got := SentenceCount(in); got != want {
			t.Fatalf("SentenceCount(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestReadingTime(t *testing.T) {
	cases := []struct {
		words int
		want  string
	}{
		{0, "0 seconds"},
		{1, "1 seconds"},
		{100, "27 seconds"},
		{225, "1 minute"},
		{300, "2 minutes"},
		{450, "2 minutes"},
		{451, "3 minutes"},
	}
	for _, tc := range cases {
		if got := ReadingTime(tc.words, 0); got != tc.want {
			t.Fatalf("ReadingTime(%d) = %q, want %q", tc.words, got, tc.want)
		}
	}
	if got := ReadingTime(100, 100); got != "1 minute" {
		t.Fatalf("expected custom wpm to apply, got %q", got)
	}
}

func TestLetterFrequenciesSumAndOrder(t *testing.T) {
	in := "Hello, World! 123 hello"
	freqs := LetterFrequencies(in)
	letters := 0
	for _, r := range strings.ToLower(in) {
		if r >= 'a' && r <= 'z' {
			letters++
		}
	}
	sum := 0
	for i, f := range freqs {
		if f.Count < 1 {
			t.Fatalf("count must be >= 1: %+v", f)
		}
		if i > 0 && freqs[i-1].Count < f.Count {
			t.Fatalf("not sorted descending at %d: %+v", i, freqs)
		}
		sum += f.Count
	}
	if sum != letters {
		t.Fatalf("expected counts to sum to %d, got %d", letters, sum)
	}
	// l=5, o=3, then h=2 before e=2 (first encountered), w, r, d.
	want := []string{"l", "o", "h", "e", "w", "r", "d"}
	for i, w := range want {
		if freqs[i].Letter != w {
			t.Fatalf("position %d: expected %s, got %s (%+v)", i, w, freqs[i].Letter, freqs)
		}
	}
}

func TestLetterFrequenciesEmpty(t *testing.T) {
	for _, in := range []string{"", "123 !?", "日本語"} {
		freqs := LetterFrequencies(in)
		if freqs == nil || len(freqs) != 0 {
			t.Fatalf("expected empty non-nil slice for %q, got %+v", in, freqs)
		}
	}
}

func TestLetterPercentagesSumTo100(t *testing.T) {
	freqs := LetterFrequencies("The quick brown fox jumps over the lazy dog")
	total := 0.0
	for _, f := range freqs {
		if !strings.HasSuffix(f.Percentage, "%") {
			t.Fatalf("missing percent suffix: %q", f.Percentage)
		}
		v, err := strconv.ParseFloat(strings.TrimSuffix(f.Percentage, "%"), 64)
		if err != nil {
			t.Fatalf("parse %q: %v", f.Percentage, err)
		}
		if parts := strings.Split(strings.TrimSuffix(f.Percentage, "%"), "."); len(parts[1]) != 2 {
			t.Fatalf("expected 2 decimals: %q", f.Percentage)
		}
		total += v
	}
	if total < 99.9 || total > 100.1 {
		t.Fatalf("expected percentages to sum to ~100, got %.4f", total)
	}
}

func TestExceedsLimit(t *testing.T) {
	long := strings.Repeat("x", 500)
	if Recompute(long, model.AnalysisConfig{}).ExceedsLimit {
		t.Fatalf("unset limit must never be exceeded")
	}
	limit := 499
	if !Recompute(long, model.AnalysisConfig{CharLimit: &limit}).ExceedsLimit {
		t.Fatalf("expected 500 > 499 to exceed")
	}
	limit = 500
	if Recompute(long, model.AnalysisConfig{CharLimit: &limit}).ExceedsLimit {
		t.Fatalf("expected 500 == 500 not to exceed")
	}
	limit = 6
	if Recompute("a b c d", model.AnalysisConfig{CharLimit: &limit, ExcludeSpaces: true}).ExceedsLimit {
		t.Fatalf("expected limit to use the space-excluded count")
	}
}
