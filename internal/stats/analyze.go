// Package stats contains text statistics and reporting.
package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/textlens/internal/model"
)

// Recompute derives all statistics for the buffer. It has no side effects.
func Recompute(buffer string, cfg model.AnalysisConfig) model.DerivedStats {
	chars := CharCount(buffer, cfg.ExcludeSpaces)
	words := WordCount(buffer)
	exceeds := false
	if cfg.CharLimit != nil {
		exceeds = chars > *cfg.CharLimit
	}
	return model.DerivedStats{
		CharCount:         chars,
		WordCount:         words,
		SentenceCount:     SentenceCount(buffer),
		ReadingTime:       ReadingTime(words, cfg.WordsPerMinute),
		LetterFrequencies: LetterFrequencies(buffer),
		ExceedsLimit:      exceeds,
	}
}

// CharCount returns the rune length of the buffer, optionally without whitespace.
func CharCount(buffer string, excludeSpaces bool) int {
	if !excludeSpaces {
		return utf8.RuneCountInString(buffer)
	}
	n := 0
	for _, r := range buffer {
		if !isSpace(r) {
			n++
		}
	}
	return n
}

// WordCount returns the number of whitespace-separated runs.
func WordCount(buffer string) int {
	return len(strings.FieldsFunc(buffer, isSpace))
}

// SentenceCount returns the number of non-blank segments between runs of
// '.', '!' and '?'. Non-blank text without terminators counts as one.
func SentenceCount(buffer string) int {
	if strings.TrimFunc(buffer, isSpace) == "" {
		return 0
	}
	n := 0
	for _, segment := range strings.FieldsFunc(buffer, isTerminator) {
		if strings.TrimFunc(segment, isSpace) != "" {
			n++
		}
	}
	return n
}

// ReadingTime estimates reading time for a word count. wpm <= 0 selects the default.
func ReadingTime(words, wpm int) string {
	if wpm <= 0 {
		wpm = model.DefaultWordsPerMinute
	}
	minutes := float64(words) / float64(wpm)
	if minutes < 1 {
		return fmt.Sprintf("%d seconds", int(math.Ceil(minutes*60)))
	}
	rounded := int(math.Ceil(minutes))
	if rounded == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", rounded)
}

// LetterFrequencies tallies a-z in the lowercased buffer, most frequent first.
// Ties keep the order in which letters first appear.
func LetterFrequencies(buffer string) []model.LetterStat {
	var counts [26]int
	order := make([]rune, 0, 26)
	total := 0
	for _, r := range strings.ToLower(buffer) {
		if r < 'a' || r > 'z' {
			continue
		}
		if counts[r-'a'] == 0 {
			order = append(order, r)
		}
		counts[r-'a']++
		total++
	}
	if total == 0 {
		return []model.LetterStat{}
	}
	out := make([]model.LetterStat, 0, len(order))
	for _, r := range order {
		count := counts[r-'a']
		out = append(out, model.LetterStat{
			Letter:     string(r),
			Count:      count,
			Percentage: fmt.Sprintf("%.2f%%", float64(count)/float64(total)*100),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// isSpace treats U+FEFF as a separator and U+0085 as text.
func isSpace(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return unicode.IsSpace(r) || r == '\ufeff'
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
