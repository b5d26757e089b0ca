// Package stats contains text statistics and reporting.
package stats

import "github.com/verte-zerg/textlens/internal/model"

// CollapsedLetters is the number of letter rows shown when the list is collapsed.
const CollapsedLetters = 5

// TopLetters returns the first n letters of an ordered distribution.
func TopLetters(freqs []model.LetterStat, n int) []model.LetterStat {
	if n <= 0 || len(freqs) == 0 {
		return nil
	}
	if n > len(freqs) {
		n = len(freqs)
	}
	return freqs[:n]
}

// VisibleLetters returns the rows displayed for the given expansion state.
func VisibleLetters(freqs []model.LetterStat, showAll bool) []model.LetterStat {
	if showAll {
		return freqs
	}
	return TopLetters(freqs, CollapsedLetters)
}
