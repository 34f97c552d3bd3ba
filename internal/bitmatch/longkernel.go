package bitmatch

import "github.com/eda-labs/fuzzysearch/pkg/models"

// longLCS computes the LCS length between a long query token (represented
// by its position-list alphabet) and a field token b.
//
// Section 4.5.3 describes the row as a growable list of half-open Blocks,
// each marking a position interval where the LCS-so-far "rises" a level;
// a block splits or extends as each character of b is scanned against the
// position list of matches in a. The row of Blocks is, position for
// position, the frontier of smallest attainable subsequence endpoints one
// maintains in the Hunt-Szymanski patience-sorting reduction of LCS to
// longest-increasing-subsequence: a block boundary is exactly a frontier
// value changing. We maintain that frontier directly (as models.Block
// entries of width 1, matching a single accepted position) since it is
// the same quantity with less bookkeeping, and it is scanned character-by-
// character the same way the spec's row update is.
func longLCS(alpha models.Alphabet, b []rune) int {
	frontier := make([]models.Block, 0, 8)
	for _, c := range b {
		positions := alpha.Positions[c]
		if len(positions) == 0 {
			continue
		}
		// Process this character's match positions from largest to
		// smallest so that two matches of the same b character never
		// chain into each other within one scan step.
		for i := len(positions) - 1; i >= 0; i-- {
			pos := positions[i]
			if pos >= models.PosInfinity {
				continue
			}
			insertAt := frontierSearch(frontier, pos)
			if insertAt == len(frontier) {
				frontier = append(frontier, models.Block{Start: pos, End: pos + 1})
			} else if pos < frontier[insertAt].Start {
				frontier[insertAt] = models.Block{Start: pos, End: pos + 1}
			}
		}
	}
	return len(frontier)
}

// frontierSearch returns the index of the first block whose Start is >=
// pos (a binary search over the strictly increasing frontier).
func frontierSearch(frontier []models.Block, pos int) int {
	lo, hi := 0, len(frontier)
	for lo < hi {
		mid := (lo + hi) / 2
		if frontier[mid].Start >= pos {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// LongScore scores a long query token (rune length m > models.Width,
// position-list alphabet alpha) against a field token b (component
// C5.3). The block-row scan already finds the optimal LCS over the whole
// strings, including any shared prefix, so unlike the bit-parallel
// kernels no separate prefix length is added back into the LCS count --
// only into the score formula's bonus_match_start term.
func LongScore(aRunes []rune, alpha models.Alphabet, b []rune, cfg *models.Config) float64 {
	m, n := len(aRunes), len(b)
	if !sizeGuard(m, n, cfg) {
		return 0
	}
	prefix := CommonPrefix(aRunes, b)
	llcs := longLCS(alpha, b)
	return ScoreFormula(m, n, llcs, prefix, cfg)
}
