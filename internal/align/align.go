// Package align implements component C10 (Smith-Waterman-Gotoh local
// alignment with affine gaps, used to find highlight spans) and component
// C11 (stitching those spans back into a highlighted rendering of the
// original field text).
package align

import "github.com/eda-labs/fuzzysearch/pkg/models"

// Gotoh affine-gap scoring constants (section 4.10: positive match,
// negative gap-open, negative gap-extend, with gap-open steeper than
// gap-extend so the DP prefers one long gap over several short ones).
const (
	matchScore    = 1.0
	mismatchScore = -1.0
	gapOpen       = -2.0
	gapExtend     = -0.5
)

type direction byte

const (
	stop direction = iota
	diag
	up   // gap in b: consumes a only
	left // gap in b's coverage: consumes b only
)

// Align runs local alignment of a against b and returns the highlighted
// spans within b, in ascending order, as half-open rune-index ranges.
// When cfg.ScoreAcronym is set, a diagonal step earns a bonus identical to
// matchScore on each side whose predecessor was a separator or the start
// of the string, so an acronym query aligns cheaply with token initials.
func Align(a, b []rune, cfg *models.Config) []models.Span {
	prefix := 0
	if cfg.HighlightPrefix {
		prefix = commonPrefix(a, b)
	}
	a, b = a[prefix:], b[prefix:]
	m, n := len(a), len(b)
	if m == 0 || n == 0 {
		if prefix > 0 {
			return []models.Span{{Start: 0, End: prefix}}
		}
		return nil
	}

	H := make([][]float64, m+1)
	E := make([][]float64, m+1)
	F := make([][]float64, m+1)
	trace := make([][]direction, m+1)
	for i := range H {
		H[i] = make([]float64, n+1)
		E[i] = make([]float64, n+1)
		F[i] = make([]float64, n+1)
		trace[i] = make([]direction, n+1)
	}

	bestScore := 0.0
	bestI, bestJ := 0, 0

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			s := mismatchScore
			if a[i-1] == b[j-1] {
				s = matchScore
				if cfg.ScoreAcronym {
					if isBoundary(a, i-2) {
						s += matchScore
					}
					if isBoundary(b, j-2) {
						s += matchScore
					}
				}
			}
			diagVal := H[i-1][j-1] + s
			F[i][j] = maxf(H[i-1][j]+gapOpen, F[i-1][j]+gapExtend)
			E[i][j] = maxf(H[i][j-1]+gapOpen, E[i][j-1]+gapExtend)

			cell := 0.0
			dir := stop
			switch {
			case diagVal > cell:
				cell, dir = diagVal, diag
			}
			if F[i][j] > cell {
				cell, dir = F[i][j], up
			}
			if E[i][j] > cell {
				cell, dir = E[i][j], left
			}
			H[i][j] = cell
			trace[i][j] = dir

			if cell > bestScore {
				bestScore, bestI, bestJ = cell, i, j
			}
		}
	}
	if bestScore <= 0 {
		if prefix > 0 {
			return []models.Span{{Start: 0, End: prefix}}
		}
		return nil
	}

	var spans []models.Span
	runStart, runEnd := -1, -1
	gapRun := 0
	i, j := bestI, bestJ
	for i > 0 && j > 0 && trace[i][j] != stop {
		switch trace[i][j] {
		case diag:
			if runEnd == -1 {
				runEnd = j
			}
			runStart = j - 1
			gapRun = 0
			i--
			j--
		case up:
			gapRun++
			if runEnd != -1 && gapRun > cfg.HighlightBridgeGap {
				spans = append(spans, models.Span{Start: runStart + prefix, End: runEnd + prefix})
				runStart, runEnd = -1, -1
			}
			i--
		case left:
			gapRun++
			if runEnd != -1 && gapRun > cfg.HighlightBridgeGap {
				spans = append(spans, models.Span{Start: runStart + prefix, End: runEnd + prefix})
				runStart, runEnd = -1, -1
			}
			j--
		}
	}
	if runEnd != -1 {
		spans = append(spans, models.Span{Start: runStart + prefix, End: runEnd + prefix})
	}
	for l, r := 0, len(spans)-1; l < r; l, r = l+1, r-1 {
		spans[l], spans[r] = spans[r], spans[l]
	}
	if prefix > 0 {
		spans = mergeAdjacent(append([]models.Span{{Start: 0, End: prefix}}, spans...))
	}
	return spans
}

// mergeAdjacent merges touching/overlapping spans after prepending the
// stripped common prefix back as its own leading span.
func mergeAdjacent(spans []models.Span) []models.Span {
	out := spans[:1]
	for _, s := range spans[1:] {
		last := &out[len(out)-1]
		if s.Start <= last.End {
			if s.End > last.End {
				last.End = s.End
			}
			continue
		}
		out = append(out, s)
	}
	return out
}

func commonPrefix(a, b []rune) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// isBoundary reports whether idx is before the start of s, or s[idx] is a
// separator character, matching the default token separator class.
func isBoundary(s []rune, idx int) bool {
	if idx < 0 {
		return true
	}
	return isSeparatorRune(s[idx])
}

func isSeparatorRune(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '-', '/', '\\', '_', '+', '.', '#', '"', '\'', '&', ',', '|', '(', ')', '[', ']', '{', '}':
		return true
	}
	return false
}
