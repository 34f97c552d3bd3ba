package bitmatch

import "github.com/eda-labs/fuzzysearch/pkg/models"

// ScoreGroup scores every token of a packed group against one field token,
// dispatching to whichever of the three kernels fits the group's shape
// (short single-token, packed multi-token, or long single-token).
func ScoreGroup(g *models.PackInfo, bToken string, cfg *models.Config) []float64 {
	b := Runes(bToken)
	switch {
	case g.Alphabet.Long:
		return []float64{LongScore(Runes(g.Tokens[0]), g.Alphabet, b, cfg)}
	case len(g.Tokens) == 1:
		return []float64{ShortScore(Runes(g.Tokens[0]), g.Alphabet.Bits, b, cfg)}
	default:
		return PackedScores(g, b, cfg)
	}
}

// ScoreWithAlphabet scores aRunes (whose alphabet was already built once
// and cached, as a Query's fused string is) against b, dispatching on
// whichever kernel the cached alphabet was built for. Used by the fused
// scoring paths of the field/item composer (C6), which reuse a Query's
// FusedAlpha across every candidate record instead of rebuilding it.
func ScoreWithAlphabet(aRunes []rune, alpha models.Alphabet, b []rune, cfg *models.Config) float64 {
	if alpha.Long {
		return LongScore(aRunes, alpha, b, cfg)
	}
	return ShortScore(aRunes, alpha.Bits, b, cfg)
}

// ScorePair scores one query token against one field token directly,
// without a PackInfo group -- used by the bipartite assignment (C13) and
// the highlight path, where tokens are compared one-to-one rather than
// packed.
func ScorePair(a, b string, cfg *models.Config) float64 {
	aRunes, bRunes := Runes(a), Runes(b)
	if len(aRunes) > models.Width {
		return LongScore(aRunes, BuildLongAlphabet(aRunes), bRunes, cfg)
	}
	return ShortScore(aRunes, BuildShortAlphabet(aRunes).Bits, bRunes, cfg)
}
