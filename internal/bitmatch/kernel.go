package bitmatch

import (
	"math/bits"

	"github.com/eda-labs/fuzzysearch/pkg/models"
)

// CommonPrefix returns the length of the shared leading run of a and b.
func CommonPrefix(a, b []rune) int {
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

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// sizeGuard implements the relative-size rejection shared by all three
// kernels (section 4.5.1): two tokens score 0 when their length ratio
// falls outside [token_min_rel_size, token_max_rel_size].
func sizeGuard(m, n int, cfg *models.Config) bool {
	if m == 0 || n == 0 {
		return false
	}
	fm, fn := float64(m), float64(n)
	if fn < cfg.TokenMinRelSize*fm || fn > cfg.TokenMaxRelSize*fm {
		return false
	}
	return true
}

// ScoreFormula is the formula common to every kernel (section 4.5.1): a
// quadratic in the LCS length, normalised by token-size, plus a linear
// bonus for the length of the common prefix.
func ScoreFormula(m, n, llcs, prefix int, cfg *models.Config) float64 {
	if m == 0 || n == 0 {
		return 0
	}
	sz := float64(m+n) / (2.0 * float64(m) * float64(n))
	return sz*float64(llcs*llcs) + cfg.BonusMatchStart*float64(prefix)
}

// ShortScore scores a short query token a (rune length m <= models.Width,
// alphabet alpha) against a field token b, returning the composed score.
func ShortScore(aRunes []rune, alpha map[rune]uint32, b []rune, cfg *models.Config) float64 {
	m, n := len(aRunes), len(b)
	if !sizeGuard(m, n, cfg) {
		return 0
	}
	p := CommonPrefix(aRunes, b)
	minmn := minInt(m, n)
	var llcs int
	if p == minmn {
		llcs = p
	} else {
		mask := (uint32(1) << uint(m)) - 1
		S := mask
		for j := p; j < n; j++ {
			U := S & alpha[b[j]]
			S = (S + U) | (S - U)
		}
		if p > 0 {
			mask &^= (uint32(1) << uint(p)) - 1
		}
		S = ^S & mask
		llcs = p + bits.OnesCount32(S)
	}
	return ScoreFormula(m, n, llcs, p, cfg)
}

// PackedScores scores every token inside a packed group against one field
// token b in a single pass (component C5.2, Hyyro 2006's gated addition),
// returning one score per slot.
func PackedScores(p *models.PackInfo, b []rune, cfg *models.Config) []float64 {
	total := TotalWidth(p)
	out := make([]float64, len(p.Tokens))
	if total == 0 || len(b) == 0 {
		return out
	}

	mask := (uint32(1) << uint(total)) - 1
	S := mask
	gate := p.Gate
	for _, c := range b {
		U := S & p.Alphabet.Bits[c]
		S = ((S & gate) + (U & gate)) | (S - U)
	}
	S = ^S

	n := len(b)
	for k, tok := range p.Tokens {
		aRunes := Runes(tok)
		mk := len(aRunes)
		if !sizeGuard(mk, n, cfg) {
			continue
		}
		pk := CommonPrefix(aRunes, b)
		minmn := minInt(mk, n)
		var llcs int
		if pk == minmn {
			llcs = pk
		} else {
			o := p.Offsets[k]
			slotMask := (uint32(1) << uint(mk)) - 1
			Sk := (S >> uint(o)) & slotMask
			if pk > 0 {
				Sk &^= (uint32(1) << uint(pk)) - 1
			}
			llcs = pk + bits.OnesCount32(Sk)
		}
		out[k] = ScoreFormula(mk, n, llcs, pk, cfg)
	}
	return out
}
