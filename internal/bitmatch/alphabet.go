// Package bitmatch implements components C3-C5: the per-token alphabet
// builders, the token packer, and the three interchangeable LCS-length
// score kernels (short, packed, block-list).
package bitmatch

import (
	"unicode/utf8"

	"github.com/eda-labs/fuzzysearch/pkg/models"
)

// BuildShortAlphabet builds the bit-packed alphabet for a token no longer
// than models.Width (component C3, short form): map[char] gets a 1 bit at
// every position the character occurs.
func BuildShortAlphabet(token []rune) models.Alphabet {
	bits := make(map[rune]uint32, len(token))
	for i, r := range token {
		bits[r] |= uint32(1) << uint(i)
	}
	return models.Alphabet{Bits: bits}
}

// BuildLongAlphabet builds the position-list alphabet for a token longer
// than models.Width (component C3, long form): map[char] gets the
// ascending list of positions the character occurs at, sentinel-terminated
// with models.PosInfinity.
func BuildLongAlphabet(token []rune) models.Alphabet {
	pos := make(map[rune][]int)
	for i, r := range token {
		pos[r] = append(pos[r], i)
	}
	for r := range pos {
		pos[r] = append(pos[r], models.PosInfinity)
	}
	return models.Alphabet{Positions: pos, Long: true}
}

// Runes splits a token into its runes once, so callers needing both its
// rune slice and its length can avoid re-decoding.
func Runes(token string) []rune {
	if utf8.RuneCountInString(token) == len(token) {
		// ASCII fast path: avoid an intermediate []rune conversion cost
		// for the overwhelmingly common case.
		out := make([]rune, len(token))
		for i := 0; i < len(token); i++ {
			out[i] = rune(token[i])
		}
		return out
	}
	return []rune(token)
}
