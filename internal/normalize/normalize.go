// Package normalize implements component C1: case-folding, separator-run
// collapse, and a fixed Latin diacritic fold, so that token comparison
// downstream never has to special-case accents, casing, or repeated
// punctuation/whitespace.
package normalize

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// foldTable maps the Latin-1/Extended-A diacritics named in spec.md
// section 4.1 to their unaccented ASCII base letter. Unknown non-ASCII
// runes pass through unchanged (section 7's "Unknown character during
// diacritic fold" error kind: a no-op, not an error).
var foldTable = map[rune]rune{
	'ã': 'a', 'à': 'a', 'á': 'a', 'ä': 'a', 'â': 'a', 'æ': 'a',
	'ẽ': 'e', 'è': 'e', 'é': 'e', 'ë': 'e', 'ê': 'e',
	'ì': 'i', 'í': 'i', 'ï': 'i', 'î': 'i',
	'õ': 'o', 'ò': 'o', 'ó': 'o', 'ö': 'o', 'ô': 'o', 'œ': 'o',
	'ù': 'u', 'ú': 'u', 'ü': 'u', 'û': 'u',
	'ñ': 'n',
	'ç': 'c',
}

var sepCache sync.Map // map[string]*regexp.Regexp

func sepMatcher(sep string) *regexp.Regexp {
	if v, ok := sepCache.Load(sep); ok {
		return v.(*regexp.Regexp)
	}
	re := regexp.MustCompile(sep)
	sepCache.Store(sep, re)
	return re
}

// Normalize folds s to lowercase, decomposes accented runes (via NFD, so a
// precomposed "é" and a decomposed "e"+combining-acute both reach the fold
// table the same way), strips the table's diacritics, and collapses any
// run of the configured separator characters (section 4.1) -- plus any
// run of plain whitespace, regardless of sep -- to a single space.
// Normalize is total: every input, including the empty string, produces a
// defined output, and applying it twice is a no-op
// (Normalize(Normalize(s, sep), sep) == Normalize(s, sep)).
func Normalize(s, sep string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	s = norm.NFD.String(s)
	re := sepMatcher(sep)

	var b strings.Builder
	b.Grow(len(s))
	lastWasSep := false
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			// Combining mark stripped by NFD decomposition; the base
			// letter it rode in on already went through foldTable below.
			continue
		}
		if folded, ok := foldTable[r]; ok {
			r = folded
		}
		if unicode.IsSpace(r) || re.MatchString(string(r)) {
			if lastWasSep {
				continue
			}
			b.WriteByte(' ')
			lastWasSep = true
			continue
		}
		lastWasSep = false
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
