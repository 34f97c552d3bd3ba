package align

import (
	"regexp"
	"strings"
	"sync"

	"github.com/eda-labs/fuzzysearch/internal/bitmatch"
	"github.com/eda-labs/fuzzysearch/internal/compose"
	"github.com/eda-labs/fuzzysearch/pkg/models"
)

var sepCache sync.Map // map[string]*regexp.Regexp

func sepRegexp(pattern string) *regexp.Regexp {
	if v, ok := sepCache.Load(pattern); ok {
		return v.(*regexp.Regexp)
	}
	re := regexp.MustCompile(pattern)
	sepCache.Store(pattern, re)
	return re
}

// Highlight renders raw (one leaf field string in its original casing and
// spacing) with the parts matching q wrapped in cfg.HighlightBefore/After
// (component C11). Original whitespace and separators are preserved
// verbatim; only the matched runs are marked.
func Highlight(raw string, q *models.Query, cfg *models.Config) string {
	if raw == "" || len(q.Tokens) == 0 {
		return raw
	}

	tokens, seps := splitPreserving(raw, cfg.TokenSep)

	lower := make([]string, len(tokens))
	for i, t := range tokens {
		lower[i] = strings.ToLower(t)
	}

	if fusedBeatsTokenwise(lower, q, cfg) {
		return highlightWhole(tokens, seps, cfg)
	}

	colIdx := make([]int, 0, len(tokens))
	cols := make([][]rune, 0, len(tokens))
	for i, t := range lower {
		if t == "" {
			continue
		}
		colIdx = append(colIdx, i)
		cols = append(cols, []rune(t))
	}
	if len(cols) == 0 {
		return raw
	}

	matrix := make([][]float64, len(q.Tokens))
	for i, qt := range q.Tokens {
		row := make([]float64, len(cols))
		for j, c := range cols {
			row[j] = bitmatch.ScorePair(qt, string(c), cfg)
		}
		matrix[i] = row
	}
	assignment, _ := compose.Assign(matrix, cfg)

	matchedCol := make(map[int]int) // tokens-index -> query-token-index
	for qi, ci := range assignment {
		if ci >= 0 {
			matchedCol[colIdx[ci]] = qi
		}
	}

	var b strings.Builder
	for i, tok := range tokens {
		if qi, ok := matchedCol[i]; ok {
			writeHighlighted(&b, tok, []rune(lower[i]), []rune(q.Tokens[qi]), cfg)
		} else {
			b.WriteString(tok)
		}
		if i < len(seps) {
			b.WriteString(seps[i])
		}
	}
	return b.String()
}

// writeHighlighted marks, within tok's original text, the spans Align
// finds between queryRunes and tokLower (tok lower-cased to rune-align
// 1:1 with tokLower for the common ASCII/simple-Unicode case).
func writeHighlighted(b *strings.Builder, tok string, tokLower, queryRunes []rune, cfg *models.Config) {
	spans := Align(queryRunes, tokLower, cfg)
	if len(spans) == 0 {
		b.WriteString(tok)
		return
	}
	runes := []rune(tok)
	pos := 0
	for _, sp := range spans {
		if sp.Start > len(runes) || sp.End > len(runes) || sp.Start < pos {
			continue
		}
		b.WriteString(string(runes[pos:sp.Start]))
		b.WriteString(cfg.HighlightBefore)
		b.WriteString(string(runes[sp.Start:sp.End]))
		b.WriteString(cfg.HighlightAfter)
		pos = sp.End
	}
	if pos < len(runes) {
		b.WriteString(string(runes[pos:]))
	}
}

// fusedBeatsTokenwise approximates the composer's "fused pass beat the
// token-wise total" decision for this one field, by comparing the sum of
// each query token's best per-field-token pairing against the fused
// string scored against the whole field at once.
func fusedBeatsTokenwise(tokens []string, q *models.Query, cfg *models.Config) bool {
	if q.Fused == "" {
		return false
	}
	tokenwise := 0.0
	for _, qt := range q.Tokens {
		best := 0.0
		for _, t := range tokens {
			if t == "" {
				continue
			}
			if sc := bitmatch.ScorePair(qt, t, cfg); sc > best {
				best = sc
			}
		}
		tokenwise += best
	}
	joined := strings.Join(tokens, "")
	fused := bitmatch.ScorePair(q.Fused, joined, cfg)
	return fused > tokenwise
}

// highlightWhole wraps the entire non-separator content of the field in a
// single pair of markers, the "entire normalised field is treated as one
// token" rendering for a field whose fused pass beat its token-wise
// score (section 4.11).
func highlightWhole(tokens, seps []string, cfg *models.Config) string {
	var b strings.Builder
	wrote := false
	for i, tok := range tokens {
		if tok != "" && !wrote {
			b.WriteString(cfg.HighlightBefore)
			wrote = true
		}
		b.WriteString(tok)
		if i < len(seps) {
			b.WriteString(seps[i])
		}
	}
	if wrote {
		b.WriteString(cfg.HighlightAfter)
	}
	return b.String()
}

// splitPreserving splits s on every match of sep, returning the
// in-between runs (tokens, one more than the separator count) and the
// separator substrings themselves, so the original can be losslessly
// rebuilt by interleaving them.
func splitPreserving(s, sep string) (tokens, seps []string) {
	re := sepRegexp(sep)
	locs := re.FindAllStringIndex(s, -1)
	last := 0
	for _, loc := range locs {
		tokens = append(tokens, s[last:loc[0]])
		seps = append(seps, s[loc[0]:loc[1]])
		last = loc[1]
	}
	tokens = append(tokens, s[last:])
	return tokens, seps
}
