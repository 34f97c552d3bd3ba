package bitmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eda-labs/fuzzysearch/pkg/models"
)

// referenceLCS is a textbook O(m*n) dynamic-programming LCS length,
// used to check the bit-parallel and block-list kernels against ground
// truth (section 8, properties 4 and 5).
func referenceLCS(a, b []rune) int {
	m, n := len(a), len(b)
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if a[i-1] == b[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else if dp[i-1][j] >= dp[i][j-1] {
				dp[i][j] = dp[i-1][j]
			} else {
				dp[i][j] = dp[i][j-1]
			}
		}
	}
	return dp[m][n]
}

func permissiveConfig() *models.Config {
	cfg := models.DefaultConfig()
	cfg.TokenMinRelSize = 0
	cfg.TokenMaxRelSize = 1000
	return cfg
}

func TestShortScoreMatchesReferenceLCS(t *testing.T) {
	cfg := permissiveConfig()
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"old", "oldman"},
		{"fuzzy", "fuzzysearch"},
		{"abcdef", "fedcba"},
		{"aaaa", "aaaa"},
		{"", "abc"},
	}
	for _, p := range pairs {
		a, b := Runes(p[0]), Runes(p[1])
		want := 0
		if len(a) > 0 && len(b) > 0 {
			want = referenceLCS(a, b)
		}
		alpha := BuildShortAlphabet(a)
		score := ShortScore(a, alpha.Bits, b, cfg)
		if want == 0 {
			assert.Zero(t, score)
			continue
		}
		expected := ScoreFormula(len(a), len(b), want, CommonPrefix(a, b), cfg)
		assert.InDelta(t, expected, score, 1e-9, "pair %v", p)
	}
}

func TestLongScoreMatchesReferenceLCS(t *testing.T) {
	cfg := permissiveConfig()
	a := []rune("thisisaverylongquerytokenindeedyes") // > 32 runes
	require.Greater(t, len(a), models.Width)
	b := []rune("thisisaverylongfieldtokenhoweveryes")

	alpha := BuildLongAlphabet(a)
	got := longLCS(alpha, b)
	want := referenceLCS(a, b)
	assert.Equal(t, want, got)

	score := LongScore(a, alpha, b, cfg)
	assert.InDelta(t, ScoreFormula(len(a), len(b), want, CommonPrefix(a, b), cfg), score, 1e-9)
}

func TestPackedScoresMatchSingleTokenScores(t *testing.T) {
	cfg := permissiveConfig()
	tokens := []string{"old", "man", "river"}
	groups := Pack(tokens)
	require.Len(t, groups, 1, "three short tokens should pack into one group")
	g := groups[0]

	for _, field := range []string{"oldman", "riverside", "manor", "xyz"} {
		b := Runes(field)
		packed := PackedScores(g, b, cfg)
		require.Len(t, packed, len(tokens))
		for k, tok := range tokens {
			single := ShortScore(Runes(tok), BuildShortAlphabet(Runes(tok)).Bits, b, cfg)
			assert.InDelta(t, single, packed[k], 1e-9, "token %q vs field %q", tok, field)
		}
	}
}

func TestScoreIdenticalTokens(t *testing.T) {
	cfg := models.DefaultConfig()
	for _, tok := range []string{"a", "ok", "fuzzy", "river"} {
		r := Runes(tok)
		alpha := BuildShortAlphabet(r)
		got := ShortScore(r, alpha.Bits, r, cfg)
		want := float64(len(r)) + cfg.BonusMatchStart*float64(len(r))
		assert.InDelta(t, want, got, 1e-9, tok)
	}
}

func TestScoreNonNegative(t *testing.T) {
	cfg := models.DefaultConfig()
	pairs := [][2]string{{"kitten", "sitting"}, {"abc", "xyz"}, {"old", "new"}}
	for _, p := range pairs {
		a, b := Runes(p[0]), Runes(p[1])
		score := ShortScore(a, BuildShortAlphabet(a).Bits, b, cfg)
		assert.GreaterOrEqual(t, score, 0.0)
	}
}

func TestSizeGuardRejectsOutOfRangeRatio(t *testing.T) {
	cfg := models.DefaultConfig()
	a := Runes("old")
	b := Runes("o")
	score := ShortScore(a, BuildShortAlphabet(a).Bits, b, cfg)
	assert.Zero(t, score)
}
