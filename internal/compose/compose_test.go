package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eda-labs/fuzzysearch/internal/bitmatch"
	"github.com/eda-labs/fuzzysearch/pkg/models"
)

func buildQuery(tokens []string) *models.Query {
	q := &models.Query{Tokens: tokens, Packs: bitmatch.Pack(tokens)}
	fused := ""
	for _, t := range tokens {
		fused += t
	}
	q.Fused = fused
	r := bitmatch.Runes(fused)
	if len(r) > models.Width {
		q.FusedAlpha = bitmatch.BuildLongAlphabet(r)
	} else {
		q.FusedAlpha = bitmatch.BuildShortAlphabet(r)
	}
	return q
}

func TestScoreRecordExactMatchIncluded(t *testing.T) {
	cfg := models.DefaultConfig()
	q := buildQuery([]string{"old", "man"})
	rec := &models.IndexedRecord{
		Fields: [][][]string{
			{{"old", "man", "river"}},
		},
	}
	state := NewState(cfg)
	score, fi, li, included := state.ScoreRecord(rec, q, []string{""})
	require.True(t, included)
	assert.Equal(t, 0, fi)
	assert.Equal(t, 0, li)
	assert.Greater(t, score, 0.0)
}

func TestScoreRecordNoMatchExcluded(t *testing.T) {
	cfg := models.DefaultConfig()
	q := buildQuery([]string{"zzzzz"})
	rec := &models.IndexedRecord{
		Fields: [][][]string{
			{{"old", "man", "river"}},
		},
	}
	state := NewState(cfg)
	_, _, _, included := state.ScoreRecord(rec, q, []string{""})
	assert.False(t, included)
}

func TestFusedConcatExcludesSyntheticAcronymToken(t *testing.T) {
	q := buildQuery([]string{"oldman"})

	withAcronymCfg := models.DefaultConfig()
	withAcronymCfg.ScoreAcronym = true
	// "om" is the synthetic acronym token tokenize.ExtractField would have
	// appended; fusedConcat must exclude it from the concatenation.
	withAcronym := fusedConcat([]string{"old", "man", "om"}, q, withAcronymCfg)

	plainCfg := models.DefaultConfig()
	plainCfg.ScoreAcronym = false
	withoutAcronym := fusedConcat([]string{"old", "man"}, q, plainCfg)

	assert.Equal(t, withoutAcronym, withAcronym)
}

func TestScoreRecordDynamicThresholdRises(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.ThreshInclude = 0
	q := buildQuery([]string{"river"})
	strong := &models.IndexedRecord{Fields: [][][]string{{{"river"}}}}
	weak := &models.IndexedRecord{Fields: [][][]string{{{"rivet"}}}}

	state := NewState(cfg)
	_, _, _, includedStrong := state.ScoreRecord(strong, q, []string{""})
	require.True(t, includedStrong)
	bestAfterStrong := state.BestItemScore()
	assert.Greater(t, bestAfterStrong, 0.0)
	assert.Greater(t, state.threshInclude, cfg.ThreshInclude)

	_, _, _, includedWeak := state.ScoreRecord(weak, q, []string{""})
	_ = includedWeak
}
