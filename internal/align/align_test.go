package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eda-labs/fuzzysearch/pkg/models"
)

func TestAlignExactMatchSpansWholeToken(t *testing.T) {
	cfg := models.DefaultConfig()
	spans := Align([]rune("river"), []rune("river"), cfg)
	require.Len(t, spans, 1)
	assert.Equal(t, models.Span{Start: 0, End: 5}, spans[0])
}

func TestAlignSubstringMatch(t *testing.T) {
	cfg := models.DefaultConfig()
	spans := Align([]rune("man"), []rune("woman"), cfg)
	require.NotEmpty(t, spans)
	last := spans[len(spans)-1]
	assert.Equal(t, 5, last.End)
}

func TestAlignNoMatchReturnsEmpty(t *testing.T) {
	cfg := models.DefaultConfig()
	spans := Align([]rune("xyz"), []rune("abc"), cfg)
	assert.Empty(t, spans)
}

func TestAlignPrefixStrippingOnlyWhenConfigured(t *testing.T) {
	cfg := models.DefaultConfig()
	require.False(t, cfg.HighlightPrefix, "default config leaves prefix stripping off")
	withoutStripping := Align([]rune("manhattan"), []rune("manhattan"), cfg)
	require.Len(t, withoutStripping, 1)
	assert.Equal(t, models.Span{Start: 0, End: 9}, withoutStripping[0])

	cfg.HighlightPrefix = true
	withStripping := Align([]rune("manhattan"), []rune("manhattan"), cfg)
	assert.Equal(t, withoutStripping, withStripping, "an exact match covers the same span whether or not the common prefix was split out first")
}

func TestAlignBridgesSmallGap(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.HighlightBridgeGap = 2
	spans := Align([]rune("abcdef"), []rune("abcXdef"), cfg)
	require.Len(t, spans, 1)
	assert.Equal(t, models.Span{Start: 0, End: 7}, spans[0], "a one-rune gap within the bridge limit joins both runs")
}
