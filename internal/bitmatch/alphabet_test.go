package bitmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eda-labs/fuzzysearch/pkg/models"
)

func TestBuildShortAlphabet(t *testing.T) {
	alpha := BuildShortAlphabet(Runes("aba"))
	assert.Equal(t, uint32(0b101), alpha.Bits['a'])
	assert.Equal(t, uint32(0b010), alpha.Bits['b'])
}

func TestBuildLongAlphabet(t *testing.T) {
	alpha := BuildLongAlphabet(Runes("aba"))
	require.True(t, alpha.Long)
	assert.Equal(t, []int{0, 2, models.PosInfinity}, alpha.Positions['a'])
	assert.Equal(t, []int{1, models.PosInfinity}, alpha.Positions['b'])
}

func TestRunesASCIIAndUnicode(t *testing.T) {
	assert.Equal(t, []rune("abc"), Runes("abc"))
	assert.Equal(t, []rune("café"), Runes("café"))
}
