package bitmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eda-labs/fuzzysearch/pkg/models"
)

func TestPackGroupsShortTokensTogether(t *testing.T) {
	groups := Pack([]string{"old", "man", "river"})
	require.Len(t, groups, 1)
	g := groups[0]
	assert.Equal(t, []string{"old", "man", "river"}, g.Tokens)
	assert.Equal(t, []int{0, 3, 6}, g.Offsets)
	assert.Equal(t, 11, TotalWidth(g))
}

func TestPackSplitsWhenGroupWouldOverflowWidth(t *testing.T) {
	long := make([]byte, 20)
	for i := range long {
		long[i] = 'x'
	}
	tokens := []string{string(long), string(long)}
	groups := Pack(tokens)
	require.Len(t, groups, 2, "two 20-char tokens exceed one 32-char word combined")
}

func TestPackLongSingleTokenIsItsOwnGroup(t *testing.T) {
	long := make([]byte, 40)
	for i := range long {
		long[i] = 'y'
	}
	groups := Pack([]string{string(long), "ok"})
	require.Len(t, groups, 2)
	assert.True(t, groups[0].Alphabet.Long)
	assert.Equal(t, ^uint32(0), groups[0].Gate)
}

func TestPackTokenExactlyAtWidthUsesShortKernel(t *testing.T) {
	exact := make([]byte, models.Width)
	for i := range exact {
		exact[i] = 'z'
	}
	groups := Pack([]string{string(exact)})
	require.Len(t, groups, 1)
	assert.False(t, groups[0].Alphabet.Long, "a token of length exactly Width must use the short/packed path, not the long one")
}

func TestPackGateExcludesTopBitOfEachToken(t *testing.T) {
	groups := Pack([]string{"ab", "cd"})
	require.Len(t, groups, 1)
	g := groups[0]
	// "ab" occupies bits 0-1, gate should include bit 0 but not bit 1;
	// "cd" occupies bits 2-3, gate should include bit 2 but not bit 3.
	want := uint32(1)<<0 | uint32(1)<<2
	assert.Equal(t, want, g.Gate&0b1111)
}
