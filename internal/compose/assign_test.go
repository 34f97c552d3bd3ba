package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eda-labs/fuzzysearch/pkg/models"
)

func cfgWithFloor(min, rel float64) *models.Config {
	cfg := models.DefaultConfig()
	cfg.MinimumMatch = min
	cfg.ThreshRelativeToBest = rel
	return cfg
}

func TestAssignPrefersOptimalOverGreedy(t *testing.T) {
	// Row 0 prefers column 1 but can also take column 0; row 1 can only
	// take column 1. A greedy match giving row 0 its best column would
	// starve row 1 (total 10); the optimal assignment gives row 0 column 0
	// and row 1 column 1 (total 13).
	matrix := [][]float64{
		{5, 10},
		{0, 8},
	}
	assignment, total := Assign(matrix, cfgWithFloor(0, 0))
	require.Equal(t, []int{0, 1}, assignment)
	assert.InDelta(t, 13.0, total, 1e-9)
}

func TestAssignSkipsRowBelowFloor(t *testing.T) {
	matrix := [][]float64{
		{0.1, 0.1},
		{9, 0},
	}
	assignment, total := Assign(matrix, cfgWithFloor(1.0, 0.5))
	assert.Equal(t, -1, assignment[0])
	assert.Equal(t, 0, assignment[1])
	assert.InDelta(t, 9.0, total, 1e-9)
}

func TestAssignEmptyMatrix(t *testing.T) {
	assignment, total := Assign(nil, cfgWithFloor(0, 0))
	assert.Nil(t, assignment)
	assert.Zero(t, total)
}

func TestAssignSingleQualifyingRowShortcut(t *testing.T) {
	matrix := [][]float64{
		{0, 0, 0},
		{0, 8, 0},
		{0, 0, 0},
	}
	assignment, total := Assign(matrix, cfgWithFloor(1, 0.5))
	assert.Equal(t, []int{-1, 1, -1}, assignment)
	assert.InDelta(t, 8.0, total, 1e-9)
}

func TestAssignInjective(t *testing.T) {
	matrix := [][]float64{
		{5, 5, 5},
		{5, 5, 5},
		{5, 5, 5},
	}
	assignment, _ := Assign(matrix, cfgWithFloor(0, 0))
	seen := make(map[int]bool)
	for _, c := range assignment {
		if c < 0 {
			continue
		}
		require.False(t, seen[c], "column %d used twice", c)
		seen[c] = true
	}
}
