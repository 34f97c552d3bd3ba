package fuzzysearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eda-labs/fuzzysearch/pkg/models"
)

type movie struct {
	ID    string
	Title string
}

func TestQueryReturnsProjectedIdentity(t *testing.T) {
	cfg := NewConfig()
	cfg.Keys = []KeySpec{{Path: "Title"}}
	s := New(cfg, []models.Record{
		movie{ID: "1", Title: "The Old Man and the Sea"},
	}, nil)

	results := s.Query("old man")
	require.NotEmpty(t, results)
	m, ok := results[0].Value.(movie)
	require.True(t, ok)
	assert.Equal(t, "1", m.ID)
}

func TestQueryOutputFieldProjection(t *testing.T) {
	cfg := NewConfig()
	cfg.Keys = []KeySpec{{Path: "Title"}}
	cfg.OutputMode = models.OutputField
	cfg.OutputPath = "ID"
	s := New(cfg, []models.Record{
		movie{ID: "movie-1", Title: "Manhattan Project"},
	}, nil)

	results := s.Query("manhattan")
	require.NotEmpty(t, results)
	assert.Equal(t, "movie-1", results[0].Value)
}

func TestAddAppendsRecord(t *testing.T) {
	cfg := NewConfig()
	cfg.Keys = []KeySpec{{Path: "Title"}}
	s := New(cfg, nil, nil)
	s.Add(movie{ID: "1", Title: "Fuzzy Matching"})
	results := s.Query("fuzzy")
	assert.NotEmpty(t, results)
}
