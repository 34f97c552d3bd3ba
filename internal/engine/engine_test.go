package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eda-labs/fuzzysearch/pkg/models"
)

type book struct {
	ID     string
	Title  string
	Author string
}

func newEngine(records []models.Record) *Engine {
	cfg := models.DefaultConfig()
	cfg.Keys = []models.KeySpec{
		{Tag: "title", Path: "Title"},
		{Tag: "author", Path: "Author"},
	}
	e := New(cfg, nil)
	e.SetSource(records)
	return e
}

func TestSearchFindsSubstringMatch(t *testing.T) {
	e := newEngine([]models.Record{
		book{ID: "1", Title: "The Old Man and the Sea", Author: "Hemingway"},
		book{ID: "2", Title: "Manchester United", Author: "Someone"},
	})
	results := e.Search("old man")
	require.NotEmpty(t, results)
	found := false
	for _, r := range results {
		if r.Record.(book).ID == "1" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSearchWithTagScopesToField(t *testing.T) {
	e := newEngine([]models.Record{
		book{ID: "1", Title: "Tolkien Biography", Author: "John Tolkien"},
		book{ID: "2", Title: "Unrelated", Author: "Nobody"},
	})
	results := e.Search("author:tolkien")
	require.NotEmpty(t, results)
	assert.Equal(t, "1", results[0].Record.(book).ID)
}

func TestSearchResultsDescendingByScore(t *testing.T) {
	e := newEngine([]models.Record{
		book{ID: "1", Title: "river"},
		book{ID: "2", Title: "rivet"},
		book{ID: "3", Title: "completely unrelated"},
	})
	results := e.Search("river")
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestHighlightMarksMatchedTokens(t *testing.T) {
	e := newEngine(nil)
	out := e.Highlight("John Ronald Doe", "john doe")
	assert.Contains(t, out, defaultHighlightBefore())
}

func defaultHighlightBefore() string {
	return models.DefaultConfig().HighlightBefore
}
