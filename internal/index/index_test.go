package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eda-labs/fuzzysearch/pkg/models"
)

type rec struct {
	ID    string
	Title string
}

func newCfg() *models.Config {
	cfg := models.DefaultConfig()
	cfg.Keys = []models.KeySpec{{Path: "Title"}}
	return cfg
}

func TestStoreSetSourceAndRecords(t *testing.T) {
	cfg := newCfg()
	s := NewStore(cfg)
	s.SetSource([]models.Record{rec{ID: "1", Title: "Old Man River"}})
	records := s.Records()
	require.Len(t, records, 1)
	assert.Equal(t, []string{"old", "man", "river"}, records[0].Fields[0][0])
}

func TestStoreAddAppendsWithoutIdentify(t *testing.T) {
	cfg := newCfg()
	s := NewStore(cfg)
	s.Add(rec{ID: "1", Title: "first"})
	s.Add(rec{ID: "2", Title: "second"})
	assert.Len(t, s.Records(), 2)
}

func TestStoreUpsertReplacesSameSlot(t *testing.T) {
	cfg := newCfg()
	cfg.IdentifyItem = func(r models.Record) (any, bool) {
		return r.(rec).ID, true
	}
	s := NewStore(cfg)
	s.Add(rec{ID: "1", Title: "first version"})
	s.Add(rec{ID: "2", Title: "other"})
	before := len(s.Records())
	s.Add(rec{ID: "1", Title: "updated version"})
	after := s.Records()
	assert.Len(t, after, before)
	assert.Equal(t, []string{"updated", "version"}, after[0].Fields[0][0])
}

func TestStoreLazyDefersRebuild(t *testing.T) {
	cfg := newCfg()
	cfg.Lazy = true
	s := NewStore(cfg)
	s.SetSource([]models.Record{rec{ID: "1", Title: "deferred"}})
	records := s.Records() // triggers the deferred build
	require.Len(t, records, 1)
}

func TestNgramCandidatesNarrowsButDoesNotInvent(t *testing.T) {
	cfg := newCfg()
	cfg.UseIndexStore = true
	s := NewStore(cfg)
	s.SetSource([]models.Record{
		rec{ID: "1", Title: "old man river"},
		rec{ID: "2", Title: "completely unrelated text"},
	})
	all := s.Records()
	candidates := s.Candidates([][]string{{"old", "man"}})
	assert.LessOrEqual(t, len(candidates), len(all))
	for _, c := range candidates {
		assert.GreaterOrEqual(t, c, 0)
		assert.Less(t, c, len(all))
	}
}
