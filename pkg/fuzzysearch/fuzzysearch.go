// Package fuzzysearch is the public facade over the fuzzy matching
// engine: build one Search over a collection of records and declared key
// paths, then query and highlight against it.
package fuzzysearch

import (
	"strings"

	"go.uber.org/zap"

	"github.com/eda-labs/fuzzysearch/internal/engine"
	"github.com/eda-labs/fuzzysearch/internal/tokenize"
	"github.com/eda-labs/fuzzysearch/pkg/models"
)

// Config re-exports models.Config so callers never need to import
// pkg/models directly for simple use.
type Config = models.Config

// KeySpec re-exports models.KeySpec.
type KeySpec = models.KeySpec

// Result is one ranked match returned by Search.Query.
type Result struct {
	// Value is the original record, or its configured projection.
	Value any
	Score float64
}

// NewConfig returns the engine's default tuning, ready for field
// overrides before passing to New.
func NewConfig() *Config {
	return models.DefaultConfig()
}

// Search is a ready-to-query fuzzy matching index over one record
// collection. Not safe for concurrent Query/Add calls from multiple
// goroutines; build one Search per goroutine that needs one.
type Search struct {
	cfg *Config
	eng *engine.Engine
}

// New builds a Search from cfg (see NewConfig) and an initial record
// collection. Passing a nil or empty source is valid; Add records later.
func New(cfg *Config, source []models.Record, log *zap.Logger) *Search {
	eng := engine.New(cfg, log)
	if len(source) > 0 {
		eng.SetSource(source)
	}
	return &Search{cfg: cfg, eng: eng}
}

// Add appends or upserts one record (see Config.IdentifyItem).
func (s *Search) Add(record models.Record) {
	s.eng.Add(record)
}

// Query runs one free-form (optionally tag-prefixed) search and returns
// ranked, projected results.
func (s *Search) Query(raw string) []Result {
	matches := s.eng.Search(raw)
	out := make([]Result, len(matches))
	for i, m := range matches {
		out[i] = Result{Value: s.project(m), Score: m.Score}
	}
	return out
}

// Highlight renders one raw field string with the portions matching raw
// wrapped in Config.HighlightBefore/After.
func (s *Search) Highlight(raw, fieldText string) string {
	return s.eng.Highlight(fieldText, raw)
}

// project applies Config.OutputMode to a matched record. OutputIdentity
// and OutputFunc are handled inline; OutputAlias/OutputField need the
// declared key metadata, which lives here rather than in internal/engine
// so the engine stays free of the output-shaping concern.
func (s *Search) project(m models.SearchResult) any {
	switch s.cfg.OutputMode {
	case models.OutputFunc:
		if s.cfg.OutputFn != nil {
			return s.cfg.OutputFn(models.IndexedRecord{Record: m.Record}, m.Score)
		}
		return m.Record
	case models.OutputField:
		return strings.Join(tokenize.ExtractRaw(m.Record, s.cfg.OutputPath), " ")
	case models.OutputAlias:
		alias := make(map[string]string, len(s.cfg.Keys))
		for _, k := range s.cfg.Keys {
			if k.Tag == "" {
				continue
			}
			alias[k.Tag] = strings.Join(tokenize.ExtractRaw(m.Record, k.Path), " ")
		}
		return alias
	default:
		return m.Record
	}
}
