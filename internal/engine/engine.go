// Package engine wires the query parser (C7), the n-gram pre-filter
// (C9), the field/item composer (C6), and the result selector (C12)
// together into one synchronous Search call.
package engine

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/eda-labs/fuzzysearch/internal/align"
	"github.com/eda-labs/fuzzysearch/internal/compose"
	"github.com/eda-labs/fuzzysearch/internal/index"
	"github.com/eda-labs/fuzzysearch/internal/query"
	"github.com/eda-labs/fuzzysearch/pkg/models"
)

// Engine owns one index store and configuration and answers searches
// against them. Not safe for concurrent use by multiple goroutines at
// once (section 5): each caller needing concurrency should construct its
// own Engine.
type Engine struct {
	cfg   *models.Config
	store *index.Store
	log   *zap.Logger

	// fieldTags[i] is the declared tag bound to cfg.Keys[i], or "" for an
	// untagged key -- precomputed so scoring doesn't rebuild it per query.
	fieldTags []string
}

// New builds an Engine over cfg with an empty index. Records are attached
// with SetSource (indexed at once, or on the first search when cfg.Lazy is
// set) or Add.
func New(cfg *models.Config, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	tags := make([]string, len(cfg.Keys))
	for i, k := range cfg.Keys {
		tags[i] = k.Tag
	}
	return &Engine{cfg: cfg, store: index.NewStore(cfg), log: log, fieldTags: tags}
}

// SetSource attaches (or replaces) the engine's record collection.
func (e *Engine) SetSource(records []models.Record) {
	e.log.Debug("indexing source", zap.Int("records", len(records)))
	e.store.SetSource(records)
}

// Add appends or upserts one record (section 4.8).
func (e *Engine) Add(r models.Record) {
	e.store.Add(r)
}

// Search runs one query end to end: parse (C7), pre-filter (C9), score
// every candidate (C6), select and project the results (C12).
func (e *Engine) Search(raw string) []models.SearchResult {
	q := query.Parse(raw, e.cfg)

	queryWords := make([][]string, 0, 1+len(q.Children))
	queryWords = append(queryWords, q.Tokens)
	for _, c := range q.Children {
		queryWords = append(queryWords, c.Tokens)
	}

	candidateSlots := e.store.Candidates(queryWords)
	records := e.store.Records()

	state := compose.NewState(e.cfg)
	var results []models.SearchResult
	count := 0
	for _, slot := range candidateSlots {
		if slot < 0 || slot >= len(records) {
			continue
		}
		rec := &records[slot]
		score, fi, li, included := state.ScoreRecord(rec, q, e.fieldTags)
		if !included {
			continue
		}
		results = append(results, models.SearchResult{
			Record:     rec.Record,
			Score:      score,
			MatchField: fi,
			MatchLeaf:  li,
		}.WithSortKey(sortKeyFor(rec)))
		count++
		if e.cfg.MaxInners > 0 && count >= e.cfg.MaxInners {
			break
		}
	}

	results = selectResults(results, e.cfg)
	return results
}

// Highlight renders raw (one field's text) with the portions matching
// rawQuery wrapped in cfg.HighlightBefore/After (component C11). rawQuery
// is parsed afresh on every call.
func (e *Engine) Highlight(raw string, rawQuery string) string {
	q := query.Parse(rawQuery, e.cfg)
	return align.Highlight(raw, q, e.cfg)
}

// selectResults applies the result selector (C12): drop anything below
// thresh_include, sort by descending rounded score with alphabetical
// tie-break, truncate to output_limit.
func selectResults(results []models.SearchResult, cfg *models.Config) []models.SearchResult {
	kept := results[:0]
	for _, r := range results {
		if r.Score >= cfg.ThreshInclude {
			kept = append(kept, r)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Score != kept[j].Score {
			return kept[i].Score > kept[j].Score
		}
		return kept[i].SortKey() < kept[j].SortKey()
	})
	if cfg.OutputLimit > 0 && len(kept) > cfg.OutputLimit {
		kept = kept[:cfg.OutputLimit]
	}
	return kept
}

func sortKeyFor(rec *models.IndexedRecord) string {
	if len(rec.Fields) == 0 || len(rec.Fields[0]) == 0 {
		return ""
	}
	return strings.Join(rec.Fields[0][0], " ")
}
