// Package index implements component C8 (the ordered indexed-record store
// with id-based upsert) and component C9 (the optional n-gram inverted
// pre-filter over it).
package index

import (
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/eda-labs/fuzzysearch/internal/tokenize"
	"github.com/eda-labs/fuzzysearch/pkg/models"
)

// parallelBuildThreshold is the source size below which a straight loop
// beats the goroutine fan-out overhead of errgroup.
const parallelBuildThreshold = 256

var rebuildWorkers = runtime.GOMAXPROCS(0)

// Store is the ordered collection of IndexedRecord described in section
// 3: live entries occupy slots [0, nb_indexed), and an optional
// identify_item function enables in-place upsert via an id-to-slot map.
type Store struct {
	mu sync.RWMutex

	cfg    *models.Config
	source []models.Record

	records    []models.IndexedRecord
	nbIndexed  int
	idToSlot   map[any]int
	needsBuild bool

	ngram *ngramIndex
}

// NewStore creates an empty store bound to cfg. Call SetSource (or Add)
// to populate it; with cfg.Lazy set, the first Records/Candidates call
// triggers the build instead of SetSource doing it eagerly.
func NewStore(cfg *models.Config) *Store {
	s := &Store{cfg: cfg}
	if cfg.IdentifyItem != nil {
		s.idToSlot = make(map[any]int)
	}
	if cfg.UseIndexStore {
		s.ngram = newNgramIndex()
	}
	return s
}

// SetSource replaces the attached source collection. The rebuild happens
// immediately unless cfg.Lazy is set, in which case it is deferred to the
// next call that needs the records (Records/Search).
func (s *Store) SetSource(records []models.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = records
	s.needsBuild = true
	if !s.cfg.Lazy {
		s.rebuildLocked()
	}
}

// EnsureBuilt performs a deferred rebuild if one is pending (the lazy
// path). Safe to call unconditionally before every search.
func (s *Store) EnsureBuilt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.needsBuild {
		s.rebuildLocked()
	}
}

// rebuildLocked repopulates records/nbIndexed/idToSlot/ngram from source.
// Caller must hold mu. Extraction (component C2) is embarrassingly
// parallel across records -- each prepare call only reads r and writes
// its own slot -- so a rebuild over enough records fans the work out
// with errgroup rather than walking every record on one goroutine.
func (s *Store) rebuildLocked() {
	s.records = make([]models.IndexedRecord, len(s.source))
	if s.idToSlot != nil {
		s.idToSlot = make(map[any]int, len(s.source))
	}

	if len(s.source) < parallelBuildThreshold {
		for i, r := range s.source {
			s.records[i] = s.prepare(r)
		}
	} else {
		g := new(errgroup.Group)
		g.SetLimit(rebuildWorkers)
		for i, r := range s.source {
			i, r := i, r
			g.Go(func() error {
				s.records[i] = s.prepare(r)
				return nil
			})
		}
		_ = g.Wait() // prepare never errors; Wait only waits out the fan-out
	}

	s.nbIndexed = len(s.records)
	if s.idToSlot != nil {
		for i, rec := range s.records {
			s.idToSlot[rec.ID] = i
		}
	}
	if s.ngram != nil {
		s.ngram.reset(s.records)
	}
	s.needsBuild = false
}

// prepare extracts every declared key's token lists for r (component C2,
// via tokenize.ExtractField), building the IndexedRecord the composer
// scores against.
func (s *Store) prepare(r models.Record) models.IndexedRecord {
	fields := make([][][]string, len(s.cfg.Keys))
	for i, k := range s.cfg.Keys {
		fields[i] = tokenize.ExtractField(r, k.Path, s.cfg)
	}
	rec := models.IndexedRecord{Record: r, Fields: fields}
	if s.cfg.IdentifyItem != nil {
		if id, ok := s.cfg.IdentifyItem(r); ok {
			rec.ID = id
		}
	}
	return rec
}

// Add appends or upserts r (section 4.8): with no identify_item, every
// call appends; with identify_item returning a known id, the record at
// that id's existing slot is replaced in place and nb_indexed is
// unchanged; a new id appends and is mapped. Add always applies
// immediately regardless of cfg.Lazy: a rebuild still pending from a lazy
// SetSource is performed first, then the record is added.
func (s *Store) Add(r models.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.needsBuild {
		s.rebuildLocked()
	}

	prepared := s.prepare(r)
	if s.idToSlot != nil {
		if slot, ok := s.idToSlot[prepared.ID]; ok {
			s.records[slot] = prepared
			if s.ngram != nil {
				s.ngram.reindexSlot(slot, prepared)
			}
			return
		}
		s.idToSlot[prepared.ID] = len(s.records)
	}
	slot := len(s.records)
	s.records = append(s.records, prepared)
	s.nbIndexed = len(s.records)
	if s.ngram != nil {
		s.ngram.reindexSlot(slot, prepared)
	}
}

// Records returns the live indexed records, triggering a deferred rebuild
// first if one is pending.
func (s *Store) Records() []models.IndexedRecord {
	s.EnsureBuilt()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[:s.nbIndexed]
}

// Candidates returns the slot indices C9's pre-filter narrows the record
// set to for the given query tokens (root plus every tag child's
// tokens), or every live slot when the n-gram store is disabled.
func (s *Store) Candidates(queryWords [][]string) []int {
	s.EnsureBuilt()
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ngram == nil {
		all := make([]int, s.nbIndexed)
		for i := range all {
			all[i] = i
		}
		return all
	}
	return s.ngram.candidates(queryWords, s.cfg.StoreThresh, s.cfg.StoreMaxResults)
}
