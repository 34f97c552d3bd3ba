package index

import (
	"sort"

	"github.com/eda-labs/fuzzysearch/pkg/models"
)

// ngramIndex is the optional inverted pre-filter of component C9: every
// indexed word contributes a handful of short-key "fingerprints"
// (section 4.9), each mapped to the ordered list of record slots whose
// text produced it. A query's matching-key count per slot approximates
// how promising a candidate it is, without running the score kernels.
type ngramIndex struct {
	postings map[string][]int
}

func newNgramIndex() *ngramIndex {
	return &ngramIndex{postings: make(map[string][]int)}
}

// reset rebuilds the postings list from scratch over records.
func (n *ngramIndex) reset(records []models.IndexedRecord) {
	n.postings = make(map[string][]int)
	for slot, rec := range records {
		n.reindexSlot(slot, rec)
	}
}

// reindexSlot adds slot's keys to the postings list. It does not remove
// any keys a previous occupant of slot may have left behind: upsert
// churn on a store using the n-gram pre-filter accumulates a bounded
// amount of harmless staleness (a stale slot can only ever be an
// over-inclusive candidate, never a lost one), which is acceptable since
// rebuild (SetSource) always starts from reset and clears it.
func (n *ngramIndex) reindexSlot(slot int, rec models.IndexedRecord) {
	seen := make(map[string]bool)
	for _, leafLists := range rec.Fields {
		for _, toks := range leafLists {
			for _, word := range toks {
				for _, key := range wordKeys(word) {
					if seen[key] {
						continue
					}
					seen[key] = true
					n.postings[key] = append(n.postings[key], slot)
				}
			}
		}
	}
}

// wordKeys emits one key per 1-, 2-, and 3-letter combination described
// in section 4.9: the first letter alone; every 2-combination (C(4,2)=6)
// of the first 4 letters, positions kept in order; every 3-combination
// (C(6,3)=20) of the first 6 letters, positions kept in order.
func wordKeys(word string) []string {
	r := []rune(word)
	if len(r) == 0 {
		return nil
	}
	keys := make([]string, 0, 1+6+20)
	keys = append(keys, string(r[0]))

	head4 := r
	if len(head4) > 4 {
		head4 = head4[:4]
	}
	for i := 0; i < len(head4); i++ {
		for j := i + 1; j < len(head4); j++ {
			keys = append(keys, string([]rune{head4[i], head4[j]}))
		}
	}

	head6 := r
	if len(head6) > 6 {
		head6 = head6[:6]
	}
	for i := 0; i < len(head6); i++ {
		for j := i + 1; j < len(head6); j++ {
			for k := j + 1; k < len(head6); k++ {
				keys = append(keys, string([]rune{head6[i], head6[j], head6[k]}))
			}
		}
	}
	return keys
}

// candidates counts, per slot, how many of the query's key fingerprints
// it shares, keeps slots at or above thresh times the best count, and
// caps the result at maxResults (section 4.9).
func (n *ngramIndex) candidates(queryWords [][]string, thresh float64, maxResults int) []int {
	counts := make(map[int]int)
	seenKeys := make(map[string]bool)
	for _, words := range queryWords {
		for _, w := range words {
			for _, key := range wordKeys(w) {
				if seenKeys[key] {
					continue
				}
				seenKeys[key] = true
				for _, slot := range n.postings[key] {
					counts[slot]++
				}
			}
		}
	}
	if len(counts) == 0 {
		return nil
	}

	best := 0
	for _, c := range counts {
		if c > best {
			best = c
		}
	}
	floor := thresh * float64(best)

	slots := make([]int, 0, len(counts))
	for slot, c := range counts {
		if float64(c) >= floor {
			slots = append(slots, slot)
		}
	}
	sort.Slice(slots, func(i, j int) bool {
		if counts[slots[i]] != counts[slots[j]] {
			return counts[slots[i]] > counts[slots[j]]
		}
		return slots[i] < slots[j]
	})
	if maxResults > 0 && len(slots) > maxResults {
		slots = slots[:maxResults]
	}
	return slots
}
