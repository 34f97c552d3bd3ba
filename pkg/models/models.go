// Package models defines the data structures shared across the fuzzy
// search engine: the record index, the query representation, the bit-packed
// alphabets the score kernels operate on, and the results a search returns.
package models

import "math"

// Width is the machine word width the bit-parallel kernels pack tokens
// into. Tokens no longer than Width characters score through the
// bit-parallel short/packed kernels (section 4.5.1/4.5.2); longer tokens
// fall back to the block-list kernel (4.5.3).
const Width = 32

// PosInfinity terminates a position list in a long-token Alphabet.
const PosInfinity = math.MaxInt32

// Record is an opaque host-supplied value. The engine retains only a
// back-reference to it; it never mutates or copies it.
type Record = any

// Alphabet is a per-token character lookup built by the alphabet builder
// (component C3). Exactly one of Bits or Positions is populated, selected
// by whether the token(s) it covers fit in one machine word.
type Alphabet struct {
	// Bits maps a character to a bitset with bit i set when the character
	// occurs at position i of the token (or, for a packed group, at
	// position i of the concatenated group). Used when width <= Width.
	Bits map[rune]uint32
	// Positions maps a character to an ascending list of occurrence
	// positions, sentinel-terminated with PosInfinity. Used when the
	// underlying token exceeds Width characters.
	Positions map[rune][]int
	// Long is true when Positions is the active field.
	Long bool
}

// PackInfo is a group of at most Width total characters of query tokens
// packed consecutively into one Alphabet (component C4). A group with a
// single token of length > Width is a degenerate one-token group backed
// by a position-list Alphabet instead.
type PackInfo struct {
	// Tokens are the source query tokens, in declared order.
	Tokens []string
	// Offsets[k] is the bit offset at which Tokens[k] begins inside the
	// packed Alphabet.
	Offsets []int
	// Alphabet is the combined per-character map for the whole group.
	Alphabet Alphabet
	// Gate has a 1 bit everywhere except at the top bit of each packed
	// token, breaking carry propagation across token boundaries in the
	// packed kernel's addition (Hyyro 2006).
	Gate uint32

	// Scratch, borrowed mutably by the active search and reset per
	// record (never reallocated per record):
	ScoreItem  []float64 // best per-token score seen for slot k across any field
	ScoreField []float64 // best_of_field[k] for the field currently being scored
	FieldPos   []int     // leaf index in the current field that achieved ScoreField[k]
}

// Query is the parsed, normalised representation of one (sub-)query
// (component C7). The root query's Children holds one optional entry per
// declared tag; a child query never itself carries children (one level
// deep, per spec.md section 9's "Tagged sub-queries" design note).
type Query struct {
	Raw        string
	Normalized string
	Tokens     []string
	Packs      []*PackInfo
	Fused      string
	FusedAlpha Alphabet

	Children map[string]*Query

	// Scratch, mutated during a search and reset between records:
	FusedScore float64
}

// Reset zeroes the per-record scratch on a Query and all its PackInfo
// groups (and recurses into tag children) without reallocating.
func (q *Query) Reset() {
	q.FusedScore = 0
	for _, p := range q.Packs {
		for i := range p.ScoreItem {
			p.ScoreItem[i] = 0
		}
	}
	for _, c := range q.Children {
		c.Reset()
	}
}

// ScoreItemTotal sums the best per-token score seen across any field, for
// every slot of every packed group, plus the same total recursively over
// tag children, substituting FusedScore wherever it beats that sum
// (section 4.6 step 4).
func (q *Query) ScoreItemTotal() float64 {
	sum := 0.0
	for _, p := range q.Packs {
		for _, v := range p.ScoreItem {
			sum += v
		}
	}
	for _, c := range q.Children {
		sum += c.ScoreItemTotal()
	}
	if q.FusedScore > sum {
		return q.FusedScore
	}
	return sum
}

// KeySpec is one declared searchable key: a dotted field path, optionally
// bound to a tag name usable as a `tag:` query prefix.
type KeySpec struct {
	Tag  string
	Path string
}

// IndexedRecord is one source Record plus its extracted field content
// (component C2's output), following Fields[fieldIdx][leafIdx][tokenIdx].
type IndexedRecord struct {
	Record Record
	ID     any
	Fields [][][]string
}

// Block is a half-open position interval used by the long-token,
// block-list LCS kernel (component C5.3) and by nothing else.
type Block struct {
	Start, End int
}

// Span is a half-open [Start, End) range of positions in a leaf token's
// normalised text that the alignment engine (C10) marked as part of a
// highlighted run.
type Span struct {
	Start, End int
}

// SearchResult is one ranked match (component C12's output unit).
type SearchResult struct {
	Record     Record
	Score      float64
	MatchField int
	MatchLeaf  int
	sortKey    string
}

// SortKey returns the alphabetical tie-break key: the first declared
// field's flattened, normalised text.
func (r SearchResult) SortKey() string { return r.sortKey }

// WithSortKey returns a copy of r carrying the given tie-break key.
func (r SearchResult) WithSortKey(key string) SearchResult {
	r.sortKey = key
	return r
}
