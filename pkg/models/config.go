package models

// OutputMode selects how a SearchResult's Record is projected before it
// reaches the caller (section 6, `output_map`).
type OutputMode int

const (
	// OutputIdentity returns the record unchanged.
	OutputIdentity OutputMode = iota
	// OutputAlias returns an object with one key per tag, each holding
	// that tag's joined leaf text.
	OutputAlias
	// OutputField returns the value at a single declared dotted field path.
	OutputField
	// OutputFunc calls a user-supplied mapping function.
	OutputFunc
)

// OutputMapFunc is a user-supplied projection from an IndexedRecord/score
// pair to whatever shape the caller wants back, used with OutputFunc mode.
type OutputMapFunc func(rec IndexedRecord, score float64) any

// Config holds every tunable recognised by the engine (section 6). Zero
// value is invalid; use DefaultConfig and override fields on the result.
type Config struct {
	// Score floors and thresholds.
	MinimumMatch         float64
	ThreshInclude        float64
	ThreshRelativeToBest float64
	FieldGoodEnough      float64

	// Bonuses.
	BonusMatchStart    float64
	BonusTokenOrder    float64
	BonusPositionDecay float64

	// Composition mode.
	ScorePerToken bool
	ScoreTestFused bool
	ScoreAcronym  bool
	TokenSep      string

	ScoreRound float64

	OutputLimit int
	OutputMode  OutputMode
	OutputPath  string
	OutputFn    OutputMapFunc

	TokenQueryMinLength int
	TokenFieldMinLength int
	TokenQueryMaxLength int
	TokenFieldMaxLength int
	TokenFusedMaxLength int

	TokenMinRelSize float64
	TokenMaxRelSize float64

	HighlightPrefix    bool
	HighlightBridgeGap int
	HighlightBefore    string
	HighlightAfter     string

	UseIndexStore   bool
	StoreThresh     float64
	StoreMaxResults int

	Keys []KeySpec

	// IdentifyItem maps a record to a stable id, enabling upsert. Nil
	// disables upsert: every Add appends.
	IdentifyItem func(Record) (any, bool)

	Lazy bool

	MaxInners int
}

// DefaultConfig returns the engine's baseline configuration. Every field
// mirrors a named option from spec.md section 6; values follow the
// reference implementation's defaults (jeancroy/FuzzySearch).
func DefaultConfig() *Config {
	return &Config{
		MinimumMatch:         1.0,
		ThreshInclude:        1.0,
		ThreshRelativeToBest: 0.5,
		FieldGoodEnough:      20,

		BonusMatchStart:    0.5,
		BonusTokenOrder:    2.0,
		BonusPositionDecay: 0.7,

		ScorePerToken:  true,
		ScoreTestFused: true,
		ScoreAcronym:   false,
		TokenSep:       `[\s\-/\\_+.#"'&,|()[\]{}]+`,

		ScoreRound: 0.1,

		OutputLimit: 0,
		OutputMode:  OutputIdentity,

		TokenQueryMinLength: 2,
		TokenFieldMinLength: 3,
		TokenQueryMaxLength: 64,
		TokenFieldMaxLength: 64,
		TokenFusedMaxLength: 64,

		TokenMinRelSize: 0.6,
		TokenMaxRelSize: 10,

		HighlightPrefix:    false,
		HighlightBridgeGap: 2,
		HighlightBefore:    "<mark>",
		HighlightAfter:     "</mark>",

		UseIndexStore:   false,
		StoreThresh:     0.5,
		StoreMaxResults: 200,

		MaxInners: 0,
	}
}
