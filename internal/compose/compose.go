package compose

import (
	"math"
	"strings"

	"github.com/eda-labs/fuzzysearch/internal/bitmatch"
	"github.com/eda-labs/fuzzysearch/pkg/models"
)

// State carries the mutable inclusion threshold and running best score
// across every candidate record scored during one search call (section
// 4.6 step 5). A fresh State belongs to exactly one search.
type State struct {
	cfg           *models.Config
	threshInclude float64
	bestItemScore float64
}

// NewState starts a composer state at the configured floor.
func NewState(cfg *models.Config) *State {
	return &State{cfg: cfg, threshInclude: cfg.ThreshInclude}
}

// BestItemScore is the highest item score seen so far in this search.
func (s *State) BestItemScore() float64 { return s.bestItemScore }

// ScoreRecord runs the field/item composer (C6) for one candidate record
// against q, consulting fieldTags[fi] for the declared tag (if any) bound
// to field fi so a matching child sub-query can contribute. It returns
// the item score (rounded to cfg.ScoreRound only when the record is
// included), the field/leaf indices that produced the best
// field match (for highlighting and tie-break use), and whether the
// record cleared the dynamic inclusion threshold.
func (s *State) ScoreRecord(rec *models.IndexedRecord, q *models.Query, fieldTags []string) (score float64, matchField, matchLeaf int, included bool) {
	cfg := s.cfg
	q.Reset()

	bestFieldScore := 0.0
	bestFieldIdx, bestLeafIdx := -1, -1
	positionBonus := 1.0

	for fi, field := range rec.Fields {
		var childQ *models.Query
		if q.Children != nil && fi < len(fieldTags) && fieldTags[fi] != "" {
			childQ = q.Children[fieldTags[fi]]
		}

		fieldBest := 0.0
		fieldBestLeaf := -1
		for li, leaf := range field {
			ns := leafScore(leaf, q, childQ, cfg)
			if ns > fieldBest {
				fieldBest = ns
				fieldBestLeaf = li
			}
		}

		weighted := fieldBest * (1 + positionBonus)
		positionBonus *= cfg.BonusPositionDecay
		if weighted > bestFieldScore {
			bestFieldScore = weighted
			bestFieldIdx = fi
			bestLeafIdx = fieldBestLeaf
		}
		if fieldBest > cfg.FieldGoodEnough {
			break
		}
	}

	itemScore := bestFieldScore
	if cfg.ScorePerToken {
		itemScore = 0.5*bestFieldScore + 0.5*q.ScoreItemTotal()
	}

	if itemScore > s.bestItemScore {
		s.bestItemScore = itemScore
	}
	if thr := itemScore * cfg.ThreshRelativeToBest; thr > s.threshInclude {
		s.threshInclude = thr
	}

	if itemScore <= s.threshInclude {
		return itemScore, bestFieldIdx, bestLeafIdx, false
	}
	return roundTo(itemScore, cfg.ScoreRound), bestFieldIdx, bestLeafIdx, true
}

// leafScore is score_field(l, Q) plus its score_per_token=false fallback
// and its score_test_fused challenger (section 4.6's inner loop).
func leafScore(leaf []string, q, childQ *models.Query, cfg *models.Config) float64 {
	if !cfg.ScorePerToken {
		return fusedJoined(leaf, q, cfg)
	}

	ns := scoreField(leaf, q, cfg)
	if childQ != nil {
		ns += scoreField(leaf, childQ, cfg)
	}
	if cfg.ScoreTestFused {
		// The order bonus only rides on a fused pass that matched something;
		// otherwise every record, and every record for an empty query,
		// would score the bonus alone.
		if fused := fusedConcat(leaf, q, cfg); fused > 0 {
			if fused += cfg.BonusTokenOrder; fused > ns {
				ns = fused
				q.FusedScore = fused
			}
		}
	}
	return ns
}

// scoreField is the per-PackInfo-group inner loop described in section
// 4.6: every leaf token is scored against every slot of every group; each
// slot keeps the best score seen (and the leaf index that achieved it,
// with a same-or-better-within-bonus-token-order tie going to the later
// token); then slots accumulate into the leaf's score with a
// distance-weighted in-order bonus.
func scoreField(leaf []string, q *models.Query, cfg *models.Config) float64 {
	for _, g := range q.Packs {
		for k := range g.ScoreField {
			g.ScoreField[k] = 0
			g.FieldPos[k] = -1
		}
	}

	for ti, tok := range leaf {
		for _, g := range q.Packs {
			scores := bitmatch.ScoreGroup(g, tok, cfg)
			for k, cs := range scores {
				if cs > g.ScoreField[k] || (g.ScoreField[k]-cs <= cfg.BonusTokenOrder && g.FieldPos[k] >= 0) {
					g.ScoreField[k] = cs
					g.FieldPos[k] = ti
				}
			}
		}
	}

	fieldScore := 0.0
	lastIndex := -1
	for _, g := range q.Packs {
		for k := range g.ScoreField {
			cs := g.ScoreField[k]
			fieldScore += cs
			if g.ScoreItem[k] < cs {
				g.ScoreItem[k] = cs
			}
			if g.FieldPos[k] < 0 {
				continue
			}
			if cs > cfg.MinimumMatch {
				thisIndex := g.FieldPos[k]
				if lastIndex >= 0 {
					d := thisIndex - lastIndex
					bo := cfg.BonusTokenOrder / (1 + math.Abs(float64(d)))
					if d > 0 {
						bo *= 2
					}
					fieldScore += bo
				}
				lastIndex = thisIndex
			}
		}
	}
	return fieldScore
}

// fusedConcat scores q's fused string against leaf's tokens concatenated
// with no separator, the form used by the score_test_fused challenger.
// The synthetic acronym token tokenize.ExtractField appends when
// ScoreAcronym is enabled is excluded from the concatenation: it isn't
// part of the leaf's actual text and would pollute the fused match.
func fusedConcat(leaf []string, q *models.Query, cfg *models.Config) float64 {
	if q.Fused == "" {
		return 0
	}
	if cfg.ScoreAcronym && len(leaf) > 0 {
		leaf = leaf[:len(leaf)-1]
	}
	b := bitmatch.Runes(strings.Join(leaf, ""))
	return bitmatch.ScoreWithAlphabet(bitmatch.Runes(q.Fused), q.FusedAlpha, b, cfg)
}

// fusedJoined scores q's fused string against leaf's tokens joined with a
// space, the form used when score_per_token is disabled entirely.
func fusedJoined(leaf []string, q *models.Query, cfg *models.Config) float64 {
	if q.Fused == "" {
		return 0
	}
	b := bitmatch.Runes(strings.Join(leaf, " "))
	return bitmatch.ScoreWithAlphabet(bitmatch.Runes(q.Fused), q.FusedAlpha, b, cfg)
}

// roundTo rounds v to the nearest multiple of step (section 4.12); step
// <= 0 leaves v unrounded.
func roundTo(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Round(v/step) * step
}
