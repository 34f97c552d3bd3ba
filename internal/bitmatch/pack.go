package bitmatch

import "github.com/eda-labs/fuzzysearch/pkg/models"

// Pack greedily packs an ordered token list into groups of at most
// models.Width total characters (component C4). A token whose length
// exceeds models.Width starts and ends its own single-token group backed
// by a long (position-list) alphabet with an all-ones gate, since it never
// shares a word with a neighbour. A token of length exactly models.Width
// still fits a single machine word and packs through the short path.
func Pack(tokens []string) []*models.PackInfo {
	groups := make([]*models.PackInfo, 0, len(tokens))
	i := 0
	for i < len(tokens) {
		runes := Runes(tokens[i])
		if len(runes) > models.Width {
			groups = append(groups, &models.PackInfo{
				Tokens:     []string{tokens[i]},
				Offsets:    []int{0},
				Alphabet:   BuildLongAlphabet(runes),
				Gate:       ^uint32(0),
				ScoreItem:  make([]float64, 1),
				ScoreField: make([]float64, 1),
				FieldPos:   make([]int, 1),
			})
			i++
			continue
		}

		var groupTokens []string
		var offsets []int
		offset := 0
		j := i
		for j < len(tokens) {
			r := Runes(tokens[j])
			if offset+len(r) > models.Width {
				break
			}
			offsets = append(offsets, offset)
			groupTokens = append(groupTokens, tokens[j])
			offset += len(r)
			j++
		}

		bits := make(map[rune]uint32)
		var gate uint32
		for k, tok := range groupTokens {
			o := offsets[k]
			r := Runes(tok)
			for ci, c := range r {
				bits[c] |= uint32(1) << uint(o+ci)
			}
			// Gate excludes the top bit of this token: positions
			// [o, o+len(r)-1), per section 4.4.
			for ci := 0; ci < len(r)-1; ci++ {
				gate |= uint32(1) << uint(o+ci)
			}
		}

		groups = append(groups, &models.PackInfo{
			Tokens:     groupTokens,
			Offsets:    offsets,
			Alphabet:   models.Alphabet{Bits: bits},
			Gate:       gate,
			ScoreItem:  make([]float64, len(groupTokens)),
			ScoreField: make([]float64, len(groupTokens)),
			FieldPos:   make([]int, len(groupTokens)),
		})
		i = j
	}
	return groups
}

// TotalWidth returns the number of characters a group's combined alphabet
// covers.
func TotalWidth(p *models.PackInfo) int {
	if len(p.Offsets) == 0 {
		return 0
	}
	last := len(p.Offsets) - 1
	return p.Offsets[last] + len(Runes(p.Tokens[last]))
}
