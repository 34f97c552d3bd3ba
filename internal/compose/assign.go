// Package compose implements component C6 (the field/item score composer)
// and component C13 (the 1-to-1 bipartite token assignment the highlight
// assembler relies on; the composer's own field scoring does not use it).
package compose

import "github.com/eda-labs/fuzzysearch/pkg/models"

// maxAssignColumns bounds the dense used-column bitmask the memoised DFS
// keys on. Query/field token counts in an autocomplete workload are a
// handful of words; a leaf with more distinct tokens than this falls back
// to a greedy per-row best-column match instead of the exact solver.
const maxAssignColumns = 58

type dfsResult struct {
	score  float64
	choice int // column chosen at this (depth, used) state, -1 = row skipped
}

// Assign solves section 4.13's bipartite assignment: maximise the sum of
// matrix[i][assignment[i]] over an injective (possibly partial)
// assignment, where row i may be skipped (assignment[i] = -1) if no
// column clears max(minimum_match, thresh_relative_to_best * best-in-row).
// Returns the per-row column choices and the achieved total.
func Assign(matrix [][]float64, cfg *models.Config) ([]int, float64) {
	rows := len(matrix)
	if rows == 0 {
		return nil, 0
	}
	assignment := make([]int, rows)
	for i := range assignment {
		assignment[i] = -1
	}
	cols := len(matrix[0])
	if cols == 0 {
		return assignment, 0
	}

	floors := make([]float64, rows)
	qualifying := 0
	for i, row := range matrix {
		best := 0.0
		for _, v := range row {
			if v > best {
				best = v
			}
		}
		floor := cfg.MinimumMatch
		if rel := cfg.ThreshRelativeToBest * best; rel > floor {
			floor = rel
		}
		floors[i] = floor
		if best >= floor && best > 0 {
			qualifying++
		}
	}
	if qualifying == 0 {
		return assignment, 0
	}
	if qualifying == 1 {
		for i, row := range matrix {
			bestCol, bestScore := -1, 0.0
			for j, v := range row {
				if v > bestScore {
					bestScore, bestCol = v, j
				}
			}
			if bestCol >= 0 && bestScore >= floors[i] {
				assignment[i] = bestCol
				return assignment, bestScore
			}
		}
	}

	if cols > maxAssignColumns {
		return greedyAssign(matrix, floors)
	}

	memo := make(map[[2]uint64]dfsResult)
	var dfs func(depth int, used uint64) dfsResult
	dfs = func(depth int, used uint64) dfsResult {
		if depth == rows {
			return dfsResult{0, -1}
		}
		key := [2]uint64{uint64(depth), used}
		if v, ok := memo[key]; ok {
			return v
		}
		skip := dfs(depth+1, used)
		best := dfsResult{score: skip.score, choice: -1}
		row := matrix[depth]
		floor := floors[depth]
		for j := 0; j < cols; j++ {
			bit := uint64(1) << uint(j)
			if used&bit != 0 {
				continue
			}
			v := row[j]
			if v <= 0 || v < floor {
				continue
			}
			next := dfs(depth+1, used|bit)
			total := v + next.score
			if total > best.score {
				best = dfsResult{score: total, choice: j}
			}
		}
		memo[key] = best
		return best
	}

	root := dfs(0, 0)
	used := uint64(0)
	for depth := 0; depth < rows; depth++ {
		res := memo[[2]uint64{uint64(depth), used}]
		assignment[depth] = res.choice
		if res.choice >= 0 {
			used |= uint64(1) << uint(res.choice)
		}
	}
	return assignment, root.score
}

// greedyAssign handles the degenerate case of more candidate columns than
// the dense solver's bitmask can track: each row claims its best
// still-free column, in row order.
func greedyAssign(matrix [][]float64, floors []float64) ([]int, float64) {
	rows := len(matrix)
	assignment := make([]int, rows)
	for i := range assignment {
		assignment[i] = -1
	}
	used := make(map[int]bool)
	total := 0.0
	for i, row := range matrix {
		bestCol, bestScore := -1, 0.0
		for j, v := range row {
			if used[j] {
				continue
			}
			if v > bestScore {
				bestScore, bestCol = v, j
			}
		}
		if bestCol >= 0 && bestScore >= floors[i] {
			assignment[i] = bestCol
			used[bestCol] = true
			total += bestScore
		}
	}
	return assignment, total
}
