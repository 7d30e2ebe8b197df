// Package genplace enumerates the initial placement possibilities for every
// clue on a board: each divisor pair of the clue value, in both
// orientations, with the clue cell at every internal alignment.
package genplace

import (
	"puzzlekit.dev/shikaku/pkg/primitives"
)

// ForBoard returns the full candidate set for each clue, in clue input
// order. A placement is kept when it lies within board bounds, covers only
// active cells and contains no other clue's cell. The order within one
// clue's candidates is deterministic: divisor pairs by increasing small
// divisor, each pair as given then rotated (squares once), then column
// alignment, then row alignment.
//
// An empty candidate set for any clue proves the board unsolvable before
// any search begins.
func ForBoard(size primitives.Extent, active [][]bool, clues []primitives.Clue) []primitives.Candidates {
	all := make([]primitives.Candidates, len(clues))
	for i, clue := range clues {
		var cands primitives.Candidates
		for _, shape := range shapes(clue.Area) {
			cands = appendAlignments(cands, size, active, clues, i, shape)
		}
		all[i] = cands
	}
	return all
}

// shapes returns every rectangle extent with the given area, each
// orientation listed once.
func shapes(area int) []primitives.Extent {
	var out []primitives.Extent
	for d := 1; d*d <= area; d++ {
		if area%d != 0 {
			continue
		}
		shape := primitives.Extent{Height: area / d, Width: d}
		out = append(out, shape)
		if !shape.Square() {
			out = append(out, shape.Rotated())
		}
	}
	return out
}

// appendAlignments slides the clue cell over every internal position of the
// shape and keeps the placements that satisfy the placement invariant.
func appendAlignments(cands primitives.Candidates, size primitives.Extent, active [][]bool, clues []primitives.Clue, clueIdx int, shape primitives.Extent) primitives.Candidates {
	at := clues[clueIdx].At
	for dx := 0; dx < shape.Width; dx++ {
		for dy := 0; dy < shape.Height; dy++ {
			p := primitives.Placement{
				Start: primitives.Coord{Y: at.Y - dy, X: at.X - dx},
				Size:  shape,
			}
			if !p.InBounds(size) {
				continue
			}
			if !coversOnlyActive(p, active) {
				continue
			}
			if containsOtherClue(p, clues, clueIdx) {
				continue
			}
			cands = append(cands, p)
		}
	}
	return cands
}

func coversOnlyActive(p primitives.Placement, active [][]bool) bool {
	if active == nil {
		return true
	}
	for cell := range p.Cells() {
		if !active[cell.Y][cell.X] {
			return false
		}
	}
	return true
}

func containsOtherClue(p primitives.Placement, clues []primitives.Clue, clueIdx int) bool {
	for i, clue := range clues {
		if i != clueIdx && p.Contains(clue.At) {
			return true
		}
	}
	return false
}
