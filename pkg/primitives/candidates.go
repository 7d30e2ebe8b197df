package primitives

// Candidates is the ordered set of placements still considered viable for
// one clue at a point in the search. The order is the generation order and
// is preserved by every operation; branch iteration depends on it.
//
// Candidates values are never mutated in place: Narrow returns the receiver
// unchanged when nothing is dropped, or a freshly allocated slice otherwise,
// so sibling search branches can share the backing array safely.
type Candidates []Placement

// Narrow returns the candidates for which keep is true.
func (c Candidates) Narrow(keep func(Placement) bool) Candidates {
	for i, p := range c {
		if keep(p) {
			continue
		}

		// First drop; copy the prefix and filter the rest.
		narrowed := make(Candidates, i, len(c)-1)
		copy(narrowed, c[:i])
		for _, q := range c[i+1:] {
			if keep(q) {
				narrowed = append(narrowed, q)
			}
		}
		return narrowed
	}
	return c
}

// LargestArea returns the area of the biggest remaining placement, or 0 if
// none remain. Used by the branching tie-break.
func (c Candidates) LargestArea() int {
	largest := 0
	for _, p := range c {
		if a := p.Size.Area(); a > largest {
			largest = a
		}
	}
	return largest
}

// CoversAnyOf reports whether any remaining placement covers the cell.
func (c Candidates) CoversAnyOf(cell Coord) bool {
	for _, p := range c {
		if p.Contains(cell) {
			return true
		}
	}
	return false
}
