package shikaku

import (
	"context"
	"iter"
	"slices"

	"puzzlekit.dev/shikaku/internal/genplace"
	"puzzlekit.dev/shikaku/pkg/primitives"
)

// TraceKind classifies solver trace events.
type TraceKind int

const (
	// TraceBranch is emitted when the search commits to one placement of
	// the branching clue.
	TraceBranch TraceKind = iota
	// TraceBacktrack is emitted when that branch has been fully explored.
	TraceBacktrack
	// TraceSolution is emitted for every new canonical solution.
	TraceSolution
)

// TraceEvent describes one branch, backtrack or solution event. The zero
// Placement and empty Solution mean the field does not apply to the kind.
type TraceEvent struct {
	Kind      TraceKind
	Depth     int
	Clue      primitives.Clue
	Placement primitives.Placement
	Solution  string
}

// Option configures a Solver.
type Option func(*Solver)

// WithTilingCache shares a free-rectangle tiling cache between solvers.
func WithTilingCache(c *TilingCache) Option {
	return func(s *Solver) { s.cache = c }
}

// WithoutTilingCache disables memoization: free-rectangle tilings are
// recomputed on every consultation. The solution set is unaffected.
func WithoutTilingCache() Option {
	return func(s *Solver) { s.cache = nil }
}

// WithTrace installs a callback invoked at every branch, backtrack and
// solution event.
func WithTrace(fn func(TraceEvent)) Option {
	return func(s *Solver) { s.trace = fn }
}

// Solver runs the backtracking search for one board. A Solver is not safe
// for concurrent use; the tiling cache it consults is.
type Solver struct {
	board *Board
	cache *TilingCache
	trace func(TraceEvent)
	err   error
}

// New builds a solver for the board. By default it consults the
// process-wide tiling cache.
func New(b *Board, opts ...Option) *Solver {
	s := &Solver{board: b, cache: sharedTilings}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Err reports why the last Solutions iteration stopped early: a canonical
// label-space failure or the context's error. It is nil after an exhaustive
// search, including one that found no solutions.
func (s *Solver) Err() error {
	return s.err
}

// Solutions streams the distinct canonical solution strings of the board.
// The sequence is deduplicated globally; an unsolvable board yields
// nothing. Cancelling the context stops the search, discarding any branch
// in progress.
func (s *Solver) Solutions(ctx context.Context) iter.Seq[string] {
	return func(yield func(string) bool) {
		s.err = nil
		clues := s.board.clues
		cands := genplace.ForBoard(s.board.size, s.board.active, clues)
		for _, c := range cands {
			if len(c) == 0 {
				// A clue that fits nowhere: unsolvable, no search. Still
				// surface a cancellation, as the searched path does.
				s.err = ctx.Err()
				return
			}
		}

		r := &run{
			solver: s,
			seen:   make(map[string]bool),
			nextID: len(clues) + 1,
		}
		r.search(ctx, newState(s.board, cands), 0, yield)
		if s.err == nil {
			s.err = ctx.Err()
		}
	}
}

// Solve collects the full solution set, sorted. A nil slice with a nil
// error means the board is proven unsolvable.
func Solve(ctx context.Context, b *Board, opts ...Option) ([]string, error) {
	s := New(b, opts...)
	var out []string
	for sol := range s.Solutions(ctx) {
		out = append(out, sol)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	slices.Sort(out)
	return out, nil
}

// run is the per-solve mutable context shared down the recursion: the
// dedup set and the identifier counter for merged cached tilings.
type run struct {
	solver *Solver
	seen   map[string]bool
	nextID int
}

// state is one branch's private search state. Candidate inner slices are
// shared copy-on-write (see primitives.Candidates); everything else is deep
// copied on clone.
type state struct {
	cells     [][]int
	cands     []primitives.Candidates
	committed []bool
	remaining int
}

func newState(b *Board, cands []primitives.Candidates) *state {
	cells := make([][]int, b.size.Height)
	for y := range cells {
		cells[y] = make([]int, b.size.Width)
	}
	return &state{
		cells:     cells,
		cands:     cands,
		committed: make([]bool, len(cands)),
		remaining: len(cands),
	}
}

func (st *state) clone() *state {
	cells := make([][]int, len(st.cells))
	for y, row := range st.cells {
		cells[y] = slices.Clone(row)
	}
	return &state{
		cells:     cells,
		cands:     slices.Clone(st.cands),
		committed: slices.Clone(st.committed),
		remaining: st.remaining,
	}
}

func (st *state) free(p primitives.Placement) bool {
	for cell := range p.Cells() {
		if st.cells[cell.Y][cell.X] != 0 {
			return false
		}
	}
	return true
}

// commit marks the clue's cells with its identifier. Clue i owns
// identifier i+1; merged tilings draw identifiers above len(clues).
func (st *state) commit(clueIdx int, p primitives.Placement) {
	for cell := range p.Cells() {
		st.cells[cell.Y][cell.X] = clueIdx + 1
	}
	st.committed[clueIdx] = true
	st.remaining--
}

// search explores one branch. It reports whether iteration should
// continue; false propagates a stop (consumer break, context cancellation
// or a fatal canonicalization error) all the way up. A contradiction in
// this branch returns true: the branch is simply abandoned.
func (r *run) search(ctx context.Context, st *state, depth int, yield func(string) bool) bool {
	if ctx.Err() != nil {
		return false
	}

	// Propagate to fixpoint: narrow every uncommitted clue to placements
	// over free cells; commit forced singletons, which can cascade.
	for {
		progress := false
		for i := range st.cands {
			if st.committed[i] {
				continue
			}
			narrowed := st.cands[i].Narrow(st.free)
			st.cands[i] = narrowed
			if len(narrowed) == 0 {
				return true // contradiction: clue can no longer fit
			}
			if len(narrowed) == 1 {
				st.commit(i, narrowed[0])
				progress = true
			}
		}
		if !progress {
			break
		}
	}

	if st.remaining == 0 {
		return r.complete(st, depth, yield)
	}

	// Every empty active cell must still be reachable by some placement.
	if _, ok := r.uncoveredCell(st); ok {
		return true
	}

	clueIdx := r.branchClue(st)
	for _, p := range st.cands[clueIdx] {
		r.emitTrace(TraceEvent{Kind: TraceBranch, Depth: depth, Clue: r.solver.board.clues[clueIdx], Placement: p})
		child := st.clone()
		child.cands[clueIdx] = primitives.Candidates{p}
		if !r.search(ctx, child, depth+1, yield) {
			return false
		}
		r.emitTrace(TraceEvent{Kind: TraceBacktrack, Depth: depth, Clue: r.solver.board.clues[clueIdx], Placement: p})
	}
	return true
}

// branchClue picks the branching variable: fewest remaining placements,
// ties broken by the largest remaining placement area, then clue input
// order.
func (r *run) branchClue(st *state) int {
	best := -1
	bestCount := 0
	bestArea := 0
	for i, c := range st.cands {
		if st.committed[i] {
			continue
		}
		count, area := len(c), c.LargestArea()
		if best == -1 || count < bestCount || (count == bestCount && area > bestArea) {
			best, bestCount, bestArea = i, count, area
		}
	}
	return best
}

// uncoveredCell finds an empty active cell no remaining placement covers.
func (r *run) uncoveredCell(st *state) (primitives.Coord, bool) {
	for y := range st.cells {
		for x := range st.cells[y] {
			cell := primitives.Coord{Y: y, X: x}
			if st.cells[y][x] != 0 || !r.solver.board.Active(cell) {
				continue
			}
			covered := false
			for i, c := range st.cands {
				if !st.committed[i] && c.CoversAnyOf(cell) {
					covered = true
					break
				}
			}
			if !covered {
				return cell, true
			}
		}
	}
	return primitives.Coord{}, false
}

// complete handles a branch with every clue committed. If the board is
// fully assigned it yields one solution; otherwise the unassigned remainder
// must be a clue-free, void-free rectangle, whose cached tilings are merged
// in with fresh identifiers. Any other remainder is infeasible.
func (r *run) complete(st *state, depth int, yield func(string) bool) bool {
	region, ok := r.emptyRegion(st)
	if !ok {
		return true // remainder is not a free rectangle: dead branch
	}
	if region.Size.Area() == 0 {
		sol, err := primitives.Canonical(st.cells, r.solver.board.active)
		if err != nil {
			r.solver.err = err
			return false
		}
		return r.emit(sol, depth, yield)
	}

	tilings, err := r.freeTilings(region.Size)
	if err != nil {
		r.solver.err = err
		return false
	}
	merged := make([][]int, len(st.cells))
	for y, row := range st.cells {
		merged[y] = slices.Clone(row)
	}
	for _, tiling := range tilings {
		labels, err := primitives.DecodeLabels(tiling, region.Size)
		if err != nil {
			r.solver.err = err
			return false
		}
		// Offset by a counter strictly above every committed identifier so
		// the merged rectangles never collide with existing ones.
		base := r.nextID
		count := 0
		for y, row := range labels {
			for x, label := range row {
				merged[region.Start.Y+y][region.Start.X+x] = base + label
				if label+1 > count {
					count = label + 1
				}
			}
		}
		r.nextID += count
		sol, err := primitives.Canonical(merged, r.solver.board.active)
		if err != nil {
			r.solver.err = err
			return false
		}
		if !r.emit(sol, depth, yield) {
			return false
		}
	}
	return true
}

// emptyRegion locates the unassigned active cells. It returns their
// bounding placement when they form a void-free, fully unassigned rectangle
// (the only shape the tiling cache can describe), a zero-area placement
// when there are none, and ok=false otherwise.
func (r *run) emptyRegion(st *state) (primitives.Placement, bool) {
	minY, minX := -1, -1
	maxY, maxX := -1, -1
	count := 0
	for y := range st.cells {
		for x := range st.cells[y] {
			if st.cells[y][x] != 0 || !r.solver.board.Active(primitives.Coord{Y: y, X: x}) {
				continue
			}
			if count == 0 || y < minY {
				minY = y
			}
			if count == 0 || x < minX {
				minX = x
			}
			if y > maxY {
				maxY = y
			}
			if x > maxX {
				maxX = x
			}
			count++
		}
	}
	if count == 0 {
		return primitives.Placement{}, true
	}
	region := primitives.Placement{
		Start: primitives.Coord{Y: minY, X: minX},
		Size:  primitives.Extent{Height: maxY - minY + 1, Width: maxX - minX + 1},
	}
	if region.Size.Area() != count {
		return primitives.Placement{}, false // holes: voids or assigned cells inside
	}
	return region, true
}

func (r *run) freeTilings(size primitives.Extent) ([]string, error) {
	if c := r.solver.cache; c != nil {
		return c.Tilings(size)
	}
	return tileRectangle(size)
}

func (r *run) emit(sol string, depth int, yield func(string) bool) bool {
	if r.seen[sol] {
		return true
	}
	r.seen[sol] = true
	r.emitTrace(TraceEvent{Kind: TraceSolution, Depth: depth, Solution: sol})
	return yield(sol)
}

func (r *run) emitTrace(ev TraceEvent) {
	if r.solver.trace != nil {
		r.solver.trace(ev)
	}
}
