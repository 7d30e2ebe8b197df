package shikaku

import (
	"slices"
	"sync"

	"puzzlekit.dev/shikaku/pkg/primitives"
)

// TilingCache memoizes the canonical tilings of clue-free, void-free
// rectangles by dimension. It is populated strictly additively and lives
// for the process; the read-and-populate path is serialized so a cache may
// be shared between concurrent solves.
type TilingCache struct {
	mu      sync.Mutex
	tilings map[primitives.Extent][]string
}

// NewTilingCache returns an empty cache.
func NewTilingCache() *TilingCache {
	return &TilingCache{tilings: make(map[primitives.Extent][]string)}
}

// sharedTilings backs every solver that is not given its own cache.
var sharedTilings = NewTilingCache()

// Tilings returns the canonical tilings of an empty size.Height by
// size.Width rectangle, computing and storing them on first request.
func (c *TilingCache) Tilings(size primitives.Extent) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.tilings[size]; ok {
		return t, nil
	}
	t, err := tileRectangle(size)
	if err != nil {
		return nil, err
	}
	c.tilings[size] = t
	return t, nil
}

// FreeRectangleTilings returns every distinct way to partition an empty
// height-by-width rectangle into rectangles of any size, as sorted
// canonical solution strings. Results come from the process-wide cache.
func FreeRectangleTilings(height, width int) ([]string, error) {
	return sharedTilings.Tilings(primitives.Extent{Height: height, Width: width})
}

// tileRectangle exhaustively enumerates the tilings of an empty rectangle.
// In any tiling, the rectangle covering the first empty cell in row-major
// order must have its top-left corner there, so trying every extent at that
// corner visits each tiling exactly once.
func tileRectangle(size primitives.Extent) ([]string, error) {
	cells := make([][]int, size.Height)
	for y := range cells {
		cells[y] = make([]int, size.Width)
	}

	var out []string
	var overflow error
	var place func(nextID int) bool
	place = func(nextID int) bool {
		corner, ok := firstEmpty(cells)
		if !ok {
			s, err := primitives.Canonical(cells, nil)
			if err != nil {
				overflow = err
				return false
			}
			out = append(out, s)
			return true
		}
		for h := 1; corner.Y+h <= size.Height; h++ {
			for w := 1; corner.X+w <= size.Width; w++ {
				p := primitives.Placement{Start: corner, Size: primitives.Extent{Height: h, Width: w}}
				if !regionEmpty(cells, p) {
					continue
				}
				fill(cells, p, nextID)
				done := place(nextID + 1)
				fill(cells, p, 0)
				if !done {
					return false
				}
			}
		}
		return true
	}
	place(1)
	if overflow != nil {
		return nil, overflow
	}
	slices.Sort(out)
	return out, nil
}

func firstEmpty(cells [][]int) (primitives.Coord, bool) {
	for y := range cells {
		for x := range cells[y] {
			if cells[y][x] == 0 {
				return primitives.Coord{Y: y, X: x}, true
			}
		}
	}
	return primitives.Coord{}, false
}

func regionEmpty(cells [][]int, p primitives.Placement) bool {
	for cell := range p.Cells() {
		if cells[cell.Y][cell.X] != 0 {
			return false
		}
	}
	return true
}

func fill(cells [][]int, p primitives.Placement, id int) {
	for cell := range p.Cells() {
		cells[cell.Y][cell.X] = id
	}
}
