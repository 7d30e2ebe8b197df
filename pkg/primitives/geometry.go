package primitives

import (
	"fmt"
	"iter"
)

// Coord identifies a cell on a board. Coordinates are row-major: Y is the
// row counted from the top, X is the column counted from the left.
type Coord struct {
	Y int
	X int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Y, c.X)
}

// Extent is the height and width of a rectangle.
type Extent struct {
	Height int
	Width  int
}

// Area returns height times width.
func (e Extent) Area() int {
	return e.Height * e.Width
}

// Rotated returns the extent turned by 90 degrees.
func (e Extent) Rotated() Extent {
	return Extent{Height: e.Width, Width: e.Height}
}

// Square reports whether rotating the extent changes nothing.
func (e Extent) Square() bool {
	return e.Height == e.Width
}

func (e Extent) String() string {
	return fmt.Sprintf("%dx%d", e.Height, e.Width)
}

// Clue is a board cell carrying the required area of the rectangle that
// must contain it.
type Clue struct {
	At   Coord
	Area int
}

func (c Clue) String() string {
	return fmt.Sprintf("clue %s %d", c.At, c.Area)
}

// Placement is one candidate rectangle for a specific clue: a start cell
// (top-left corner) and an extent.
type Placement struct {
	Start Coord
	Size  Extent
}

// Contains reports whether the placement's rectangle covers the cell.
func (p Placement) Contains(c Coord) bool {
	return p.Start.Y <= c.Y && c.Y < p.Start.Y+p.Size.Height &&
		p.Start.X <= c.X && c.X < p.Start.X+p.Size.Width
}

// InBounds reports whether the placement fits inside a board of the given
// extent.
func (p Placement) InBounds(board Extent) bool {
	return p.Start.Y >= 0 && p.Start.X >= 0 &&
		p.Start.Y+p.Size.Height <= board.Height &&
		p.Start.X+p.Size.Width <= board.Width
}

// Cells yields every cell covered by the placement in row-major order.
func (p Placement) Cells() iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for y := p.Start.Y; y < p.Start.Y+p.Size.Height; y++ {
			for x := p.Start.X; x < p.Start.X+p.Size.Width; x++ {
				if !yield(Coord{Y: y, X: x}) {
					return
				}
			}
		}
	}
}

func (p Placement) String() string {
	return fmt.Sprintf("%s@%s", p.Size, p.Start)
}
