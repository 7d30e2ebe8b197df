// Package shikaku solves Shikaku puzzles: partitioning a board's active
// cells into axis-aligned rectangles so that every rectangle contains
// exactly one clue and has exactly the clue's area.
package shikaku

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"puzzlekit.dev/shikaku/pkg/primitives"
)

// Board is an immutable Shikaku puzzle: dimensions, an active-cell mask and
// the clues in input order. Input order matters: it is the final tie-break
// of the branching heuristic, so two boards with the same clues in a
// different order may report solutions in a different discovery order
// (never a different solution set).
type Board struct {
	size   primitives.Extent
	active [][]bool
	clues  []primitives.Clue
}

// NewBoard validates and builds a board. A nil active mask means every cell
// is active. Construction fails on non-positive dimensions, a mask of the
// wrong shape, a clue out of bounds, on a void cell, on an already clued
// cell, or with a non-positive area.
func NewBoard(height, width int, active [][]bool, clues []primitives.Clue) (*Board, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("board dimensions must be positive, got %dx%d", height, width)
	}
	if active != nil {
		if len(active) != height {
			return nil, fmt.Errorf("active mask has %d rows, board has %d", len(active), height)
		}
		for y, row := range active {
			if len(row) != width {
				return nil, fmt.Errorf("active mask row %d has %d cells, board has %d", y, len(row), width)
			}
		}
	}

	b := &Board{
		size:   primitives.Extent{Height: height, Width: width},
		active: cloneMask(active),
		clues:  slices.Clone(clues),
	}
	seen := make(map[primitives.Coord]bool, len(clues))
	for _, clue := range b.clues {
		if clue.Area <= 0 {
			return nil, fmt.Errorf("%v: area must be positive", clue)
		}
		if clue.At.Y < 0 || clue.At.Y >= height || clue.At.X < 0 || clue.At.X >= width {
			return nil, fmt.Errorf("%v: out of bounds on %v board", clue, b.size)
		}
		if !b.Active(clue.At) {
			return nil, fmt.Errorf("%v: placed on a void cell", clue)
		}
		if seen[clue.At] {
			return nil, fmt.Errorf("%v: cell is clued twice", clue)
		}
		seen[clue.At] = true
	}
	return b, nil
}

// Size returns the board extent.
func (b *Board) Size() primitives.Extent {
	return b.size
}

// Active reports whether the cell is solvable (not void).
func (b *Board) Active(c primitives.Coord) bool {
	return b.active == nil || b.active[c.Y][c.X]
}

// Clues returns the clues in input order.
func (b *Board) Clues() []primitives.Clue {
	return slices.Clone(b.clues)
}

// ClueAt returns the clue value at a cell, if any.
func (b *Board) ClueAt(c primitives.Coord) (int, bool) {
	for _, clue := range b.clues {
		if clue.At == c {
			return clue.Area, true
		}
	}
	return 0, false
}

func cloneMask(active [][]bool) [][]bool {
	if active == nil {
		return nil
	}
	mask := make([][]bool, len(active))
	for y, row := range active {
		mask[y] = slices.Clone(row)
	}
	return mask
}

// Parse reads a puzzle in the plain text format: a first line "width
// height", then one line of whitespace-separated tokens per row. A token is
// "-" for a void cell, "0" for an active unclued cell, or a positive
// integer clue value. Rows shorter than the width (including missing rows)
// are padded with void cells.
func Parse(r io.Reader) (*Board, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading dimensions: %w", err)
		}
		return nil, fmt.Errorf("missing dimensions line")
	}
	dims := strings.Fields(scanner.Text())
	if len(dims) != 2 {
		return nil, fmt.Errorf("dimensions line %q: want \"width height\"", scanner.Text())
	}
	width, err := strconv.Atoi(dims[0])
	if err != nil {
		return nil, fmt.Errorf("bad width %q: %w", dims[0], err)
	}
	height, err := strconv.Atoi(dims[1])
	if err != nil {
		return nil, fmt.Errorf("bad height %q: %w", dims[1], err)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("board dimensions must be positive, got %dx%d", height, width)
	}

	active := make([][]bool, height)
	var clues []primitives.Clue
	for y := 0; y < height; y++ {
		active[y] = make([]bool, width)
		if !scanner.Scan() {
			continue // missing row: all void
		}
		tokens := strings.Fields(scanner.Text())
		if len(tokens) > width {
			tokens = tokens[:width]
		}
		for x, token := range tokens {
			if token == "-" {
				continue
			}
			value, err := strconv.Atoi(token)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad token %q: %w", y, token, err)
			}
			if value < 0 {
				return nil, fmt.Errorf("row %d: negative clue value %d", y, value)
			}
			active[y][x] = true
			if value > 0 {
				clues = append(clues, primitives.Clue{At: primitives.Coord{Y: y, X: x}, Area: value})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	return NewBoard(height, width, active, clues)
}
