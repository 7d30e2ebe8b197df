package primitives

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// VoidToken is the canonical token emitted for cells outside the active
// mask.
const VoidToken = "--"

// TokenWidth is the fixed width of every canonical token.
const TokenWidth = 2

// maxLabels is the size of the label alphabet: "00" through "99". VoidToken
// is reserved on top of these.
const maxLabels = 100

// ErrLabelSpace is returned when a board holds more distinct rectangles
// than the canonical label alphabet can name. Wrapping labels around would
// silently merge distinct rectangles, so the solve fails instead.
var ErrLabelSpace = errors.New("canonical label space exhausted")

// Canonical encodes a fully assigned ownership matrix as a canonical
// solution string. Identifiers are relabeled in row-major first-seen order
// starting at "00", so any two assignments that differ only in identifier
// choice encode identically. Cells where active is false emit VoidToken;
// a nil mask means every cell is active.
func Canonical(cells [][]int, active [][]bool) (string, error) {
	labels := make(map[int]int)
	var b strings.Builder
	if len(cells) > 0 {
		b.Grow(len(cells) * len(cells[0]) * TokenWidth)
	}
	for y := range cells {
		for x := range cells[y] {
			if active != nil && !active[y][x] {
				b.WriteString(VoidToken)
				continue
			}
			label, ok := labels[cells[y][x]]
			if !ok {
				label = len(labels)
				if label >= maxLabels {
					return "", ErrLabelSpace
				}
				labels[cells[y][x]] = label
			}
			fmt.Fprintf(&b, "%02d", label)
		}
	}
	return b.String(), nil
}

// Tokens splits a canonical solution string into its fixed-width tokens.
func Tokens(solution string) []string {
	tokens := make([]string, 0, len(solution)/TokenWidth)
	for i := 0; i+TokenWidth <= len(solution); i += TokenWidth {
		tokens = append(tokens, solution[i:i+TokenWidth])
	}
	return tokens
}

// DecodeLabels reshapes a canonical solution string into a grid of label
// values. Void cells decode to -1.
func DecodeLabels(solution string, size Extent) ([][]int, error) {
	if len(solution) != size.Area()*TokenWidth {
		return nil, fmt.Errorf("solution length %d does not match %s board", len(solution), size)
	}
	tokens := Tokens(solution)
	grid := make([][]int, size.Height)
	for y := range grid {
		grid[y] = make([]int, size.Width)
		for x := range grid[y] {
			token := tokens[y*size.Width+x]
			if token == VoidToken {
				grid[y][x] = -1
				continue
			}
			label, err := strconv.Atoi(token)
			if err != nil {
				return nil, fmt.Errorf("bad canonical token %q: %w", token, err)
			}
			grid[y][x] = label
		}
	}
	return grid, nil
}
