// Package render turns canonical solution strings back into something a
// person can look at: colorized terminal text or a PNG image.
package render

import (
	"fmt"
	"io"
	"strings"

	"puzzlekit.dev/shikaku"
	"puzzlekit.dev/shikaku/pkg/primitives"
)

// ansiPalette cycles per rectangle identity; 14 foreground colors.
var ansiPalette = []string{
	"\033[31m", "\033[91m", // red, light red
	"\033[32m", "\033[92m", // green, light green
	"\033[33m", "\033[93m", // yellow, light yellow
	"\033[34m", "\033[94m", // blue, light blue
	"\033[35m", "\033[95m", // magenta, light magenta
	"\033[36m", "\033[96m", // cyan, light cyan
	"\033[90m", "\033[97m", // light black, light white
}

const (
	ansiWhite = "\033[37m"
	ansiReset = "\033[0m"
)

// TextOptions controls terminal rendering.
type TextOptions struct {
	// Color wraps each token in an ANSI color chosen by rectangle label.
	Color bool
	// KeepNumbers prints the original clue value at clue cells instead of
	// the rectangle token.
	KeepNumbers bool
}

// Text writes one solution as a grid of 2-character tokens with coordinate
// headers.
func Text(w io.Writer, board *shikaku.Board, solution string, opts TextOptions) error {
	size := board.Size()
	labels, err := primitives.DecodeLabels(solution, size)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("    ")
	for x := 0; x < size.Width; x++ {
		fmt.Fprintf(&b, "%02d ", x)
	}
	b.WriteByte('\n')

	for y := 0; y < size.Height; y++ {
		fmt.Fprintf(&b, "%02d  ", y)
		for x := 0; x < size.Width; x++ {
			cell := primitives.Coord{Y: y, X: x}
			token, color := cellToken(board, labels[y][x], cell, opts)
			if opts.Color {
				b.WriteString(color)
			}
			b.WriteString(token)
			if opts.Color {
				b.WriteString(ansiReset)
			}
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}

	_, err = io.WriteString(w, b.String())
	return err
}

func cellToken(board *shikaku.Board, label int, cell primitives.Coord, opts TextOptions) (token, color string) {
	if label < 0 {
		return primitives.VoidToken, ansiWhite
	}
	if opts.KeepNumbers {
		if area, ok := board.ClueAt(cell); ok {
			return fmt.Sprintf("%02d", area), ansiWhite
		}
	}
	return fmt.Sprintf("%02d", label), ansiPalette[label%len(ansiPalette)]
}
