package shikaku

import (
	"strings"
	"testing"

	"puzzlekit.dev/shikaku/pkg/primitives"
)

func mustBoard(t *testing.T, height, width int, active [][]bool, clues []primitives.Clue) *Board {
	t.Helper()
	b, err := NewBoard(height, width, active, clues)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	return b
}

func TestNewBoardRejectsMalformedInput(t *testing.T) {
	clueAt := func(y, x, area int) []primitives.Clue {
		return []primitives.Clue{{At: primitives.Coord{Y: y, X: x}, Area: area}}
	}

	for _, tc := range []struct {
		name   string
		height int
		width  int
		active [][]bool
		clues  []primitives.Clue
	}{
		{name: "zero height", height: 0, width: 3},
		{name: "negative width", height: 3, width: -1},
		{name: "mask row count", height: 2, width: 2, active: [][]bool{{true, true}}},
		{name: "mask row width", height: 1, width: 2, active: [][]bool{{true}}},
		{name: "clue out of bounds", height: 2, width: 2, clues: clueAt(2, 0, 1)},
		{name: "clue on void", height: 1, width: 2, active: [][]bool{{true, false}}, clues: clueAt(0, 1, 1)},
		{name: "non-positive area", height: 2, width: 2, clues: clueAt(0, 0, 0)},
		{
			name: "duplicate clue cell", height: 2, width: 2,
			clues: append(clueAt(0, 0, 2), clueAt(0, 0, 2)...),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewBoard(tc.height, tc.width, tc.active, tc.clues); err == nil {
				t.Error("expected a construction error")
			}
		})
	}
}

func TestBoardAccessors(t *testing.T) {
	active := [][]bool{{true, false}, {true, true}}
	clues := []primitives.Clue{{At: primitives.Coord{Y: 1, X: 1}, Area: 3}}
	b := mustBoard(t, 2, 2, active, clues)

	if b.Size() != (primitives.Extent{Height: 2, Width: 2}) {
		t.Errorf("Size() = %v", b.Size())
	}
	if b.Active(primitives.Coord{Y: 0, X: 1}) {
		t.Error("(0,1) should be void")
	}
	if !b.Active(primitives.Coord{Y: 1, X: 0}) {
		t.Error("(1,0) should be active")
	}
	if area, ok := b.ClueAt(primitives.Coord{Y: 1, X: 1}); !ok || area != 3 {
		t.Errorf("ClueAt = %d, %v", area, ok)
	}
	if _, ok := b.ClueAt(primitives.Coord{Y: 0, X: 0}); ok {
		t.Error("(0,0) should not be clued")
	}
}

func TestParse(t *testing.T) {
	b, err := Parse(strings.NewReader("3 2\n2 0 4\n0 - 0\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if b.Size() != (primitives.Extent{Height: 2, Width: 3}) {
		t.Errorf("Size() = %v", b.Size())
	}
	if b.Active(primitives.Coord{Y: 1, X: 1}) {
		t.Error("(1,1) should be void")
	}
	clues := b.Clues()
	if len(clues) != 2 {
		t.Fatalf("Clues() = %v", clues)
	}
	if clues[0] != (primitives.Clue{At: primitives.Coord{Y: 0, X: 0}, Area: 2}) {
		t.Errorf("first clue = %v", clues[0])
	}
	if clues[1] != (primitives.Clue{At: primitives.Coord{Y: 0, X: 2}, Area: 4}) {
		t.Errorf("second clue = %v", clues[1])
	}
}

func TestParsePadsShortRowsWithVoid(t *testing.T) {
	b, err := Parse(strings.NewReader("4 1\n2 0 2\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if b.Active(primitives.Coord{Y: 0, X: 3}) {
		t.Error("the padded cell should be void")
	}
}

func TestParsePadsMissingRowsWithVoid(t *testing.T) {
	b, err := Parse(strings.NewReader("2 2\n0 0\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for x := 0; x < 2; x++ {
		if b.Active(primitives.Coord{Y: 1, X: x}) {
			t.Errorf("(1,%d) should be void", x)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
	}{
		{name: "empty input", input: ""},
		{name: "one dimension", input: "3\n"},
		{name: "bad width", input: "x 2\n"},
		{name: "zero height", input: "3 0\n"},
		{name: "bad token", input: "2 1\n0 x\n"},
		{name: "negative value", input: "2 1\n0 -2\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tc.input)); err == nil {
				t.Error("expected a parse error")
			}
		})
	}
}
