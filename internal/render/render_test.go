package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"puzzlekit.dev/shikaku"
	"puzzlekit.dev/shikaku/pkg/primitives"
)

func testBoard(t *testing.T) *shikaku.Board {
	t.Helper()
	active := [][]bool{{true, true}, {true, false}}
	clues := []primitives.Clue{{At: primitives.Coord{Y: 0, X: 0}, Area: 2}}
	b, err := shikaku.NewBoard(2, 2, active, clues)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	return b
}

func TestTextTokens(t *testing.T) {
	b := testBoard(t)
	var out bytes.Buffer
	if err := Text(&out, b, "000001--", TextOptions{}); err != nil {
		t.Fatalf("Text: %v", err)
	}
	got := out.String()

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("output has %d lines, want header plus 2 rows:\n%s", len(lines), got)
	}
	if want := "    00 01 "; lines[0] != want {
		t.Errorf("header = %q, want %q", lines[0], want)
	}
	if want := "00  00 00 "; lines[1] != want {
		t.Errorf("row 0 = %q, want %q", lines[1], want)
	}
	if want := "01  01 -- "; lines[2] != want {
		t.Errorf("row 1 = %q, want %q", lines[2], want)
	}
}

func TestTextKeepNumbers(t *testing.T) {
	b := testBoard(t)
	var out bytes.Buffer
	if err := Text(&out, b, "000001--", TextOptions{KeepNumbers: true}); err != nil {
		t.Fatalf("Text: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if want := "00  02 00 "; lines[1] != want {
		t.Errorf("row 0 = %q, want the clue value: %q", lines[1], want)
	}
}

func TestTextColorWrapsTokens(t *testing.T) {
	b := testBoard(t)
	var plain, colored bytes.Buffer
	if err := Text(&plain, b, "000001--", TextOptions{}); err != nil {
		t.Fatalf("Text: %v", err)
	}
	if err := Text(&colored, b, "000001--", TextOptions{Color: true}); err != nil {
		t.Fatalf("Text: %v", err)
	}
	got := colored.String()
	if !strings.Contains(got, "\033[") {
		t.Error("colored output carries no escape sequences")
	}
	if strings.Contains(plain.String(), "\033[") {
		t.Error("plain output should carry no escape sequences")
	}
}

func TestTextRejectsBadSolution(t *testing.T) {
	b := testBoard(t)
	if err := Text(&bytes.Buffer{}, b, "0000", TextOptions{}); err == nil {
		t.Error("expected an error for a short solution string")
	}
}

func TestPNGDimensions(t *testing.T) {
	b := testBoard(t)
	var out bytes.Buffer
	if err := PNG(&out, b, "000001--", PNGOptions{}); err != nil {
		t.Fatalf("PNG: %v", err)
	}
	img, err := png.Decode(&out)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if w, h := img.Bounds().Dx(), img.Bounds().Dy(); w != 64 || h != 64 {
		t.Errorf("image is %dx%d, want 64x64 at the default cell size", w, h)
	}
}

func TestPNGCustomCellSize(t *testing.T) {
	b := testBoard(t)
	var out bytes.Buffer
	if err := PNG(&out, b, "000001--", PNGOptions{CellSize: 8, KeepNumbers: true}); err != nil {
		t.Fatalf("PNG: %v", err)
	}
	img, err := png.Decode(&out)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if w, h := img.Bounds().Dx(), img.Bounds().Dy(); w != 16 || h != 16 {
		t.Errorf("image is %dx%d, want 16x16 at cell size 8", w, h)
	}
}
