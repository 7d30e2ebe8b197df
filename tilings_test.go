package shikaku

import (
	"slices"
	"testing"

	"puzzlekit.dev/shikaku/pkg/primitives"
)

func TestFreeRectangleTilingCounts(t *testing.T) {
	for _, tc := range []struct {
		height, width int
		want          int
	}{
		{1, 1, 1},
		{1, 2, 2},
		{2, 1, 2},
		{1, 3, 4},
		{2, 2, 8},
	} {
		tilings, err := FreeRectangleTilings(tc.height, tc.width)
		if err != nil {
			t.Fatalf("FreeRectangleTilings(%d, %d): %v", tc.height, tc.width, err)
		}
		if len(tilings) != tc.want {
			t.Errorf("FreeRectangleTilings(%d, %d) has %d tilings, want %d", tc.height, tc.width, len(tilings), tc.want)
		}
	}
}

func TestFreeRectangleTilingsContents(t *testing.T) {
	tilings, err := FreeRectangleTilings(2, 2)
	if err != nil {
		t.Fatalf("FreeRectangleTilings: %v", err)
	}
	for _, want := range []string{
		"00000000", // the whole square
		"00000101", // two horizontal dominoes
		"00010001", // two vertical dominoes
		"00010203", // four unit cells
	} {
		if !slices.Contains(tilings, want) {
			t.Errorf("missing tiling %q in %v", want, tilings)
		}
	}
	if !slices.IsSorted(tilings) {
		t.Error("tilings should be sorted")
	}
}

func TestTilingCacheIsStable(t *testing.T) {
	cache := NewTilingCache()
	size := primitives.Extent{Height: 2, Width: 3}

	first, err := cache.Tilings(size)
	if err != nil {
		t.Fatalf("Tilings: %v", err)
	}
	second, err := cache.Tilings(size)
	if err != nil {
		t.Fatalf("Tilings: %v", err)
	}
	if !slices.Equal(first, second) {
		t.Error("repeated lookups should return the same tilings")
	}
	if len(first) == 0 {
		t.Error("a 2x3 rectangle has tilings")
	}
}

func TestTilingsAreDistinct(t *testing.T) {
	tilings, err := FreeRectangleTilings(2, 3)
	if err != nil {
		t.Fatalf("FreeRectangleTilings: %v", err)
	}
	seen := make(map[string]bool)
	for _, tiling := range tilings {
		if seen[tiling] {
			t.Errorf("duplicate tiling %q", tiling)
		}
		seen[tiling] = true
	}
}
