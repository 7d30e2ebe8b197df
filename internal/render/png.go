package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"puzzlekit.dev/shikaku"
	"puzzlekit.dev/shikaku/pkg/primitives"
)

// rgbPalette cycles per rectangle identity; 20 fills.
var rgbPalette = []color.RGBA{
	{0x1f, 0x77, 0xb4, 0xff}, {0xae, 0xc7, 0xe8, 0xff},
	{0xff, 0x7f, 0x0e, 0xff}, {0xff, 0xbb, 0x78, 0xff},
	{0x2c, 0xa0, 0x2c, 0xff}, {0x98, 0xdf, 0x8a, 0xff},
	{0xd6, 0x27, 0x28, 0xff}, {0xff, 0x98, 0x96, 0xff},
	{0x94, 0x67, 0xbd, 0xff}, {0xc5, 0xb0, 0xd5, 0xff},
	{0x8c, 0x56, 0x4b, 0xff}, {0xc4, 0x9c, 0x94, 0xff},
	{0xe3, 0x77, 0xc2, 0xff}, {0xf7, 0xb6, 0xd2, 0xff},
	{0x7f, 0x7f, 0x7f, 0xff}, {0xc7, 0xc7, 0xc7, 0xff},
	{0xbc, 0xbd, 0x22, 0xff}, {0xdb, 0xdb, 0x8d, 0xff},
	{0x17, 0xbe, 0xcf, 0xff}, {0x9e, 0xda, 0xe5, 0xff},
}

var (
	pngBackground = color.RGBA{0xfe, 0xfe, 0xfe, 0xff}
	pngGridLine   = color.RGBA{0xff, 0xff, 0xff, 0xff}
	pngVoidFill   = color.RGBA{0xd9, 0xd9, 0xd9, 0xff}
	pngVoidHatch  = color.RGBA{0xbb, 0xbb, 0xbb, 0xff}
	pngInk        = color.RGBA{0x1b, 0x1b, 0x1b, 0xff}
)

// PNGOptions controls image rendering.
type PNGOptions struct {
	// CellSize is the square cell edge in pixels; 0 means 32.
	CellSize int
	// KeepNumbers overlays the original clue values at clue cells.
	KeepNumbers bool
}

// PNG writes one solution as an image: one filled block per rectangle with
// a white outline, hatched gray void cells, and optional clue digits.
func PNG(w io.Writer, board *shikaku.Board, solution string, opts PNGOptions) error {
	size := board.Size()
	labels, err := primitives.DecodeLabels(solution, size)
	if err != nil {
		return err
	}
	cell := opts.CellSize
	if cell <= 0 {
		cell = 32
	}

	img := image.NewRGBA(image.Rect(0, 0, size.Width*cell, size.Height*cell))
	draw.Draw(img, img.Bounds(), image.NewUniform(pngBackground), image.Point{}, draw.Src)

	for _, b := range rectangleBounds(labels) {
		fillRect(img, b.pixelRect(cell), rgbPalette[b.label%len(rgbPalette)])
		outlineRect(img, b.pixelRect(cell), pngGridLine, 2)
	}

	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			if labels[y][x] >= 0 {
				continue
			}
			r := image.Rect(x*cell, y*cell, (x+1)*cell, (y+1)*cell)
			fillRect(img, r, pngVoidFill)
			hatchRect(img, r, pngVoidHatch)
			outlineRect(img, r, pngGridLine, 1)
		}
	}

	if opts.KeepNumbers {
		for _, clue := range board.Clues() {
			drawLabel(img, clue.At, cell, fmt.Sprintf("%d", clue.Area))
		}
	}

	return png.Encode(w, img)
}

// bounds is the bounding box of one rectangle label, in cell units.
type bounds struct {
	label                  int
	minY, minX, maxY, maxX int
}

func (b bounds) pixelRect(cell int) image.Rectangle {
	return image.Rect(b.minX*cell, b.minY*cell, (b.maxX+1)*cell, (b.maxY+1)*cell)
}

func rectangleBounds(labels [][]int) []bounds {
	byLabel := make(map[int]*bounds)
	var order []int
	for y, row := range labels {
		for x, label := range row {
			if label < 0 {
				continue
			}
			b, ok := byLabel[label]
			if !ok {
				byLabel[label] = &bounds{label: label, minY: y, minX: x, maxY: y, maxX: x}
				order = append(order, label)
				continue
			}
			b.minY = min(b.minY, y)
			b.minX = min(b.minX, x)
			b.maxY = max(b.maxY, y)
			b.maxX = max(b.maxX, x)
		}
	}
	out := make([]bounds, 0, len(order))
	for _, label := range order {
		out = append(out, *byLabel[label])
	}
	return out
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func outlineRect(img *image.RGBA, r image.Rectangle, c color.RGBA, width int) {
	for i := 0; i < width; i++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, r.Min.Y+i, c)
			img.SetRGBA(x, r.Max.Y-1-i, c)
		}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			img.SetRGBA(r.Min.X+i, y, c)
			img.SetRGBA(r.Max.X-1-i, y, c)
		}
	}
}

func hatchRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if (x+y)%6 == 0 {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func drawLabel(img *image.RGBA, at primitives.Coord, cell int, text string) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(pngInk),
		Face: face,
		Dot: fixed.P(
			at.X*cell+(cell-width)/2,
			at.Y*cell+(cell+face.Ascent)/2,
		),
	}
	d.DrawString(text)
}
