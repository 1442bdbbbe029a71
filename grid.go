// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package meanfilter

import (
	"fmt"
	"image"
	"image/color"
)

// MaxPixels is the largest number of pixels a Grid may hold.
const MaxPixels = 1 << 28

// Grid is a single channel grid of 8 bit samples, stored row by
// row. A Grid is not changed once it has been built; the filters in
// this package always return a new Grid rather than writing to the
// one they are given.
type Grid struct {
	width, height int
	pix           []uint8
}

// checkDims ensures a grid of w x h could be allocated
func checkDims(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidInput, w, h)
	}
	if w > MaxPixels/h {
		return fmt.Errorf("%w: %dx%d is more than %d pixels", ErrAllocation, w, h, MaxPixels)
	}
	return nil
}

// NewGrid returns a zeroed Grid of the given dimensions.
func NewGrid(w, h int) (*Grid, error) {
	err := checkDims(w, h)
	if err != nil {
		return nil, err
	}
	return &Grid{width: w, height: h, pix: make([]uint8, w*h)}, nil
}

// GridFromPix builds a Grid from row-major samples. The samples are
// copied, so pix may be reused by the caller afterwards.
func GridFromPix(w, h int, pix []uint8) (*Grid, error) {
	err := checkDims(w, h)
	if err != nil {
		return nil, err
	}
	if len(pix) != w*h {
		return nil, fmt.Errorf("%w: %d samples for a %dx%d grid", ErrInvalidInput, len(pix), w, h)
	}
	g := &Grid{width: w, height: h, pix: make([]uint8, w*h)}
	copy(g.pix, pix)
	return g, nil
}

// GridFromImage converts any image to a single channel Grid, using
// the standard gray colour model for images which are not already
// gray. The top left of the image bounds becomes (0, 0).
func GridFromImage(img image.Image) (*Grid, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: no image", ErrInvalidInput)
	}
	b := img.Bounds()
	g, err := NewGrid(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	if gray, ok := img.(*image.Gray); ok {
		for y := 0; y < g.height; y++ {
			i := gray.PixOffset(b.Min.X, b.Min.Y+y)
			copy(g.pix[y*g.width:(y+1)*g.width], gray.Pix[i:i+g.width])
		}
		return g, nil
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			g.pix[(y-b.Min.Y)*g.width+(x-b.Min.X)] = c.Y
		}
	}
	return g, nil
}

// Width returns the number of columns in the grid.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows in the grid.
func (g *Grid) Height() int { return g.height }

// Bounds returns the grid's bounds as an image.Rectangle at the origin.
func (g *Grid) Bounds() image.Rectangle { return image.Rect(0, 0, g.width, g.height) }

// At returns the sample at column x of row y.
func (g *Grid) At(x, y int) (uint8, error) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return 0, fmt.Errorf("%w: (%d, %d) outside %dx%d grid", ErrOutOfRange, x, y, g.width, g.height)
	}
	return g.pix[y*g.width+x], nil
}

// Row returns a copy of row y of the grid.
func (g *Grid) Row(y int) ([]uint8, error) {
	row, err := g.row(y)
	if err != nil {
		return nil, err
	}
	b := make([]uint8, len(row))
	copy(b, row)
	return b, nil
}

// row returns row y of the grid without copying it, for the filters
// which only read from it
func (g *Grid) row(y int) ([]uint8, error) {
	if y < 0 || y >= g.height {
		return nil, fmt.Errorf("%w: row %d outside %dx%d grid", ErrOutOfRange, y, g.width, g.height)
	}
	return g.pix[y*g.width : (y+1)*g.width], nil
}

// Bytes returns a copy of the grid's samples, row by row.
func (g *Grid) Bytes() []uint8 {
	b := make([]uint8, len(g.pix))
	copy(b, g.pix)
	return b
}

// Gray returns a copy of the grid as an *image.Gray.
func (g *Grid) Gray() *image.Gray {
	img := image.NewGray(g.Bounds())
	copy(img.Pix, g.pix)
	return img
}

// set is only used while a grid is being built.
func (g *Grid) set(x, y int, v uint8) error {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return fmt.Errorf("%w: (%d, %d) outside %dx%d grid", ErrOutOfRange, x, y, g.width, g.height)
	}
	g.pix[y*g.width+x] = v
	return nil
}

// valid checks that a grid is usable as a filter source
func (g *Grid) valid() error {
	if g == nil {
		return fmt.Errorf("%w: no grid", ErrInvalidInput)
	}
	if g.width <= 0 || g.height <= 0 || len(g.pix) == 0 {
		return fmt.Errorf("%w: empty %dx%d grid", ErrInvalidInput, g.width, g.height)
	}
	if len(g.pix) != g.width*g.height {
		return fmt.Errorf("%w: %d samples for a %dx%d grid", ErrInvalidInput, len(g.pix), g.width, g.height)
	}
	return nil
}
