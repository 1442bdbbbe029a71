// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package meanfilter

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Load decodes an image in any of the registered formats (png, jpeg,
// gif, bmp, tiff and webp) and converts it to a single channel Grid.
// Data which can't be decoded is reported as ErrInvalidInput.
func Load(r io.Reader) (*Grid, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: could not decode image: %v", ErrInvalidInput, err)
	}
	return GridFromImage(img)
}

// LoadFile is like Load, but reads from the file at path.
func LoadFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Could not open file %s: %w", path, err)
	}
	defer f.Close()
	g, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("Could not load %s: %w", path, err)
	}
	return g, nil
}

// Save encodes g as a gray png.
func Save(w io.Writer, g *Grid) error {
	err := g.valid()
	if err != nil {
		return err
	}
	return png.Encode(w, g.Gray())
}

// SaveFile is like Save, but creates (or truncates) the file at path.
func SaveFile(path string, g *Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("Could not create file %s: %w", path, err)
	}
	defer f.Close()
	err = Save(f, g)
	if err != nil {
		return fmt.Errorf("Could not encode image %s: %w", path, err)
	}
	return f.Close()
}

// Scale returns a copy of g shrunk so that neither side is longer
// than maxdim, keeping its aspect ratio. Grids which already fit are
// copied unchanged.
func Scale(g *Grid, maxdim int) (*Grid, error) {
	err := g.valid()
	if err != nil {
		return nil, err
	}
	if maxdim <= 0 {
		return nil, fmt.Errorf("%w: maximum dimension %d", ErrInvalidInput, maxdim)
	}
	if g.width <= maxdim && g.height <= maxdim {
		return GridFromPix(g.width, g.height, g.pix)
	}

	w, h := maxdim, maxdim
	if g.width > g.height {
		h = g.height * maxdim / g.width
	} else {
		w = g.width * maxdim / g.height
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewGray(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), g.Gray(), g.Bounds(), xdraw.Src, nil)
	return GridFromImage(dst)
}
