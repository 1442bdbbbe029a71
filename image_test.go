// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package meanfilter

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestGridFromImage(t *testing.T) {
	// a gray image whose bounds don't start at the origin
	gray := image.NewGray(image.Rect(3, 2, 8, 6))
	for y := 2; y < 6; y++ {
		for x := 3; x < 8; x++ {
			gray.SetGray(x, y, color.Gray{uint8(x*10 + y)})
		}
	}
	g, err := GridFromImage(gray)
	if err != nil {
		t.Fatalf("GridFromImage failed: %v", err)
	}
	if g.Width() != 5 || g.Height() != 4 {
		t.Fatalf("Expected a 5x4 grid, got %dx%d", g.Width(), g.Height())
	}
	if v := mustAt(t, g, 0, 0); v != 32 {
		t.Errorf("Expected (0, 0) to be 32, got %d", v)
	}
	if v := mustAt(t, g, 4, 3); v != 75 {
		t.Errorf("Expected (4, 3) to be 75, got %d", v)
	}

	// the same image as RGBA should convert identically
	rgba := image.NewRGBA(gray.Bounds())
	for y := 2; y < 6; y++ {
		for x := 3; x < 8; x++ {
			v := gray.GrayAt(x, y).Y
			rgba.Set(x, y, color.RGBA{v, v, v, 255})
		}
	}
	g2, err := GridFromImage(rgba)
	if err != nil {
		t.Fatalf("GridFromImage failed: %v", err)
	}
	if !bytes.Equal(g.Bytes(), g2.Bytes()) {
		t.Errorf("RGBA and gray versions of an image converted differently")
	}

	if _, err = GridFromImage(nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for a nil image, got %v", err)
	}
	if _, err = GridFromImage(image.NewGray(image.Rect(0, 0, 0, 4))); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for an empty image, got %v", err)
	}
}

func TestGridAccessors(t *testing.T) {
	g := seq(t, 4, 3)
	cases := []struct {
		x, y int
	}{
		{-1, 0}, {0, -1}, {4, 0}, {0, 3},
	}
	for _, c := range cases {
		if _, err := g.At(c.x, c.y); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("At(%d, %d): expected ErrOutOfRange, got %v", c.x, c.y, err)
		}
	}
	if _, err := g.Row(3); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Row(3): expected ErrOutOfRange, got %v", err)
	}
	row, err := g.Row(1)
	if err != nil || !bytes.Equal(row, []uint8{4, 5, 6, 7}) {
		t.Errorf("Row(1): got %v, %v", row, err)
	}

	row[0] = 200
	if mustAt(t, g, 0, 1) != 4 {
		t.Errorf("Changing the result of Row changed the grid")
	}

	b := g.Bytes()
	b[0] = 200
	if mustAt(t, g, 0, 0) != 0 {
		t.Errorf("Changing the result of Bytes changed the grid")
	}

	pix := []uint8{1, 2, 3, 4}
	g, err = GridFromPix(2, 2, pix)
	if err != nil {
		t.Fatalf("GridFromPix failed: %v", err)
	}
	pix[0] = 100
	if mustAt(t, g, 0, 0) != 1 {
		t.Errorf("GridFromPix did not copy its input")
	}

	if _, err = GridFromPix(2, 2, []uint8{1, 2, 3}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for too few samples, got %v", err)
	}
	if _, err = NewGrid(0, 5); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for zero width, got %v", err)
	}
	if _, err = NewGrid(MaxPixels, 2); !errors.Is(err, ErrAllocation) {
		t.Errorf("Expected ErrAllocation for a huge grid, got %v", err)
	}
}

func TestLoadSave(t *testing.T) {
	g := seq(t, 13, 9)
	var buf bytes.Buffer
	err := Save(&buf, g)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(g.Bytes(), loaded.Bytes()) {
		t.Errorf("Grid changed after saving and loading")
	}

	_, err = Load(bytes.NewReader([]byte("not an image")))
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput loading garbage, got %v", err)
	}
	garbage := filepath.Join(t.TempDir(), "bad.png")
	err = os.WriteFile(garbage, []byte("not really a png"), 0600)
	if err != nil {
		t.Fatalf("Could not write test file: %v", err)
	}
	_, err = LoadFile(garbage)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput loading %s, got %v", garbage, err)
	}
	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.png"))
	if err == nil {
		t.Errorf("Expected an error loading a missing file")
	}
}

func TestScale(t *testing.T) {
	g := constant(t, 200, 100, 90)
	cases := []struct {
		maxdim, w, h int
	}{
		{50, 50, 25},
		{200, 200, 100},
		{1000, 200, 100},
		{1, 1, 1},
	}
	for _, c := range cases {
		s, err := Scale(g, c.maxdim)
		if err != nil {
			t.Fatalf("Scale to %d failed: %v", c.maxdim, err)
		}
		if s.Width() != c.w || s.Height() != c.h {
			t.Errorf("Scale to %d: expected %dx%d, got %dx%d", c.maxdim, c.w, c.h, s.Width(), s.Height())
		}
		if v := mustAt(t, s, s.Width()/2, s.Height()/2); v != 90 {
			t.Errorf("Scale to %d: expected constant 90, got %d", c.maxdim, v)
		}
	}
	if _, err := Scale(g, 0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput scaling to 0, got %v", err)
	}
}

func TestToRGBA(t *testing.T) {
	g := seq(t, 5, 4)
	img, err := ToRGBA(g)
	if err != nil {
		t.Fatalf("ToRGBA failed: %v", err)
	}
	if !img.Bounds().Eq(g.Bounds()) {
		t.Fatalf("Expected bounds %v, got %v", g.Bounds(), img.Bounds())
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			v := mustAt(t, g, x, y)
			c := img.RGBAAt(x, y)
			if c.R != v || c.G != v || c.B != v || c.A != 255 {
				t.Fatalf("(%d, %d): expected gray %d, got %v", x, y, v, c)
			}
		}
	}
	if _, err = ToRGBA(nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for a nil grid, got %v", err)
	}
}

// testCard is a 96x64 grid of 8 pixel squares, alternating between
// a left to right gradient and its inverse
func testCard(t *testing.T) *Grid {
	card, err := NewGrid(96, 64)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	for y := 0; y < card.Height(); y++ {
		for x := 0; x < card.Width(); x++ {
			v := uint8(x * 255 / card.Width())
			if (x/8+y/8)%2 == 0 {
				v = 255 - v
			}
			err = card.set(x, y, v)
			if err != nil {
				t.Fatalf("set failed: %v", err)
			}
		}
	}
	return card
}

func TestFilterCard(t *testing.T) {
	card := testCard(t)

	for _, r := range []int{1, 4, 9} {
		t.Run(fmt.Sprintf("%d", r), func(t *testing.T) {
			out, err := Filter(card, r)
			if err != nil {
				t.Fatalf("Filter failed: %v", err)
			}
			expected, err := BruteForce(card, r)
			if err != nil {
				t.Fatalf("BruteForce failed: %v", err)
			}
			if !bytes.Equal(expected.Bytes(), out.Bytes()) {
				t.Errorf("Filtered card differs from brute force")
			}
		})
	}

	// windows lying wholly inside one square, worked by hand
	out, err := Filter(card, 4)
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	cases := []struct {
		x, y int
		v    uint8
	}{
		{4, 4, 246}, // columns 0-7 of an inverted square: (8*255*8 - 8*70) / 64
		{12, 4, 30}, // columns 8-15 of a plain square: 8*240 / 64
		{0, 0, 0},
		{3, 10, 0},
		{95, 63, 0},
	}
	for _, c := range cases {
		if v := mustAt(t, out, c.x, c.y); v != c.v {
			t.Errorf("(%d, %d): expected %d, got %d", c.x, c.y, c.v, v)
		}
	}
}

func TestFilterImage(t *testing.T) {
	card := testCard(t)
	rgba, err := ToRGBA(card)
	if err != nil {
		t.Fatalf("ToRGBA failed: %v", err)
	}
	// move the bounds away from the origin, as a SubImage would
	rgba.Rect = rgba.Rect.Add(image.Pt(5, 7))

	got, err := FilterImage(rgba, 3)
	if err != nil {
		t.Fatalf("FilterImage failed: %v", err)
	}
	expected, err := Filter(card, 3)
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if !got.Bounds().Eq(expected.Bounds()) {
		t.Fatalf("Expected bounds %v, got %v", expected.Bounds(), got.Bounds())
	}
	if !bytes.Equal(got.Pix, expected.Bytes()) {
		t.Errorf("FilterImage of an RGBA image differs from filtering its gray grid")
	}

	_, err = FilterImage(rgba, 40)
	if !errors.Is(err, ErrInvalidRadius) {
		t.Errorf("Expected ErrInvalidRadius, got %v", err)
	}
	_, err = FilterImage(nil, 3)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for a nil image, got %v", err)
	}
}
