// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"testing"

	"fyne.io/fyne/v2/test"

	"rescribe.xyz/meanfilter"
)

func TestMaxRadius(t *testing.T) {
	cases := []struct {
		w, h, max int
	}{
		{10, 10, 5},
		{11, 30, 5},
		{40, 7, 3},
		{1, 9, 0},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("%dx%d", c.w, c.h), func(t *testing.T) {
			g, err := meanfilter.NewGrid(c.w, c.h)
			if err != nil {
				t.Fatalf("NewGrid failed: %v", err)
			}
			got := maxRadius(g)
			if got != c.max {
				t.Fatalf("Expected %d, got %d", c.max, got)
			}
			if got > 0 {
				_, err = meanfilter.Filter(g, got)
				if err != nil {
					t.Fatalf("Filter with maximum radius failed: %v", err)
				}
			}
		})
	}
}

func TestRender(t *testing.T) {
	pix := make([]uint8, 300*200)
	for i := range pix {
		pix[i] = uint8(i % 251)
	}
	g, err := meanfilter.GridFromPix(300, 200, pix)
	if err != nil {
		t.Fatalf("GridFromPix failed: %v", err)
	}

	var v view
	_, _, err = v.render(2)
	if err == nil {
		t.Fatalf("Expected an error rendering with no image")
	}

	err = v.load(g, 150)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if v.orig.Width() != 150 || v.orig.Height() != 100 {
		t.Fatalf("Expected image scaled to 150x100, got %dx%d", v.orig.Width(), v.orig.Height())
	}

	left, right, err := v.render(3)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !left.Bounds().Eq(right.Bounds()) {
		t.Errorf("Original and filtered images differ in size: %v, %v", left.Bounds(), right.Bounds())
	}
	expected, err := meanfilter.Filter(v.orig, 3)
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	for y := 0; y < expected.Height(); y++ {
		for x := 0; x < expected.Width(); x++ {
			e, _ := expected.At(x, y)
			if c := right.RGBAAt(x, y); c.R != e {
				t.Fatalf("(%d, %d): expected %d, got %d", x, y, e, c.R)
			}
		}
	}

	_, _, err = v.render(maxRadius(v.orig) + 1)
	if err == nil {
		t.Errorf("Expected an error rendering with too large a radius")
	}
}

func TestShow(t *testing.T) {
	_ = test.NewApp()

	small, err := meanfilter.NewGrid(20, 12)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	large, err := meanfilter.NewGrid(40, 30)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	w := newViewer(9, 0)

	cases := []struct {
		name    string
		g       *meanfilter.Grid
		slide   float64
		radius  int
		renders int
	}{
		{"clamped", small, 0, 6, 1},
		{"sameradius", large, 0, 6, 2},
		{"slider", large, 3, 3, 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.slide > 0 {
				w.slider.SetValue(c.slide)
			} else {
				w.show(c.g)
			}
			if w.v.renders != c.renders {
				t.Errorf("Expected %d renders, got %d", c.renders, w.v.renders)
			}
			if w.radius != c.radius || int(w.slider.Value) != c.radius {
				t.Errorf("Expected radius %d, got %d (slider %.0f)", c.radius, w.radius, w.slider.Value)
			}
			if w.v.out == nil || w.v.out.Width() != c.g.Width() {
				t.Errorf("Filtered image not updated")
			}
			if w.status.Text != "" {
				t.Errorf("Unexpected status %q", w.status.Text)
			}
		})
	}
}
