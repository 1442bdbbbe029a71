// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package meanfilter

import (
	"image"
)

// DefaultRadius is the radius used when none is given.
const DefaultRadius = 4

// Filter applies a box (mean) filter of radius r to src, returning a
// new grid of the same dimensions. Each interior pixel (x, y) is set
// to the truncated mean of the 2r x 2r block of source samples in
// columns [x-r, x+r) and rows [y-r, y+r). Pixels closer than r to
// any edge have no complete window and are left as 0.
//
// The window sums are maintained incrementally, first along each row
// and then down each column, so the cost depends only on the size of
// src and not on r.
func Filter(src *Grid, r int) (*Grid, error) {
	rad, err := NewRadius(r, src)
	if err != nil {
		return nil, err
	}
	return FilterRadius(src, rad)
}

// FilterRadius is like Filter, but takes a Radius which has already
// been validated against src.
func FilterRadius(src *Grid, r Radius) (*Grid, error) {
	err := src.valid()
	if err != nil {
		return nil, err
	}
	err = r.fits(src)
	if err != nil {
		return nil, err
	}

	out, err := NewGrid(src.width, src.height)
	if err != nil {
		return nil, err
	}

	err = filterRows(src, out, r, r.R(), src.height-r.R())
	if err != nil {
		return nil, err
	}
	return out, nil
}

// filterRows fills output rows [y0, y1) of out, which must all be
// interior rows.
func filterRows(src, out *Grid, r Radius, y0, y1 int) error {
	cols := src.width - r.D()
	if y0 >= y1 || cols <= 0 {
		return nil
	}

	band, err := seedBand(src, r.D(), y0-r.R())
	if err != nil {
		return err
	}
	acc, err := newColumnAccumulator(cols)
	if err != nil {
		return err
	}

	err = acc.first(band)
	if err != nil {
		return err
	}
	err = writeRow(out, acc, y0, r)
	if err != nil {
		return err
	}

	for y := y0 + 1; y < y1; y++ {
		evicted, err := band.advance()
		if err != nil {
			return err
		}
		err = acc.roll(evicted, band.newest())
		if err != nil {
			return err
		}
		err = writeRow(out, acc, y, r)
		if err != nil {
			return err
		}
	}
	return nil
}

// writeRow divides each window sum by the window area and stores it
// in output row y
func writeRow(out *Grid, acc *columnAccumulator, y int, r Radius) error {
	d2 := uint64(r.D2())
	for k := range acc.sums {
		sum, err := acc.at(k)
		if err != nil {
			return err
		}
		err = out.set(k+r.R(), y, uint8(sum/d2))
		if err != nil {
			return err
		}
	}
	return nil
}

// FilterImage converts img to gray and filters it with Filter.
func FilterImage(img image.Image, r int) (*image.Gray, error) {
	g, err := GridFromImage(img)
	if err != nil {
		return nil, err
	}
	out, err := Filter(g, r)
	if err != nil {
		return nil, err
	}
	return out.Gray(), nil
}
