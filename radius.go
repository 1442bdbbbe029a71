// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package meanfilter

import "fmt"

// Radius is a window radius which has been checked against the
// dimensions of a grid. The window it describes is D() = 2r samples
// along each axis.
type Radius struct {
	r, width, height int
}

// NewRadius validates r against g, returning an error wrapping
// ErrInvalidRadius if r is not positive or if 2r is larger than the
// width or height of g.
func NewRadius(r int, g *Grid) (Radius, error) {
	err := g.valid()
	if err != nil {
		return Radius{}, err
	}
	if r <= 0 {
		return Radius{}, fmt.Errorf("%w: %d is not positive", ErrInvalidRadius, r)
	}
	if 2*r > g.width || 2*r > g.height {
		return Radius{}, fmt.Errorf("%w: window of %d is larger than %dx%d grid", ErrInvalidRadius, 2*r, g.width, g.height)
	}
	return Radius{r: r, width: g.width, height: g.height}, nil
}

// R returns the radius.
func (r Radius) R() int { return r.r }

// D returns the side length of the window.
func (r Radius) D() int { return 2 * r.r }

// D2 returns the number of samples in the window.
func (r Radius) D2() int { return 4 * r.r * r.r }

// fits checks that r was validated for a grid with g's dimensions
func (r Radius) fits(g *Grid) error {
	if r.r <= 0 {
		return fmt.Errorf("%w: radius was not created with NewRadius", ErrInvalidRadius)
	}
	if r.width != g.width || r.height != g.height {
		return fmt.Errorf("%w: radius checked against %dx%d, not %dx%d", ErrInvalidRadius, r.width, r.height, g.width, g.height)
	}
	return nil
}
