// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package meanfilter

import (
	"fmt"

	"rescribe.xyz/preproc"
)

// DefaultKsize is the Sauvola k used when binarising filtered images.
const DefaultKsize = 0.5

// autowsize picks a Sauvola window for a grid that hasn't been given
// one, using the same rule of thumb as the preproc tools.
func autowsize(g *Grid) int {
	w := g.width / 60
	if w < 3 {
		w = 3
	}
	if w%2 == 0 {
		w++
	}
	return w
}

// Binarise thresholds g with Sauvola's algorithm, returning a grid
// holding only 0 and 255. Running it on the output of Filter removes
// much of the speckle it would otherwise pick up. If windowsize is 0
// it is chosen from the width of g.
func Binarise(g *Grid, ksize float64, windowsize int) (*Grid, error) {
	err := g.valid()
	if err != nil {
		return nil, err
	}
	if windowsize < 0 {
		return nil, fmt.Errorf("%w: sauvola window %d", ErrInvalidInput, windowsize)
	}
	if windowsize == 0 {
		windowsize = autowsize(g)
	}
	return GridFromImage(preproc.IntegralSauvola(g.Gray(), ksize, windowsize))
}
