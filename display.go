// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package meanfilter

import (
	"image"
)

// ToRGBA copies g into an opaque RGBA image, repeating each sample
// in the red, green and blue channels, ready to be drawn to a screen.
func ToRGBA(g *Grid) (*image.RGBA, error) {
	err := g.valid()
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(g.Bounds())
	for i, v := range g.pix {
		o := i * 4
		img.Pix[o] = v
		img.Pix[o+1] = v
		img.Pix[o+2] = v
		img.Pix[o+3] = 0xff
	}
	return img, nil
}
