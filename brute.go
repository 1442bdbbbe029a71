// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package meanfilter

// BruteForce produces the same output as Filter by summing every
// window from scratch. It is O(width * height * r^2), and is kept as
// a reference to check and time Filter against.
func BruteForce(src *Grid, r int) (*Grid, error) {
	rad, err := NewRadius(r, src)
	if err != nil {
		return nil, err
	}
	out, err := NewGrid(src.width, src.height)
	if err != nil {
		return nil, err
	}

	d2 := uint64(rad.D2())
	for y := r; y < src.height-r; y++ {
		for x := r; x < src.width-r; x++ {
			var sum uint64
			for wy := y - r; wy < y+r; wy++ {
				for wx := x - r; wx < x+r; wx++ {
					v, err := src.At(wx, wy)
					if err != nil {
						return nil, err
					}
					sum += uint64(v)
				}
			}
			err = out.set(x, y, uint8(sum/d2))
			if err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
