// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package meanfilter

import "fmt"

// columnAccumulator holds the full window sum of every interior
// column for the output row currently being produced. Each row's
// sums are derived from the previous row's, so only one row of sums
// is ever kept.
type columnAccumulator struct {
	sums []uint64
}

func newColumnAccumulator(cols int) (*columnAccumulator, error) {
	if cols < 0 {
		return nil, fmt.Errorf("%w: %d columns", ErrOutOfRange, cols)
	}
	return &columnAccumulator{sums: make([]uint64, cols)}, nil
}

// first sums each column directly down every row of the band. This
// is O(d) per column, and is only done for the first output row.
func (a *columnAccumulator) first(b *rowBand) error {
	for k := range a.sums {
		var sum uint64
		for _, r := range b.rows {
			v, err := r.at(k)
			if err != nil {
				return err
			}
			sum += v
		}
		a.sums[k] = sum
	}
	return nil
}

// roll moves every column's sum down one row, adding the newest
// row's entry and removing the evicted row's. The newest row only
// knows its first entry when roll is called, so it is extended by one
// after each column is read; reading ahead of this would mix sums
// from different columns.
func (a *columnAccumulator) roll(evicted, newest *rowSums) error {
	for k := range a.sums {
		in, err := newest.at(k)
		if err != nil {
			return err
		}
		out, err := evicted.at(k)
		if err != nil {
			return err
		}
		a.sums[k] = a.sums[k] + in - out
		if len(newest.sums) < newest.size() {
			err = newest.extend()
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// at returns the window sum of interior column k.
func (a *columnAccumulator) at(k int) (uint64, error) {
	if k < 0 || k >= len(a.sums) {
		return 0, fmt.Errorf("%w: column sum %d of %d", ErrOutOfRange, k, len(a.sums))
	}
	return a.sums[k], nil
}
