// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package meanfilter

import "fmt"

// rowSums holds the horizontal window sums of one source row. Entry
// k is the sum of the samples in columns [k, k+d). Entries are
// worked out one at a time by extend, each from the one before, so
// a full row costs O(width) whatever d is.
type rowSums struct {
	src  []uint8
	d    int
	sums []uint64
}

// newRowSums sums the first window of src directly. Only entry 0 is
// available until extend is called.
func newRowSums(src []uint8, d int) (*rowSums, error) {
	if d <= 0 || d > len(src) {
		return nil, fmt.Errorf("%w: window of %d on a row of %d", ErrInvalidRadius, d, len(src))
	}
	s := &rowSums{src: src, d: d, sums: make([]uint64, 1, len(src)-d+1)}
	for i := 0; i < d; i++ {
		s.sums[0] += uint64(src[i])
	}
	return s, nil
}

// size is the number of entries a complete row has
func (s *rowSums) size() int {
	return len(s.src) - s.d + 1
}

// extend works out the next entry from the last one
func (s *rowSums) extend() error {
	k := len(s.sums)
	if k >= s.size() {
		return fmt.Errorf("%w: row sums already complete at %d entries", ErrOutOfRange, k)
	}
	prev := s.sums[k-1]
	s.sums = append(s.sums, prev+uint64(s.src[k-1+s.d])-uint64(s.src[k-1]))
	return nil
}

// complete extends the row until every entry is known
func (s *rowSums) complete() error {
	for len(s.sums) < s.size() {
		err := s.extend()
		if err != nil {
			return err
		}
	}
	return nil
}

// at returns entry k, which must already have been worked out
func (s *rowSums) at(k int) (uint64, error) {
	if k < 0 || k >= len(s.sums) {
		return 0, fmt.Errorf("%w: row sum %d of %d known", ErrOutOfRange, k, len(s.sums))
	}
	return s.sums[k], nil
}

// rowBand holds the row sums of the d source rows inside the
// vertical window, oldest first.
type rowBand struct {
	src  *Grid
	d    int
	rows []*rowSums
	next int // next source row to be added
}

// seedBand fills a band with the complete row sums of source rows
// [top, top+d).
func seedBand(src *Grid, d, top int) (*rowBand, error) {
	if top < 0 || top+d > src.height {
		return nil, fmt.Errorf("%w: rows %d to %d of %d", ErrOutOfRange, top, top+d, src.height)
	}
	b := &rowBand{src: src, d: d, rows: make([]*rowSums, 0, d), next: top}
	for i := 0; i < d; i++ {
		s, err := b.sumsFor(b.next)
		if err != nil {
			return nil, err
		}
		err = s.complete()
		if err != nil {
			return nil, err
		}
		b.rows = append(b.rows, s)
		b.next++
	}
	return b, nil
}

func (b *rowBand) sumsFor(y int) (*rowSums, error) {
	row, err := b.src.row(y)
	if err != nil {
		return nil, err
	}
	return newRowSums(row, b.d)
}

// advance adds the next source row to the band and drops the oldest,
// which is returned. The new row only has its first entry worked
// out; the rest are filled in by the column accumulator as it goes.
func (b *rowBand) advance() (*rowSums, error) {
	s, err := b.sumsFor(b.next)
	if err != nil {
		return nil, err
	}
	oldest := b.rows[0]
	copy(b.rows, b.rows[1:])
	b.rows[len(b.rows)-1] = s
	b.next++
	return oldest, nil
}

// newest returns the row sums most recently added to the band.
func (b *rowBand) newest() *rowSums {
	return b.rows[len(b.rows)-1]
}
