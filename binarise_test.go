// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package meanfilter

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
)

func TestAutowsize(t *testing.T) {
	cases := []struct {
		w, want int
	}{
		{10, 3},
		{200, 3},
		{240, 5},
		{600, 11},
		{1200, 21},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%d", c.w), func(t *testing.T) {
			g := &Grid{width: c.w, height: 1}
			if got := autowsize(g); got != c.want {
				t.Errorf("Expected %d, got %d", c.want, got)
			}
		})
	}
}

func TestBinarise(t *testing.T) {
	src := random(t, rand.New(rand.NewSource(11)), 40, 40)
	filtered, err := Filter(src, 2)
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}

	for _, wsize := range []int{0, 5} {
		t.Run(fmt.Sprintf("%d", wsize), func(t *testing.T) {
			bin, err := Binarise(filtered, DefaultKsize, wsize)
			if err != nil {
				t.Fatalf("Binarise failed: %v", err)
			}
			if bin.Width() != 40 || bin.Height() != 40 {
				t.Fatalf("Expected 40x40, got %dx%d", bin.Width(), bin.Height())
			}
			for i, v := range bin.Bytes() {
				if v != 0 && v != 255 {
					t.Fatalf("Sample %d is %d, not 0 or 255", i, v)
				}
			}
		})
	}

	_, err = Binarise(filtered, DefaultKsize, -1)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for a negative window, got %v", err)
	}
	_, err = Binarise(nil, DefaultKsize, 0)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for a nil grid, got %v", err)
	}
}
