// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package meanfilter

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// FilterParallel produces the same output as Filter, splitting the
// interior rows into up to workers bands which are filtered
// concurrently. Each band seeds its own row sums, so no rolling
// state is shared between goroutines. If workers is less than 1,
// runtime.NumCPU() is used.
func FilterParallel(src *Grid, r int, workers int) (*Grid, error) {
	rad, err := NewRadius(r, src)
	if err != nil {
		return nil, err
	}
	out, err := NewGrid(src.width, src.height)
	if err != nil {
		return nil, err
	}

	if workers < 1 {
		workers = runtime.NumCPU()
	}
	top, bottom := r, src.height-r
	rows := bottom - top
	if workers > rows {
		workers = rows
	}
	if workers < 1 {
		return out, nil
	}

	var g errgroup.Group
	per := rows / workers
	extra := rows % workers
	y0 := top
	for i := 0; i < workers; i++ {
		y1 := y0 + per
		if i < extra {
			y1++
		}
		start, end := y0, y1
		g.Go(func() error {
			return filterRows(src, out, rad, start, end)
		})
		y0 = y1
	}

	err = g.Wait()
	if err != nil {
		return nil, err
	}
	return out, nil
}
