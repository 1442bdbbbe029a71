// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package meanfilter

import "errors"

var (
	// ErrInvalidInput is returned when a source grid is missing,
	// empty, or has a non-positive width or height.
	ErrInvalidInput = errors.New("invalid input grid")

	// ErrInvalidRadius is returned when a window radius is not
	// positive, or when its window (2r) is larger than the width
	// or height of the grid it is applied to.
	ErrInvalidRadius = errors.New("invalid window radius")

	// ErrAllocation is returned when an output grid or cache would
	// be too large to allocate.
	ErrAllocation = errors.New("could not allocate grid")

	// ErrOutOfRange is returned by the bounds-checked accessors of
	// Grid and the internal row sum caches.
	ErrOutOfRange = errors.New("index out of range")
)
