// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package meanfilter

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
)

func TestReport(t *testing.T) {
	var p Report
	err := p.Setup()
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	err = p.AddPage(seq(t, 30, 20), "sequence")
	if err != nil {
		t.Fatalf("AddPage failed: %v", err)
	}
	if p.Pages() != 1 {
		t.Errorf("Expected 1 page, got %d", p.Pages())
	}

	var buf bytes.Buffer
	err = p.Output(&buf)
	if err != nil {
		t.Fatalf("Output failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("Output is not a PDF")
	}
}

func TestCompareRadii(t *testing.T) {
	g := random(t, rand.New(rand.NewSource(7)), 60, 40)

	p, err := CompareRadii(g, []int{1, 3, 6}, 30)
	if err != nil {
		t.Fatalf("CompareRadii failed: %v", err)
	}
	if p.Pages() != 4 {
		t.Errorf("Expected 4 pages, got %d", p.Pages())
	}

	_, err = CompareRadii(g, []int{2, 30}, 0)
	if !errors.Is(err, ErrInvalidRadius) {
		t.Errorf("Expected ErrInvalidRadius, got %v", err)
	}
}
