// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package meanfilter

import (
	"bytes"
	"math/rand"
	"testing"
	"time"
)

func TestTimeRadii(t *testing.T) {
	g := random(t, rand.New(rand.NewSource(3)), 40, 30)
	radii := []int{1, 2, 5}

	timings, err := TimeRadii(g, radii, false)
	if err != nil {
		t.Fatalf("TimeRadii failed: %v", err)
	}
	if len(timings) != len(radii) {
		t.Fatalf("Expected %d timings, got %d", len(radii), len(timings))
	}
	for i, tm := range timings {
		if tm.Radius != radii[i] {
			t.Errorf("Timing %d: expected radius %d, got %d", i, radii[i], tm.Radius)
		}
		if tm.Brute != 0 {
			t.Errorf("Timing %d: brute force was timed when not asked for", i)
		}
	}

	timings, err = TimeRadii(g, []int{1, 16}, true)
	if err == nil {
		t.Errorf("Expected an error timing a radius too large for the grid")
	}
	if len(timings) != 1 {
		t.Errorf("Expected the timing before the failure to be kept, got %d", len(timings))
	}
}

func TestGraph(t *testing.T) {
	var buf bytes.Buffer

	err := Graph([]Timing{{Radius: 1, Rolling: time.Millisecond}}, "too few", &buf)
	if err == nil {
		t.Errorf("Expected an error graphing a single timing")
	}

	cases := []struct {
		name    string
		timings []Timing
	}{
		{"rolling", []Timing{
			{Radius: 4, Rolling: 3 * time.Millisecond},
			{Radius: 1, Rolling: 2 * time.Millisecond},
			{Radius: 8, Rolling: 4 * time.Millisecond},
		}},
		{"brute", []Timing{
			{Radius: 1, Rolling: 2 * time.Millisecond, Brute: 3 * time.Millisecond},
			{Radius: 2, Rolling: 2 * time.Millisecond, Brute: 9 * time.Millisecond},
			{Radius: 3, Rolling: 2 * time.Millisecond, Brute: 20 * time.Millisecond},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Graph(c.timings, c.name, &buf)
			if err != nil {
				t.Fatalf("Graph failed: %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
				t.Errorf("Graph output is not a png")
			}
		})
	}
}
