// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package main

import (
	"testing"
)

func TestParseRadii(t *testing.T) {
	cases := []struct {
		in   string
		want []int
		err  bool
	}{
		{"1,2,4", []int{1, 2, 4}, false},
		{" 3 , 9", []int{3, 9}, false},
		{"5,", []int{5}, false},
		{"", nil, true},
		{"1,two", nil, true},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := parseRadii(c.in)
			if c.err {
				if err == nil {
					t.Fatalf("Expected an error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(got) != len(c.want) {
				t.Fatalf("Expected %v, got %v", c.want, got)
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Fatalf("Expected %v, got %v", c.want, got)
				}
			}
		})
	}
}
