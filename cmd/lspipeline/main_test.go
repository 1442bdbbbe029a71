// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package main

import (
	"strings"
	"testing"
	"time"

	"rescribe.xyz/meanfilter"
)

func TestPrefixStatus(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 12, 0, 0, 0, time.UTC)
	}
	objs := []meanfilter.ObjMeta{
		{Name: "late/0001.jpg", Date: day(9)},
		{Name: "late/0001_mean4.png", Date: day(10)},
		{Name: "early/a.png", Date: day(2)},
		{Name: "early/a_mean2_bin.png", Date: day(3)},
		{Name: "waiting/b.tif", Date: day(5)},
		{Name: "waiting/c.png", Date: day(1)},
		{Name: "new/x.png", Date: day(7)},
		{Name: "stray.png", Date: day(8)},
	}

	inprogress, done := prefixStatus(objs)

	cases := []struct {
		name string
		got  []string
		want string
	}{
		{"inprogress", inprogress, "waiting new"},
		{"done", done, "early late"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := strings.Join(c.got, " ")
			if got != c.want {
				t.Fatalf("Expected %s, got %s", c.want, got)
			}
		})
	}
}
