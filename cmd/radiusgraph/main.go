// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// radiusgraph times the mean filter over a range of radii and graphs
// the results.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"rescribe.xyz/meanfilter"
)

const usage = `Usage: radiusgraph [-min r] [-max r] [-step n] [-b] img graph.png

Filters img with each radius from min to max, and draws a graph of
how long each took. With -b the brute force filter is timed too,
which shows how its time grows with the window area while the
rolling filter's stays flat.
`

func main() {
	minr := flag.Int("min", 1, "Smallest radius.")
	maxr := flag.Int("max", 32, "Largest radius. Clamped to the largest radius the image allows.")
	step := flag.Int("step", 1, "Step between radii.")
	brute := flag.Bool("b", false, "Also time the brute force filter.")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	if *minr < 1 || *step < 1 {
		log.Fatalln("Error: min and step must be at least 1")
	}

	g, err := meanfilter.LoadFile(flag.Arg(0))
	if err != nil {
		log.Fatalln("Error loading image:", err)
	}

	largest := g.Width() / 2
	if g.Height()/2 < largest {
		largest = g.Height() / 2
	}
	if *maxr > largest {
		*maxr = largest
	}

	var radii []int
	for r := *minr; r <= *maxr; r += *step {
		radii = append(radii, r)
	}

	log.Printf("Timing %d radii\n", len(radii))
	timings, err := meanfilter.TimeRadii(g, radii, *brute)
	if err != nil {
		log.Fatalln("Error timing filters:", err)
	}

	fn := flag.Arg(1)
	f, err := os.Create(fn)
	if err != nil {
		log.Fatalln("Error creating file", fn, err)
	}
	defer f.Close()
	err = meanfilter.Graph(timings, filepath.Base(flag.Arg(0)), f)
	if err != nil {
		log.Fatalln("Error creating graph", err)
	}
}
