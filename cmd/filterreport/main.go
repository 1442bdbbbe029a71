// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// filterreport makes a PDF comparing an image filtered with
// different radii.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"rescribe.xyz/meanfilter"
)

const usage = `Usage: filterreport [-r radii] [-s size] img out.pdf

Creates a PDF with img on the first page, followed by a page for
each radius showing img filtered with it. Radii are given as a comma
separated list.
`

func parseRadii(s string) ([]int, error) {
	var radii []int
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		r, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("Error parsing radius %s: %v", f, err)
		}
		radii = append(radii, r)
	}
	if len(radii) == 0 {
		return nil, fmt.Errorf("No radii given")
	}
	return radii, nil
}

func main() {
	radiilist := flag.String("r", "1,2,4,8", "Radii to filter with.")
	size := flag.Int("s", 0, "Longest side of each page image, in pixels. 0 keeps the original size.")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	radii, err := parseRadii(*radiilist)
	if err != nil {
		log.Fatalln(err)
	}

	g, err := meanfilter.LoadFile(flag.Arg(0))
	if err != nil {
		log.Fatalln("Error loading image:", err)
	}

	report, err := meanfilter.CompareRadii(g, radii, *size)
	if err != nil {
		log.Fatalln("Error creating report:", err)
	}

	err = report.Save(flag.Arg(1))
	if err != nil {
		log.Fatalln("Error saving PDF:", err)
	}
}
