// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// meanview shows an image next to the result of filtering it, with
// a slider to change the window radius.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"rescribe.xyz/meanfilter"
)

const usage = `Usage: meanview [-r radius] [-s size] [img]

Opens a window showing img on the left and the mean filtered image
on the right. The radius can be changed with the slider. If img is
not given, one can be chosen with the Open button.
`

func main() {
	radius := flag.Int("r", meanfilter.DefaultRadius, "Initial window radius.")
	size := flag.Int("s", 800, "Longest side of the images shown, in pixels. Larger images are scaled down before filtering. 0 disables scaling.")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}

	var g *meanfilter.Grid
	if flag.NArg() == 1 {
		var err error
		g, err = meanfilter.LoadFile(flag.Arg(0))
		if err != nil {
			log.Fatalln("Error loading image:", err)
		}
	}

	startGui(g, *radius, *size)
}
