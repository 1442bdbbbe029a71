// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// meanfilter smooths an image with a box filter, optionally
// binarising the result.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"rescribe.xyz/meanfilter"
)

const usage = `Usage: meanfilter [-r radius] [-p workers] [-b] [-k ksize] [-w winsize] inimg outimg

Replaces each pixel of an image with the mean of the 2r x 2r window
around it, leaving a black border r pixels wide where no full window
fits. Colour images are converted to gray first. The output is
always a png.
`

func main() {
	radius := flag.Int("r", meanfilter.DefaultRadius, "Window radius.")
	workers := flag.Int("p", 1, "Number of rows of the image to filter in parallel. 0 uses one per CPU.")
	bin := flag.Bool("b", false, "Binarise the filtered image with sauvola.")
	ksize := flag.Float64("k", meanfilter.DefaultKsize, "K for sauvola binarization algorithm.")
	wsize := flag.Int("w", 0, "Window size for sauvola binarization algorithm. Set automatically based on resolution if not set.")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	src, err := meanfilter.LoadFile(flag.Arg(0))
	if err != nil {
		log.Fatalln("Error loading image:", err)
	}

	var out *meanfilter.Grid
	if *workers == 1 {
		out, err = meanfilter.Filter(src, *radius)
	} else {
		out, err = meanfilter.FilterParallel(src, *radius, *workers)
	}
	if err != nil {
		log.Fatalln("Error filtering image:", err)
	}

	if *bin {
		out, err = meanfilter.Binarise(out, *ksize, *wsize)
		if err != nil {
			log.Fatalln("Error binarising image:", err)
		}
	}

	err = meanfilter.SaveFile(flag.Arg(1), out)
	if err != nil {
		log.Fatalln("Error saving image:", err)
	}
}
