// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"rescribe.xyz/meanfilter"
	"rescribe.xyz/meanfilter/internal/pipeline"
)

const usage = `Usage: getfiltered [-v] [-local dir] prefix [outdir]

Downloads the filtered images stored under prefix/. They are saved
into outdir, which defaults to a directory named after prefix.
`

// null writer to enable non-verbose logging to be discarded
type NullWriter bool

func (w NullWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

type Getter interface {
	pipeline.DownloadLister
	Init() error
}

func main() {
	verbose := flag.Bool("v", false, "verbose")
	localdir := flag.String("local", "", "use a local directory for storage, rather than the cloud")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		return
	}

	var verboselog *log.Logger
	if *verbose {
		verboselog = log.New(os.Stdout, "", log.LstdFlags)
	} else {
		var n NullWriter
		verboselog = log.New(n, "", log.LstdFlags)
	}

	var conn Getter
	if *localdir != "" {
		conn = &meanfilter.LocalConn{TempDir: *localdir, Logger: verboselog}
	} else {
		conn = &meanfilter.AwsConn{Logger: verboselog}
	}

	err := conn.Init()
	if err != nil {
		log.Fatalln("Error setting up connection:", err)
	}

	prefix := flag.Arg(0)
	outdir := prefix
	if flag.NArg() == 2 {
		outdir = flag.Arg(1)
	}
	err = os.MkdirAll(outdir, 0755)
	if err != nil {
		log.Fatalln("Failed to create directory", outdir, err)
	}

	verboselog.Println("Downloading filtered images for", prefix)
	done, err := pipeline.DownloadFiltered(outdir, prefix, conn)
	if err != nil {
		log.Fatalln(err)
	}
	if len(done) == 0 {
		log.Fatalln("No filtered images found for", prefix)
	}
	fmt.Printf("Downloaded %d images to %s\n", len(done), outdir)
}
