// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// rmprefix removes a prefix from storage.
package main

import (
	"flag"
	"fmt"
	"log"

	"rescribe.xyz/meanfilter"
	"rescribe.xyz/meanfilter/internal/pipeline"
)

const usage = `Usage: rmprefix [-local dir] [-f] prefix

Removes all images under prefix/ from storage. With -f only the
filtered images are removed, so the job can be run again.
`

// null writer to enable non-verbose logging to be discarded
type NullWriter bool

func (w NullWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

type RmPipeliner interface {
	MinimalInit() error
	StorageId() string
	DeleteObjects(bucket string, keys []string) error
	ListObjects(bucket string, prefix string) ([]string, error)
}

func main() {
	localdir := flag.String("local", "", "use a local directory for storage, rather than the cloud")
	filteredonly := flag.Bool("f", false, "only remove filtered images")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		return
	}

	var n NullWriter
	verboselog := log.New(n, "", log.LstdFlags)

	var conn RmPipeliner
	if *localdir != "" {
		conn = &meanfilter.LocalConn{TempDir: *localdir, Logger: verboselog}
	} else {
		conn = &meanfilter.AwsConn{Logger: verboselog}
	}

	fmt.Println("Setting up connection")
	err := conn.MinimalInit()
	if err != nil {
		log.Fatalln("Error setting up connection:", err)
	}

	prefix := flag.Arg(0)

	fmt.Println("Getting list of files for prefix")
	objs, err := conn.ListObjects(conn.StorageId(), prefix+"/")
	if err != nil {
		log.Fatalln("Error in listing prefix items:", err)
	}

	var todel []string
	for _, o := range objs {
		if *filteredonly && !pipeline.IsFiltered(o) {
			continue
		}
		todel = append(todel, o)
	}

	if len(todel) == 0 {
		log.Fatalln("No files found for prefix:", prefix)
	}

	fmt.Printf("Deleting %d files\n", len(todel))
	err = conn.DeleteObjects(conn.StorageId(), todel)
	if err != nil {
		log.Fatalln("Error deleting files:", err)
	}

	fmt.Println("Finished deleting files")
}
