// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"rescribe.xyz/meanfilter"
	"rescribe.xyz/meanfilter/internal/pipeline"
)

const usage = `Usage: addtoqueue [-v] [-local dir] [-r radius] [-b] [-m] imgdir prefix

addtoqueue uploads the images in imgdir to storage under prefix/,
and adds a job to the filter queue to filter them.

The images are checked before anything is uploaded, so a radius
too large for any of them is reported straight away.

With -m, imgdir is ignored and nothing is uploaded; prefix is
added to the queue as is, which is handy to requeue a job when
things are misbehaving.
`

// null writer to enable non-verbose logging to be discarded
type NullWriter bool

func (w NullWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

type QueuePipeliner interface {
	pipeline.UploadQueuer
	Init() error
}

func main() {
	verbose := flag.Bool("v", false, "verbose")
	localdir := flag.String("local", "", "use a local directory for storage and queues, rather than the cloud")
	radius := flag.Int("r", meanfilter.DefaultRadius, "window radius to filter with")
	bin := flag.Bool("b", false, "binarise the filtered images")
	msgonly := flag.Bool("m", false, "only add a message to the queue")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		return
	}

	var verboselog *log.Logger
	if *verbose {
		verboselog = log.New(os.Stdout, "", 0)
	} else {
		var n NullWriter
		verboselog = log.New(n, "", 0)
	}

	var conn QueuePipeliner
	if *localdir != "" {
		conn = &meanfilter.LocalConn{TempDir: *localdir, Logger: verboselog}
	} else {
		conn = &meanfilter.AwsConn{Logger: verboselog}
	}

	err := conn.Init()
	if err != nil {
		log.Fatalln("Error setting up connection:", err)
	}

	dir := flag.Arg(0)
	job := pipeline.Job{Prefix: flag.Arg(1), Radius: *radius, Binarise: *bin}
	ctx := context.Background()

	if *msgonly {
		err = conn.AddToQueue(conn.FilterQueueId(), job.String())
		if err != nil {
			log.Fatalln("Error adding message to queue:", err)
		}
		fmt.Println("Added message to the queue.")
		return
	}

	err = pipeline.CheckImages(ctx, dir, job.Radius)
	if err != nil {
		log.Fatalln("Error with images in", dir, ":", err)
	}

	err = pipeline.QueueJob(ctx, dir, job, conn)
	if err != nil {
		log.Fatalln("Error queueing job:", err)
	}
	fmt.Println("Uploaded images and added job to the queue.")
}
