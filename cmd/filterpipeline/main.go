// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// filterpipeline is the core command of the meanfilter package,
// which watches the filter queue for jobs and processes them.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"rescribe.xyz/meanfilter"
	"rescribe.xyz/meanfilter/internal/pipeline"
)

const usage = `Usage: filterpipeline [-v] [-local dir] [-once]

Watches the filter queue for jobs. A job is a message of the form
"prefix [radius] [bin]". When one is found this process is followed:

- The message is hidden from the queue, and a 'heartbeat' is
  started which keeps it hidden (this will time out after 2 minutes
  if the program is terminated)
- The unfiltered images under prefix/ are downloaded
- Each image is filtered with the given radius (default 4), and
  binarised too if 'bin' is given
- The resulting images are uploaded to prefix/, named
  name_mean<radius>.png (and name_mean<radius>_bin.png)
- The heartbeat is stopped
- The message is removed from the queue

By default the pipeline uses S3 and SQS. With -local, storage and
queues are kept on disk under dir instead.
`

const PauseBetweenChecks = 1 * time.Minute

// null writer to enable non-verbose logging to be discarded
type NullWriter bool

func (w NullWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

func main() {
	verbose := flag.Bool("v", false, "verbose")
	localdir := flag.String("local", "", "use a local directory for storage and queues, rather than the cloud")
	once := flag.Bool("once", false, "exit once the queue is empty")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	var verboselog *log.Logger
	if *verbose {
		verboselog = log.New(os.Stdout, "", 0)
	} else {
		var n NullWriter
		verboselog = log.New(n, "", 0)
	}

	var conn pipeline.Pipeliner
	if *localdir != "" {
		conn = &meanfilter.LocalConn{TempDir: *localdir, Logger: verboselog}
	} else {
		conn = &meanfilter.AwsConn{Logger: verboselog}
	}

	verboselog.Println("Setting up connection")
	err := conn.Init()
	if err != nil {
		log.Fatalln("Error setting up connection:", err)
	}
	verboselog.Println("Finished setting up connection")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	checkFilterQueue := time.After(0)
	for {
		select {
		case <-ctx.Done():
			log.Println("Interrupted, exiting")
			return
		case <-checkFilterQueue:
			msg, err := conn.CheckQueue(conn.FilterQueueId(), pipeline.HeartbeatSeconds*2)
			checkFilterQueue = time.After(PauseBetweenChecks)
			if err != nil {
				log.Println("Error checking filter queue", err)
				continue
			}
			if msg.Handle == "" {
				if *once {
					verboselog.Println("No message received on filter queue, exiting")
					return
				}
				verboselog.Println("No message received on filter queue, sleeping")
				continue
			}
			// there are likely more jobs waiting, so check again straight away
			checkFilterQueue = time.After(0)
			verboselog.Println("Message received on filter queue, processing", msg.Body)
			err = pipeline.ProcessPrefix(ctx, msg, conn, conn.FilterQueueId())
			if err != nil {
				log.Println("Error during filter", err)
			}
		}
	}
}
