// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// lspipeline lists useful things related to the filter pipeline.
package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"rescribe.xyz/meanfilter"
	"rescribe.xyz/meanfilter/internal/pipeline"
)

const usage = `Usage: lspipeline [-local dir] [-noprefixes]

Lists useful things related to the pipeline.

- Messages in the filter queue
- Prefixes with no filtered images yet
- Prefixes with filtered images
`

type LsPipeliner interface {
	Init() error
	FilterQueueId() string
	GetQueueDetails(url string) (string, string, error)
	ListObjectsWithMeta(bucket string, prefix string) ([]meanfilter.ObjMeta, error)
	StorageId() string
}

// NullWriter is used so non-verbose logging may be discarded
type NullWriter bool

func (w NullWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

type queueDetails struct {
	name, numAvailable, numInProgress string
}

func getQueueDetails(conn LsPipeliner, qdetails chan queueDetails) {
	queues := []struct{ name, id string }{
		{"filter", conn.FilterQueueId()},
	}
	for _, q := range queues {
		avail, inprog, err := conn.GetQueueDetails(q.id)
		if err != nil {
			log.Println("Error getting queue details:", err)
		}
		var qd queueDetails
		qd.name = q.name
		qd.numAvailable = avail
		qd.numInProgress = inprog
		qdetails <- qd
	}
	close(qdetails)
}

type ObjMetas []meanfilter.ObjMeta

// used by sort.Sort
func (o ObjMetas) Len() int {
	return len(o)
}

// used by sort.Sort
func (o ObjMetas) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
}

// used by sort.Sort
func (o ObjMetas) Less(i, j int) bool {
	return o[i].Date.Before(o[j].Date)
}

// prefixStatus splits the prefixes of objs into two lists, those
// which have at least one filtered image (the done list) and those
// which do not (the inprogress list). Each list is sorted by the date
// of the newest object under the prefix.
func prefixStatus(objs []meanfilter.ObjMeta) (inprogress []string, done []string) {
	newest := make(map[string]time.Time)
	filtered := make(map[string]bool)
	for _, o := range objs {
		i := strings.Index(o.Name, "/")
		if i < 0 {
			continue
		}
		p := o.Name[:i]
		if d, ok := newest[p]; !ok || o.Date.After(d) {
			newest[p] = o.Date
		}
		if pipeline.IsFiltered(o.Name) {
			filtered[p] = true
		}
	}

	var inprogressmeta, donemeta ObjMetas
	for p, d := range newest {
		if filtered[p] {
			donemeta = append(donemeta, meanfilter.ObjMeta{Name: p, Date: d})
		} else {
			inprogressmeta = append(inprogressmeta, meanfilter.ObjMeta{Name: p, Date: d})
		}
	}

	sort.Sort(donemeta)
	for _, i := range donemeta {
		done = append(done, i.Name)
	}
	sort.Sort(inprogressmeta)
	for _, i := range inprogressmeta {
		inprogress = append(inprogress, i.Name)
	}
	return
}

// getPrefixStatusChan runs prefixStatus on the whole of storage and
// sends its results to channels for the inprogress and done lists.
func getPrefixStatusChan(conn LsPipeliner, inprogressc chan string, donec chan string) {
	objs, err := conn.ListObjectsWithMeta(conn.StorageId(), "")
	if err != nil {
		log.Println("Error listing objects:", err)
		close(inprogressc)
		close(donec)
		return
	}
	inprogress, done := prefixStatus(objs)
	for _, i := range inprogress {
		inprogressc <- i
	}
	close(inprogressc)
	for _, i := range done {
		donec <- i
	}
	close(donec)
}

func main() {
	localdir := flag.String("local", "", "use a local directory for storage and queues, rather than the cloud")
	noprefixes := flag.Bool("noprefixes", false, "disable listing prefixes filtered and not filtered (which takes some time)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	var n NullWriter
	verboselog := log.New(n, "", 0)

	var conn LsPipeliner
	if *localdir != "" {
		conn = &meanfilter.LocalConn{TempDir: *localdir, Logger: verboselog}
	} else {
		conn = &meanfilter.AwsConn{Logger: verboselog}
	}
	err := conn.Init()
	if err != nil {
		log.Fatalln("Failed to set up connection:", err)
	}

	queues := make(chan queueDetails)
	inprogress := make(chan string, 100)
	done := make(chan string, 100)

	go getQueueDetails(conn, queues)
	if !*noprefixes {
		go getPrefixStatusChan(conn, inprogress, done)
	}

	fmt.Println("# Queues")
	for i := range queues {
		fmt.Printf("%s: %s available, %s in progress\n", i.name, i.numAvailable, i.numInProgress)
	}

	if !*noprefixes {
		fmt.Println("\n# Prefixes not filtered")
		for i := range inprogress {
			fmt.Println(i)
		}

		fmt.Println("\n# Prefixes filtered")
		for i := range done {
			fmt.Println(i)
		}
	}
}
