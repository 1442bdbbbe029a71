// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// pipeline is a package used by the filterpipeline command, which
// handles the core functionality, using channels heavily to
// coordinate jobs. Note that it is considered an "internal" package,
// not intended for external use, and no guarantee is made of the
// stability of any interfaces provided.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"rescribe.xyz/meanfilter"
)

const HeartbeatSeconds = 60

// origPattern matches source images which haven't been filtered yet
var origPattern = regexp.MustCompile(`(?i)\.(png|jpe?g|gif|bmp|tiff?|webp)$`)

// filteredPattern matches images produced by FilterImages
var filteredPattern = regexp.MustCompile(`_mean[0-9]+(_bin)?\.png$`)

// IsFiltered reports whether name looks like an image produced by
// FilterImages
func IsFiltered(name string) bool {
	return filteredPattern.MatchString(name)
}

type Lister interface {
	ListObjects(bucket string, prefix string) ([]string, error)
	Log(v ...interface{})
	StorageId() string
}

type Downloader interface {
	Download(bucket string, key string, fn string) error
	Log(v ...interface{})
	StorageId() string
}

type DownloadLister interface {
	Download(bucket string, key string, fn string) error
	ListObjects(bucket string, prefix string) ([]string, error)
	Log(v ...interface{})
	StorageId() string
}

type Uploader interface {
	Log(v ...interface{})
	Upload(bucket string, key string, path string) error
	StorageId() string
}

type Queuer interface {
	AddToQueue(url string, msg string) error
	CheckQueue(url string, timeout int64) (meanfilter.Qmsg, error)
	DelFromQueue(url string, handle string) error
	FilterQueueId() string
	Log(v ...interface{})
	QueueHeartbeat(msg meanfilter.Qmsg, qurl string, duration int64) (meanfilter.Qmsg, error)
}

type UploadQueuer interface {
	Uploader
	Queuer
}

type Pipeliner interface {
	AddToQueue(url string, msg string) error
	CheckQueue(url string, timeout int64) (meanfilter.Qmsg, error)
	DelFromQueue(url string, handle string) error
	Download(bucket string, key string, fn string) error
	FilterQueueId() string
	GetLogger() *log.Logger
	Init() error
	ListObjects(bucket string, prefix string) ([]string, error)
	Log(v ...interface{})
	QueueHeartbeat(msg meanfilter.Qmsg, qurl string, duration int64) (meanfilter.Qmsg, error)
	StorageId() string
	Upload(bucket string, key string, path string) error
}

// Job is what a queue message asks to be done: filter every
// unfiltered image under Prefix with Radius, and binarise the result
// too if Binarise is set.
type Job struct {
	Prefix   string
	Radius   int
	Binarise bool
}

// ParseJob reads a queue message of the form "prefix [radius] [bin]"
func ParseJob(body string) (Job, error) {
	f := strings.Fields(body)
	if len(f) == 0 {
		return Job{}, errors.New("Empty message")
	}
	j := Job{Prefix: f[0], Radius: meanfilter.DefaultRadius}
	if len(f) > 1 {
		r, err := strconv.Atoi(f[1])
		if err != nil {
			return Job{}, fmt.Errorf("Error parsing radius %s: %v", f[1], err)
		}
		j.Radius = r
	}
	if len(f) > 2 {
		if f[2] != "bin" {
			return Job{}, fmt.Errorf("Unknown option %s", f[2])
		}
		j.Binarise = true
	}
	if len(f) > 3 {
		return Job{}, fmt.Errorf("Too many fields in message: %s", body)
	}
	return j, nil
}

// String formats a Job as a queue message
func (j Job) String() string {
	s := fmt.Sprintf("%s %d", j.Prefix, j.Radius)
	if j.Binarise {
		s += " bin"
	}
	return s
}

// download reads file names from a channel and downloads them into
// dir, putting each successfully downloaded file name into the
// process channel. If an error occurs it is sent to the errc channel
// and the function returns early.
func download(ctx context.Context, dl chan string, process chan string, conn Downloader, dir string, errc chan error, logger *log.Logger) {
	defer close(process)
	for key := range dl {
		select {
		case <-ctx.Done():
			for range dl {
			} // consume the rest of the receiving channel so it isn't blocked
			errc <- ctx.Err()
			return
		default:
		}
		fn := filepath.Join(dir, filepath.Base(key))
		logger.Println("Downloading", key)
		err := conn.Download(conn.StorageId(), key, fn)
		if err != nil {
			for range dl {
			} // consume the rest of the receiving channel so it isn't blocked
			errc <- err
			return
		}
		process <- fn
	}
}

// up reads file names from a channel and uploads them with
// the prefix/ prefix, removing the local copy of each file
// once it has been successfully uploaded. The done channel is
// then written to to signal completion. If an error occurs it
// is sent to the errc channel and the function returns early.
func up(ctx context.Context, c chan string, done chan bool, conn Uploader, prefix string, errc chan error, logger *log.Logger) {
	for path := range c {
		select {
		case <-ctx.Done():
			for range c {
			} // consume the rest of the receiving channel so it isn't blocked
			errc <- ctx.Err()
			return
		default:
		}
		name := filepath.Base(path)
		key := prefix + "/" + name
		logger.Println("Uploading", key)
		err := conn.Upload(conn.StorageId(), key, path)
		if err != nil {
			for range c {
			} // consume the rest of the receiving channel so it isn't blocked
			errc <- err
			return
		}
		err = os.Remove(path)
		if err != nil {
			for range c {
			} // consume the rest of the receiving channel so it isn't blocked
			errc <- err
			return
		}
	}

	done <- true
}

// FilteredName returns the name FilterImages gives the output for
// the image at path.
func FilteredName(path string, radius int, binarised bool) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	if binarised {
		return fmt.Sprintf("%s_mean%d_bin.png", base, radius)
	}
	return fmt.Sprintf("%s_mean%d.png", base, radius)
}

// FilterImages returns a process stage which mean filters each image
// it receives with the given radius, sending the path of the result
// (and of its binarisation, if binarise is set) on to be uploaded.
func FilterImages(radius int, binarise bool) func(context.Context, chan string, chan string, chan error, *log.Logger) {
	return func(ctx context.Context, tofilter chan string, up chan string, errc chan error, logger *log.Logger) {
		defer close(up)
		for path := range tofilter {
			select {
			case <-ctx.Done():
				for range tofilter {
				} // consume the rest of the receiving channel so it isn't blocked
				errc <- ctx.Err()
				return
			default:
			}
			logger.Println("Filtering", path, "with radius", radius)
			done, err := filterFile(path, radius, binarise)
			if err != nil {
				for range tofilter {
				} // consume the rest of the receiving channel so it isn't blocked
				errc <- fmt.Errorf("Error filtering %s: %w", path, err)
				return
			}
			_ = os.Remove(path)
			for _, p := range done {
				up <- p
			}
		}
	}
}

func filterFile(path string, radius int, binarise bool) ([]string, error) {
	g, err := meanfilter.LoadFile(path)
	if err != nil {
		return nil, err
	}
	filtered, err := meanfilter.Filter(g, radius)
	if err != nil {
		return nil, err
	}
	fn := FilteredName(path, radius, false)
	err = meanfilter.SaveFile(fn, filtered)
	if err != nil {
		return nil, err
	}
	done := []string{fn}

	if binarise {
		bin, err := meanfilter.Binarise(filtered, meanfilter.DefaultKsize, 0)
		if err != nil {
			return done, err
		}
		fn = FilteredName(path, radius, true)
		err = meanfilter.SaveFile(fn, bin)
		if err != nil {
			return done, err
		}
		done = append(done, fn)
	}
	return done, nil
}

// heartbeat keeps msg hidden on the queue until ctx is done. If the
// message handle has to be replaced, the new message is sent on msgc.
func heartbeat(ctx context.Context, conn Queuer, t *time.Ticker, msg meanfilter.Qmsg, queue string, msgc chan meanfilter.Qmsg, errc chan error) {
	currentmsg := msg
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		m, err := conn.QueueHeartbeat(currentmsg, queue, HeartbeatSeconds*2)
		if err != nil {
			conn.Log("Error with heartbeat", err)
			errc <- err
			t.Stop()
			return
		}
		if m.Id != "" {
			conn.Log("Replaced message handle as visibilitytimeout limit was reached")
			currentmsg = m
			select {
			case <-msgc:
			default:
			} // throw away any old msg
			msgc <- m
		}
	}
}

// permanent reports whether err will recur however many times a job
// is retried
func permanent(err error) bool {
	return errors.Is(err, meanfilter.ErrInvalidRadius) || errors.Is(err, meanfilter.ErrInvalidInput)
}

// ProcessPrefix filters every unfiltered image stored under the
// prefix named in msg, uploading the results alongside them, and
// then removes msg from fromQueue.
func ProcessPrefix(ctx context.Context, msg meanfilter.Qmsg, conn Pipeliner, fromQueue string) error {
	job, err := ParseJob(msg.Body)
	if err != nil {
		conn.Log("Deleting unparseable message from queue", fromQueue, msg.Body)
		_ = conn.DelFromQueue(fromQueue, msg.Handle)
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dl := make(chan string)
	msgc := make(chan meanfilter.Qmsg, 1)
	processc := make(chan string)
	upc := make(chan string)
	done := make(chan bool, 1)
	errc := make(chan error, 4)

	d, err := os.MkdirTemp("", "meanfilter")
	if err != nil {
		return fmt.Errorf("Failed to create temporary directory: %s", err)
	}
	defer os.RemoveAll(d)

	t := time.NewTicker(HeartbeatSeconds * time.Second)
	defer t.Stop()
	go heartbeat(ctx, conn, t, msg, fromQueue, msgc, errc)

	// these functions will do their jobs when their channels have data
	go download(ctx, dl, processc, conn, d, errc, conn.GetLogger())
	go FilterImages(job.Radius, job.Binarise)(ctx, processc, upc, errc, conn.GetLogger())
	go up(ctx, upc, done, conn, job.Prefix, errc, conn.GetLogger())

	conn.Log("Getting list of objects to download")
	objs, err := conn.ListObjects(conn.StorageId(), job.Prefix+"/")
	if err != nil {
		close(dl)
		return fmt.Errorf("Failed to get list of files for %s: %s", job.Prefix, err)
	}
	var todl []string
	for _, n := range objs {
		if !origPattern.MatchString(n) || filteredPattern.MatchString(n) {
			conn.Log("Skipping item that isn't an unfiltered image", n)
			continue
		}
		todl = append(todl, n)
	}
	for _, a := range todl {
		dl <- a
	}
	close(dl)

	// wait for either the done or errc channel to be sent to. errors
	// are always sent before the stage returns, so check errc again
	// once done in case both were ready together.
	select {
	case err = <-errc:
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		select {
		case err = <-errc:
		default:
		}
	}
	if err != nil {
		if permanent(err) {
			conn.Log("Deleting message from queue due to a bad error", fromQueue)
			err2 := conn.DelFromQueue(fromQueue, msg.Handle)
			if err2 != nil {
				conn.Log("Error deleting message from queue", err2)
			}
		}
		return err
	}

	cancel()

	// check whether we're using a newer msg handle
	select {
	case m := <-msgc:
		msg = m
		conn.Log("Using new message handle to delete message from queue")
	default:
		conn.Log("Using original message handle to delete message from queue")
	}

	conn.Log("Deleting original message from queue", fromQueue)
	err = conn.DelFromQueue(fromQueue, msg.Handle)
	if err != nil {
		return fmt.Errorf("Error deleting message from queue: %s", err)
	}

	return nil
}
