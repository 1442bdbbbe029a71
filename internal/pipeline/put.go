// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rescribe.xyz/meanfilter"
)

// null writer to enable non-verbose logging to be discarded
type NullWriter bool

func (w NullWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

type fileWalk chan string

// Walk sends the path of all files to the channel, with the exception of
// any file which starts with "."
func (f fileWalk) Walk(path string, info os.FileInfo, err error) error {
	if err != nil {
		return err
	}
	// skip files starting with . to prevent automatically generated
	// files like .DS_Store getting in the way
	if strings.HasPrefix(filepath.Base(path), ".") {
		return nil
	}
	if !info.IsDir() {
		f <- path
	}
	return nil
}

// CheckImages checks that all image files in a directory can be
// decoded and are large enough to be filtered with radius (skipping
// dotfiles)
func CheckImages(ctx context.Context, dir string, radius int) error {
	checker := make(fileWalk)
	walkerr := make(chan error, 1)
	go func() {
		walkerr <- filepath.Walk(dir, checker.Walk)
		close(checker)
	}()

	n := 0
	var err error
	for path := range checker {
		if err != nil {
			continue // consume the rest of the channel so the walk finishes
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			continue
		default:
		}
		if !origPattern.MatchString(path) || filteredPattern.MatchString(path) {
			continue
		}
		g, lerr := meanfilter.LoadFile(path)
		if lerr != nil {
			err = fmt.Errorf("Decoding image %s failed: %w", path, lerr)
			continue
		}
		_, rerr := meanfilter.NewRadius(radius, g)
		if rerr != nil {
			err = fmt.Errorf("Image %s can't be filtered: %w", path, rerr)
			continue
		}
		n++
	}
	if err != nil {
		return err
	}
	if werr := <-walkerr; werr != nil {
		return fmt.Errorf("Failed to read directory %s: %w", dir, werr)
	}

	if n == 0 {
		return fmt.Errorf("No images found")
	}

	return nil
}

// UploadImages uploads all unfiltered images (except those which
// start with a ".") from a directory into conn.StorageId(), prefixed
// with the given prefix and a slash.
func UploadImages(ctx context.Context, dir string, prefix string, conn Uploader) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("Failed to read directory %s: %v", dir, err)
	}

	for _, file := range files {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		name := file.Name()
		if file.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !origPattern.MatchString(name) || filteredPattern.MatchString(name) {
			continue
		}
		path := filepath.Join(dir, name)
		conn.Log("Uploading", path)
		err = conn.Upload(conn.StorageId(), prefix+"/"+name, path)
		if err != nil {
			return fmt.Errorf("Failed to upload %s: %v", path, err)
		}
	}

	return nil
}

// QueueJob uploads the images in dir and adds a job to filter them
// to the filter queue.
func QueueJob(ctx context.Context, dir string, job Job, conn UploadQueuer) error {
	err := UploadImages(ctx, dir, job.Prefix, conn)
	if err != nil {
		return err
	}
	conn.Log("Adding", job.String(), "to queue", conn.FilterQueueId())
	return conn.AddToQueue(conn.FilterQueueId(), job.String())
}
