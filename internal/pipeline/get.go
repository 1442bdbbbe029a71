// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pipeline

import (
	"fmt"
	"path/filepath"
)

// DownloadFiltered downloads every filtered image stored under
// prefix into dir, returning the local paths.
func DownloadFiltered(dir string, prefix string, conn DownloadLister) ([]string, error) {
	objs, err := conn.ListObjects(conn.StorageId(), prefix)
	if err != nil {
		return nil, fmt.Errorf("Failed to get list of files for %s: %v", prefix, err)
	}
	var done []string
	for _, i := range objs {
		if !filteredPattern.MatchString(i) {
			continue
		}
		fn := filepath.Join(dir, filepath.Base(i))
		conn.Log("Downloading", i)
		err = conn.Download(conn.StorageId(), i, fn)
		if err != nil {
			return done, fmt.Errorf("Failed to download file %s: %v", i, err)
		}
		done = append(done, fn)
	}
	return done, nil
}
