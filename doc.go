// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

/*
The meanfilter package smooths single channel 8 bit images with a box
(mean) filter, replacing each pixel with the average of a square
window around it. The time taken per pixel doesn't depend on the size
of the window, so large radii are as cheap as small ones. It also
contains a small pipeline to filter many images using short-lived
servers, and several tools that are useful standalone; all of them
give information on what they do with the '-h' flag.

Filtering

For a radius r, the window for the output pixel at (x, y) covers the
columns x-r to x+r-1 and the rows y-r to y+r-1 of the source, so it
is 2r pixels square and reaches one pixel further up and left than it
does down and right. Pixels within r of any edge, where no full window
fits, are set to 0. Means are rounded down.

The filter keeps a running sum along each row, then a running sum of
those down each column, so moving the window one row or one column
only adds the pixels coming in and takes away the ones going out.
Only 2r rows of row sums are kept at once, so memory use grows with
the image width and the radius, not the image area.

  out, err := meanfilter.Filter(src, 4)

FilterParallel splits the rows of the output between goroutines, and
BruteForce sums every window from scratch; both give exactly the same
output as Filter.

The meanfilter command filters an image file:
  meanfilter -r 8 page.jpg page_smooth.png

The meanview command shows an image and its filtered version side by
side, with a slider to change the radius. The radiusgraph command
graphs how long filtering takes with each radius, and filterreport
makes a PDF comparing several radii.

Using the pipeline

The pipeline uses a storage bucket and a queue, which are named in
cloudsettings.go. They can be created on AWS with the mkpipeline tool,
once your ~/.aws/credentials are set up.

Images are added to the pipeline with the addtoqueue tool, which
uploads a directory of images under a prefix and adds a job for them
to the queue:
  addtoqueue -r 6 -b MyImages myimages

Each message on the filter queue is a prefix, optionally followed by a
radius (4 if not given) and "bin" to also binarise the output:

  example message: myimages
  example message: myimages 6 bin

The filterpipeline command watches the queue. When a job is found it
is hidden from the queue, and kept hidden with a "heartbeat" every
minute while it is processed, so if the process fails the job will
reappear after 2 minutes for another process to try. Every unfiltered
image under the prefix is downloaded, filtered, and the result
uploaded next to it named name_mean<radius>.png (and
name_mean<radius>_bin.png if binarised). The job is then deleted from
the queue. Jobs which can never succeed, such as a radius too large for
an image, are deleted from the queue rather than retried.

The results can be downloaded with getfiltered:
  getfiltered myimages

Local operation

All of the pipeline tools take a '-local dir' flag, which keeps the
storage and queue on disk under dir rather than in the cloud:

  addtoqueue -local /tmp/mf MyImages myimages
  filterpipeline -v -once -local /tmp/mf
  getfiltered -local /tmp/mf myimages
*/
package meanfilter
