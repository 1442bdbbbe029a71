// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package meanfilter

import (
	"bytes"
	"fmt"
	"io"

	"github.com/nickjwhite/gofpdf"
)

const pageWidth = 5 // pageWidth in inches
const captionHeight = 24

// pxToPt converts a pixel value into a pt value (72 pts per inch)
// This uses pageWidth to determine the appropriate value
func pxToPt(i int) float64 {
	return float64(i) / pageWidth
}

// Report is a PDF with one page per image, each captioned, used to
// compare the output of different radii.
type Report struct {
	fpdf  *gofpdf.Fpdf
	pages int
}

// Setup creates a new PDF with appropriate settings and fonts
func (p *Report) Setup() error {
	p.fpdf = gofpdf.New("P", "pt", "A4", "")
	p.fpdf.SetFont("Helvetica", "", 10)
	p.fpdf.SetAutoPageBreak(false, float64(0))
	return p.fpdf.Error()
}

// AddPage adds a page sized to fit g, with caption written beneath it
func (p *Report) AddPage(g *Grid, caption string) error {
	var buf bytes.Buffer
	err := Save(&buf, g)
	if err != nil {
		return fmt.Errorf("Could not encode image for page %d: %w", p.pages+1, err)
	}

	w, h := pxToPt(g.Width()), pxToPt(g.Height())
	p.fpdf.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h + captionHeight})

	name := fmt.Sprintf("page%d", p.pages)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	_ = p.fpdf.RegisterImageOptionsReader(name, opts, &buf)
	p.fpdf.ImageOptions(name, 0, 0, w, h, false, opts, 0, "")

	p.fpdf.SetXY(0, h)
	p.fpdf.CellFormat(w, captionHeight, caption, "", 0, "C", false, 0, "")
	p.pages++

	return p.fpdf.Error()
}

// Pages returns the number of pages added so far.
func (p *Report) Pages() int {
	return p.pages
}

// Output writes the PDF to w and closes it.
func (p *Report) Output(w io.Writer) error {
	return p.fpdf.Output(w)
}

// Save saves the PDF to the file at path
func (p *Report) Save(path string) error {
	return p.fpdf.OutputFileAndClose(path)
}

// CompareRadii builds a Report with the original grid on the first
// page followed by one page per radius. Pages are shrunk so their
// longest side is at most maxdim pixels, if maxdim is positive.
func CompareRadii(g *Grid, radii []int, maxdim int) (*Report, error) {
	var p Report
	err := p.Setup()
	if err != nil {
		return nil, fmt.Errorf("Error setting up PDF: %w", err)
	}

	page := func(img *Grid, caption string) error {
		if maxdim > 0 {
			img, err = Scale(img, maxdim)
			if err != nil {
				return err
			}
		}
		return p.AddPage(img, caption)
	}

	err = page(g, "Original")
	if err != nil {
		return nil, err
	}
	for _, r := range radii {
		out, err := Filter(g, r)
		if err != nil {
			return nil, fmt.Errorf("Error filtering with radius %d: %w", r, err)
		}
		err = page(out, fmt.Sprintf("Radius %d", r))
		if err != nil {
			return nil, err
		}
	}
	return &p, nil
}
