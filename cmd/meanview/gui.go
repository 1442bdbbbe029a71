// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"rescribe.xyz/meanfilter"
)

// maxRadius is the largest radius whose window fits in g
func maxRadius(g *meanfilter.Grid) int {
	m := g.Width()
	if g.Height() < m {
		m = g.Height()
	}
	return m / 2
}

// view holds the grid being shown, scaled for display
type view struct {
	orig    *meanfilter.Grid
	out     *meanfilter.Grid
	renders int
}

// load scales g to fit in size (if size is positive) and sets it as
// the original
func (v *view) load(g *meanfilter.Grid, size int) error {
	var err error
	if size > 0 {
		g, err = meanfilter.Scale(g, size)
		if err != nil {
			return err
		}
	}
	v.orig = g
	v.out = nil
	return nil
}

// render filters the original with radius r, returning both the
// original and the filtered result ready to be drawn
func (v *view) render(r int) (*image.RGBA, *image.RGBA, error) {
	if v.orig == nil {
		return nil, nil, fmt.Errorf("No image loaded")
	}
	v.renders++
	out, err := meanfilter.FilterParallel(v.orig, r, 0)
	if err != nil {
		return nil, nil, err
	}
	v.out = out
	left, err := meanfilter.ToRGBA(v.orig)
	if err != nil {
		return nil, nil, err
	}
	right, err := meanfilter.ToRGBA(out)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// viewer is the window content: the two images, the radius slider
// and a status line
type viewer struct {
	v      view
	radius int
	size   int

	origimg, filtimg    *canvas.Image
	status, radiuslabel *widget.Label
	slider              *widget.Slider
	savebtn             *widget.Button
}

func newViewer(radius int, size int) *viewer {
	w := &viewer{radius: radius, size: size}

	blank := image.NewRGBA(image.Rect(0, 0, 1, 1))
	w.origimg = canvas.NewImageFromImage(blank)
	w.origimg.FillMode = canvas.ImageFillContain
	w.origimg.SetMinSize(fyne.NewSize(320, 320))
	w.filtimg = canvas.NewImageFromImage(blank)
	w.filtimg.FillMode = canvas.ImageFillContain
	w.filtimg.SetMinSize(fyne.NewSize(320, 320))

	w.status = widget.NewLabel("")
	w.radiuslabel = widget.NewLabel("")

	w.slider = widget.NewSlider(1, 2)
	w.slider.Step = 1
	w.slider.OnChanged = func(f float64) {
		if w.v.orig == nil {
			return
		}
		w.radius = int(f)
		w.update()
	}

	w.savebtn = widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), nil)
	w.savebtn.Disable()

	return w
}

// update redraws both images with the current radius
func (w *viewer) update() {
	w.radiuslabel.SetText(fmt.Sprintf("Radius %d", w.radius))
	left, right, err := w.v.render(w.radius)
	if err != nil {
		w.status.SetText(fmt.Sprintf("Error: %v", err))
		w.savebtn.Disable()
		return
	}
	w.status.SetText("")
	w.origimg.Image = left
	w.origimg.Refresh()
	w.filtimg.Image = right
	w.filtimg.Refresh()
	w.savebtn.Enable()
}

// show loads g, clamps the radius to what it allows, and draws it
func (w *viewer) show(g *meanfilter.Grid) {
	err := w.v.load(g, w.size)
	if err != nil {
		w.status.SetText(fmt.Sprintf("Error loading image: %v", err))
		return
	}
	maxr := maxRadius(w.v.orig)
	if maxr < 1 {
		w.status.SetText("Image is too small to filter")
		return
	}
	if w.radius > maxr {
		w.radius = maxr
	}
	if w.radius < 1 {
		w.radius = 1
	}
	// set the slider directly, as SetValue would filter the image
	// again through OnChanged
	w.slider.Max = float64(maxr)
	w.slider.Value = float64(w.radius)
	w.slider.Refresh()
	w.update()
}

// startGui starts the gui process
func startGui(g *meanfilter.Grid, radius int, size int) {
	myApp := app.New()
	myWindow := myApp.NewWindow("Mean filter")

	w := newViewer(radius, size)

	openbtn := widget.NewButtonWithIcon("Open", theme.FolderOpenIcon(), func() {
		dialog.ShowFileOpen(func(f fyne.URIReadCloser, err error) {
			if err != nil || f == nil {
				return
			}
			defer f.Close()
			g, err := meanfilter.Load(f)
			if err != nil {
				w.status.SetText(fmt.Sprintf("Error loading %s: %v", f.URI().Name(), err))
				return
			}
			w.show(g)
		}, myWindow)
	})

	w.savebtn.OnTapped = func() {
		dialog.ShowFileSave(func(f fyne.URIWriteCloser, err error) {
			if err != nil || f == nil {
				return
			}
			defer f.Close()
			err = meanfilter.Save(f, w.v.out)
			if err != nil {
				w.status.SetText(fmt.Sprintf("Error saving %s: %v", f.URI().Name(), err))
			}
		}, myWindow)
	}

	controls := container.NewBorder(nil, nil, container.NewHBox(openbtn, w.savebtn), w.radiuslabel, w.slider)
	images := container.NewGridWithColumns(2, w.origimg, w.filtimg)
	content := container.NewBorder(controls, w.status, nil, nil, images)

	myWindow.SetContent(content)
	myWindow.Resize(fyne.NewSize(900, 500))

	if g != nil {
		w.show(g)
	}

	myWindow.ShowAndRun()
}
