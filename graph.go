// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package meanfilter

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/wcharczuk/go-chart/v2"
)

const maxticks = 40

// Timing records how long each filter took on a grid for one radius.
// Brute is zero if the brute force filter was not timed.
type Timing struct {
	Radius         int
	Rolling, Brute time.Duration
}

// TimeRadii times Filter on g for each radius, and BruteForce too if
// brute is set.
func TimeRadii(g *Grid, radii []int, brute bool) ([]Timing, error) {
	var timings []Timing
	for _, r := range radii {
		var t Timing
		t.Radius = r

		start := time.Now()
		_, err := Filter(g, r)
		if err != nil {
			return timings, fmt.Errorf("Error filtering with radius %d: %w", r, err)
		}
		t.Rolling = time.Since(start)

		if brute {
			start = time.Now()
			_, err = BruteForce(g, r)
			if err != nil {
				return timings, fmt.Errorf("Error brute force filtering with radius %d: %w", r, err)
			}
			t.Brute = time.Since(start)
		}

		timings = append(timings, t)
	}
	return timings, nil
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Graph draws a png graph of filter time against radius
func Graph(timings []Timing, title string, w io.Writer) error {
	if len(timings) < 2 {
		return errors.New("Not enough timings to graph")
	}

	sorted := make([]Timing, len(timings))
	copy(sorted, timings)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Radius < sorted[j].Radius })

	var xvalues, rolling, brute []float64
	var ticks []chart.Tick
	hasBrute := false
	tickevery := len(sorted) / maxticks
	if tickevery < 1 {
		tickevery = 1
	}
	for i, t := range sorted {
		x := float64(t.Radius)
		xvalues = append(xvalues, x)
		rolling = append(rolling, ms(t.Rolling))
		brute = append(brute, ms(t.Brute))
		if t.Brute > 0 {
			hasBrute = true
		}
		if i%tickevery == 0 {
			ticks = append(ticks, chart.Tick{Value: x, Label: fmt.Sprintf("%d", t.Radius)})
		}
	}
	final := sorted[len(sorted)-1]
	ticks[len(ticks)-1] = chart.Tick{Value: float64(final.Radius), Label: fmt.Sprintf("%d", final.Radius)}

	graph := chart.Chart{
		Title:  title,
		Width:  1920,
		Height: 1080,
		XAxis: chart.XAxis{
			Name:  "Radius",
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name: "Milliseconds",
			Range: &chart.ContinuousRange{
				Min: 0.0,
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "Rolling sums",
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
				},
				XValues: xvalues,
				YValues: rolling,
			},
		},
	}
	if hasBrute {
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name: "Brute force",
			Style: chart.Style{
				StrokeColor:     chart.ColorRed,
				StrokeDashArray: []float64{5.0, 5.0},
			},
			XValues: xvalues,
			YValues: brute,
		})
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}
