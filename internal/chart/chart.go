// Package chart renders aggregation results as PNG files using gonum/plot.
//
// Empty aggregations are not errors here: the chart is rendered blank, with
// axes and title intact, so a run never silently drops an analysis output.
// Callers log the emptiness; this package just draws what it is given.
package chart

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/shelfstats/shelfstats/internal/analyze"
)

// Options controls titles and axis labels of a rendered chart.
type Options struct {
	Title  string
	XLabel string
	YLabel string
}

const (
	width  = 8 * vg.Inch
	height = 5 * vg.Inch
)

// Point is one scatter marker.
type Point struct {
	X float64
	Y float64
}

// Bar renders category counts as a bar chart PNG.
func Bar(counts []analyze.Count, path string, o Options) error {
	p := newPlot(o)

	// Zero buckets still yields a saved blank chart.
	if len(counts) > 0 {
		values := make(plotter.Values, len(counts))
		labels := make([]string, len(counts))
		for i, c := range counts {
			values[i] = float64(c.N)
			labels[i] = c.Key
		}

		bars, err := plotter.NewBarChart(values, vg.Points(24))
		if err != nil {
			return fmt.Errorf("bar chart: %w", err)
		}
		bars.LineStyle.Width = 0
		bars.Color = plotutil.Color(0)
		p.Add(bars)
		p.NominalX(labels...)
	}

	return save(p, path)
}

// Histogram renders a value distribution PNG with the given bin count.
func Histogram(values []float64, bins int, path string, o Options) error {
	p := newPlot(o)

	// gonum's histogram plotter rejects empty input; a blank plot is the
	// wanted output in that case.
	if len(values) > 0 {
		hist, err := plotter.NewHist(plotter.Values(values), bins)
		if err != nil {
			return fmt.Errorf("histogram: %w", err)
		}
		hist.FillColor = plotutil.Color(2)
		p.Add(hist)
	}

	return save(p, path)
}

// Scatter renders X/Y points as a scatter plot PNG.
func Scatter(points []Point, path string, o Options) error {
	p := newPlot(o)

	if len(points) > 0 {
		xys := make(plotter.XYs, len(points))
		for i, pt := range points {
			xys[i].X = pt.X
			xys[i].Y = pt.Y
		}

		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("scatter: %w", err)
		}
		scatter.GlyphStyle.Color = plotutil.Color(1)
		scatter.GlyphStyle.Radius = vg.Points(2.5)
		p.Add(scatter)
		p.Add(plotter.NewGrid())
	}

	return save(p, path)
}

func newPlot(o Options) *plot.Plot {
	p := plot.New()
	p.Title.Text = o.Title
	p.X.Label.Text = o.XLabel
	p.Y.Label.Text = o.YLabel
	return p
}

func save(p *plot.Plot, path string) error {
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
