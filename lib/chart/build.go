package chart

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// XYs pairs two equally long slices, dropping points where either
// value is NaN.
func XYs(xs, ys []float64) plotter.XYs {
	out := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		if i >= len(ys) || math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		out = append(out, plotter.XY{X: xs[i], Y: ys[i]})
	}
	return out
}

type LineOptions struct {
	Color  color.Color
	Width  vg.Length
	Dashes []vg.Length
	// MarkerRadius draws a circle on every point when non zero.
	MarkerRadius vg.Length
}

// AddLine draws a series and adds it to the legend when name is set.
func AddLine(p *plot.Plot, name string, xys plotter.XYs, opts LineOptions) error {
	if opts.Width == 0 {
		opts.Width = vg.Points(2)
	}

	if opts.MarkerRadius == 0 {
		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.LineStyle = draw.LineStyle{Color: opts.Color, Width: opts.Width, Dashes: opts.Dashes}
		p.Add(line)
		if name != "" {
			p.Legend.Add(name, line)
		}
		return nil
	}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return err
	}
	line.LineStyle = draw.LineStyle{Color: opts.Color, Width: opts.Width, Dashes: opts.Dashes}
	points.GlyphStyle = draw.GlyphStyle{Color: opts.Color, Radius: opts.MarkerRadius, Shape: draw.CircleGlyph{}}
	p.Add(line, points)
	if name != "" {
		p.Legend.Add(name, line, points)
	}
	return nil
}

// AddArea fills the space between a series and zero.
func AddArea(p *plot.Plot, name string, xys plotter.XYs, fill color.Color) error {
	if len(xys) == 0 {
		return nil
	}
	outline := make(plotter.XYs, 0, len(xys)*2)
	outline = append(outline, xys...)
	for i := len(xys) - 1; i >= 0; i-- {
		outline = append(outline, plotter.XY{X: xys[i].X, Y: 0})
	}
	poly, err := plotter.NewPolygon(outline)
	if err != nil {
		return err
	}
	poly.Color = fill
	poly.LineStyle.Width = 0
	p.Add(poly)
	if name != "" {
		p.Legend.Add(name, Swatch{Color: fill})
	}
	return nil
}

// AddZeroLine draws a horizontal line at y = 0 across the whole plot.
func AddZeroLine(p *plot.Plot, sty draw.LineStyle) {
	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.LineStyle = sty
	p.Add(zero)
}

// AddBars adds a bar series and its legend entry when name is set.
func AddBars(p *plot.Plot, name string, bars *Bars) {
	p.Add(bars)
	if name != "" {
		p.Legend.Add(name, bars)
	}
}

// Label is a text drawn at a data point.
type Label struct {
	X, Y  float64
	Text  string
	Style text.Style
}

// AddLabels draws texts at data points, each with its own style.
func AddLabels(p *plot.Plot, labels []Label) error {
	if len(labels) == 0 {
		return nil
	}
	xys := make(plotter.XYs, len(labels))
	texts := make([]string, len(labels))
	for i, l := range labels {
		xys[i] = plotter.XY{X: l.X, Y: l.Y}
		texts[i] = l.Text
	}
	plotted, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return err
	}
	for i, l := range labels {
		plotted.TextStyle[i] = l.Style
	}
	p.Add(plotted)
	return nil
}

// LegendEntry adds a colour box to the legend without plotting anything.
func LegendEntry(p *plot.Plot, name string, c color.Color) {
	p.Legend.Add(name, Swatch{Color: c})
}
