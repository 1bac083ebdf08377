// Package chart wraps gonum/plot with the house style of the published
// charts: Liberation Sans, bold titles, dashed grids and a source footer
// under every figure.
package chart

import (
	"image/color"
	"math"

	"statcharts/lib/palette"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var sans = font.Font{Typeface: "Liberation", Variant: "Sans"}

// Font returns Liberation Sans at a size, optionally bold.
func Font(size vg.Length, bold bool) font.Font {
	f := font.From(sans, size)
	if bold {
		f.Weight = xfont.WeightBold
	}
	return f
}

// TextStyle is a left aligned, bottom anchored text style.
func TextStyle(size vg.Length, bold bool, c color.Color) text.Style {
	if c == nil {
		c = color.Black
	}
	return text.Style{
		Color:   c,
		Font:    Font(size, bold),
		XAlign:  draw.XLeft,
		YAlign:  draw.YBottom,
		Handler: plot.DefaultTextHandler,
	}
}

type Style struct {
	Width  vg.Length
	Height vg.Length

	FontSize     vg.Length
	TitleSize    vg.Length
	TitleBold    bool
	TitlePadding vg.Length
	LabelSize    vg.Length
	TickSize     vg.Length
	LegendSize   vg.Length
	SubtitleSize vg.Length
	FooterSize   vg.Length

	GridColor  color.Color
	GridDashes []vg.Length
	// GridX and GridY toggle the vertical and horizontal grid lines.
	GridX bool
	GridY bool
}

// Default is the style of the by-country and annual charts.
var Default = Style{
	Width:        12 * vg.Inch,
	Height:       8 * vg.Inch,
	FontSize:     14,
	TitleSize:    20,
	TitleBold:    true,
	TitlePadding: 24,
	LabelSize:    16,
	TickSize:     14,
	LegendSize:   14,
	SubtitleSize: 14,
	FooterSize:   10,
	GridColor:    palette.Black.WithAlpha(0.3),
	GridX:        true,
	GridY:        true,
}

// History is the style of the long running series, a wider aspect with
// larger titles and smaller axis labels.
var History = Style{
	Width:        12 * vg.Inch,
	Height:       6 * vg.Inch,
	FontSize:     14,
	TitleSize:    22,
	TitleBold:    true,
	TitlePadding: 15,
	LabelSize:    12,
	TickSize:     14,
	LegendSize:   14,
	SubtitleSize: 14,
	FooterSize:   10,
	GridColor:    palette.Black.WithAlpha(0.5),
	GridDashes:   []vg.Length{vg.Points(3.7), vg.Points(1.6)},
	GridX:        true,
	GridY:        true,
}

// With returns a copy of the style with a different canvas size.
func (s Style) With(width, height vg.Length) Style {
	s.Width = width
	s.Height = height
	return s
}

// NewPlot creates a plot with the fonts, grid and legend of the style.
func (s Style) NewPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle = TextStyle(s.TitleSize, s.TitleBold, nil)
	p.Title.TextStyle.XAlign = draw.XCenter
	p.Title.TextStyle.YAlign = draw.YTop
	p.Title.Padding = s.TitlePadding

	for _, axis := range []*plot.Axis{&p.X, &p.Y} {
		axis.Label.TextStyle = TextStyle(s.LabelSize, false, nil)
		axis.Label.TextStyle.XAlign = draw.XCenter
		axis.Tick.Label = TextStyle(s.TickSize, false, nil)
	}
	p.X.Tick.Label.XAlign = draw.XCenter
	p.X.Tick.Label.YAlign = draw.YTop
	p.Y.Tick.Label.XAlign = draw.XRight
	p.Y.Tick.Label.YAlign = draw.YCenter
	p.Y.Label.TextStyle.Rotation = math.Pi / 2

	p.Legend.TextStyle = TextStyle(s.LegendSize, false, nil)
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.Padding = vg.Points(4)

	if s.GridX || s.GridY {
		grid := plotter.NewGrid()
		grid.Vertical.Color = s.GridColor
		grid.Vertical.Dashes = s.GridDashes
		grid.Horizontal.Color = s.GridColor
		grid.Horizontal.Dashes = s.GridDashes
		if !s.GridX {
			grid.Vertical.Color = nil
		}
		if !s.GridY {
			grid.Horizontal.Color = nil
		}
		p.Add(grid)
	}

	return p
}
