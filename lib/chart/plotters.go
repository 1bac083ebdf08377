package chart

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Bars draws one rectangle per value, centered on its position with a
// width in data units. Horizontal bars grow along x from Base and are
// positioned on y.
type Bars struct {
	Positions []float64
	Values    []float64
	// Base is where each bar starts, zero when nil. Stacked bars pass
	// the running total of the bars below.
	Base []float64
	// Colors holds one colour per bar, or a single colour for all of them.
	Colors     []color.Color
	Width      float64
	Horizontal bool
}

func (b *Bars) color(i int) color.Color {
	switch {
	case len(b.Colors) == 0:
		return color.Black
	case len(b.Colors) == 1:
		return b.Colors[0]
	case i < len(b.Colors):
		return b.Colors[i]
	default:
		return b.Colors[len(b.Colors)-1]
	}
}

func (b *Bars) base(i int) float64 {
	if i < len(b.Base) && !math.IsNaN(b.Base[i]) {
		return b.Base[i]
	}
	return 0
}

func (b *Bars) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	half := b.Width / 2

	for i, v := range b.Values {
		if i >= len(b.Positions) || math.IsNaN(v) {
			continue
		}
		pos := b.Positions[i]
		from := b.base(i)
		to := from + v

		var pts []vg.Point
		if b.Horizontal {
			x0, x1 := trX(from), trX(to)
			y0, y1 := trY(pos-half), trY(pos+half)
			pts = []vg.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
		} else {
			x0, x1 := trX(pos-half), trX(pos+half)
			y0, y1 := trY(from), trY(to)
			pts = []vg.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
		}
		c.FillPolygon(b.color(i), c.ClipPolygonXY(pts))
	}
}

func (b *Bars) DataRange() (xmin, xmax, ymin, ymax float64) {
	pmin, pmax := math.Inf(1), math.Inf(-1)
	vmin, vmax := 0.0, 0.0
	for i, v := range b.Values {
		if i >= len(b.Positions) || math.IsNaN(v) {
			continue
		}
		pmin = math.Min(pmin, b.Positions[i]-b.Width/2)
		pmax = math.Max(pmax, b.Positions[i]+b.Width/2)
		from := b.base(i)
		vmin = math.Min(vmin, math.Min(from, from+v))
		vmax = math.Max(vmax, math.Max(from, from+v))
	}
	if math.IsInf(pmin, 1) {
		pmin, pmax = 0, 0
	}
	if b.Horizontal {
		return vmin, vmax, pmin, pmax
	}
	return pmin, pmax, vmin, vmax
}

func (b *Bars) Thumbnail(c *draw.Canvas) {
	Swatch{Color: b.color(0)}.Thumbnail(c)
}

// Swatch is a legend entry drawn as a filled box.
type Swatch struct {
	Color color.Color
}

func (s Swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(s.Color, c.ClipPolygonY(pts))
}

// Annotation is a text with an arrow pointing at a data point.
type Annotation struct {
	Text  string
	X, Y  float64
	TextX float64
	TextY float64
	Style text.Style
	Arrow draw.LineStyle
}

const arrowHead = vg.Length(6)

func (a *Annotation) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	target := vg.Point{X: trX(a.X), Y: trY(a.Y)}
	origin := vg.Point{X: trX(a.TextX), Y: trY(a.TextY)}

	sty := a.Style
	sty.XAlign = draw.XCenter
	// text above the point is anchored at its bottom, below at its top
	start := origin
	if a.TextY >= a.Y {
		sty.YAlign = draw.YBottom
	} else {
		sty.YAlign = draw.YTop
	}
	c.FillText(sty, origin, a.Text)

	dx, dy := target.X-start.X, target.Y-start.Y
	length := vg.Length(math.Hypot(float64(dx), float64(dy)))
	if length <= arrowHead {
		return
	}
	ux, uy := dx/length, dy/length
	// stop short of the point like matplotlib's shrink
	tip := vg.Point{X: target.X - ux*2, Y: target.Y - uy*2}
	neck := vg.Point{X: tip.X - ux*arrowHead, Y: tip.Y - uy*arrowHead}
	c.StrokeLine2(a.Arrow, start.X, start.Y, neck.X, neck.Y)
	c.FillPolygon(a.Arrow.Color, []vg.Point{
		tip,
		{X: neck.X - uy*arrowHead/2, Y: neck.Y + ux*arrowHead/2},
		{X: neck.X + uy*arrowHead/2, Y: neck.Y - ux*arrowHead/2},
	})
}

func (a *Annotation) DataRange() (xmin, xmax, ymin, ymax float64) {
	return math.Min(a.X, a.TextX), math.Max(a.X, a.TextX), math.Min(a.Y, a.TextY), math.Max(a.Y, a.TextY)
}
