package chart

import (
	"fmt"
	"math"
	"strconv"

	"statcharts/lib/i18n"

	"gonum.org/v1/plot"
)

// Thousands relabels the major ticks of Inner with grouped integers
// ("20,000"). Absolute drops the sign, for charts where emigration is
// drawn below zero but counted as a positive number.
type Thousands struct {
	Inner    plot.Ticker
	Absolute bool
}

func (t Thousands) Ticks(min, max float64) []plot.Tick {
	inner := t.Inner
	if inner == nil {
		inner = plot.DefaultTicks{}
	}
	ticks := inner.Ticks(min, max)
	for i, tick := range ticks {
		if tick.Label == "" {
			continue
		}
		ticks[i].Label = formatThousands(tick.Value, t.Absolute)
	}
	return ticks
}

func formatThousands(v float64, absolute bool) string {
	n := int64(v)
	if absolute && n < 0 {
		n = -n
	}
	return i18n.FormatInt(n, i18n.English)
}

// Step places a labelled tick on every multiple of Step.
type Step struct {
	Step   float64
	Format func(v float64) string
}

func (t Step) Ticks(min, max float64) []plot.Tick {
	if t.Step <= 0 || min > max {
		return nil
	}
	format := t.Format
	if format == nil {
		format = func(v float64) string {
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	var ticks []plot.Tick
	for i := math.Ceil(min / t.Step); i*t.Step <= max; i++ {
		v := i * t.Step
		if v == 0 {
			// avoid "-0"
			v = 0
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: format(v)})
	}
	return ticks
}

// Percent labels the ticks of Inner as percentages. Scale is the value
// that means 100%, 1 for fractions and 100 for values already in
// percent.
type Percent struct {
	Inner    plot.Ticker
	Scale    float64
	Decimals int
}

func (t Percent) Ticks(min, max float64) []plot.Tick {
	inner := t.Inner
	if inner == nil {
		inner = plot.DefaultTicks{}
	}
	scale := t.Scale
	if scale == 0 {
		scale = 1
	}
	ticks := inner.Ticks(min, max)
	for i, tick := range ticks {
		if tick.Label == "" {
			continue
		}
		ticks[i].Label = fmt.Sprintf("%.*f%%", t.Decimals, tick.Value/scale*100)
	}
	return ticks
}

// Years puts a tick under every year and labels the years divisible by
// Every together with the last year.
type Years struct {
	Years []int
	Every int
}

func (t Years) Ticks(min, max float64) []plot.Tick {
	last := math.MinInt
	for _, y := range t.Years {
		if y > last {
			last = y
		}
	}
	every := t.Every
	if every <= 0 {
		every = 1
	}

	ticks := make([]plot.Tick, 0, len(t.Years))
	for _, y := range t.Years {
		v := float64(y)
		if v < min || v > max {
			continue
		}
		label := ""
		if y%every == 0 || y == last {
			label = strconv.Itoa(y)
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: label})
	}
	return ticks
}
