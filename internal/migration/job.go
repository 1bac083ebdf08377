// Package migration draws the Swedish migration charts: flows by
// country of birth, annual totals, the full history since 1875 and
// migration rates.
package migration

import (
	"fmt"
	"image/color"

	"statcharts/internal/publish"
	"statcharts/internal/telemetry"
	"statcharts/lib/dataset"
	"statcharts/lib/i18n"
	"statcharts/lib/palette"
	"statcharts/lib/pxweb"
)

const (
	countryKey  = "country_of_birth"
	immigration = "immigrations"
	emigration  = "emigrations"
	population  = "population"
)

type Options struct {
	Client    *pxweb.Client
	Target    publish.Target
	Telemetry telemetry.API
}

type Job struct {
	client *pxweb.Client
	target publish.Target
	tel    telemetry.API
}

func New(opts Options) *Job {
	return &Job{
		client: opts.Client,
		target: opts.Target,
		tel:    telemetry.NewScopedAPI("migration", opts.Telemetry),
	}
}

// yearSpan renders "(2000-2023)" for the years of a frame.
func yearSpan(frame dataset.Frame) string {
	years := frame.Years()
	if len(years) == 0 {
		return ""
	}
	return fmt.Sprintf("(%d-%d)", years[0], years[len(years)-1])
}

func years(points []dataset.Point) []int {
	out := make([]int, len(points))
	for i, p := range points {
		out[i] = p.Year
	}
	return out
}

func xs(points []dataset.Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = float64(p.Year)
	}
	return out
}

func ys(points []dataset.Point, scale float64) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Value * scale
	}
	return out
}

func colors(c color.Color) []color.Color {
	return []color.Color{c}
}

func rgba(hex string) color.Color {
	c, err := palette.Parse(hex)
	if err != nil {
		return color.Black
	}
	return c
}

func footerText(sources []pxweb.SourceInfo) string {
	return publish.Footer(sources, i18n.English)
}
