package migration

import (
	"context"
	"fmt"
	"math"

	"statcharts/internal/publish"
	"statcharts/lib/chart"
	"statcharts/lib/dataset"
	"statcharts/lib/i18n"
	"statcharts/lib/palette"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Rate is a migration rate per 1,000 inhabitants.
type Rate struct {
	Year        int
	Immigration float64
	Emigration  float64
}

func (r Rate) Net() float64 {
	return r.Immigration - r.Emigration
}

// Rates divides migration by the population of the same year. Years
// without a population or migration figure are left out.
func Rates(frame dataset.Frame) []Rate {
	pop := map[int]float64{}
	for _, p := range frame.Series(population) {
		pop[p.Year] = p.Value
	}

	var rates []Rate
	for _, f := range Flows(frame) {
		n, ok := pop[f.Year]
		if !ok || math.IsNaN(n) || n == 0 {
			continue
		}
		rates = append(rates, Rate{
			Year:        f.Year,
			Immigration: f.In / n * 1000,
			Emigration:  f.Out / n * 1000,
		})
	}
	return rates
}

// extremes returns the years of the highest and the lowest net rate.
func extremes(rates []Rate) (Rate, Rate) {
	peak, trough := rates[0], rates[0]
	for _, r := range rates[1:] {
		if r.Net() > peak.Net() {
			peak = r
		}
		if r.Net() < trough.Net() {
			trough = r
		}
	}
	return peak, trough
}

// annotationOffset is how far an annotation text sits from its point,
// in rate units.
const annotationOffset = 1.5

func ratesFigure(rates []Rate, footer string) (chart.Figure, error) {
	style := chart.History
	style.TitleSize = 20
	p := style.NewPlot("Migration Rates Over Time\nShowing Dramatic Shift from Emigration to Immigration Country")
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Rate per 1,000 inhabitants"

	x := make([]float64, len(rates))
	in := make([]float64, len(rates))
	out := make([]float64, len(rates))
	net := make([]float64, len(rates))
	for i, r := range rates {
		x[i] = float64(r.Year)
		in[i] = r.Immigration
		out[i] = r.Emigration
		net[i] = r.Net()
	}

	err := chart.AddArea(p, "Net migration rate", chart.XYs(x, net), palette.Green.WithAlpha(0.3))
	if err != nil {
		return chart.Figure{}, err
	}
	err = chart.AddLine(p, "Immigration rate", chart.XYs(x, in), chart.LineOptions{Color: palette.Blue.RGBA()})
	if err != nil {
		return chart.Figure{}, err
	}
	err = chart.AddLine(p, "Emigration rate", chart.XYs(x, out), chart.LineOptions{Color: palette.Orange.RGBA()})
	if err != nil {
		return chart.Figure{}, err
	}
	chart.AddZeroLine(p, draw.LineStyle{
		Color:  palette.Black.WithAlpha(0.3),
		Width:  vg.Points(1),
		Dashes: []vg.Length{vg.Points(3.7), vg.Points(1.6)},
	})

	peak, trough := extremes(rates)
	arrow := draw.LineStyle{Color: palette.Black.RGBA(), Width: vg.Points(1)}
	text := chart.TextStyle(style.FontSize, false, nil)
	p.Add(
		&chart.Annotation{
			Text: "Peak net migration",
			X:    float64(peak.Year), Y: peak.Net(),
			TextX: float64(peak.Year), TextY: peak.Net() + annotationOffset,
			Style: text, Arrow: arrow,
		},
		&chart.Annotation{
			Text: "Historical emigration period",
			X:    float64(trough.Year), Y: trough.Net(),
			TextX: float64(trough.Year), TextY: trough.Net() - annotationOffset,
			Style: text, Arrow: arrow,
		},
	)

	return chart.Figure{Plot: p, Style: style, Footer: footer}, nil
}

// MigrationRates draws immigration, emigration and net migration per
// 1,000 inhabitants.
func (j *Job) MigrationRates(ctx context.Context) (string, error) {
	frame, sources, err := j.PopulationChanges(ctx)
	if err != nil {
		return "", err
	}
	rates := Rates(frame)
	if len(rates) == 0 {
		return "", fmt.Errorf("population changes have no migration rates")
	}
	j.tel.ReportCount("rate-years", int64(len(rates)))

	fig, err := ratesFigure(rates, publish.Footer(sources, i18n.English))
	if err != nil {
		return "", err
	}
	return j.target.Chart(ctx, fig, fmt.Sprintf(
		"Migration Rates in Sweden (%d-%d)", rates[0].Year, rates[len(rates)-1].Year,
	))
}
