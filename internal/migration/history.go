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
	"statcharts/lib/pxweb"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// populationChanges selects both sexes together and the population,
// births, deaths, immigration and emigration contents.
var populationChanges = map[string][]string{
	"Kon": {"1+2"},
	"ContentsCode": {
		"000000LV",
		"0000001H",
		"0000001F",
		"000000LX",
		"0000001G",
	},
}

// PopulationChanges fetches the yearly population changes since 1749.
func (j *Job) PopulationChanges(ctx context.Context) (dataset.Frame, []pxweb.SourceInfo, error) {
	frame, sources, err := j.client.GetTable(ctx, pxweb.PopulationChanges, populationChanges)
	if err != nil {
		return dataset.Frame{}, nil, err
	}
	for _, m := range []string{population, immigration, emigration} {
		if !frame.HasMeasure(m) {
			return dataset.Frame{}, nil, fmt.Errorf("population changes have no %s measure", m)
		}
	}
	return frame, sources, nil
}

type Flow struct {
	Year int
	In   float64
	Out  float64
}

func (f Flow) Net() float64 {
	return f.In - f.Out
}

// Flows returns immigration and emigration per year, leaving out the
// years before migration was recorded.
func Flows(frame dataset.Frame) []Flow {
	in := frame.Series(immigration)
	out := frame.Series(emigration)
	outByYear := make(map[int]float64, len(out))
	for _, p := range out {
		outByYear[p.Year] = p.Value
	}

	var flows []Flow
	for _, p := range in {
		o, ok := outByYear[p.Year]
		if !ok || math.IsNaN(o) || math.IsNaN(p.Value) {
			continue
		}
		flows = append(flows, Flow{Year: p.Year, In: p.Value, Out: o})
	}
	return flows
}

func historyFigure(flows []Flow, lang i18n.Language, footer string) (chart.Figure, error) {
	style := chart.History
	first, last := flows[0].Year, flows[len(flows)-1].Year
	p := style.NewPlot(fmt.Sprintf("%s (%d - %d)", lang.T(i18n.Title), first, last))
	p.Y.Label.Text = lang.T(i18n.YLabel)

	positions := make([]float64, len(flows))
	in := make([]float64, len(flows))
	out := make([]float64, len(flows))
	net := make([]float64, len(flows))
	for i, f := range flows {
		positions[i] = float64(f.Year)
		in[i] = f.In
		out[i] = -f.Out
		net[i] = f.Net()
	}

	emigrationBars := &chart.Bars{Positions: positions, Values: out, Colors: colors(palette.Orange.RGBA()), Width: 1}
	immigrationBars := &chart.Bars{Positions: positions, Values: in, Colors: colors(palette.LightBlue.RGBA()), Width: 1}
	p.Add(emigrationBars, immigrationBars)

	netLine, err := plotter.NewLine(chart.XYs(positions, net))
	if err != nil {
		return chart.Figure{}, err
	}
	netLine.LineStyle = draw.LineStyle{Color: palette.Black.WithAlpha(0.8), Width: vg.Points(1)}
	p.Add(netLine)
	chart.AddZeroLine(p, draw.LineStyle{Color: palette.Black.WithAlpha(0.6), Width: vg.Points(1)})

	// matplotlib's reversed legend: the net line on top
	p.Legend.Add(lang.T(i18n.NetMigration), netLine)
	p.Legend.Add(lang.T(i18n.Immigration), immigrationBars)
	p.Legend.Add(lang.T(i18n.Emigration), emigrationBars)

	p.X.Tick.Marker = chart.Step{Step: 10}
	p.Y.Tick.Marker = chart.Thousands{Inner: chart.Step{Step: 20_000}, Absolute: true}
	p.X.Min = float64(first) - 0.5
	p.X.Max = float64(last) + 0.5

	return chart.Figure{Plot: p, Style: style, Footer: footer}, nil
}

// History draws the full migration history once per language.
func (j *Job) History(ctx context.Context, langs ...i18n.Language) ([]string, error) {
	if len(langs) == 0 {
		langs = i18n.Languages()
	}
	frame, sources, err := j.PopulationChanges(ctx)
	if err != nil {
		return nil, err
	}
	flows := Flows(frame)
	if len(flows) == 0 {
		return nil, fmt.Errorf("population changes have no migration figures")
	}

	var paths []string
	for _, lang := range langs {
		fig, err := historyFigure(flows, lang, publish.Footer(sources, lang))
		if err != nil {
			return paths, err
		}
		name := fmt.Sprintf(
			"Annual Immigration and Emigration in Sweden (%d-%d)-%s",
			flows[0].Year, flows[len(flows)-1].Year, lang,
		)
		path, err := j.target.Chart(ctx, fig, name)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
