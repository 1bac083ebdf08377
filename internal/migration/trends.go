package migration

import (
	"context"
	"fmt"
	"image/color"
	"math"

	"statcharts/lib/chart"
	"statcharts/lib/dataset"
	"statcharts/lib/palette"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const topCount = 10

// seriesColor cycles through the palette without black, the second
// round at half opacity.
func seriesColor(i int) color.Color {
	all := palette.All()[1:]
	c := all[i%len(all)]
	if i >= len(all) {
		return c.WithAlpha(0.5)
	}
	return c.RGBA()
}

func (j *Job) topCountriesFigure(frame dataset.Frame, footer string) (chart.Figure, error) {
	top := dataset.TotalLabels(dataset.Top(frame.Totals(countryKey, immigration), topCount))
	if len(top) == 0 {
		return chart.Figure{}, fmt.Errorf("no immigration by country of birth")
	}
	pivot := frame.Select(countryKey, top...).Pivot(countryKey, immigration)

	style := chart.Default.With(15*vg.Inch, 8*vg.Inch)
	p := style.NewPlot("Immigration by Country Over Time")
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Number of Immigrants"
	p.X.Tick.Marker = chart.Years{Years: pivot.Years, Every: 1}
	p.Y.Tick.Marker = chart.Thousands{}

	positions := make([]float64, len(pivot.Years))
	for i, y := range pivot.Years {
		positions[i] = float64(y)
	}
	base := make([]float64, len(pivot.Years))
	p.Legend.Add("Country of Birth")
	for i, country := range top {
		values := pivot.Column(country)
		bars := &chart.Bars{
			Positions: positions,
			Values:    values,
			Base:      append([]float64(nil), base...),
			Colors:    colors(seriesColor(i)),
			Width:     0.8,
		}
		chart.AddBars(p, country, bars)
		for k, v := range values {
			if !math.IsNaN(v) {
				base[k] += v
			}
		}
	}
	p.Legend.Left = false

	return chart.Figure{Plot: p, Style: style, Footer: footer}, nil
}

func (j *Job) topCountries(ctx context.Context, frame dataset.Frame, footer string) (string, error) {
	fig, err := j.topCountriesFigure(frame, footer)
	if err != nil {
		return "", err
	}
	return j.target.Chart(ctx, fig, fmt.Sprintf("Immigration by Country Over Time %s", yearSpan(frame)))
}

type countryGroup struct {
	name      string
	countries []string
	color     palette.Color
}

// asylumGroups are countries with many asylum applications, neighbouring
// countries that split or share a conflict are drawn as one line.
var asylumGroups = []countryGroup{
	{name: "Syria", countries: []string{"Syria"}, color: palette.Orange},
	{name: "Afghanistan", countries: []string{"Afghanistan"}, color: palette.LightBlue},
	{name: "Iraq", countries: []string{"Iraq"}, color: palette.Green},
	{name: "Horn of Africa", countries: []string{"Somalia", "Eritrea", "Ethiopia"}, color: palette.Blue},
	{name: "Former Yugoslavia", countries: []string{
		"Yugoslavia",
		"Serbia",
		"Serbia and Montenegro",
		"Croatia",
		"Montenegro",
		"Bosnia and Herzegovina",
	}, color: palette.RedOrange},
}

func (j *Job) asylumFigure(frame dataset.Frame, footer string) (chart.Figure, error) {
	style := chart.Default.With(12*vg.Inch, 6*vg.Inch)
	style.GridColor = palette.Black.WithAlpha(0.7)
	style.GridDashes = []vg.Length{vg.Points(3.7), vg.Points(1.6)}
	style.LabelSize = 10

	span := yearSpan(frame)
	p := style.NewPlot(fmt.Sprintf(
		"Immigration to Sweden from Countries\nwith Significant Asylum Applications %s", span,
	))
	p.Y.Label.Text = "Number of Immigrants"
	p.Y.Tick.Marker = chart.Thousands{}

	for _, g := range asylumGroups {
		points := frame.Select(countryKey, g.countries...).Series(immigration)
		if len(points) == 0 {
			j.tel.ReportWarning("asylum-group", g.name, "no rows")
			continue
		}
		err := chart.AddLine(p, g.name, chart.XYs(xs(points), ys(points, 1)), chart.LineOptions{
			Color:        g.color.RGBA(),
			MarkerRadius: vg.Points(2.5),
		})
		if err != nil {
			return chart.Figure{}, err
		}
	}

	return chart.Figure{Plot: p, Style: style, Footer: footer}, nil
}

func (j *Job) asylumCountries(ctx context.Context, frame dataset.Frame, footer string) (string, error) {
	fig, err := j.asylumFigure(frame, footer)
	if err != nil {
		return "", err
	}
	return j.target.Chart(ctx, fig, fmt.Sprintf(
		"Immigration to Sweden from Countries with Significant Asylum Applications %s", yearSpan(frame),
	))
}

func (j *Job) swedishBornFigure(frame dataset.Frame, footer string) (chart.Figure, error) {
	sweden := frame.Select(countryKey, "Sweden")
	if sweden.Len() == 0 {
		return chart.Figure{}, fmt.Errorf("no rows for people born in Sweden")
	}
	in := sweden.Series(immigration)
	out := sweden.Series(emigration)

	style := chart.Default.With(15*vg.Inch, 8*vg.Inch)
	style.GridColor = palette.Black.WithAlpha(0.5)
	style.GridDashes = []vg.Length{vg.Points(3.7), vg.Points(1.6)}

	p := style.NewPlot(fmt.Sprintf("Migration of Swedish-Born Individuals %s", yearSpan(sweden)))
	p.Y.Label.Text = "Number of People"
	p.Y.Tick.Marker = chart.Thousands{}
	p.X.Tick.Marker = chart.Years{Years: years(in), Every: 5}

	chart.AddBars(p, "Immigration", &chart.Bars{
		Positions: xs(in), Values: ys(in, 1), Colors: colors(palette.Blue.RGBA()), Width: 0.8,
	})
	chart.AddBars(p, "Emigration", &chart.Bars{
		Positions: xs(out), Values: ys(out, -1), Colors: colors(palette.RedOrange.RGBA()), Width: 0.8,
	})
	chart.AddZeroLine(p, draw.LineStyle{Color: palette.Black.RGBA(), Width: vg.Points(0.5)})
	p.Legend.Left = false

	return chart.Figure{Plot: p, Style: style, Footer: footer}, nil
}

func (j *Job) swedishBorn(ctx context.Context, frame dataset.Frame, footer string) (string, error) {
	fig, err := j.swedishBornFigure(frame, footer)
	if err != nil {
		return "", err
	}
	return j.target.Chart(ctx, fig, fmt.Sprintf(
		"Migration Flows of Swedish-Born Individuals %s", yearSpan(frame.Select(countryKey, "Sweden")),
	))
}
