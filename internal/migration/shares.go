package migration

import (
	"context"
	"fmt"
	"image/color"
	"math"

	"statcharts/lib/chart"
	"statcharts/lib/dataset"
	"statcharts/lib/palette"

	"gonum.org/v1/plot/vg/draw"
)

// shareThreshold is the smallest share in percent a country needs to
// get its own bar.
const shareThreshold = 2

type legendEntry struct {
	label string
	color palette.Color
}

type shareChart struct {
	measure string
	title   string
	xLabel  string
	colors  map[string]palette.Color
	legend  []legendEntry
	// outside draws the value label of a bar to the right of it.
	outside func(country string) bool
}

var immigrationShares = shareChart{
	measure: immigration,
	title:   "Share of Total Immigration to Sweden by Country of Birth",
	xLabel:  "Percentage of Total Immigration",
	colors: map[string]palette.Color{
		"Sweden":      palette.Blue,
		"Norway":      palette.LightBlue,
		"Denmark":     palette.LightBlue,
		"Finland":     palette.LightBlue,
		"Germany":     palette.Green,
		"Poland":      palette.Green,
		"Somalia":     palette.Orange,
		"China":       palette.Pink,
		"India":       palette.Pink,
		"Iran":        palette.RedOrange,
		"Afghanistan": palette.RedOrange,
		"Iraq":        palette.RedOrange,
		"Syria":       palette.RedOrange,
	},
	legend: []legendEntry{
		{"Sweden", palette.Blue},
		{"Nordic Countries", palette.LightBlue},
		{"Other European Countries", palette.Green},
		{"Africa", palette.Orange},
		{"Middle East and Central Asia", palette.RedOrange},
		{"East and South Asia", palette.Pink},
	},
	outside: func(string) bool { return false },
}

var emigrationShares = shareChart{
	measure: emigration,
	title:   "Share of Total Emigration from Sweden by Country of Birth",
	xLabel:  "Percentage of Total Emigration",
	colors: map[string]palette.Color{
		"Sweden":  palette.Blue,
		"Finland": palette.LightBlue,
		"Denmark": palette.LightBlue,
		"Norway":  palette.LightBlue,
		"Iraq":    palette.Orange,
		"Germany": palette.Green,
		"Poland":  palette.Green,
		"India":   palette.Pink,
		"China":   palette.Pink,
		"USA":     palette.RedOrange,
	},
	legend: []legendEntry{
		{"Sweden", palette.Blue},
		{"Nordic Countries", palette.LightBlue},
		{"Other European Countries", palette.Green},
		{"Middle East", palette.Orange},
		{"Asia", palette.Pink},
		{"Americas", palette.RedOrange},
	},
	outside: func(country string) bool { return country != "Sweden" },
}

// significantShares returns the countries with at least shareThreshold
// percent of a measure, smallest first.
func significantShares(frame dataset.Frame, measure string) []dataset.Total {
	shares := dataset.Shares(frame.Totals(countryKey, measure))
	return dataset.Ascending(dataset.AtLeast(shares, shareThreshold))
}

func (j *Job) barColor(sc shareChart, country string, i int) color.Color {
	c, ok := sc.colors[country]
	if ok {
		return c.RGBA()
	}
	// a country that grew past the threshold since the colours were picked
	j.tel.ReportWarning("share-colour", sc.measure, country)
	all := palette.All()
	return all[1+i%(len(all)-1)].RGBA()
}

func (j *Job) shareFigure(sc shareChart, frame dataset.Frame, footer string) (chart.Figure, error) {
	shares := significantShares(frame, sc.measure)
	if len(shares) == 0 {
		return chart.Figure{}, fmt.Errorf("no country has %d%% of %s", shareThreshold, sc.measure)
	}

	style := chart.Default
	style.GridY = false
	p := style.NewPlot(fmt.Sprintf("%s %s", sc.title, yearSpan(frame)))
	p.X.Label.Text = sc.xLabel

	bars := &chart.Bars{Width: 0.8, Horizontal: true}
	names := make([]string, len(shares))
	var labels []chart.Label
	maxShare := 0.0
	for i, s := range shares {
		names[i] = s.Label
		bars.Positions = append(bars.Positions, float64(i))
		bars.Values = append(bars.Values, s.Value)
		bars.Colors = append(bars.Colors, j.barColor(sc, s.Label, i))
		maxShare = math.Max(maxShare, s.Value)

		text := fmt.Sprintf("%.1f%%", s.Value)
		if sc.outside(s.Label) {
			sty := chart.TextStyle(style.FontSize, false, color.Black)
			sty.YAlign = draw.YCenter
			labels = append(labels, chart.Label{X: s.Value + 0.1, Y: float64(i), Text: text, Style: sty})
			continue
		}
		sty := chart.TextStyle(style.FontSize, false, color.White)
		sty.XAlign = draw.XRight
		sty.YAlign = draw.YCenter
		labels = append(labels, chart.Label{X: s.Value - 0.1, Y: float64(i), Text: text, Style: sty})
	}
	p.Add(bars)
	err := chart.AddLabels(p, labels)
	if err != nil {
		return chart.Figure{}, err
	}

	p.Y.Tick.Marker = chart.Step{Step: 1, Format: func(v float64) string {
		i := int(math.Round(v))
		if i < 0 || i >= len(names) {
			return ""
		}
		return names[i]
	}}
	p.Y.Min = -0.5
	p.Y.Max = float64(len(shares)) - 0.5
	p.X.Min = 0
	p.X.Max = math.Ceil(maxShare)

	for _, e := range sc.legend {
		chart.LegendEntry(p, e.label, e.color.RGBA())
	}
	p.Legend.Top = false
	p.Legend.Left = false

	return chart.Figure{
		Plot:     p,
		Style:    style,
		Subtitle: fmt.Sprintf("Countries contributing ≥%d%% of total", shareThreshold),
		Footer:   footer,
	}, nil
}

func (j *Job) saveShares(ctx context.Context, sc shareChart, frame dataset.Frame, footer string) (string, error) {
	fig, err := j.shareFigure(sc, frame, footer)
	if err != nil {
		return "", err
	}
	return j.target.Chart(ctx, fig, fmt.Sprintf("%s %s", sc.title, yearSpan(frame)))
}

func (j *Job) immigrationShares(ctx context.Context, frame dataset.Frame, footer string) (string, error) {
	return j.saveShares(ctx, immigrationShares, frame, footer)
}

func (j *Job) emigrationShares(ctx context.Context, frame dataset.Frame, footer string) (string, error) {
	return j.saveShares(ctx, emigrationShares, frame, footer)
}
