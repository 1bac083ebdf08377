package population

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

	"gonum.org/v1/plot/vg"
)

const (
	allBirthCountries = "All birth countries"
	bornInSweden      = "Sweden"
)

// counties are the region codes of the 21 Swedish counties.
var counties = []string{
	"01", "03", "04", "05", "06", "07", "08", "09", "10", "12", "13",
	"14", "17", "18", "19", "20", "21", "22", "23", "24", "25",
}

// SwedishBornShares returns the fraction of the population born in
// Sweden per year. Years missing either figure are left out.
func SwedishBornShares(frame dataset.Frame) ([]dataset.Point, error) {
	err := requireColumns(frame, regionBirthKey)
	if err != nil {
		return nil, err
	}
	pivot := frame.SumBy([]string{frame.TimeKey, regionBirthKey}, number).Pivot(regionBirthKey, number)

	all := pivot.Column(allBirthCountries)
	sweden := pivot.Column(bornInSweden)
	var points []dataset.Point
	for i, year := range pivot.Years {
		if math.IsNaN(all[i]) || math.IsNaN(sweden[i]) || all[i] == 0 {
			continue
		}
		points = append(points, dataset.Point{Year: year, Value: sweden[i] / all[i]})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("no years with both %q and %q", allBirthCountries, bornInSweden)
	}
	return points, nil
}

func swedishBornFigure(points []dataset.Point, title, footer string) (chart.Figure, error) {
	style := chart.History
	p := style.NewPlot(title)
	p.Y.Tick.Marker = chart.Percent{Scale: 1}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, pt := range points {
		xs[i] = float64(pt.Year)
		ys[i] = pt.Value
	}
	err := chart.AddLine(p, "", chart.XYs(xs, ys), chart.LineOptions{
		Color:        palette.Blue.RGBA(),
		Width:        vg.Points(2),
		MarkerRadius: vg.Points(4),
	})
	if err != nil {
		return chart.Figure{}, err
	}
	return chart.Figure{Plot: p, Style: style, Footer: footer}, nil
}

// SwedishBorn draws the share of people born in Sweden across the
// counties.
func (j *Job) SwedishBorn(ctx context.Context) (string, error) {
	frame, sources, err := j.client.GetTable(ctx, pxweb.PopulationRegionBirth, map[string][]string{
		"Region":        counties,
		"Fodelseregion": {"TOTfod", "SE"},
		"Kon":           {"1+2"},
	})
	if err != nil {
		return "", err
	}
	points, err := SwedishBornShares(frame)
	if err != nil {
		return "", fmt.Errorf("swedish born: %w", err)
	}
	j.tel.ReportCount("swedish-born-years", int64(len(points)))

	title := fmt.Sprintf(
		"Percentage of Swedish-Born Population in Sweden (%d-%d)",
		points[0].Year, points[len(points)-1].Year,
	)
	fig, err := swedishBornFigure(points, title, publish.Footer(sources, i18n.English))
	if err != nil {
		return "", err
	}
	return j.target.Chart(ctx, fig, title)
}
