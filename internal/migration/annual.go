package migration

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"statcharts/lib/chart"
	"statcharts/lib/palette"
	"statcharts/lib/pxweb"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// AnnualQuery selects all countries of birth as one total, per sex.
func AnnualQuery() pxweb.Query {
	return pxweb.Query{
		Query: []pxweb.Selection{
			{Code: "Fodelseland", Selection: pxweb.Filter{Filter: "vs:LandISOAlfa2-96TotA", Values: []string{"TOT"}}},
			{Code: "Kon", Selection: pxweb.Filter{Filter: "item", Values: []string{"1", "2"}}},
		},
		Response: pxweb.ResponseFormat{Format: "json"},
	}
}

type YearTotal struct {
	Year int
	In   int
	Out  int
}

// AnnualTotals sums the rows of an annual query per year. Rows are keyed
// by country, sex and year and carry immigrations then emigrations.
func AnnualTotals(res pxweb.Response) ([]YearTotal, error) {
	byYear := map[int]*YearTotal{}
	for i, row := range res.Data {
		if len(row.Key) < 3 || len(row.Values) < 2 {
			return nil, fmt.Errorf("row %d: expected 3 keys and 2 values, got %v %v", i, row.Key, row.Values)
		}
		year, err := strconv.Atoi(row.Key[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: year %q: %w", i, row.Key[2], err)
		}
		in, err := strconv.Atoi(strings.TrimSpace(row.Values[0]))
		if err != nil {
			return nil, fmt.Errorf("row %d: immigrations %q: %w", i, row.Values[0], err)
		}
		out, err := strconv.Atoi(strings.TrimSpace(row.Values[1]))
		if err != nil {
			return nil, fmt.Errorf("row %d: emigrations %q: %w", i, row.Values[1], err)
		}

		total, ok := byYear[year]
		if !ok {
			total = &YearTotal{Year: year}
			byYear[year] = total
		}
		total.In += in
		total.Out += out
	}

	totals := make([]YearTotal, 0, len(byYear))
	for _, t := range byYear {
		totals = append(totals, *t)
	}
	slices.SortFunc(totals, func(a, b YearTotal) int { return a.Year - b.Year })
	return totals, nil
}

func annualFooter(sources []pxweb.SourceInfo) string {
	if len(sources) == 0 {
		return ""
	}
	s := sources[0]
	return fmt.Sprintf("Source: Statistics Sweden %s - %s (%s)", s.Source, s.Label, s.Infofile)
}

func annualFigure(totals []YearTotal, footer string) chart.Figure {
	style := chart.Default.With(12*vg.Inch, 6*vg.Inch)
	style.GridColor = palette.Black.WithAlpha(0.7)
	style.GridDashes = []vg.Length{vg.Points(3.7), vg.Points(1.6)}

	p := style.NewPlot("Swedish migration per year")

	positions := make([]float64, len(totals))
	in := make([]float64, len(totals))
	out := make([]float64, len(totals))
	yearList := make([]int, len(totals))
	for i, t := range totals {
		positions[i] = float64(t.Year)
		in[i] = float64(t.In)
		out[i] = -float64(t.Out)
		yearList[i] = t.Year
	}
	chart.AddBars(p, "immigration", &chart.Bars{
		Positions: positions, Values: in, Colors: colors(rgba("#4A90E2")), Width: 0.8,
	})
	chart.AddBars(p, "emigration", &chart.Bars{
		Positions: positions, Values: out, Colors: colors(rgba("#E27A4A")), Width: 0.8,
	})
	chart.AddZeroLine(p, draw.LineStyle{Color: palette.Black.RGBA(), Width: vg.Points(0.5)})

	p.X.Tick.Marker = chart.Years{Years: yearList, Every: 5}
	p.Y.Tick.Marker = chart.Thousands{}
	p.X.Tick.Length = 0
	p.Y.Tick.Length = 0
	p.X.LineStyle.Color = rgba("#c0c0c0")
	p.Y.LineStyle.Color = rgba("#c0c0c0")

	return chart.Figure{Plot: p, Style: style, Footer: footer}
}

// Annual draws total immigration and emigration per year from the
// Swedish edition of the migration table.
func (j *Job) Annual(ctx context.Context) (string, error) {
	client := j.client.WithLanguage(pxweb.Swedish)
	res, err := client.PostQuery(ctx, pxweb.MigrationBirthCountry, AnnualQuery())
	if err != nil {
		return "", err
	}
	totals, err := AnnualTotals(res)
	if err != nil {
		return "", err
	}
	if len(totals) == 0 {
		return "", fmt.Errorf("annual query returned no rows")
	}
	j.tel.ReportCount("annual-years", int64(len(totals)))

	fig := annualFigure(totals, annualFooter(res.Metadata))
	name := fmt.Sprintf(
		"Statistics Sweden (SCB) annual Immigration and Emigration %d-%d",
		totals[0].Year, totals[len(totals)-1].Year,
	)
	return j.target.Chart(ctx, fig, name)
}
