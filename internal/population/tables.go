package population

import (
	"context"
	"fmt"
	"io"

	"statcharts/lib/report"
)

// reportThreshold hides countries with fewer people from the printed
// tables.
const reportThreshold = 10_000

const wikiRows = 20

func shareRows(shares []Share) [][]any {
	rows := make([][]any, len(shares))
	for i, s := range shares {
		rows[i] = []any{s.Label, int64(s.Number), s.Percentage}
	}
	return rows
}

// Tables are the printable views of the nationality data.
func (n Nationality) Tables() []report.Table {
	merged := make([][]any, len(n.Merged))
	for i, m := range n.Merged {
		merged[i] = []any{
			m.Country,
			int64(m.Citizenship.Number), m.Citizenship.Percentage,
			int64(m.Birth.Number), m.Birth.Percentage,
		}
	}

	return []report.Table{
		{
			Name:   "Citizenship groups",
			Title:  fmt.Sprintf("Population by citizenship group %s", n.Year),
			Header: []string{"Citizenship", "Number", "Percentage"},
			Rows:   shareRows(n.Groups),
		},
		{
			Name:   "Citizenship",
			Title:  fmt.Sprintf("Population by country of citizenship %s", n.Year),
			Header: []string{"Country", "Number", "Percentage"},
			Rows:   shareRows(AtLeast(n.Citizenship, reportThreshold)),
		},
		{
			Name:   "Birth country",
			Title:  fmt.Sprintf("Population by country of birth %s", n.Year),
			Header: []string{"Country", "Number", "Percentage"},
			Rows:   shareRows(AtLeast(n.BirthCountry, reportThreshold)),
		},
		{
			Name:  "Citizenship and birth",
			Title: fmt.Sprintf("Citizenship and country of birth %s", n.Year),
			Header: []string{
				"Country",
				"Citizens", "Citizens %",
				"Born", "Born %",
			},
			Rows: merged,
		},
	}
}

// Wikitable renders the largest citizenships as a Polish wikitable,
// in percent of the whole population.
func (n Nationality) Wikitable() string {
	top := n.Citizenship
	if len(top) > wikiRows {
		top = top[:wikiRows]
	}
	rows := make([][]string, len(top))
	for i, s := range top {
		rows[i] = []string{s.Label, formatPercentage(s.Percentage)}
	}
	return report.Wikitable([]string{"Narodowość", "Odsetek"}, rows)
}

// PublishNationality prints the tables to w and writes the wikitable,
// plus a workbook when asked. It returns the written paths.
func (j *Job) PublishNationality(ctx context.Context, n Nationality, w io.Writer, workbook bool) ([]string, error) {
	tables := n.Tables()
	for _, t := range tables {
		report.Print(w, t)
	}

	var paths []string
	path, err := j.target.Text(ctx, n.Wikitable()+"\n", fmt.Sprintf("Nationality %s.wiki", n.Year))
	if err != nil {
		return nil, err
	}
	paths = append(paths, path)

	if workbook {
		path, err = j.target.Workbook(ctx, tables, fmt.Sprintf("Nationality %s", n.Year))
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
