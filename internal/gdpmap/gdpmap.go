// Package gdpmap colours a map of Europe by GDP per capita (PPP).
package gdpmap

import (
	"context"
	"fmt"
	"io"
	"os"

	"statcharts/internal/publish"
	"statcharts/internal/telemetry"
	"statcharts/lib/choropleth"
	"statcharts/lib/report"
	"statcharts/lib/worldbank"
)

// Years are tried in order for the latest value of a country.
var Years = []string{"2023", "2022"}

const stylesheetName = "gdp-map.css"

type Options struct {
	Client    *worldbank.Client
	Target    publish.Target
	Telemetry telemetry.API
	// CSV is a local indicator csv, downloaded when empty.
	CSV string
	// Map is an svg map checked for an element per country.
	Map string
}

type Job struct {
	client  *worldbank.Client
	target  publish.Target
	tel     telemetry.API
	csv     string
	mapPath string
}

func New(opts Options) *Job {
	return &Job{
		client:  opts.Client,
		target:  opts.Target,
		tel:     telemetry.NewScopedAPI("gdpmap", opts.Telemetry),
		csv:     opts.CSV,
		mapPath: opts.Map,
	}
}

type Result struct {
	Countries    []choropleth.Country
	Min, Max     float64
	Distribution []choropleth.BucketCount
	// Missing are the countries without an element on the map.
	Missing []string
	CSS     string
}

func (j *Job) missing(list []choropleth.Country) ([]string, error) {
	if j.mapPath == "" {
		return nil, nil
	}
	f, err := os.Open(j.mapPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	missing, err := choropleth.MissingFromMap(f, list)
	if err != nil {
		return nil, err
	}
	for _, code := range missing {
		j.tel.ReportWarning("missing-from-map", code)
	}
	return missing, nil
}

// Colors loads the indicator and colours the European countries.
func (j *Job) Colors(ctx context.Context) (Result, error) {
	rows, err := j.client.Load(ctx, j.csv, worldbank.GDPPerCapitaPPP)
	if err != nil {
		return Result{}, err
	}
	list := choropleth.Select(rows, Years...)
	if len(list) == 0 {
		return Result{}, fmt.Errorf("no european country has a value for %v", Years)
	}
	j.tel.ReportCount("countries", int64(len(list)))

	missing, err := j.missing(list)
	if err != nil {
		return Result{}, fmt.Errorf("check map: %w", err)
	}

	lo, hi := choropleth.Range(list)
	return Result{
		Countries:    list,
		Min:          lo,
		Max:          hi,
		Distribution: choropleth.Distribution(list),
		Missing:      missing,
		CSS:          choropleth.CSS(list),
	}, nil
}

func (r Result) Tables() []report.Table {
	countries := report.Table{
		Name:   "Countries",
		Title:  "GDP per capita, PPP (current international $)",
		Header: []string{"Code", "Country", "Year", "Value", "Colour"},
	}
	for _, c := range r.Countries {
		countries.Rows = append(countries.Rows, []any{c.Code, c.Name, c.Year, c.Value, choropleth.Color(c.Value)})
	}

	buckets := report.Table{
		Name:   "Buckets",
		Title:  fmt.Sprintf("Range %.0f - %.0f", r.Min, r.Max),
		Header: []string{"Range", "Colour", "Countries"},
	}
	for _, b := range r.Distribution {
		buckets.Rows = append(buckets.Rows, []any{b.Label, b.Color, b.Count})
	}
	return []report.Table{countries, buckets}
}

// Publish prints the tables to w and writes the stylesheet.
func (j *Job) Publish(ctx context.Context, r Result, w io.Writer) (string, error) {
	for _, t := range r.Tables() {
		report.Print(w, t)
	}
	if len(r.Missing) > 0 {
		fmt.Fprintf(w, "missing from map: %v\n", r.Missing)
	}
	return j.target.Text(ctx, r.CSS+"\n", stylesheetName)
}
