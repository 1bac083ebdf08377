package migration

import (
	"context"
	"fmt"

	"statcharts/lib/dataset"
	"statcharts/lib/pxweb"
)

// nameFixes shortens the official names of countries that appear in
// chart labels.
var nameFixes = map[string]string{
	"Syrian Arab Republic":       "Syria",
	"Iran (Islamic Republic of)": "Iran",
	"Russian Federation":         "Russia",
	"Türkiye":                    "Turkey",
	"Viet Nam":                   "Vietnam",
	"United States of America":   "USA",
}

func fixName(name string) string {
	fixed, ok := nameFixes[name]
	if !ok {
		return name
	}
	return fixed
}

// ByCountry fetches immigrations and emigrations by country of birth,
// summed over the sexes per year and country.
func (j *Job) ByCountry(ctx context.Context) (dataset.Frame, []pxweb.SourceInfo, error) {
	frame, sources, err := j.client.GetTable(ctx, pxweb.MigrationBirthCountry, nil)
	if err != nil {
		return dataset.Frame{}, nil, err
	}
	summed, err := byCountry(frame)
	if err != nil {
		return dataset.Frame{}, nil, err
	}
	return summed, sources, nil
}

func byCountry(frame dataset.Frame) (dataset.Frame, error) {
	if !frame.HasDimension(countryKey) {
		return dataset.Frame{}, fmt.Errorf("table has no %s dimension", countryKey)
	}
	for _, m := range []string{immigration, emigration} {
		if !frame.HasMeasure(m) {
			return dataset.Frame{}, fmt.Errorf("table has no %s measure", m)
		}
	}
	return frame.
		Exclude(countryKey, "total").
		MapLabels(countryKey, fixName).
		SumBy([]string{frame.TimeKey, countryKey}, immigration, emigration), nil
}

// Countries draws every by-country chart and returns the written paths.
func (j *Job) Countries(ctx context.Context) ([]string, error) {
	frame, sources, err := j.ByCountry(ctx)
	if err != nil {
		return nil, err
	}
	footer := footerText(sources)

	var paths []string
	for _, draw := range []func(context.Context, dataset.Frame, string) (string, error){
		j.immigrationShares,
		j.emigrationShares,
		j.topCountries,
		j.asylumCountries,
		j.swedishBorn,
	} {
		path, err := draw(ctx, frame, footer)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
