package migration

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"statcharts/lib/dataset"
	"statcharts/lib/i18n"
	"statcharts/lib/pxweb"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func decodedMigration(t *testing.T) dataset.Frame {
	frame, err := pxweb.Decode(migrationResponse(), migrationMetadata())
	require.NoError(t, err)
	summed, err := byCountry(frame)
	require.NoError(t, err)
	return summed
}

func TestByCountry(t *testing.T) {
	frame := decodedMigration(t)

	require.Equal(t, []string{countryKey}, frame.Dimensions)
	require.Equal(t, "year", frame.TimeKey)
	// ten countries in two years, the total row is gone
	require.Equal(t, 20, frame.Len())
	require.NotContains(t, frame.Labels(countryKey), "total")
	require.Contains(t, frame.Labels(countryKey), "Syria")
	require.Contains(t, frame.Labels(countryKey), "USA")

	sweden := frame.Select(countryKey, "Sweden").Series(immigration)
	require.Equal(t, []dataset.Point{{Year: 2022, Value: 40000}, {Year: 2023, Value: 40000}}, sweden)

	_, err := byCountry(dataset.Frame{Dimensions: []string{countryKey}})
	require.ErrorContains(t, err, "immigrations")
	_, err = byCountry(dataset.Frame{})
	require.ErrorContains(t, err, countryKey)
}

func TestSignificantShares(t *testing.T) {
	frame := decodedMigration(t)

	in := significantShares(frame, immigration)
	require.Equal(t,
		[]string{"Eritrea", "Atlantis", "Finland", "Somalia", "Iraq", "Sweden", "Syria"},
		dataset.TotalLabels(in),
	)
	for _, s := range in {
		require.GreaterOrEqual(t, s.Value, float64(shareThreshold))
	}

	out := significantShares(frame, emigration)
	require.Equal(t, []string{"USA", "Iraq", "Finland", "Sweden"}, dataset.TotalLabels(out))
	require.InDelta(t, 81.6, out[3].Value, 0.05)
}

func TestYearSpan(t *testing.T) {
	require.Equal(t, "(2022-2023)", yearSpan(decodedMigration(t)))
	require.Equal(t, "", yearSpan(dataset.Frame{}))
}

func TestCountries(t *testing.T) {
	job, _, rec := newTestJob(t)

	paths, err := job.Countries(context.Background())
	require.NoError(t, err)

	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
		require.FileExists(t, p)
	}
	require.Equal(t, []string{
		"Share of Total Immigration to Sweden by Country of Birth (2022-2023).svg",
		"Share of Total Emigration from Sweden by Country of Birth (2022-2023).svg",
		"Immigration by Country Over Time (2022-2023).svg",
		"Immigration to Sweden from Countries with Significant Asylum Applications (2022-2023).svg",
		"Migration Flows of Swedish-Born Individuals (2022-2023).svg",
	}, names)

	shares, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	require.Contains(t, string(shares), "Middle East and Central Asia")
	require.Contains(t, string(shares), "39.2%")
	require.Contains(t, string(shares), "Source: Statistics Sweden")

	// countries without a region colour and an asylum group without rows
	require.Equal(t, []string{
		"migration:share-colour",
		"migration:share-colour",
		"migration:asylum-group",
	}, rec.IDs("warning"))
	warned := []string{}
	for _, e := range rec.Events("warning")[:2] {
		warned = append(warned, e.Params[1].(string))
	}
	require.Equal(t, []string{"Eritrea", "Atlantis"}, warned)
}

func TestAnnualTotals(t *testing.T) {
	totals, err := AnnualTotals(annualResponse())
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([]YearTotal{
		{Year: 2022, In: 102436, Out: 50592},
		{Year: 2023, In: 94514, Out: 73434},
	}, totals))

	testCases := []struct {
		name string
		row  pxweb.DataRow
	}{
		{name: "short key", row: pxweb.DataRow{Key: []string{"TOT", "1"}, Values: []string{"1", "2"}}},
		{name: "year", row: pxweb.DataRow{Key: []string{"TOT", "1", "2023M01"}, Values: []string{"1", "2"}}},
		{name: "missing value", row: pxweb.DataRow{Key: []string{"TOT", "1", "2023"}, Values: []string{"..", "2"}}},
		{name: "one value", row: pxweb.DataRow{Key: []string{"TOT", "1", "2023"}, Values: []string{"1"}}},
	}
	for _, test := range testCases {
		_, err := AnnualTotals(pxweb.Response{Data: []pxweb.DataRow{test.row}})
		require.Error(t, err, test.name)
	}
}

func TestAnnual(t *testing.T) {
	job, server, rec := newTestJob(t)

	path, err := job.Annual(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Statistics Sweden (SCB) annual Immigration and Emigration 2022-2023.svg", filepath.Base(path))

	var query pxweb.Query
	require.NoError(t, json.Unmarshal(server.LastBody("POST "+annualPath), &query))
	require.Empty(t, cmp.Diff(AnnualQuery(), query))
	require.Equal(t, 0, server.Hits("GET "+annualPath))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(contents), "Swedish migration per year")
	require.Contains(t, string(contents), "Source: Statistics Sweden SCB")
	require.Equal(t, []string{"migration:annual-years"}, rec.IDs("count"))
}

func TestFlowsAndRates(t *testing.T) {
	frame, err := pxweb.Decode(changesResponse(), changesMetadata())
	require.NoError(t, err)

	flows := Flows(frame)
	require.Len(t, flows, 4)
	require.Equal(t, 1875, flows[0].Year)
	require.Equal(t, -10000.0, flows[0].Net())

	rates := Rates(frame)
	require.Len(t, rates, 4)
	require.InDelta(t, 9.7358, rates[2].Immigration, 0.0001)
	require.InDelta(t, 4.8084, rates[2].Emigration, 0.0001)

	peak, trough := extremes(rates)
	require.Equal(t, 2022, peak.Year)
	require.Equal(t, 1876, trough.Year)
}

func TestHistory(t *testing.T) {
	job, server, _ := newTestJob(t)

	paths, err := job.History(context.Background())
	require.NoError(t, err)
	require.Len(t, paths, 3)

	titles := map[i18n.Language]string{
		i18n.English: "Immigration and Emigration in Sweden (1875 - 2023)",
		i18n.Polish:  "Imigracja i Emigracja w Szwecji (1875 - 2023)",
		i18n.Swedish: "Invandrare och utvandrare, Sverige (1875 - 2023)",
	}
	for i, lang := range i18n.Languages() {
		require.Equal(t,
			"Annual Immigration and Emigration in Sweden (1875-2023)-"+string(lang)+".svg",
			filepath.Base(paths[i]),
		)
		contents, err := os.ReadFile(paths[i])
		require.NoError(t, err)
		require.Contains(t, string(contents), titles[lang])
		require.Contains(t, string(contents), lang.T(i18n.NetMigration))
	}

	var query pxweb.Query
	require.NoError(t, json.Unmarshal(server.LastBody("POST "+changesPath), &query))
	require.Equal(t, "Kon", query.Query[0].Code)
	require.Equal(t, []string{"1+2"}, query.Query[0].Selection.Values)
	require.Len(t, query.Query[1].Selection.Values, 5)

	paths, err = job.History(context.Background(), i18n.Polish)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	require.True(t, strings.HasSuffix(paths[0], "-pl.svg"))
}

func TestMigrationRates(t *testing.T) {
	job, _, _ := newTestJob(t)

	path, err := job.MigrationRates(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Migration Rates in Sweden (1875-2023).svg", filepath.Base(path))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(contents), "Peak net migration")
	require.Contains(t, string(contents), "Historical emigration period")
	require.Contains(t, string(contents), "Rate per 1,000 inhabitants")
}
