package population

import (
	"strconv"
	"testing"

	"statcharts/internal/publish"
	"statcharts/internal/telemetry"
	"statcharts/lib/pxweb"
	"statcharts/lib/testutil"
)

func tablePath(e pxweb.Endpoint) string {
	return "/en/ssd/" + string(e)
}

type count struct {
	code, name string
	n          int
}

func source(label string) []pxweb.SourceInfo {
	return []pxweb.SourceInfo{{
		Infofile: "BE0101",
		Updated:  "2024-02-21T08:00:00",
		Label:    label,
		Source:   "Statistics Sweden",
	}}
}

// countTable is a table with one dimension, the year and a number
// measure.
func countTable(code, text, year string, counts []count) (pxweb.Metadata, pxweb.Response) {
	var codes, names []string
	for _, c := range counts {
		codes = append(codes, c.code)
		names = append(names, c.name)
	}
	meta := pxweb.Metadata{
		Title: text,
		Variables: []pxweb.Variable{
			{Code: code, Text: text, Values: codes, ValueTexts: names, Elimination: true},
			{Code: "ContentsCode", Text: "observations", Values: []string{"BE0101N1"}, ValueTexts: []string{"Number"}},
			{Code: "Tid", Text: "year", Values: []string{year}, ValueTexts: []string{year}, Time: true},
		},
	}
	res := pxweb.Response{
		Columns: []pxweb.Column{
			{Code: code, Text: text, Type: "d"},
			{Code: "Tid", Text: "year", Type: "t"},
			{Code: "BE0101N1", Text: "Number", Type: "c"},
		},
		Metadata: source("Population by " + text + ". Year " + year),
	}
	for _, c := range counts {
		res.Data = append(res.Data, pxweb.DataRow{
			Key:    []string{c.code, year},
			Values: []string{strconv.Itoa(c.n)},
		})
	}
	return meta, res
}

var groupCounts = []count{
	{"SV", "Swedish citizenship", 9_000_000},
	{"EU", "foreign citizenship, EU", 300_000},
	{"OTH", "foreign citizenship, other", 700_000},
	{"TOT", "total", 10_000_000},
}

var foreignCounts = []count{
	{"FI", "Finland", 60_000},
	{"SY", "Syria", 150_000},
	{"PL", "Poland", 45_000},
	{"IS", "Iceland", 5_000},
	{"TOT", "total", 260_000},
}

var birthCounts = []count{
	{"SE", "Sweden", 8_000_000},
	{"SY", "Syria", 200_000},
	{"FI", "Finland", 140_000},
	{"IS", "Iceland", 2_000},
	{"NO", "Norway", 40_000},
}

func groupsTable() (pxweb.Metadata, pxweb.Response) {
	return countTable("Medborgarskapsgrupp", "citizenship", DefaultYear, groupCounts)
}

func foreignTable() (pxweb.Metadata, pxweb.Response) {
	return countTable("Medborgarskap", "country of citizenship", DefaultYear, foreignCounts)
}

func birthTable() (pxweb.Metadata, pxweb.Response) {
	return countTable("Fodelseland", "country of birth", DefaultYear, birthCounts)
}

// regionBirthTable has two counties for 2000 and 2023.
func regionBirthTable() (pxweb.Metadata, pxweb.Response) {
	years := []string{"2000", "2023"}
	meta := pxweb.Metadata{
		Title: "Population by region, region of birth and sex",
		Variables: []pxweb.Variable{
			{Code: "Region", Text: "region", Values: []string{"01", "03"}, ValueTexts: []string{"Stockholm county", "Uppsala county"}},
			{Code: "Fodelseregion", Text: "region of birth", Values: []string{"TOTfod", "SE"}, ValueTexts: []string{"All birth countries", "Sweden"}},
			{Code: "Kon", Text: "sex", Values: []string{"1", "2", "1+2"}, ValueTexts: []string{"men", "women", "total"}},
			{Code: "ContentsCode", Text: "observations", Values: []string{"BE0101N1"}, ValueTexts: []string{"Number"}},
			{Code: "Tid", Text: "year", Values: years, ValueTexts: years, Time: true},
		},
	}
	row := func(region, birth, year string, n int) pxweb.DataRow {
		return pxweb.DataRow{Key: []string{region, birth, "1+2", year}, Values: []string{strconv.Itoa(n)}}
	}
	res := pxweb.Response{
		Columns: []pxweb.Column{
			{Code: "Region", Text: "region", Type: "d"},
			{Code: "Fodelseregion", Text: "region of birth", Type: "d"},
			{Code: "Kon", Text: "sex", Type: "d"},
			{Code: "Tid", Text: "year", Type: "t"},
			{Code: "BE0101N1", Text: "Number", Type: "c"},
		},
		Data: []pxweb.DataRow{
			row("01", "TOTfod", "2000", 1_800_000),
			row("01", "SE", "2000", 1_500_000),
			row("03", "TOTfod", "2000", 300_000),
			row("03", "SE", "2000", 250_000),
			row("01", "TOTfod", "2023", 2_450_000),
			row("01", "SE", "2023", 1_650_000),
			row("03", "TOTfod", "2023", 400_000),
			row("03", "SE", "2023", 300_000),
		},
		Metadata: source("Population by region, region of birth and sex. Year 2000 - 2023"),
	}
	return meta, res
}

func newTestJob(t *testing.T) (*Job, *testutil.Server, *telemetry.Recorder) {
	routes := map[string]testutil.Route{}
	add := func(e pxweb.Endpoint, meta pxweb.Metadata, res pxweb.Response) {
		routes["GET "+tablePath(e)] = testutil.Route{Body: meta}
		routes["POST "+tablePath(e)] = testutil.Route{Body: res}
	}
	meta, res := groupsTable()
	add(pxweb.PopulationCitizenshipGroup, meta, res)
	meta, res = foreignTable()
	add(pxweb.ForeignCitizensCountry, meta, res)
	meta, res = birthTable()
	add(pxweb.PopulationBirthCountry, meta, res)
	meta, res = regionBirthTable()
	add(pxweb.PopulationRegionBirth, meta, res)

	server := testutil.NewServer(t, routes)
	rec := &telemetry.Recorder{}
	job := New(Options{
		Client:    pxweb.NewClient(pxweb.Options{BaseURL: server.URL}),
		Target:    publish.Target{Dir: t.TempDir(), Format: "svg"},
		Telemetry: rec,
	})
	return job, server, rec
}
