package migration

import (
	"strconv"
	"testing"

	"statcharts/internal/publish"
	"statcharts/internal/telemetry"
	"statcharts/lib/pxweb"
	"statcharts/lib/testutil"
)

const (
	migrationPath = "/en/ssd/" + string(pxweb.MigrationBirthCountry)
	annualPath    = "/sv/ssd/" + string(pxweb.MigrationBirthCountry)
	changesPath   = "/en/ssd/" + string(pxweb.PopulationChanges)
)

var sources = []pxweb.SourceInfo{{
	Infofile: "BE0101",
	Updated:  "2024-02-21T08:00:00",
	Label:    "Immigrations and emigrations by country of birth and sex. Year 2000 - 2023",
	Source:   "Statistics Sweden",
}}

type countryFlow struct {
	code, name string
	in, out    int
}

var countryFlows = []countryFlow{
	{"SE", "Sweden", 20000, 40000},
	{"FI", "Finland", 3000, 3500},
	{"SY", "Syrian Arab Republic", 25000, 500},
	{"IQ", "Iraq", 5000, 2500},
	{"SO", "Somalia", 4000, 300},
	{"ER", "Eritrea", 1500, 50},
	{"RS", "Serbia", 600, 40},
	{"HR", "Croatia", 400, 30},
	{"US", "United States of America", 1200, 2000},
	{"XX", "Atlantis", 3000, 100},
	{"TOT", "total", 99999, 99999},
}

var flowYears = []string{"2022", "2023"}

func migrationMetadata() pxweb.Metadata {
	var codes, names []string
	for _, c := range countryFlows {
		codes = append(codes, c.code)
		names = append(names, c.name)
	}
	return pxweb.Metadata{
		Title: "Immigrations and emigrations by country of birth and sex",
		Variables: []pxweb.Variable{
			{Code: "Fodelseland", Text: "country of birth", Values: codes, ValueTexts: names, Elimination: true},
			{Code: "Kon", Text: "sex", Values: []string{"1", "2"}, ValueTexts: []string{"men", "women"}, Elimination: true},
			{Code: "ContentsCode", Text: "observations", Values: []string{"BE0101AX", "BE0101AY"}, ValueTexts: []string{"Immigrations", "Emigrations"}},
			{Code: "Tid", Text: "year", Values: flowYears, ValueTexts: flowYears, Time: true},
		},
	}
}

// migrationResponse carries every flow once per sex and year.
func migrationResponse() pxweb.Response {
	res := pxweb.Response{
		Columns: []pxweb.Column{
			{Code: "Fodelseland", Text: "country of birth", Type: "d"},
			{Code: "Kon", Text: "sex", Type: "d"},
			{Code: "Tid", Text: "year", Type: "t"},
			{Code: "BE0101AX", Text: "Immigrations", Type: "c"},
			{Code: "BE0101AY", Text: "Emigrations", Type: "c"},
		},
		Metadata: sources,
	}
	for _, c := range countryFlows {
		for _, sex := range []string{"1", "2"} {
			for _, year := range flowYears {
				res.Data = append(res.Data, pxweb.DataRow{
					Key:    []string{c.code, sex, year},
					Values: []string{strconv.Itoa(c.in), strconv.Itoa(c.out)},
				})
			}
		}
	}
	return res
}

func changesMetadata() pxweb.Metadata {
	years := []string{"1749", "1875", "1876", "2022", "2023"}
	return pxweb.Metadata{
		Title: "Population and population changes by sex. Year 1749 - 2023",
		Variables: []pxweb.Variable{
			{Code: "Kon", Text: "sex", Values: []string{"1", "2", "1+2"}, ValueTexts: []string{"men", "women", "total"}},
			{Code: "ContentsCode", Text: "observations",
				Values:     []string{"000000LV", "0000001H", "0000001F", "000000LX", "0000001G"},
				ValueTexts: []string{"Population", "Live births", "Deaths", "Immigrations", "Emigrations"},
			},
			{Code: "Tid", Text: "year", Values: years, ValueTexts: years, Time: true},
		},
	}
}

func changesResponse() pxweb.Response {
	row := func(year, pop, in, out string) pxweb.DataRow {
		return pxweb.DataRow{Key: []string{"1+2", year}, Values: []string{pop, "0", "0", in, out}}
	}
	return pxweb.Response{
		Columns: []pxweb.Column{
			{Code: "Kon", Text: "sex", Type: "d"},
			{Code: "Tid", Text: "year", Type: "t"},
			{Code: "000000LV", Text: "Population", Type: "c"},
			{Code: "0000001H", Text: "Live births", Type: "c"},
			{Code: "0000001F", Text: "Deaths", Type: "c"},
			{Code: "000000LX", Text: "Immigrations", Type: "c"},
			{Code: "0000001G", Text: "Emigrations", Type: "c"},
		},
		Data: []pxweb.DataRow{
			row("1749", "1780678", "..", ".."),
			row("1875", "4383291", "4000", "14000"),
			row("1876", "4429713", "4500", "15000"),
			row("2022", "10521556", "102436", "50592"),
			row("2023", "10551707", "94514", "73434"),
		},
		Metadata: []pxweb.SourceInfo{{
			Infofile: "BE0101",
			Updated:  "2024-02-21T08:00:00",
			Label:    "Population and population changes by sex. Year 1749 - 2023",
			Source:   "Statistics Sweden",
		}},
	}
}

func annualResponse() pxweb.Response {
	return pxweb.Response{
		Columns: []pxweb.Column{
			{Code: "Fodelseland", Text: "födelseland", Type: "d"},
			{Code: "Kon", Text: "kön", Type: "d"},
			{Code: "Tid", Text: "år", Type: "t"},
			{Code: "BE0101AX", Text: "Invandringar", Type: "c"},
			{Code: "BE0101AY", Text: "Utvandringar", Type: "c"},
		},
		Data: []pxweb.DataRow{
			{Key: []string{"TOT", "1", "2023"}, Values: []string{"48000", "38000"}},
			{Key: []string{"TOT", "2", "2023"}, Values: []string{"46514", "35434"}},
			{Key: []string{"TOT", "1", "2022"}, Values: []string{"52000", "26000"}},
			{Key: []string{"TOT", "2", "2022"}, Values: []string{"50436", "24592"}},
		},
		Metadata: []pxweb.SourceInfo{{
			Infofile: "BE0101",
			Updated:  "2024-02-21T08:00:00",
			Label:    "Invandringar och utvandringar efter födelseland och kön. År 2000 - 2023",
			Source:   "SCB",
		}},
	}
}

func newTestJob(t *testing.T) (*Job, *testutil.Server, *telemetry.Recorder) {
	server := testutil.NewServer(t, map[string]testutil.Route{
		"GET " + migrationPath:  {Body: migrationMetadata()},
		"POST " + migrationPath: {Body: migrationResponse()},
		"POST " + annualPath:    {Body: annualResponse()},
		"GET " + changesPath:    {Body: changesMetadata()},
		"POST " + changesPath:   {Body: changesResponse()},
	})
	rec := &telemetry.Recorder{}
	job := New(Options{
		Client:    pxweb.NewClient(pxweb.Options{BaseURL: server.URL}),
		Target:    publish.Target{Dir: t.TempDir(), Format: "svg"},
		Telemetry: rec,
	})
	return job, server, rec
}
