package worldbank

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"statcharts/lib/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const fixture = "API_NY.GDP.PCAP.PP.CD.csv"

func TestReadCSV(t *testing.T) {
	rows, err := ReadCSV(bytes.NewReader(testutil.Fixture(t, fixture)))
	require.NoError(t, err)
	require.Len(t, rows, 7)

	require.Empty(t, cmp.Diff(Row{
		Name: "Sweden",
		Code: "SWE",
		Values: map[string]float64{
			"2021": 61212.9,
			"2022": 67431.5,
			"2023": 71031.4,
		},
	}, rows[2]))
	require.Empty(t, rows[5].Values)
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("only\none line"))
	require.Error(t, err)

	_, err = ReadCSV(strings.NewReader("a\nb\nc\nd\n\"Name\",\"Code\",\"2023\",\n"))
	require.ErrorContains(t, err, "missing country columns")
}

func TestLatest(t *testing.T) {
	rows, err := ReadCSV(bytes.NewReader(testutil.Fixture(t, fixture)))
	require.NoError(t, err)

	testCases := []struct {
		row   int
		value float64
		year  string
		ok    bool
	}{
		{row: 2, value: 71031.4, year: "2023", ok: true},
		{row: 4, value: 13255.6, year: "2022", ok: true},
		{row: 5},
	}
	for _, test := range testCases {
		value, year, ok := rows[test.row].Latest("2023", "2022")
		require.Equal(t, test.ok, ok, rows[test.row].Name)
		require.Equal(t, test.year, year, rows[test.row].Name)
		require.Equal(t, test.value, value, rows[test.row].Name)
	}
}

func zipped(t *testing.T, files map[string][]byte) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, contents := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write(contents)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestDownload(t *testing.T) {
	archive := zipped(t, map[string][]byte{
		"Metadata_Indicator_API_NY.GDP.PCAP.PP.CD.csv": []byte("not the data"),
		"API_NY.GDP.PCAP.PP.CD_DS2_en_csv_v2_46.csv":   testutil.Fixture(t, fixture),
	})
	server := testutil.NewServer(t, map[string]testutil.Route{
		"GET /en/indicator/" + GDPPerCapitaPPP: {Body: archive},
	})

	client := NewClient(Options{BaseURL: server.URL})
	rows, err := client.Download(context.Background(), GDPPerCapitaPPP)
	require.NoError(t, err)
	require.Len(t, rows, 7)
	require.Equal(t, 1, server.Hits("GET /en/indicator/"+GDPPerCapitaPPP))
}

func TestDownloadErrors(t *testing.T) {
	server := testutil.NewServer(t, map[string]testutil.Route{
		"GET /en/indicator/EMPTY":   {Body: zipped(t, map[string][]byte{"readme.txt": nil})},
		"GET /en/indicator/BROKEN":  {Body: "not a zip"},
		"GET /en/indicator/MISSING": {Status: http.StatusBadRequest, Body: "invalid indicator"},
	})
	client := NewClient(Options{BaseURL: server.URL})

	_, err := client.Download(context.Background(), "EMPTY")
	require.ErrorContains(t, err, "no data file")

	_, err = client.Download(context.Background(), "BROKEN")
	require.ErrorContains(t, err, "archive")

	_, err = client.Download(context.Background(), "MISSING")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusBadRequest, statusErr.Status)
}

func TestLoadFile(t *testing.T) {
	client := NewClient(Options{BaseURL: "http://127.0.0.1:0"})
	rows, err := client.Load(context.Background(), filepath.Join("testdata", fixture), GDPPerCapitaPPP)
	require.NoError(t, err)
	require.Len(t, rows, 7)

	_, err = client.Load(context.Background(), filepath.Join("testdata", "missing.csv"), GDPPerCapitaPPP)
	require.Error(t, err)
}
