package pxweb

import (
	"encoding/json"
	"math"
	"testing"

	"statcharts/lib/dataset"
	"statcharts/lib/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func loadFixtures(t *testing.T) (Metadata, Response) {
	var meta Metadata
	err := json.Unmarshal(testutil.Fixture(t, "immiemifod_metadata.json"), &meta)
	require.NoError(t, err)

	var resp Response
	raw := testutil.Fixture(t, "immiemifod_response.json")
	err = json.Unmarshal(raw[len(utf8Bom):], &resp)
	require.NoError(t, err)
	return meta, resp
}

func TestDecode(t *testing.T) {
	meta, resp := loadFixtures(t)

	frame, err := Decode(resp, meta)
	require.NoError(t, err)

	require.Equal(t, []string{"country_of_birth", "sex"}, frame.Dimensions)
	require.Equal(t, "year", frame.TimeKey)
	require.Equal(t, []string{"immigrations", "emigrations"}, frame.Measures)

	nan := math.NaN()
	expect := []dataset.Record{
		{
			Labels: map[string]string{"country_of_birth": "Finland", "sex": "men"},
			Period: "2022", Year: 2022,
			Values: map[string]float64{"immigrations": 1203, "emigrations": 1544},
		},
		{
			Labels: map[string]string{"country_of_birth": "Finland", "sex": "women"},
			Period: "2022", Year: 2022,
			Values: map[string]float64{"immigrations": 1337, "emigrations": nan},
		},
		{
			Labels: map[string]string{"country_of_birth": "Sweden", "sex": "men"},
			Period: "2023", Year: 2023,
			Values: map[string]float64{"immigrations": 6110, "emigrations": 11002},
		},
		{
			// codes without a label are kept as they are
			Labels: map[string]string{"country_of_birth": "XX", "sex": "women"},
			Period: "2023", Year: 2023,
			Values: map[string]float64{"immigrations": nan, "emigrations": 12},
		},
	}
	require.Empty(t, cmp.Diff(expect, frame.Records, cmpopts.EquateNaNs()))
}

func TestDecodeEdgeCases(t *testing.T) {
	meta := Metadata{Variables: []Variable{
		{Code: "Region", Text: "region", Values: []string{"00"}, ValueTexts: []string{"Sweden"}},
		{Code: "Tid", Text: "month", Values: []string{"2023M01"}, Time: true},
	}}

	testCases := []struct {
		name   string
		resp   Response
		expect []dataset.Record
		err    bool
	}{
		{
			name: "monthly periods have no year",
			resp: Response{
				Columns: []Column{
					{Text: "region", Type: "d"},
					{Text: "month", Type: "t"},
					{Text: "Net Supply", Type: "c"},
				},
				Data: []DataRow{{Key: []string{"00", "2023M01"}, Values: []string{" 12.5 "}}},
			},
			expect: []dataset.Record{{
				Labels: map[string]string{"region": "Sweden"},
				Period: "2023M01",
				Values: map[string]float64{"net_supply": 12.5},
			}},
		},
		{
			name: "missing and extra values",
			resp: Response{
				Columns: []Column{
					{Text: "region", Type: "d"},
					{Text: "a", Type: "c"},
					{Text: "b", Type: "c"},
				},
				Data: []DataRow{
					{Key: []string{"00"}, Values: []string{"1"}},
					{Key: []string{"00"}, Values: []string{"", "2", "3"}},
				},
			},
			expect: []dataset.Record{
				{
					Labels: map[string]string{"region": "Sweden"},
					Values: map[string]float64{"a": 1, "b": math.NaN()},
				},
				{
					Labels: map[string]string{"region": "Sweden"},
					Values: map[string]float64{"a": math.NaN(), "b": 2},
				},
			},
		},
		{
			name: "short key",
			resp: Response{
				Columns: []Column{
					{Text: "region", Type: "d"},
					{Text: "month", Type: "t"},
					{Text: "a", Type: "c"},
				},
				Data: []DataRow{{Key: []string{"00"}, Values: []string{"1"}}},
			},
			err: true,
		},
		{
			name: "empty data",
			resp: Response{
				Columns: []Column{{Text: "region", Type: "d"}, {Text: "a", Type: "c"}},
			},
			expect: []dataset.Record{},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			frame, err := Decode(test.resp, meta)
			if test.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Empty(t, cmp.Diff(test.expect, frame.Records, cmpopts.EquateNaNs()))
		})
	}
}
