package dataset

import (
	"math"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func rec(country, sex string, year int, in, out float64) Record {
	return Record{
		Labels: map[string]string{"country_of_birth": country, "sex": sex},
		Period: strconv.Itoa(year),
		Year:   year,
		Values: map[string]float64{"immigrations": in, "emigrations": out},
	}
}

func sample() Frame {
	return Frame{
		Dimensions: []string{"country_of_birth", "sex"},
		TimeKey:    "year",
		Measures:   []string{"immigrations", "emigrations"},
		Records: []Record{
			rec("Sweden", "men", 2001, 10, 20),
			rec("Sweden", "women", 2001, 12, 18),
			rec("Syria", "men", 2000, 5, 1),
			rec("Sweden", "men", 2000, 8, 16),
			rec("Syria", "women", 2001, 4, math.NaN()),
			rec("total", "men", 2001, 31, 39),
		},
	}
}

func TestSumBy(t *testing.T) {
	f := sample().Exclude("country_of_birth", "total")
	summed := f.SumBy([]string{"year", "country_of_birth"})

	require.Equal(t, []string{"country_of_birth"}, summed.Dimensions)
	require.Equal(t, "year", summed.TimeKey)

	type row struct {
		Year    int
		Country string
		In, Out float64
	}
	var got []row
	for _, r := range summed.Records {
		got = append(got, row{r.Year, r.Labels["country_of_birth"], r.Values["immigrations"], r.Values["emigrations"]})
	}
	expect := []row{
		{2000, "Sweden", 8, 16},
		{2000, "Syria", 5, 1},
		{2001, "Sweden", 22, 38},
		{2001, "Syria", 4, 0},
	}
	require.Empty(t, cmp.Diff(expect, got))
}

func TestTotalsAndShares(t *testing.T) {
	f := sample().Exclude("country_of_birth", "total")
	totals := f.Totals("country_of_birth", "immigrations")
	require.Equal(t, []Total{{"Sweden", 30}, {"Syria", 9}}, totals)

	shares := Shares(totals)
	require.InDelta(t, 76.923, shares[0].Value, 0.001)
	require.InDelta(t, 23.077, shares[1].Value, 0.001)

	significant := Ascending(AtLeast(shares, 50))
	require.Equal(t, []string{"Sweden"}, TotalLabels(significant))

	require.Equal(t, []Total{{"a", 0}}, Shares([]Total{{"a", 0}}))
	require.Len(t, Top(totals, 1), 1)
	require.Len(t, Top(totals, 5), 2)
}

func TestSeries(t *testing.T) {
	f := sample().Select("country_of_birth", "Sweden")
	require.Equal(t, []Point{{2000, 8}, {2001, 22}}, f.Series("immigrations"))

	syria := sample().Select("country_of_birth", "Syria").Select("sex", "women")
	points := syria.Series("emigrations")
	require.Len(t, points, 1)
	require.True(t, math.IsNaN(points[0].Value))
}

func TestPivot(t *testing.T) {
	f := sample().Exclude("country_of_birth", "total")
	p := f.Pivot("country_of_birth", "immigrations")
	require.Equal(t, []int{2000, 2001}, p.Years)
	require.Equal(t, []string{"Sweden", "Syria"}, p.Columns)
	require.Equal(t, []float64{8, 22}, p.Column("Sweden"))
	require.Equal(t, []float64{5, 4}, p.Column("Syria"))

	missing := p.Column("Norway")
	require.True(t, math.IsNaN(missing[0]))
}

func TestFrameTransforms(t *testing.T) {
	f := sample()

	renamed := f.MapLabels("country_of_birth", func(s string) string {
		if s == "Syria" {
			return "Syrian Arab Republic"
		}
		return s
	})
	require.Equal(t, []string{"Sweden", "Syrian Arab Republic", "total"}, renamed.Labels("country_of_birth"))
	require.Equal(t, []string{"Sweden", "Syria", "total"}, f.Labels("country_of_birth"), "original frame is untouched")

	dropped := f.Drop("sex")
	require.Equal(t, []string{"country_of_birth"}, dropped.Dimensions)
	_, ok := dropped.Records[0].Labels["sex"]
	require.False(t, ok)

	net := f.Derive("net", func(r Record) float64 {
		return r.Value("immigrations") - r.Value("emigrations")
	})
	require.True(t, net.HasMeasure("net"))
	require.Equal(t, -10.0, net.Records[0].Values["net"])
	require.False(t, f.HasMeasure("net"))

	require.Equal(t, []int{2000, 2001}, f.Years())
	require.Equal(t, 70.0, f.Sum("immigrations"))
	require.True(t, f.HasDimension("year"))
	require.Equal(t, "2001", f.Label(f.Records[0], "year"))
}
