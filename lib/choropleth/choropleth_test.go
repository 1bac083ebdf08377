package choropleth

import (
	"math"
	"strings"
	"testing"

	"statcharts/lib/worldbank"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestColor(t *testing.T) {
	testCases := []struct {
		value float64
		color string
	}{
		{value: 0, color: "#fee5d9"},
		{value: 30000, color: "#fee5d9"},
		{value: 30000.5, color: "#fcc5c0"},
		{value: 55000, color: "#f768a1"},
		{value: 80000, color: "#ae017e"},
		{value: 143304, color: "#7a0177"},
		{value: math.Inf(1), color: "#7a0177"},
	}
	for _, test := range testCases {
		require.Equal(t, test.color, Color(test.value), "%v", test.value)
	}
}

func rows() []worldbank.Row {
	return []worldbank.Row{
		{Name: "Euro area", Code: "EMU", Values: map[string]float64{"2023": 64231}},
		{Name: "Sweden", Code: "SWE", Values: map[string]float64{"2022": 67431, "2023": 71031}},
		{Name: "Turkiye", Code: "TUR", Values: map[string]float64{"2023": 41000}},
		{Name: "Ukraine", Code: "UKR", Values: map[string]float64{"2022": 13255}},
		{Name: "Liechtenstein", Code: "LIE", Values: map[string]float64{}},
		{Name: "Poland", Code: "POL", Values: map[string]float64{"2023": 48856}},
		{Name: "Norway", Code: "NOR", Values: map[string]float64{"2023": 76000}},
		{Name: "Moldova", Code: "MDA", Values: map[string]float64{"2023": 17000}},
	}
}

func TestSelect(t *testing.T) {
	got := Select(rows(), "2023", "2022")
	expected := []Country{
		{Code: "SE", Name: "Sweden", Value: 71031, Year: "2023"},
		{Code: "UA", Name: "Ukraine", Value: 13255, Year: "2022"},
		{Code: "PL", Name: "Poland", Value: 48856, Year: "2023"},
		{Code: "NO", Name: "Norway", Value: 76000, Year: "2023"},
		{Code: "MD", Name: "Moldova", Value: 17000, Year: "2023"},
	}
	require.Empty(t, cmp.Diff(expected, got))
}

func TestRange(t *testing.T) {
	lo, hi := Range(Select(rows(), "2023", "2022"))
	require.Equal(t, 10000.0, lo)
	require.Equal(t, 80000.0, hi)

	lo, hi = Range(nil)
	require.Zero(t, lo)
	require.Zero(t, hi)
}

func TestDistribution(t *testing.T) {
	dist := Distribution(Select(rows(), "2023", "2022"))
	require.Len(t, dist, len(Buckets))
	require.Equal(t, "[0, 30000]", dist[0].Label)
	require.Equal(t, "(30000, 40000]", dist[1].Label)
	require.Equal(t, "(80000, inf)", dist[6].Label)

	counts := make([]int, len(dist))
	for i, d := range dist {
		counts[i] = d.Count
	}
	require.Equal(t, []int{2, 0, 1, 0, 0, 2, 0}, counts)
}

func TestCSS(t *testing.T) {
	css := CSS(Select(rows(), "2023", "2022"))
	require.Equal(t, strings.Join([]string{
		"#se,#no {fill:#ae017e}",
		"#pl {fill:#fa9fb5}",
		"#ua,#md {fill:#fee5d9}",
	}, "\n"), css)

	require.Equal(t, "", CSS(nil))
}

func TestMissingFromMap(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg">
		<g id="se"><path d="M0 0"/></g>
		<path id="no" d="M0 0"/>
		<path id="pl" class="eu" d="M0 0"/>
	</svg>`

	missing, err := MissingFromMap(strings.NewReader(svg), Select(rows(), "2023", "2022"))
	require.NoError(t, err)
	require.Equal(t, []string{"MD", "UA"}, missing)
}
