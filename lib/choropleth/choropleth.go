// Package choropleth colours the countries of an svg map of Europe by
// an indicator value.
package choropleth

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"statcharts/lib/countries"
	"statcharts/lib/worldbank"

	"github.com/PuerkitoBio/goquery"
)

// Bucket covers values up to and including Max.
type Bucket struct {
	Max   float64
	Color string
}

// Buckets run from light to dark, the last one is unbounded.
var Buckets = []Bucket{
	{Max: 30000, Color: "#fee5d9"},
	{Max: 40000, Color: "#fcc5c0"},
	{Max: 50000, Color: "#fa9fb5"},
	{Max: 60000, Color: "#f768a1"},
	{Max: 70000, Color: "#dd3497"},
	{Max: 80000, Color: "#ae017e"},
	{Max: math.Inf(1), Color: "#7a0177"},
}

func Color(value float64) string {
	for _, b := range Buckets {
		if value <= b.Max {
			return b.Color
		}
	}
	return Buckets[len(Buckets)-1].Color
}

type Country struct {
	// Code is the alpha-2 code, also the id of the country on the map.
	Code  string
	Name  string
	Value float64
	Year  string
}

// Select keeps the European countries of the rows that have a value in
// one of the years, in row order.
func Select(rows []worldbank.Row, years ...string) []Country {
	var out []Country
	for _, row := range rows {
		code, ok := countries.Alpha2(row.Code)
		if !ok || !countries.IsEuropean(code) {
			continue
		}
		value, year, ok := row.Latest(years...)
		if !ok {
			continue
		}
		out = append(out, Country{Code: code, Name: row.Name, Value: value, Year: year})
	}
	return out
}

// Range returns the smallest and largest value rounded down and up to
// 10,000.
func Range(list []Country) (float64, float64) {
	if len(list) == 0 {
		return 0, 0
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, c := range list {
		lo = math.Min(lo, c.Value)
		hi = math.Max(hi, c.Value)
	}
	return math.Floor(lo/10000) * 10000, (math.Floor(hi/10000) + 1) * 10000
}

type BucketCount struct {
	Label string
	Color string
	Count int
}

// Distribution counts the countries per bucket.
func Distribution(list []Country) []BucketCount {
	out := make([]BucketCount, len(Buckets))
	lower := 0.0
	for i, b := range Buckets {
		switch {
		case i == 0:
			out[i].Label = fmt.Sprintf("[%.0f, %.0f]", lower, b.Max)
		case math.IsInf(b.Max, 1):
			out[i].Label = fmt.Sprintf("(%.0f, inf)", lower)
		default:
			out[i].Label = fmt.Sprintf("(%.0f, %.0f]", lower, b.Max)
		}
		out[i].Color = b.Color
		lower = b.Max
	}
	for _, c := range list {
		for i, b := range Buckets {
			if c.Value <= b.Max {
				out[i].Count++
				break
			}
		}
	}
	return out
}

// CSS returns one fill rule per colour, sorted by colour.
func CSS(list []Country) string {
	groups := map[string][]string{}
	for _, c := range list {
		color := Color(c.Value)
		groups[color] = append(groups[color], "#"+strings.ToLower(c.Code))
	}

	colors := make([]string, 0, len(groups))
	for color := range groups {
		colors = append(colors, color)
	}
	sort.Strings(colors)

	rules := make([]string, len(colors))
	for i, color := range colors {
		rules[i] = fmt.Sprintf("%s {fill:%s}", strings.Join(groups[color], ","), color)
	}
	return strings.Join(rules, "\n")
}

// MissingFromMap returns the codes of the countries that have no element
// with their lower case code as id in the svg map.
func MissingFromMap(svg io.Reader, list []Country) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(svg)
	if err != nil {
		return nil, fmt.Errorf("parse map: %w", err)
	}

	ids := map[string]bool{}
	doc.Find("[id]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		ids[id] = true
	})

	var missing []string
	for _, c := range list {
		if !ids[strings.ToLower(c.Code)] {
			missing = append(missing, c.Code)
		}
	}
	sort.Strings(missing)
	return missing, nil
}
