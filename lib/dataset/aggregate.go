package dataset

import (
	"cmp"
	"math"
	"slices"
	"strings"
)

// SumBy groups records by the given dimensions (the time key included)
// and sums the measures within each group. With no measures given every
// measure of the frame is summed. Groups come back sorted by year and
// then by label, so the output does not depend on response row order.
func (f Frame) SumBy(keys []string, measures ...string) Frame {
	if len(measures) == 0 {
		measures = f.Measures
	}

	type group struct {
		first  Record
		values map[string]float64
	}

	groups := map[string]*group{}
	var order []string

	for _, r := range f.Records {
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = f.Label(r, k)
		}
		id := strings.Join(parts, "\x00")

		g, ok := groups[id]
		if !ok {
			g = &group{first: r, values: make(map[string]float64, len(measures))}
			for _, m := range measures {
				g.values[m] = 0
			}
			groups[id] = g
			order = append(order, id)
		}
		for _, m := range measures {
			v := r.Value(m)
			if math.IsNaN(v) {
				continue
			}
			g.values[m] += v
		}
	}

	var dims []string
	keepTime := false
	for _, k := range keys {
		if k == f.TimeKey {
			keepTime = true
			continue
		}
		dims = append(dims, k)
	}

	out := make([]Record, 0, len(order))
	for _, id := range order {
		g := groups[id]
		labels := make(map[string]string, len(dims))
		for _, d := range dims {
			labels[d] = g.first.Labels[d]
		}
		rec := Record{Labels: labels, Values: g.values}
		if keepTime {
			rec.Period = g.first.Period
			rec.Year = g.first.Year
		}
		out = append(out, rec)
	}

	slices.SortStableFunc(out, func(a, b Record) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Period, b.Period); c != 0 {
			return c
		}
		for _, d := range dims {
			if c := cmp.Compare(a.Labels[d], b.Labels[d]); c != 0 {
				return c
			}
		}
		return 0
	})

	timeKey := ""
	if keepTime {
		timeKey = f.TimeKey
	}
	return Frame{
		Dimensions: dims,
		TimeKey:    timeKey,
		Measures:   slices.Clone(measures),
		Records:    out,
	}
}

type Total struct {
	Label string
	Value float64
}

// Totals sums a measure per label of one dimension, largest first.
func (f Frame) Totals(key, measure string) []Total {
	grouped := f.SumBy([]string{key}, measure)
	totals := make([]Total, len(grouped.Records))
	for i, r := range grouped.Records {
		totals[i] = Total{Label: grouped.Label(r, key), Value: r.Values[measure]}
	}
	return Descending(totals)
}

func Descending(totals []Total) []Total {
	out := slices.Clone(totals)
	slices.SortStableFunc(out, func(a, b Total) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return out
}

func Ascending(totals []Total) []Total {
	out := slices.Clone(totals)
	slices.SortStableFunc(out, func(a, b Total) int {
		if c := cmp.Compare(a.Value, b.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return out
}

// Shares converts totals into percentages of their sum.
func Shares(totals []Total) []Total {
	var sum float64
	for _, t := range totals {
		sum += t.Value
	}
	out := make([]Total, len(totals))
	for i, t := range totals {
		share := 0.0
		if sum != 0 {
			share = t.Value / sum * 100
		}
		out[i] = Total{Label: t.Label, Value: share}
	}
	return out
}

// AtLeast keeps the totals whose value is >= threshold.
func AtLeast(totals []Total, threshold float64) []Total {
	var out []Total
	for _, t := range totals {
		if t.Value >= threshold {
			out = append(out, t)
		}
	}
	return out
}

func Top(totals []Total, n int) []Total {
	if n >= len(totals) {
		return slices.Clone(totals)
	}
	return slices.Clone(totals[:n])
}

func TotalLabels(totals []Total) []string {
	labels := make([]string, len(totals))
	for i, t := range totals {
		labels[i] = t.Label
	}
	return labels
}

type Point struct {
	Year  int
	Value float64
}

// Series reads a measure as a year-ordered series. Records sharing a
// year are summed.
func (f Frame) Series(measure string) []Point {
	byYear := map[int]float64{}
	for _, r := range f.Records {
		v := r.Value(measure)
		if math.IsNaN(v) {
			if _, ok := byYear[r.Year]; !ok {
				byYear[r.Year] = math.NaN()
			}
			continue
		}
		if math.IsNaN(byYear[r.Year]) {
			byYear[r.Year] = 0
		}
		byYear[r.Year] += v
	}

	points := make([]Point, 0, len(byYear))
	for year, v := range byYear {
		points = append(points, Point{Year: year, Value: v})
	}
	slices.SortFunc(points, func(a, b Point) int {
		return cmp.Compare(a.Year, b.Year)
	})
	return points
}

// Pivot is a year by label matrix of one measure.
type Pivot struct {
	Years   []int
	Columns []string
	cells   map[string]map[int]float64
}

// Pivot spreads a measure over the labels of one dimension. Columns
// keep first-seen order.
func (f Frame) Pivot(key, measure string) Pivot {
	p := Pivot{cells: map[string]map[int]float64{}}
	years := map[int]bool{}
	for _, r := range f.Records {
		label := f.Label(r, key)
		col, ok := p.cells[label]
		if !ok {
			col = map[int]float64{}
			p.cells[label] = col
			p.Columns = append(p.Columns, label)
		}
		v := r.Value(measure)
		if prev, ok := col[r.Year]; ok && !math.IsNaN(prev) {
			if !math.IsNaN(v) {
				v += prev
			} else {
				v = prev
			}
		}
		col[r.Year] = v
		years[r.Year] = true
	}
	for y := range years {
		p.Years = append(p.Years, y)
	}
	slices.Sort(p.Years)
	return p
}

// Column returns the values of one label aligned with Years, NaN where
// the label has no value for a year.
func (p Pivot) Column(label string) []float64 {
	col := p.cells[label]
	out := make([]float64, len(p.Years))
	for i, y := range p.Years {
		v, ok := col[y]
		if !ok {
			v = math.NaN()
		}
		out[i] = v
	}
	return out
}
