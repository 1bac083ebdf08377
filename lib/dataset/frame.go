// Package dataset is a small row-oriented table used between decoding a
// statistics response and drawing it. Dimensions are labelled
// categories, the time column keeps both its raw period and a numeric
// year, measures are float64 with NaN for missing values.
package dataset

import (
	"math"
	"slices"
)

type Record struct {
	Labels map[string]string
	Period string
	// Year is zero when Period is not a plain year (e.g. "2023M01").
	Year   int
	Values map[string]float64
}

type Frame struct {
	Dimensions []string
	TimeKey    string
	Measures   []string
	Records    []Record
}

func (f Frame) Len() int {
	return len(f.Records)
}

// Label returns the value of a dimension for a record, the time key
// resolves to the raw period.
func (f Frame) Label(r Record, key string) string {
	if key != "" && key == f.TimeKey {
		return r.Period
	}
	return r.Labels[key]
}

func (f Frame) HasMeasure(name string) bool {
	return slices.Contains(f.Measures, name)
}

func (f Frame) HasDimension(name string) bool {
	return slices.Contains(f.Dimensions, name) || (name != "" && name == f.TimeKey)
}

func (f Frame) withRecords(records []Record) Frame {
	return Frame{
		Dimensions: slices.Clone(f.Dimensions),
		TimeKey:    f.TimeKey,
		Measures:   slices.Clone(f.Measures),
		Records:    records,
	}
}

func (f Frame) Filter(keep func(Record) bool) Frame {
	var out []Record
	for _, r := range f.Records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return f.withRecords(out)
}

// Exclude drops every record whose dimension equals value.
func (f Frame) Exclude(key, value string) Frame {
	return f.Filter(func(r Record) bool {
		return f.Label(r, key) != value
	})
}

// Select keeps the records whose dimension is one of values.
func (f Frame) Select(key string, values ...string) Frame {
	return f.Filter(func(r Record) bool {
		return slices.Contains(values, f.Label(r, key))
	})
}

// MapLabels rewrites one dimension of every record.
func (f Frame) MapLabels(key string, fn func(string) string) Frame {
	out := make([]Record, len(f.Records))
	for i, r := range f.Records {
		labels := make(map[string]string, len(r.Labels))
		for k, v := range r.Labels {
			labels[k] = v
		}
		if v, ok := labels[key]; ok {
			labels[key] = fn(v)
		}
		out[i] = Record{Labels: labels, Period: r.Period, Year: r.Year, Values: r.Values}
	}
	return f.withRecords(out)
}

// Drop removes dimensions from the frame.
func (f Frame) Drop(keys ...string) Frame {
	dims := make([]string, 0, len(f.Dimensions))
	for _, d := range f.Dimensions {
		if !slices.Contains(keys, d) {
			dims = append(dims, d)
		}
	}
	out := make([]Record, len(f.Records))
	for i, r := range f.Records {
		labels := make(map[string]string, len(dims))
		for _, d := range dims {
			if v, ok := r.Labels[d]; ok {
				labels[d] = v
			}
		}
		out[i] = Record{Labels: labels, Period: r.Period, Year: r.Year, Values: r.Values}
	}
	res := f.withRecords(out)
	res.Dimensions = dims
	return res
}

// Derive adds a computed measure to every record.
func (f Frame) Derive(name string, fn func(Record) float64) Frame {
	out := make([]Record, len(f.Records))
	for i, r := range f.Records {
		values := make(map[string]float64, len(r.Values)+1)
		for k, v := range r.Values {
			values[k] = v
		}
		values[name] = fn(r)
		out[i] = Record{Labels: r.Labels, Period: r.Period, Year: r.Year, Values: values}
	}
	res := f.withRecords(out)
	if !res.HasMeasure(name) {
		res.Measures = append(res.Measures, name)
	}
	return res
}

// Value returns NaN for measures the record does not carry.
func (r Record) Value(measure string) float64 {
	v, ok := r.Values[measure]
	if !ok {
		return math.NaN()
	}
	return v
}

// Sum adds a measure over all records, NaN values are skipped.
func (f Frame) Sum(measure string) float64 {
	var total float64
	for _, r := range f.Records {
		v := r.Value(measure)
		if math.IsNaN(v) {
			continue
		}
		total += v
	}
	return total
}

// Years returns the distinct years present in the frame, ascending.
func (f Frame) Years() []int {
	seen := map[int]bool{}
	var years []int
	for _, r := range f.Records {
		if seen[r.Year] {
			continue
		}
		seen[r.Year] = true
		years = append(years, r.Year)
	}
	slices.Sort(years)
	return years
}

// Labels returns the distinct values of a dimension in first-seen order.
func (f Frame) Labels(key string) []string {
	seen := map[string]bool{}
	var labels []string
	for _, r := range f.Records {
		l := f.Label(r, key)
		if seen[l] {
			continue
		}
		seen[l] = true
		labels = append(labels, l)
	}
	return labels
}
