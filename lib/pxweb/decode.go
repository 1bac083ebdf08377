package pxweb

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"statcharts/lib/dataset"
	"statcharts/lib/textutil"
)

type keyColumn struct {
	name   string
	isTime bool
}

// Decode flattens a table response into a frame. Dimension codes are
// replaced by their labels from meta, measures that do not parse
// (e.g. ".." for missing data) become NaN.
func Decode(resp Response, meta Metadata) (dataset.Frame, error) {
	var frame dataset.Frame
	var keyColumns []keyColumn

	for _, col := range resp.Columns {
		name := textutil.ColumnKey(col.Text)
		switch col.Type {
		case ColumnMeasure:
			frame.Measures = append(frame.Measures, name)
		case ColumnTime:
			if frame.TimeKey == "" {
				frame.TimeKey = name
				keyColumns = append(keyColumns, keyColumn{name: name, isTime: true})
				continue
			}
			frame.Dimensions = append(frame.Dimensions, name)
			keyColumns = append(keyColumns, keyColumn{name: name})
		default:
			frame.Dimensions = append(frame.Dimensions, name)
			keyColumns = append(keyColumns, keyColumn{name: name})
		}
	}

	mappings := labelMappings(meta, frame.Dimensions)

	frame.Records = make([]dataset.Record, 0, len(resp.Data))
	for i, row := range resp.Data {
		if len(row.Key) < len(keyColumns) {
			return dataset.Frame{}, fmt.Errorf(
				"decode row %d: %d keys for %d key columns",
				i, len(row.Key), len(keyColumns),
			)
		}

		record := dataset.Record{
			Labels: make(map[string]string, len(frame.Dimensions)),
			Values: make(map[string]float64, len(frame.Measures)),
		}
		for j, col := range keyColumns {
			code := row.Key[j]
			if col.isTime {
				record.Period = code
				record.Year = parseYear(code)
				continue
			}
			label, ok := mappings[col.name][code]
			if !ok {
				label = code
			}
			record.Labels[col.name] = label
		}
		for j, measure := range frame.Measures {
			record.Values[measure] = math.NaN()
			if j < len(row.Values) {
				record.Values[measure] = parseMeasure(row.Values[j])
			}
		}
		frame.Records = append(frame.Records, record)
	}

	return frame, nil
}

// labelMappings maps code -> label for every dimension whose caption
// matches a metadata variable.
func labelMappings(meta Metadata, dimensions []string) map[string]map[string]string {
	wanted := make(map[string]bool, len(dimensions))
	for _, d := range dimensions {
		wanted[d] = true
	}

	mappings := map[string]map[string]string{}
	for _, v := range meta.Variables {
		name := textutil.ColumnKey(v.Text)
		if !wanted[name] || len(v.ValueTexts) == 0 {
			continue
		}
		m := make(map[string]string, len(v.Values))
		for i, code := range v.Values {
			if i >= len(v.ValueTexts) {
				break
			}
			m[code] = v.ValueTexts[i]
		}
		mappings[name] = m
	}
	return mappings
}

func parseMeasure(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func parseYear(period string) int {
	year, err := strconv.Atoi(strings.TrimSpace(period))
	if err != nil {
		return 0
	}
	return year
}
