package worldbank

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// preambleLines precede the header of every indicator csv.
const preambleLines = 4

// Row is one country or aggregate of an indicator csv. Years without a
// value are absent from Values.
type Row struct {
	Name   string
	Code   string
	Values map[string]float64
}

// Latest returns the value of the first year that has one.
func (r Row) Latest(years ...string) (float64, string, bool) {
	for _, y := range years {
		v, ok := r.Values[y]
		if ok {
			return v, y, true
		}
	}
	return 0, "", false
}

// ReadCSV parses an indicator csv as published by the World Bank.
func ReadCSV(r io.Reader) ([]Row, error) {
	br := bufio.NewReader(r)
	for i := 0; i < preambleLines; i++ {
		_, err := br.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("read preamble: %w", err)
		}
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	// every line ends with a comma
	if len(header) > 0 && strings.TrimSpace(header[len(header)-1]) == "" {
		header = header[:len(header)-1]
	}

	nameCol, codeCol := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case "Country Name":
			nameCol = i
		case "Country Code":
			codeCol = i
		}
	}
	if nameCol < 0 || codeCol < 0 {
		return nil, fmt.Errorf("header is missing country columns: %v", header)
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		if len(record) <= codeCol {
			continue
		}

		row := Row{
			Name:   record[nameCol],
			Code:   record[codeCol],
			Values: map[string]float64{},
		}
		for i := 0; i < len(header) && i < len(record); i++ {
			if _, err := strconv.Atoi(header[i]); err != nil {
				continue
			}
			value := strings.TrimSpace(record[i])
			if value == "" {
				continue
			}
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				continue
			}
			row.Values[header[i]] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}
