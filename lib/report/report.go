// Package report prints tables to the terminal and exports them as
// wikitables or spreadsheets.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"statcharts/lib/i18n"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Table is a titled grid of cells. Cells are strings, ints or floats.
type Table struct {
	// Name is used as the sheet name when exporting.
	Name   string
	Title  string
	Header []string
	Rows   [][]any
}

func (t Table) Len() int {
	return len(t.Rows)
}

func newWriter(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetOutputMirror(w)
	return tw
}

func formatCell(v any) string {
	switch v := v.(type) {
	case float64:
		if math.IsNaN(v) {
			return "NaN"
		}
		return strconv.FormatFloat(v, 'f', 2, 64)
	case int:
		return i18n.FormatInt(int64(v), i18n.English)
	case int64:
		return i18n.FormatInt(v, i18n.English)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Print renders the table with numbers right aligned. The title goes on
// its own line above the table.
func Print(w io.Writer, t Table) {
	if t.Title != "" {
		fmt.Fprintln(w, t.Title)
	}
	tw := newWriter(w)

	header := make(table.Row, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	tw.AppendHeader(header)

	var configs []table.ColumnConfig
	for col := range t.Header {
		if numericColumn(t, col) {
			configs = append(configs, table.ColumnConfig{Number: col + 1, Align: text.AlignRight})
		}
	}
	tw.SetColumnConfigs(configs)

	for _, r := range t.Rows {
		row := make(table.Row, len(r))
		for i, cell := range r {
			row[i] = formatCell(cell)
		}
		tw.AppendRow(row)
	}
	tw.Render()
}

func numericColumn(t Table, col int) bool {
	if len(t.Rows) == 0 {
		return false
	}
	for _, r := range t.Rows {
		if col >= len(r) {
			return false
		}
		switch r[col].(type) {
		case float64, int, int64:
		default:
			return false
		}
	}
	return true
}

// Wikitable renders a sortable MediaWiki table, cells are written as
// they are.
func Wikitable(header []string, rows [][]string) string {
	var out strings.Builder
	out.WriteString("{| class=\"wikitable sortable\"\n")
	for _, h := range header {
		fmt.Fprintf(&out, "! %s\n", h)
	}
	for _, row := range rows {
		out.WriteString("|-\n| ")
		out.WriteString(strings.Join(row, " || "))
		out.WriteString("\n")
	}
	out.WriteString("|}")
	return out.String()
}
