package report

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var citizenship = Table{
	Name:   "Citizenship",
	Title:  "Population by country of citizenship (2023)",
	Header: []string{"Country", "Number", "Percentage"},
	Rows: [][]any{
		{"Sweden", 9_693_862, 91.7},
		{"Syria", 41_520, 0.39},
		{"Unknown", 12, math.NaN()},
	},
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, citizenship)
	out := buf.String()

	require.True(t, strings.HasPrefix(out, "Population by country of citizenship (2023)\n╭"))
	require.Contains(t, out, "9,693,862")
	require.Contains(t, out, "91.70")
	require.Contains(t, out, "NaN")

	buf.Reset()
	untitled := citizenship
	untitled.Title = ""
	Print(&buf, untitled)
	require.True(t, strings.HasPrefix(buf.String(), "╭"))
}

func TestNumericColumn(t *testing.T) {
	require.False(t, numericColumn(citizenship, 0))
	require.True(t, numericColumn(citizenship, 1))
	require.True(t, numericColumn(citizenship, 2))
	require.False(t, numericColumn(Table{}, 0))
}

func TestWikitable(t *testing.T) {
	wiki := Wikitable(
		[]string{"Narodowość", "Odsetek"},
		[][]string{{"Sweden", "91.7%"}, {"Syria", "0.39%"}},
	)
	require.Equal(t, `{| class="wikitable sortable"
! Narodowość
! Odsetek
|-
| Sweden || 91.7%
|-
| Syria || 0.39%
|}`, wiki)
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nationality.xlsx")
	birth := Table{
		Name:   "A sheet name that is much longer than excel allows",
		Header: []string{"Country of birth", "Number"},
		Rows:   [][]any{{"Finland", 131_921}},
	}
	err := WriteWorkbook(path, []Table{citizenship, birth})
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{"Citizenship", "A sheet name that is much longe"}, f.GetSheetList())

	value, err := f.GetCellValue("Citizenship", "A2")
	require.NoError(t, err)
	require.Equal(t, "Sweden", value)
	value, err = f.GetCellValue("Citizenship", "B3")
	require.NoError(t, err)
	require.Equal(t, "41520", value)
	value, err = f.GetCellValue("Citizenship", "C4")
	require.NoError(t, err)
	require.Equal(t, "", value)
}
