package report

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

func sheetName(t Table, i int) string {
	name := t.Name
	if name == "" {
		name = fmt.Sprintf("Table %d", i+1)
	}
	runes := []rune(name)
	if len(runes) > maxSheetName {
		name = string(runes[:maxSheetName])
	}
	return name
}

// WriteWorkbook saves the tables into one workbook, one sheet each.
func WriteWorkbook(path string, tables []Table) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tables {
		sheet := sheetName(t, i)
		if i == 0 {
			err := f.SetSheetName("Sheet1", sheet)
			if err != nil {
				return err
			}
		} else {
			_, err := f.NewSheet(sheet)
			if err != nil {
				return err
			}
		}

		err := writeSheet(f, sheet, t)
		if err != nil {
			return fmt.Errorf("write sheet %s: %w", sheet, err)
		}
	}

	return f.SaveAs(path)
}

func writeSheet(f *excelize.File, sheet string, t Table) error {
	for col, h := range t.Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		err = f.SetCellValue(sheet, cell, h)
		if err != nil {
			return err
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		err = f.SetColWidth(sheet, name, name, 20)
		if err != nil {
			return err
		}
	}

	for i, row := range t.Rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if v, ok := value.(float64); ok && math.IsNaN(v) {
				continue
			}
			err = f.SetCellValue(sheet, cell, value)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
