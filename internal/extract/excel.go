package extract

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelExtractor reads each sheet in workbook order, capped at maxRows rows
// per sheet to keep huge exports from ballooning the stored result.
type ExcelExtractor struct {
	maxRows int
}

func (e *ExcelExtractor) Extract(path string, info FileInfo) *Result {
	result := newResult(info)
	capture(result, "xlsx_extraction", func() error {
		return e.extractSheets(path, result)
	})
	return result
}

func (e *ExcelExtractor) extractSheets(path string, result *Result) error {
	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("open workbook failed: %w", err)
	}
	defer workbook.Close()

	for _, name := range workbook.GetSheetList() {
		rows, err := workbook.Rows(name)
		if err != nil {
			return fmt.Errorf("iterate sheet %q failed: %w", name, err)
		}

		var data [][]string
		for count := 0; rows.Next() && count < e.maxRows; count++ {
			cells, err := rows.Columns()
			if err != nil {
				rows.Close()
				return fmt.Errorf("read row in sheet %q failed: %w", name, err)
			}
			data = append(data, cells)
		}
		if err := rows.Close(); err != nil {
			return fmt.Errorf("close sheet %q iterator failed: %w", name, err)
		}

		result.Sheets = append(result.Sheets, Sheet{Name: name, Rows: data})
	}

	result.SheetCount = len(result.Sheets)
	return nil
}
