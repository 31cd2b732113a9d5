package extract

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Workbook abstracts the spreadsheet reader: an ordered list of named
// sheets, each a row-major array of string cells.
type Workbook interface {
	SheetNames() []string
	Rows(sheet string) ([][]string, error)
}

type xlsxWorkbook struct {
	file *excelize.File
}

// OpenWorkbook parses xlsx bytes into a Workbook.
func OpenWorkbook(data []byte) (Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return &xlsxWorkbook{file: f}, nil
}

func (w *xlsxWorkbook) SheetNames() []string {
	return w.file.GetSheetList()
}

func (w *xlsxWorkbook) Rows(sheet string) ([][]string, error) {
	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}
