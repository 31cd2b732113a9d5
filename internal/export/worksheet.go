package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/reparper/reparper/internal/catalog"
)

// WorksheetExporter writes the flattened student records back out as a
// workbook, one sheet per gender group, for auditing what went into the
// forms.
type WorksheetExporter struct {
	cat catalog.Catalog
}

// NewWorksheetExporter creates an exporter.
func NewWorksheetExporter(cat catalog.Catalog) *WorksheetExporter {
	return &WorksheetExporter{cat: cat}
}

// Export renders the groups into xlsx bytes.
func (e *WorksheetExporter) Export(groups []GroupRecords) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, group := range groups {
		sheet := group.Label
		if i == 0 {
			file.SetSheetName("Sheet1", sheet)
		} else {
			if _, err := file.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("failed to create sheet %q: %w", sheet, err)
			}
		}
		if err := e.writeSheet(file, sheet, group, headerStyle); err != nil {
			return nil, err
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize worksheet: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *WorksheetExporter) writeSheet(file *excelize.File, sheet string, group GroupRecords, headerStyle int) error {
	headers := []string{"Student", "Number"}
	for _, subject := range e.cat.Subjects {
		headers = append(headers,
			subject.DisplayName+" S1",
			subject.DisplayName+" S1 Comment",
			subject.DisplayName+" S2",
			subject.DisplayName+" S2 Comment")
	}
	for _, skill := range e.cat.Skills {
		headers = append(headers, skill.SheetKey+" S1", skill.SheetKey+" S2")
	}
	headers = append(headers, "Comment S1", "Comment S2")

	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		file.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for rowIdx, rec := range group.Records {
		values := []string{rec.Name, rec.Number}
		for _, subject := range e.cat.Subjects {
			r := rec.Subjects[subject.Key]
			values = append(values, r.S1, r.S1Comment, r.S2, r.S2Comment)
		}
		for _, skill := range e.cat.Skills {
			p := rec.Skills[skill.Key]
			values = append(values, p.S1, p.S2)
		}
		values = append(values, rec.Comment.S1, rec.Comment.S2)

		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err := file.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	return nil
}
