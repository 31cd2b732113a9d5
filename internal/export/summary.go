// Package export produces the supplementary run outputs: an at-a-glance
// class summary PDF and a worksheet of the flattened student records.
package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/reparper/reparper/internal/catalog"
	"github.com/reparper/reparper/internal/record"
)

// GroupRecords is one gender group's records with its display label.
type GroupRecords struct {
	Label   string
	Records []record.StudentRecord
}

// SummaryOptions configures the summary PDF.
type SummaryOptions struct {
	FontFamily     string
	FontSize       float64
	HeaderFontSize float64
	TitleFontSize  float64
	HeaderFill     [3]int
	AlternateFill  [3]int
}

// DefaultSummaryOptions returns the default summary styling.
func DefaultSummaryOptions() SummaryOptions {
	return SummaryOptions{
		FontFamily:     "Arial",
		FontSize:       7,
		HeaderFontSize: 7,
		TitleFontSize:  14,
		HeaderFill:     [3]int{68, 114, 196},
		AlternateFill:  [3]int{242, 242, 242},
	}
}

// SummaryGenerator renders class summary PDFs.
type SummaryGenerator struct {
	cat     catalog.Catalog
	options SummaryOptions
}

// NewSummaryGenerator creates a generator.
func NewSummaryGenerator(cat catalog.Catalog, options SummaryOptions) *SummaryGenerator {
	return &SummaryGenerator{cat: cat, options: options}
}

// Generate renders one landscape table per group: every student's subject
// levels and skill ratings for the requested semester.
func (g *SummaryGenerator) Generate(title, semester string, groups []GroupRecords) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)

	for _, group := range groups {
		g.renderGroup(pdf, title, semester, group)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render summary PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *SummaryGenerator) renderGroup(pdf *gofpdf.Fpdf, title, semester string, group GroupRecords) {
	pdf.AddPage()

	pdf.SetFont(g.options.FontFamily, "B", g.options.TitleFontSize)
	pdf.CellFormat(0, 10, fmt.Sprintf("%s - %s - Semester %s", title, group.Label, semester), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	headers := []string{"Student", "No."}
	for _, subject := range g.cat.Subjects {
		headers = append(headers, subject.DisplayName)
	}
	for _, skill := range g.cat.Skills {
		headers = append(headers, skill.SheetKey)
	}

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right

	nameWidth := 40.0
	numberWidth := 12.0
	colWidth := (usable - nameWidth - numberWidth) / float64(len(headers)-2)

	widthOf := func(col int) float64 {
		switch col {
		case 0:
			return nameWidth
		case 1:
			return numberWidth
		default:
			return colWidth
		}
	}

	fill := g.options.HeaderFill
	pdf.SetFillColor(fill[0], fill[1], fill[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont(g.options.FontFamily, "B", g.options.HeaderFontSize)
	for i, h := range headers {
		pdf.CellFormat(widthOf(i), 6, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(g.options.FontFamily, "", g.options.FontSize)

	for rowIdx, rec := range group.Records {
		shaded := rowIdx%2 == 1
		if shaded {
			alt := g.options.AlternateFill
			pdf.SetFillColor(alt[0], alt[1], alt[2])
		}

		cells := []string{rec.Name, rec.Number}
		for _, subject := range g.cat.Subjects {
			cells = append(cells, rec.Subjects[subject.Key].Semester(semester))
		}
		for _, skill := range g.cat.Skills {
			cells = append(cells, rec.Skills[skill.Key].Semester(semester))
		}

		for i, c := range cells {
			align := "C"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widthOf(i), 5, c, "1", 0, align, shaded, 0, "")
		}
		pdf.Ln(-1)
	}
}
