package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/reparper/reparper/internal/catalog"
	"github.com/reparper/reparper/internal/record"
)

func testGroups() []GroupRecords {
	return []GroupRecords{
		{
			Label: "Girls",
			Records: []record.StudentRecord{
				{
					StudentID: "1",
					Name:      "Aria Smith",
					Number:    "1",
					Skills: map[string]record.SemesterPair{
						"responsibility": {S1: "E", S2: "O"},
					},
					Subjects: map[string]record.SubjectResult{
						"reading": {S1: "3", S1Comment: "Reads confidently.", S2: "4"},
					},
					Comment: record.SemesterPair{S1: "A strong start."},
				},
			},
		},
		{
			Label: "Boys",
			Records: []record.StudentRecord{
				{StudentID: "2", Name: "Ben Jones", Number: "2"},
			},
		},
	}
}

func TestSummaryGeneratorProducesPDF(t *testing.T) {
	g := NewSummaryGenerator(catalog.Default(), DefaultSummaryOptions())

	data, err := g.Generate("Class 5-2", "1", testGroups())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestSummaryGeneratorEmptyGroups(t *testing.T) {
	g := NewSummaryGenerator(catalog.Default(), DefaultSummaryOptions())

	data, err := g.Generate("Class 5-2", "1", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestWorksheetExporterOneSheetPerGroup(t *testing.T) {
	e := NewWorksheetExporter(catalog.Default())

	data, err := e.Export(testGroups())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	file, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, []string{"Girls", "Boys"}, file.GetSheetList())

	name, err := file.GetCellValue("Girls", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Aria Smith", name)

	header, err := file.GetCellValue("Girls", "C1")
	require.NoError(t, err)
	assert.Equal(t, "Reading S1", header)

	level, err := file.GetCellValue("Girls", "C2")
	require.NoError(t, err)
	assert.Equal(t, "3", level)

	comment, err := file.GetCellValue("Girls", "D2")
	require.NoError(t, err)
	assert.Equal(t, "Reads confidently.", comment)
}
