package reportcards

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/reparper/reparper/internal/assets"
	"github.com/reparper/reparper/internal/catalog"
	"github.com/reparper/reparper/internal/config"
	"github.com/reparper/reparper/internal/extract"
	"github.com/reparper/reparper/internal/fieldname"
	"github.com/reparper/reparper/internal/fill"
	"github.com/reparper/reparper/pkg/formdoc"
)

// stubSource serves a fixed bundle without touching the network.
type stubSource struct {
	err error
}

func (s *stubSource) FetchBundle(ctx context.Context, grade string) (*assets.Bundle, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &assets.Bundle{
		Template:    []byte("template"),
		RegularFont: []byte("regular"),
		BoldFont:    []byte("bold"),
		TitleFont:   []byte("title"),
	}, nil
}

// memoryLoader opens memory documents seeded with the full template
// vocabulary and keeps them for assertions.
type memoryLoader struct {
	docs []*formdoc.MemoryDocument
}

func (l *memoryLoader) load(template []byte) (formdoc.Document, error) {
	cat := catalog.Default()
	names := []string{cat.TitleField, cat.DateField, cat.TeacherField}
	d := fieldname.NewDeriver(cat)
	for _, letter := range cat.SlotLetters {
		names = append(names,
			d.StudentNameField(letter),
			d.StudentNumberField(letter),
			d.FreeCommentField(letter))
		for _, skill := range cat.Skills {
			names = append(names,
				fieldname.Derive(fieldname.Skill, skill.Prefix, "1", letter),
				fieldname.Derive(fieldname.Skill, skill.Prefix, "2", letter))
		}
		for _, subject := range cat.Subjects {
			names = append(names,
				fieldname.Derive(fieldname.Score, subject.ScorePrefix, "1", letter),
				fieldname.Derive(fieldname.Score, subject.ScorePrefix, "2", letter),
				fieldname.Derive(fieldname.SubjectComment, subject.CommentPrefix, "", letter))
		}
	}
	doc := formdoc.NewMemoryDocument(names...)
	l.docs = append(l.docs, doc)
	return doc, nil
}

// testWorkbook builds an xlsx class workbook with every recognized sheet.
func testWorkbook(t *testing.T) []byte {
	t.Helper()

	file := excelize.NewFile()
	defer file.Close()

	write := func(sheet string, rows [][]interface{}) {
		_, err := file.NewSheet(sheet)
		require.NoError(t, err)
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, file.SetSheetRow(sheet, cell, &row))
		}
	}

	write(extract.SheetRoster, [][]interface{}{
		{"Number", "Name", "Gender"},
		{"1", "Aria Smith", "Female"},
		{"2", "Ben Jones", "Male"},
	})
	write(extract.SheetScores, [][]interface{}{
		{"", "", "", "S1", "S2"},
		{"Number", "Name", "", "Reading", "Reading"},
		{"1", "Aria Smith", "", "3", "4"},
		{"2", "Ben Jones", "", "2", "3"},
	})
	write(extract.SheetLevelComments, [][]interface{}{
		{"", "S1", "S2"},
		{"Level", "Reading", "Reading"},
		{"2", "Working on fluency.", "Improving steadily."},
		{"3", "Reads confidently.", "Reads fluently."},
		{"4", "Reads independently.", "Reads critically."},
	})
	write(extract.SheetSkills, [][]interface{}{
		{"", "", "", "S1", "S2"},
		{""},
		{"Number", "Name", "", "Responsibility", "Responsibility"},
		{"1", "Aria Smith", "", "E", "O"},
		{"2", "Ben Jones", "", "G", "E"},
	})
	write(extract.SheetComments, [][]interface{}{
		{"header"},
		{"header"},
		{"1", "Aria Smith", "", "A strong start.", "", "A strong finish."},
		{"2", "Ben Jones", "", "Settling in well.", "", "Confident all year."},
	})

	require.NoError(t, file.DeleteSheet("Sheet1"))

	buf, err := file.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func testRequest(t *testing.T) GenerateRequest {
	return GenerateRequest{
		Workbook:    testWorkbook(t),
		TeacherName: "Ms. Rivera",
		Grade:       "5",
		ClassNumber: "2",
		Semester:    "2",
		Year:        2024,
		PublishDate: time.Date(2025, time.February, 14, 0, 0, 0, 0, time.UTC),
	}
}

func newTestService(t *testing.T, cfg config.ProcessingConfig, source assets.Source, loader formdoc.Loader) (*Service, *RunStore) {
	t.Helper()
	store, err := NewRunStore(time.Hour, "@every 10m", zap.NewNop())
	require.NoError(t, err)
	return NewService(cfg, catalog.Default(), source, loader, store, zap.NewNop()), store
}

func TestGenerateProducesBothGenderDocuments(t *testing.T) {
	loader := &memoryLoader{}
	service, store := newTestService(t, config.ProcessingConfig{OverflowPolicy: "reject"}, &stubSource{}, loader.load)

	run, err := service.Generate(context.Background(), testRequest(t))
	require.NoError(t, err)
	require.NotNil(t, run)

	girls, ok := run.File("5-2 S2 Girls 2024-25.pdf")
	require.True(t, ok)
	assert.NotEmpty(t, girls.Content)
	assert.Equal(t, len(girls.Content), girls.Size)

	_, ok = run.File("5-2 S2 Boys 2024-25.pdf")
	require.True(t, ok)

	_, ok = run.File("5-2 S2 Summary 2024.pdf")
	assert.True(t, ok)
	_, ok = run.File("5-2 S2 Records 2024.xlsx")
	assert.True(t, ok)

	stored, ok := store.Get(run.ID)
	require.True(t, ok)
	assert.Equal(t, run, stored)
}

func TestGenerateWritesRecordsIntoSlots(t *testing.T) {
	loader := &memoryLoader{}
	service, _ := newTestService(t, config.ProcessingConfig{OverflowPolicy: "reject"}, &stubSource{}, loader.load)

	_, err := service.Generate(context.Background(), testRequest(t))
	require.NoError(t, err)
	require.Len(t, loader.docs, 2)

	// Each group holds one student, so both documents write slot b only.
	var girls, boys *formdoc.MemoryDocument
	for _, doc := range loader.docs {
		switch doc.Field("Student b").Text {
		case "Aria Smith":
			girls = doc
		case "Ben Jones":
			boys = doc
		}
	}
	require.NotNil(t, girls)
	require.NotNil(t, boys)

	assert.Equal(t, "5201", girls.Field("number b").Text)
	assert.Equal(t, "4", girls.Field("R2bb").Text)
	assert.Equal(t, "3", girls.Field("R1bb").Text)
	assert.Equal(t, "Reads critically.", girls.Field("Reading Textbb").Text)
	assert.Equal(t, "O", girls.Field("Res2b").Text)
	assert.Equal(t, "E", girls.Field("Res1b").Text)
	assert.Equal(t, "A strong finish.", girls.Field("Skills/Habits 1b").Text)
	assert.Equal(t, "Grade Five - Semester Two - 2024", girls.Field("Text15").Text)
	assert.Equal(t, "February 14th, 2025", girls.Field("July/feb").Text)
	assert.Equal(t, "Ms. Rivera", girls.Field("T:name").Text)

	assert.Equal(t, "5202", boys.Field("number b").Text)
	assert.Equal(t, "3", boys.Field("R2bb").Text)
	assert.Equal(t, "Reads fluently.", boys.Field("Reading Textbb").Text)
	assert.Equal(t, "", boys.Field("Student c").Text)
}

func TestGenerateInvalidRequest(t *testing.T) {
	loader := &memoryLoader{}
	service, _ := newTestService(t, config.ProcessingConfig{OverflowPolicy: "reject"}, &stubSource{}, loader.load)

	req := testRequest(t)
	req.Grade = "7"

	run, err := service.Generate(context.Background(), req)
	require.Error(t, err)
	assert.Nil(t, run)
	assert.Empty(t, loader.docs)
}

func TestGenerateAssetFetchFailure(t *testing.T) {
	loader := &memoryLoader{}
	fetchErr := errors.New("template unavailable")
	service, _ := newTestService(t, config.ProcessingConfig{OverflowPolicy: "reject"}, &stubSource{err: fetchErr}, loader.load)

	run, err := service.Generate(context.Background(), testRequest(t))
	require.Error(t, err)
	assert.Nil(t, run)
	assert.ErrorIs(t, err, fetchErr)
}

func TestGenerateOverflowRejected(t *testing.T) {
	loader := &memoryLoader{}
	service, _ := newTestService(t, config.ProcessingConfig{OverflowPolicy: "reject"}, &stubSource{}, loader.load)

	file := excelize.NewFile()
	defer file.Close()
	_, err := file.NewSheet(extract.SheetRoster)
	require.NoError(t, err)
	header := []interface{}{"Number", "Name", "Gender"}
	require.NoError(t, file.SetSheetRow(extract.SheetRoster, "A1", &header))
	for i := 0; i < 16; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		row := []interface{}{i + 1, "Student", "Female"}
		require.NoError(t, file.SetSheetRow(extract.SheetRoster, cell, &row))
	}
	require.NoError(t, file.DeleteSheet("Sheet1"))
	buf, err := file.WriteToBuffer()
	require.NoError(t, err)

	req := testRequest(t)
	req.Workbook = buf.Bytes()

	run, err := service.Generate(context.Background(), req)
	require.Error(t, err)
	assert.Nil(t, run)
	assert.ErrorIs(t, err, fill.ErrTooManyStudents)
}

func TestGenerateCancelledContext(t *testing.T) {
	loader := &memoryLoader{}
	service, _ := newTestService(t, config.ProcessingConfig{OverflowPolicy: "reject"}, &stubSource{}, loader.load)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	run, err := service.Generate(ctx, testRequest(t))
	require.Error(t, err)
	assert.Nil(t, run)
}
