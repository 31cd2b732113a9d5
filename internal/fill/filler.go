// Package fill writes canonical student records into the report-card form
// template: cover fields once per document, then every slot's name,
// number, skill ratings, subject levels, subject comments and free-text
// comment, each with its category's font and point size.
//
// When the requested semester is 2 the filler additionally backfills the
// semester-1 fields of every skill rating and subject level, so the
// second-semester card shows both semesters side by side. Names, numbers
// and comment fields have no semester-1 twin and are never backfilled.
package fill

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/reparper/reparper/internal/catalog"
	"github.com/reparper/reparper/internal/fieldname"
	"github.com/reparper/reparper/internal/record"
	"github.com/reparper/reparper/pkg/formdoc"
)

// OverflowPolicy decides what happens when a gender group holds more
// students than the template has slots.
type OverflowPolicy string

const (
	// OverflowReject aborts the document with ErrTooManyStudents.
	OverflowReject OverflowPolicy = "reject"
	// OverflowTruncate drops students past capacity and logs a warning.
	OverflowTruncate OverflowPolicy = "truncate"
)

// ErrTooManyStudents reports a gender group exceeding slot capacity.
var ErrTooManyStudents = errors.New("too many students for template slots")

// Fonts carries the raw font files embedded into each document.
type Fonts struct {
	Regular []byte
	Bold    []byte
	Title   []byte
}

// Params is the per-document metadata collected from the teacher.
type Params struct {
	Semester    string // "1" or "2"
	Grade       string // "1" through "6"
	ClassName   string // grade-section label, e.g. "5-2"
	Year        int    // academic year start, e.g. 2024
	Gender      string // "Female" or "Male"
	TeacherName string
	PublishDate time.Time
}

var gradeWords = map[string]string{
	"1": "One", "2": "Two", "3": "Three", "4": "Four", "5": "Five", "6": "Six",
}

var semesterWords = map[string]string{
	"1": "One", "2": "Two",
}

// Filler fills one form document per call.
type Filler struct {
	cat      catalog.Catalog
	deriver  *fieldname.Deriver
	overflow OverflowPolicy
	logger   *zap.Logger
}

// NewFiller creates a filler.
func NewFiller(cat catalog.Catalog, overflow OverflowPolicy, logger *zap.Logger) *Filler {
	return &Filler{
		cat:      cat,
		deriver:  fieldname.NewDeriver(cat),
		overflow: overflow,
		logger:   logger,
	}
}

// Fill writes every record into the document. Records must already be in
// slot order. A field the template does not contain aborts the document
// with an error naming the field.
func (f *Filler) Fill(ctx context.Context, doc formdoc.Document, records []record.StudentRecord, fonts Fonts, p Params) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(records) > f.cat.Capacity() {
		switch f.overflow {
		case OverflowTruncate:
			f.logger.Warn("truncating gender group to slot capacity",
				zap.String("gender", p.Gender),
				zap.Int("students", len(records)),
				zap.Int("capacity", f.cat.Capacity()))
			records = records[:f.cat.Capacity()]
		default:
			return fmt.Errorf("%w: %d students in %s group, %d slots",
				ErrTooManyStudents, len(records), p.Gender, f.cat.Capacity())
		}
	}

	regular, err := doc.EmbedFont("FiraSans-Regular", fonts.Regular)
	if err != nil {
		return fmt.Errorf("failed to embed regular font: %w", err)
	}
	bold, err := doc.EmbedFont("FiraSans-Bold", fonts.Bold)
	if err != nil {
		return fmt.Errorf("failed to embed bold font: %w", err)
	}
	title, err := doc.EmbedFont("Cambria-Bold", fonts.Title)
	if err != nil {
		return fmt.Errorf("failed to embed title font: %w", err)
	}

	if err := f.fillCover(doc, p, regular, title); err != nil {
		return err
	}

	for i, rec := range records {
		letter := f.deriver.SlotLetter(i)
		if err := f.fillSlot(doc, rec, letter, p, regular, bold); err != nil {
			return fmt.Errorf("student %s (slot %s): %w", rec.StudentID, letter, err)
		}
	}

	return nil
}

// fillCover writes the title, publish date and teacher name, fields that
// exist once per document and carry no slot letter.
func (f *Filler) fillCover(doc formdoc.Document, p Params, regular, title formdoc.Font) error {
	titleText := fmt.Sprintf("Grade %s - Semester %s - %d",
		gradeWords[p.Grade], semesterWords[p.Semester], p.Year)
	if err := setField(doc, f.cat.TitleField, titleText, title, f.cat.Fonts.Title); err != nil {
		return err
	}
	if err := setField(doc, f.cat.DateField, FormatDate(p.PublishDate), regular, f.cat.Fonts.CoverPage); err != nil {
		return err
	}
	return setField(doc, f.cat.TeacherField, p.TeacherName, regular, f.cat.Fonts.CoverPage)
}

// fillSlot writes one student's fields.
func (f *Filler) fillSlot(doc formdoc.Document, rec record.StudentRecord, letter string, p Params, regular, bold formdoc.Font) error {
	sem := p.Semester

	name := f.deriver.StudentNameField(letter)
	if err := setField(doc, name, rec.Name, regular, f.cat.Fonts.CoverPage); err != nil {
		return err
	}

	number := f.deriver.StudentNumberField(letter)
	numberText := fieldname.FormatStudentNumber(p.ClassName, rec.Number)
	if err := setField(doc, number, numberText, regular, f.cat.Fonts.CoverPage); err != nil {
		return err
	}

	// The free-text comment field only exists in its semester-1 form; the
	// value still follows the requested semester.
	comment := f.deriver.FreeCommentField(letter)
	if err := setField(doc, comment, cleanText(rec.Comment.Semester(sem)), regular, f.cat.Fonts.FreeComment); err != nil {
		return err
	}

	for _, skill := range f.cat.Skills {
		field := fieldname.Derive(fieldname.Skill, skill.Prefix, sem, letter)
		value := cleanText(rec.Skills[skill.Key].Semester(sem))
		if err := setField(doc, field, value, bold, f.cat.Fonts.SkillsScores); err != nil {
			return err
		}
	}

	for _, subject := range f.cat.Subjects {
		result := rec.Subjects[subject.Key]

		scoreField := fieldname.Derive(fieldname.Score, subject.ScorePrefix, sem, letter)
		if err := setField(doc, scoreField, cleanText(result.Semester(sem)), bold, f.cat.Fonts.SkillsScores); err != nil {
			return err
		}

		// Subject comments embed no semester digit; the slot letter is
		// doubled and the semester picks the value only.
		commentField := fieldname.Derive(fieldname.SubjectComment, subject.CommentPrefix, "", letter)
		if err := setField(doc, commentField, cleanText(result.Comment(sem)), regular, f.cat.Fonts.SubjectComment); err != nil {
			return err
		}
	}

	if sem == "2" {
		return f.backfillSemesterOne(doc, rec, letter, bold)
	}
	return nil
}

// backfillSemesterOne writes the semester-1 historical values of every
// skill rating and subject level into their semester-1 fields so a
// second-semester card shows both columns. Deliberately asymmetric:
// comments and identity fields are not backfilled.
func (f *Filler) backfillSemesterOne(doc formdoc.Document, rec record.StudentRecord, letter string, bold formdoc.Font) error {
	for _, skill := range f.cat.Skills {
		field := fieldname.Derive(fieldname.Skill, skill.Prefix, "1", letter)
		value := cleanBackfill(rec.Skills[skill.Key].S1)
		if err := setField(doc, field, value, bold, f.cat.Fonts.SkillsScores); err != nil {
			return err
		}
	}
	for _, subject := range f.cat.Subjects {
		field := fieldname.Derive(fieldname.Score, subject.ScorePrefix, "1", letter)
		value := cleanBackfill(rec.Subjects[subject.Key].S1)
		if err := setField(doc, field, value, bold, f.cat.Fonts.SkillsScores); err != nil {
			return err
		}
	}
	return nil
}

// setField resolves a field and applies font, size and text in that
// order.
func setField(doc formdoc.Document, name, text string, font formdoc.Font, size float64) error {
	field, err := doc.GetTextField(name)
	if err != nil {
		return err
	}
	field.UpdateAppearances(font)
	field.SetFontSize(size)
	field.SetText(text)
	return nil
}

// cleanText normalizes line endings and respaces hyphens so bullet-style
// spreadsheet text wraps acceptably in the narrow form fields.
func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "- ", "-")
	return strings.ReplaceAll(s, "-", " - ")
}

// cleanBackfill only normalizes line endings; historical values keep
// their original hyphenation.
func cleanBackfill(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// FileName computes the output file name for one gender document, e.g.
// "5-2 S2 Girls 2024-25.pdf".
func FileName(p Params) string {
	next := (p.Year + 1) % 100
	return fmt.Sprintf("%s S%s %s %d-%02d.pdf", p.ClassName, p.Semester, GenderLabel(p.Gender), p.Year, next)
}

// GenderLabel maps roster gender values to the label used in file names.
func GenderLabel(gender string) string {
	if gender == "Female" {
		return "Girls"
	}
	return "Boys"
}

// FormatDate renders a publish date as "July 2nd, 2026".
func FormatDate(t time.Time) string {
	day := t.Day()
	suffix := "th"
	if day < 11 || day > 13 {
		switch day % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%s %d%s, %d", t.Month().String(), day, suffix, t.Year())
}
