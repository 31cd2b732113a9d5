// Package fieldname derives report-card form-field identifiers. The
// template addresses fifteen student slots by letter and encodes the
// attribute category into the field name through a small grammar:
//
//	student name     "Student b"              prefix + letter
//	student number   "number b"               prefix + letter
//	free comment     "Skills/Habits 1b"       prefix + literal "1" + letter
//	subject comment  "Reading Textbb"         prefix + doubled letter
//	subject score    "R1bb"                   prefix + semester + doubled letter
//	skill rating     "Res1b"                  prefix + semester + letter
//	cover fields     "Text15" "July/feb" "T:name" (fixed)
//
// The grammar is one enumerated rule table resolved by Derive, so the
// whole vocabulary can be audited and tested in isolation.
package fieldname

import (
	"strings"

	"github.com/reparper/reparper/internal/catalog"
)

// Category classifies a field for name derivation and styling.
type Category int

const (
	StudentName Category = iota
	StudentNumber
	FreeComment
	SubjectComment
	Score
	Skill
)

// rule describes how one category assembles its field name.
type rule struct {
	doubleLetter  bool
	semesterDigit bool
	// fixedSemester overrides the requested semester digit. The free-text
	// comment field exists only in its semester-1 form in the template.
	fixedSemester string
}

var rules = map[Category]rule{
	StudentName:    {},
	StudentNumber:  {},
	FreeComment:    {semesterDigit: true, fixedSemester: "1"},
	SubjectComment: {doubleLetter: true},
	Score:          {semesterDigit: true, doubleLetter: true},
	Skill:          {semesterDigit: true},
}

// Deriver computes field names against one catalog.
type Deriver struct {
	cat catalog.Catalog
}

// NewDeriver creates a deriver.
func NewDeriver(cat catalog.Catalog) *Deriver {
	return &Deriver{cat: cat}
}

// Derive resolves the field name for an attribute category, its prefix,
// the semester digit ("1" or "2") and the student's slot letter.
func Derive(cat Category, prefix, semester, letter string) string {
	r := rules[cat]

	var b strings.Builder
	b.WriteString(prefix)
	if r.semesterDigit {
		if r.fixedSemester != "" {
			b.WriteString(r.fixedSemester)
		} else {
			b.WriteString(semester)
		}
	}
	b.WriteString(letter)
	if r.doubleLetter {
		b.WriteString(letter)
	}
	return b.String()
}

// SlotLetter returns the slot letter for a position within a gender
// group, or "" when the position exceeds template capacity.
func (d *Deriver) SlotLetter(index int) string {
	if index < 0 || index >= len(d.cat.SlotLetters) {
		return ""
	}
	return d.cat.SlotLetters[index]
}

// StudentNameField returns the display-name field for a slot.
func (d *Deriver) StudentNameField(letter string) string {
	return Derive(StudentName, d.cat.StudentNamePrefix, "", letter)
}

// StudentNumberField returns the student-number field for a slot.
func (d *Deriver) StudentNumberField(letter string) string {
	return Derive(StudentNumber, d.cat.StudentNumberPrefix, "", letter)
}

// FreeCommentField returns the skills/habits comment field for a slot.
// The semester digit in the name is always "1" regardless of the
// requested semester; only the written value follows the semester.
func (d *Deriver) FreeCommentField(letter string) string {
	return Derive(FreeComment, d.cat.FreeCommentPrefix, "", letter)
}

// FormatStudentNumber renders the value written into a student-number
// field: the class section without dashes followed by the two-digit
// student sequence, e.g. ("5-2", "7") -> "5207".
func FormatStudentNumber(className, number string) string {
	padded := number
	for len(padded) < 2 {
		padded = "0" + padded
	}
	return strings.ReplaceAll(className, "-", "") + padded
}
