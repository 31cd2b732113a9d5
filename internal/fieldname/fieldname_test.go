package fieldname

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reparper/reparper/internal/catalog"
)

func TestDeriveGrammar(t *testing.T) {
	assert.Equal(t, "Student b", Derive(StudentName, "Student ", "", "b"))
	assert.Equal(t, "number b", Derive(StudentNumber, "number ", "", "b"))
	assert.Equal(t, "Skills/Habits 1b", Derive(FreeComment, "Skills/Habits ", "", "b"))
	assert.Equal(t, "Reading Textbb", Derive(SubjectComment, "Reading Text", "", "b"))
	assert.Equal(t, "R1bb", Derive(Score, "R", "1", "b"))
	assert.Equal(t, "R2cc", Derive(Score, "R", "2", "c"))
	assert.Equal(t, "Res1b", Derive(Skill, "Res", "1", "b"))
	assert.Equal(t, "ref2p", Derive(Skill, "ref", "2", "p"))
}

func TestFreeCommentIgnoresRequestedSemester(t *testing.T) {
	// The template only carries the semester-1 form of this field.
	assert.Equal(t, "Skills/Habits 1b", Derive(FreeComment, "Skills/Habits ", "2", "b"))
}

func TestDeriverSlotLetters(t *testing.T) {
	d := NewDeriver(catalog.Default())

	assert.Equal(t, "b", d.SlotLetter(0))
	assert.Equal(t, "p", d.SlotLetter(14))
	assert.Equal(t, "", d.SlotLetter(15))
	assert.Equal(t, "", d.SlotLetter(-1))

	// Letters are distinct, so two students never share a field.
	seen := make(map[string]bool)
	for i := 0; i < catalog.Default().Capacity(); i++ {
		letter := d.SlotLetter(i)
		assert.False(t, seen[letter], "duplicate slot letter %q", letter)
		seen[letter] = true
	}
}

func TestDeriverSlotFields(t *testing.T) {
	d := NewDeriver(catalog.Default())

	assert.Equal(t, "Student c", d.StudentNameField("c"))
	assert.Equal(t, "number c", d.StudentNumberField("c"))
	assert.Equal(t, "Skills/Habits 1c", d.FreeCommentField("c"))
}

func TestSemesterOneFieldsAreSubsetOfSemesterTwoRun(t *testing.T) {
	// A semester-2 run writes its own fields plus the semester-1 skill and
	// score fields, so a template holding every semester-2-run field also
	// holds every field a semester-1 run derives.
	cat := catalog.Default()
	d := NewDeriver(cat)

	fieldsFor := func(sem string, backfill bool) map[string]bool {
		set := make(map[string]bool)
		for _, letter := range cat.SlotLetters {
			set[d.StudentNameField(letter)] = true
			set[d.StudentNumberField(letter)] = true
			set[d.FreeCommentField(letter)] = true
			for _, skill := range cat.Skills {
				set[Derive(Skill, skill.Prefix, sem, letter)] = true
				if backfill {
					set[Derive(Skill, skill.Prefix, "1", letter)] = true
				}
			}
			for _, subject := range cat.Subjects {
				set[Derive(Score, subject.ScorePrefix, sem, letter)] = true
				set[Derive(SubjectComment, subject.CommentPrefix, "", letter)] = true
				if backfill {
					set[Derive(Score, subject.ScorePrefix, "1", letter)] = true
				}
			}
		}
		return set
	}

	s1Run := fieldsFor("1", false)
	s2Run := fieldsFor("2", true)

	for field := range s1Run {
		assert.True(t, s2Run[field], "semester-2 run misses field %q", field)
	}
}

func TestFormatStudentNumber(t *testing.T) {
	assert.Equal(t, "5207", FormatStudentNumber("5-2", "7"))
	assert.Equal(t, "5212", FormatStudentNumber("5-2", "12"))
	assert.Equal(t, "1101", FormatStudentNumber("1-1", "1"))
	assert.Equal(t, "3100", FormatStudentNumber("3-1", ""))
	assert.Equal(t, "42123", FormatStudentNumber("4-2", "123"))
}
