package record

import (
	"github.com/reparper/reparper/internal/catalog"
	"github.com/reparper/reparper/internal/split"
)

// Builder joins roster, scores, skills and comments into canonical
// student records.
type Builder struct {
	cat catalog.Catalog
}

// NewBuilder creates a builder over the given attribute catalog.
func NewBuilder(cat catalog.Catalog) *Builder {
	return &Builder{cat: cat}
}

// Build produces one record per rostered student, in roster order. Every
// lookup that misses resolves to an empty string.
func (b *Builder) Build(group split.Group) []StudentRecord {
	resolver := NewCommentResolver(group.Scores, group.LevelComments)
	records := make([]StudentRecord, 0, group.Roster.Len())

	for _, id := range group.Roster.IDs() {
		entry, _ := group.Roster.Get(id)

		rec := StudentRecord{
			StudentID: id,
			Name:      entry.Name(),
			Number:    id,
			Skills:    make(map[string]SemesterPair, len(b.cat.Skills)),
			Subjects:  make(map[string]SubjectResult, len(b.cat.Subjects)),
		}

		studentSkills := group.Skills[id]
		for _, skill := range b.cat.Skills {
			rec.Skills[skill.Key] = SemesterPair{
				S1: studentSkills.S1[skill.SheetKey],
				S2: studentSkills.S2[skill.SheetKey],
			}
		}

		for _, subject := range b.cat.Subjects {
			rec.Subjects[subject.Key] = SubjectResult{
				S1:        resolver.LevelOf(id, subject.ScoreKey, "1"),
				S1Comment: resolver.Resolve(id, subject.ScoreKey, subject.DisplayName, "1"),
				S2:        resolver.LevelOf(id, subject.ScoreKey, "2"),
				S2Comment: resolver.Resolve(id, subject.ScoreKey, subject.DisplayName, "2"),
			}
		}

		if comment, ok := group.Comments[id]; ok {
			rec.Comment = SemesterPair{S1: comment.S1, S2: comment.S2}
		}

		records = append(records, rec)
	}

	return records
}
