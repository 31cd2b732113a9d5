// Package split partitions extracted class data into two gender groups.
// The roster is partitioned first by exact match on its gender field;
// every other per-student map then follows its student number into
// whichever partition holds it. The comments-by-level table is not
// per-student and is shared into both groups unchanged.
package split

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/reparper/reparper/internal/extract"
)

// Gender values recognized in the roster, case-sensitive.
const (
	Female = "Female"
	Male   = "Male"
)

// Group is one gender's slice of the class data. LevelComments aliases
// the extracted table; it must be treated as read-only.
type Group struct {
	Gender        string
	Roster        *extract.Roster
	Scores        extract.Scores
	Skills        extract.Skills
	Comments      extract.Comments
	LevelComments extract.LevelComments
}

// Result holds both groups plus the students that matched neither.
type Result struct {
	Female  Group
	Male    Group
	Dropped []string
}

// Options controls handling of students whose gender is missing or not
// one of the two recognized values.
type Options struct {
	// StrictGender turns a dropped student into an error instead of the
	// default silent drop.
	StrictGender bool
}

// Splitter partitions class data by gender.
type Splitter struct {
	opts   Options
	logger *zap.Logger
}

// NewSplitter creates a splitter.
func NewSplitter(opts Options, logger *zap.Logger) *Splitter {
	return &Splitter{opts: opts, logger: logger}
}

// Split partitions data into the two gender groups. Roster iteration
// order is preserved within each group, which is what later fixes each
// student's slot letter.
func (s *Splitter) Split(data *extract.ClassData) (*Result, error) {
	res := &Result{
		Female: newGroup(Female, data.LevelComments),
		Male:   newGroup(Male, data.LevelComments),
	}

	for _, id := range data.Roster.IDs() {
		entry, _ := data.Roster.Get(id)
		switch entry.Gender() {
		case Female:
			res.Female.Roster.Add(id, entry)
		case Male:
			res.Male.Roster.Add(id, entry)
		default:
			if s.opts.StrictGender {
				return nil, fmt.Errorf("student %s has unrecognized gender %q", id, entry.Gender())
			}
			s.logger.Warn("dropping student with unrecognized gender",
				zap.String("student", id),
				zap.String("gender", entry.Gender()))
			res.Dropped = append(res.Dropped, id)
		}
	}

	for id, v := range data.Scores {
		if g := res.groupOf(id); g != nil {
			g.Scores[id] = v
		}
	}
	for id, v := range data.Skills {
		if g := res.groupOf(id); g != nil {
			g.Skills[id] = v
		}
	}
	for id, v := range data.Comments {
		if g := res.groupOf(id); g != nil {
			g.Comments[id] = v
		}
	}

	return res, nil
}

func newGroup(gender string, lc extract.LevelComments) Group {
	return Group{
		Gender:        gender,
		Roster:        extract.NewRoster(),
		Scores:        make(extract.Scores),
		Skills:        make(extract.Skills),
		Comments:      make(extract.Comments),
		LevelComments: lc,
	}
}

// groupOf routes a student number to the partition whose roster holds it,
// or nil when the student was dropped or never rostered.
func (r *Result) groupOf(id string) *Group {
	if r.Female.Roster.Has(id) {
		return &r.Female
	}
	if r.Male.Roster.Has(id) {
		return &r.Male
	}
	return nil
}
