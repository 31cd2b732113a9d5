package record

import (
	"github.com/reparper/reparper/internal/extract"
)

// CommentResolver performs the two-stage subject comment lookup: a
// student's numeric score is first resolved to an achievement level, and
// that level is then the key into the shared comments-by-level table.
type CommentResolver struct {
	scores extract.Scores
	levels extract.LevelComments
}

// NewCommentResolver creates a resolver over one group's score map and
// the shared level-keyed comment table.
func NewCommentResolver(scores extract.Scores, levels extract.LevelComments) *CommentResolver {
	return &CommentResolver{scores: scores, levels: levels}
}

// LevelOf returns the student's achievement level for a subject and
// semester ("1" or "2"), or "" when absent. The subject is addressed by
// its case-folded score-sheet key.
func (r *CommentResolver) LevelOf(studentID, scoreKey, semester string) string {
	student, ok := r.scores[studentID]
	if !ok {
		return ""
	}
	if semester == "2" {
		return student.S2[scoreKey]
	}
	return student.S1[scoreKey]
}

// CommentFor returns the comment stored for an achievement level, subject
// display name and semester ("1" or "2"), or "" when any stage is absent.
func (r *CommentResolver) CommentFor(level, displayName, semester string) string {
	tag := "S1"
	if semester == "2" {
		tag = "S2"
	}
	return r.levels.Lookup(level, displayName, tag)
}

// Resolve chains both stages for one student/subject/semester.
func (r *CommentResolver) Resolve(studentID, scoreKey, displayName, semester string) string {
	level := r.LevelOf(studentID, scoreKey, semester)
	if level == "" {
		return ""
	}
	return r.CommentFor(level, displayName, semester)
}
