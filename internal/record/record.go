// Package record merges one gender group's partitioned data into flat
// per-student records, the shape the PDF filler consumes. Missing lookups
// at any stage resolve to empty strings; a half-filled spreadsheet is
// normal input, not an error.
package record

// SemesterPair is a value per semester, used for skill ratings and the
// free-text comment.
type SemesterPair struct {
	S1 string
	S2 string
}

// SubjectResult is a subject's achievement level and resolved comment per
// semester.
type SubjectResult struct {
	S1        string
	S1Comment string
	S2        string
	S2Comment string
}

// Semester selects the level for "1" or "2".
func (r SubjectResult) Semester(sem string) string {
	if sem == "2" {
		return r.S2
	}
	return r.S1
}

// Comment selects the comment for "1" or "2".
func (r SubjectResult) Comment(sem string) string {
	if sem == "2" {
		return r.S2Comment
	}
	return r.S1Comment
}

// Semester selects the value for "1" or "2".
func (p SemesterPair) Semester(sem string) string {
	if sem == "2" {
		return p.S2
	}
	return p.S1
}

// StudentRecord is the canonical merge target: everything the filler
// needs for one student slot. Built once per run and never mutated.
type StudentRecord struct {
	StudentID string
	Name      string
	Number    string

	// Skills and Subjects are keyed by the catalog's canonical keys.
	Skills   map[string]SemesterPair
	Subjects map[string]SubjectResult
	Comment  SemesterPair
}
