// Package catalog holds the immutable lookup data that ties spreadsheet
// columns to report-card form fields: the fixed skill and subject sets,
// their per-table lookup keys, the form-field prefixes, the slot letter
// alphabet and the font sizes per field category.
//
// Components receive a Catalog at construction instead of reading package
// globals so tests can swap in reduced tables.
package catalog

// Skill describes one of the 21st-century skill attributes.
type Skill struct {
	// Key is the canonical record key, e.g. "risk_taking".
	Key string
	// SheetKey is the case-folded column label used by the skills sheet,
	// e.g. "risk-taking".
	SheetKey string
	// Prefix is the form-field prefix; the full field name is
	// prefix + semester digit + slot letter, e.g. "ref1b".
	Prefix string
}

// Subject describes one graded subject.
type Subject struct {
	// Key is the canonical record key, e.g. "use_of_english".
	Key string
	// ScoreKey is the case-folded column label used by the scores sheet,
	// e.g. "use of english".
	ScoreKey string
	// DisplayName is the unfolded subject label used by the
	// comments-by-level table, e.g. "Use of English".
	DisplayName string
	// ScorePrefix builds the achievement level field:
	// prefix + semester digit + doubled slot letter, e.g. "UE1bb".
	ScorePrefix string
	// CommentPrefix builds the subject comment field:
	// prefix + doubled slot letter, e.g. "Use of English Textbb".
	CommentPrefix string
}

// FontSizes are the point sizes applied per field category.
type FontSizes struct {
	Title          float64
	CoverPage      float64
	SkillsScores   float64
	SubjectComment float64
	FreeComment    float64
}

// Catalog is the full attribute table consumed by the record builder,
// the field-name deriver and the PDF filler.
type Catalog struct {
	Skills      []Skill
	Subjects    []Subject
	SlotLetters []string
	Fonts       FontSizes

	// Cover-page field names, written once per document.
	TitleField   string
	DateField    string
	TeacherField string

	// Per-slot student identity fields and the free-text comment field.
	StudentNamePrefix   string
	StudentNumberPrefix string
	FreeCommentPrefix   string
}

// Capacity is the number of student slots one template holds.
func (c Catalog) Capacity() int { return len(c.SlotLetters) }

// Default returns the catalog matching the school's report-card template.
// The prefixes are literal form-field fragments from that template and are
// case- and whitespace-sensitive.
func Default() Catalog {
	return Catalog{
		Skills: []Skill{
			{Key: "responsibility", SheetKey: "responsibility", Prefix: "Res"},
			{Key: "organization", SheetKey: "organization", Prefix: "Or"},
			{Key: "collaboration", SheetKey: "collaboration", Prefix: "co"},
			{Key: "communication", SheetKey: "communication", Prefix: "Com"},
			{Key: "thinking", SheetKey: "thinking", Prefix: "thin"},
			{Key: "inquiry", SheetKey: "inquiry", Prefix: "inqu"},
			{Key: "risk_taking", SheetKey: "risk-taking", Prefix: "ref"},
			{Key: "open_minded", SheetKey: "open-minded", Prefix: "rt"},
		},
		Subjects: []Subject{
			{Key: "reading", ScoreKey: "reading", DisplayName: "Reading", ScorePrefix: "R", CommentPrefix: "Reading Text"},
			{Key: "writing", ScoreKey: "writing", DisplayName: "Writing", ScorePrefix: "W", CommentPrefix: "Writing Text"},
			{Key: "speaking", ScoreKey: "speaking", DisplayName: "Speaking", ScorePrefix: "Sp", CommentPrefix: "Speaking Text"},
			{Key: "listening", ScoreKey: "listening", DisplayName: "Listening", ScorePrefix: "L", CommentPrefix: "Listening Text"},
			{Key: "use_of_english", ScoreKey: "use of english", DisplayName: "Use of English", ScorePrefix: "UE", CommentPrefix: "Use of English Text"},
			{Key: "mathematics", ScoreKey: "mathematics", DisplayName: "Mathematics", ScorePrefix: "M", CommentPrefix: "math Text"},
			{Key: "social_studies", ScoreKey: "social studies", DisplayName: "Social Studies", ScorePrefix: "SS", CommentPrefix: "S.S Text"},
			{Key: "science", ScoreKey: "science", DisplayName: "Science", ScorePrefix: "SC", CommentPrefix: "SciText"},
		},
		SlotLetters: []string{"b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n", "o", "p"},
		Fonts: FontSizes{
			Title:          20,
			CoverPage:      15,
			SkillsScores:   11,
			SubjectComment: 7.5,
			FreeComment:    8.5,
		},
		TitleField:          "Text15",
		DateField:           "July/feb",
		TeacherField:        "T:name",
		StudentNamePrefix:   "Student ",
		StudentNumberPrefix: "number ",
		FreeCommentPrefix:   "Skills/Habits ",
	}
}
