package extract

// Sheet names recognized in the workbook template. Names are exact,
// emoji prefix included.
const (
	SheetRoster        = "✏️ Class Roster"
	SheetScores        = "✏️ Subject Achievement Scores"
	SheetLevelComments = "✏️ Subject Achievement Comments"
	SheetSkills        = "✏️ 21st Century Skills, Learner"
	SheetComments      = "✏️ Comments"
)

// Sheets skipped entirely: the instructions sheet and two deprecated
// comment sheets (the first carries a trailing space in the template).
var ignoredSheets = map[string]struct{}{
	"📖 Instructions": {},
	"❌ Subject Achievement Comments ": {},
	"❌ Subject Achievement Comments by Student": {},
}

// RosterEntry is one roster row keyed by its header labels
// ("Number", "Name", "Gender", plus whatever else the sheet carries).
type RosterEntry map[string]string

// Name returns the student's display name.
func (e RosterEntry) Name() string { return e["Name"] }

// Gender returns the roster gender tag, exactly as written.
func (e RosterEntry) Gender() string { return e["Gender"] }

// Roster holds roster entries keyed by student number and remembers
// insertion order. Slot letters are assigned positionally later, so the
// order students appear in the sheet must survive extraction.
type Roster struct {
	order   []string
	entries map[string]RosterEntry
}

// NewRoster returns an empty roster.
func NewRoster() *Roster {
	return &Roster{entries: make(map[string]RosterEntry)}
}

// Add inserts or replaces an entry. First insertion fixes the position.
func (r *Roster) Add(id string, e RosterEntry) {
	if _, ok := r.entries[id]; !ok {
		r.order = append(r.order, id)
	}
	r.entries[id] = e
}

// Get looks up an entry by student number.
func (r *Roster) Get(id string) (RosterEntry, bool) {
	e, ok := r.entries[id]
	return e, ok
}

// Has reports whether the roster contains the student number.
func (r *Roster) Has(id string) bool {
	_, ok := r.entries[id]
	return ok
}

// IDs returns student numbers in insertion order.
func (r *Roster) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Len returns the number of entries.
func (r *Roster) Len() int { return len(r.order) }

// SemesterValues maps a case-folded subject or skill label to its value
// for one semester.
type SemesterValues map[string]string

// StudentScores holds one student's achievement levels per semester,
// keyed by case-folded subject name. Values are kept as the cell text;
// they double as lookup keys into LevelComments.
type StudentScores struct {
	Name string
	S1   SemesterValues
	S2   SemesterValues
}

// Scores maps student number to achievement levels.
type Scores map[string]StudentScores

// LevelComments is the shared two-level comment table:
// achievement level -> subject display name -> semester label ("S1"/"S2")
// -> comment text. Populated once per workbook, read-only afterwards.
type LevelComments map[string]map[string]map[string]string

// Lookup resolves a comment, returning "" at any missing stage.
func (lc LevelComments) Lookup(level, subject, semester string) string {
	return lc[level][subject][semester]
}

// StudentSkills holds one student's skill ratings per semester, keyed by
// case-folded skill name. The rating text is displayed as-is.
type StudentSkills struct {
	Name string
	S1   SemesterValues
	S2   SemesterValues
}

// Skills maps student number to skill ratings.
type Skills map[string]StudentSkills

// StudentComment is the long-form comment pair for one student.
type StudentComment struct {
	Name string
	S1   string
	S2   string
}

// Comments maps student number to free-text comments.
type Comments map[string]StudentComment

// ClassData is everything extracted from one workbook.
type ClassData struct {
	Roster        *Roster
	Scores        Scores
	LevelComments LevelComments
	Skills        Skills
	Comments      Comments

	// Unrecognized sheets, kept as raw row-major arrays.
	Other map[string][][]string
}
