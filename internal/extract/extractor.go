// Package extract turns a raw workbook into the five typed structures the
// report-card pipeline consumes: an ordered class roster, achievement
// scores, the shared comments-by-level table, skill ratings and free-text
// comments. Each recognized sheet has its own fixed layout; anything else
// is kept as raw rows.
package extract

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Extractor reshapes workbook sheets by name.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates an extractor.
func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract walks every sheet of the workbook. Ignored sheets are skipped,
// recognized sheets are reshaped, unknown sheets land in Other untouched.
func (e *Extractor) Extract(wb Workbook) (*ClassData, error) {
	data := &ClassData{
		Roster:        NewRoster(),
		Scores:        make(Scores),
		LevelComments: make(LevelComments),
		Skills:        make(Skills),
		Comments:      make(Comments),
		Other:         make(map[string][][]string),
	}

	for _, name := range wb.SheetNames() {
		if _, skip := ignoredSheets[name]; skip {
			continue
		}

		rows, err := wb.Rows(name)
		if err != nil {
			return nil, err
		}

		switch name {
		case SheetRoster:
			e.extractRoster(rows, data.Roster)
		case SheetScores:
			e.extractScores(rows, data.Scores)
		case SheetLevelComments:
			e.extractLevelComments(rows, data.LevelComments)
		case SheetSkills:
			e.extractSkills(rows, data.Skills)
		case SheetComments:
			e.extractComments(rows, data.Comments)
		default:
			e.logger.Debug("keeping unrecognized sheet as raw rows", zap.String("sheet", name))
			data.Other[name] = rows
		}
	}

	return data, nil
}

// extractRoster reads a header row of field names and keys each data row
// by the student number in its first column.
func (e *Extractor) extractRoster(rows [][]string, roster *Roster) {
	if len(rows) == 0 {
		return
	}
	headers := rows[0]

	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		entry := make(RosterEntry, len(headers))
		for i, header := range headers {
			entry[header] = cell(row, i)
		}
		roster.Add(StudentKey(row[0]), entry)
	}
}

// extractScores routes each data cell into s1 or s2 by the semester label
// of its column. Row 0 holds semester labels, row 1 subject labels; data
// starts at row 2 and value columns at index 3. Subject names are
// case-folded.
func (e *Extractor) extractScores(rows [][]string, scores Scores) {
	if len(rows) < 2 {
		return
	}
	semesters, subjects := rows[0], rows[1]

	for _, row := range rows[2:] {
		if len(row) == 0 {
			continue
		}
		student := StudentScores{
			Name: cell(row, 1),
			S1:   make(SemesterValues),
			S2:   make(SemesterValues),
		}
		for col := 3; col < len(row); col++ {
			routeSemesterValue(student.S1, student.S2, cell(semesters, col), cell(subjects, col), row[col])
		}
		scores[StudentKey(row[0])] = student
	}
}

// extractLevelComments builds the shared level -> subject -> semester
// table. The first data column is the achievement level; subject names
// are stored unfolded, exactly as the sheet spells them.
func (e *Extractor) extractLevelComments(rows [][]string, lc LevelComments) {
	if len(rows) < 2 {
		return
	}
	semesters, subjects := rows[0], rows[1]

	for _, row := range rows[2:] {
		if len(row) == 0 {
			continue
		}
		level := row[0]
		if level == "" {
			continue
		}
		if lc[level] == nil {
			lc[level] = make(map[string]map[string]string)
		}
		for col := 1; col < len(row); col++ {
			semester := cell(semesters, col)
			subject := cell(subjects, col)
			if semester == "" || subject == "" {
				continue
			}
			if lc[level][subject] == nil {
				lc[level][subject] = make(map[string]string)
			}
			lc[level][subject][semester] = row[col]
		}
	}
}

// extractSkills matches extractScores except that the header offsets
// differ: skill names sit on row 2 and data starts at row 3.
func (e *Extractor) extractSkills(rows [][]string, skills Skills) {
	if len(rows) < 3 {
		return
	}
	semesters, names := rows[0], rows[2]

	for _, row := range rows[3:] {
		if len(row) == 0 {
			continue
		}
		student := StudentSkills{
			Name: cell(row, 1),
			S1:   make(SemesterValues),
			S2:   make(SemesterValues),
		}
		for col := 3; col < len(row); col++ {
			routeSemesterValue(student.S1, student.S2, cell(semesters, col), cell(names, col), row[col])
		}
		skills[StudentKey(row[0])] = student
	}
}

// extractComments reads the fixed-offset comment sheet: data from row 2,
// semester 1 text in column 3, semester 2 text in column 5.
func (e *Extractor) extractComments(rows [][]string, comments Comments) {
	if len(rows) < 2 {
		return
	}
	for _, row := range rows[2:] {
		if len(row) == 0 {
			continue
		}
		comments[StudentKey(row[0])] = StudentComment{
			Name: cell(row, 1),
			S1:   cell(row, 3),
			S2:   cell(row, 5),
		}
	}
}

// routeSemesterValue files a value under the case-folded label in the
// semester map named by the column's semester tag. Columns with a blank
// semester or label are spacer columns and are skipped.
func routeSemesterValue(s1, s2 SemesterValues, semester, label, value string) {
	if semester == "" || label == "" {
		return
	}
	key := strings.ToLower(label)
	switch semester {
	case "S1":
		s1[key] = value
	case "S2":
		s2[key] = value
	}
}

// StudentKey coerces a student-number cell into the canonical map key: a
// trimmed decimal string. Numeric cells that render with a fractional
// suffix ("101.0") collapse to the plain integer form so the same student
// keys identically across sheets. Non-numeric cells are used as-is.
func StudentKey(raw string) string {
	s := strings.TrimSpace(raw)
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}

// cell returns row[i] or "" when the row is too short.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
