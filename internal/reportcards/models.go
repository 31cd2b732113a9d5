package reportcards

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerateRequest carries one uploaded workbook plus the metadata the
// teacher fills in.
type GenerateRequest struct {
	Workbook    []byte
	TeacherName string
	Grade       string // "1" through "6"
	ClassNumber string // "1" through "4"
	Semester    string // "1" or "2"
	Year        int    // academic year start, e.g. 2024
	PublishDate time.Time
}

// ClassName is the grade-section label used in field values and file
// names, e.g. "5-2".
func (r *GenerateRequest) ClassName() string {
	return r.Grade + "-" + r.ClassNumber
}

// Validate checks the metadata ranges before any processing starts.
func (r *GenerateRequest) Validate() error {
	if len(r.Workbook) == 0 {
		return errors.New("workbook file is required")
	}
	if r.TeacherName == "" {
		return errors.New("teacher name is required")
	}
	if !oneOf(r.Grade, "1", "2", "3", "4", "5", "6") {
		return fmt.Errorf("grade must be 1-6, got %q", r.Grade)
	}
	if !oneOf(r.ClassNumber, "1", "2", "3", "4") {
		return fmt.Errorf("class number must be 1-4, got %q", r.ClassNumber)
	}
	if !oneOf(r.Semester, "1", "2") {
		return fmt.Errorf("semester must be 1 or 2, got %q", r.Semester)
	}
	if r.Year < 2000 || r.Year > 2200 {
		return fmt.Errorf("year %d out of range", r.Year)
	}
	if r.PublishDate.IsZero() {
		return errors.New("publish date is required")
	}
	return nil
}

func oneOf(v string, options ...string) bool {
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}

// GeneratedFile is one output of a run.
type GeneratedFile struct {
	Name    string `json:"name"`
	Size    int    `json:"size"`
	Content []byte `json:"-"`
}

// Run is the stored result of one processing run.
type Run struct {
	ID        uuid.UUID       `json:"run_id"`
	CreatedAt time.Time       `json:"created_at"`
	Files     []GeneratedFile `json:"files"`
	Warnings  []string        `json:"warnings,omitempty"`
}

// File looks up a run output by name.
func (r *Run) File(name string) (GeneratedFile, bool) {
	for _, f := range r.Files {
		if f.Name == name {
			return f, true
		}
	}
	return GeneratedFile{}, false
}
