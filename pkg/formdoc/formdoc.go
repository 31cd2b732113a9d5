// Package formdoc abstracts the fillable PDF form document. The pipeline
// only ever looks a text field up by name, writes text and styling into
// it, and serializes the document; everything about the PDF binary format
// stays behind this interface. A pdfcpu-backed implementation serves
// production and an in-memory implementation serves tests.
package formdoc

import "fmt"

// Document is one open form document.
type Document interface {
	// GetTextField resolves a field by its exact name. A missing field is
	// an error: a template/data mismatch must surface, not be swallowed.
	GetTextField(name string) (TextField, error)

	// EmbedFont registers a font for use by UpdateAppearances.
	EmbedFont(name string, data []byte) (Font, error)

	// Save serializes the document with all field writes applied.
	Save() ([]byte, error)
}

// TextField is one named text field.
type TextField interface {
	SetText(text string)
	SetFontSize(size float64)
	UpdateAppearances(font Font)
}

// Font is an embedded font handle.
type Font interface {
	Name() string
}

// Loader opens a template into a Document. The production loader is
// pdfcpu-backed; tests substitute a memory loader.
type Loader func(template []byte) (Document, error)

// FieldNotFoundError reports a field the template does not contain.
type FieldNotFoundError struct {
	Field string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("form field %q not found in template", e.Field)
}
