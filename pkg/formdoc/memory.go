package formdoc

import (
	"encoding/json"
	"sort"
)

// MemoryDocument is an in-memory Document seeded with a fixed field
// vocabulary. It records every write so tests can assert exactly what the
// filler did, field by field.
type MemoryDocument struct {
	fields map[string]*MemoryField
	fonts  []string
}

// MemoryField records the writes applied to one field.
type MemoryField struct {
	Text     string
	FontSize float64
	FontName string
	SetCount int
}

// NewMemoryDocument creates a document containing exactly the named
// fields.
func NewMemoryDocument(names ...string) *MemoryDocument {
	fields := make(map[string]*MemoryField, len(names))
	for _, n := range names {
		fields[n] = &MemoryField{}
	}
	return &MemoryDocument{fields: fields}
}

// GetTextField fails for any name outside the seeded vocabulary.
func (d *MemoryDocument) GetTextField(name string) (TextField, error) {
	f, ok := d.fields[name]
	if !ok {
		return nil, &FieldNotFoundError{Field: name}
	}
	return f, nil
}

// EmbedFont records the font name.
func (d *MemoryDocument) EmbedFont(name string, data []byte) (Font, error) {
	d.fonts = append(d.fonts, name)
	return memoryFont(name), nil
}

// Save serializes the recorded field texts as JSON, sorted by name.
func (d *MemoryDocument) Save() ([]byte, error) {
	names := make([]string, 0, len(d.fields))
	for n := range d.fields {
		names = append(names, n)
	}
	sort.Strings(names)

	out := make(map[string]string, len(names))
	for _, n := range names {
		out[n] = d.fields[n].Text
	}
	return json.Marshal(out)
}

// Field exposes a recorded field for assertions.
func (d *MemoryDocument) Field(name string) *MemoryField {
	return d.fields[name]
}

// EmbeddedFonts lists fonts in embed order.
func (d *MemoryDocument) EmbeddedFonts() []string {
	return d.fonts
}

func (f *MemoryField) SetText(text string) {
	f.Text = text
	f.SetCount++
}

func (f *MemoryField) SetFontSize(size float64) { f.FontSize = size }

func (f *MemoryField) UpdateAppearances(font Font) {
	if font != nil {
		f.FontName = font.Name()
	}
}

type memoryFont string

func (f memoryFont) Name() string { return string(f) }
