package formdoc

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// pdfcpuDocument implements Document over pdfcpu. Opening a template
// exports its form once to learn the field vocabulary, so lookups of
// misspelled field names fail before any filling happens. Writes are
// collected in memory and applied in a single FillForm pass on Save.
//
// pdfcpu regenerates field appearance streams itself during fill, so
// per-field font sizes and embedded font bytes are accepted to satisfy
// the interface but the final appearance pass is pdfcpu's.
type pdfcpuDocument struct {
	template []byte
	known    map[string]struct{}
	values   map[string]string
	fonts    []string
}

// formSpec mirrors the slice of pdfcpu's form JSON we exchange with it:
// pages of text fields addressed by id.
type formSpec struct {
	Forms []formPage `json:"forms"`
}

type formPage struct {
	TextFields []textFieldSpec `json:"textfield"`
}

type textFieldSpec struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Value  string `json:"value"`
	Locked bool   `json:"locked,omitempty"`
}

// NewPDFCPUDocument opens a form template for filling.
func NewPDFCPUDocument(template []byte) (Document, error) {
	var exported bytes.Buffer
	if err := api.ExportFormJSON(bytes.NewReader(template), &exported, "template.pdf", nil); err != nil {
		return nil, fmt.Errorf("failed to read template form: %w", err)
	}

	var spec formSpec
	if err := json.Unmarshal(exported.Bytes(), &spec); err != nil {
		return nil, fmt.Errorf("failed to parse template form: %w", err)
	}

	known := make(map[string]struct{})
	for _, page := range spec.Forms {
		for _, f := range page.TextFields {
			if f.Name != "" {
				known[f.Name] = struct{}{}
			}
			if f.ID != "" {
				known[f.ID] = struct{}{}
			}
		}
	}

	return &pdfcpuDocument{
		template: template,
		known:    known,
		values:   make(map[string]string),
	}, nil
}

// PDFCPULoader adapts NewPDFCPUDocument to the Loader signature.
func PDFCPULoader(template []byte) (Document, error) {
	return NewPDFCPUDocument(template)
}

func (d *pdfcpuDocument) GetTextField(name string) (TextField, error) {
	if _, ok := d.known[name]; !ok {
		return nil, &FieldNotFoundError{Field: name}
	}
	return &pdfcpuField{doc: d, name: name}, nil
}

func (d *pdfcpuDocument) EmbedFont(name string, data []byte) (Font, error) {
	d.fonts = append(d.fonts, name)
	return pdfcpuFont(name), nil
}

func (d *pdfcpuDocument) Save() ([]byte, error) {
	spec := formSpec{Forms: []formPage{{}}}
	for name, value := range d.values {
		spec.Forms[0].TextFields = append(spec.Forms[0].TextFields, textFieldSpec{
			ID:    name,
			Name:  name,
			Value: value,
		})
	}

	data, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode form values: %w", err)
	}

	var out bytes.Buffer
	if err := api.FillForm(bytes.NewReader(d.template), bytes.NewReader(data), &out, nil); err != nil {
		return nil, fmt.Errorf("failed to fill form: %w", err)
	}
	return out.Bytes(), nil
}

type pdfcpuField struct {
	doc  *pdfcpuDocument
	name string
}

func (f *pdfcpuField) SetText(text string) { f.doc.values[f.name] = text }

func (f *pdfcpuField) SetFontSize(size float64) {}

func (f *pdfcpuField) UpdateAppearances(font Font) {}

type pdfcpuFont string

func (f pdfcpuFont) Name() string { return string(f) }
