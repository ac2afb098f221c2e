package insights

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileField is the form field the backend reads the resume upload from.
const DefaultFileField = "file"

// formPart is either a text field or, when filename is set, a file.
type formPart struct {
	name        string
	value       string
	filename    string
	contentType string
	content     []byte
}

// Form is the multipart payload for AnalyzeResume. Parts keep insertion order.
// The zero value is empty and ready to use.
type Form struct {
	parts []formPart
}

// NewForm returns an empty form.
func NewForm() *Form {
	return &Form{}
}

// AddField appends a text field. Repeated names are sent as repeated parts.
func (f *Form) AddField(name, value string) {
	f.parts = append(f.parts, formPart{name: name, value: value})
}

// AddFile appends a file part read fully from r. The content type is guessed from the
// file extension, then from the content itself.
func (f *Form) AddFile(field, filename string, r io.Reader) error {
	content, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	if contentType == "" {
		contentType = http.DetectContentType(content)
	}

	f.parts = append(f.parts, formPart{
		name:        field,
		filename:    filepath.Base(filename),
		contentType: contentType,
		content:     content,
	})
	return nil
}

// AddFileFromPath appends the file at path under field.
func (f *Form) AddFileFromPath(field, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open resume file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return f.AddFile(field, path, file)
}

// Values returns every value added for a text field, in order.
func (f *Form) Values(name string) []string {
	var values []string
	for _, part := range f.parts {
		if part.name == name && part.filename == "" {
			values = append(values, part.value)
		}
	}
	return values
}

// Len returns the number of parts, text fields and files together.
func (f *Form) Len() int {
	return len(f.parts)
}

// encode writes the form followed by the extra fields as multipart/form-data.
// The form itself is not modified. It returns the body and its content type.
func (f *Form) encode(extra ...formPart) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	parts := make([]formPart, 0, len(f.parts)+len(extra))
	parts = append(parts, f.parts...)
	parts = append(parts, extra...)

	for _, part := range parts {
		if part.filename == "" {
			if err := w.WriteField(part.name, part.value); err != nil {
				return nil, "", fmt.Errorf("failed to write field %s: %w", part.name, err)
			}
			continue
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
			"name":     part.name,
			"filename": part.filename,
		}))
		h.Set("Content-Type", part.contentType)

		pw, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create part for %s: %w", part.filename, err)
		}
		if _, err := pw.Write(part.content); err != nil {
			return nil, "", fmt.Errorf("failed to write %s: %w", part.filename, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish multipart body: %w", err)
	}
	return body, w.FormDataContentType(), nil
}
