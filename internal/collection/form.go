package collection

import (
	"fmt"
	"strings"

	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
)

// Field names sent by the create and edit flows.
const (
	FieldTitle = "title"
	FieldURL   = "url"
	FieldValue = "value"
)

// Field declares one named form input.
type Field struct {
	Name     string
	Required bool
}

// Form is a minimal controlled form holding string values for a fixed set of fields.
type Form struct {
	fields []Field
	values map[string]string
}

// NewForm creates a form with the given fields in order.
func NewForm(fields ...Field) *Form {
	return &Form{fields: fields, values: make(map[string]string, len(fields))}
}

// NewPlaylistForm returns the form used to create playlists.
func NewPlaylistForm() *Form {
	return NewForm(Field{Name: FieldTitle, Required: true})
}

// NewItemForm returns the form used to add items.
func NewItemForm() *Form {
	return NewForm(Field{Name: FieldURL, Required: true})
}

// Fields returns the declared fields in order.
func (f *Form) Fields() []Field {
	return append([]Field(nil), f.fields...)
}

func (f *Form) has(name string) bool {
	for _, field := range f.fields {
		if field.Name == name {
			return true
		}
	}
	return false
}

// Set stores value under name. Unknown fields are rejected.
func (f *Form) Set(name, value string) error {
	if !f.has(name) {
		return fmt.Errorf("%w: unknown form field %q", shared.ErrInvalidArgument, name)
	}
	f.values[name] = value
	return nil
}

// Get returns the current value of name.
func (f *Form) Get(name string) string {
	return f.values[name]
}

// Submit serializes every field into a payload, or fails with [shared.ErrValidation]
// when a required field is blank.
func (f *Form) Submit() (models.Payload, error) {
	payload := make(models.Payload, len(f.fields))
	for _, field := range f.fields {
		v := f.values[field.Name]
		if field.Required && strings.TrimSpace(v) == "" {
			return nil, fmt.Errorf("%w: %s is required", shared.ErrValidation, field.Name)
		}
		payload[field.Name] = v
	}
	return payload, nil
}

// Reset clears all values.
func (f *Form) Reset() {
	clear(f.values)
}
