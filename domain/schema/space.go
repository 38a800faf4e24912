package schema

import (
	"fmt"
)

// Field is one named dimension of a Space.
type Field struct {
	Name string  `json:"name" yaml:"name"`
	Type TypeDef `json:"type" yaml:"type"`
}

// Space is a named product of TypeDefs with a stable field order.
type Space struct {
	Name   string  `json:"name" yaml:"name"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// NewSpace creates a space, failing fast on blank or duplicate field names.
func NewSpace(name string, fields ...Field) (Space, error) {
	if name == "" {
		return Space{}, fmt.Errorf("space name cannot be empty")
	}
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return Space{}, fmt.Errorf("space %q has a field with no name", name)
		}
		if seen[f.Name] {
			return Space{}, fmt.Errorf("space %q declares field %q twice", name, f.Name)
		}
		seen[f.Name] = true
	}
	return Space{Name: name, Fields: fields}, nil
}

// FieldType looks up a field's type by name.
func (s Space) FieldType(name string) (TypeDef, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return TypeDef{}, false
}

// Validate checks a data point against the space shape: missing fields,
// extra fields, and constraint failures are all collected into one list
// rather than stopping at the first.
func (s Space) Validate(data map[string]any) []error {
	var errs []error

	for _, f := range s.Fields {
		value, present := data[f.Name]
		if !present {
			errs = append(errs, fmt.Errorf("space %q: missing field %q", s.Name, f.Name))
			continue
		}
		if !f.Type.CheckValue(value) {
			errs = append(errs, fmt.Errorf("space %q: field %q value %v fails constraint of type %q",
				s.Name, f.Name, value, f.Type.Name))
		}
	}

	for key := range data {
		if _, ok := s.FieldType(key); !ok {
			errs = append(errs, fmt.Errorf("space %q: unexpected field %q", s.Name, key))
		}
	}

	return errs
}
