package schema

import (
	"fmt"
)

// PrimitiveType enumerates the primitives a TypeDef may constrain.
type PrimitiveType string

const (
	PrimitiveInt    PrimitiveType = "int"
	PrimitiveFloat  PrimitiveType = "float"
	PrimitiveBool   PrimitiveType = "bool"
	PrimitiveString PrimitiveType = "string"
)

// Constraint narrows a TypeDef's admissible values. Implementations must
// not panic; CheckValue recovers as a safety net and treats a panic as a
// failed constraint.
type Constraint func(value any) bool

// TypeDef is a named, optionally constrained primitive type.
// Identity is by name.
type TypeDef struct {
	Name        string        `json:"name" yaml:"name"`
	Primitive   PrimitiveType `json:"primitive" yaml:"primitive"`
	Constraint  Constraint    `json:"-" yaml:"-"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Units       string        `json:"units,omitempty" yaml:"units,omitempty"`
}

// NewTypeDef creates a type definition, failing fast on a blank name or
// an unknown primitive.
func NewTypeDef(name string, primitive PrimitiveType, opts ...TypeDefOption) (TypeDef, error) {
	if name == "" {
		return TypeDef{}, fmt.Errorf("type name cannot be empty")
	}
	switch primitive {
	case PrimitiveInt, PrimitiveFloat, PrimitiveBool, PrimitiveString:
	default:
		return TypeDef{}, fmt.Errorf("unknown primitive type %q for type %q", primitive, name)
	}

	td := TypeDef{Name: name, Primitive: primitive}
	for _, opt := range opts {
		opt(&td)
	}
	return td, nil
}

// TypeDefOption configures optional TypeDef fields.
type TypeDefOption func(*TypeDef)

// WithConstraint attaches a value predicate.
func WithConstraint(c Constraint) TypeDefOption {
	return func(td *TypeDef) { td.Constraint = c }
}

// WithDescription attaches a human-readable description.
func WithDescription(desc string) TypeDefOption {
	return func(td *TypeDef) { td.Description = desc }
}

// WithUnits attaches a unit label.
func WithUnits(units string) TypeDefOption {
	return func(td *TypeDef) { td.Units = units }
}

// CheckValue reports whether a value satisfies the constraint. A nil
// constraint admits everything; a panicking constraint is treated as a
// rejection rather than propagated.
func (td TypeDef) CheckValue(value any) (ok bool) {
	if td.Constraint == nil {
		return true
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return td.Constraint(value)
}
