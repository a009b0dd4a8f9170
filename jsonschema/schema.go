// Package jsonschema defines the schema document produced from type
// descriptors: a fixed JSON Schema vocabulary (type, format, enum, items,
// minItems/maxItems, required, properties, additionalProperties, anyOf,
// allOf) plus the boolean schemas true and false.
//
// Documents are order-preserving. Properties keep their declaration order and
// keywords are always encoded in the same order, so encoding is deterministic.
package jsonschema

import "errors"

// ErrUnknownKeyword reports a keyword outside the supported vocabulary.
var ErrUnknownKeyword = errors.New("jsonschema: unknown keyword")

// Schema is a JSON Schema node. A Schema built with True, False or Bool is a
// boolean schema and ignores every other field.
//
// Nil slices are omitted when encoding; non-nil empty Required and Properties
// are encoded as [] and {}.
type Schema struct {
	boolean *bool

	// Core
	Type   string
	Format string
	Enum   []any

	// Array. Items applies to every element; TupleItems types elements by
	// position and encodes as an "items" array. At most one may be set.
	Items      *Schema
	TupleItems []*Schema
	MinItems   *int
	MaxItems   *int

	// Object
	Required             []string
	Properties           Properties
	AdditionalProperties *Schema

	// Composition
	AnyOf []*Schema
	AllOf []*Schema
}

// Property is a named entry of Properties.
type Property struct {
	Name   string
	Schema *Schema
}

// Properties is an ordered properties map.
type Properties []Property

// Get returns the schema registered for name.
func (p Properties) Get(name string) (*Schema, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Schema, true
		}
	}
	return nil, false
}

// Names returns the property names in order.
func (p Properties) Names() []string {
	names := make([]string, len(p))
	for i, prop := range p {
		names[i] = prop.Name
	}
	return names
}

// True returns the schema that matches any value.
func True() *Schema { return Bool(true) }

// False returns the schema that matches no value.
func False() *Schema { return Bool(false) }

// Bool returns the boolean schema b.
func Bool(b bool) *Schema { return &Schema{boolean: &b} }

// IsBool reports whether s is a boolean schema and, if so, its value.
func (s *Schema) IsBool() (value, ok bool) {
	if s == nil || s.boolean == nil {
		return false, false
	}
	return *s.boolean, true
}

// Int returns a pointer to n, for MinItems and MaxItems.
func Int(n int) *int { return &n }

// String renders s as compact JSON.
func (s *Schema) String() string {
	b, err := s.MarshalJSON()
	if err != nil {
		return "<invalid schema: " + err.Error() + ">"
	}
	return string(b)
}
