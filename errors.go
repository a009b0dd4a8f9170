package shapeschema

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/reoring/shapeschema/descriptor"
	js "github.com/reoring/shapeschema/jsonschema"
)

var (
	// ErrUnsupportedTag matches *UnsupportedTagError.
	ErrUnsupportedTag = errors.New("shapeschema: descriptor has no JSON Schema equivalent")
	// ErrNonScalarLiteral matches *NonScalarLiteralError.
	ErrNonScalarLiteral = errors.New("shapeschema: literal is not a JSON scalar")
	// ErrNilDescriptor reports a missing descriptor node.
	ErrNilDescriptor = errors.New("shapeschema: nil descriptor")

	// ErrInvalid matches *ValidationError.
	ErrInvalid = errors.New("shapeschema: value rejected by schema")
	// ErrTypeMismatch is the cause of a ValidationError when an accepted value
	// cannot be represented as the validator's result type.
	ErrTypeMismatch = errors.New("shapeschema: accepted value does not fit result type")
	ErrNilEngine    = errors.New("shapeschema: nil engine")
	ErrNilSchema    = errors.New("shapeschema: nil schema")
)

// UnsupportedTagError reports a descriptor node with no schema equivalent
// (symbol, function, constraint, instanceof, brand).
type UnsupportedTagError struct {
	Tag  descriptor.Tag
	Path string // JSON Pointer of the node inside the descriptor tree.
}

func (e *UnsupportedTagError) Error() string {
	return fmt.Sprintf("shapeschema: %s can't be converted to JSON Schema (at %s)", e.Tag, e.Path)
}

func (e *UnsupportedTagError) Is(target error) bool { return target == ErrUnsupportedTag }

// NonScalarLiteralError reports a literal whose payload is not a JSON scalar.
type NonScalarLiteralError struct {
	Value any
	Path  string
}

func (e *NonScalarLiteralError) Error() string {
	return fmt.Sprintf("shapeschema: can't make JSON Schema for literal %s (at %s)", describe(e.Value), e.Path)
}

func (e *NonScalarLiteralError) Is(target error) bool { return target == ErrNonScalarLiteral }

// ValidationError reports a value rejected by a compiled schema. Cause holds
// the engine's explanation.
type ValidationError struct {
	Schema *js.Schema
	Value  any
	Cause  error
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("shapeschema: %s is not a valid %s", describe(e.Value), e.Schema)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }

func (e *ValidationError) Unwrap() error { return e.Cause }

// describe renders v as JSON when possible, for messages only.
func describe(v any) string {
	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%#v", v)
}
