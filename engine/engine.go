// Package engine is the seam between the reverse mapper and a JSON Schema
// validation engine. An Engine compiles a schema document once; the Compiled
// result is evaluated many times and must be safe for concurrent use.
//
// Engines are plain values. Construct one per configuration and pass it
// where it is needed; nothing in this module keeps a process-wide engine.
package engine

import (
	"errors"
	"fmt"

	js "github.com/reoring/shapeschema/jsonschema"
)

// ErrRejected is returned by Func predicates that reject a value.
var ErrRejected = errors.New("engine: value rejected")

// Compiled is a compiled schema. Validate returns nil when v is accepted and
// an error describing the rejection otherwise. It must not panic on values of
// unexpected shape.
type Compiled interface {
	Validate(v any) error
}

// Engine compiles schema documents. The document is fully resolved: it never
// contains references.
type Engine interface {
	Name() string
	Compile(s *js.Schema) (Compiled, error)
}

// Func adapts a boolean predicate to Compiled.
type Func func(v any) bool

// Validate implements Compiled.
func (f Func) Validate(v any) error {
	if f(v) {
		return nil
	}
	return ErrRejected
}

// Accepts evaluates c as a total predicate: a panic inside c counts as a
// rejection.
func Accepts(c Compiled, v any) bool {
	return Check(c, v) == nil
}

// Check runs c.Validate, converting a panic into an error.
func Check(c Compiled, v any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("engine: validator panicked: %v", r)
		}
	}()
	return c.Validate(v)
}

// CompileFunc adapts a function to Engine, mostly for tests and wrappers.
type CompileFunc struct {
	EngineName string
	Fn         func(s *js.Schema) (Compiled, error)
}

func (c CompileFunc) Name() string                           { return c.EngineName }
func (c CompileFunc) Compile(s *js.Schema) (Compiled, error) { return c.Fn(s) }
