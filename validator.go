package shapeschema

import (
	"fmt"
	"log/slog"

	json "github.com/goccy/go-json"

	"github.com/reoring/shapeschema/descriptor"
	"github.com/reoring/shapeschema/engine"
	js "github.com/reoring/shapeschema/jsonschema"
)

// Validator checks values against a schema compiled once at construction.
// A Validator is safe for concurrent use when its engine's compiled form is.
type Validator[T any] struct {
	schema   *js.Schema
	compiled engine.Compiled
	engine   string
	logger   *slog.Logger
}

// ToValidator compiles s with e and returns a validator whose result type is
// T. Compilation failures are returned here, never from Validate.
func ToValidator[T any](e engine.Engine, s *js.Schema, opts ...Option) (*Validator[T], error) {
	if e == nil {
		return nil, ErrNilEngine
	}
	if s == nil {
		return nil, ErrNilSchema
	}
	cfg := newConfig(opts)
	c, err := e.Compile(s)
	if err != nil {
		return nil, fmt.Errorf("shapeschema: compile with %s: %w", e.Name(), err)
	}
	cfg.logger.Debug("shapeschema: schema compiled", "engine", e.Name(), "schema", s.String())
	return &Validator[T]{schema: s, compiled: c, engine: e.Name(), logger: cfg.logger}, nil
}

// Compile maps d to a schema and compiles it with e.
func Compile[T any](e engine.Engine, d descriptor.Descriptor, opts ...Option) (*Validator[T], error) {
	s, err := ToSchema(d, opts...)
	if err != nil {
		return nil, err
	}
	return ToValidator[T](e, s, opts...)
}

// Validate returns x as a T when the schema accepts it. A rejected value
// yields a *ValidationError carrying the schema, the value and the engine's
// reason. The validator stays usable after a rejection.
func (v *Validator[T]) Validate(x any) (T, error) {
	var zero T
	if err := engine.Check(v.compiled, x); err != nil {
		v.logger.Debug("shapeschema: value rejected", "engine", v.engine, "error", err)
		return zero, &ValidationError{Schema: v.schema, Value: x, Cause: err}
	}
	if t, ok := x.(T); ok {
		return t, nil
	}
	t, err := decodeAs[T](x)
	if err != nil {
		return zero, &ValidationError{Schema: v.schema, Value: x, Cause: fmt.Errorf("%w: %w", ErrTypeMismatch, err)}
	}
	return t, nil
}

// Accepts reports whether the schema accepts x.
func (v *Validator[T]) Accepts(x any) bool {
	return engine.Accepts(v.compiled, x)
}

// Func returns Validate as a plain function value.
func (v *Validator[T]) Func() func(any) (T, error) {
	return v.Validate
}

// Schema returns the compiled document. Callers must not modify it.
func (v *Validator[T]) Schema() *js.Schema {
	return v.schema
}

// Engine returns the name of the engine that compiled the schema.
func (v *Validator[T]) Engine() string {
	return v.engine
}

func decodeAs[T any](x any) (T, error) {
	var t T
	b, err := json.Marshal(x)
	if err != nil {
		return t, err
	}
	if err := json.Unmarshal(b, &t); err != nil {
		return t, err
	}
	return t, nil
}
