// Package draft7 provides an engine.Engine backed by
// github.com/santhosh-tekuri/jsonschema/v5.
//
// Documents without "$schema" are compiled as draft-07 by default, where an
// "items" array types elements by position, which is how tuples are encoded.
package draft7

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	jschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/reoring/shapeschema/engine"
	"github.com/reoring/shapeschema/internal/jsonval"
	js "github.com/reoring/shapeschema/jsonschema"
)

const resourceURL = "mem:shapeschema.json"

// errRemoteRef guards against fetching anything: documents are fully resolved.
var errRemoteRef = errors.New("draft7: external references are not supported")

// Options configures an Engine.
type Options struct {
	// Draft selects the dialect. Nil means draft-07. Draft 2020-12 no longer
	// reads an "items" array positionally and is a poor fit for tuples.
	Draft *jschema.Draft
	// AssertFormat asserts "format" on draft 2019-09 and later; earlier
	// drafts always assert it.
	AssertFormat bool
}

// Engine compiles schemas with a fresh compiler per call, so a single Engine
// is safe for concurrent compilation.
type Engine struct {
	opts Options
}

var _ engine.Engine = (*Engine)(nil)

// New returns an Engine configured by opts.
func New(opts Options) *Engine {
	if opts.Draft == nil {
		opts.Draft = jschema.Draft7
	}
	return &Engine{opts: opts}
}

// Name implements engine.Engine.
func (e *Engine) Name() string { return "santhosh-tekuri/jsonschema/v5" }

// Compile implements engine.Engine.
func (e *Engine) Compile(s *js.Schema) (engine.Compiled, error) {
	if s == nil {
		return nil, errors.New("draft7: nil schema")
	}
	doc, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("draft7: encode schema: %w", err)
	}
	c := jschema.NewCompiler()
	c.Draft = e.opts.Draft
	c.AssertFormat = e.opts.AssertFormat
	c.LoadURL = func(string) (io.ReadCloser, error) { return nil, errRemoteRef }
	if err := c.AddResource(resourceURL, bytes.NewReader(doc)); err != nil {
		return nil, fmt.Errorf("draft7: %w", err)
	}
	compiled, err := c.Compile(resourceURL)
	if err != nil {
		return nil, fmt.Errorf("draft7: compile %s: %w", doc, err)
	}
	return &program{schema: compiled}, nil
}

type program struct {
	schema *jschema.Schema
}

// Validate normalizes v to the JSON value model (the library only understands
// decoded JSON) and evaluates it.
func (p *program) Validate(v any) error {
	nv, err := jsonval.Normalize(v)
	if err != nil {
		return err
	}
	return p.schema.Validate(nv)
}
