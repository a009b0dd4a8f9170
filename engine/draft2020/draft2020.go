// Package draft2020 provides an engine.Engine backed by
// github.com/google/jsonschema-go, which implements JSON Schema 2020-12.
//
// 2020-12 spells positional array typing as "prefixItems", so tuple
// documents are lowered before resolution.
package draft2020

import (
	"errors"
	"fmt"

	gjs "github.com/google/jsonschema-go/jsonschema"

	"github.com/reoring/shapeschema/engine"
	"github.com/reoring/shapeschema/internal/jsonval"
	js "github.com/reoring/shapeschema/jsonschema"
)

// Engine resolves each document independently and holds no state.
type Engine struct{}

var _ engine.Engine = Engine{}

// New returns an Engine.
func New() Engine { return Engine{} }

// Name implements engine.Engine.
func (Engine) Name() string { return "google/jsonschema-go" }

// Compile implements engine.Engine.
func (Engine) Compile(s *js.Schema) (engine.Compiled, error) {
	if s == nil {
		return nil, errors.New("draft2020: nil schema")
	}
	g, err := lower(s)
	if err != nil {
		return nil, fmt.Errorf("draft2020: %w", err)
	}
	rs, err := g.Resolve(&gjs.ResolveOptions{})
	if err != nil {
		return nil, fmt.Errorf("draft2020: resolve %s: %w", s, err)
	}
	return &program{resolved: rs}, nil
}

type program struct {
	resolved *gjs.Resolved
}

func (p *program) Validate(v any) error {
	nv, err := jsonval.Normalize(v)
	if err != nil {
		return err
	}
	return p.resolved.Validate(nv)
}

// lower converts a document to the library's schema type.
func lower(s *js.Schema) (*gjs.Schema, error) {
	if s == nil {
		return nil, errors.New("nil subschema")
	}
	if b, ok := s.IsBool(); ok {
		if b {
			return &gjs.Schema{}, nil
		}
		return &gjs.Schema{Not: &gjs.Schema{}}, nil
	}
	out := &gjs.Schema{
		Type:     s.Type,
		Format:   s.Format,
		MinItems: s.MinItems,
		MaxItems: s.MaxItems,
	}
	if s.Enum != nil {
		out.Enum = make([]any, len(s.Enum))
		for i, v := range s.Enum {
			nv, err := jsonval.Normalize(v)
			if err != nil {
				return nil, fmt.Errorf("enum[%d]: %w", i, err)
			}
			out.Enum[i] = nv
		}
	}
	var err error
	if s.Items != nil {
		if out.Items, err = lower(s.Items); err != nil {
			return nil, err
		}
	}
	if len(s.TupleItems) > 0 {
		if out.PrefixItems, err = lowerAll(s.TupleItems); err != nil {
			return nil, err
		}
	}
	if s.Required != nil {
		out.Required = append([]string{}, s.Required...)
	}
	if s.Properties != nil {
		out.Properties = make(map[string]*gjs.Schema, len(s.Properties))
		for _, p := range s.Properties {
			if out.Properties[p.Name], err = lower(p.Schema); err != nil {
				return nil, fmt.Errorf("properties/%s: %w", p.Name, err)
			}
		}
	}
	if s.AdditionalProperties != nil {
		if out.AdditionalProperties, err = lower(s.AdditionalProperties); err != nil {
			return nil, err
		}
	}
	if s.AnyOf != nil {
		if out.AnyOf, err = lowerAll(s.AnyOf); err != nil {
			return nil, err
		}
	}
	if s.AllOf != nil {
		if out.AllOf, err = lowerAll(s.AllOf); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func lowerAll(ss []*js.Schema) ([]*gjs.Schema, error) {
	out := make([]*gjs.Schema, len(ss))
	for i, s := range ss {
		g, err := lower(s)
		if err != nil {
			return nil, err
		}
		out[i] = g
	}
	return out, nil
}
