package jsonschema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/reoring/shapeschema/internal/jsonval"
)

// ParseYAML decodes a single YAML schema document.
func ParseYAML(data []byte) (*Schema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("jsonschema: %w", err)
	}
	if emptyDocument(&doc) {
		return nil, errors.New("jsonschema: empty YAML document")
	}
	s := &Schema{}
	if err := s.UnmarshalYAML(doc.Content[0]); err != nil {
		return nil, err
	}
	return s, nil
}

// ParseYAMLAll decodes every document of a multi-document YAML stream.
// Empty documents are skipped.
func ParseYAMLAll(data []byte) ([]*Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var out []*Schema
	for {
		var doc yaml.Node
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("jsonschema: %w", err)
		}
		if emptyDocument(&doc) {
			continue
		}
		s := &Schema{}
		if err := s.UnmarshalYAML(doc.Content[0]); err != nil {
			return nil, fmt.Errorf("jsonschema: document %d: %w", len(out), err)
		}
		out = append(out, s)
	}
	return out, nil
}

// emptyDocument reports a document with no content. yaml.v3 decodes a bare
// "---" as a document holding a single untagged null scalar.
func emptyDocument(doc *yaml.Node) bool {
	if len(doc.Content) == 0 {
		return true
	}
	if len(doc.Content) > 1 {
		return false
	}
	n := doc.Content[0]
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null" && n.Value == ""
}

// MarshalYAML encodes s as an ordered YAML mapping (or a boolean).
func (s *Schema) MarshalYAML() (any, error) { return s.yamlNode() }

func (s *Schema) yamlNode() (*yaml.Node, error) {
	if s == nil {
		return nil, errors.New("jsonschema: nil schema")
	}
	if b, ok := s.IsBool(); ok {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}, nil
	}
	if s.Items != nil && len(s.TupleItems) > 0 {
		return nil, errors.New("jsonschema: items and tuple items are mutually exclusive")
	}
	m := &mappingBuilder{node: &yaml.Node{Kind: yaml.MappingNode}}
	if s.Type != "" {
		m.value("type", s.Type)
	}
	if s.Format != "" {
		m.value("format", s.Format)
	}
	if s.Enum != nil {
		m.value("enum", s.Enum)
	}
	if s.MinItems != nil {
		m.value("minItems", *s.MinItems)
	}
	if s.MaxItems != nil {
		m.value("maxItems", *s.MaxItems)
	}
	switch {
	case s.Items != nil:
		m.schema("items", s.Items)
	case len(s.TupleItems) > 0:
		m.list("items", s.TupleItems)
	}
	if s.Required != nil {
		m.value("required", s.Required)
	}
	if s.Properties != nil {
		props := &mappingBuilder{node: &yaml.Node{Kind: yaml.MappingNode}}
		for _, p := range s.Properties {
			props.schema(p.Name, p.Schema)
		}
		if props.err != nil {
			return nil, props.err
		}
		m.add("properties", props.node)
	}
	if s.AdditionalProperties != nil {
		m.schema("additionalProperties", s.AdditionalProperties)
	}
	if s.AnyOf != nil {
		m.list("anyOf", s.AnyOf)
	}
	if s.AllOf != nil {
		m.list("allOf", s.AllOf)
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.node, nil
}

type mappingBuilder struct {
	node *yaml.Node
	err  error
}

func (m *mappingBuilder) add(key string, v *yaml.Node) {
	m.node.Content = append(m.node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, v)
}

func (m *mappingBuilder) value(key string, v any) {
	if m.err != nil {
		return
	}
	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		m.err = fmt.Errorf("jsonschema: %s: %w", key, err)
		return
	}
	m.add(key, n)
}

func (m *mappingBuilder) schema(key string, s *Schema) {
	if m.err != nil {
		return
	}
	n, err := s.yamlNode()
	if err != nil {
		m.err = fmt.Errorf("jsonschema: %s: %w", key, err)
		return
	}
	m.add(key, n)
}

func (m *mappingBuilder) list(key string, ss []*Schema) {
	if m.err != nil {
		return
	}
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, s := range ss {
		n, err := s.yamlNode()
		if err != nil {
			m.err = fmt.Errorf("jsonschema: %s: %w", key, err)
			return
		}
		seq.Content = append(seq.Content, n)
	}
	m.add(key, seq)
}

// UnmarshalYAML decodes a schema from a YAML node, rejecting keywords outside
// the vocabulary.
func (s *Schema) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	switch n.Kind {
	case yaml.ScalarNode:
		if n.ShortTag() != "!!bool" {
			return fmt.Errorf("jsonschema: schema must be a mapping or boolean, got %q (line %d)", n.Value, n.Line)
		}
		var b bool
		if err := n.Decode(&b); err != nil {
			return fmt.Errorf("jsonschema: %w", err)
		}
		*s = *Bool(b)
		return nil
	case yaml.MappingNode:
	default:
		return fmt.Errorf("jsonschema: schema must be a mapping or boolean (line %d)", n.Line)
	}

	var out Schema
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i].Value, n.Content[i+1]
		if err := out.decodeYAMLKeyword(key, val); err != nil {
			return err
		}
	}
	*s = out
	return nil
}

func (s *Schema) decodeYAMLKeyword(key string, v *yaml.Node) error {
	var err error
	switch key {
	case "type":
		err = v.Decode(&s.Type)
	case "format":
		err = v.Decode(&s.Format)
	case "enum":
		var vals []any
		if err = decodeSequence(v, &vals); err == nil {
			s.Enum, err = normalizedEnum(vals)
		}
	case "items":
		if v.Kind == yaml.SequenceNode {
			err = decodeSequence(v, &s.TupleItems)
		} else {
			s.Items = &Schema{}
			err = s.Items.UnmarshalYAML(v)
		}
	case "minItems":
		s.MinItems, err = decodeYAMLCount(v)
	case "maxItems":
		s.MaxItems, err = decodeYAMLCount(v)
	case "required":
		err = decodeSequence(v, &s.Required)
	case "properties":
		s.Properties, err = decodeYAMLProperties(v)
	case "additionalProperties":
		s.AdditionalProperties = &Schema{}
		err = s.AdditionalProperties.UnmarshalYAML(v)
	case "anyOf":
		err = decodeSequence(v, &s.AnyOf)
	case "allOf":
		err = decodeSequence(v, &s.AllOf)
	default:
		return fmt.Errorf("%w: %q (line %d)", ErrUnknownKeyword, key, v.Line)
	}
	if err != nil {
		return fmt.Errorf("jsonschema: %s: %w", key, err)
	}
	return nil
}

// decodeSequence decodes a YAML sequence into dst, keeping an empty sequence
// distinct from an absent one.
func decodeSequence[T any](v *yaml.Node, dst *[]T) error {
	if v.Kind != yaml.SequenceNode {
		return fmt.Errorf("must be a sequence (line %d)", v.Line)
	}
	out := make([]T, 0, len(v.Content))
	if err := v.Decode(&out); err != nil {
		return err
	}
	if out == nil {
		out = []T{}
	}
	*dst = out
	return nil
}

func decodeYAMLProperties(v *yaml.Node) (Properties, error) {
	if v.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("must be a mapping (line %d)", v.Line)
	}
	out := make(Properties, 0, len(v.Content)/2)
	for i := 0; i+1 < len(v.Content); i += 2 {
		name := v.Content[i].Value
		sub := &Schema{}
		if err := sub.UnmarshalYAML(v.Content[i+1]); err != nil {
			return nil, fmt.Errorf("%q: %w", name, err)
		}
		out = append(out, Property{Name: name, Schema: sub})
	}
	return out, nil
}

func decodeYAMLCount(v *yaml.Node) (*int, error) {
	var n int
	if err := v.Decode(&n); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("must be non-negative, got %d", n)
	}
	return &n, nil
}

// normalizedEnum converts YAML-decoded enum members (int, map[string]any, ...)
// to the JSON value model so both codecs produce the same document.
func normalizedEnum(vals []any) ([]any, error) {
	out := make([]any, len(vals))
	for i, v := range vals {
		nv, err := jsonval.Normalize(v)
		if err != nil {
			return nil, err
		}
		out[i] = nv
	}
	return out, nil
}
