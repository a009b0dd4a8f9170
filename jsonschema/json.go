package jsonschema

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	json "github.com/goccy/go-json"
)

// Parse decodes a JSON schema document.
func Parse(data []byte) (*Schema, error) {
	s := &Schema{}
	if err := s.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return s, nil
}

// MarshalJSON encodes s with keywords in a fixed order.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return nil, errors.New("jsonschema: nil schema")
	}
	if b, ok := s.IsBool(); ok {
		if b {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	}
	if s.Items != nil && len(s.TupleItems) > 0 {
		return nil, errors.New("jsonschema: items and tuple items are mutually exclusive")
	}
	w := &objectWriter{}
	if s.Type != "" {
		w.put("type", s.Type)
	}
	if s.Format != "" {
		w.put("format", s.Format)
	}
	if s.Enum != nil {
		w.put("enum", s.Enum)
	}
	if s.MinItems != nil {
		w.put("minItems", *s.MinItems)
	}
	if s.MaxItems != nil {
		w.put("maxItems", *s.MaxItems)
	}
	switch {
	case s.Items != nil:
		w.put("items", s.Items)
	case len(s.TupleItems) > 0:
		w.put("items", s.TupleItems)
	}
	if s.Required != nil {
		w.put("required", s.Required)
	}
	if s.Properties != nil {
		w.put("properties", s.Properties)
	}
	if s.AdditionalProperties != nil {
		w.put("additionalProperties", s.AdditionalProperties)
	}
	if s.AnyOf != nil {
		w.put("anyOf", s.AnyOf)
	}
	if s.AllOf != nil {
		w.put("allOf", s.AllOf)
	}
	return w.bytes()
}

// MarshalJSON encodes the properties in declaration order.
func (p Properties) MarshalJSON() ([]byte, error) {
	w := &objectWriter{}
	for _, prop := range p {
		if prop.Schema == nil {
			return nil, fmt.Errorf("jsonschema: property %q has nil schema", prop.Name)
		}
		w.put(prop.Name, prop.Schema)
	}
	return w.bytes()
}

type objectWriter struct {
	buf bytes.Buffer
	n   int
	err error
}

func (w *objectWriter) put(key string, v any) {
	if w.err != nil {
		return
	}
	k, err := json.Marshal(key)
	if err != nil {
		w.err = err
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		w.err = fmt.Errorf("jsonschema: %s: %w", key, err)
		return
	}
	if w.n == 0 {
		w.buf.WriteByte('{')
	} else {
		w.buf.WriteByte(',')
	}
	w.buf.Write(k)
	w.buf.WriteByte(':')
	w.buf.Write(raw)
	w.n++
}

func (w *objectWriter) bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if w.n == 0 {
		return []byte("{}"), nil
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes(), nil
}

// UnmarshalJSON decodes a schema, rejecting keywords outside the vocabulary.
func (s *Schema) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true":
		*s = *True()
		return nil
	case "false":
		*s = *False()
		return nil
	}
	if len(data) == 0 || data[0] != '{' {
		return fmt.Errorf("jsonschema: schema must be an object or boolean, got %.20q", data)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("jsonschema: %w", err)
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out Schema
	for _, k := range keys {
		if err := out.decodeJSONKeyword(k, bytes.TrimSpace(raw[k])); err != nil {
			return err
		}
	}
	*s = out
	return nil
}

func (s *Schema) decodeJSONKeyword(key string, v []byte) error {
	var err error
	switch key {
	case "type":
		err = json.Unmarshal(v, &s.Type)
	case "format":
		err = json.Unmarshal(v, &s.Format)
	case "enum":
		if err = json.Unmarshal(v, &s.Enum); err == nil && s.Enum == nil {
			err = errors.New("must be an array")
		}
	case "items":
		if len(v) > 0 && v[0] == '[' {
			err = decodeSchemaList(v, &s.TupleItems)
		} else {
			s.Items, err = decodeSchema(v)
		}
	case "minItems":
		s.MinItems, err = decodeCount(v)
	case "maxItems":
		s.MaxItems, err = decodeCount(v)
	case "required":
		if err = json.Unmarshal(v, &s.Required); err == nil && s.Required == nil {
			err = errors.New("must be an array")
		}
	case "properties":
		err = s.Properties.UnmarshalJSON(v)
	case "additionalProperties":
		s.AdditionalProperties, err = decodeSchema(v)
	case "anyOf":
		err = decodeSchemaList(v, &s.AnyOf)
	case "allOf":
		err = decodeSchemaList(v, &s.AllOf)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKeyword, key)
	}
	if err != nil {
		return fmt.Errorf("jsonschema: %s: %w", key, err)
	}
	return nil
}

func decodeSchema(v []byte) (*Schema, error) {
	sub := &Schema{}
	if err := sub.UnmarshalJSON(v); err != nil {
		return nil, err
	}
	return sub, nil
}

func decodeSchemaList(v []byte, dst *[]*Schema) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(v, &raws); err != nil {
		return err
	}
	if raws == nil {
		return errors.New("must be an array")
	}
	out := make([]*Schema, 0, len(raws))
	for _, r := range raws {
		sub, err := decodeSchema(r)
		if err != nil {
			return err
		}
		out = append(out, sub)
	}
	*dst = out
	return nil
}

func decodeCount(v []byte) (*int, error) {
	var n int
	if err := json.Unmarshal(v, &n); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("must be non-negative, got %d", n)
	}
	return &n, nil
}

// UnmarshalJSON decodes properties keeping the document order. On duplicate
// names the last value wins at the position of the first occurrence.
func (p *Properties) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return errors.New("must be an object")
	}
	order, err := keyOrder(data)
	if err != nil {
		return err
	}
	out := make(Properties, 0, len(order))
	for _, name := range order {
		sub, err := decodeSchema(raw[name])
		if err != nil {
			return fmt.Errorf("%q: %w", name, err)
		}
		out = append(out, Property{Name: name, Schema: sub})
	}
	*p = out
	return nil
}

// keyOrder lists the member names of a JSON object in document order.
func keyOrder(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	var keys []string
	seen := map[string]bool{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
