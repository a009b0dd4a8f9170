package jsonschema

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

var cmpSchema = cmp.AllowUnexported(Schema{})

func TestMarshalJSON_KeywordOrder(t *testing.T) {
	s := &Schema{
		Type:     "object",
		Required: []string{"a", "b"},
		Properties: Properties{
			{Name: "a", Schema: &Schema{Enum: []any{"a"}}},
			{Name: "b", Schema: &Schema{Enum: []any{"b"}}},
		},
	}
	want := `{"type":"object","required":["a","b"],"properties":{"a":{"enum":["a"]},"b":{"enum":["b"]}}}`
	if got := s.String(); got != want {
		t.Fatalf("mismatch\n got=%s\nwant=%s", got, want)
	}
}

func TestMarshalJSON_Shapes(t *testing.T) {
	cases := []struct {
		name string
		s    *Schema
		want string
	}{
		{"true", True(), `true`},
		{"false", False(), `false`},
		{"empty", &Schema{}, `{}`},
		{"tuple", &Schema{Type: "array", MinItems: Int(2), MaxItems: Int(2), TupleItems: []*Schema{{Type: "string"}, {Type: "number"}}},
			`{"type":"array","minItems":2,"maxItems":2,"items":[{"type":"string"},{"type":"number"}]}`},
		{"nested booleans", &Schema{AnyOf: []*Schema{True(), False()}}, `{"anyOf":[true,false]}`},
		{"empty object members", &Schema{Type: "object", Required: []string{}, Properties: Properties{}}, `{"type":"object","required":[],"properties":{}}`},
		{"dictionary", &Schema{Type: "object", AdditionalProperties: &Schema{Type: "boolean"}}, `{"type":"object","additionalProperties":{"type":"boolean"}}`},
		{"enum null", &Schema{Enum: []any{nil}}, `{"enum":[null]}`},
	}
	for _, tc := range cases {
		if got := tc.s.String(); got != tc.want {
			t.Errorf("%s: got %s want %s", tc.name, got, tc.want)
		}
	}
}

func TestMarshalJSON_ItemsConflict(t *testing.T) {
	s := &Schema{Items: &Schema{}, TupleItems: []*Schema{{}}}
	if _, err := s.MarshalJSON(); err == nil {
		t.Fatalf("expected error for items and tuple items together")
	}
}

func TestParse_PreservesPropertyOrder(t *testing.T) {
	s, err := Parse([]byte(`{"type":"object","properties":{"z":{"type":"string"},"a":{"type":"number"},"m":true}}`))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"z", "a", "m"}, s.Properties.Names()); diff != "" {
		t.Fatalf("order (-want +got):\n%s", diff)
	}
	m, _ := s.Properties.Get("m")
	if b, ok := m.IsBool(); !ok || !b {
		t.Fatalf("expected boolean true schema for m")
	}
	if got := s.String(); got != `{"type":"object","properties":{"z":{"type":"string"},"a":{"type":"number"},"m":true}}` {
		t.Fatalf("re-encode mismatch: %s", got)
	}
}

func TestKeyOrder(t *testing.T) {
	got, err := keyOrder([]byte(`{"b":1, "a":{"x":[1,{"y":2}]}, "c":"}", "b":2}`))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"b", "a", "c"}, got); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}
	if _, err := keyOrder([]byte(`{"a":`)); err == nil {
		t.Fatal("expected truncated input to fail")
	}
}

func TestParse_RoundTrip(t *testing.T) {
	in := `{"allOf":[{"type":"array","minItems":0,"maxItems":0},{"anyOf":[{"type":"null"},{"enum":[1,"a",true,null]}]},{"type":"array","items":{"type":"string"}}]}`
	s, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if got := s.String(); got != in {
		t.Fatalf("round trip mismatch\n got=%s\nwant=%s", got, in)
	}
	if len(s.AllOf[2].TupleItems) != 0 || s.AllOf[2].Items == nil {
		t.Fatalf("single items schema decoded as tuple")
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"unknown top":    `{"type":"string","pattern":"^a"}`,
		"unknown nested": `{"properties":{"a":{"$ref":"#/x"}}}`,
		"bad root":       `"string"`,
		"negative count": `{"minItems":-1}`,
		"null enum":      `{"enum":null}`,
		"bad anyOf":      `{"anyOf":{}}`,
		"syntax":         `{"type":`,
	}
	for name, in := range cases {
		if _, err := Parse([]byte(in)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	_, err := Parse([]byte(`{"properties":{"a":{"$ref":"#/x"}}}`))
	if !errors.Is(err, ErrUnknownKeyword) {
		t.Fatalf("expected ErrUnknownKeyword, got %v", err)
	}
}

func TestYAML_RoundTripMatchesJSON(t *testing.T) {
	doc := `
type: object
required: [z, a]
properties:
  z:
    type: array
    items: [{type: string}, {enum: [1, x, null]}]
    minItems: 2
    maxItems: 2
  a:
    additionalProperties: false
`
	fromYAML, err := ParseYAML([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	fromJSON, err := Parse([]byte(`{"type":"object","required":["z","a"],"properties":{"z":{"type":"array","minItems":2,"maxItems":2,"items":[{"type":"string"},{"enum":[1,"x",null]}]},"a":{"additionalProperties":false}}}`))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(fromJSON, fromYAML, cmpSchema); diff != "" {
		t.Fatalf("YAML and JSON disagree (-json +yaml):\n%s", diff)
	}

	out, err := yaml.Marshal(fromYAML)
	if err != nil {
		t.Fatal(err)
	}
	if zi, ai := strings.Index(string(out), "z:"), strings.Index(string(out), "a:"); zi < 0 || ai < 0 || zi > ai {
		t.Fatalf("property order lost in YAML output:\n%s", out)
	}
	again, err := ParseYAML(out)
	if err != nil {
		t.Fatalf("re-decode: %v\n%s", err, out)
	}
	if diff := cmp.Diff(fromYAML, again, cmpSchema); diff != "" {
		t.Fatalf("YAML round trip (-want +got):\n%s", diff)
	}
}

func TestYAML_Errors(t *testing.T) {
	if _, err := ParseYAML([]byte("")); err == nil {
		t.Errorf("expected error for empty document")
	}
	if _, err := ParseYAML([]byte("type: string\nminLength: 1\n")); !errors.Is(err, ErrUnknownKeyword) {
		t.Errorf("expected ErrUnknownKeyword, got %v", err)
	}
	if _, err := ParseYAML([]byte("- a\n- b\n")); err == nil {
		t.Errorf("expected error for sequence root")
	}
	if _, err := ParseYAML([]byte("required: a\n")); err == nil {
		t.Errorf("expected error for scalar required")
	}
}

func TestParseYAMLAll(t *testing.T) {
	cases := map[string]string{
		"trailing separator": "type: string\n---\ntrue\n---\n",
		"leading separator":  "---\ntype: string\n---\ntrue\n",
		"empty in between":   "type: string\n---\n---\ntrue\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			ss, err := ParseYAMLAll([]byte(in))
			if err != nil {
				t.Fatal(err)
			}
			if len(ss) != 2 {
				t.Fatalf("expected 2 documents, got %d", len(ss))
			}
			if ss[0].Type != "string" {
				t.Fatalf("unexpected first document %s", ss[0])
			}
			if b, ok := ss[1].IsBool(); !ok || !b {
				t.Fatalf("unexpected second document %s", ss[1])
			}
		})
	}
}

func TestParseYAMLAll_ExplicitNull(t *testing.T) {
	if _, err := ParseYAMLAll([]byte("type: string\n---\nnull\n")); err == nil {
		t.Fatal("expected an explicit null document to fail")
	}
}

func TestParseYAML_SeparatorOnly(t *testing.T) {
	if _, err := ParseYAML([]byte("---\n")); err == nil {
		t.Fatal("expected an empty document to fail")
	}
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"a.json":   {Data: []byte(`{"type":"string"}`)},
		"b.yaml":   {Data: []byte("type: number\n")},
		"c.yml":    {Data: []byte("false\n")},
		"d.toml":   {Data: []byte(`type = "string"`)},
		"bad.json": {Data: []byte(`{"nope":1}`)},
	}
	for name, want := range map[string]string{"a.json": `{"type":"string"}`, "b.yaml": `{"type":"number"}`, "c.yml": `false`} {
		s, err := Load(fsys, name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if s.String() != want {
			t.Fatalf("%s: got %s want %s", name, s, want)
		}
	}
	if _, err := Load(fsys, "d.toml"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
	if _, err := Load(fsys, "bad.json"); !errors.Is(err, ErrUnknownKeyword) {
		t.Fatalf("expected ErrUnknownKeyword, got %v", err)
	}
	if _, err := Load(fsys, "missing.json"); err == nil {
		t.Fatalf("expected not-exist error")
	}
}
