package shapeschema_test

import (
	"errors"
	"math"
	"reflect"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/shapeschema"
	d "github.com/reoring/shapeschema/descriptor"
	js "github.com/reoring/shapeschema/jsonschema"
)

func mustSchema(t *testing.T, desc d.Descriptor) *js.Schema {
	t.Helper()
	s, err := shapeschema.ToSchema(desc)
	if err != nil {
		t.Fatalf("ToSchema: %v", err)
	}
	return s
}

func TestToSchema_Table(t *testing.T) {
	cases := []struct {
		name string
		in   d.Descriptor
		want string
	}{
		{"always", d.Always{}, `true`},
		{"never", d.Never{}, `false`},
		{"void", d.Void{}, `{"enum":[null]}`},
		{"boolean", d.Boolean{}, `{"type":"boolean"}`},
		{"number", d.Number{}, `{"type":"number"}`},
		{"string", d.String{}, `{"type":"string"}`},
		{"literal null", d.LiteralOf(nil), `{"type":"null"}`},
		{"literal string", d.LiteralOf("a"), `{"enum":["a"]}`},
		{"literal int8", d.LiteralOf(int8(3)), `{"enum":[3]}`},
		{"literal false", d.LiteralOf(false), `{"enum":[false]}`},
		{"literal 2^53", d.LiteralOf(int64(1 << 53)), `{"enum":[9007199254740992]}`},
		{"array", d.ArrayOf(d.LiteralOf(nil)), `{"type":"array","items":{"type":"null"}}`},
		{"record", d.RecordOf(d.F("a", d.LiteralOf("a")), d.F("b", d.LiteralOf("b"))),
			`{"type":"object","required":["a","b"],"properties":{"a":{"enum":["a"]},"b":{"enum":["b"]}}}`},
		{"record order kept", d.RecordOf(d.F("z", d.Number{}), d.F("a", d.String{})),
			`{"type":"object","required":["z","a"],"properties":{"z":{"type":"number"},"a":{"type":"string"}}}`},
		{"empty record", d.RecordOf(), `{"type":"object","required":[],"properties":{}}`},
		{"partial", d.PartialOf(d.F("n", d.Number{})),
			`{"anyOf":[{"type":"string"},{"type":"number"},{"type":"boolean"},{"type":"array"},{"type":"object","properties":{"n":{"type":"number"}}}]}`},
		{"dictionary", d.DictionaryOf(d.Boolean{}), `{"type":"object","additionalProperties":{"type":"boolean"}}`},
		{"tuple", d.TupleOf(d.String{}, d.Number{}),
			`{"type":"array","minItems":2,"maxItems":2,"items":[{"type":"string"},{"type":"number"}]}`},
		{"empty tuple", d.TupleOf(), `{"type":"array","minItems":0,"maxItems":0}`},
		{"union", d.UnionOf(d.Number{}, d.String{}), `{"anyOf":[{"type":"number"},{"type":"string"}]}`},
		{"empty union", d.Union{}, `false`},
		{"intersect", d.IntersectOf(d.String{}, d.Number{}), `{"allOf":[{"type":"string"},{"type":"number"}]}`},
		{"empty intersect", d.Intersect{}, `true`},
		{"nested", d.ArrayOf(d.DictionaryOf(d.TupleOf(d.Always{}))),
			`{"type":"array","items":{"type":"object","additionalProperties":{"type":"array","minItems":1,"maxItems":1,"items":[true]}}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := mustSchema(t, tc.in)
			if diff := cmp.Diff(tc.want, s.String()); diff != "" {
				t.Fatalf("schema mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToSchema_UnsupportedTagAtDepth(t *testing.T) {
	pred := func(any) bool { return true }
	cases := []struct {
		name string
		in   d.Descriptor
		tag  d.Tag
		path string
	}{
		{"symbol root", d.Symbol{Name: "id"}, d.TagSymbol, "/"},
		{"function in record", d.RecordOf(d.F("ok", d.Number{}), d.F("f", d.Function{})), d.TagFunction, "/fields/f"},
		{"constraint in array", d.ArrayOf(d.Constrain(d.Number{}, "positive", pred)), d.TagConstraint, "/element"},
		{"instanceof in tuple", d.TupleOf(d.String{}, d.InstanceOf{Type: reflect.TypeOf(0)}), d.TagInstanceOf, "/components/1"},
		{"brand in union", d.UnionOf(d.Branded(d.String{}, "Email")), d.TagBrand, "/alternatives/0"},
		{"symbol in intersect", d.IntersectOf(d.Always{}, d.Always{}, d.Symbol{}), d.TagSymbol, "/members/2"},
		{"function in dictionary", d.DictionaryOf(d.Function{}), d.TagFunction, "/value"},
		{"deep partial", d.PartialOf(d.F("a/b", d.ArrayOf(d.Function{}))), d.TagFunction, "/fields/a~1b/element"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := shapeschema.ToSchema(tc.in)
			if s != nil {
				t.Fatalf("partial schema returned: %s", s)
			}
			if !errors.Is(err, shapeschema.ErrUnsupportedTag) {
				t.Fatalf("want ErrUnsupportedTag, got %v", err)
			}
			var ute *shapeschema.UnsupportedTagError
			if !errors.As(err, &ute) {
				t.Fatalf("want *UnsupportedTagError, got %T", err)
			}
			if ute.Tag != tc.tag || ute.Path != tc.path {
				t.Fatalf("got tag=%s path=%s, want tag=%s path=%s", ute.Tag, ute.Path, tc.tag, tc.path)
			}
		})
	}
}

func TestToSchema_NonScalarLiteral(t *testing.T) {
	cases := []struct {
		name string
		in   d.Descriptor
		path string
	}{
		{"array", d.LiteralOf([]any{1}), "/"},
		{"empty array", d.LiteralOf([]any{}), "/"},
		{"object", d.LiteralOf(map[string]any{"a": 1}), "/"},
		{"empty object", d.LiteralOf(map[string]any{}), "/"},
		{"NaN", d.LiteralOf(math.NaN()), "/"},
		{"Inf in record", d.RecordOf(d.F("x", d.LiteralOf(math.Inf(1)))), "/fields/x"},
		{"invalid utf-8", d.LiteralOf("\xff"), "/"},
		{"int64 beyond 2^53", d.ArrayOf(d.LiteralOf(int64(9007199254740993))), "/element"},
		{"uint64 beyond 2^53", d.TupleOf(d.LiteralOf(uint64(1<<53 + 1))), "/components/0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := shapeschema.ToSchema(tc.in)
			if !errors.Is(err, shapeschema.ErrNonScalarLiteral) {
				t.Fatalf("want ErrNonScalarLiteral, got %v", err)
			}
			var nse *shapeschema.NonScalarLiteralError
			if !errors.As(err, &nse) || nse.Path != tc.path {
				t.Fatalf("want *NonScalarLiteralError at %s, got %#v", tc.path, err)
			}
		})
	}
}

func TestToSchema_NilDescriptor(t *testing.T) {
	for _, in := range []d.Descriptor{nil, d.ArrayOf(nil), d.RecordOf(d.F("a", nil))} {
		if _, err := shapeschema.ToSchema(in); !errors.Is(err, shapeschema.ErrNilDescriptor) {
			t.Fatalf("ToSchema(%#v): want ErrNilDescriptor, got %v", in, err)
		}
	}
}

func TestToSchema_DeterministicAndConcurrent(t *testing.T) {
	in := d.RecordOf(
		d.F("id", d.String{}),
		d.F("tags", d.ArrayOf(d.String{})),
		d.F("pos", d.TupleOf(d.Number{}, d.Number{})),
		d.F("kind", d.UnionOf(d.LiteralOf("a"), d.LiteralOf("b"))),
	)
	want := mustSchema(t, in).String()

	var wg sync.WaitGroup
	got := make([]string, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := shapeschema.ToSchema(in)
			if err == nil {
				got[i] = s.String()
			}
		}(i)
	}
	wg.Wait()
	for i, g := range got {
		if g != want {
			t.Fatalf("goroutine %d: got %s, want %s", i, g, want)
		}
	}
}
