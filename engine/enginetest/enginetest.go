// Package enginetest checks engine.Engine implementations against the
// vocabulary produced by the forward mapper.
package enginetest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/shapeschema/engine"
	js "github.com/reoring/shapeschema/jsonschema"
)

// Case is a schema document with values it must accept and reject.
type Case struct {
	Name   string
	Schema string
	Accept []any
	Reject []any
}

type pair struct {
	A string `json:"a"`
	B string `json:"b"`
}

// Cases covers every shape the forward mapper emits.
var Cases = []Case{
	{"true", `true`, []any{nil, 1, "x", []any{}, map[string]any{}}, []any{math.NaN()}},
	{"false", `false`, nil, []any{nil, 1, "x", []any{}, map[string]any{}}},
	{"void", `{"enum":[null]}`, []any{nil}, []any{0, "", false}},
	{"boolean", `{"type":"boolean"}`, []any{true, false}, []any{nil, 0, "true"}},
	{"number", `{"type":"number"}`, []any{0, 1.5, int64(-3)}, []any{nil, "1", true}},
	{"string", `{"type":"string"}`, []any{"", "a"}, []any{nil, 1}},
	{"null", `{"type":"null"}`, []any{nil}, []any{0, "", false}},
	{"literal string", `{"enum":["a"]}`, []any{"a"}, []any{"b", nil}},
	{"literal number", `{"enum":[3]}`, []any{3, 3.0, uint8(3)}, []any{"3", 4}},
	{"array", `{"type":"array","items":{"type":"null"}}`, []any{[]any{}, []any{nil, nil}}, []any{[]any{nil, 1}, "x", nil}},
	{"record", `{"type":"object","required":["a","b"],"properties":{"a":{"enum":["a"]},"b":{"enum":["b"]}}}`,
		[]any{map[string]any{"a": "a", "b": "b"}, pair{A: "a", B: "b"}, map[string]any{"a": "a", "b": "b", "c": 1}},
		[]any{map[string]any{"a": "a"}, map[string]any{"a": "a", "b": "x"}, []any{}, "ab"}},
	{"dictionary", `{"type":"object","additionalProperties":{"type":"boolean"}}`,
		[]any{map[string]any{}, map[string]any{"x": true}, map[string]bool{"y": false}},
		[]any{map[string]any{"x": 1}, []any{}, nil}},
	{"tuple", `{"type":"array","minItems":2,"maxItems":2,"items":[{"type":"string"},{"type":"number"}]}`,
		[]any{[]any{"a", 1}},
		[]any{[]any{"a"}, []any{"a", 1, 2}, []any{1, "a"}, map[string]any{}}},
	{"empty tuple", `{"type":"array","minItems":0,"maxItems":0}`, []any{[]any{}}, []any{[]any{1}, nil}},
	{"union", `{"anyOf":[{"type":"number"},{"type":"string"}]}`, []any{1, "x"}, []any{true, nil}},
	{"intersect", `{"allOf":[{"type":"string"},{"type":"number"}]}`, nil, []any{"a", 1, nil}},
	{"partial", `{"anyOf":[{"type":"string"},{"type":"number"},{"type":"boolean"},{"type":"array"},{"type":"object","properties":{"n":{"type":"number"}}}]}`,
		[]any{"x", 1, true, []any{"anything"}, map[string]any{}, map[string]any{"n": 1}},
		[]any{map[string]any{"n": "1"}, nil}},
}

// Run compiles every case with e and checks its verdicts.
func Run(t *testing.T, e engine.Engine) {
	t.Helper()
	for _, tc := range Cases {
		t.Run(tc.Name, func(t *testing.T) {
			s, err := js.Parse([]byte(tc.Schema))
			require.NoError(t, err)
			c, err := e.Compile(s)
			require.NoError(t, err, "compile %s", tc.Schema)
			for _, v := range tc.Accept {
				assert.NoError(t, engine.Check(c, v), "%s should accept %#v", tc.Schema, v)
			}
			for _, v := range tc.Reject {
				assert.Error(t, engine.Check(c, v), "%s should reject %#v", tc.Schema, v)
			}
		})
	}
}
