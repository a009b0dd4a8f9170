// Package jsonval normalizes Go values into the JSON value model shared by the
// descriptor evaluator and the validation engines: nil, bool, string, float64,
// []any and map[string]any.
package jsonval

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	json "github.com/goccy/go-json"
)

// ErrNotJSON reports a value with no JSON representation (NaN, ±Inf, channels, funcs).
var ErrNotJSON = errors.New("jsonval: value is not representable as JSON")

// Normalize returns v in the JSON value model. Containers are copied, so the
// result never aliases v. Values outside the fast path are round-tripped
// through go-json, which honours json tags and Marshaler implementations.
func Normalize(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool, string:
		return t, nil
	case float64:
		return finite(t)
	case float32:
		return finite(float64(t))
	case int:
		return float64(t), nil
	case int8:
		return float64(t), nil
	case int16:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint:
		return float64(t), nil
	case uint8:
		return float64(t), nil
	case uint16:
		return float64(t), nil
	case uint32:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			ne, err := Normalize(e)
			if err != nil {
				return nil, err
			}
			out[i] = ne
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			ne, err := Normalize(e)
			if err != nil {
				return nil, err
			}
			out[k] = ne
		}
		return out, nil
	}
	return roundTrip(v)
}

// Equal compares two normalized values.
func Equal(a, b any) bool { return reflect.DeepEqual(a, b) }

func finite(f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %v", ErrNotJSON, f)
	}
	return f, nil
}

func roundTrip(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJSON, err)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJSON, err)
	}
	return out, nil
}
