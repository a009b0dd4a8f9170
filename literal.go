package shapeschema

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"unicode/utf8"
)

// maxExactInt is the largest integer magnitude a float64 holds exactly.
const maxExactInt = 1 << 53

// numberLiteral is satisfied by json.Number from encoding/json and go-json.
type numberLiteral interface {
	Float64() (float64, error)
	String() string
}

// IsJSONScalar reports whether v can be the payload of a literal descriptor:
// nil, a bool, a valid UTF-8 string or a finite number (named types included).
// Integers must be exactly representable as float64 (|n| <= 2^53), so the
// encoded document names the same value. NaN, ±Inf, pointers, slices, arrays,
// maps and structs are not scalars; -0 is.
func IsJSONScalar(v any) bool {
	if v == nil {
		return true
	}
	if n, ok := v.(numberLiteral); ok && reflect.TypeOf(v).Kind() == reflect.String {
		return isExactNumber(n)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return true
	case reflect.String:
		return utf8.ValidString(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		return i >= -maxExactInt && i <= maxExactInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() <= maxExactInt
	case reflect.Float32, reflect.Float64:
		return isFinite(rv.Float())
	}
	return false
}

func isExactNumber(n numberLiteral) bool {
	s := n.String()
	switch i, err := strconv.ParseInt(s, 10, 64); {
	case err == nil:
		return i >= -maxExactInt && i <= maxExactInt
	case errors.Is(err, strconv.ErrRange):
		return false
	}
	f, err := n.Float64()
	return err == nil && isFinite(f)
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
