package descriptor

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/reoring/shapeschema/i18n"
	"github.com/reoring/shapeschema/internal/pointer"
)

// Issue codes produced by native evaluation.
const (
	CodeInvalidType    = "invalid_type"
	CodeRequired       = "required"
	CodeInvalidLiteral = "invalid_literal"
	CodeTooShort       = "too_short"
	CodeTooLong        = "too_long"
	CodeNever          = "never"
	CodeNoMatch        = "no_match"
	CodeConstraint     = "constraint"
	CodeNotJSON        = "not_json"
)

// Issue represents a single rejection reason.
type Issue struct {
	Path    string // JSON Pointer into the value (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	// Params carries structured parameters (e.g., {"expected":"string"}) for
	// i18n and diagnostics.
	Params map[string]any
	Cause  error // Optional: underlying error.
}

// Issues is a collection of rejection reasons that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", iss[i].Code, iss[i].Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func newIssue(at pointer.Pointer, code string, params map[string]any) Issue {
	var data map[string]string
	if e, ok := params["expected"].(Tag); ok {
		data = map[string]string{"expected": string(e)}
	}
	return Issue{Path: at.String(), Code: code, Message: i18n.T(code, data), Params: params}
}

func invalidType(at pointer.Pointer, expected Tag) Issue {
	return newIssue(at, CodeInvalidType, map[string]any{"expected": expected})
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
