package descriptor

import (
	"github.com/reoring/shapeschema/i18n"
	"github.com/reoring/shapeschema/internal/jsonval"
	"github.com/reoring/shapeschema/internal/pointer"
)

// Validate evaluates v against d. It returns nil when d accepts v and Issues
// otherwise. v is normalized to the JSON value model first, so typed Go
// values (structs, []string, int) are evaluated by their JSON shape.
func Validate(d Descriptor, v any) error {
	nv, err := jsonval.Normalize(v)
	if err != nil {
		return Issues{{Path: "/", Code: CodeNotJSON, Message: i18n.T(CodeNotJSON, nil), Cause: err}}
	}
	if iss := checkNode(d, pointer.Root(), nv); len(iss) > 0 {
		return iss
	}
	return nil
}

// Accepts reports whether d accepts v.
func Accepts(d Descriptor, v any) bool { return Validate(d, v) == nil }
