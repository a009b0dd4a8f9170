// Package pointer builds JSON Pointers in a chain-safe way.
//
// Segments are escaped as in RFC 6901, but the root renders as "/" rather
// than the empty string. This is the convention of issue and error paths;
// the strings are meant for diagnostics, not for resolving against a document.
package pointer

import (
	"strconv"
	"strings"
)

// Pointer is an immutable JSON Pointer. The zero value is the document root.
type Pointer struct {
	parts []string
}

// Root returns the root pointer.
func Root() Pointer { return Pointer{} }

// Field appends an object member name, escaping '~' and '/'.
func (p Pointer) Field(name string) Pointer {
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return p.with(esc)
}

// Index appends an array index.
func (p Pointer) Index(i int) Pointer { return p.with(strconv.Itoa(i)) }

// with copies before appending so sibling pointers never share a backing array.
func (p Pointer) with(seg string) Pointer {
	parts := make([]string, len(p.parts), len(p.parts)+1)
	copy(parts, p.parts)
	return Pointer{parts: append(parts, seg)}
}

// String renders the pointer. The root renders as "/", the same string as a
// single member named "".
func (p Pointer) String() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

