// Package descriptor models runtime type descriptors: a closed tree of
// primitive, literal and combinator nodes with a native accept/reject
// evaluation.
//
// The set of node kinds is sealed. Code that needs to handle every kind
// implements Visitor; adding a kind adds a Visitor method, so every
// implementation stops compiling until it handles the new kind.
package descriptor

import "github.com/reoring/shapeschema/internal/pointer"

// Tag identifies a descriptor node kind.
type Tag string

const (
	TagBoolean    Tag = "boolean"
	TagNumber     Tag = "number"
	TagString     Tag = "string"
	TagAlways     Tag = "always"
	TagNever      Tag = "never"
	TagVoid       Tag = "void"
	TagLiteral    Tag = "literal"
	TagArray      Tag = "array"
	TagRecord     Tag = "record"
	TagPartial    Tag = "partial"
	TagDictionary Tag = "dictionary"
	TagTuple      Tag = "tuple"
	TagUnion      Tag = "union"
	TagIntersect  Tag = "intersect"
	TagSymbol     Tag = "symbol"
	TagFunction   Tag = "function"
	TagConstraint Tag = "constraint"
	TagInstanceOf Tag = "instanceof"
	TagBrand      Tag = "brand"
)

// Descriptor is a node of a type-descriptor tree. Only types declared in this
// package implement it.
type Descriptor interface {
	Tag() Tag
	// Accept dispatches to the Visitor method matching the node kind.
	Accept(v Visitor) error

	check(at pointer.Pointer, v any) Issues
}

// Visitor handles every descriptor kind.
type Visitor interface {
	VisitBoolean(Boolean) error
	VisitNumber(Number) error
	VisitString(String) error
	VisitAlways(Always) error
	VisitNever(Never) error
	VisitVoid(Void) error
	VisitLiteral(Literal) error
	VisitArray(Array) error
	VisitRecord(Record) error
	VisitPartial(Partial) error
	VisitDictionary(Dictionary) error
	VisitTuple(Tuple) error
	VisitUnion(Union) error
	VisitIntersect(Intersect) error
	VisitSymbol(Symbol) error
	VisitFunction(Function) error
	VisitConstraint(Constraint) error
	VisitInstanceOf(InstanceOf) error
	VisitBrand(Brand) error
}

// Field is a named member of a Record or Partial.
type Field struct {
	Name string
	Type Descriptor
}

// F is shorthand for Field{Name: name, Type: d}.
func F(name string, d Descriptor) Field { return Field{Name: name, Type: d} }
