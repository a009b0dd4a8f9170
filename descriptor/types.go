package descriptor

import (
	"reflect"

	"github.com/reoring/shapeschema/internal/jsonval"
	"github.com/reoring/shapeschema/internal/pointer"
)

// Boolean accepts true and false.
type Boolean struct{}

// Number accepts any finite JSON number.
type Number struct{}

// String accepts any string.
type String struct{}

// Always accepts every value.
type Always struct{}

// Never accepts no value.
type Never struct{}

// Void accepts only nil, the absence-of-value sentinel (JSON null).
type Void struct{}

// Literal accepts exactly Value.
type Literal struct {
	Value any
}

// Array accepts sequences whose members all satisfy Element.
type Array struct {
	Element Descriptor
}

// Record accepts objects carrying every field, each satisfying its type.
// Keys outside Fields are not constrained.
type Record struct {
	Fields []Field
}

// Partial accepts objects whose present fields satisfy their type.
type Partial struct {
	Fields []Field
}

// Dictionary accepts objects with arbitrary keys whose values satisfy Value.
type Dictionary struct {
	Value Descriptor
}

// Tuple accepts sequences of exactly len(Components) members, positionally typed.
type Tuple struct {
	Components []Descriptor
}

// Union accepts a value satisfying any alternative. With no alternatives it
// accepts nothing.
type Union struct {
	Alternatives []Descriptor
}

// Intersect accepts a value satisfying every member. With no members it
// accepts everything.
type Intersect struct {
	Members []Descriptor
}

// Symbol matches a host-language symbol. No JSON value is a symbol.
type Symbol struct {
	Name string
}

// Function matches a callable. No JSON value is a function.
type Function struct{}

// Constraint narrows Underlying with an arbitrary predicate.
type Constraint struct {
	Underlying Descriptor
	Name       string
	Predicate  func(v any) bool
}

// InstanceOf matches values of a concrete Go type. Evaluation sees normalized
// JSON values, so only the JSON model types can match.
type InstanceOf struct {
	Type reflect.Type
}

// Brand tags Underlying with a nominal name without changing what it accepts.
type Brand struct {
	Underlying Descriptor
	Name       string
}

func (Boolean) Tag() Tag    { return TagBoolean }
func (Number) Tag() Tag     { return TagNumber }
func (String) Tag() Tag     { return TagString }
func (Always) Tag() Tag     { return TagAlways }
func (Never) Tag() Tag      { return TagNever }
func (Void) Tag() Tag       { return TagVoid }
func (Literal) Tag() Tag    { return TagLiteral }
func (Array) Tag() Tag      { return TagArray }
func (Record) Tag() Tag     { return TagRecord }
func (Partial) Tag() Tag    { return TagPartial }
func (Dictionary) Tag() Tag { return TagDictionary }
func (Tuple) Tag() Tag      { return TagTuple }
func (Union) Tag() Tag      { return TagUnion }
func (Intersect) Tag() Tag  { return TagIntersect }
func (Symbol) Tag() Tag     { return TagSymbol }
func (Function) Tag() Tag   { return TagFunction }
func (Constraint) Tag() Tag { return TagConstraint }
func (InstanceOf) Tag() Tag { return TagInstanceOf }
func (Brand) Tag() Tag      { return TagBrand }

func (d Boolean) Accept(v Visitor) error    { return v.VisitBoolean(d) }
func (d Number) Accept(v Visitor) error     { return v.VisitNumber(d) }
func (d String) Accept(v Visitor) error     { return v.VisitString(d) }
func (d Always) Accept(v Visitor) error     { return v.VisitAlways(d) }
func (d Never) Accept(v Visitor) error      { return v.VisitNever(d) }
func (d Void) Accept(v Visitor) error       { return v.VisitVoid(d) }
func (d Literal) Accept(v Visitor) error    { return v.VisitLiteral(d) }
func (d Array) Accept(v Visitor) error      { return v.VisitArray(d) }
func (d Record) Accept(v Visitor) error     { return v.VisitRecord(d) }
func (d Partial) Accept(v Visitor) error    { return v.VisitPartial(d) }
func (d Dictionary) Accept(v Visitor) error { return v.VisitDictionary(d) }
func (d Tuple) Accept(v Visitor) error      { return v.VisitTuple(d) }
func (d Union) Accept(v Visitor) error      { return v.VisitUnion(d) }
func (d Intersect) Accept(v Visitor) error  { return v.VisitIntersect(d) }
func (d Symbol) Accept(v Visitor) error     { return v.VisitSymbol(d) }
func (d Function) Accept(v Visitor) error   { return v.VisitFunction(d) }
func (d Constraint) Accept(v Visitor) error { return v.VisitConstraint(d) }
func (d InstanceOf) Accept(v Visitor) error { return v.VisitInstanceOf(d) }
func (d Brand) Accept(v Visitor) error      { return v.VisitBrand(d) }

// ---- native evaluation over normalized values ----

func (Boolean) check(at pointer.Pointer, v any) Issues {
	if _, ok := v.(bool); ok {
		return nil
	}
	return Issues{invalidType(at, TagBoolean)}
}

func (Number) check(at pointer.Pointer, v any) Issues {
	if _, ok := v.(float64); ok {
		return nil
	}
	return Issues{invalidType(at, TagNumber)}
}

func (String) check(at pointer.Pointer, v any) Issues {
	if _, ok := v.(string); ok {
		return nil
	}
	return Issues{invalidType(at, TagString)}
}

func (Always) check(pointer.Pointer, any) Issues { return nil }

func (Never) check(at pointer.Pointer, _ any) Issues {
	return Issues{newIssue(at, CodeNever, nil)}
}

func (Void) check(at pointer.Pointer, v any) Issues {
	if v == nil {
		return nil
	}
	return Issues{invalidType(at, TagVoid)}
}

func (d Literal) check(at pointer.Pointer, v any) Issues {
	want, err := jsonval.Normalize(d.Value)
	if err == nil && jsonval.Equal(want, v) {
		return nil
	}
	return Issues{newIssue(at, CodeInvalidLiteral, map[string]any{"literal": d.Value})}
}

func (d Array) check(at pointer.Pointer, v any) Issues {
	arr, ok := v.([]any)
	if !ok {
		return Issues{invalidType(at, TagArray)}
	}
	var iss Issues
	for i, e := range arr {
		iss = append(iss, checkNode(d.Element, at.Index(i), e)...)
	}
	return iss
}

func (d Record) check(at pointer.Pointer, v any) Issues {
	obj, ok := v.(map[string]any)
	if !ok {
		return Issues{invalidType(at, "object")}
	}
	var iss Issues
	for _, f := range d.Fields {
		fv, present := obj[f.Name]
		if !present {
			iss = append(iss, newIssue(at.Field(f.Name), CodeRequired, map[string]any{"key": f.Name}))
			continue
		}
		iss = append(iss, checkNode(f.Type, at.Field(f.Name), fv)...)
	}
	return iss
}

func (d Partial) check(at pointer.Pointer, v any) Issues {
	obj, ok := v.(map[string]any)
	if !ok {
		return Issues{invalidType(at, "object")}
	}
	var iss Issues
	for _, f := range d.Fields {
		if fv, present := obj[f.Name]; present {
			iss = append(iss, checkNode(f.Type, at.Field(f.Name), fv)...)
		}
	}
	return iss
}

func (d Dictionary) check(at pointer.Pointer, v any) Issues {
	obj, ok := v.(map[string]any)
	if !ok {
		return Issues{invalidType(at, "object")}
	}
	var iss Issues
	for _, k := range sortedKeys(obj) {
		iss = append(iss, checkNode(d.Value, at.Field(k), obj[k])...)
	}
	return iss
}

func (d Tuple) check(at pointer.Pointer, v any) Issues {
	arr, ok := v.([]any)
	if !ok {
		return Issues{invalidType(at, TagTuple)}
	}
	n := len(d.Components)
	switch {
	case len(arr) < n:
		return Issues{newIssue(at, CodeTooShort, map[string]any{"want": n, "got": len(arr)})}
	case len(arr) > n:
		return Issues{newIssue(at, CodeTooLong, map[string]any{"want": n, "got": len(arr)})}
	}
	var iss Issues
	for i, c := range d.Components {
		iss = append(iss, checkNode(c, at.Index(i), arr[i])...)
	}
	return iss
}

func (d Union) check(at pointer.Pointer, v any) Issues {
	for _, alt := range d.Alternatives {
		if len(checkNode(alt, at, v)) == 0 {
			return nil
		}
	}
	return Issues{newIssue(at, CodeNoMatch, map[string]any{"alternatives": len(d.Alternatives)})}
}

func (d Intersect) check(at pointer.Pointer, v any) Issues {
	var iss Issues
	for _, m := range d.Members {
		iss = append(iss, checkNode(m, at, v)...)
	}
	return iss
}

func (Symbol) check(at pointer.Pointer, _ any) Issues {
	return Issues{invalidType(at, TagSymbol)}
}

func (Function) check(at pointer.Pointer, _ any) Issues {
	return Issues{invalidType(at, TagFunction)}
}

func (d Constraint) check(at pointer.Pointer, v any) Issues {
	if iss := checkNode(d.Underlying, at, v); len(iss) > 0 {
		return iss
	}
	if d.Predicate != nil && !d.Predicate(v) {
		return Issues{newIssue(at, CodeConstraint, map[string]any{"name": d.Name})}
	}
	return nil
}

func (d InstanceOf) check(at pointer.Pointer, v any) Issues {
	if d.Type != nil && reflect.TypeOf(v) == d.Type {
		return nil
	}
	name := "<nil>"
	if d.Type != nil {
		name = d.Type.String()
	}
	return Issues{invalidType(at, Tag(name))}
}

func (d Brand) check(at pointer.Pointer, v any) Issues {
	return checkNode(d.Underlying, at, v)
}

// checkNode treats a missing child descriptor as Never.
func checkNode(d Descriptor, at pointer.Pointer, v any) Issues {
	if d == nil {
		return Never{}.check(at, v)
	}
	return d.check(at, v)
}
