package descriptor

import "fmt"

// LiteralOf returns a Literal accepting exactly v.
func LiteralOf(v any) Literal { return Literal{Value: v} }

// ArrayOf returns an Array of elem.
func ArrayOf(elem Descriptor) Array { return Array{Element: elem} }

// RecordOf returns a Record with the given fields in order. It panics when a
// field name repeats.
func RecordOf(fields ...Field) Record { return Record{Fields: uniqueFields("RecordOf", fields)} }

// PartialOf returns a Partial with the given fields in order. It panics when a
// field name repeats.
func PartialOf(fields ...Field) Partial { return Partial{Fields: uniqueFields("PartialOf", fields)} }

// DictionaryOf returns a Dictionary whose values satisfy value.
func DictionaryOf(value Descriptor) Dictionary { return Dictionary{Value: value} }

// TupleOf returns a Tuple of the given components.
func TupleOf(components ...Descriptor) Tuple {
	return Tuple{Components: append([]Descriptor(nil), components...)}
}

// UnionOf returns a Union of at least one alternative.
func UnionOf(first Descriptor, rest ...Descriptor) Union {
	return Union{Alternatives: append([]Descriptor{first}, rest...)}
}

// IntersectOf returns an Intersect of at least one member.
func IntersectOf(first Descriptor, rest ...Descriptor) Intersect {
	return Intersect{Members: append([]Descriptor{first}, rest...)}
}

// Constrain narrows d with a named predicate.
func Constrain(d Descriptor, name string, pred func(v any) bool) Constraint {
	return Constraint{Underlying: d, Name: name, Predicate: pred}
}

// Branded tags d with a nominal brand.
func Branded(d Descriptor, name string) Brand { return Brand{Underlying: d, Name: name} }

func uniqueFields(fn string, fields []Field) []Field {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f.Name]; dup {
			panic(fmt.Sprintf("descriptor.%s: duplicate field %q", fn, f.Name))
		}
		seen[f.Name] = struct{}{}
	}
	return append([]Field(nil), fields...)
}
