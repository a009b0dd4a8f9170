package shapeschema

import (
	"fmt"

	"github.com/reoring/shapeschema/descriptor"
	"github.com/reoring/shapeschema/internal/jsonval"
	"github.com/reoring/shapeschema/internal/pointer"
	js "github.com/reoring/shapeschema/jsonschema"
)

// ToSchema maps a descriptor tree to a schema document accepting the same
// values. Mapping stops at the first node that has no equivalent: the error
// is an *UnsupportedTagError, a *NonScalarLiteralError or wraps
// ErrNilDescriptor, and no partial schema is returned.
//
// The tree must be finite; self-referential descriptors do not terminate.
func ToSchema(d descriptor.Descriptor, opts ...Option) (*js.Schema, error) {
	cfg := newConfig(opts)
	s, err := mapNode(d, pointer.Root())
	if err != nil {
		cfg.logger.Debug("shapeschema: descriptor not mappable", "error", err)
		return nil, err
	}
	return s, nil
}

func mapNode(d descriptor.Descriptor, at pointer.Pointer) (*js.Schema, error) {
	if d == nil {
		return nil, fmt.Errorf("%w (at %s)", ErrNilDescriptor, at)
	}
	f := &forward{at: at}
	if err := d.Accept(f); err != nil {
		return nil, err
	}
	return f.out, nil
}

func mapAll(ds []descriptor.Descriptor, at pointer.Pointer) ([]*js.Schema, error) {
	out := make([]*js.Schema, len(ds))
	for i, d := range ds {
		s, err := mapNode(d, at.Index(i))
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// forward produces the schema of one descriptor node.
type forward struct {
	at  pointer.Pointer
	out *js.Schema
}

var _ descriptor.Visitor = (*forward)(nil)

func (f *forward) VisitAlways(descriptor.Always) error { f.out = js.True(); return nil }
func (f *forward) VisitNever(descriptor.Never) error   { f.out = js.False(); return nil }

func (f *forward) VisitVoid(descriptor.Void) error {
	f.out = &js.Schema{Enum: []any{nil}}
	return nil
}

func (f *forward) VisitBoolean(descriptor.Boolean) error { return f.primitive(descriptor.TagBoolean) }
func (f *forward) VisitNumber(descriptor.Number) error   { return f.primitive(descriptor.TagNumber) }
func (f *forward) VisitString(descriptor.String) error   { return f.primitive(descriptor.TagString) }

func (f *forward) primitive(t descriptor.Tag) error {
	f.out = &js.Schema{Type: string(t)}
	return nil
}

func (f *forward) VisitLiteral(d descriptor.Literal) error {
	if !IsJSONScalar(d.Value) {
		return &NonScalarLiteralError{Value: d.Value, Path: f.at.String()}
	}
	if d.Value == nil {
		f.out = &js.Schema{Type: "null"}
		return nil
	}
	v, err := jsonval.Normalize(d.Value)
	if err != nil {
		return &NonScalarLiteralError{Value: d.Value, Path: f.at.String()}
	}
	f.out = &js.Schema{Enum: []any{v}}
	return nil
}

func (f *forward) VisitArray(d descriptor.Array) error {
	items, err := mapNode(d.Element, f.at.Field("element"))
	if err != nil {
		return err
	}
	f.out = &js.Schema{Type: "array", Items: items}
	return nil
}

func (f *forward) VisitRecord(d descriptor.Record) error {
	props, err := f.properties(d.Fields)
	if err != nil {
		return err
	}
	f.out = &js.Schema{Type: "object", Required: props.Names(), Properties: props}
	return nil
}

// VisitPartial widens on purpose: besides objects whose present keys match,
// the schema accepts every string, number, boolean and array. Partial
// descriptors reject those values, so the schema is strictly more permissive.
// The accepted set is kept as is for compatibility with existing documents.
func (f *forward) VisitPartial(d descriptor.Partial) error {
	props, err := f.properties(d.Fields)
	if err != nil {
		return err
	}
	f.out = &js.Schema{AnyOf: []*js.Schema{
		{Type: "string"},
		{Type: "number"},
		{Type: "boolean"},
		{Type: "array"},
		{Type: "object", Properties: props},
	}}
	return nil
}

func (f *forward) properties(fields []descriptor.Field) (js.Properties, error) {
	at := f.at.Field("fields")
	props := make(js.Properties, 0, len(fields))
	for _, fd := range fields {
		s, err := mapNode(fd.Type, at.Field(fd.Name))
		if err != nil {
			return nil, err
		}
		props = append(props, js.Property{Name: fd.Name, Schema: s})
	}
	return props, nil
}

func (f *forward) VisitDictionary(d descriptor.Dictionary) error {
	values, err := mapNode(d.Value, f.at.Field("value"))
	if err != nil {
		return err
	}
	f.out = &js.Schema{Type: "object", AdditionalProperties: values}
	return nil
}

func (f *forward) VisitTuple(d descriptor.Tuple) error {
	items, err := mapAll(d.Components, f.at.Field("components"))
	if err != nil {
		return err
	}
	n := len(items)
	// an empty items array is not a valid document; length bounds suffice
	if n == 0 {
		items = nil
	}
	f.out = &js.Schema{Type: "array", MinItems: js.Int(n), MaxItems: js.Int(n), TupleItems: items}
	return nil
}

func (f *forward) VisitUnion(d descriptor.Union) error {
	if len(d.Alternatives) == 0 {
		f.out = js.False()
		return nil
	}
	alts, err := mapAll(d.Alternatives, f.at.Field("alternatives"))
	if err != nil {
		return err
	}
	f.out = &js.Schema{AnyOf: alts}
	return nil
}

func (f *forward) VisitIntersect(d descriptor.Intersect) error {
	if len(d.Members) == 0 {
		f.out = js.True()
		return nil
	}
	members, err := mapAll(d.Members, f.at.Field("members"))
	if err != nil {
		return err
	}
	f.out = &js.Schema{AllOf: members}
	return nil
}

func (f *forward) VisitSymbol(d descriptor.Symbol) error         { return f.unsupported(d.Tag()) }
func (f *forward) VisitFunction(d descriptor.Function) error     { return f.unsupported(d.Tag()) }
func (f *forward) VisitConstraint(d descriptor.Constraint) error { return f.unsupported(d.Tag()) }
func (f *forward) VisitInstanceOf(d descriptor.InstanceOf) error { return f.unsupported(d.Tag()) }
func (f *forward) VisitBrand(d descriptor.Brand) error           { return f.unsupported(d.Tag()) }

func (f *forward) unsupported(t descriptor.Tag) error {
	return &UnsupportedTagError{Tag: t, Path: f.at.String()}
}
