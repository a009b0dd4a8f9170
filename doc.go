// Package shapeschema bridges runtime type descriptors and JSON Schema.
//
//   - ToSchema maps a descriptor tree (package descriptor) to a schema document
//     (package jsonschema) accepting the same values
//   - ToValidator compiles a schema document once through an injected
//     engine.Engine and returns a reusable Validator
//   - Compile does both in one step
//
// Engines are explicit values. engine/draft7 wraps
// github.com/santhosh-tekuri/jsonschema/v5 and engine/draft2020 wraps
// github.com/google/jsonschema-go; several differently configured engines can
// be used side by side.
//
// Typical usage:
//
//	user := descriptor.RecordOf(
//		descriptor.F("name", descriptor.String{}),
//		descriptor.F("age", descriptor.Number{}),
//	)
//	v, err := shapeschema.Compile[map[string]any](draft7.New(draft7.Options{}), user)
//	u, err := v.Validate(input)
//
// Mapping is pure and synchronous. Descriptor trees must be finite.
package shapeschema
