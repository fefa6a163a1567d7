// Package schema holds the static conversion metadata read by the engines
// in package convert: type descriptors, per-type metadata records, and the
// registry that makes records discoverable by Go type identity.
//
// # Descriptors
//
// A Descriptor says what kind of value is expected at a position: a
// concrete Go type, an N-dimensional array of an element descriptor, a set
// of an element descriptor, or a key/value map with a declared wire shape.
// Descriptors are built once (at registration or per call) and are
// immutable afterwards:
//
//	d := schema.ArrayOf(schema.TypeOf[Point](), 2) // [][]Point
//	m := schema.MapOf(schema.TypeOf[string](), schema.TypeOf[int](), schema.AsObject)
//
// # Metadata records
//
// A TypeMeta describes one entity type: its declared members (in
// declaration order, each with a wire name and either a descriptor or a
// custom codec), its known subtypes, optional type-hint emitter/resolver
// overrides, optional lifecycle hook method names, an optional initializer
// callback, and merged options.
//
// Records are registered ahead of any conversion, either with explicit
// builder options:
//
//	schema.Register[Employee](reg, "EmployeeType",
//	    schema.WithMembersFromStruct(),
//	    schema.WithSubtypeOf[Person](),
//	)
//
// or derived wholesale from `plain:"..."` struct tags. The registry is
// read-only to the conversion engines; concurrent conversions may share it
// freely once registration is complete.
package schema
