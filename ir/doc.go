// Package ir defines the plain value tree: the JSON-compatible intermediate
// representation shared by the materialize and reify engines.
//
// A value is represented as a tree of *Node. Nodes are a recursive tagged
// union: the Type field selects which of the other fields carry the value.
//
//   - NullType: an explicit JSON null
//   - BoolType: Bool
//   - NumberType: Int64 or Float64 (Number holds a string fallback for
//     values representable in neither)
//   - StringType: String
//   - ArrayType: Values, in order
//   - ObjectType: parallel Fields/Values slices, in declaration order
//
// An absent value ("undefined") is a nil *Node; it is distinct from an
// explicit null. Functions in this package and in package convert preserve
// that distinction.
//
// For ObjectType nodes, Fields[i] is the key for the value at Values[i], so
// there are always as many fields as values. Field nodes are string typed.
//
// Nodes maintain parent links (Parent, ParentIndex, ParentField) so that a
// node can report its location via Path().
//
// The tree converts to and from JSON text (ToJSON/FromJSON, preserving
// object key order and int64 precision) and YAML text (ToYAML/FromYAML).
// Conversion to and from untyped Go values is available via ToAny/FromAny.
//
// Node structures are not safe for concurrent mutation; clone or synchronize
// when sharing between goroutines.
package ir
