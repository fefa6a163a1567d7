// Package convert implements the two conversion engines between typed Go
// values and the plain value trees of package ir.
//
// Materialize walks a typed value guided by a schema.Descriptor and
// produces a *ir.Node ready for JSON or YAML encoding. Reify walks a
// plain tree the other way and rebuilds typed values, resolving
// polymorphic entity slots through the type-hint protocol.
//
// Recoverable problems (a mistyped element, a missing required member, a
// failing lifecycle hook) do not abort the conversion. They are routed
// through the converter's error sink and the engine degrades locally:
// array slots keep their position as null placeholders, set elements are
// dropped, map entries are skipped, and a shape mismatch yields an empty
// collection. Only configuration mistakes, such as an incomplete
// descriptor, are returned as errors.
package convert
