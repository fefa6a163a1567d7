package schema

import (
	"reflect"

	"github.com/plainform/go-plain/ir"
)

// HintEmitter runs after an entity has been materialized. It may add
// discriminator keys (or anything else) to the output object. src is the
// original typed value, expected the statically expected type, and srcMeta
// the metadata record of the value's runtime type, if registered.
type HintEmitter func(out *ir.Node, src any, expected reflect.Type, srcMeta *TypeMeta)

// HintResolver inspects a raw source object and the merged known-types
// map and returns the concrete type to instantiate, or false when it has
// no opinion.
type HintResolver func(src *ir.Node, known map[string]reflect.Type) (reflect.Type, bool)

// Initializer builds an entity instance from its reified members,
// bypassing default construction. fields maps member (Go) names to reified
// values; raw is the unconverted source object. The result's runtime type
// must be the resolved type or a valid subtype of it.
type Initializer func(fields map[string]any, raw *ir.Node) (any, error)

// MemberCodec is a custom per-member conversion pair. When set on a
// member, the engines call it directly on the raw field value instead of
// recursing through descriptors.
type MemberCodec struct {
	Materialize func(v any) (*ir.Node, error)
	Reify       func(n *ir.Node) (any, error)
}

// Member is one declared member of an entity type.
type Member struct {
	// Name is the Go field name.
	Name string

	// Wire is the key under which the member travels in plain objects.
	Wire string

	// Desc is the member's type descriptor. Exactly one of Desc and Codec
	// must be set.
	Desc *Descriptor

	// Codec is an optional custom conversion pair replacing Desc.
	Codec *MemberCodec

	// Required makes the reify engine report a missing-member problem
	// when the member yields no value.
	Required bool

	// Opts are member-level overrides merged over type-level options.
	Opts *Options
}

// TypeMeta is the metadata record for one entity type. Records are built
// at registration time and never mutated afterwards; the conversion
// engines only read them.
type TypeMeta struct {
	// Type is the entity's Go struct type (never a pointer type).
	Type reflect.Type

	// Name is the wire name used as the default type discriminator value.
	Name string

	// Members in declaration order.
	Members []Member

	// Subtypes maps wire names to known subtype identities declared on
	// this type.
	Subtypes map[string]reflect.Type

	// Emitter and Resolver override the default type-hint protocol for
	// this type.
	Emitter  HintEmitter
	Resolver HintResolver

	// BeforeMaterialize and AfterReify name hook methods looked up on the
	// instance (value or pointer receiver) by reflection. Signature:
	// func() or func() error.
	BeforeMaterialize string
	AfterReify        string

	// Initializer, when set, replaces default construction on reify.
	Initializer Initializer

	// Opts are type-level option overrides.
	Opts *Options
}

// MemberByWire returns the declared member with the given wire name.
func (m *TypeMeta) MemberByWire(wire string) (*Member, bool) {
	for i := range m.Members {
		if m.Members[i].Wire == wire {
			return &m.Members[i], true
		}
	}
	return nil, false
}

// normalizeType strips pointer indirections from t.
func normalizeType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
