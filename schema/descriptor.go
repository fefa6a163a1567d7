package schema

import (
	"fmt"
	"reflect"
)

// Kind discriminates the descriptor variants.
type Kind int

const (
	ConcreteKind Kind = iota
	ArrayKind
	SetKind
	MapKind
)

func (k Kind) String() string {
	switch k {
	case ConcreteKind:
		return "Concrete"
	case ArrayKind:
		return "Array"
	case SetKind:
		return "Set"
	case MapKind:
		return "Map"
	}
	return "<unknown kind>"
}

// MapShape selects the wire representation of a map: a plain object keyed
// by the materialized keys, or an array of {key, value} records.
type MapShape int

const (
	AsArray MapShape = iota
	AsObject
)

func (s MapShape) String() string {
	if s == AsObject {
		return "AsObject"
	}
	return "AsArray"
}

// Descriptor describes the expected shape of a value at one position. It
// is a tagged variant: Kind selects which fields are meaningful. Build
// descriptors with TypeOf, ConcreteOf, ArrayOf, SetOf and MapOf; treat
// them as immutable once built.
type Descriptor struct {
	Kind Kind

	// Type is the concrete Go type for ConcreteKind. For entity types this
	// is the struct (not pointer) type or an interface type.
	Type reflect.Type

	// Elem is the element descriptor for ArrayKind and SetKind.
	Elem *Descriptor

	// Dims is the number of array dimensions for ArrayKind, at least 1.
	Dims int

	// Key and Value are the entry descriptors for MapKind.
	Key   *Descriptor
	Value *Descriptor

	// Shape is the declared wire shape for MapKind.
	Shape MapShape
}

// TypeOf returns a concrete descriptor for T. Pointer types are
// normalized to their element type.
func TypeOf[T any]() *Descriptor {
	return ConcreteOf(reflect.TypeOf((*T)(nil)).Elem())
}

// ConcreteOf returns a concrete descriptor for t.
func ConcreteOf(t reflect.Type) *Descriptor {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return &Descriptor{Kind: ConcreteKind, Type: t}
}

// ArrayOf returns an array descriptor with dims dimensions over elem.
func ArrayOf(elem *Descriptor, dims int) *Descriptor {
	return &Descriptor{Kind: ArrayKind, Elem: elem, Dims: dims}
}

// SetOf returns a set descriptor over elem. The Go representation of a
// set is map[E]struct{}.
func SetOf(elem *Descriptor) *Descriptor {
	return &Descriptor{Kind: SetKind, Elem: elem}
}

// MapOf returns a map descriptor with the given key/value descriptors and
// wire shape.
func MapOf(key, value *Descriptor, shape MapShape) *Descriptor {
	return &Descriptor{Kind: MapKind, Key: key, Value: value, Shape: shape}
}

// Validate checks structural completeness. A collection descriptor with a
// missing element/key/value descriptor is a registration bug, not a data
// problem.
func (d *Descriptor) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: nil descriptor", ErrConfig)
	}
	switch d.Kind {
	case ConcreteKind:
		if d.Type == nil {
			return fmt.Errorf("%w: concrete descriptor has no type", ErrConfig)
		}
	case ArrayKind:
		if d.Dims < 1 {
			return fmt.Errorf("%w: array descriptor has %d dimensions", ErrConfig, d.Dims)
		}
		if d.Elem == nil {
			return fmt.Errorf("%w: array descriptor has no element descriptor", ErrConfig)
		}
		return d.Elem.Validate()
	case SetKind:
		if d.Elem == nil {
			return fmt.Errorf("%w: set descriptor has no element descriptor", ErrConfig)
		}
		return d.Elem.Validate()
	case MapKind:
		if d.Key == nil || d.Value == nil {
			return fmt.Errorf("%w: map descriptor missing key or value descriptor", ErrConfig)
		}
		if err := d.Key.Validate(); err != nil {
			return err
		}
		return d.Value.Validate()
	}
	return nil
}

func (d *Descriptor) String() string {
	if d == nil {
		return "<nil>"
	}
	switch d.Kind {
	case ConcreteKind:
		if d.Type == nil {
			return "Concrete(?)"
		}
		return d.Type.String()
	case ArrayKind:
		return fmt.Sprintf("Array(%s, dims=%d)", d.Elem, d.Dims)
	case SetKind:
		return fmt.Sprintf("Set(%s)", d.Elem)
	case MapKind:
		return fmt.Sprintf("Map(%s, %s, %s)", d.Key, d.Value, d.Shape)
	}
	return "<unknown descriptor>"
}

// DescriptorForType infers a descriptor from a Go type: nested slices
// become multi-dimensional arrays, map[E]struct{} becomes a set, other
// maps become maps with the default wire shape, everything else is
// concrete. []byte stays concrete (it is a binary buffer, not an array).
func DescriptorForType(t reflect.Type) *Descriptor {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Slice:
		if isNumericSlice(t) {
			return &Descriptor{Kind: ConcreteKind, Type: t}
		}
		dims := 0
		elem := t
		for elem.Kind() == reflect.Slice && !isNumericSlice(elem) {
			dims++
			elem = elem.Elem()
		}
		return ArrayOf(DescriptorForType(elem), dims)
	case reflect.Map:
		if t.Elem().Kind() == reflect.Struct && t.Elem().NumField() == 0 {
			return SetOf(DescriptorForType(t.Key()))
		}
		return MapOf(DescriptorForType(t.Key()), DescriptorForType(t.Elem()), AsObject)
	default:
		return &Descriptor{Kind: ConcreteKind, Type: t}
	}
}

// isNumericSlice reports whether t is a fixed-width numeric buffer type
// ([]byte, []int16, []float64, ...), which converts as a single value
// rather than as a nested array.
func isNumericSlice(t reflect.Type) bool {
	if t.Kind() != reflect.Slice {
		return false
	}
	switch t.Elem().Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
