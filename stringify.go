package plain

import (
	"github.com/plainform/go-plain/schema"
)

// Stringify converts a single value described by d to JSON text.
func Stringify(v any, d *schema.Descriptor, opts ...CodecOption) ([]byte, error) {
	return NewCodec(d, opts...).Stringify(v)
}

// Parse converts JSON text back into a value described by d, storing it
// through out.
func Parse(data []byte, d *schema.Descriptor, out any, opts ...CodecOption) error {
	return NewCodec(d, opts...).Parse(data, out)
}

// StringifyArray converts a dims-dimensional slice with element
// descriptor elem to JSON text.
func StringifyArray(v any, elem *schema.Descriptor, dims int, opts ...CodecOption) ([]byte, error) {
	return NewCodec(schema.ArrayOf(elem, dims), opts...).Stringify(v)
}

// ParseArray converts JSON text back into a dims-dimensional slice.
func ParseArray(data []byte, elem *schema.Descriptor, dims int, out any, opts ...CodecOption) error {
	return NewCodec(schema.ArrayOf(elem, dims), opts...).Parse(data, out)
}

// StringifySet converts a set, represented as map[E]struct{}, to JSON
// text. The output array is sorted by plain value order.
func StringifySet(v any, elem *schema.Descriptor, opts ...CodecOption) ([]byte, error) {
	return NewCodec(schema.SetOf(elem), opts...).Stringify(v)
}

// ParseSet converts a JSON array back into a map[E]struct{} set.
func ParseSet(data []byte, elem *schema.Descriptor, out any, opts ...CodecOption) error {
	return NewCodec(schema.SetOf(elem), opts...).Parse(data, out)
}

// StringifyMap converts a map to JSON text in the given wire shape.
func StringifyMap(v any, key, value *schema.Descriptor, shape schema.MapShape, opts ...CodecOption) ([]byte, error) {
	return NewCodec(schema.MapOf(key, value, shape), opts...).Stringify(v)
}

// ParseMap converts JSON text in the given wire shape back into a map.
func ParseMap(data []byte, key, value *schema.Descriptor, shape schema.MapShape, out any, opts ...CodecOption) error {
	return NewCodec(schema.MapOf(key, value, shape), opts...).Parse(data, out)
}
