package plain

import (
	"reflect"

	"github.com/plainform/go-plain/schema"
)

// Marshal converts v to JSON text, inferring the root descriptor from
// T's Go type: nested slices become arrays, map[E]struct{} becomes a
// set, other maps become object-shaped maps, everything else is
// concrete.
func Marshal[T any](v T, opts ...CodecOption) ([]byte, error) {
	return NewCodec(descriptorFor[T](), opts...).Stringify(v)
}

// Unmarshal converts JSON text back into a T, with the root descriptor
// inferred as for Marshal.
func Unmarshal[T any](data []byte, opts ...CodecOption) (T, error) {
	var out T
	err := NewCodec(descriptorFor[T](), opts...).Parse(data, &out)
	return out, err
}

// MarshalYAML is Marshal with a YAML text layer.
func MarshalYAML[T any](v T, opts ...CodecOption) ([]byte, error) {
	return NewCodec(descriptorFor[T](), opts...).StringifyYAML(v)
}

// UnmarshalYAML is Unmarshal with a YAML text layer.
func UnmarshalYAML[T any](data []byte, opts ...CodecOption) (T, error) {
	var out T
	err := NewCodec(descriptorFor[T](), opts...).ParseYAML(data, &out)
	return out, err
}

func descriptorFor[T any]() *schema.Descriptor {
	return schema.DescriptorForType(reflect.TypeOf((*T)(nil)).Elem())
}
