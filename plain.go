// Package plain converts typed Go values to and from plain value trees,
// the JSON-compatible subset of objects, arrays, strings, numbers, bools
// and null. A schema.Descriptor names the root shape, the metadata
// registry describes entity types, and the convert engines walk the two
// representations.
//
// The facade wraps the engines with a JSON (or YAML) text layer:
//
//	data, err := plain.Marshal(person)
//	person, err := plain.Unmarshal[Person](data)
//
// or, with an explicit descriptor and codec:
//
//	codec := plain.NewCodec(schema.TypeOf[Person]())
//	data, err := codec.Stringify(person)
package plain

import (
	"github.com/plainform/go-plain/convert"
	"github.com/plainform/go-plain/ir"
	"github.com/plainform/go-plain/schema"
)

// Codec binds a root descriptor, a converter and text-layer encode
// options into one reusable conversion endpoint. A Codec is immutable
// and safe for concurrent use.
type Codec struct {
	desc *schema.Descriptor
	conv *convert.Converter
	enc  []ir.EncodeOption
}

// CodecOption configures a Codec.
type CodecOption func(*Codec)

// WithConverter uses cv instead of a default converter.
func WithConverter(cv *convert.Converter) CodecOption {
	return func(c *Codec) {
		if cv != nil {
			c.conv = cv
		}
	}
}

// WithEncode appends text-layer encode options (indent, replacer hook)
// applied by Stringify.
func WithEncode(opts ...ir.EncodeOption) CodecOption {
	return func(c *Codec) {
		c.enc = append(c.enc, opts...)
	}
}

// NewCodec creates a Codec for the given root descriptor.
func NewCodec(d *schema.Descriptor, opts ...CodecOption) *Codec {
	c := &Codec{
		desc: d,
		conv: convert.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Materialize converts v into a plain tree.
func (c *Codec) Materialize(v any) (*ir.Node, error) {
	return c.conv.Materialize(v, c.desc)
}

// Reify converts a plain tree and stores the result through out.
func (c *Codec) Reify(node *ir.Node, out any) error {
	return c.conv.Reify(node, c.desc, out)
}

// Stringify materializes v and encodes the plain tree as JSON. An engine
// escalation (a configuration error) is routed through the converter's
// error sink and yields no result with a nil error; only the sink itself
// can abort the call, by panicking.
func (c *Codec) Stringify(v any) ([]byte, error) {
	node, err := c.Materialize(v)
	if err != nil {
		c.conv.Report(err)
		return nil, nil
	}
	if node == nil {
		node = ir.Null()
	}
	return ir.ToJSON(node, c.enc...)
}

// Parse decodes JSON text and reifies the plain tree through out.
// Text-level decode errors are returned; engine escalations go through
// the error sink and leave out untouched.
func (c *Codec) Parse(data []byte, out any) error {
	node, err := ir.FromJSON(data)
	if err != nil {
		return err
	}
	if err := c.Reify(node, out); err != nil {
		c.conv.Report(err)
	}
	return nil
}

// StringifyYAML materializes v and encodes the plain tree as YAML. Engine
// escalations are sunk as in Stringify.
func (c *Codec) StringifyYAML(v any) ([]byte, error) {
	node, err := c.Materialize(v)
	if err != nil {
		c.conv.Report(err)
		return nil, nil
	}
	if node == nil {
		node = ir.Null()
	}
	return ir.ToYAML(node)
}

// ParseYAML decodes YAML text and reifies the plain tree through out.
// Errors behave as in Parse.
func (c *Codec) ParseYAML(data []byte, out any) error {
	node, err := ir.FromYAML(data)
	if err != nil {
		return err
	}
	if err := c.Reify(node, out); err != nil {
		c.conv.Report(err)
	}
	return nil
}
