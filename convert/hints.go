package convert

import (
	"reflect"

	"github.com/plainform/go-plain/debug"
	"github.com/plainform/go-plain/ir"
	"github.com/plainform/go-plain/schema"
)

// defaultEmitter writes the discriminator key when the runtime type of
// the materialized value differs from the statically expected type.
func (c *Converter) defaultEmitter() schema.HintEmitter {
	return func(out *ir.Node, src any, expected reflect.Type, srcMeta *schema.TypeMeta) {
		t := reflect.TypeOf(src)
		for t != nil && t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		if t == nil || t == expected {
			return
		}
		name := c.reg.NameOf(t)
		if srcMeta != nil && srcMeta.Name != "" {
			name = srcMeta.Name
		}
		if name == "" {
			return
		}
		if debug.Hints() {
			debug.Logf("hint emitted: %s=%s for %s at %s slot\n", c.hintKey, name, t, expected)
		}
		ir.Set(out, c.hintKey, ir.FromString(name))
	}
}

// defaultResolver reads the discriminator key and looks it up in the
// merged known-types map.
func (c *Converter) defaultResolver() schema.HintResolver {
	return func(src *ir.Node, known map[string]reflect.Type) (reflect.Type, bool) {
		hint := ir.Get(src, c.hintKey)
		if hint == nil || hint.Type != ir.StringType {
			return nil, false
		}
		t, ok := known[hint.String]
		return t, ok
	}
}

// typeMatches reports whether a value of runtime type actual may stand at
// a position expecting expected.
func (c *Converter) typeMatches(actual, expected reflect.Type) bool {
	return c.reg.IsSubtype(actual, expected)
}

// mergeKnownSubtypes adds meta's declared subtypes into the per-call
// known-types map.
func mergeKnownSubtypes(known map[string]reflect.Type, meta *schema.TypeMeta) {
	if meta == nil {
		return
	}
	for name, t := range meta.Subtypes {
		known[name] = t
	}
}
