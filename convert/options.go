package convert

import (
	"reflect"

	"github.com/plainform/go-plain/debug"
	"github.com/plainform/go-plain/schema"
)

// DefaultHintKey is the discriminator key written and read by the default
// type-hint emitter and resolver.
const DefaultHintKey = "__type"

// Option configures a Converter.
type Option func(*Converter)

// Converter binds a registry, effective options and the error sink into a
// materialize/reify pair. A Converter is immutable after New and safe for
// concurrent use; each top-level call owns its own known-types map and
// path state.
type Converter struct {
	reg      *schema.Registry
	opts     *schema.Options
	sink     func(error)
	hintKey  string
	emitter  schema.HintEmitter
	resolver schema.HintResolver
	autoMeta bool
}

// New creates a Converter. With no options it uses the default registry,
// default options, the debug-logging error sink and the default hint
// protocol.
func New(opts ...Option) *Converter {
	c := &Converter{
		reg:     schema.DefaultRegistry(),
		opts:    &schema.Options{},
		hintKey: DefaultHintKey,
	}
	c.sink = func(err error) {
		debug.Logf("convert: %v\n", err)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithRegistry uses reg instead of the default registry.
func WithRegistry(reg *schema.Registry) Option {
	return func(c *Converter) {
		if reg != nil {
			c.reg = reg
		}
	}
}

// WithOptions merges o over the converter's options.
func WithOptions(o *schema.Options) Option {
	return func(c *Converter) {
		c.opts = c.opts.Merge(o)
	}
}

// WithErrorHandler installs the recoverable-error sink. The handler may
// panic to abort the whole conversion; the panic propagates to the
// caller of the top-level entry point.
func WithErrorHandler(sink func(error)) Option {
	return func(c *Converter) {
		if sink != nil {
			c.sink = sink
		}
	}
}

// WithHintKey changes the discriminator key used by the default hint
// protocol.
func WithHintKey(key string) Option {
	return func(c *Converter) {
		if key != "" {
			c.hintKey = key
		}
	}
}

// WithHintEmitter installs a global type-hint emitter override.
// Type-level emitters still win over it.
func WithHintEmitter(e schema.HintEmitter) Option {
	return func(c *Converter) {
		c.emitter = e
	}
}

// WithHintResolver installs a global type-hint resolver override.
// Type-level resolvers still win over it.
func WithHintResolver(r schema.HintResolver) Option {
	return func(c *Converter) {
		c.resolver = r
	}
}

// WithAutoMeta derives metadata records from struct tags for entity types
// that were never registered, instead of falling back to untyped
// conversion. The derived records are computed per lookup and never
// written into the registry.
func WithAutoMeta() Option {
	return func(c *Converter) {
		c.autoMeta = true
	}
}

// Report routes err through the converter's error sink. Top-level text
// entry points use it to surface configuration errors that the engines
// escalate instead of sinking themselves.
func (c *Converter) Report(err error) {
	c.sink(err)
}

// report routes a recoverable problem through the error sink.
func (c *Converter) report(err error) {
	c.sink(err)
}

// lookupMeta finds the metadata record for t, deriving one from struct
// tags when auto-meta is enabled.
func (c *Converter) lookupMeta(t reflect.Type) (*schema.TypeMeta, bool) {
	if meta, ok := c.reg.Lookup(t); ok {
		return meta, true
	}
	if !c.autoMeta {
		return nil, false
	}
	meta, err := schema.MetaFromStructTags(t)
	if err != nil {
		return nil, false
	}
	return meta, true
}
