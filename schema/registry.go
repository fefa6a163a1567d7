package schema

import (
	"fmt"
	"maps"
	"reflect"
	"sync"

	"github.com/plainform/go-plain/debug"
)

// Registry manages all known metadata records. Registration happens ahead
// of any conversion; afterwards the registry is effectively read-only and
// safe for concurrent readers.
type Registry struct {
	mu sync.RWMutex

	// Map of Go type identity -> metadata record.
	byType map[reflect.Type]*TypeMeta

	// Map of wire name -> Go type identity.
	byName map[string]reflect.Type
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]*TypeMeta),
		byName: make(map[string]reflect.Type),
	}
}

// defaultRegistry backs the package-level helpers.
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the registry used when no explicit registry is
// configured.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Add registers a metadata record. The record's type and name must be
// unclaimed.
func (r *Registry) Add(meta *TypeMeta) error {
	if meta == nil || meta.Type == nil {
		return fmt.Errorf("%w: metadata record must have a type", ErrConfig)
	}
	if meta.Type.Kind() == reflect.Ptr {
		return fmt.Errorf("%w: metadata record type must not be a pointer (%s)", ErrConfig, meta.Type)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byType[meta.Type]; exists {
		return fmt.Errorf("%w: type %s already registered", ErrConfig, meta.Type)
	}
	if meta.Name != "" {
		if _, exists := r.byName[meta.Name]; exists {
			return fmt.Errorf("%w: name %q already registered", ErrConfig, meta.Name)
		}
	}
	r.byType[meta.Type] = meta
	if meta.Name != "" {
		r.byName[meta.Name] = meta.Type
	}
	if debug.Registry() {
		debug.Logf("registered %s as %q (%d members, %d subtypes)\n",
			meta.Type, meta.Name, len(meta.Members), len(meta.Subtypes))
	}
	return nil
}

// Lookup returns the metadata record for t, normalizing pointer types.
func (r *Registry) Lookup(t reflect.Type) (*TypeMeta, bool) {
	t = normalizeType(t)
	r.mu.RLock()
	defer r.mu.RUnlock()
	meta, ok := r.byType[t]
	return meta, ok
}

// TypeByName returns the type registered under a wire name.
func (r *Registry) TypeByName(name string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byName[name]
	return t, ok
}

// KnownTypes returns a copy of the global wire-name index. The copy seeds
// the per-call known-types map, which conversions extend with declared
// subtypes as they are discovered.
func (r *Registry) KnownTypes() map[string]reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.byName)
}

// NameOf returns the registered wire name of t, falling back to the Go
// type name.
func (r *Registry) NameOf(t reflect.Type) string {
	t = normalizeType(t)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if meta, ok := r.byType[t]; ok && meta.Name != "" {
		return meta.Name
	}
	return t.Name()
}

// IsSubtype reports whether sub is an acceptable stand-in for base: the
// same type, an implementation of a base interface, or a type reachable
// through declared known-subtype sets.
func (r *Registry) IsSubtype(sub, base reflect.Type) bool {
	sub = normalizeType(sub)
	base = normalizeType(base)
	if sub == nil || base == nil {
		return false
	}
	if sub == base {
		return true
	}
	if base.Kind() == reflect.Interface {
		if sub.Implements(base) {
			return true
		}
		return reflect.PointerTo(sub).Implements(base)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := map[reflect.Type]bool{}
	return r.declared(sub, base, seen)
}

// declared walks declared subtype sets from base looking for sub. The
// caller holds at least a read lock.
func (r *Registry) declared(sub, base reflect.Type, seen map[reflect.Type]bool) bool {
	if seen[base] {
		return false
	}
	seen[base] = true
	meta, ok := r.byType[base]
	if !ok {
		return false
	}
	for _, st := range meta.Subtypes {
		if st == sub {
			return true
		}
		if r.declared(sub, st, seen) {
			return true
		}
	}
	return false
}
