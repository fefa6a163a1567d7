package convert

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/plainform/go-plain/debug"
	"github.com/plainform/go-plain/ir"
	"github.com/plainform/go-plain/schema"
)

// ReifyValue converts a plain value tree into a typed value guided by the
// descriptor. Entity values come back as pointers to their struct type.
// A nil result with nil error means "no value".
//
// Each call owns its own known-types map: the registry's global wire-name
// index merged with declared known-subtype sets discovered while walking.
func (c *Converter) ReifyValue(node *ir.Node, d *schema.Descriptor) (any, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	r := &reifier{
		c:        c,
		known:    c.reg.KnownTypes(),
		resolver: c.resolver,
	}
	if r.resolver == nil {
		r.resolver = c.defaultResolver()
	}
	v, err := r.reify(node, d, "", c.opts)
	if debug.Reify() {
		debug.Logf("reify %v -> %T\n", node, v)
	}
	return v, err
}

// Reify converts a plain value tree and stores the result through out,
// which must be a non-nil pointer.
func (c *Converter) Reify(node *ir.Node, d *schema.Descriptor, out any) error {
	dst := reflect.ValueOf(out)
	if dst.Kind() != reflect.Ptr || dst.IsNil() {
		return &ConfigError{Message: "reify destination must be a non-nil pointer"}
	}
	v, err := c.ReifyValue(node, d)
	if err != nil {
		return err
	}
	if v == nil {
		dst.Elem().Set(reflect.Zero(dst.Elem().Type()))
		return nil
	}
	if !assignValue(dst.Elem(), v) {
		return &TypeError{Expected: dst.Elem().Type().String(), Actual: reflect.TypeOf(v).String()}
	}
	return nil
}

type reifier struct {
	c     *Converter
	known map[string]reflect.Type

	// resolver is the active type-hint resolver. A type-level resolver
	// discovered during the walk takes over for the rest of the call.
	resolver schema.HintResolver
}

func (r *reifier) reify(node *ir.Node, d *schema.Descriptor, path string, opts *schema.Options) (any, error) {
	if node == nil || node.Type == ir.NullType {
		return nil, nil
	}
	switch d.Kind {
	case schema.ArrayKind:
		return r.reifyArray(node, d, path, opts)
	case schema.SetKind:
		return r.reifySet(node, d, path, opts)
	case schema.MapKind:
		return r.reifyMap(node, d, path, opts)
	case schema.ConcreteKind:
		return r.reifyConcrete(node, d, path, opts)
	}
	return nil, &ConfigError{Path: path, Message: fmt.Sprintf("unknown descriptor kind %d", d.Kind)}
}

// reifyArray maps each plain element through reify at one lower
// dimension. A failing element leaves its zero-valued slot in place so
// length and sibling positions are preserved.
func (r *reifier) reifyArray(node *ir.Node, d *schema.Descriptor, path string, opts *schema.Options) (any, error) {
	sliceType := goTypeFor(d)
	if node.Type != ir.ArrayType {
		r.c.report(&ShapeError{Path: path, Expected: "Array", Actual: node.Type.String()})
		return reflect.MakeSlice(sliceType, 0, 0).Interface(), nil
	}
	elemDesc := d.Elem
	if d.Dims > 1 {
		elemDesc = schema.ArrayOf(d.Elem, d.Dims-1)
	}
	res := reflect.MakeSlice(sliceType, len(node.Values), len(node.Values))
	for i, en := range node.Values {
		v, err := r.reify(en, elemDesc, elemPath(path, i), opts)
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue // explicit no-value placeholder at this index
		}
		if !assignValue(res.Index(i), v) {
			r.c.report(&TypeError{Path: elemPath(path, i), Expected: res.Index(i).Type().String(), Actual: reflect.TypeOf(v).String()})
		}
	}
	return res.Interface(), nil
}

// reifySet omits failing elements: an unordered collection tolerates
// gaps.
func (r *reifier) reifySet(node *ir.Node, d *schema.Descriptor, path string, opts *schema.Options) (any, error) {
	setType := goTypeFor(d)
	res := reflect.MakeMap(setType)
	if node.Type != ir.ArrayType {
		r.c.report(&ShapeError{Path: path, Expected: "Array", Actual: node.Type.String()})
		return res.Interface(), nil
	}
	for i, en := range node.Values {
		v, err := r.reify(en, d.Elem, elemPath(path, i), opts)
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		key := reflect.New(setType.Key()).Elem()
		if !assignValue(key, v) {
			r.c.report(&TypeError{Path: elemPath(path, i), Expected: setType.Key().String(), Actual: reflect.TypeOf(v).String()})
			continue
		}
		res.SetMapIndex(key, reflect.ValueOf(struct{}{}))
	}
	return res.Interface(), nil
}

// reifyMap requires the plain shape to match the declared wire shape;
// per-entry failures are isolated, entries with an undefined key are
// skipped, null values are allowed.
func (r *reifier) reifyMap(node *ir.Node, d *schema.Descriptor, path string, opts *schema.Options) (any, error) {
	mapType := goTypeFor(d)
	res := reflect.MakeMap(mapType)

	switch d.Shape {
	case schema.AsObject:
		if node.Type != ir.ObjectType {
			r.c.report(&ShapeError{Path: path, Expected: "Object", Actual: node.Type.String()})
			return res.Interface(), nil
		}
		for i, f := range node.Fields {
			keyNode := keyNodeFor(f.String, d.Key)
			r.reifyMapEntry(res, keyNode, node.Values[i], d, childPath(path, f.String), opts)
		}
	default:
		if node.Type != ir.ArrayType {
			r.c.report(&ShapeError{Path: path, Expected: "Array", Actual: node.Type.String()})
			return res.Interface(), nil
		}
		for i, en := range node.Values {
			entryPath := elemPath(path, i)
			if en == nil || en.Type != ir.ObjectType {
				actual := "Null"
				if en != nil {
					actual = en.Type.String()
				}
				r.c.report(&TypeError{Path: entryPath, Expected: "Object {key, value}", Actual: actual})
				continue
			}
			r.reifyMapEntry(res, ir.Get(en, "key"), ir.Get(en, "value"), d, entryPath, opts)
		}
	}
	return res.Interface(), nil
}

func (r *reifier) reifyMapEntry(res reflect.Value, keyNode, valNode *ir.Node, d *schema.Descriptor, path string, opts *schema.Options) {
	kv, err := r.reify(keyNode, d.Key, path+".<key>", opts)
	if err != nil {
		r.c.report(err)
		return
	}
	if kv == nil {
		// undefined or null keys are disallowed; the entry is skipped
		return
	}
	key := reflect.New(res.Type().Key()).Elem()
	if !assignValue(key, kv) {
		r.c.report(&TypeError{Path: path, Expected: res.Type().Key().String(), Actual: reflect.TypeOf(kv).String()})
		return
	}

	val := reflect.New(res.Type().Elem()).Elem()
	vv, err := r.reify(valNode, d.Value, path+".<value>", opts)
	if err != nil {
		r.c.report(err)
		return
	}
	if vv == nil && valNode != nil && valNode.Type != ir.NullType {
		// conversion failure, not a null: skip the entry
		return
	}
	if vv != nil && !assignValue(val, vv) {
		r.c.report(&TypeError{Path: path, Expected: res.Type().Elem().String(), Actual: reflect.TypeOf(vv).String()})
		return
	}
	res.SetMapIndex(key, val)
}

func (r *reifier) reifyConcrete(node *ir.Node, d *schema.Descriptor, path string, opts *schema.Options) (any, error) {
	if isWellKnown(d.Type) {
		return r.reifyWellKnown(node, d.Type, path), nil
	}
	switch d.Type.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return r.reifyPrimitive(node, d.Type, path), nil
	}
	return r.reifyEntity(node, d.Type, path, opts)
}

func (r *reifier) reifyPrimitive(node *ir.Node, t reflect.Type, path string) any {
	rv := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.String:
		if node.Type != ir.StringType {
			r.c.report(&TypeError{Path: path, Expected: "String", Actual: node.Type.String()})
			return nil
		}
		rv.SetString(node.String)
	case reflect.Bool:
		if node.Type != ir.BoolType {
			r.c.report(&TypeError{Path: path, Expected: "Bool", Actual: node.Type.String()})
			return nil
		}
		rv.SetBool(node.Bool)
	case reflect.Float32, reflect.Float64:
		f, ok := numberValue(node)
		if !ok {
			r.c.report(&TypeError{Path: path, Expected: "Number", Actual: node.Type.String()})
			return nil
		}
		rv.SetFloat(f)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f, ok := numberValue(node)
		if !ok || f < 0 {
			r.c.report(&TypeError{Path: path, Expected: "unsigned Number", Actual: node.Type.String()})
			return nil
		}
		rv.SetUint(uint64(f))
	default:
		f, ok := numberValue(node)
		if !ok {
			r.c.report(&TypeError{Path: path, Expected: "Number", Actual: node.Type.String()})
			return nil
		}
		// integer kinds truncate fractional input
		rv.SetInt(int64(f))
	}
	return rv.Interface()
}

// reifyEntity runs the polymorphic type-resolution protocol and
// instantiates the resolved type.
func (r *reifier) reifyEntity(node *ir.Node, expected reflect.Type, path string, opts *schema.Options) (any, error) {
	if node.Type != ir.ObjectType {
		r.c.report(&TypeError{Path: path, Expected: "Object", Actual: node.Type.String()})
		return nil, nil
	}

	// 1. merge the expected type's declared subtypes; adopt its resolver
	if meta, ok := r.c.lookupMeta(expected); ok {
		mergeKnownSubtypes(r.known, meta)
		if meta.Resolver != nil {
			r.resolver = meta.Resolver
		}
	}

	// 2+3. resolve the hint; an invalid hint is ignored, not fatal, but
	// surfaced through the sink
	final := expected
	if resolved, ok := r.resolver(node, r.known); ok {
		if r.c.typeMatches(resolved, expected) {
			if debug.Hints() {
				debug.Logf("hint at %q: %s resolved for %s slot\n", path, resolved, expected)
			}
			final = resolved
			if meta, ok := r.c.lookupMeta(resolved); ok {
				mergeKnownSubtypes(r.known, meta)
				if meta.Resolver != nil {
					r.resolver = meta.Resolver
				}
			}
		} else {
			r.c.report(&TypeError{Path: path, Message: fmt.Sprintf(
				"type hint %s ignored: not a subtype of %s", resolved, expected)})
		}
	}

	meta, ok := r.c.lookupMeta(final)
	if !ok || final.Kind() != reflect.Struct {
		// 6. untyped passthrough
		return fromUntyped(node), nil
	}

	// 4. reify declared members into a scratch object
	effOpts := opts.Merge(meta.Opts)
	scratch := make(map[string]any, len(meta.Members))
	for i := range meta.Members {
		mem := &meta.Members[i]
		memPath := childPath(path, mem.Wire)
		mopts := effOpts.Merge(mem.Opts)
		raw := ir.Get(node, mem.Wire)

		var v any
		switch {
		case mem.Codec != nil && mem.Codec.Reify != nil:
			if raw != nil {
				rv, err := mem.Codec.Reify(raw)
				if err != nil {
					r.c.report(&TypeError{Path: memPath, Message: fmt.Sprintf("member codec: %v", err)})
				} else {
					v = rv
				}
			}
		case mem.Desc != nil:
			rv, err := r.reify(raw, mem.Desc, memPath, mopts)
			if err != nil {
				return nil, err
			}
			v = rv
		default:
			return nil, &ConfigError{Path: memPath, Message: "member has neither a descriptor nor a codec"}
		}

		if v == nil {
			if mem.Required {
				r.c.report(&MissingMemberError{Path: path, Member: mem.Wire})
			}
			continue
		}
		scratch[mem.Name] = v
	}

	// 4. instantiate
	var ptr reflect.Value
	if meta.Initializer != nil {
		inst, err := meta.Initializer(scratch, node)
		if err != nil {
			r.c.report(&HookError{Path: path, Hook: "initializer", Message: err.Error(), Err: err})
			return nil, nil
		}
		if inst == nil {
			r.c.report(&HookError{Path: path, Hook: "initializer", Message: "returned no instance"})
			return nil, nil
		}
		it := reflect.TypeOf(inst)
		if !r.c.typeMatches(it, final) {
			r.c.report(&HookError{Path: path, Hook: "initializer", Message: fmt.Sprintf(
				"returned %s, not a subtype of %s", it, final)})
			return nil, nil
		}
		iv := reflect.ValueOf(inst)
		if iv.Kind() == reflect.Ptr {
			ptr = iv
		} else {
			ptr = reflect.New(iv.Type())
			ptr.Elem().Set(iv)
		}
	} else {
		ptr = reflect.New(final)
		for name, v := range scratch {
			fv := ptr.Elem().FieldByName(name)
			if !fv.IsValid() {
				return nil, &ConfigError{Path: path, Message: fmt.Sprintf("%s has no field %q", final, name)}
			}
			if !assignValue(fv, v) {
				r.c.report(&TypeError{Path: childPath(path, name), Expected: fv.Type().String(), Actual: reflect.TypeOf(v).String()})
			}
		}
	}

	// 5. after-reify hook on the finished instance
	if meta.AfterReify != "" {
		if err := callHook(ptr, meta.AfterReify); err != nil {
			r.c.report(&HookError{Path: path, Hook: meta.AfterReify, Message: err.Error(), Err: err})
		}
	}
	return ptr.Interface(), nil
}

// goTypeFor maps a descriptor to its Go representation.
func goTypeFor(d *schema.Descriptor) reflect.Type {
	switch d.Kind {
	case schema.ArrayKind:
		t := goTypeFor(d.Elem)
		for i := 0; i < d.Dims; i++ {
			t = reflect.SliceOf(t)
		}
		return t
	case schema.SetKind:
		return reflect.MapOf(goTypeFor(d.Elem), reflect.TypeOf(struct{}{}))
	case schema.MapKind:
		return reflect.MapOf(goTypeFor(d.Key), goTypeFor(d.Value))
	default:
		return d.Type
	}
}

// keyNodeFor lifts a plain-object key back into the key descriptor's
// domain.
func keyNodeFor(key string, d *schema.Descriptor) *ir.Node {
	if d.Kind == schema.ConcreteKind && d.Type != nil {
		switch d.Type.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if i, err := strconv.ParseInt(key, 10, 64); err == nil {
				return ir.FromInt(i)
			}
		case reflect.Float32, reflect.Float64:
			if f, err := strconv.ParseFloat(key, 64); err == nil {
				return ir.FromFloat(f)
			}
		case reflect.Bool:
			if b, err := strconv.ParseBool(key); err == nil {
				return ir.FromBool(b)
			}
		}
	}
	return ir.FromString(key)
}

func numberValue(node *ir.Node) (float64, bool) {
	if node.Type != ir.NumberType {
		return 0, false
	}
	if node.Int64 != nil {
		return float64(*node.Int64), true
	}
	if node.Float64 != nil {
		return *node.Float64, true
	}
	return 0, false
}

// assignValue stores v into dst, dereferencing entity pointers and
// applying numeric conversions where the destination requires it.
func assignValue(dst reflect.Value, v any) bool {
	if v == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return true
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(dst.Type()) {
		dst.Set(rv)
		return true
	}
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		if rv.Type().Elem().AssignableTo(dst.Type()) {
			dst.Set(rv.Elem())
			return true
		}
		if dst.Kind() != reflect.Interface && rv.Type().Elem().ConvertibleTo(dst.Type()) {
			dst.Set(rv.Elem().Convert(dst.Type()))
			return true
		}
	}
	if dst.Kind() != reflect.Interface && rv.Type().ConvertibleTo(dst.Type()) {
		dst.Set(rv.Convert(dst.Type()))
		return true
	}
	// pointer destination: allocate and assign through
	if dst.Kind() == reflect.Ptr {
		p := reflect.New(dst.Type().Elem())
		if assignValue(p.Elem(), v) {
			dst.Set(p)
			return true
		}
	}
	return false
}
