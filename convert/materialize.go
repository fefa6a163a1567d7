package convert

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"

	"github.com/plainform/go-plain/debug"
	"github.com/plainform/go-plain/ir"
	"github.com/plainform/go-plain/schema"
)

// Materialize converts a typed value into a plain value tree guided by
// the descriptor. A nil result with nil error means the value
// materialized to "no value" (absent).
//
// Recoverable problems (type mismatches, hook lookups, shape mismatches)
// go through the error sink and blank out only the offending subtree.
// Configuration errors abort the call.
func (c *Converter) Materialize(v any, d *schema.Descriptor) (*ir.Node, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	m := &materializer{c: c}
	node, err := m.materialize(reflect.ValueOf(v), d, "", c.opts)
	if debug.Materialize() {
		debug.Logf("materialize %T (%s) -> %v\n", v, d.Kind, node)
	}
	return node, err
}

type materializer struct {
	c *Converter
}

func (m *materializer) materialize(v reflect.Value, d *schema.Descriptor, path string, opts *schema.Options) (*ir.Node, error) {
	v = indirect(v)
	if !v.IsValid() {
		return nullOrAbsent(opts), nil
	}

	switch d.Kind {
	case schema.ArrayKind:
		return m.materializeArray(v, d, path, opts)
	case schema.SetKind:
		return m.materializeSet(v, d, path, opts)
	case schema.MapKind:
		return m.materializeMap(v, d, path, opts)
	case schema.ConcreteKind:
		return m.materializeConcrete(v, d, path, opts)
	}
	return nil, &ConfigError{Path: path, Message: fmt.Sprintf("unknown descriptor kind %d", d.Kind)}
}

// materializeArray emits a plain sequence. A failing element keeps its
// slot as an explicit null so sibling indices never shift.
func (m *materializer) materializeArray(v reflect.Value, d *schema.Descriptor, path string, opts *schema.Options) (*ir.Node, error) {
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		m.c.report(&ShapeError{Path: path, Expected: "Array", Actual: v.Type().String()})
		return ir.FromSlice(nil), nil
	}
	elemDesc := d.Elem
	if d.Dims > 1 {
		elemDesc = schema.ArrayOf(d.Elem, d.Dims-1)
	}
	vals := make([]*ir.Node, v.Len())
	for i := 0; i < v.Len(); i++ {
		en, err := m.materialize(v.Index(i), elemDesc, elemPath(path, i), opts)
		if err != nil {
			return nil, err
		}
		if en == nil {
			en = ir.Null()
		}
		vals[i] = en
	}
	return ir.FromSlice(vals), nil
}

// materializeSet emits set members as a plain sequence in deterministic
// order. A member whose source is itself absent (nil pointer) keeps a
// null slot; members that fail conversion are dropped, a set has no
// positions to preserve.
func (m *materializer) materializeSet(v reflect.Value, d *schema.Descriptor, path string, opts *schema.Options) (*ir.Node, error) {
	if v.Kind() != reflect.Map {
		m.c.report(&ShapeError{Path: path, Expected: "Set", Actual: v.Type().String()})
		return ir.FromSlice(nil), nil
	}
	var vals []*ir.Node
	iter := v.MapRange()
	for iter.Next() {
		key := iter.Key()
		if !indirect(key).IsValid() {
			vals = append(vals, ir.Null())
			continue
		}
		en, err := m.materialize(key, d.Elem, path+"{}", opts)
		if err != nil {
			return nil, err
		}
		if en == nil {
			continue
		}
		vals = append(vals, en)
	}
	slices.SortFunc(vals, ir.Compare)
	return ir.FromSlice(vals), nil
}

func (m *materializer) materializeMap(v reflect.Value, d *schema.Descriptor, path string, opts *schema.Options) (*ir.Node, error) {
	if v.Kind() != reflect.Map {
		m.c.report(&ShapeError{Path: path, Expected: "Map", Actual: v.Type().String()})
		return emptyMapNode(d.Shape), nil
	}
	type entry struct {
		key *ir.Node
		val *ir.Node
	}
	var entries []entry
	iter := v.MapRange()
	for iter.Next() {
		kn, err := m.materialize(iter.Key(), d.Key, path+".<key>", opts)
		if err != nil {
			return nil, err
		}
		vn, err := m.materialize(iter.Value(), d.Value, path+".<value>", opts)
		if err != nil {
			return nil, err
		}
		// a pair with an undefined side carries no information
		if kn == nil || kn.Type == ir.NullType || vn == nil {
			continue
		}
		entries = append(entries, entry{key: kn, val: vn})
	}
	slices.SortFunc(entries, func(a, b entry) int { return ir.Compare(a.key, b.key) })

	switch d.Shape {
	case schema.AsObject:
		kvs := make([]ir.KeyVal, 0, len(entries))
		for _, e := range entries {
			kvs = append(kvs, ir.KeyVal{Key: ir.FromString(stringifyKey(e.key)), Val: e.val})
		}
		return ir.FromKeyVals(kvs), nil
	default:
		vals := make([]*ir.Node, 0, len(entries))
		for _, e := range entries {
			vals = append(vals, ir.FromKeyVals([]ir.KeyVal{
				{Key: ir.FromString("key"), Val: e.key},
				{Key: ir.FromString("value"), Val: e.val},
			}))
		}
		return ir.FromSlice(vals), nil
	}
}

func (m *materializer) materializeConcrete(v reflect.Value, d *schema.Descriptor, path string, opts *schema.Options) (*ir.Node, error) {
	t := v.Type()
	if isWellKnown(d.Type) {
		if t != d.Type && !(t.ConvertibleTo(d.Type) && t.Kind() == d.Type.Kind()) {
			m.c.report(&TypeError{Path: path, Expected: d.Type.String(), Actual: t.String()})
			return nil, nil
		}
		return m.materializeWellKnown(v.Convert(d.Type), path), nil
	}

	switch d.Type.Kind() {
	case reflect.String:
		if v.Kind() != reflect.String {
			m.c.report(&TypeError{Path: path, Expected: "string", Actual: t.String()})
			return nil, nil
		}
		return ir.FromString(v.String()), nil
	case reflect.Bool:
		if v.Kind() != reflect.Bool {
			m.c.report(&TypeError{Path: path, Expected: "bool", Actual: t.String()})
			return nil, nil
		}
		return ir.FromBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !isIntKind(v.Kind()) {
			m.c.report(&TypeError{Path: path, Expected: "integer", Actual: t.String()})
			return nil, nil
		}
		return ir.FromInt(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if !isUintKind(v.Kind()) {
			m.c.report(&TypeError{Path: path, Expected: "unsigned integer", Actual: t.String()})
			return nil, nil
		}
		return ir.FromInt(int64(v.Uint())), nil
	case reflect.Float32, reflect.Float64:
		switch v.Kind() {
		case reflect.Float32, reflect.Float64:
			return ir.FromFloat(v.Float()), nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return ir.FromFloat(float64(v.Int())), nil
		}
		m.c.report(&TypeError{Path: path, Expected: "number", Actual: t.String()})
		return nil, nil
	}

	// user-defined entity
	if !m.c.typeMatches(t, d.Type) {
		m.c.report(&TypeError{Path: path, Expected: d.Type.String(), Actual: t.String()})
		return nil, nil
	}
	if t.Kind() != reflect.Struct {
		m.c.report(&TypeError{Path: path, Expected: "entity (struct)", Actual: t.String()})
		return nil, nil
	}
	meta, ok := m.c.lookupMeta(t)
	if !ok {
		return m.materializeUntyped(v, path)
	}
	return m.materializeEntity(v, meta, d.Type, path, opts)
}

func (m *materializer) materializeEntity(v reflect.Value, meta *schema.TypeMeta, expected reflect.Type, path string, opts *schema.Options) (*ir.Node, error) {
	// copy to an addressable instance so pointer-receiver hooks can run
	// and mutate what we convert
	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	v = ptr.Elem()

	if meta.BeforeMaterialize != "" {
		if err := callHook(ptr, meta.BeforeMaterialize); err != nil {
			m.c.report(&HookError{Path: path, Hook: meta.BeforeMaterialize, Message: err.Error(), Err: err})
		}
	}

	effOpts := opts.Merge(meta.Opts)
	var kvs []ir.KeyVal
	for i := range meta.Members {
		mem := &meta.Members[i]
		fv := v.FieldByName(mem.Name)
		if !fv.IsValid() {
			return nil, &ConfigError{Path: path, Message: fmt.Sprintf("%s has no field %q", v.Type(), mem.Name)}
		}
		memPath := childPath(path, mem.Wire)
		mopts := effOpts.Merge(mem.Opts)

		var node *ir.Node
		switch {
		case mem.Codec != nil && mem.Codec.Materialize != nil:
			n, err := mem.Codec.Materialize(fv.Interface())
			if err != nil {
				m.c.report(&TypeError{Path: memPath, Message: fmt.Sprintf("member codec: %v", err)})
				continue
			}
			node = n
		case mem.Desc != nil:
			n, err := m.materialize(fv, mem.Desc, memPath, mopts)
			if err != nil {
				return nil, err
			}
			node = n
		default:
			return nil, &ConfigError{Path: memPath, Message: "member has neither a descriptor nor a codec"}
		}
		if node == nil {
			continue
		}
		kvs = append(kvs, ir.KeyVal{Key: ir.FromString(mem.Wire), Val: node})
	}
	out := ir.FromKeyVals(kvs)

	emitter := meta.Emitter
	if emitter == nil {
		emitter = m.c.emitter
	}
	if emitter == nil {
		emitter = m.c.defaultEmitter()
	}
	emitter(out, v.Interface(), expected, meta)
	return out, nil
}

// materializeUntyped is the fallback for entities without a metadata
// record: a plain as-is copy of the value, no type hint emitted.
func (m *materializer) materializeUntyped(v reflect.Value, path string) (*ir.Node, error) {
	node, err := ir.FromAny(toUntyped(v))
	if err != nil {
		m.c.report(&TypeError{Path: path, Message: err.Error()})
		return nil, nil
	}
	return node, nil
}

func nullOrAbsent(opts *schema.Options) *ir.Node {
	if opts.GetPreserveNull() {
		return ir.Null()
	}
	return nil
}

func emptyMapNode(shape schema.MapShape) *ir.Node {
	if shape == schema.AsObject {
		return ir.FromKeyVals(nil)
	}
	return ir.FromSlice(nil)
}

// stringifyKey coerces a materialized key node into the plain-object key
// domain.
func stringifyKey(key *ir.Node) string {
	switch key.Type {
	case ir.StringType:
		return key.String
	case ir.BoolType:
		return strconv.FormatBool(key.Bool)
	case ir.NumberType:
		switch {
		case key.Int64 != nil:
			return strconv.FormatInt(*key.Int64, 10)
		case key.Float64 != nil:
			return strconv.FormatFloat(*key.Float64, 'g', -1, 64)
		default:
			return key.Number
		}
	default:
		d, err := ir.ToJSON(key)
		if err != nil {
			return key.Type.String()
		}
		return string(d)
	}
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUintKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func elemPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func childPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
