package convert

import (
	"reflect"
	"strings"
	"time"

	"github.com/plainform/go-plain/ir"
)

// The engines dispatch on the descriptor's concrete type through explicit
// tables before falling back to member-wise entity conversion. One entry
// per well-known type; everything else is either a primitive (handled by
// kind) or an entity.

var (
	timeType      = reflect.TypeOf(time.Time{})
	byteSliceType = reflect.TypeOf([]byte(nil))
)

// numericSliceKinds enumerates the fixed-width numeric buffer element
// kinds. []byte is excluded: it converts through the code-unit string
// form.
var numericSliceKinds = map[reflect.Kind]bool{
	reflect.Int8:    true,
	reflect.Int16:   true,
	reflect.Int32:   true,
	reflect.Int64:   true,
	reflect.Uint16:  true,
	reflect.Uint32:  true,
	reflect.Uint64:  true,
	reflect.Float32: true,
	reflect.Float64: true,
}

// isWellKnown reports whether t has a specialized conversion.
func isWellKnown(t reflect.Type) bool {
	if t == timeType || t == byteSliceType {
		return true
	}
	return t.Kind() == reflect.Slice && numericSliceKinds[t.Elem().Kind()]
}

// materializeWellKnown converts a well-known value. The caller has
// already checked isWellKnown.
func (m *materializer) materializeWellKnown(v reflect.Value, path string) *ir.Node {
	t := v.Type()
	switch {
	case t == timeType:
		return ir.FromString(v.Interface().(time.Time).Format(time.RFC3339Nano))
	case t == byteSliceType:
		return ir.FromString(bytesToCodeUnits(v.Bytes()))
	default:
		return m.materializeNumericSlice(v)
	}
}

func (m *materializer) materializeNumericSlice(v reflect.Value) *ir.Node {
	vals := make([]*ir.Node, v.Len())
	for i := 0; i < v.Len(); i++ {
		e := v.Index(i)
		switch e.Kind() {
		case reflect.Float32, reflect.Float64:
			vals[i] = ir.FromFloat(e.Float())
		case reflect.Uint16, reflect.Uint32, reflect.Uint64:
			vals[i] = ir.FromInt(int64(e.Uint()))
		default:
			vals[i] = ir.FromInt(e.Int())
		}
	}
	return ir.FromSlice(vals)
}

// reifyWellKnown converts a plain node into a well-known typed value.
// Returns nil (no value) after reporting on mismatch.
func (r *reifier) reifyWellKnown(node *ir.Node, t reflect.Type, path string) any {
	switch {
	case t == timeType:
		return r.reifyTime(node, path)
	case t == byteSliceType:
		if node.Type != ir.StringType {
			r.c.report(&TypeError{Path: path, Expected: "String", Actual: node.Type.String()})
			return nil
		}
		b, ok := codeUnitsToBytes(node.String)
		if !ok {
			r.c.report(&TypeError{Path: path, Expected: "code units in 0x00-0xFF", Actual: node.String})
			return nil
		}
		return b
	default:
		return r.reifyNumericSlice(node, t, path)
	}
}

// reifyTime accepts an RFC 3339 string or an epoch-millisecond number.
func (r *reifier) reifyTime(node *ir.Node, path string) any {
	switch node.Type {
	case ir.StringType:
		ts, err := time.Parse(time.RFC3339Nano, node.String)
		if err != nil {
			r.c.report(&TypeError{Path: path, Expected: "RFC 3339 date", Actual: node.String})
			return nil
		}
		return ts
	case ir.NumberType:
		if node.Int64 != nil {
			return time.UnixMilli(*node.Int64).UTC()
		}
		if node.Float64 != nil {
			return time.UnixMilli(int64(*node.Float64)).UTC()
		}
	}
	r.c.report(&TypeError{Path: path, Expected: "date string or epoch number", Actual: node.Type.String()})
	return nil
}

func (r *reifier) reifyNumericSlice(node *ir.Node, t reflect.Type, path string) any {
	if node.Type != ir.ArrayType {
		r.c.report(&TypeError{Path: path, Expected: "Array", Actual: node.Type.String()})
		return nil
	}
	res := reflect.MakeSlice(t, len(node.Values), len(node.Values))
	kind := t.Elem().Kind()
	for i, e := range node.Values {
		if e == nil || e.Type != ir.NumberType {
			actual := "Null"
			if e != nil {
				actual = e.Type.String()
			}
			r.c.report(&TypeError{Path: elemPath(path, i), Expected: "Number", Actual: actual})
			continue
		}
		var f float64
		switch {
		case e.Int64 != nil:
			f = float64(*e.Int64)
		case e.Float64 != nil:
			f = *e.Float64
		default:
			r.c.report(&TypeError{Path: elemPath(path, i), Expected: "Number", Actual: "unrepresentable number"})
			continue
		}
		slot := res.Index(i)
		switch kind {
		case reflect.Float32, reflect.Float64:
			slot.SetFloat(f)
		case reflect.Uint16, reflect.Uint32, reflect.Uint64:
			// integer-kind buffers truncate fractional input
			if f < 0 {
				r.c.report(&TypeError{Path: elemPath(path, i), Expected: "unsigned number", Actual: e.Type.String()})
				continue
			}
			slot.SetUint(uint64(f))
		default:
			slot.SetInt(int64(f))
		}
	}
	return res.Interface()
}

// bytesToCodeUnits renders a byte buffer as a string of code units, one
// per byte, so the JSON layer can carry it losslessly as text.
func bytesToCodeUnits(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		sb.WriteRune(rune(c))
	}
	return sb.String()
}

// codeUnitsToBytes inverts bytesToCodeUnits. A code unit above 0xFF
// means the string never came from a byte buffer; ok is false and no
// bytes are produced.
func codeUnitsToBytes(s string) ([]byte, bool) {
	res := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xff {
			return nil, false
		}
		res = append(res, byte(r))
	}
	return res, true
}
