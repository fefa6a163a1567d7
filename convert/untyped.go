package convert

import (
	"reflect"
	"time"

	"github.com/plainform/go-plain/ir"
)

// toUntyped converts a value without metadata guidance into the untyped
// JSON universe: exported struct fields as-is, maps and slices walked
// structurally, no type hints.
func toUntyped(v reflect.Value) any {
	v = indirect(v)
	if !v.IsValid() {
		return nil
	}
	t := v.Type()
	switch {
	case t == timeType:
		return v.Interface().(time.Time).Format(time.RFC3339Nano)
	case t == byteSliceType:
		return bytesToCodeUnits(v.Bytes())
	}
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.Slice, reflect.Array:
		res := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			res[i] = toUntyped(v.Index(i))
		}
		return res
	case reflect.Map:
		res := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			res[stringifyUntypedKey(iter.Key())] = toUntyped(iter.Value())
		}
		return res
	case reflect.Struct:
		res := make(map[string]any, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			res[field.Name] = toUntyped(v.Field(i))
		}
		return res
	default:
		return nil
	}
}

func stringifyUntypedKey(k reflect.Value) string {
	n, err := ir.FromAny(toUntyped(k))
	if err != nil {
		return k.Type().String()
	}
	return stringifyKey(n)
}

// fromUntyped converts a plain node into the untyped Go universe
// (map[string]any, []any, primitives). Used when reifying against an
// entity type that has no metadata record.
func fromUntyped(node *ir.Node) any {
	return ir.ToAny(node)
}
