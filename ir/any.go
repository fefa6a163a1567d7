package ir

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/goccy/go-yaml"
)

// ToAny converts a node to an untyped Go value (map[string]any, []any,
// string, bool, int64, float64 or nil). Object field order is lost.
func ToAny(y *Node) any {
	if y == nil {
		return nil
	}
	switch y.Type {
	case NullType:
		return nil
	case BoolType:
		return y.Bool
	case StringType:
		return y.String
	case NumberType:
		if y.Int64 != nil {
			return *y.Int64
		}
		if y.Float64 != nil {
			return *y.Float64
		}
		return json.Number(y.Number)
	case ArrayType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = ToAny(v)
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(y.Fields))
		for i, f := range y.Fields {
			res[f.String] = ToAny(y.Values[i])
		}
		return res
	}
	return nil
}

// FromAny converts an untyped Go value into a node. It accepts the value
// shapes produced by encoding/json, goccy/go-yaml (including ordered
// MapSlice values) and ToAny.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint:
		return FromInt(int64(x)), nil
	case uint8:
		return FromInt(int64(x)), nil
	case uint16:
		return FromInt(int64(x)), nil
	case uint32:
		return FromInt(int64(x)), nil
	case uint64:
		return FromInt(int64(x)), nil
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		return FromFloat(x), nil
	case json.Number:
		return fromNumberString(string(x)), nil
	case []any:
		vals := make([]*Node, len(x))
		for i, e := range x {
			n, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			vals[i] = n
		}
		return FromSlice(vals), nil
	case map[string]any:
		kvs := make([]KeyVal, 0, len(x))
		for _, key := range sortedKeys(x) {
			n, err := FromAny(x[key])
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, KeyVal{Key: FromString(key), Val: n})
		}
		return FromKeyVals(kvs), nil
	case yaml.MapSlice:
		kvs := make([]KeyVal, 0, len(x))
		for _, item := range x {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprintf("%v", item.Key)
			}
			n, err := FromAny(item.Value)
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, KeyVal{Key: FromString(key), Val: n})
		}
		return FromKeyVals(kvs), nil
	case map[any]any:
		byKey := make(map[string]any, len(x))
		for k, e := range x {
			byKey[fmt.Sprintf("%v", k)] = e
		}
		return FromAny(byKey)
	default:
		return nil, fmt.Errorf("%w: unsupported value type %T", ErrConvert, v)
	}
}

func fromNumberString(s string) *Node {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return FromInt(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return FromFloat(f)
	}
	return &Node{Type: NumberType, Number: s}
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
