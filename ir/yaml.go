package ir

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// ToYAML encodes the value denoted by node as YAML text. Object field
// order is preserved via yaml.MapSlice.
func ToYAML(node *Node) ([]byte, error) {
	v := toYAMLValue(node)
	d, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConvert, err)
	}
	return d, nil
}

func toYAMLValue(node *Node) any {
	if node == nil {
		return nil
	}
	switch node.Type {
	case ObjectType:
		ms := make(yaml.MapSlice, 0, len(node.Fields))
		for i, f := range node.Fields {
			ms = append(ms, yaml.MapItem{Key: f.String, Value: toYAMLValue(node.Values[i])})
		}
		return ms
	case ArrayType:
		vals := make([]any, len(node.Values))
		for i, v := range node.Values {
			vals[i] = toYAMLValue(v)
		}
		return vals
	default:
		return ToAny(node)
	}
}

// FromYAML decodes YAML text into a node tree, preserving mapping key
// order.
func FromYAML(data []byte) (*Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return FromAny(v)
}
