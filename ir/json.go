package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// EncodeOption configures ToJSON.
type EncodeOption func(*encodeConfig)

type encodeConfig struct {
	indent   string
	replacer Replacer
}

// Replacer is a text-level hook applied to every key/value pair before
// encoding. Returning nil drops the pair (or array slot). The root node is
// passed with key "".
type Replacer func(key string, node *Node) *Node

// WithIndent enables multi-line output indented by indent per level.
func WithIndent(indent string) EncodeOption {
	return func(cfg *encodeConfig) {
		cfg.indent = indent
	}
}

// WithReplacer installs a replacer hook.
func WithReplacer(r Replacer) EncodeOption {
	return func(cfg *encodeConfig) {
		cfg.replacer = r
	}
}

// ToJSON encodes the JSON value denoted by node. A nil node encodes as
// null. Object field order is preserved.
func ToJSON(node *Node, opts ...EncodeOption) ([]byte, error) {
	cfg := &encodeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.replacer != nil {
		node = applyReplacer("", node, cfg.replacer)
	}
	var buf bytes.Buffer
	if err := encodeJSON(&buf, node, cfg, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func applyReplacer(key string, node *Node, r Replacer) *Node {
	node = r(key, node)
	if node == nil {
		return nil
	}
	switch node.Type {
	case ArrayType:
		vals := make([]*Node, 0, len(node.Values))
		for _, v := range node.Values {
			if rv := applyReplacer("", v, r); rv != nil {
				vals = append(vals, rv)
			}
		}
		return FromSlice(vals)
	case ObjectType:
		kvs := make([]KeyVal, 0, len(node.Fields))
		for i, f := range node.Fields {
			if rv := applyReplacer(f.String, node.Values[i], r); rv != nil {
				kvs = append(kvs, KeyVal{Key: FromString(f.String), Val: rv})
			}
		}
		return FromKeyVals(kvs)
	}
	return node
}

func encodeJSON(buf *bytes.Buffer, node *Node, cfg *encodeConfig, depth int) error {
	if node == nil {
		buf.WriteString("null")
		return nil
	}
	switch node.Type {
	case NullType:
		buf.WriteString("null")
	case BoolType:
		buf.WriteString(strconv.FormatBool(node.Bool))
	case StringType:
		d, err := json.Marshal(node.String)
		if err != nil {
			return err
		}
		buf.Write(d)
	case NumberType:
		switch {
		case node.Int64 != nil:
			buf.WriteString(strconv.FormatInt(*node.Int64, 10))
		case node.Float64 != nil:
			d, err := json.Marshal(*node.Float64)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrConvert, err)
			}
			buf.Write(d)
		case node.Number != "":
			buf.WriteString(node.Number)
		default:
			return fmt.Errorf("%w: number node has no value", ErrConvert)
		}
	case ArrayType:
		buf.WriteByte('[')
		for i, v := range node.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeNewlineIndent(buf, cfg, depth+1)
			if err := encodeJSON(buf, v, cfg, depth+1); err != nil {
				return err
			}
		}
		if len(node.Values) > 0 {
			writeNewlineIndent(buf, cfg, depth)
		}
		buf.WriteByte(']')
	case ObjectType:
		buf.WriteByte('{')
		for i, f := range node.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeNewlineIndent(buf, cfg, depth+1)
			d, err := json.Marshal(f.String)
			if err != nil {
				return err
			}
			buf.Write(d)
			buf.WriteByte(':')
			if cfg.indent != "" {
				buf.WriteByte(' ')
			}
			if err := encodeJSON(buf, node.Values[i], cfg, depth+1); err != nil {
				return err
			}
		}
		if len(node.Fields) > 0 {
			writeNewlineIndent(buf, cfg, depth)
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("%w: unknown node type %s", ErrConvert, node.Type)
	}
	return nil
}

func writeNewlineIndent(buf *bytes.Buffer, cfg *encodeConfig, depth int) {
	if cfg.indent == "" {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(cfg.indent, depth))
}

// FromJSON decodes JSON text into a node tree, preserving object key order
// and int64 precision.
func FromJSON(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	node, err := decodeJSON(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	// Trailing garbage after the value is a parse error.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected trailing content", ErrParse)
	}
	return node, nil
}

func decodeJSON(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (*Node, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(t), nil
	case string:
		return FromString(t), nil
	case json.Number:
		return fromNumberString(string(t)), nil
	case json.Delim:
		switch t {
		case '[':
			var vals []*Node
			for dec.More() {
				v, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				vals = append(vals, v)
			}
			if _, err := dec.Token(); err != nil { // closing ]
				return nil, err
			}
			return FromSlice(vals), nil
		case '{':
			var kvs []KeyVal
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				v, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				kvs = append(kvs, KeyVal{Key: FromString(key), Val: v})
			}
			if _, err := dec.Token(); err != nil { // closing }
				return nil, err
			}
			return FromKeyVals(kvs), nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}
