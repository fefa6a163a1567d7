package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// ParseStructTag parses a `plain:"..."` tag value into key/value pairs.
// Entries are comma or space separated; bare words are flags with an
// empty value. Values may be single- or double-quoted to include
// separators: `plain:"name='wire name',required"`.
func ParseStructTag(tag string) (map[string]string, error) {
	result := make(map[string]string)
	if tag == "" {
		return result, nil
	}

	var parts []string
	var current strings.Builder
	inSingleQuote := false
	inDoubleQuote := false

	for i := 0; i < len(tag); i++ {
		char := tag[i]
		switch {
		case char == '\'' && !inDoubleQuote:
			inSingleQuote = !inSingleQuote
			current.WriteByte(char)
		case char == '"' && !inSingleQuote:
			inDoubleQuote = !inDoubleQuote
			current.WriteByte(char)
		case (char == ',' || char == ' ') && !inSingleQuote && !inDoubleQuote:
			part := strings.TrimSpace(current.String())
			if part != "" {
				parts = append(parts, part)
			}
			current.Reset()
		default:
			current.WriteByte(char)
		}
	}
	if inSingleQuote || inDoubleQuote {
		return nil, fmt.Errorf("%w: unterminated quote in tag %q", ErrConfig, tag)
	}
	if part := strings.TrimSpace(current.String()); part != "" {
		parts = append(parts, part)
	}

	for _, part := range parts {
		key, value, found := strings.Cut(part, "=")
		if !found {
			result[part] = ""
			continue
		}
		value = strings.Trim(value, `'"`)
		result[key] = value
	}
	return result, nil
}

// membersFromStruct derives declared members from t's exported fields in
// declaration order, honoring `plain` tags. Recognized tag entries:
//
//	name=<wire>     rename the member on the wire
//	required        report the member when missing on reify
//	omit or -       exclude the field
//	preservenull    member-level preserve-null override
//	shape=object|array  wire shape for map members
//
// It also returns type-level options when the struct declares them (none
// currently; reserved).
func membersFromStruct(t reflect.Type) ([]Member, *Options, error) {
	var members []Member
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Anonymous {
			continue
		}
		parsed, err := ParseStructTag(field.Tag.Get("plain"))
		if err != nil {
			return nil, nil, err
		}
		if _, omit := parsed["omit"]; omit {
			continue
		}
		if _, omit := parsed["-"]; omit {
			continue
		}
		m := Member{
			Name: field.Name,
			Wire: field.Name,
			Desc: DescriptorForType(field.Type),
		}
		if renamed, ok := parsed["name"]; ok && renamed != "" {
			m.Wire = renamed
		}
		if _, ok := parsed["required"]; ok {
			m.Required = true
		}
		if _, ok := parsed["preservenull"]; ok {
			m.Opts = m.Opts.Merge(&Options{PreserveNull: Bool(true)})
		}
		if shape, ok := parsed["shape"]; ok {
			switch shape {
			case "object":
				if m.Desc.Kind == MapKind {
					m.Desc = MapOf(m.Desc.Key, m.Desc.Value, AsObject)
				}
			case "array":
				if m.Desc.Kind == MapKind {
					m.Desc = MapOf(m.Desc.Key, m.Desc.Value, AsArray)
				}
			default:
				return nil, nil, fmt.Errorf("%w: unrecognized map shape %q on %s.%s", ErrConfig, shape, t, field.Name)
			}
		}
		members = append(members, m)
	}
	return members, nil, nil
}

// MetaFromStructTags builds an unregistered metadata record for t wholly
// from struct tags, using the Go type name as the wire name.
func MetaFromStructTags(t reflect.Type) (*TypeMeta, error) {
	t = normalizeType(t)
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrConfig, t)
	}
	members, topts, err := membersFromStruct(t)
	if err != nil {
		return nil, err
	}
	return &TypeMeta{
		Type:     t,
		Name:     t.Name(),
		Members:  members,
		Subtypes: map[string]reflect.Type{},
		Opts:     topts,
	}, nil
}
