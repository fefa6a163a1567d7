package schema

import (
	"fmt"
	"reflect"
)

// TypeOption configures a metadata record during registration.
type TypeOption func(*TypeMeta) error

// Register builds and adds a metadata record for T under the given wire
// name. T must be a struct type. Member declarations come from options;
// WithMembersFromStruct derives them from struct tags.
func Register[T any](reg *Registry, name string, opts ...TypeOption) (*TypeMeta, error) {
	if reg == nil {
		reg = DefaultRegistry()
	}
	t := normalizeType(reflect.TypeOf((*T)(nil)).Elem())
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: registered type %s is not a struct", ErrConfig, t)
	}
	meta := &TypeMeta{
		Type:     t,
		Name:     name,
		Subtypes: map[string]reflect.Type{},
	}
	for _, opt := range opts {
		if err := opt(meta); err != nil {
			return nil, err
		}
	}
	for i := range meta.Members {
		m := &meta.Members[i]
		if m.Desc == nil && m.Codec == nil {
			return nil, fmt.Errorf("%w: member %s.%s has neither a descriptor nor a codec", ErrConfig, t, m.Name)
		}
		if m.Desc != nil {
			if err := m.Desc.Validate(); err != nil {
				return nil, fmt.Errorf("member %s.%s: %w", t, m.Name, err)
			}
		}
	}
	if err := reg.Add(meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// MustRegister is Register that panics on configuration errors; intended
// for package init-time registration.
func MustRegister[T any](reg *Registry, name string, opts ...TypeOption) *TypeMeta {
	meta, err := Register[T](reg, name, opts...)
	if err != nil {
		panic(err)
	}
	return meta
}

// WithMember declares one member.
func WithMember(goName, wire string, d *Descriptor, mopts ...MemberOption) TypeOption {
	return func(meta *TypeMeta) error {
		m := Member{Name: goName, Wire: wire, Desc: d}
		if wire == "" {
			m.Wire = goName
		}
		for _, mo := range mopts {
			mo(&m)
		}
		if _, err := fieldOf(meta.Type, goName); err != nil {
			return err
		}
		meta.Members = append(meta.Members, m)
		return nil
	}
}

// WithCodecMember declares a member converted by a custom codec pair.
func WithCodecMember(goName, wire string, codec *MemberCodec, mopts ...MemberOption) TypeOption {
	return func(meta *TypeMeta) error {
		m := Member{Name: goName, Wire: wire, Codec: codec}
		if wire == "" {
			m.Wire = goName
		}
		for _, mo := range mopts {
			mo(&m)
		}
		if _, err := fieldOf(meta.Type, goName); err != nil {
			return err
		}
		meta.Members = append(meta.Members, m)
		return nil
	}
}

// WithMembersFromStruct derives member declarations from the struct's
// fields and `plain:"..."` tags, in declaration order.
func WithMembersFromStruct() TypeOption {
	return func(meta *TypeMeta) error {
		members, topts, err := membersFromStruct(meta.Type)
		if err != nil {
			return err
		}
		meta.Members = append(meta.Members, members...)
		meta.Opts = meta.Opts.Merge(topts)
		return nil
	}
}

// WithKnownSubtype declares S a known subtype of the registered type,
// discoverable under the given wire name during hint resolution.
func WithKnownSubtype[S any](name string) TypeOption {
	return func(meta *TypeMeta) error {
		st := normalizeType(reflect.TypeOf((*S)(nil)).Elem())
		if _, exists := meta.Subtypes[name]; exists {
			return fmt.Errorf("%w: subtype name %q declared twice on %s", ErrConfig, name, meta.Type)
		}
		meta.Subtypes[name] = st
		return nil
	}
}

// WithEmitter overrides the default type-hint emitter for this type.
func WithEmitter(e HintEmitter) TypeOption {
	return func(meta *TypeMeta) error {
		meta.Emitter = e
		return nil
	}
}

// WithResolver overrides the default type-hint resolver for this type.
func WithResolver(r HintResolver) TypeOption {
	return func(meta *TypeMeta) error {
		meta.Resolver = r
		return nil
	}
}

// WithHooks declares lifecycle hook method names. Either may be empty.
func WithHooks(beforeMaterialize, afterReify string) TypeOption {
	return func(meta *TypeMeta) error {
		meta.BeforeMaterialize = beforeMaterialize
		meta.AfterReify = afterReify
		return nil
	}
}

// WithInitializer installs a custom instantiation callback.
func WithInitializer(init Initializer) TypeOption {
	return func(meta *TypeMeta) error {
		meta.Initializer = init
		return nil
	}
}

// WithTypeOptions sets type-level option overrides.
func WithTypeOptions(o *Options) TypeOption {
	return func(meta *TypeMeta) error {
		meta.Opts = meta.Opts.Merge(o)
		return nil
	}
}

// MemberOption configures one member declaration.
type MemberOption func(*Member)

// Required marks the member required on reify.
func Required() MemberOption {
	return func(m *Member) { m.Required = true }
}

// WithMemberOptions sets member-level option overrides.
func WithMemberOptions(o *Options) MemberOption {
	return func(m *Member) { m.Opts = m.Opts.Merge(o) }
}

func fieldOf(t reflect.Type, goName string) (reflect.StructField, error) {
	f, ok := t.FieldByName(goName)
	if !ok {
		return reflect.StructField{}, fmt.Errorf("%w: %s has no field %q", ErrConfig, t, goName)
	}
	if !f.IsExported() {
		return reflect.StructField{}, fmt.Errorf("%w: field %s.%s is not exported", ErrConfig, t, goName)
	}
	return f, nil
}
