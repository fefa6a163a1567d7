package convert

import (
	"errors"
	"testing"
	"time"

	"github.com/plainform/go-plain/ir"
	"github.com/plainform/go-plain/schema"
)

func mustJSON(t *testing.T, node *ir.Node) string {
	t.Helper()
	d, err := ir.ToJSON(node)
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	return string(d)
}

func TestMaterializePrimitives(t *testing.T) {
	type Weekday int
	c, sink := newTestConverter(t)
	tests := []struct {
		name string
		v    any
		d    *schema.Descriptor
		want string
	}{
		{"string", "hi", schema.TypeOf[string](), `"hi"`},
		{"int", 42, schema.TypeOf[int](), `42`},
		{"named int", Weekday(3), schema.TypeOf[Weekday](), `3`},
		{"bool", true, schema.TypeOf[bool](), `true`},
		{"float", 2.5, schema.TypeOf[float64](), `2.5`},
		{"int at float slot", 7, schema.TypeOf[float64](), `7`},
		{"uint", uint16(9), schema.TypeOf[uint16](), `9`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := c.Materialize(tt.v, tt.d)
			if err != nil {
				t.Fatalf("Materialize() error = %v", err)
			}
			if got := mustJSON(t, node); got != tt.want {
				t.Errorf("Materialize() = %s, want %s", got, tt.want)
			}
		})
	}
	requireNoErrors(t, sink)
}

func TestMaterializeEntity(t *testing.T) {
	c, sink := newTestConverter(t)
	node, err := c.Materialize(Person{Name: "Ada", Age: 36}, schema.TypeOf[Person]())
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	want := `{"name":"Ada","age":36}`
	if got := mustJSON(t, node); got != want {
		t.Errorf("Materialize() = %s, want %s", got, want)
	}
	requireNoErrors(t, sink)
}

func TestMaterializeHintOnSubtype(t *testing.T) {
	c, sink := newTestConverter(t)
	t.Run("exact type, no hint", func(t *testing.T) {
		node, err := c.Materialize(Person{Name: "A"}, schema.TypeOf[Person]())
		if err != nil {
			t.Fatalf("Materialize() error = %v", err)
		}
		if hint := ir.Get(node, DefaultHintKey); hint != nil {
			t.Errorf("unexpected hint %v on exact type", hint)
		}
	})
	t.Run("subtype at base slot", func(t *testing.T) {
		node, err := c.Materialize(Employee{Name: "B", Salary: 10}, schema.TypeOf[Person]())
		if err != nil {
			t.Fatalf("Materialize() error = %v", err)
		}
		hint := ir.Get(node, DefaultHintKey)
		if hint == nil || hint.String != "EmployeeType" {
			t.Errorf("hint = %v, want EmployeeType", hint)
		}
		if sal := ir.Get(node, "salary"); sal == nil {
			t.Errorf("subtype members not materialized: %s", mustJSON(t, node))
		}
	})
	t.Run("pointer to subtype", func(t *testing.T) {
		node, err := c.Materialize(&Employee{Name: "C"}, schema.TypeOf[Person]())
		if err != nil {
			t.Fatalf("Materialize() error = %v", err)
		}
		if hint := ir.Get(node, DefaultHintKey); hint == nil || hint.String != "EmployeeType" {
			t.Errorf("hint = %v, want EmployeeType", hint)
		}
	})
	t.Run("unrelated type rejected", func(t *testing.T) {
		type stranger struct{ X int }
		node, err := c.Materialize(stranger{}, schema.TypeOf[Person]())
		if err != nil {
			t.Fatalf("Materialize() error = %v", err)
		}
		if node != nil {
			t.Errorf("unrelated type produced %s", mustJSON(t, node))
		}
		if sink.empty() {
			t.Errorf("type mismatch not reported")
		}
	})
}

func TestMaterializeArray(t *testing.T) {
	t.Run("multi-dimensional", func(t *testing.T) {
		c, sink := newTestConverter(t)
		v := [][]int{{}, {1, 2}, {}}
		node, err := c.Materialize(v, schema.ArrayOf(schema.TypeOf[int](), 2))
		if err != nil {
			t.Fatalf("Materialize() error = %v", err)
		}
		if got, want := mustJSON(t, node), `[[],[1,2],[]]`; got != want {
			t.Errorf("Materialize() = %s, want %s", got, want)
		}
		requireNoErrors(t, sink)
	})
	t.Run("failing element keeps its slot", func(t *testing.T) {
		c, sink := newTestConverter(t)
		v := []any{1, "oops", 3}
		node, err := c.Materialize(v, schema.ArrayOf(schema.TypeOf[int](), 1))
		if err != nil {
			t.Fatalf("Materialize() error = %v", err)
		}
		if got, want := mustJSON(t, node), `[1,null,3]`; got != want {
			t.Errorf("Materialize() = %s, want %s", got, want)
		}
		if sink.empty() {
			t.Errorf("element failure not reported")
		}
	})
	t.Run("non-array value", func(t *testing.T) {
		c, sink := newTestConverter(t)
		node, err := c.Materialize(42, schema.ArrayOf(schema.TypeOf[int](), 1))
		if err != nil {
			t.Fatalf("Materialize() error = %v", err)
		}
		if got, want := mustJSON(t, node), `[]`; got != want {
			t.Errorf("Materialize() = %s, want %s", got, want)
		}
		if sink.empty() {
			t.Errorf("shape mismatch not reported")
		}
	})
}

func TestMaterializeSet(t *testing.T) {
	t.Run("deterministic order", func(t *testing.T) {
		c, sink := newTestConverter(t)
		v := map[string]struct{}{"pear": {}, "apple": {}, "fig": {}}
		node, err := c.Materialize(v, schema.SetOf(schema.TypeOf[string]()))
		if err != nil {
			t.Fatalf("Materialize() error = %v", err)
		}
		if got, want := mustJSON(t, node), `["apple","fig","pear"]`; got != want {
			t.Errorf("Materialize() = %s, want %s", got, want)
		}
		requireNoErrors(t, sink)
	})
	t.Run("failing members dropped", func(t *testing.T) {
		c, sink := newTestConverter(t)
		v := map[any]struct{}{"ok": {}, 7: {}}
		node, err := c.Materialize(v, schema.SetOf(schema.TypeOf[string]()))
		if err != nil {
			t.Fatalf("Materialize() error = %v", err)
		}
		if got, want := mustJSON(t, node), `["ok"]`; got != want {
			t.Errorf("Materialize() = %s, want %s", got, want)
		}
		if sink.empty() {
			t.Errorf("dropped member not reported")
		}
	})
	t.Run("absent member keeps a slot", func(t *testing.T) {
		c, sink := newTestConverter(t)
		s := "a"
		v := map[*string]struct{}{nil: {}, &s: {}}
		node, err := c.Materialize(v, schema.SetOf(schema.TypeOf[string]()))
		if err != nil {
			t.Fatalf("Materialize() error = %v", err)
		}
		if got, want := mustJSON(t, node), `[null,"a"]`; got != want {
			t.Errorf("Materialize() = %s, want %s", got, want)
		}
		requireNoErrors(t, sink)
	})
}

func TestMaterializeMap(t *testing.T) {
	keyD := schema.TypeOf[int]()
	valD := schema.TypeOf[string]()
	v := map[int]string{2: "two", 1: "one"}

	t.Run("as object", func(t *testing.T) {
		c, sink := newTestConverter(t)
		node, err := c.Materialize(v, schema.MapOf(keyD, valD, schema.AsObject))
		if err != nil {
			t.Fatalf("Materialize() error = %v", err)
		}
		if got, want := mustJSON(t, node), `{"1":"one","2":"two"}`; got != want {
			t.Errorf("Materialize() = %s, want %s", got, want)
		}
		requireNoErrors(t, sink)
	})
	t.Run("as array", func(t *testing.T) {
		c, sink := newTestConverter(t)
		node, err := c.Materialize(v, schema.MapOf(keyD, valD, schema.AsArray))
		if err != nil {
			t.Fatalf("Materialize() error = %v", err)
		}
		want := `[{"key":1,"value":"one"},{"key":2,"value":"two"}]`
		if got := mustJSON(t, node); got != want {
			t.Errorf("Materialize() = %s, want %s", got, want)
		}
		requireNoErrors(t, sink)
	})
	t.Run("bad key drops the pair", func(t *testing.T) {
		c, sink := newTestConverter(t)
		mixed := map[any]string{"a": "ok", true: "nope"}
		node, err := c.Materialize(mixed, schema.MapOf(schema.TypeOf[string](), valD, schema.AsObject))
		if err != nil {
			t.Fatalf("Materialize() error = %v", err)
		}
		if got, want := mustJSON(t, node), `{"a":"ok"}`; got != want {
			t.Errorf("Materialize() = %s, want %s", got, want)
		}
		if sink.empty() {
			t.Errorf("dropped pair not reported")
		}
	})
}

func TestMaterializeWellKnown(t *testing.T) {
	c, sink := newTestConverter(t)
	t.Run("time", func(t *testing.T) {
		ts := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
		node, err := c.Materialize(ts, schema.TypeOf[time.Time]())
		if err != nil {
			t.Fatalf("Materialize() error = %v", err)
		}
		if node.Type != ir.StringType || node.String != "2024-05-01T12:30:00Z" {
			t.Errorf("time = %v %q", node.Type, node.String)
		}
	})
	t.Run("bytes", func(t *testing.T) {
		node, err := c.Materialize([]byte{0x68, 0x69, 0xff}, schema.TypeOf[[]byte]())
		if err != nil {
			t.Fatalf("Materialize() error = %v", err)
		}
		if node.Type != ir.StringType || node.String != "hiÿ" {
			t.Errorf("bytes = %v %q", node.Type, node.String)
		}
	})
	t.Run("numeric slice", func(t *testing.T) {
		node, err := c.Materialize([]float32{1, 2.5}, schema.TypeOf[[]float32]())
		if err != nil {
			t.Fatalf("Materialize() error = %v", err)
		}
		if got, want := mustJSON(t, node), `[1,2.5]`; got != want {
			t.Errorf("numeric slice = %s, want %s", got, want)
		}
	})
	requireNoErrors(t, sink)
}

func TestMaterializePreserveNull(t *testing.T) {
	type Profile struct {
		Nick *string
	}
	reg := schema.NewRegistry()
	schema.MustRegister[Profile](reg, "ProfileType",
		schema.WithMember("Nick", "nick", schema.TypeOf[string]()))

	t.Run("default omits nil", func(t *testing.T) {
		c := New(WithRegistry(reg))
		node, err := c.Materialize(Profile{}, schema.TypeOf[Profile]())
		if err != nil {
			t.Fatalf("Materialize() error = %v", err)
		}
		if got, want := mustJSON(t, node), `{}`; got != want {
			t.Errorf("Materialize() = %s, want %s", got, want)
		}
	})
	t.Run("preserve null emits null", func(t *testing.T) {
		c := New(WithRegistry(reg),
			WithOptions(&schema.Options{PreserveNull: schema.Bool(true)}))
		node, err := c.Materialize(Profile{}, schema.TypeOf[Profile]())
		if err != nil {
			t.Fatalf("Materialize() error = %v", err)
		}
		if got, want := mustJSON(t, node), `{"nick":null}`; got != want {
			t.Errorf("Materialize() = %s, want %s", got, want)
		}
	})
}

func TestMaterializeUntypedEntity(t *testing.T) {
	type loose struct {
		Word  string
		Count int
	}
	c, sink := newTestConverter(t)
	node, err := c.Materialize(loose{Word: "w", Count: 2}, schema.TypeOf[loose]())
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	// no metadata record: fields travel under their Go names, no hint
	if got := ir.Get(node, "Word"); got == nil || got.String != "w" {
		t.Errorf("Word = %v", got)
	}
	if hint := ir.Get(node, DefaultHintKey); hint != nil {
		t.Errorf("untyped entity emitted a hint: %v", hint)
	}
	requireNoErrors(t, sink)
}

type stamped struct {
	Label string
	Seen  bool
}

func (s *stamped) Stamp() {
	s.Seen = true
}

func (s *stamped) Explode() error {
	return errors.New("boom")
}

func TestMaterializeBeforeHook(t *testing.T) {
	t.Run("hook runs on a copy", func(t *testing.T) {
		reg := schema.NewRegistry()
		schema.MustRegister[stamped](reg, "StampedType",
			schema.WithMember("Label", "label", schema.TypeOf[string]()),
			schema.WithMember("Seen", "seen", schema.TypeOf[bool]()),
			schema.WithHooks("Stamp", ""))
		sink := &errSink{}
		c := New(WithRegistry(reg), WithErrorHandler(sink.add))

		src := stamped{Label: "x"}
		node, err := c.Materialize(src, schema.TypeOf[stamped]())
		if err != nil {
			t.Fatalf("Materialize() error = %v", err)
		}
		if seen := ir.Get(node, "seen"); seen == nil || !seen.Bool {
			t.Errorf("hook mutation not visible in output: %s", mustJSON(t, node))
		}
		if src.Seen {
			t.Errorf("hook mutated the caller's value")
		}
		requireNoErrors(t, sink)
	})
	t.Run("failing hook reported, members still converted", func(t *testing.T) {
		reg := schema.NewRegistry()
		schema.MustRegister[stamped](reg, "StampedType",
			schema.WithMember("Label", "label", schema.TypeOf[string]()),
			schema.WithHooks("Explode", ""))
		sink := &errSink{}
		c := New(WithRegistry(reg), WithErrorHandler(sink.add))

		node, err := c.Materialize(stamped{Label: "x"}, schema.TypeOf[stamped]())
		if err != nil {
			t.Fatalf("Materialize() error = %v", err)
		}
		if label := ir.Get(node, "label"); label == nil || label.String != "x" {
			t.Errorf("members not converted after hook failure: %s", mustJSON(t, node))
		}
		if sink.empty() {
			t.Errorf("hook failure not reported")
		}
	})
}

func TestMaterializeMemberCodec(t *testing.T) {
	type wrapped struct {
		Secret string
	}
	reg := schema.NewRegistry()
	schema.MustRegister[wrapped](reg, "WrappedType",
		schema.WithCodecMember("Secret", "secret", &schema.MemberCodec{
			Materialize: func(v any) (*ir.Node, error) {
				return ir.FromString("<redacted>"), nil
			},
			Reify: func(n *ir.Node) (any, error) {
				return "", nil
			},
		}))
	sink := &errSink{}
	c := New(WithRegistry(reg), WithErrorHandler(sink.add))

	node, err := c.Materialize(wrapped{Secret: "hunter2"}, schema.TypeOf[wrapped]())
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if got := ir.Get(node, "secret"); got == nil || got.String != "<redacted>" {
		t.Errorf("codec member = %v", got)
	}
	requireNoErrors(t, sink)
}
