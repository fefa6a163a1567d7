package ir

import (
	"testing"
)

func TestConstructors(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		n := FromString("hello")
		if n.Type != StringType || n.String != "hello" {
			t.Errorf("FromString = %v %q", n.Type, n.String)
		}
	})
	t.Run("int", func(t *testing.T) {
		n := FromInt(42)
		if n.Type != NumberType || n.Int64 == nil || *n.Int64 != 42 {
			t.Errorf("FromInt = %v %v", n.Type, n.Int64)
		}
	})
	t.Run("float", func(t *testing.T) {
		n := FromFloat(3.5)
		if n.Type != NumberType || n.Float64 == nil || *n.Float64 != 3.5 {
			t.Errorf("FromFloat = %v %v", n.Type, n.Float64)
		}
	})
	t.Run("bool", func(t *testing.T) {
		n := FromBool(true)
		if n.Type != BoolType || !n.Bool {
			t.Errorf("FromBool = %v %v", n.Type, n.Bool)
		}
	})
	t.Run("null", func(t *testing.T) {
		if n := Null(); n.Type != NullType {
			t.Errorf("Null().Type = %v", n.Type)
		}
	})
}

func TestFromMapSortsKeys(t *testing.T) {
	n := FromMap(map[string]*Node{
		"b": FromInt(2),
		"a": FromInt(1),
		"c": FromInt(3),
	})
	want := []string{"a", "b", "c"}
	if len(n.Fields) != len(want) {
		t.Fatalf("len(Fields) = %d, want %d", len(n.Fields), len(want))
	}
	for i, w := range want {
		if n.Fields[i].String != w {
			t.Errorf("Fields[%d] = %q, want %q", i, n.Fields[i].String, w)
		}
	}
}

func TestFromKeyValsPreservesOrder(t *testing.T) {
	n := FromKeyVals([]KeyVal{
		{Key: FromString("z"), Val: FromInt(1)},
		{Key: FromString("a"), Val: FromInt(2)},
	})
	if n.Fields[0].String != "z" || n.Fields[1].String != "a" {
		t.Errorf("field order = %q, %q, want z, a", n.Fields[0].String, n.Fields[1].String)
	}
}

func TestGetSet(t *testing.T) {
	n := FromKeyVals([]KeyVal{
		{Key: FromString("x"), Val: FromInt(1)},
	})
	if g := Get(n, "x"); g == nil || g.Int64 == nil || *g.Int64 != 1 {
		t.Errorf("Get(x) = %v", g)
	}
	if g := Get(n, "missing"); g != nil {
		t.Errorf("Get(missing) = %v, want nil", g)
	}
	Set(n, "x", FromInt(5))
	if g := Get(n, "x"); *g.Int64 != 5 {
		t.Errorf("Get(x) after Set = %d, want 5", *g.Int64)
	}
	Set(n, "y", FromString("new"))
	if g := Get(n, "y"); g == nil || g.String != "new" {
		t.Errorf("Get(y) after append Set = %v", g)
	}
	if len(n.Fields) != 2 {
		t.Errorf("len(Fields) = %d, want 2", len(n.Fields))
	}
}

func TestClone(t *testing.T) {
	orig := FromKeyVals([]KeyVal{
		{Key: FromString("list"), Val: FromSlice([]*Node{FromInt(1), FromInt(2)})},
		{Key: FromString("name"), Val: FromString("x")},
	})
	cp := orig.Clone()
	if !Equal(orig, cp) {
		t.Fatalf("clone not equal to original")
	}
	Set(cp, "name", FromString("mutated"))
	if Get(orig, "name").String != "x" {
		t.Errorf("mutating clone changed original")
	}
}

func TestParentLinks(t *testing.T) {
	inner := FromInt(7)
	arr := FromSlice([]*Node{inner})
	obj := FromKeyVals([]KeyVal{{Key: FromString("a"), Val: arr}})
	if inner.Parent != arr || inner.ParentIndex != 0 {
		t.Errorf("inner parent link wrong: %v %d", inner.Parent, inner.ParentIndex)
	}
	if arr.Parent != obj || arr.ParentField != "a" {
		t.Errorf("arr parent link wrong: %v %q", arr.Parent, arr.ParentField)
	}
	if r := inner.Root(); r != obj {
		t.Errorf("Root() = %v, want the object", r)
	}
}
