package schema

import (
	"reflect"
	"testing"
	"time"
)

func TestDescriptorForType(t *testing.T) {
	type Person struct {
		Name string
	}
	tests := []struct {
		name  string
		typ   reflect.Type
		check func(t *testing.T, d *Descriptor)
	}{
		{
			"struct", reflect.TypeOf(Person{}),
			func(t *testing.T, d *Descriptor) {
				if d.Kind != ConcreteKind || d.Type != reflect.TypeOf(Person{}) {
					t.Errorf("got %s", d)
				}
			},
		},
		{
			"pointer normalized", reflect.TypeOf(&Person{}),
			func(t *testing.T, d *Descriptor) {
				if d.Kind != ConcreteKind || d.Type != reflect.TypeOf(Person{}) {
					t.Errorf("got %s", d)
				}
			},
		},
		{
			"nested slices", reflect.TypeOf([][]string{}),
			func(t *testing.T, d *Descriptor) {
				if d.Kind != ArrayKind || d.Dims != 2 || d.Elem.Type.Kind() != reflect.String {
					t.Errorf("got %s", d)
				}
			},
		},
		{
			"numeric slice stays concrete", reflect.TypeOf([]float64{}),
			func(t *testing.T, d *Descriptor) {
				if d.Kind != ConcreteKind || d.Type != reflect.TypeOf([]float64{}) {
					t.Errorf("got %s", d)
				}
			},
		},
		{
			"slice of numeric slices", reflect.TypeOf([][]int32{}),
			func(t *testing.T, d *Descriptor) {
				if d.Kind != ArrayKind || d.Dims != 1 || d.Elem.Type != reflect.TypeOf([]int32{}) {
					t.Errorf("got %s", d)
				}
			},
		},
		{
			"set", reflect.TypeOf(map[string]struct{}{}),
			func(t *testing.T, d *Descriptor) {
				if d.Kind != SetKind || d.Elem.Type.Kind() != reflect.String {
					t.Errorf("got %s", d)
				}
			},
		},
		{
			"map", reflect.TypeOf(map[int]Person{}),
			func(t *testing.T, d *Descriptor) {
				if d.Kind != MapKind || d.Shape != AsObject {
					t.Errorf("got %s", d)
				}
				if d.Key.Type.Kind() != reflect.Int || d.Value.Type != reflect.TypeOf(Person{}) {
					t.Errorf("got key %s value %s", d.Key, d.Value)
				}
			},
		},
		{
			"time stays concrete", reflect.TypeOf(time.Time{}),
			func(t *testing.T, d *Descriptor) {
				if d.Kind != ConcreteKind {
					t.Errorf("got %s", d)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, DescriptorForType(tt.typ))
		})
	}
}

func TestDescriptorValidate(t *testing.T) {
	if err := TypeOf[string]().Validate(); err != nil {
		t.Errorf("valid descriptor: Validate() = %v", err)
	}
	bad := []*Descriptor{
		nil,
		{Kind: ConcreteKind},
		{Kind: ArrayKind, Dims: 1},
		{Kind: ArrayKind, Dims: 0, Elem: TypeOf[int]()},
		{Kind: SetKind},
		{Kind: MapKind, Key: TypeOf[string]()},
		ArrayOf(&Descriptor{Kind: SetKind}, 1),
	}
	for i, d := range bad {
		if err := d.Validate(); err == nil {
			t.Errorf("bad[%d] (%s): Validate() = nil, want error", i, d)
		}
	}
}
