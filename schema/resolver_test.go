package schema

import (
	"reflect"
	"testing"

	"github.com/plainform/go-plain/ir"
)

type resPerson struct{ Name string }
type resEmployee struct{ Salary float64 }

func TestExprResolver(t *testing.T) {
	known := map[string]reflect.Type{
		"PersonType":   reflect.TypeOf(resPerson{}),
		"EmployeeType": reflect.TypeOf(resEmployee{}),
	}
	resolve := ExprResolver(`salary != nil ? "EmployeeType" : "PersonType"`)

	t.Run("field present", func(t *testing.T) {
		src := ir.FromKeyVals([]ir.KeyVal{
			{Key: ir.FromString("salary"), Val: ir.FromFloat(100)},
		})
		typ, ok := resolve(src, known)
		if !ok || typ != known["EmployeeType"] {
			t.Errorf("resolve = %v, %v", typ, ok)
		}
	})
	t.Run("field absent", func(t *testing.T) {
		src := ir.FromKeyVals([]ir.KeyVal{
			{Key: ir.FromString("name"), Val: ir.FromString("x")},
		})
		typ, ok := resolve(src, known)
		if !ok || typ != known["PersonType"] {
			t.Errorf("resolve = %v, %v", typ, ok)
		}
	})
	t.Run("unknown name", func(t *testing.T) {
		resolve := ExprResolver(`"NoSuchType"`)
		if _, ok := resolve(ir.FromKeyVals(nil), known); ok {
			t.Errorf("resolved an unknown name")
		}
	})
	t.Run("bad expression", func(t *testing.T) {
		resolve := ExprResolver(`this is ( not valid`)
		if _, ok := resolve(ir.FromKeyVals(nil), known); ok {
			t.Errorf("broken expression resolved something")
		}
	})
	t.Run("non-string result", func(t *testing.T) {
		resolve := ExprResolver(`42`)
		if _, ok := resolve(ir.FromKeyVals(nil), known); ok {
			t.Errorf("numeric result resolved something")
		}
	})
}
