package schema

import (
	"reflect"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/plainform/go-plain/ir"
)

// ExprResolver compiles an expr-lang expression into a HintResolver. The
// expression is evaluated against an environment holding the raw source
// object's fields plus:
//
//	src    the whole source object as a map
//	known  the list of known type names
//
// and must yield the wire name of the type to instantiate (or "" for no
// opinion). Example:
//
//	schema.ExprResolver(`salary != nil ? "EmployeeType" : "PersonType"`)
//
// A resolver built from an expression that does not compile resolves
// nothing.
func ExprResolver(expression string) HintResolver {
	program, compileErr := expr.Compile(expression,
		expr.Env(map[string]any{}), expr.AllowUndefinedVariables())

	return func(src *ir.Node, known map[string]reflect.Type) (reflect.Type, bool) {
		if compileErr != nil {
			return nil, false
		}
		out, err := vm.Run(program, exprEnv(src, known))
		if err != nil {
			return nil, false
		}
		name, ok := out.(string)
		if !ok || name == "" {
			return nil, false
		}
		t, ok := known[name]
		return t, ok
	}
}

func exprEnv(src *ir.Node, known map[string]reflect.Type) map[string]any {
	env := map[string]any{}
	if src != nil && src.Type == ir.ObjectType {
		for i, f := range src.Fields {
			env[f.String] = ir.ToAny(src.Values[i])
		}
	}
	names := make([]string, 0, len(known))
	for name := range known {
		names = append(names, name)
	}
	env["src"] = ir.ToAny(src)
	env["known"] = names
	return env
}
