package convert

import (
	"fmt"
	"reflect"
)

// callHook invokes a lifecycle hook method by name on ptr (a pointer
// value, so both value and pointer receivers are visible). The method
// must take no arguments and return nothing or a single error.
func callHook(ptr reflect.Value, name string) error {
	method := ptr.MethodByName(name)
	if !method.IsValid() {
		return fmt.Errorf("no method %q on %s", name, ptr.Type().Elem())
	}
	mt := method.Type()
	if mt.NumIn() != 0 || mt.NumOut() > 1 {
		return fmt.Errorf("method %q must have signature func() or func() error", name)
	}
	if mt.NumOut() == 1 && mt.Out(0) != reflect.TypeOf((*error)(nil)).Elem() {
		return fmt.Errorf("method %q must have signature func() or func() error", name)
	}
	results := method.Call(nil)
	if len(results) == 1 {
		if err, _ := results[0].Interface().(error); err != nil {
			return err
		}
	}
	return nil
}
