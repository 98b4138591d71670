package cabsl

import (
	"fmt"
	"reflect"
)

// renderArgument produces the textual representation ExecutionScope.AddArgument
// appends to the activation graph, or reports ok == false when the value's
// type is not "textually representable" and should be silently skipped, per
// spec §4.1 and §7 (argument-rendering errors are diagnostic-only).
//
// fmt.Stringer is honored first, then error; otherwise integers, floats,
// strings, bools, slices, arrays, and structs are rendered with fmt, and
// pointers and interfaces are rendered through the value they point to.
// Functions, channels, unsafe pointers, maps, and complex numbers are
// skipped.
func renderArgument(value any) (string, bool) {
	if value == nil {
		return "<nil>", true
	}
	if s, ok := value.(fmt.Stringer); ok {
		return s.String(), true
	}
	if err, ok := value.(error); ok {
		return err.Error(), true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return "", false
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return "<nil>", true
		}
		return renderArgument(v.Elem().Interface())
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return fmt.Sprintf("%v", value), true
	case reflect.Slice, reflect.Array:
		return fmt.Sprintf("%v", value), true
	case reflect.Struct:
		return fmt.Sprintf("%+v", value), true
	default:
		return "", false
	}
}
