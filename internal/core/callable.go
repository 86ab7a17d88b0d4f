package core

import (
	"errors"
	"fmt"
	"reflect"
)

// Exported variables.
var (
	ErrArgumentType = errors.New("argument type mismatch")
)

// Func is a member implementation. this is the object the member is installed on.
type Func func(this *Object, args ...any) any

// AsFunc normalizes v into a Func.
//
// Besides Func itself, plain func(...any) any, func() any and func(any) values are
// adapted directly, and any other Go func is called through reflection: a leading
// *Object parameter receives the bound object, missing or nil arguments become zero
// values, surplus arguments to non-variadic funcs are dropped, and results collapse
// to nil (no results), the value (one result) or a []any (several results).
//
// The second return is false when v is not callable (including nil funcs).
func AsFunc(v any) (Func, bool) {
	switch typed := v.(type) {
	case nil:
		return nil, false
	case Func:
		return typed, typed != nil
	case func(*Object, ...any) any:
		return typed, typed != nil
	case func(...any) any:
		if typed == nil {
			return nil, false
		}

		return func(_ *Object, args ...any) any { return typed(args...) }, true
	case func() any:
		if typed == nil {
			return nil, false
		}

		return func(*Object, ...any) any { return typed() }, true
	case func(any):
		if typed == nil {
			return nil, false
		}

		return func(_ *Object, args ...any) any {
			typed(firstArg(args))

			return nil
		}, true
	}

	return reflectFunc(v)
}

// unexported variables.
var (
	//nolint:gochecknoglobals // cached type for receiver detection
	objectPtrType = reflect.TypeOf((*Object)(nil))
)

// buildArgs converts the dynamic argument list into reflect values for fnType.
func buildArgs(fnType reflect.Type, this *Object, args []any) []reflect.Value {
	params := make([]reflect.Type, 0, fnType.NumIn())
	for i := range fnType.NumIn() {
		params = append(params, fnType.In(i))
	}

	in := make([]reflect.Value, 0, len(params)+len(args))

	if len(params) > 0 && params[0] == objectPtrType {
		in = append(in, reflect.ValueOf(this))
		params = params[1:]
	}

	fixed := params

	var variadicElem reflect.Type

	if fnType.IsVariadic() {
		fixed = params[:len(params)-1]
		variadicElem = params[len(params)-1].Elem()
	}

	for index, paramType := range fixed {
		var arg any
		if index < len(args) {
			arg = args[index]
		}

		in = append(in, convertArg(index, arg, paramType))
	}

	if variadicElem != nil {
		for index := len(fixed); index < len(args); index++ {
			in = append(in, convertArg(index, args[index], variadicElem))
		}
	}

	return in
}

func collapseResults(out []reflect.Value) any {
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0].Interface()
	default:
		results := make([]any, len(out))
		for i, val := range out {
			results[i] = val.Interface()
		}

		return results
	}
}

// convertArg adapts a single dynamic argument to paramType. Numeric values convert
// between numeric kinds only when no information is lost; anything else must be
// assignable.
func convertArg(index int, arg any, paramType reflect.Type) reflect.Value {
	if arg == nil {
		return reflect.Zero(paramType)
	}

	argVal := reflect.ValueOf(arg)
	if argVal.Type().AssignableTo(paramType) {
		return argVal
	}

	if isNumeric(argVal.Kind()) && isNumeric(paramType.Kind()) {
		converted, exact := convertNumeric(argVal, paramType)
		if exact {
			return converted
		}

		panic(fmt.Errorf("%w: argument %d: %v does not fit %s", ErrArgumentType, index, arg, paramType))
	}

	panic(fmt.Errorf("%w: argument %d: cannot use %s as %s", ErrArgumentType, index, argVal.Type(), paramType))
}

// convertNumeric converts argVal to paramType and reports whether the conversion
// round-trips with its sign intact. Float to float conversions only need to stay
// in range.
func convertNumeric(argVal reflect.Value, paramType reflect.Type) (reflect.Value, bool) {
	if isFloat(argVal.Kind()) && isFloat(paramType.Kind()) {
		return argVal.Convert(paramType), !reflect.Zero(paramType).OverflowFloat(argVal.Float())
	}

	converted := argVal.Convert(paramType)
	if isNegative(argVal) != isNegative(converted) {
		return converted, false
	}

	return converted, converted.Convert(argVal.Type()).Interface() == argVal.Interface()
}

func firstArg(args []any) any {
	if len(args) == 0 {
		return nil
	}

	return args[0]
}

func isFloat(kind reflect.Kind) bool {
	return kind == reflect.Float32 || kind == reflect.Float64
}

func isNegative(val reflect.Value) bool {
	switch val.Kind() { //nolint:exhaustive // only signed kinds can be negative
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return val.Int() < 0
	case reflect.Float32, reflect.Float64:
		return val.Float() < 0
	default:
		return false
	}
}

func isNumeric(kind reflect.Kind) bool {
	switch kind { //nolint:exhaustive // only numeric kinds are interesting
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// reflectFunc wraps an arbitrary Go func value, in the manner of reflect.MakeFunc
// loggers: arguments are rebuilt from the dynamic list on every call.
func reflectFunc(v any) (Func, bool) {
	fnVal := reflect.ValueOf(v)
	if fnVal.Kind() != reflect.Func || fnVal.IsNil() {
		return nil, false
	}

	fnType := fnVal.Type()

	return func(this *Object, args ...any) any {
		return collapseResults(fnVal.Call(buildArgs(fnType, this, args)))
	}, true
}
