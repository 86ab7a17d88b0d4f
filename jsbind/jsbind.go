// Package jsbind mirrors impshape mocks into a goja JavaScript runtime, so that
// scripts can call mocked members with ordinary JS syntax while every call is still
// recorded in the mock's tables.
//
// Methods become JS functions, accessors become JS accessor properties, and data
// members become accessors over the Go-side value. Go nil is JS undefined; JS
// arguments are exported to Go values (numbers arrive as int64 or float64) before
// they reach the mock.
package jsbind

import (
	"fmt"

	"github.com/dop251/goja"

	"github.com/toejough/impshape"
)

// Binding connects one mock to one runtime.
type Binding struct {
	runtime     *goja.Runtime
	mock        *impshape.Mock
	instance    *goja.Object
	constructor *goja.Object
}

// Bind creates JS objects mirroring mock's instance and constructor objects.
// Members set up after Bind become visible after Sync.
func Bind(runtime *goja.Runtime, mock *impshape.Mock) (*Binding, error) {
	binding := &Binding{
		runtime:     runtime,
		mock:        mock,
		instance:    runtime.NewObject(),
		constructor: runtime.NewObject(),
	}

	err := binding.Sync()
	if err != nil {
		return nil, err
	}

	return binding, nil
}

// Constructor returns the JS object mirroring the mock's constructor object.
func (b *Binding) Constructor() *goja.Object {
	return b.constructor
}

// Expose sets the mirrored objects as globals. An empty name skips that object.
func (b *Binding) Expose(instanceName, constructorName string) error {
	if instanceName != "" {
		err := b.runtime.Set(instanceName, b.instance)
		if err != nil {
			return fmt.Errorf("exposing %s: %w", instanceName, err)
		}
	}

	if constructorName != "" {
		err := b.runtime.Set(constructorName, b.constructor)
		if err != nil {
			return fmt.Errorf("exposing %s: %w", constructorName, err)
		}
	}

	return nil
}

// Func adapts a JS function into an impshape implementation, getter, or setter.
// The JS function runs with this bound to the mirrored object. Thrown JS exceptions
// propagate as panics. Non-function values return nil, which impshape treats as
// "not callable".
func (b *Binding) Func(value goja.Value) impshape.Func {
	callable, ok := goja.AssertFunction(value)
	if !ok {
		return nil
	}

	return func(this *impshape.Object, args ...any) any {
		jsArgs := make([]goja.Value, len(args))
		for i, arg := range args {
			jsArgs[i] = b.toValue(this, arg)
		}

		result, err := callable(b.thisValue(this), jsArgs...)
		if err != nil {
			panic(err)
		}

		return export(result)
	}
}

// Instance returns the JS object mirroring the mock's instance object.
func (b *Binding) Instance() *goja.Object {
	return b.instance
}

// Sync re-mirrors the mock's members: new members are added, replaced members are
// redefined, and members deleted on the Go side are removed.
func (b *Binding) Sync() error {
	err := b.mirror(b.instance, b.mock.Instance())
	if err != nil {
		return fmt.Errorf("mirroring instance: %w", err)
	}

	if b.mock.Constructor() == nil {
		return nil
	}

	err = b.mirror(b.constructor, b.mock.Constructor())
	if err != nil {
		return fmt.Errorf("mirroring constructor: %w", err)
	}

	return nil
}

// accessor builds the JS getter/setter pair delegating to source.Read and source.Write.
func (b *Binding) accessor(source *impshape.Object, name string) (goja.Value, goja.Value) {
	getter := func(goja.FunctionCall) goja.Value {
		defer b.rethrow()

		value, err := source.Read(name)
		if err != nil {
			panic(err)
		}

		return b.toValue(source, value)
	}

	setter := func(call goja.FunctionCall) goja.Value {
		defer b.rethrow()

		err := source.Write(name, export(call.Argument(0)))
		if err != nil {
			panic(err)
		}

		return goja.Undefined()
	}

	return b.runtime.ToValue(getter), b.runtime.ToValue(setter)
}

// method builds the JS function dispatching to source by name at call time.
func (b *Binding) method(source *impshape.Object, name string) goja.Value {
	return b.runtime.ToValue(func(call goja.FunctionCall) goja.Value {
		defer b.rethrow()

		result, err := source.Invoke(name, exportAll(call.Arguments)...)
		if err != nil {
			panic(err)
		}

		return b.toValue(source, result)
	})
}

func (b *Binding) mirror(target *goja.Object, source *impshape.Object) error {
	for _, key := range target.Keys() {
		if source.Has(key) {
			continue
		}

		err := target.Delete(key)
		if err != nil {
			return fmt.Errorf("removing %q: %w", key, err)
		}
	}

	for _, name := range source.Names() {
		var err error

		if source.Kind(name) == impshape.MemberMethod {
			err = target.DefineDataProperty(name, b.method(source, name), goja.FLAG_TRUE, goja.FLAG_TRUE, goja.FLAG_TRUE)
		} else {
			getter, setter := b.accessor(source, name)
			err = target.DefineAccessorProperty(name, getter, setter, goja.FLAG_TRUE, goja.FLAG_TRUE)
		}

		if err != nil {
			return fmt.Errorf("defining %q: %w", name, err)
		}
	}

	return nil
}

// rethrow converts panics raised on the Go side into JS exceptions.
// It must be deferred directly.
func (b *Binding) rethrow() {
	recovered := recover()
	if recovered == nil {
		return
	}

	switch typed := recovered.(type) {
	case *goja.Exception:
		panic(typed.Value())
	case error:
		panic(b.runtime.NewTypeError(typed.Error()))
	default:
		panic(recovered)
	}
}

func (b *Binding) thisValue(obj *impshape.Object) goja.Value {
	switch {
	case obj == nil:
		return goja.Undefined()
	case obj == b.mock.Instance():
		return b.instance
	case obj == b.mock.Constructor():
		return b.constructor
	default:
		return goja.Undefined()
	}
}

// toValue converts a Go value for JS. nil becomes undefined, and Funcs become JS
// functions bound to owner.
func (b *Binding) toValue(owner *impshape.Object, value any) goja.Value {
	switch typed := value.(type) {
	case nil:
		return goja.Undefined()
	case goja.Value:
		return typed
	case impshape.Func:
		if typed == nil {
			return goja.Undefined()
		}

		return b.runtime.ToValue(func(call goja.FunctionCall) goja.Value {
			defer b.rethrow()

			return b.toValue(owner, typed(owner, exportAll(call.Arguments)...))
		})
	default:
		return b.runtime.ToValue(value)
	}
}

func export(value goja.Value) any {
	if value == nil || goja.IsUndefined(value) || goja.IsNull(value) {
		return nil
	}

	return value.Export()
}

func exportAll(values []goja.Value) []any {
	exported := make([]any, len(values))
	for i, value := range values {
		exported[i] = export(value)
	}

	return exported
}
