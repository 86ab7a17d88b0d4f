package core

// SetupFunction returns a transform installing an instrumented method called name on
// the mock's instance object. Every call is recorded in the function table. When
// implementation is callable (see AsFunc) it runs bound to the instance object and its
// result is returned unchanged; otherwise calls return nil. A nil implementation is
// allowed.
func SetupFunction(name string, implementation any) Transform {
	return setupFunctionOfKind(KindFunction, name, implementation)
}

// SetupStaticFunction is SetupFunction for the constructor object and the
// staticFunction table.
func SetupStaticFunction(name string, implementation any) Transform {
	return setupFunctionOfKind(KindStaticFunction, name, implementation)
}

func setupFunctionOfKind(kind Kind, name string, implementation any) Transform {
	return func(mock *Mock) *Mock {
		target := mock.target(kind)
		table := mock.Lookup(kind)
		impl, callable := AsFunc(implementation)

		target.DefineMethod(name, func(this *Object, args ...any) any {
			var result any
			if callable {
				result = impl(this, args...)
			}

			trackFunctionCall(table, name, args)

			return result
		})

		resetSlot(table, name)

		return mock
	}
}
