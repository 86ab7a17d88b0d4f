package core

// DefineProperty returns a transform installing an accessor called name on the mock's
// instance object. Reads are recorded as empty records in the getter table and return
// getter() when getter is callable, nil otherwise. Writes are recorded as single-value
// records in the setter table and are passed to setter when it is callable.
//
// Both table slots are reset on every application. Redefining a property without a
// setter discards any setter installed earlier.
func DefineProperty(name string, getter, setter any) Transform {
	return definePropertyOfKind(KindGetter, name, getter, setter)
}

// DefineStaticProperty is DefineProperty for the constructor object and the
// staticGetter/staticSetter tables.
func DefineStaticProperty(name string, getter, setter any) Transform {
	return definePropertyOfKind(KindStaticGetter, name, getter, setter)
}

// SetupProperty returns a transform installing a property called name whose reads
// always return value. Writes are recorded and otherwise ignored.
func SetupProperty(name string, value any) Transform {
	return definePropertyOfKind(KindGetter, name, constant(value), nil)
}

// SetupStaticProperty is SetupProperty for the constructor object.
func SetupStaticProperty(name string, value any) Transform {
	return definePropertyOfKind(KindStaticGetter, name, constant(value), nil)
}

// constant wraps value in a Func so that a func-valued property is returned,
// not called.
func constant(value any) Func {
	return func(*Object, ...any) any { return value }
}

func definePropertyOfKind(getterKind Kind, name string, getter, setter any) Transform {
	return func(mock *Mock) *Mock {
		target := mock.target(getterKind)
		getterTable := mock.Lookup(getterKind)
		setterTable := mock.Lookup(getterKind.Setter())
		get, getCallable := AsFunc(getter)
		set, setCallable := AsFunc(setter)

		readWrapper := func() any {
			trackGetterCall(getterTable, name)

			if !getCallable {
				return nil
			}

			return get(target)
		}

		writeWrapper := func(value any) {
			trackSetterCall(setterTable, name, value)

			if setCallable {
				set(target, value)
			}
		}

		resetSlot(getterTable, name)
		resetSlot(setterTable, name)

		target.DefineAccessor(name, readWrapper, writeWrapper)

		return mock
	}
}
