// Package impshape turns a plain object shape into an instrumented test double.
//
// A Mock owns an instance object, a constructor object, and six call tables. The
// setup operators (SetupFunction, SetupProperty, DefineProperty and their static
// variants) each return a Transform that installs a recording wrapper on the mock
// and resets its table slots:
//
//	mock := impshape.NewMock("Calculator").Apply(
//	    impshape.SetupFunction("add", func(a, b int) int { return a + b }),
//	    impshape.SetupProperty("precision", 2),
//	)
//
//	mock.Instance().Call("add", 2, 3)               // 5
//	mock.Lookup(impshape.KindFunction)["add"]       // [][]any{{2, 3}}
//
// This is the public API entry point. Implementation lives in internal/core.
package impshape

import (
	"github.com/toejough/impshape/internal/core"
)

// Kind values, re-exported from internal/core.
const (
	KindFunction       = core.KindFunction
	KindStaticFunction = core.KindStaticFunction
	KindGetter         = core.KindGetter
	KindSetter         = core.KindSetter
	KindStaticGetter   = core.KindStaticGetter
	KindStaticSetter   = core.KindStaticSetter
)

// MemberKind values, re-exported from internal/core.
const (
	MemberNone     = core.MemberNone
	MemberMethod   = core.MemberMethod
	MemberAccessor = core.MemberAccessor
	MemberValue    = core.MemberValue
)

// Errors re-exported from internal/core.
var (
	ErrArgumentType = core.ErrArgumentType
	ErrNoMember     = core.ErrNoMember
	ErrNotCallable  = core.ErrNotCallable
	ErrUnknownKind  = core.ErrUnknownKind
)

// Func is a member implementation bound to the object it is installed on.
type Func = core.Func

// Kind selects one of a mock's six lookup tables.
type Kind = core.Kind

// Matcher is satisfied by gomega matchers and by the matchers in the match package.
type Matcher = core.Matcher

// MemberKind describes how an object member behaves.
type MemberKind = core.MemberKind

// Mock is an instrumented test double.
type Mock = core.Mock

// Object is a name-keyed table of replaceable members.
type Object = core.Object

// Record is the argument list captured for one invocation.
type Record = core.Record

// Table maps member names to their call records.
type Table = core.Table

// Transform mutates and returns a mock.
type Transform = core.Transform

// AsFunc normalizes v into a Func, reporting false if v is not callable.
func AsFunc(v any) (Func, bool) {
	return core.AsFunc(v)
}

// Compose returns a transform applying transforms left to right.
func Compose(transforms ...Transform) Transform {
	return core.Compose(transforms...)
}

// DefineProperty installs an instrumented accessor on the instance object.
func DefineProperty(name string, getter, setter any) Transform {
	return core.DefineProperty(name, getter, setter)
}

// DefineStaticProperty installs an instrumented accessor on the constructor object.
func DefineStaticProperty(name string, getter, setter any) Transform {
	return core.DefineStaticProperty(name, getter, setter)
}

// GetLookup returns the table of the given kind owned by mock.
func GetLookup(mock *Mock, kind Kind) Table {
	return core.GetLookup(mock, kind)
}

// Kinds returns every lookup kind.
func Kinds() []Kind {
	return core.Kinds()
}

// MatchRecord checks a recorded argument list against expected values or matchers.
func MatchRecord(actual Record, expected []any) (bool, string) {
	return core.MatchRecord(actual, expected)
}

// MatchValue checks if actual matches expected.
func MatchValue(actual, expected any) (bool, string) {
	return core.MatchValue(actual, expected)
}

// NewMock creates a bare mock shell with empty objects and tables.
func NewMock(name string) *Mock {
	return core.NewMock(name)
}

// NewMockFrom creates a mock shell around caller-built objects.
func NewMockFrom(instance, constructor *Object) *Mock {
	return core.NewMockFrom(instance, constructor)
}

// NewObject creates an empty object.
func NewObject(name string) *Object {
	return core.NewObject(name)
}

// ParseKind returns the Kind with the given name.
func ParseKind(name string) (Kind, error) {
	return core.ParseKind(name)
}

// SetupFunction installs an instrumented method on the instance object.
func SetupFunction(name string, implementation any) Transform {
	return core.SetupFunction(name, implementation)
}

// SetupProperty installs an instrumented fixed-value property on the instance object.
func SetupProperty(name string, value any) Transform {
	return core.SetupProperty(name, value)
}

// SetupStaticFunction installs an instrumented method on the constructor object.
func SetupStaticFunction(name string, implementation any) Transform {
	return core.SetupStaticFunction(name, implementation)
}

// SetupStaticProperty installs an instrumented fixed-value property on the constructor object.
func SetupStaticProperty(name string, value any) Transform {
	return core.SetupStaticProperty(name, value)
}

// TrackCall appends record to table[name], creating the slot if needed.
func TrackCall(table Table, name string, record Record) {
	core.TrackCall(table, name, record)
}
