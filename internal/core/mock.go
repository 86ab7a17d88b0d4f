// Package core provides the internal implementation of impshape's
// interception-and-recording engine: the member tables that stand in for a mocked
// shape, the per-kind call lookups, and the installers that wire them together.
package core

// Mock bundles a target-shaped instance object, an optional constructor-shaped
// object, and one lookup table per Kind.
//
// A Mock is not safe for concurrent use.
type Mock struct {
	instance    *Object
	constructor *Object
	lookups     [kindCount]Table
}

// NewMock creates a bare mock shell for the named shape: an empty instance object,
// an empty constructor object, and six empty lookup tables.
func NewMock(name string) *Mock {
	return NewMockFrom(NewObject(name), NewObject(name))
}

// NewMockFrom creates a mock shell around caller-built objects.
// constructor may be nil; static setup creates one on demand.
func NewMockFrom(instance, constructor *Object) *Mock {
	if instance == nil {
		instance = NewObject("")
	}

	mock := &Mock{
		instance:    instance,
		constructor: constructor,
	}

	for i := range mock.lookups {
		mock.lookups[i] = make(Table)
	}

	return mock
}

// GetLookup returns the table of the given kind owned by mock.
func GetLookup(mock *Mock, kind Kind) Table {
	return mock.Lookup(kind)
}

// Apply applies transforms in order and returns m.
func (m *Mock) Apply(transforms ...Transform) *Mock {
	return Compose(transforms...)(m)
}

// Calls returns the records for name in the table of the given kind.
// The second return is false when the member was never set up (or tracked).
func (m *Mock) Calls(kind Kind, name string) ([]Record, bool) {
	records, ok := m.Lookup(kind)[name]

	return records, ok
}

// Constructor returns the constructor object, or nil if the mock has none yet.
func (m *Mock) Constructor() *Object {
	return m.constructor
}

// Instance returns the instance object.
func (m *Mock) Instance() *Object {
	return m.instance
}

// Lookup returns the table of the given kind. It panics on an invalid kind.
func (m *Mock) Lookup(kind Kind) Table {
	return m.lookups[kind]
}

// target returns the object members of the given kind are installed on,
// creating the constructor object if a static kind needs one.
func (m *Mock) target(kind Kind) *Object {
	if !kind.IsStatic() {
		return m.instance
	}

	if m.constructor == nil {
		m.constructor = NewObject(m.instance.Name())
	}

	return m.constructor
}
