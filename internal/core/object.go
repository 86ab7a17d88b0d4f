package core

import (
	"errors"
	"fmt"
	"sort"
)

// MemberKind describes how a member of an Object behaves.
type MemberKind int

// MemberKind values.
const (
	MemberNone MemberKind = iota
	MemberMethod
	MemberAccessor
	MemberValue
)

// Exported variables.
var (
	ErrNoMember    = errors.New("no such member")
	ErrNotCallable = errors.New("member is not callable")
)

// Object is a name-keyed table of replaceable members. It stands in for the
// instance or constructor shape being mocked: installers overwrite members by name,
// and callers (or generated facades) dispatch through it.
type Object struct {
	name    string
	members map[string]*member
}

// NewObject creates an empty object. name is only used in error messages.
func NewObject(name string) *Object {
	return &Object{
		name:    name,
		members: make(map[string]*member),
	}
}

// Call invokes the named member and panics if it cannot be invoked.
func (o *Object) Call(name string, args ...any) any {
	result, err := o.Invoke(name, args...)
	if err != nil {
		panic(err)
	}

	return result
}

// DefineAccessor installs a getter/setter pair as a single member, replacing any
// existing member of that name. Either side may be nil.
func (o *Object) DefineAccessor(name string, get func() any, set func(any)) {
	o.members[name] = &member{kind: MemberAccessor, get: get, set: set}
}

// DefineMethod installs fn as the named member, replacing any existing member.
func (o *Object) DefineMethod(name string, fn Func) {
	o.members[name] = &member{kind: MemberMethod, fn: fn}
}

// DefineValue installs a plain data member.
func (o *Object) DefineValue(name string, value any) {
	o.members[name] = &member{kind: MemberValue, value: value}
}

// Delete removes the named member, if present.
func (o *Object) Delete(name string) {
	delete(o.members, name)
}

// Get reads the named member and panics if it does not exist.
func (o *Object) Get(name string) any {
	value, err := o.Read(name)
	if err != nil {
		panic(err)
	}

	return value
}

// Has reports whether the named member exists.
func (o *Object) Has(name string) bool {
	_, ok := o.members[name]

	return ok
}

// Invoke calls the named member with args, bound to o.
// Methods are called directly. Data members are called when their value is callable.
// Accessors are read, and the result is called when callable.
func (o *Object) Invoke(name string, args ...any) (any, error) {
	found, ok := o.members[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrNoMember, o.name, name)
	}

	var target any

	switch found.kind {
	case MemberMethod:
		if found.fn == nil {
			return nil, nil
		}

		return found.fn(o, args...), nil
	case MemberAccessor:
		target = found.read()
	default:
		target = found.value
	}

	fn, ok := AsFunc(target)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrNotCallable, o.name, name)
	}

	return fn(o, args...), nil
}

// Kind returns the kind of the named member, or MemberNone if it does not exist.
func (o *Object) Kind(name string) MemberKind {
	found, ok := o.members[name]
	if !ok {
		return MemberNone
	}

	return found.kind
}

// Name returns the object's name.
func (o *Object) Name() string {
	return o.name
}

// Names returns the member names in sorted order.
func (o *Object) Names() []string {
	names := make([]string, 0, len(o.members))
	for name := range o.members {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Read returns the value of the named member: the getter result for accessors,
// a Func bound to o for methods, and the stored value for data members. The bound
// Func ignores the object it is later called with.
func (o *Object) Read(name string) (any, error) {
	found, ok := o.members[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrNoMember, o.name, name)
	}

	switch found.kind {
	case MemberMethod:
		if found.fn == nil {
			return nil, nil
		}

		fn := found.fn

		return Func(func(_ *Object, args ...any) any { return fn(o, args...) }), nil
	case MemberAccessor:
		return found.read(), nil
	default:
		return found.value, nil
	}
}

// Set writes the named member. It exists for symmetry with Call and Get; writes
// never fail.
func (o *Object) Set(name string, value any) {
	err := o.Write(name, value)
	if err != nil {
		panic(err)
	}
}

// Write assigns value to the named member. Accessors route the value to their
// setter; any other member (or a missing one) becomes a data member.
func (o *Object) Write(name string, value any) error {
	found, ok := o.members[name]
	if ok && found.kind == MemberAccessor {
		if found.set != nil {
			found.set(value)
		}

		return nil
	}

	o.DefineValue(name, value)

	return nil
}

type member struct {
	kind  MemberKind
	fn    Func
	get   func() any
	set   func(any)
	value any
}

func (m *member) read() any {
	if m.get == nil {
		return nil
	}

	return m.get()
}
