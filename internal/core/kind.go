package core

import (
	"errors"
	"fmt"
)

// Kind selects one of the six lookup tables owned by a Mock.
type Kind int

// Kind values.
const (
	KindFunction Kind = iota
	KindStaticFunction
	KindGetter
	KindSetter
	KindStaticGetter
	KindStaticSetter
)

// Exported variables.
var (
	ErrUnknownKind = errors.New("unknown lookup kind")
)

// Kinds returns every lookup kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindFunction,
		KindStaticFunction,
		KindGetter,
		KindSetter,
		KindStaticGetter,
		KindStaticSetter,
	}
}

// ParseKind returns the Kind whose String form is name.
func ParseKind(name string) (Kind, error) {
	for _, kind := range Kinds() {
		if kind.String() == name {
			return kind, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// IsStatic reports whether members of this kind live on the constructor object.
func (k Kind) IsStatic() bool {
	return k == KindStaticFunction || k == KindStaticGetter || k == KindStaticSetter
}

// Setter returns the setter kind paired with a getter kind.
// Non-getter kinds are returned unchanged.
func (k Kind) Setter() Kind {
	switch k {
	case KindGetter:
		return KindSetter
	case KindStaticGetter:
		return KindStaticSetter
	default:
		return k
	}
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// unexported constants.
const (
	kindCount = 6
)

// unexported variables.
var (
	//nolint:gochecknoglobals // fixed lookup for Kind.String
	kindNames = [kindCount]string{
		"function",
		"staticFunction",
		"getter",
		"setter",
		"staticGetter",
		"staticSetter",
	}
)
