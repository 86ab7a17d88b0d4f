// Package plan builds impshape mocks from declarative YAML plans.
//
//	name: Calculator
//	members:
//	  - kind: function
//	    name: add
//	    returns: 5
//	  - kind: property
//	    name: precision
//	    value: 2
//
// Functions without a returns key are set up with no implementation. Properties
// without a value key read as nil.
package plan

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/toejough/impshape"
)

// Member kinds accepted in a plan.
const (
	KindFunction       = "function"
	KindStaticFunction = "staticFunction"
	KindProperty       = "property"
	KindStaticProperty = "staticProperty"
)

// Exported variables.
var (
	ErrMissingName  = errors.New("member has no name")
	ErrUnknownField = errors.New("unknown member field")
	ErrUnknownKind  = errors.New("unknown member kind")
)

// Member declares one member to set up.
type Member struct {
	Kind string
	Name string
	// Returns is the fixed result of a function member. HasReturns reports whether
	// the plan supplied it at all.
	Returns    any
	HasReturns bool
	Value      any
}

// UnmarshalYAML decodes a member, keeping track of whether returns was given.
// Keys other than kind, name, returns and value are rejected.
func (m *Member) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		for index := 0; index < len(node.Content); index += 2 {
			key := node.Content[index]
			if !memberFields[key.Value] {
				return fmt.Errorf("%w: %q at line %d", ErrUnknownField, key.Value, key.Line)
			}
		}
	}

	var raw struct {
		Kind    string    `yaml:"kind"`
		Name    string    `yaml:"name"`
		Returns yaml.Node `yaml:"returns"`
		Value   any       `yaml:"value"`
	}

	err := node.Decode(&raw)
	if err != nil {
		return fmt.Errorf("decoding member at line %d: %w", node.Line, err)
	}

	*m = Member{Kind: raw.Kind, Name: raw.Name, Value: raw.Value}

	if raw.Returns.IsZero() {
		return nil
	}

	m.HasReturns = true

	err = raw.Returns.Decode(&m.Returns)
	if err != nil {
		return fmt.Errorf("decoding returns of %q: %w", raw.Name, err)
	}

	return nil
}

// Plan is a named list of members.
type Plan struct {
	Name    string   `yaml:"name"`
	Members []Member `yaml:"members"`
}

// Load decodes a plan from r. Unknown top-level keys are rejected.
func Load(r io.Reader) (*Plan, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var plan Plan

	err := decoder.Decode(&plan)
	if err != nil {
		return nil, fmt.Errorf("decoding plan: %w", err)
	}

	return &plan, nil
}

// Parse decodes a plan from data.
func Parse(data []byte) (*Plan, error) {
	return Load(bytes.NewReader(data))
}

// Build creates a mock named after the plan and applies every member.
func (p *Plan) Build() (*impshape.Mock, error) {
	transforms, err := p.Transforms()
	if err != nil {
		return nil, err
	}

	return impshape.NewMock(p.Name).Apply(transforms...), nil
}

// Transforms converts the plan's members into setup transforms, in order.
func (p *Plan) Transforms() ([]impshape.Transform, error) {
	transforms := make([]impshape.Transform, 0, len(p.Members))

	for index, member := range p.Members {
		transform, err := member.transform()
		if err != nil {
			return nil, fmt.Errorf("member %d: %w", index, err)
		}

		transforms = append(transforms, transform)
	}

	return transforms, nil
}

// unexported variables.
var (
	//nolint:gochecknoglobals // fixed set of accepted member keys
	memberFields = map[string]bool{"kind": true, "name": true, "returns": true, "value": true}
)

func (m Member) implementation() any {
	if !m.HasReturns {
		return nil
	}

	result := m.Returns

	return func(...any) any { return result }
}

func (m Member) transform() (impshape.Transform, error) {
	if m.Name == "" {
		return nil, ErrMissingName
	}

	switch m.Kind {
	case KindFunction:
		return impshape.SetupFunction(m.Name, m.implementation()), nil
	case KindStaticFunction:
		return impshape.SetupStaticFunction(m.Name, m.implementation()), nil
	case KindProperty:
		return impshape.SetupProperty(m.Name, m.Value), nil
	case KindStaticProperty:
		return impshape.SetupStaticProperty(m.Name, m.Value), nil
	default:
		return nil, fmt.Errorf("%w: %q (member %s)", ErrUnknownKind, m.Kind, m.Name)
	}
}
