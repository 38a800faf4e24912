package schema

import (
	"fmt"
)

// StateVariable is one persistent, typed component of an entity's state.
type StateVariable struct {
	Name    string  `json:"name" yaml:"name"`
	Type    TypeDef `json:"type" yaml:"type"`
	Initial any     `json:"initial,omitempty" yaml:"initial,omitempty"`
}

// Entity groups state variables into one component of the global state
// space X. Variable order is the declaration order.
type Entity struct {
	Name      string          `json:"name" yaml:"name"`
	Variables []StateVariable `json:"variables" yaml:"variables"`
}

// NewEntity creates an entity, failing fast on blank or duplicate
// variable names.
func NewEntity(name string, variables ...StateVariable) (Entity, error) {
	if name == "" {
		return Entity{}, fmt.Errorf("entity name cannot be empty")
	}
	seen := make(map[string]bool, len(variables))
	for _, v := range variables {
		if v.Name == "" {
			return Entity{}, fmt.Errorf("entity %q has a variable with no name", name)
		}
		if seen[v.Name] {
			return Entity{}, fmt.Errorf("entity %q declares variable %q twice", name, v.Name)
		}
		seen[v.Name] = true
	}
	return Entity{Name: name, Variables: variables}, nil
}

// Variable looks up a state variable by name.
func (e Entity) Variable(name string) (StateVariable, bool) {
	for _, v := range e.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return StateVariable{}, false
}

// VariableKey is the "Entity.variable" form used by mechanism update
// declarations and verification findings.
func VariableKey(entity, variable string) string {
	return entity + "." + variable
}
