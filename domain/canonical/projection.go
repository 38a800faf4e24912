package canonical

import (
	"godyn/domain/block"
	"godyn/domain/schema"
	"godyn/domain/spec"
)

// CanonicalGDS is the derived decomposition h = f∘g over the state
// space X: mechanisms form the state-update map f, policies the
// decision map g, boundary actions the exogenous input space U, and
// parameters the schema of Θ. Control actions are carried for
// completeness but sit outside the formula. The record is immutable and
// never mutates its source; re-projecting the same registry yields a
// structurally equal value.
type CanonicalGDS struct {
	// StateVariables lists X as Entity.variable keys in entity
	// registration order.
	StateVariables []string `json:"state_variables" yaml:"state_variables"`
	// InputPorts lists U: the forward outputs of boundary actions.
	InputPorts []string `json:"input_ports" yaml:"input_ports"`
	// DecisionPorts lists the forward outputs of policies: the range of g.
	DecisionPorts   []string `json:"decision_ports" yaml:"decision_ports"`
	PolicyBlocks    []string `json:"policy_blocks" yaml:"policy_blocks"`
	MechanismBlocks []string `json:"mechanism_blocks" yaml:"mechanism_blocks"`
	ControlBlocks   []string `json:"control_blocks,omitempty" yaml:"control_blocks,omitempty"`
	// ParameterSchema is Θ: parameter name to exported type name.
	ParameterSchema map[string]string `json:"parameter_schema" yaml:"parameter_schema"`
}

// Project derives the canonical decomposition from a registry by
// exhaustive role classification. Pure: safe under concurrent reads of
// a sealed spec.
func Project(s *spec.GDSSpec) CanonicalGDS {
	out := CanonicalGDS{
		StateVariables:  []string{},
		InputPorts:      []string{},
		DecisionPorts:   []string{},
		PolicyBlocks:    []string{},
		MechanismBlocks: []string{},
		ParameterSchema: make(map[string]string),
	}

	for _, e := range s.Entities() {
		for _, v := range e.Variables {
			out.StateVariables = append(out.StateVariables, schema.VariableKey(e.Name, v.Name))
		}
	}

	for _, rb := range s.Blocks() {
		switch rb.Role {
		case block.RoleBoundaryAction:
			for _, p := range rb.Atomic.Ports.ForwardOut {
				out.InputPorts = append(out.InputPorts, p.Name)
			}
		case block.RolePolicy:
			out.PolicyBlocks = append(out.PolicyBlocks, rb.Name())
			for _, p := range rb.Atomic.Ports.ForwardOut {
				out.DecisionPorts = append(out.DecisionPorts, p.Name)
			}
		case block.RoleMechanism:
			out.MechanismBlocks = append(out.MechanismBlocks, rb.Name())
		case block.RoleControlAction:
			out.ControlBlocks = append(out.ControlBlocks, rb.Name())
		}
	}

	for _, name := range s.Parameters() {
		td, _ := s.Parameter(name)
		out.ParameterSchema[name] = td.Name
	}

	return out
}

// WellFormed reports whether the decomposition has both a state space
// and a state-update map; verification turns a false result into a
// warning finding.
func (c CanonicalGDS) WellFormed() bool {
	return len(c.StateVariables) > 0 && len(c.MechanismBlocks) > 0
}
