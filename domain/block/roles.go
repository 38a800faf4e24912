package block

import (
	"godyn/domain/core"
)

// Role classifies an atomic block's responsibility. The set is closed;
// canonical projection switches over it exhaustively.
type Role string

const (
	RoleBoundaryAction Role = "boundary_action"
	RolePolicy         Role = "policy"
	RoleMechanism      Role = "mechanism"
	RoleControlAction  Role = "control_action"
)

// UpdateTarget names one state variable a mechanism writes.
type UpdateTarget struct {
	Entity   string `json:"entity" yaml:"entity"`
	Variable string `json:"variable" yaml:"variable"`
}

// Key returns the "Entity.variable" form used in findings.
func (u UpdateTarget) Key() string {
	return u.Entity + "." + u.Variable
}

// RoleBlock is an atomic block refined with a role. BoundaryAction and
// Mechanism ports are gated at construction; Policy and ControlAction
// are unconstrained. ParamsUsed is a string-keyed reference resolved at
// registry validation, never here.
type RoleBlock struct {
	Atomic     *AtomicBlock   `json:"-" yaml:"-"`
	Role       Role           `json:"role" yaml:"role"`
	Updates    []UpdateTarget `json:"updates,omitempty" yaml:"updates,omitempty"`
	ParamsUsed []string       `json:"params_used,omitempty" yaml:"params_used,omitempty"`
}

// NewBoundaryAction refines a leaf as an exogenous input: it may not
// consume forward flow.
func NewBoundaryAction(atomic *AtomicBlock, paramsUsed ...string) (*RoleBlock, error) {
	if len(atomic.Ports.ForwardIn) > 0 {
		return nil, core.NewRoleConstraintError("boundary action", atomic.BlockName, "forward_in")
	}
	return &RoleBlock{Atomic: atomic, Role: RoleBoundaryAction, ParamsUsed: paramsUsed}, nil
}

// NewPolicy refines a leaf as a decision block.
func NewPolicy(atomic *AtomicBlock, paramsUsed ...string) (*RoleBlock, error) {
	return &RoleBlock{Atomic: atomic, Role: RolePolicy, ParamsUsed: paramsUsed}, nil
}

// NewMechanism refines a leaf as a state updater: it declares the
// variables it writes and may not carry backward flow on either side.
func NewMechanism(atomic *AtomicBlock, updates []UpdateTarget, paramsUsed ...string) (*RoleBlock, error) {
	if len(atomic.Ports.BackwardIn) > 0 {
		return nil, core.NewRoleConstraintError("mechanism", atomic.BlockName, "backward_in")
	}
	if len(atomic.Ports.BackwardOut) > 0 {
		return nil, core.NewRoleConstraintError("mechanism", atomic.BlockName, "backward_out")
	}
	return &RoleBlock{Atomic: atomic, Role: RoleMechanism, Updates: updates, ParamsUsed: paramsUsed}, nil
}

// NewControlAction refines a leaf as an admissibility constraint.
func NewControlAction(atomic *AtomicBlock, paramsUsed ...string) (*RoleBlock, error) {
	return &RoleBlock{Atomic: atomic, Role: RoleControlAction, ParamsUsed: paramsUsed}, nil
}

// Name returns the underlying block name.
func (r *RoleBlock) Name() string {
	return r.Atomic.BlockName
}
