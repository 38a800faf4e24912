package compiler

import (
	"godyn/domain/block"
)

// WiringOrigin records how a compiled wiring came to exist.
type WiringOrigin string

const (
	// OriginAuto marks a connection synthesized from token overlap of a
	// stack with no declared wiring.
	OriginAuto     WiringOrigin = "AUTO"
	OriginExplicit WiringOrigin = "EXPLICIT"
	OriginFeedback WiringOrigin = "FEEDBACK"
	OriginTemporal WiringOrigin = "TEMPORAL"
)

// BlockIR is the flat, role-agnostic form of one atomic block: its name
// plus the token slots of its four port groups.
type BlockIR struct {
	Name        string   `json:"name" yaml:"name"`
	ForwardIn   []string `json:"forward_in" yaml:"forward_in"`
	ForwardOut  []string `json:"forward_out" yaml:"forward_out"`
	BackwardIn  []string `json:"backward_in" yaml:"backward_in"`
	BackwardOut []string `json:"backward_out" yaml:"backward_out"`
}

// WiringIR is one compiled connection. Label is the token set carried on
// the wire: the intersection of both port token sets when they overlap,
// otherwise the source port's tokens.
type WiringIR struct {
	SourceBlock string          `json:"source_block" yaml:"source_block"`
	SourcePort  string          `json:"source_port" yaml:"source_port"`
	TargetBlock string          `json:"target_block" yaml:"target_block"`
	TargetPort  string          `json:"target_port" yaml:"target_port"`
	Direction   block.Direction `json:"direction" yaml:"direction"`
	IsFeedback  bool            `json:"is_feedback" yaml:"is_feedback"`
	IsTemporal  bool            `json:"is_temporal" yaml:"is_temporal"`
	Origin      WiringOrigin    `json:"origin" yaml:"origin"`
	Label       []string        `json:"label" yaml:"label"`
}

// InputIR declares an exogenous system input wirings may target.
type InputIR struct {
	Name   string   `json:"name" yaml:"name"`
	Tokens []string `json:"tokens" yaml:"tokens"`
}

// HierarchyNode mirrors composition nesting. Consecutive same-kind
// binary nodes are collapsed into one n-ary node for readability;
// verification never consumes the hierarchy.
type HierarchyNode struct {
	Kind     block.Kind       `json:"kind" yaml:"kind"`
	Name     string           `json:"name" yaml:"name"`
	Children []*HierarchyNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// SystemIR is the serializable output of one compilation: the tuple of
// the three pass results. Compiled once, never mutated.
type SystemIR struct {
	Name            string         `json:"name" yaml:"name"`
	Blocks          []BlockIR      `json:"blocks" yaml:"blocks"`
	Wirings         []WiringIR     `json:"wirings" yaml:"wirings"`
	Inputs          []InputIR      `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Hierarchy       *HierarchyNode `json:"hierarchy" yaml:"hierarchy"`
	CompositionType block.Kind     `json:"composition_type" yaml:"composition_type"`
}

// BlockByName finds a compiled block.
func (ir *SystemIR) BlockByName(name string) (BlockIR, bool) {
	for _, b := range ir.Blocks {
		if b.Name == name {
			return b, true
		}
	}
	return BlockIR{}, false
}

// HasInput reports whether a name is a declared system input.
func (ir *SystemIR) HasInput(name string) bool {
	for _, in := range ir.Inputs {
		if in.Name == name {
			return true
		}
	}
	return false
}
