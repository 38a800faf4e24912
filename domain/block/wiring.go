package block

import (
	"fmt"

	"godyn/domain/core"
)

// Direction distinguishes forward signal flow from backward
// feedback/cost flow.
type Direction string

const (
	Covariant     Direction = "COVARIANT"
	Contravariant Direction = "CONTRAVARIANT"
)

// Wiring declares one connection between two named blocks.
type Wiring struct {
	SourceBlock string    `json:"source_block" yaml:"source_block"`
	SourcePort  string    `json:"source_port" yaml:"source_port"`
	TargetBlock string    `json:"target_block" yaml:"target_block"`
	TargetPort  string    `json:"target_port" yaml:"target_port"`
	Direction   Direction `json:"direction" yaml:"direction"`
	IsFeedback  bool      `json:"is_feedback" yaml:"is_feedback"`
	IsTemporal  bool      `json:"is_temporal" yaml:"is_temporal"`
	// Space names the registered Space carried on this wire, when the
	// spec author declares one. Resolved at GDSSpec.Validate, not here.
	Space string `json:"space,omitempty" yaml:"space,omitempty"`
}

// NewWiring creates a plain covariant wiring between two ports.
func NewWiring(sourceBlock, sourcePort, targetBlock, targetPort string) Wiring {
	return Wiring{
		SourceBlock: sourceBlock,
		SourcePort:  sourcePort,
		TargetBlock: targetBlock,
		TargetPort:  targetPort,
		Direction:   Covariant,
	}
}

// NewFeedbackWiring creates a contravariant wiring flagged as feedback.
func NewFeedbackWiring(sourceBlock, sourcePort, targetBlock, targetPort string) Wiring {
	return Wiring{
		SourceBlock: sourceBlock,
		SourcePort:  sourcePort,
		TargetBlock: targetBlock,
		TargetPort:  targetPort,
		Direction:   Contravariant,
		IsFeedback:  true,
	}
}

// NewTemporalWiring creates a covariant wiring flagged as crossing a
// timestep boundary.
func NewTemporalWiring(sourceBlock, sourcePort, targetBlock, targetPort string) Wiring {
	return Wiring{
		SourceBlock: sourceBlock,
		SourcePort:  sourcePort,
		TargetBlock: targetBlock,
		TargetPort:  targetPort,
		Direction:   Covariant,
		IsTemporal:  true,
	}
}

// checkFlags rejects the two contradictory flag combinations at
// construction time. Verification re-checks the same invariant over
// compiled IR, since wirings can also arrive via the registry.
func (w Wiring) checkFlags() error {
	if w.Direction == Covariant && w.IsFeedback {
		return fmt.Errorf("%w: covariant wiring %s->%s flagged as feedback",
			core.ErrWiringFlow, w.SourceBlock, w.TargetBlock)
	}
	if w.Direction == Contravariant && w.IsTemporal {
		return fmt.Errorf("%w: contravariant wiring %s->%s flagged as temporal",
			core.ErrWiringFlow, w.SourceBlock, w.TargetBlock)
	}
	return nil
}
