package block

import (
	"fmt"

	"godyn/domain/core"
	"godyn/domain/token"
)

// Kind identifies a block variant. The set is closed: one leaf kind and
// four composition kinds.
type Kind string

const (
	KindAtomic   Kind = "atomic"
	KindStack    Kind = "stack"
	KindParallel Kind = "parallel"
	KindFeedback Kind = "feedback"
	KindTemporal Kind = "temporal_loop"
)

// Block is a typed computational unit in a composition tree. Composites
// exclusively own their children, so a tree is acyclic by construction;
// feedback and temporal edges live in wiring lists, never in the tree.
type Block interface {
	Kind() Kind
	Name() string
	Interface() Interface
	// Flatten collects the atomic leaves depth-first, left to right.
	Flatten() []*AtomicBlock

	sealed()
}

// AtomicBlock is the leaf variant: a name and a port signature.
type AtomicBlock struct {
	BlockName string
	Ports     Interface
}

// NewAtomic creates a leaf block. The name is its wiring identity.
func NewAtomic(name string, ports Interface) (*AtomicBlock, error) {
	if name == "" {
		return nil, fmt.Errorf("atomic block name cannot be empty")
	}
	return &AtomicBlock{BlockName: name, Ports: ports}, nil
}

func (b *AtomicBlock) Kind() Kind              { return KindAtomic }
func (b *AtomicBlock) Name() string            { return b.BlockName }
func (b *AtomicBlock) Interface() Interface    { return b.Ports }
func (b *AtomicBlock) Flatten() []*AtomicBlock { return []*AtomicBlock{b} }
func (b *AtomicBlock) sealed()                 {}

// StackComposition runs two blocks sequentially: a's forward outputs
// feed b's forward inputs.
type StackComposition struct {
	First  Block
	Second Block
	// Wiring, when present, replaces the auto-synthesized connections.
	Wiring []Wiring

	iface Interface
}

// Stack composes a before b. With no explicit wiring the two interfaces
// must share at least one forward token, otherwise construction fails
// immediately with a type mismatch naming both token sets.
func Stack(a, b Block, wiring ...Wiring) (*StackComposition, error) {
	if len(wiring) == 0 {
		out := a.Interface().ForwardOutTokens()
		in := b.Interface().ForwardInTokens()
		if !token.Overlap(out, in) {
			return nil, core.NewTypeMismatchError(a.Name(), b.Name(), out.Sorted(), in.Sorted())
		}
	}
	for _, w := range wiring {
		if err := w.checkFlags(); err != nil {
			return nil, err
		}
	}
	return &StackComposition{
		First:  a,
		Second: b,
		Wiring: wiring,
		iface:  concat(a.Interface(), b.Interface()),
	}, nil
}

func (b *StackComposition) Kind() Kind           { return KindStack }
func (b *StackComposition) Name() string         { return b.First.Name() + ">>" + b.Second.Name() }
func (b *StackComposition) Interface() Interface { return b.iface }
func (b *StackComposition) Flatten() []*AtomicBlock {
	return append(b.First.Flatten(), b.Second.Flatten()...)
}
func (b *StackComposition) sealed() {}

// ParallelComposition runs two blocks side by side with no interaction
// and therefore no structural validation.
type ParallelComposition struct {
	Left  Block
	Right Block

	iface Interface
}

// Parallel composes a beside b.
func Parallel(a, b Block) *ParallelComposition {
	return &ParallelComposition{
		Left:  a,
		Right: b,
		iface: concat(a.Interface(), b.Interface()),
	}
}

func (b *ParallelComposition) Kind() Kind           { return KindParallel }
func (b *ParallelComposition) Name() string         { return b.Left.Name() + "||" + b.Right.Name() }
func (b *ParallelComposition) Interface() Interface { return b.iface }
func (b *ParallelComposition) Flatten() []*AtomicBlock {
	return append(b.Left.Flatten(), b.Right.Flatten()...)
}
func (b *ParallelComposition) sealed() {}

// FeedbackLoop closes contravariant wirings over one inner block. The
// inner interface passes through unchanged.
type FeedbackLoop struct {
	Inner  Block
	Wiring []Wiring
}

// Feedback wraps inner with a non-empty, all-contravariant wiring list.
func Feedback(inner Block, wiring []Wiring) (*FeedbackLoop, error) {
	if len(wiring) == 0 {
		return nil, fmt.Errorf("%w: feedback loop around %q", core.ErrEmptyWiring, inner.Name())
	}
	for _, w := range wiring {
		if w.Direction != Contravariant {
			return nil, fmt.Errorf("%w: feedback loop around %q requires contravariant wirings, got %s on %s->%s",
				core.ErrWiringFlow, inner.Name(), w.Direction, w.SourceBlock, w.TargetBlock)
		}
	}
	return &FeedbackLoop{Inner: inner, Wiring: wiring}, nil
}

func (b *FeedbackLoop) Kind() Kind              { return KindFeedback }
func (b *FeedbackLoop) Name() string            { return "feedback(" + b.Inner.Name() + ")" }
func (b *FeedbackLoop) Interface() Interface    { return b.Inner.Interface() }
func (b *FeedbackLoop) Flatten() []*AtomicBlock { return b.Inner.Flatten() }
func (b *FeedbackLoop) sealed()                 {}

// TemporalLoop carries covariant wirings across a timestep boundary.
// ExitCondition is an inert label for readers; nothing ever evaluates it.
type TemporalLoop struct {
	Inner         Block
	Wiring        []Wiring
	ExitCondition string
}

// Loop wraps inner with a non-empty, all-covariant temporal wiring list.
func Loop(inner Block, wiring []Wiring, exitCondition string) (*TemporalLoop, error) {
	if len(wiring) == 0 {
		return nil, fmt.Errorf("%w: temporal loop around %q", core.ErrEmptyWiring, inner.Name())
	}
	for _, w := range wiring {
		if w.Direction == Contravariant {
			return nil, fmt.Errorf("%w: temporal loop around %q requires covariant wirings, got %s on %s->%s",
				core.ErrWiringFlow, inner.Name(), w.Direction, w.SourceBlock, w.TargetBlock)
		}
	}
	return &TemporalLoop{Inner: inner, Wiring: wiring, ExitCondition: exitCondition}, nil
}

func (b *TemporalLoop) Kind() Kind              { return KindTemporal }
func (b *TemporalLoop) Name() string            { return "loop(" + b.Inner.Name() + ")" }
func (b *TemporalLoop) Interface() Interface    { return b.Inner.Interface() }
func (b *TemporalLoop) Flatten() []*AtomicBlock { return b.Inner.Flatten() }
func (b *TemporalLoop) sealed()                 {}
