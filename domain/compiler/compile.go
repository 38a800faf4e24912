package compiler

import (
	"godyn/domain/block"
	"godyn/domain/token"
)

// BlockCompiler turns one atomic leaf into its IR. The default records
// the name and the four token slots; downstream layers may substitute a
// richer compiler without touching the passes.
type BlockCompiler func(*block.AtomicBlock) BlockIR

// WiringHook observes every compiled wiring and may rewrite it, e.g. to
// attach extra fields for a reporting layer. Core fields keep their
// meaning regardless.
type WiringHook func(WiringIR) WiringIR

// Option configures a compilation.
type Option func(*compilation)

// WithBlockCompiler replaces the default leaf compiler.
func WithBlockCompiler(bc BlockCompiler) Option {
	return func(c *compilation) { c.compileBlock = bc }
}

// WithWiringHook attaches a wiring rewrite hook.
func WithWiringHook(h WiringHook) Option {
	return func(c *compilation) { c.wiringHook = h }
}

// WithInputs declares exogenous system inputs wirings may reference.
func WithInputs(names ...string) Option {
	return func(c *compilation) {
		for _, n := range names {
			c.inputs = append(c.inputs, InputIR{Name: n, Tokens: token.Tokenize(n).Sorted()})
		}
	}
}

type compilation struct {
	compileBlock BlockCompiler
	wiringHook   WiringHook
	inputs       []InputIR
}

// DefaultBlockCompiler records a leaf's name and its four port-group
// token slots.
func DefaultBlockCompiler(leaf *block.AtomicBlock) BlockIR {
	return BlockIR{
		Name:        leaf.BlockName,
		ForwardIn:   leaf.Ports.ForwardInTokens().Sorted(),
		ForwardOut:  leaf.Ports.ForwardOutTokens().Sorted(),
		BackwardIn:  leaf.Ports.BackwardInTokens().Sorted(),
		BackwardOut: leaf.Ports.BackwardOutTokens().Sorted(),
	}
}

// Compile flattens a composition tree into a SystemIR via three ordered,
// mutually independent passes: flatten, wire extraction, hierarchy
// extraction. The passes share no mutable state; compiling the same tree
// with the same options twice yields structurally equal output.
func Compile(name string, root block.Block, opts ...Option) *SystemIR {
	c := &compilation{compileBlock: DefaultBlockCompiler}
	for _, opt := range opts {
		opt(c)
	}

	return &SystemIR{
		Name:            name,
		Blocks:          c.flattenPass(root),
		Wirings:         c.wiringPass(root),
		Inputs:          c.inputs,
		Hierarchy:       hierarchyPass(root),
		CompositionType: root.Kind(),
	}
}

// flattenPass compiles the depth-first, left-to-right leaf list.
func (c *compilation) flattenPass(root block.Block) []BlockIR {
	leaves := root.Flatten()
	out := make([]BlockIR, len(leaves))
	for i, leaf := range leaves {
		out[i] = c.compileBlock(leaf)
	}
	return out
}

// wiringPass walks the tree a second time collecting connections.
func (c *compilation) wiringPass(b block.Block) []WiringIR {
	var out []WiringIR

	switch node := b.(type) {
	case *block.AtomicBlock:
		// Leaves declare no wirings.

	case *block.StackComposition:
		out = append(out, c.wiringPass(node.First)...)
		out = append(out, c.wiringPass(node.Second)...)
		if len(node.Wiring) == 0 {
			out = append(out, c.autoWirings(node)...)
		} else {
			for _, w := range node.Wiring {
				out = append(out, c.emit(w, OriginExplicit))
			}
		}

	case *block.ParallelComposition:
		out = append(out, c.wiringPass(node.Left)...)
		out = append(out, c.wiringPass(node.Right)...)

	case *block.FeedbackLoop:
		out = append(out, c.wiringPass(node.Inner)...)
		for _, w := range node.Wiring {
			out = append(out, c.emit(w, OriginFeedback))
		}

	case *block.TemporalLoop:
		out = append(out, c.wiringPass(node.Inner)...)
		for _, w := range node.Wiring {
			out = append(out, c.emit(w, OriginTemporal))
		}
	}

	return out
}

// autoWirings synthesizes one connection per token-overlapping
// forward_out/forward_in port pair of an unlabeled stack.
func (c *compilation) autoWirings(node *block.StackComposition) []WiringIR {
	var out []WiringIR
	for _, src := range node.First.Interface().ForwardOut {
		for _, dst := range node.Second.Interface().ForwardIn {
			if !token.Overlap(src.Tokens, dst.Tokens) {
				continue
			}
			ir := WiringIR{
				SourceBlock: ownerOf(node.First, src, groupForwardOut),
				SourcePort:  src.Name,
				TargetBlock: ownerOf(node.Second, dst, groupForwardIn),
				TargetPort:  dst.Name,
				Direction:   block.Covariant,
				Origin:      OriginAuto,
				Label:       wireLabel(src.Tokens, dst.Tokens),
			}
			out = append(out, c.applyHook(ir))
		}
	}
	return out
}

// emit compiles one declared wiring, deriving its label from the named
// ports' token sets. The owning composite decides the flags: a wiring
// closed by a temporal loop crosses a timestep boundary and one closed
// by a feedback loop flows backward, whether or not the author built it
// with a flagged constructor.
func (c *compilation) emit(w block.Wiring, origin WiringOrigin) WiringIR {
	ir := WiringIR{
		SourceBlock: w.SourceBlock,
		SourcePort:  w.SourcePort,
		TargetBlock: w.TargetBlock,
		TargetPort:  w.TargetPort,
		Direction:   w.Direction,
		IsFeedback:  w.IsFeedback || origin == OriginFeedback,
		IsTemporal:  w.IsTemporal || origin == OriginTemporal,
		Origin:      origin,
		Label:       wireLabel(token.Tokenize(w.SourcePort), token.Tokenize(w.TargetPort)),
	}
	return c.applyHook(ir)
}

func (c *compilation) applyHook(ir WiringIR) WiringIR {
	if c.wiringHook != nil {
		return c.wiringHook(ir)
	}
	return ir
}

// wireLabel is the token set carried on a wire: the intersection of the
// endpoint tokens when non-empty, else the source port's tokens.
func wireLabel(src, dst token.Set) []string {
	inter := make(token.Set)
	for tok := range src {
		if dst.Contains(tok) {
			inter[tok] = struct{}{}
		}
	}
	if len(inter) > 0 {
		return inter.Sorted()
	}
	return src.Sorted()
}

type portGroup int

const (
	groupForwardIn portGroup = iota
	groupForwardOut
)

// ownerOf resolves the atomic leaf a composite-level port belongs to.
// Composite interfaces concatenate leaf ports unchanged, so the first
// leaf exposing an equal port in the group is the owner.
func ownerOf(b block.Block, p block.Port, group portGroup) string {
	for _, leaf := range b.Flatten() {
		var ports []block.Port
		if group == groupForwardIn {
			ports = leaf.Ports.ForwardIn
		} else {
			ports = leaf.Ports.ForwardOut
		}
		for _, candidate := range ports {
			if candidate.Equal(p) {
				return leaf.BlockName
			}
		}
	}
	return b.Name()
}

// hierarchyPass mirrors the composition nesting, collapsing consecutive
// same-kind binary nodes into one n-ary group.
func hierarchyPass(b block.Block) *HierarchyNode {
	switch node := b.(type) {
	case *block.AtomicBlock:
		return &HierarchyNode{Kind: block.KindAtomic, Name: node.BlockName}

	case *block.StackComposition:
		return nary(block.KindStack, node.Name(),
			hierarchyPass(node.First), hierarchyPass(node.Second))

	case *block.ParallelComposition:
		return nary(block.KindParallel, node.Name(),
			hierarchyPass(node.Left), hierarchyPass(node.Right))

	case *block.FeedbackLoop:
		return &HierarchyNode{
			Kind:     block.KindFeedback,
			Name:     node.Name(),
			Children: []*HierarchyNode{hierarchyPass(node.Inner)},
		}

	case *block.TemporalLoop:
		return &HierarchyNode{
			Kind:     block.KindTemporal,
			Name:     node.Name(),
			Children: []*HierarchyNode{hierarchyPass(node.Inner)},
		}
	}
	return nil
}

// nary merges a child of the same kind into its parent, so a>>b>>c reads
// as one three-way stack rather than nested pairs.
func nary(kind block.Kind, name string, children ...*HierarchyNode) *HierarchyNode {
	node := &HierarchyNode{Kind: kind, Name: name}
	for _, child := range children {
		if child.Kind == kind && len(child.Children) > 1 {
			node.Children = append(node.Children, child.Children...)
		} else {
			node.Children = append(node.Children, child)
		}
	}
	return node
}
