package verify

import (
	"strings"

	"godyn/domain/block"
	"godyn/domain/compiler"
	"godyn/domain/token"
)

func setOf(tokens []string) token.Set {
	s := make(token.Set, len(tokens))
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

func wireName(w compiler.WiringIR) string {
	return w.SourceBlock + "." + w.SourcePort + " -> " + w.TargetBlock + "." + w.TargetPort
}

// domainCodomainCheck requires every covariant wiring's label to be a
// token subset of the source's forward_out or the target's forward_in.
func domainCodomainCheck() GenericCheck {
	const id = "domain_codomain_match"
	return GenericCheck{ID: id, Run: func(ir *compiler.SystemIR) []Finding {
		var findings []Finding
		for _, w := range ir.Wirings {
			if w.Direction != block.Covariant {
				continue
			}
			src, srcOK := ir.BlockByName(w.SourceBlock)
			dst, dstOK := ir.BlockByName(w.TargetBlock)
			if !srcOK || !dstOK {
				// Dangling endpoints are a separate check's concern.
				continue
			}
			label := setOf(w.Label)
			if token.Subset(label, setOf(src.ForwardOut)) || token.Subset(label, setOf(dst.ForwardIn)) {
				continue
			}
			findings = append(findings, fail(id, SeverityError,
				[]string{w.SourceBlock, w.TargetBlock},
				"wiring %s label %v matches neither source forward_out nor target forward_in",
				wireName(w), w.Label))
		}
		if len(findings) == 0 {
			findings = append(findings, pass(id, "all covariant wiring labels match an endpoint signature"))
		}
		return findings
	}}
}

// signatureCompletenessCheck requires at least one populated input slot
// and one populated output slot per block. Boundary and terminal blocks
// legitimately fail; the check still emits and callers filter.
func signatureCompletenessCheck() GenericCheck {
	const id = "signature_completeness"
	return GenericCheck{ID: id, Run: func(ir *compiler.SystemIR) []Finding {
		var findings []Finding
		for _, b := range ir.Blocks {
			hasInput := len(b.ForwardIn) > 0 || len(b.BackwardIn) > 0
			hasOutput := len(b.ForwardOut) > 0 || len(b.BackwardOut) > 0
			if hasInput && hasOutput {
				continue
			}
			var missing []string
			if !hasInput {
				missing = append(missing, "input")
			}
			if !hasOutput {
				missing = append(missing, "output")
			}
			findings = append(findings, fail(id, SeverityWarning,
				[]string{b.Name},
				"block %q has no populated %s slot", b.Name, strings.Join(missing, " or ")))
		}
		if len(findings) == 0 {
			findings = append(findings, pass(id, "every block exposes at least one input and one output slot"))
		}
		return findings
	}}
}

// directionConsistencyCheck flags contradictory wiring flags and checks
// contravariant labels against the backward signature groups.
func directionConsistencyCheck() GenericCheck {
	const id = "direction_consistency"
	return GenericCheck{ID: id, Run: func(ir *compiler.SystemIR) []Finding {
		var findings []Finding
		for _, w := range ir.Wirings {
			if w.Direction == block.Covariant && w.IsFeedback {
				findings = append(findings, fail(id, SeverityError,
					[]string{w.SourceBlock, w.TargetBlock},
					"wiring %s is covariant but flagged as feedback", wireName(w)))
				continue
			}
			if w.Direction == block.Contravariant && w.IsTemporal {
				findings = append(findings, fail(id, SeverityError,
					[]string{w.SourceBlock, w.TargetBlock},
					"wiring %s is contravariant but flagged as temporal", wireName(w)))
				continue
			}
			if w.Direction != block.Contravariant {
				continue
			}
			src, srcOK := ir.BlockByName(w.SourceBlock)
			dst, dstOK := ir.BlockByName(w.TargetBlock)
			if !srcOK || !dstOK {
				continue
			}
			srcOut := setOf(src.BackwardOut)
			dstIn := setOf(dst.BackwardIn)
			if len(srcOut) == 0 && len(dstIn) == 0 {
				findings = append(findings, fail(id, SeverityError,
					[]string{w.SourceBlock, w.TargetBlock},
					"contravariant wiring %s connects two empty backward signatures", wireName(w)))
				continue
			}
			label := setOf(w.Label)
			if !token.Subset(label, srcOut) && !token.Subset(label, dstIn) {
				findings = append(findings, fail(id, SeverityError,
					[]string{w.SourceBlock, w.TargetBlock},
					"contravariant wiring %s label %v matches neither backward_out nor backward_in",
					wireName(w), w.Label))
			}
		}
		if len(findings) == 0 {
			findings = append(findings, pass(id, "all wiring directions and flags are consistent"))
		}
		return findings
	}}
}

// danglingWiringCheck requires every wiring endpoint to name a compiled
// block or a declared system input.
func danglingWiringCheck() GenericCheck {
	const id = "dangling_wiring"
	return GenericCheck{ID: id, Run: func(ir *compiler.SystemIR) []Finding {
		var findings []Finding
		known := func(name string) bool {
			if _, ok := ir.BlockByName(name); ok {
				return true
			}
			return ir.HasInput(name)
		}
		for _, w := range ir.Wirings {
			if !known(w.SourceBlock) {
				findings = append(findings, fail(id, SeverityError,
					[]string{w.SourceBlock},
					"wiring %s names unknown source %q", wireName(w), w.SourceBlock))
			}
			if !known(w.TargetBlock) {
				findings = append(findings, fail(id, SeverityError,
					[]string{w.TargetBlock},
					"wiring %s names unknown target %q", wireName(w), w.TargetBlock))
			}
		}
		if len(findings) == 0 {
			findings = append(findings, pass(id, "every wiring endpoint names a known block or declared input"))
		}
		return findings
	}}
}

// sequentialCompatibilityCheck is the strict form for stack wirings:
// the label must subset BOTH the source forward_out AND the target
// forward_in.
func sequentialCompatibilityCheck() GenericCheck {
	const id = "sequential_type_compatibility"
	return GenericCheck{ID: id, Run: func(ir *compiler.SystemIR) []Finding {
		var findings []Finding
		for _, w := range ir.Wirings {
			if w.Origin != compiler.OriginAuto && w.Origin != compiler.OriginExplicit {
				continue
			}
			src, srcOK := ir.BlockByName(w.SourceBlock)
			dst, dstOK := ir.BlockByName(w.TargetBlock)
			if !srcOK || !dstOK {
				continue
			}
			label := setOf(w.Label)
			if token.Subset(label, setOf(src.ForwardOut)) && token.Subset(label, setOf(dst.ForwardIn)) {
				continue
			}
			findings = append(findings, fail(id, SeverityError,
				[]string{w.SourceBlock, w.TargetBlock},
				"stack wiring %s label %v is not carried by both endpoint signatures",
				wireName(w), w.Label))
		}
		if len(findings) == 0 {
			findings = append(findings, pass(id, "all stack wirings type-match both endpoints"))
		}
		return findings
	}}
}
