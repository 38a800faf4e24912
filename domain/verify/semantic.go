package verify

import (
	"godyn/domain/block"
	"godyn/domain/canonical"
	"godyn/domain/schema"
	"godyn/domain/spec"
)

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// completenessCheck warns for every declared state variable no
// mechanism updates: orphan state can never evolve.
func completenessCheck() SemanticCheck {
	const id = "state_completeness"
	return SemanticCheck{ID: id, Run: func(s *spec.GDSSpec) []Finding {
		updated := make(map[string]bool)
		for _, rb := range s.Blocks() {
			if rb.Role != block.RoleMechanism {
				continue
			}
			for _, u := range rb.Updates {
				updated[u.Key()] = true
			}
		}

		var findings []Finding
		for _, e := range s.Entities() {
			for _, v := range e.Variables {
				key := schema.VariableKey(e.Name, v.Name)
				if updated[key] {
					continue
				}
				findings = append(findings, fail(id, SeverityWarning,
					[]string{key},
					"state variable %s is updated by no mechanism", key))
			}
		}
		if len(findings) == 0 {
			findings = append(findings, pass(id, "every state variable has an updating mechanism"))
		}
		return findings
	}}
}

// determinismCheck reports a write conflict when two mechanisms inside
// one named wiring group both update the same state variable.
func determinismCheck() SemanticCheck {
	const id = "update_determinism"
	return SemanticCheck{ID: id, Run: func(s *spec.GDSSpec) []Finding {
		var findings []Finding

		for _, groupName := range s.WiringGroupNames() {
			group, _ := s.WiringGroup(groupName)

			// Mechanisms participating in this group, in first-seen order.
			var members []*block.RoleBlock
			seen := make(map[string]bool)
			addMember := func(name string) {
				if seen[name] {
					return
				}
				seen[name] = true
				if rb, ok := s.Block(name); ok && rb.Role == block.RoleMechanism {
					members = append(members, rb)
				}
			}
			for _, w := range group {
				addMember(w.SourceBlock)
				addMember(w.TargetBlock)
			}

			writers := make(map[string][]string)
			for _, rb := range members {
				for _, u := range rb.Updates {
					if !contains(writers[u.Key()], rb.Name()) {
						writers[u.Key()] = append(writers[u.Key()], rb.Name())
					}
				}
			}
			reported := make(map[string]bool)
			for _, rb := range members {
				for _, u := range rb.Updates {
					names := writers[u.Key()]
					if len(names) < 2 || reported[u.Key()] {
						continue
					}
					reported[u.Key()] = true
					findings = append(findings, fail(id, SeverityError,
						append(append([]string{}, names...), u.Key()),
						"wiring group %q: mechanisms %v all update %s",
						groupName, names, u.Key()))
				}
			}
		}

		if len(findings) == 0 {
			findings = append(findings, pass(id, "no state variable has two writers in any wiring group"))
		}
		return findings
	}}
}

// spaceReferenceCheck requires every wire naming a space to name a
// registered one.
func spaceReferenceCheck() SemanticCheck {
	const id = "space_references"
	return SemanticCheck{ID: id, Run: func(s *spec.GDSSpec) []Finding {
		var findings []Finding
		for _, groupName := range s.WiringGroupNames() {
			group, _ := s.WiringGroup(groupName)
			for _, w := range group {
				if w.Space == "" {
					continue
				}
				if _, ok := s.Space(w.Space); !ok {
					findings = append(findings, fail(id, SeverityError,
						[]string{w.SourceBlock, w.TargetBlock},
						"wiring group %q: wire %s.%s -> %s.%s names unregistered space %q",
						groupName, w.SourceBlock, w.SourcePort, w.TargetBlock, w.TargetPort, w.Space))
				}
			}
		}
		if len(findings) == 0 {
			findings = append(findings, pass(id, "every wire-level space reference resolves"))
		}
		return findings
	}}
}

// parameterReferenceCheck requires every params_used entry to name a
// registered parameter.
func parameterReferenceCheck() SemanticCheck {
	const id = "parameter_references"
	return SemanticCheck{ID: id, Run: func(s *spec.GDSSpec) []Finding {
		var findings []Finding
		for _, rb := range s.Blocks() {
			for _, param := range rb.ParamsUsed {
				if _, ok := s.Parameter(param); !ok {
					findings = append(findings, fail(id, SeverityError,
						[]string{rb.Name(), param},
						"block %q uses unregistered parameter %q", rb.Name(), param))
				}
			}
		}
		if len(findings) == 0 {
			findings = append(findings, pass(id, "every parameter reference resolves"))
		}
		return findings
	}}
}

// canonicalWellFormednessCheck warns when the projected decomposition
// is degenerate: no mechanisms means no state-update map f, no state
// variables means no state space X.
func canonicalWellFormednessCheck() SemanticCheck {
	const id = "canonical_well_formedness"
	return SemanticCheck{ID: id, Run: func(s *spec.GDSSpec) []Finding {
		c := canonical.Project(s)

		var findings []Finding
		if len(c.MechanismBlocks) == 0 {
			findings = append(findings, fail(id, SeverityWarning, nil,
				"no mechanisms registered: the state-update map f is empty"))
		}
		if len(c.StateVariables) == 0 {
			findings = append(findings, fail(id, SeverityWarning, nil,
				"no state variables registered: the state space X is empty"))
		}
		if len(findings) == 0 {
			findings = append(findings, pass(id, "canonical decomposition h = f∘g is well formed"))
		}
		return findings
	}}
}
