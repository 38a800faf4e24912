package verify

import (
	"godyn/domain/compiler"
	"godyn/domain/spec"
)

// GenericCheck consumes compiled topology only.
type GenericCheck struct {
	ID  string
	Run func(*compiler.SystemIR) []Finding
}

// SemanticCheck consumes the specification registry.
type SemanticCheck struct {
	ID  string
	Run func(*spec.GDSSpec) []Finding
}

// Registry is an explicit value holding the checks a verification run
// executes. Callers thread it to Verify* rather than relying on hidden
// process-global state; assemble defaults once at startup with
// DefaultRegistry and extend per caller.
type Registry struct {
	generic  []GenericCheck
	semantic []SemanticCheck
}

// NewRegistry creates an empty check registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry assembles the built-in checks.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.AddGeneric(domainCodomainCheck())
	r.AddGeneric(signatureCompletenessCheck())
	r.AddGeneric(directionConsistencyCheck())
	r.AddGeneric(danglingWiringCheck())
	r.AddGeneric(sequentialCompatibilityCheck())
	r.AddGeneric(covariantAcyclicityCheck())
	r.AddGeneric(topologyProfileCheck())
	r.AddSemantic(completenessCheck())
	r.AddSemantic(determinismCheck())
	r.AddSemantic(spaceReferenceCheck())
	r.AddSemantic(parameterReferenceCheck())
	r.AddSemantic(canonicalWellFormednessCheck())
	return r
}

// AddGeneric appends a topology check.
func (r *Registry) AddGeneric(c GenericCheck) {
	r.generic = append(r.generic, c)
}

// AddSemantic appends a registry check.
func (r *Registry) AddSemantic(c SemanticCheck) {
	r.semantic = append(r.semantic, c)
}

// GenericChecks returns the registered topology checks.
func (r *Registry) GenericChecks() []GenericCheck {
	return append([]GenericCheck{}, r.generic...)
}

// SemanticChecks returns the registered registry checks.
func (r *Registry) SemanticChecks() []SemanticCheck {
	return append([]SemanticCheck{}, r.semantic...)
}

// VerifyIR runs every generic check over a compiled system, aggregating
// all findings into one report. Checks are pure; none stops the others.
func (r *Registry) VerifyIR(ir *compiler.SystemIR) *Report {
	var findings []Finding
	for _, c := range r.generic {
		findings = append(findings, c.Run(ir)...)
	}
	return NewReport(findings)
}

// VerifySpec runs every semantic check over a registry.
func (r *Registry) VerifySpec(s *spec.GDSSpec) *Report {
	var findings []Finding
	for _, c := range r.semantic {
		findings = append(findings, c.Run(s)...)
	}
	return NewReport(findings)
}
