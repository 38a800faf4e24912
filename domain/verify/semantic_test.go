package verify

import (
	"reflect"
	"testing"

	"godyn/domain/block"
	"godyn/domain/schema"
	"godyn/domain/spec"
)

func mustRegister(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}
}

func mechanism(t *testing.T, name string, updates ...block.UpdateTarget) *block.RoleBlock {
	t.Helper()
	atomic, err := block.NewAtomic(name, block.Interface{
		ForwardIn:  block.Ports("input"),
		ForwardOut: block.Ports("output"),
	})
	if err != nil {
		t.Fatal(err)
	}
	mech, err := block.NewMechanism(atomic, updates)
	if err != nil {
		t.Fatal(err)
	}
	return mech
}

func reservoirSpec(t *testing.T) *spec.GDSSpec {
	t.Helper()
	s := spec.New("reservoir")
	level, err := schema.NewTypeDef("Level", schema.PrimitiveFloat)
	if err != nil {
		t.Fatal(err)
	}
	mustRegister(t, s.RegisterType(level))
	reservoir, err := schema.NewEntity("Reservoir",
		schema.StateVariable{Name: "level", Type: level})
	if err != nil {
		t.Fatal(err)
	}
	mustRegister(t, s.RegisterEntity(reservoir))
	return s
}

func TestCompletenessOrphanVariable(t *testing.T) {
	// Scenario: Reservoir.level with zero mechanisms naming it.
	s := reservoirSpec(t)

	findings := completenessCheck().Run(s)
	if len(findings) != 1 {
		t.Fatalf("Expected exactly one completeness finding, got %+v", findings)
	}

	f := findings[0]
	if f.Severity != SeverityWarning || f.Passed {
		t.Errorf("Expected a failed WARNING, got %+v", f)
	}
	if !reflect.DeepEqual(f.SourceElements, []string{"Reservoir.level"}) {
		t.Errorf("Expected source elements [Reservoir.level], got %v", f.SourceElements)
	}
}

func TestCompletenessSatisfied(t *testing.T) {
	s := reservoirSpec(t)
	mustRegister(t, s.RegisterBlock(mechanism(t, "drain step",
		block.UpdateTarget{Entity: "Reservoir", Variable: "level"})))

	findings := completenessCheck().Run(s)
	if len(findings) != 1 || !findings[0].Passed {
		t.Fatalf("Expected one passed finding, got %+v", findings)
	}
}

func TestDeterminismWriteConflict(t *testing.T) {
	s := reservoirSpec(t)

	fill := mechanism(t, "fill step", block.UpdateTarget{Entity: "Reservoir", Variable: "level"})
	drain := mechanism(t, "drain step", block.UpdateTarget{Entity: "Reservoir", Variable: "level"})
	mustRegister(t, s.RegisterBlock(fill))
	mustRegister(t, s.RegisterBlock(drain))
	mustRegister(t, s.RegisterWiring("main", []block.Wiring{
		block.NewWiring("fill step", "output", "drain step", "input"),
	}))

	findings := determinismCheck().Run(s)
	if len(findings) != 1 {
		t.Fatalf("Expected exactly one conflict finding, got %+v", findings)
	}

	f := findings[0]
	if f.Severity != SeverityError || f.Passed {
		t.Errorf("Expected a failed ERROR, got %+v", f)
	}
	// Names both mechanisms and the variable.
	want := map[string]bool{"fill step": true, "drain step": true, "Reservoir.level": true}
	for _, el := range f.SourceElements {
		delete(want, el)
	}
	if len(want) != 0 {
		t.Errorf("Finding missing elements %v, got %v", want, f.SourceElements)
	}
}

func TestDeterminismNoConflictAcrossGroups(t *testing.T) {
	// Two writers of the same variable in different wiring groups do
	// not conflict.
	s := reservoirSpec(t)

	fill := mechanism(t, "fill step", block.UpdateTarget{Entity: "Reservoir", Variable: "level"})
	drain := mechanism(t, "drain step", block.UpdateTarget{Entity: "Reservoir", Variable: "level"})
	observer := mechanism(t, "observer")
	mustRegister(t, s.RegisterBlock(fill))
	mustRegister(t, s.RegisterBlock(drain))
	mustRegister(t, s.RegisterBlock(observer))
	mustRegister(t, s.RegisterWiring("fill path", []block.Wiring{
		block.NewWiring("fill step", "output", "observer", "input"),
	}))
	mustRegister(t, s.RegisterWiring("drain path", []block.Wiring{
		block.NewWiring("drain step", "output", "observer", "input"),
	}))

	findings := determinismCheck().Run(s)
	if len(findings) != 1 || !findings[0].Passed {
		t.Fatalf("Expected one passed finding, got %+v", findings)
	}
}

func TestSpaceReferenceCheck(t *testing.T) {
	s := reservoirSpec(t)
	fill := mechanism(t, "fill step", block.UpdateTarget{Entity: "Reservoir", Variable: "level"})
	drain := mechanism(t, "drain step")
	mustRegister(t, s.RegisterBlock(fill))
	mustRegister(t, s.RegisterBlock(drain))

	w := block.NewWiring("fill step", "output", "drain step", "input")
	w.Space = "FlowSpace"
	mustRegister(t, s.RegisterWiring("main", []block.Wiring{w}))

	findings := spaceReferenceCheck().Run(s)
	if len(findings) != 1 || findings[0].Passed {
		t.Fatalf("Expected a failed finding for unknown space, got %+v", findings)
	}

	// Register the space and re-run.
	level, _ := s.Type("Level")
	flowSpace, err := schema.NewSpace("FlowSpace", schema.Field{Name: "rate", Type: level})
	if err != nil {
		t.Fatal(err)
	}
	mustRegister(t, s.RegisterSpace(flowSpace))

	findings = spaceReferenceCheck().Run(s)
	if len(findings) != 1 || !findings[0].Passed {
		t.Fatalf("Expected a passed finding, got %+v", findings)
	}
}

func TestParameterReferenceCheck(t *testing.T) {
	s := reservoirSpec(t)

	atomic, err := block.NewAtomic("inflow policy", block.Interface{
		ForwardIn:  block.Ports("level"),
		ForwardOut: block.Ports("command"),
	})
	if err != nil {
		t.Fatal(err)
	}
	pol, err := block.NewPolicy(atomic, "max_inflow")
	if err != nil {
		t.Fatal(err)
	}
	mustRegister(t, s.RegisterBlock(pol))

	findings := parameterReferenceCheck().Run(s)
	if len(findings) != 1 || findings[0].Passed {
		t.Fatalf("Expected a failed finding for unregistered parameter, got %+v", findings)
	}

	level, _ := s.Type("Level")
	mustRegister(t, s.RegisterParameter("max_inflow", level))

	findings = parameterReferenceCheck().Run(s)
	if len(findings) != 1 || !findings[0].Passed {
		t.Fatalf("Expected a passed finding, got %+v", findings)
	}
}

func TestCanonicalWellFormednessWarnings(t *testing.T) {
	empty := spec.New("empty")
	findings := canonicalWellFormednessCheck().Run(empty)
	if len(findings) != 2 {
		t.Fatalf("Expected warnings for empty f and empty X, got %+v", findings)
	}
	for _, f := range findings {
		if f.Severity != SeverityWarning || f.Passed {
			t.Errorf("Expected failed WARNING, got %+v", f)
		}
	}

	s := reservoirSpec(t)
	mustRegister(t, s.RegisterBlock(mechanism(t, "drain step",
		block.UpdateTarget{Entity: "Reservoir", Variable: "level"})))
	findings = canonicalWellFormednessCheck().Run(s)
	if len(findings) != 1 || !findings[0].Passed {
		t.Fatalf("Expected one passed finding, got %+v", findings)
	}
}

func TestReachabilityCheck(t *testing.T) {
	s := reservoirSpec(t)
	a := mechanism(t, "a")
	b := mechanism(t, "b")
	c := mechanism(t, "c")
	mustRegister(t, s.RegisterBlock(a))
	mustRegister(t, s.RegisterBlock(b))
	mustRegister(t, s.RegisterBlock(c))
	mustRegister(t, s.RegisterWiring("chain", []block.Wiring{
		block.NewWiring("a", "output", "b", "input"),
		block.NewWiring("b", "output", "c", "input"),
	}))

	findings := ReachabilityCheck("a", "c").Run(s)
	if len(findings) != 1 || !findings[0].Passed {
		t.Fatalf("Expected a to reach c, got %+v", findings)
	}

	findings = ReachabilityCheck("c", "a").Run(s)
	if len(findings) != 1 || findings[0].Passed {
		t.Fatalf("Expected c not to reach a, got %+v", findings)
	}

	findings = ReachabilityCheck("a", "ghost").Run(s)
	if len(findings) != 1 || findings[0].Severity != SeverityError {
		t.Fatalf("Expected an error for an unknown query block, got %+v", findings)
	}
}

func TestVerifySpecAggregation(t *testing.T) {
	s := reservoirSpec(t)
	mustRegister(t, s.RegisterBlock(mechanism(t, "drain step",
		block.UpdateTarget{Entity: "Reservoir", Variable: "level"})))
	s.Seal()

	report := DefaultRegistry().VerifySpec(s)
	if report.HasErrors() {
		t.Errorf("Did not expect errors: %+v", report.Findings)
	}
	if report.Failed != 0 {
		t.Errorf("Did not expect failed findings: %+v", report.Findings)
	}
}
