package canonical

import (
	"reflect"
	"testing"

	"godyn/domain/block"
	"godyn/domain/schema"
	"godyn/domain/spec"
)

func buildEpidemicSpec(t *testing.T) *spec.GDSSpec {
	t.Helper()
	s := spec.New("sir_model")

	count, err := schema.NewTypeDef("Count", schema.PrimitiveFloat)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.RegisterType(count); err != nil {
		t.Fatal(err)
	}

	population, err := schema.NewEntity("Population",
		schema.StateVariable{Name: "susceptible", Type: count},
		schema.StateVariable{Name: "infected", Type: count},
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.RegisterEntity(population); err != nil {
		t.Fatal(err)
	}

	seed, err := block.NewAtomic("imported cases", block.Interface{
		ForwardOut: block.Ports("case imports"),
	})
	if err != nil {
		t.Fatal(err)
	}
	ba, err := block.NewBoundaryAction(seed)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.RegisterBlock(ba); err != nil {
		t.Fatal(err)
	}

	distancing, err := block.NewAtomic("distancing policy", block.Interface{
		ForwardIn:  block.Ports("infected count"),
		ForwardOut: block.Ports("contact rate"),
	})
	if err != nil {
		t.Fatal(err)
	}
	pol, err := block.NewPolicy(distancing, "r0")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.RegisterBlock(pol); err != nil {
		t.Fatal(err)
	}

	transmission, err := block.NewAtomic("transmission step", block.Interface{
		ForwardIn: block.Ports("contact rate", "case imports"),
	})
	if err != nil {
		t.Fatal(err)
	}
	mech, err := block.NewMechanism(transmission, []block.UpdateTarget{
		{Entity: "Population", Variable: "susceptible"},
		{Entity: "Population", Variable: "infected"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.RegisterBlock(mech); err != nil {
		t.Fatal(err)
	}

	capacity, err := block.NewAtomic("hospital capacity", block.Interface{
		ForwardIn: block.Ports("infected count"),
	})
	if err != nil {
		t.Fatal(err)
	}
	ctrl, err := block.NewControlAction(capacity)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.RegisterBlock(ctrl); err != nil {
		t.Fatal(err)
	}

	if err := s.RegisterParameter("r0", count); err != nil {
		t.Fatal(err)
	}
	s.Seal()
	return s
}

func TestProjectClassification(t *testing.T) {
	s := buildEpidemicSpec(t)
	c := Project(s)

	wantState := []string{"Population.susceptible", "Population.infected"}
	if !reflect.DeepEqual(c.StateVariables, wantState) {
		t.Errorf("State variables: expected %v, got %v", wantState, c.StateVariables)
	}
	if !reflect.DeepEqual(c.InputPorts, []string{"case imports"}) {
		t.Errorf("Input ports: got %v", c.InputPorts)
	}
	if !reflect.DeepEqual(c.DecisionPorts, []string{"contact rate"}) {
		t.Errorf("Decision ports: got %v", c.DecisionPorts)
	}
	if !reflect.DeepEqual(c.PolicyBlocks, []string{"distancing policy"}) {
		t.Errorf("Policy blocks: got %v", c.PolicyBlocks)
	}
	if !reflect.DeepEqual(c.MechanismBlocks, []string{"transmission step"}) {
		t.Errorf("Mechanism blocks: got %v", c.MechanismBlocks)
	}
	// Control actions are carried but sit outside h = f∘g.
	if !reflect.DeepEqual(c.ControlBlocks, []string{"hospital capacity"}) {
		t.Errorf("Control blocks: got %v", c.ControlBlocks)
	}
	if c.ParameterSchema["r0"] != "Count" {
		t.Errorf("Parameter schema: got %v", c.ParameterSchema)
	}
	if !c.WellFormed() {
		t.Error("Expected a well-formed decomposition")
	}
}

func TestProjectIdempotence(t *testing.T) {
	s := buildEpidemicSpec(t)

	first := Project(s)
	second := Project(s)
	if !reflect.DeepEqual(first, second) {
		t.Error("Projecting the same registry twice must yield structurally equal records")
	}
}

func TestProjectEmptySpec(t *testing.T) {
	c := Project(spec.New("empty"))
	if c.WellFormed() {
		t.Error("Empty spec must not project to a well-formed decomposition")
	}
	if len(c.StateVariables) != 0 || len(c.MechanismBlocks) != 0 {
		t.Error("Expected empty collections")
	}
}
