package app

import (
	"context"
	"reflect"
	"testing"

	"godyn/domain/spec"
	"godyn/domain/verify"
	"godyn/internal"
	"godyn/internal/testkit"
)

func newService() *VerificationService {
	return NewVerificationService(verify.DefaultRegistry(), internal.NewLogger(internal.LogLevelError))
}

func TestVerifyThermostat(t *testing.T) {
	demo, err := testkit.NewThermostat()
	if err != nil {
		t.Fatalf("building demo spec: %v", err)
	}

	result, err := newService().Verify(context.Background(), VerificationRequest{
		Name: "thermostat",
		Root: demo.Root,
		Spec: demo.Spec,
	})
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if result.Report.HasErrors() {
		t.Errorf("Demo spec should verify clean, got: %+v", result.Report.Findings)
	}
	if len(result.IR.Blocks) != 3 {
		t.Errorf("Expected 3 compiled blocks, got %d", len(result.IR.Blocks))
	}
	if !result.Canonical.WellFormed() {
		t.Error("Expected a well-formed canonical decomposition")
	}
	if !reflect.DeepEqual(result.Canonical.MechanismBlocks, []string{"heater"}) {
		t.Errorf("Unexpected mechanisms: %v", result.Canonical.MechanismBlocks)
	}
}

func TestVerifyRequiresSealedSpec(t *testing.T) {
	demo, err := testkit.NewThermostat()
	if err != nil {
		t.Fatal(err)
	}

	unsealed := spec.New("draft")
	_, err = newService().Verify(context.Background(), VerificationRequest{
		Name: "draft",
		Root: demo.Root,
		Spec: unsealed,
	})
	if err == nil {
		t.Fatal("Expected an error for an unsealed spec")
	}
}

func TestVerifyDeterministic(t *testing.T) {
	demo, err := testkit.NewThermostat()
	if err != nil {
		t.Fatal(err)
	}

	svc := newService()
	req := VerificationRequest{Name: "thermostat", Root: demo.Root, Spec: demo.Spec}

	first, err := svc.Verify(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Verify(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first.IR, second.IR) {
		t.Error("Recompiling the same tree must yield structurally equal IR")
	}
	if !reflect.DeepEqual(first.Canonical, second.Canonical) {
		t.Error("Re-projecting the same spec must yield structurally equal records")
	}
	// The parallel fan-out must not change the aggregate counts.
	if first.Report.Errors != second.Report.Errors ||
		first.Report.Warnings != second.Report.Warnings ||
		first.Report.Failed != second.Report.Failed {
		t.Error("Aggregate report counts must be run-independent")
	}
}
