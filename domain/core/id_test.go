package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestParseSpecName tests spec name parsing
func TestParseSpecName(t *testing.T) {
	if _, err := ParseSpecName("  "); err == nil {
		t.Error("Expected error for blank spec name")
	}

	name, err := ParseSpecName("thermostat")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if name != SpecName("thermostat") {
		t.Errorf("Expected 'thermostat', got %q", name)
	}
}

// TestErrorClassification tests the error tier helpers
func TestErrorClassification(t *testing.T) {
	if !IsConstructionError(NewTypeMismatchError("a", "b", []string{"x"}, []string{"y"})) {
		t.Error("Type mismatch should classify as construction error")
	}
	if !IsRegistrationError(NewDuplicateNameError("types", "Temp")) {
		t.Error("Duplicate name should classify as registration error")
	}
	if !IsNotFoundError(NewNotFoundError("block", "heater")) {
		t.Error("Not-found constructor should classify as not found")
	}
	if IsConstructionError(NewNotFoundError("block", "heater")) {
		t.Error("Not-found should not classify as construction error")
	}
}
