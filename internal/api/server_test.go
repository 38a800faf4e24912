package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"godyn/app"
	"godyn/domain/verify"
	"godyn/internal"
	"godyn/internal/config"
	"godyn/internal/testkit"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	demo, err := testkit.NewThermostat()
	if err != nil {
		t.Fatalf("building demo spec: %v", err)
	}

	logger := internal.NewLogger(internal.LogLevelError)
	service := app.NewVerificationService(verify.DefaultRegistry(), logger)
	result, err := service.Verify(context.Background(), app.VerificationRequest{
		Name: "thermostat",
		Root: demo.Root,
		Spec: demo.Spec,
	})
	if err != nil {
		t.Fatalf("verification failed: %v", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0"},
		Verify: config.VerifyConfig{FilterBoundary: true},
	}
	return NewServer(cfg, logger, demo.Spec, result)
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	rec := get(t, newTestServer(t), "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Response does not parse: %v", err)
	}
	if body["sealed"] != true {
		t.Error("Expected the served spec to be sealed")
	}
}

func TestSpecEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/spec")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("Export JSON does not parse: %v", err)
	}
	if doc["name"] != "thermostat" {
		t.Errorf("Unexpected spec name %v", doc["name"])
	}

	rec = get(t, s, "/api/spec?format=yaml")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 for YAML, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/yaml" {
		t.Errorf("Expected YAML content type, got %q", ct)
	}
}

func TestReportEndpointFiltersBoundaryFindings(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/report")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body struct {
		Report   verify.Report `json:"report"`
		Blocking bool          `json:"blocking"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Response does not parse: %v", err)
	}
	if body.Blocking {
		t.Error("Demo spec should not be blocking")
	}
	// The sensor is a pure source; its completeness finding is filtered.
	for _, f := range body.Report.Findings {
		if f.CheckID == "signature_completeness" && !f.Passed {
			t.Errorf("Boundary finding leaked through the filter: %+v", f)
		}
	}
}

func TestIRAndCanonicalEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/ir")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var ir map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &ir); err != nil {
		t.Fatalf("IR JSON does not parse: %v", err)
	}
	if ir["composition_type"] != "temporal_loop" {
		t.Errorf("Unexpected composition type %v", ir["composition_type"])
	}

	rec = get(t, s, "/api/canonical")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var c map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &c); err != nil {
		t.Fatalf("Canonical JSON does not parse: %v", err)
	}
	if _, ok := c["state_variables"]; !ok {
		t.Error("Canonical export missing state_variables")
	}
}
