package app

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"godyn/domain/block"
	"godyn/domain/canonical"
	"godyn/domain/compiler"
	"godyn/domain/spec"
	"godyn/domain/verify"
	"godyn/internal"
	apperrors "godyn/internal/errors"
)

// VerificationService runs the full pipeline over one specification:
// compile the composition tree, fan the checks out, project the
// canonical decomposition, and aggregate one report.
type VerificationService struct {
	registry *verify.Registry
	logger   *internal.Logger
}

// VerificationRequest defines the inputs of one run.
type VerificationRequest struct {
	Name string
	Root block.Block
	Spec *spec.GDSSpec
	// CompileOptions forwards compiler callbacks and declared inputs.
	CompileOptions []compiler.Option
}

// VerificationResult bundles the run outputs. The IR and canonical
// record are immutable snapshots; re-running yields structurally equal
// values for the same inputs.
type VerificationResult struct {
	IR        *compiler.SystemIR
	Report    *verify.Report
	Canonical canonical.CanonicalGDS
	RuntimeMs int64
}

// NewVerificationService creates a verification service.
func NewVerificationService(registry *verify.Registry, logger *internal.Logger) *VerificationService {
	return &VerificationService{registry: registry, logger: logger}
}

// Verify compiles and checks one specification. The spec must be sealed
// first: checks read it concurrently and registration must not race
// them. Check findings are order-independent, so the parallel fan-out
// cannot change the aggregate report.
func (s *VerificationService) Verify(ctx context.Context, req VerificationRequest) (*VerificationResult, error) {
	if req.Root == nil {
		return nil, apperrors.New("INVALID_REQUEST", "verification request needs a composition root")
	}
	if req.Spec == nil {
		return nil, apperrors.New("INVALID_REQUEST", "verification request needs a spec registry")
	}
	if !req.Spec.Sealed() {
		return nil, apperrors.New("SPEC_UNSEALED", "spec must be sealed before verification")
	}

	start := time.Now()
	ir := compiler.Compile(req.Name, req.Root, req.CompileOptions...)

	generic := s.registry.GenericChecks()
	semantic := s.registry.SemanticChecks()
	results := make([][]verify.Finding, len(generic)+len(semantic))

	g, ctx := errgroup.WithContext(ctx)
	for i, check := range generic {
		i, check := i, check
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = check.Run(ir)
			return nil
		})
	}
	for i, check := range semantic {
		check := check
		slot := len(generic) + i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[slot] = check.Run(req.Spec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperrors.Wrap(err, "verification run interrupted")
	}

	var findings []verify.Finding
	for _, r := range results {
		findings = append(findings, r...)
	}
	report := verify.NewReport(findings)

	result := &VerificationResult{
		IR:        ir,
		Report:    report,
		Canonical: canonical.Project(req.Spec),
		RuntimeMs: time.Since(start).Milliseconds(),
	}

	s.logger.Info("verified %q: %d findings, %d errors, %d warnings",
		req.Name, len(report.Findings), report.Errors, report.Warnings)
	if report.HasErrors() {
		s.logger.Warn("spec %q has blocking errors", req.Spec.Name())
	}

	return result, nil
}
