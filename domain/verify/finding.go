package verify

import (
	"fmt"

	"godyn/domain/core"
)

// Severity grades a finding. Only ERROR findings signal callers to
// block downstream use; WARNING and INFO exist for contextual judgement.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
	SeverityInfo    Severity = "INFO"
)

// Finding is one accumulated verification result. Checks never raise:
// every problem becomes a finding so a single pass reports all of them.
type Finding struct {
	CheckID        string   `json:"check_id" yaml:"check_id"`
	Severity       Severity `json:"severity" yaml:"severity"`
	Message        string   `json:"message" yaml:"message"`
	SourceElements []string `json:"source_elements,omitempty" yaml:"source_elements,omitempty"`
	Passed         bool     `json:"passed" yaml:"passed"`
}

func pass(checkID, format string, args ...any) Finding {
	return Finding{
		CheckID:  checkID,
		Severity: SeverityInfo,
		Message:  fmt.Sprintf(format, args...),
		Passed:   true,
	}
}

func fail(checkID string, severity Severity, elements []string, format string, args ...any) Finding {
	return Finding{
		CheckID:        checkID,
		Severity:       severity,
		Message:        fmt.Sprintf(format, args...),
		SourceElements: elements,
		Passed:         false,
	}
}

// Report aggregates findings from any number of checks with derived
// counts. Findings from independent checks are order-independent; the
// counts do not change under reordering.
type Report struct {
	ID        core.ReportID  `json:"id" yaml:"id"`
	CreatedAt core.Timestamp `json:"-" yaml:"-"`
	Findings  []Finding      `json:"findings" yaml:"findings"`
	Errors    int            `json:"errors" yaml:"errors"`
	Warnings  int            `json:"warnings" yaml:"warnings"`
	Infos     int            `json:"infos" yaml:"infos"`
	Failed    int            `json:"failed" yaml:"failed"`
}

// NewReport builds a report with derived counts.
func NewReport(findings []Finding) *Report {
	r := &Report{
		ID:        core.NewReportID(),
		CreatedAt: core.Now(),
		Findings:  findings,
	}
	for _, f := range findings {
		switch f.Severity {
		case SeverityError:
			r.Errors++
		case SeverityWarning:
			r.Warnings++
		case SeverityInfo:
			r.Infos++
		}
		if !f.Passed {
			r.Failed++
		}
	}
	return r
}

// HasErrors reports whether any ERROR-severity finding is present: the
// caller's signal to block downstream use.
func (r *Report) HasErrors() bool {
	return r.Errors > 0
}

// Filter returns a new report keeping only findings the predicate
// admits. Counts are re-derived. Callers use this to drop, for example,
// signature-completeness findings on boundary blocks.
func (r *Report) Filter(keep func(Finding) bool) *Report {
	var kept []Finding
	for _, f := range r.Findings {
		if keep(f) {
			kept = append(kept, f)
		}
	}
	return NewReport(kept)
}

// ByCheck returns the findings one check produced.
func (r *Report) ByCheck(checkID string) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.CheckID == checkID {
			out = append(out, f)
		}
	}
	return out
}
