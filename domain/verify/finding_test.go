package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCounts(t *testing.T) {
	findings := []Finding{
		fail("check_a", SeverityError, []string{"A"}, "broken"),
		fail("check_a", SeverityWarning, []string{"B"}, "suspicious"),
		pass("check_b", "fine"),
		pass("check_c", "also fine"),
	}

	report := NewReport(findings)
	require.NotNil(t, report)

	assert.Equal(t, 1, report.Errors)
	assert.Equal(t, 1, report.Warnings)
	assert.Equal(t, 2, report.Infos)
	assert.Equal(t, 2, report.Failed)
	assert.True(t, report.HasErrors())
	assert.False(t, report.ID.String() == "")
}

func TestReportFindingsOrderIndependent(t *testing.T) {
	forward := []Finding{
		fail("check_a", SeverityError, nil, "broken"),
		pass("check_b", "fine"),
	}
	reversed := []Finding{forward[1], forward[0]}

	a := NewReport(forward)
	b := NewReport(reversed)

	assert.Equal(t, a.Errors, b.Errors)
	assert.Equal(t, a.Failed, b.Failed)
	assert.Equal(t, a.Infos, b.Infos)
}

func TestReportByCheck(t *testing.T) {
	report := NewReport([]Finding{
		fail("check_a", SeverityError, nil, "broken"),
		pass("check_b", "fine"),
		fail("check_a", SeverityError, nil, "also broken"),
	})

	got := report.ByCheck("check_a")
	require.Len(t, got, 2)
	assert.Equal(t, "broken", got[0].Message)
}
