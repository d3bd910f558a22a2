package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepResult_Table(t *testing.T) {
	res := StepResult{Step: "networking", Verdict: VerdictNotReady}
	assert.Equal(t, [][]string{{"networking", "not-ready", "-", "-", "-", "-", "-", "-"}}, res.TableRows())

	res.Findings = []Finding{
		{Source: SourceHost, HostID: "h1", Hostname: "master-0", Kind: FindingFailure, ID: "mtu-valid", Status: "failure"},
		{Source: SourceCluster, Kind: FindingMissing, ID: "ntp-server-configured", Soft: true},
	}
	rows := res.TableRows()
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Len(t, row, len(res.TableHeader()))
	}
	assert.Equal(t, "master-0", rows[0][3])
	assert.Equal(t, "-", rows[1][3])
	assert.Equal(t, "true", rows[1][7])
}

func TestReport_Table(t *testing.T) {
	r := Report{Steps: []StepResult{
		{Step: "cluster-details", Title: "Cluster details", Verdict: VerdictReady, Severity: SeverityOK},
		{Step: "networking", Title: "Networking", Verdict: VerdictNotReady, Severity: SeverityDanger, Findings: []Finding{
			{Kind: FindingFailure},
			{Kind: FindingFailure, Soft: true},
		}},
	}}

	assert.Equal(t, [][]string{
		{"cluster-details", "Cluster details", "ready", "ok", "false", "0"},
		{"networking", "Networking", "not-ready", "danger", "false", "1"},
	}, r.TableRows())
}
