package gate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshift-assisted/wizard-gate/pkg/stepmap"
	"github.com/openshift-assisted/wizard-gate/pkg/validation"
)

func TestMemo(t *testing.T) {
	g := defaultGate(t)
	memo, err := NewMemo(g, 0)
	require.NoError(t, err)

	host := passingHost("h1", validation.HostStatusKnown)
	cluster := insufficientCluster(hostDiscoveryClusterInfo(), host)
	cluster.UpdatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	first, err := memo.Evaluate("host-discovery", cluster, cluster.Hosts)
	require.NoError(t, err)
	assert.Equal(t, VerdictReady, first.Verdict)
	assert.Equal(t, 1, memo.Len())

	again, err := memo.Evaluate("host-discovery", cluster, cluster.Hosts)
	require.NoError(t, err)
	assert.Equal(t, first, again)
	assert.Equal(t, 1, memo.Len(), "same snapshot is a hit")

	// A changed host yields a new entry even with the same updatedAt.
	failing := withValidation(host, "hardware", v("has-min-memory", validation.StatusFailure))
	changed, err := memo.Evaluate("host-discovery", cluster, []validation.Host{failing})
	require.NoError(t, err)
	assert.Equal(t, VerdictNotReady, changed.Verdict)
	assert.Equal(t, 2, memo.Len())

	_, err = memo.Evaluate("storage", cluster, cluster.Hosts)
	require.NoError(t, err)
	assert.Equal(t, 3, memo.Len(), "steps are cached separately")

	_, err = memo.Evaluate("nope", cluster, cluster.Hosts)
	require.Error(t, err)
	assert.Equal(t, 3, memo.Len(), "errors are not cached")

	memo.Purge()
	assert.Zero(t, memo.Len())
}

func TestMemo_Eviction(t *testing.T) {
	g := defaultGate(t)
	memo, err := NewMemo(g, 2)
	require.NoError(t, err)

	cluster := validation.Cluster{Status: validation.ClusterStatusReady}
	for _, step := range []stepmap.StepID{"cluster-details", "operators", "review"} {
		_, err := memo.Evaluate(step, cluster, nil)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, memo.Len())
}

func TestSnapshotHash(t *testing.T) {
	a := passingHost("h1", validation.HostStatusKnown)
	b := passingHost("h2", validation.HostStatusKnown)
	cluster := validation.Cluster{Status: validation.ClusterStatusInsufficient, ValidationsInfo: "{}"}

	assert.Equal(t, snapshotHash(cluster, []validation.Host{a, b}), snapshotHash(cluster, []validation.Host{a, b}))
	assert.NotEqual(t, snapshotHash(cluster, []validation.Host{a, b}), snapshotHash(cluster, []validation.Host{b, a}))
	assert.NotEqual(t, snapshotHash(cluster, []validation.Host{a}), snapshotHash(cluster, nil))

	ready := cluster
	ready.Status = validation.ClusterStatusReady
	assert.NotEqual(t, snapshotHash(cluster, nil), snapshotHash(ready, nil))

	// Field boundaries are part of the digest.
	x := validation.Host{ID: "ab", RequestedHostname: "c"}
	y := validation.Host{ID: "a", RequestedHostname: "bc"}
	assert.NotEqual(t, snapshotHash(cluster, []validation.Host{x}), snapshotHash(cluster, []validation.Host{y}))
}
