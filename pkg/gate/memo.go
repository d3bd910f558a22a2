package gate

import (
	"time"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/openshift-assisted/wizard-gate/pkg/stepmap"
	"github.com/openshift-assisted/wizard-gate/pkg/validation"
)

// DefaultMemoSize is the number of step results a Memo keeps.
const DefaultMemoSize = 1024

type memoKey struct {
	step      stepmap.StepID
	clusterID string
	updatedAt int64
	snapshot  uint64
}

// Memo caches step results per (step, cluster update time, snapshot hash).
// Results are shared between callers and must not be modified.
type Memo struct {
	gate  *Gate
	cache *lru.Cache[memoKey, StepResult]
}

// NewMemo returns a Memo holding up to size results. A size of zero or less
// selects DefaultMemoSize.
func NewMemo(g *Gate, size int) (*Memo, error) {
	if size <= 0 {
		size = DefaultMemoSize
	}
	cache, err := lru.New[memoKey, StepResult](size)
	if err != nil {
		return nil, err
	}
	return &Memo{gate: g, cache: cache}, nil
}

// Evaluate returns the cached result for the snapshot or evaluates the step.
// Errors are not cached.
func (m *Memo) Evaluate(step stepmap.StepID, cluster validation.Cluster, hosts []validation.Host) (StepResult, error) {
	key := memoKey{
		step:      step,
		clusterID: cluster.ID,
		updatedAt: updatedAtKey(cluster.UpdatedAt),
		snapshot:  snapshotHash(cluster, hosts),
	}

	if res, ok := m.cache.Get(key); ok {
		memoLookupsTotal.WithLabelValues("hit").Inc()
		return res, nil
	}
	memoLookupsTotal.WithLabelValues("miss").Inc()

	res, err := m.gate.Evaluate(step, cluster, hosts)
	if err != nil {
		return res, err
	}
	m.cache.Add(key, res)
	return res, nil
}

// Len returns the number of cached results.
func (m *Memo) Len() int {
	return m.cache.Len()
}

// Purge drops every cached result.
func (m *Memo) Purge() {
	m.cache.Purge()
}

func updatedAtKey(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

// snapshotHash digests everything evaluation reads from the snapshot.
func snapshotHash(cluster validation.Cluster, hosts []validation.Host) uint64 {
	d := xxhash.New()
	write := func(s string) {
		_, _ = d.WriteString(s)
		_, _ = d.Write([]byte{0})
	}

	write(string(cluster.Status))
	write(string(cluster.ValidationsInfo))
	for _, h := range hosts {
		write(h.ID)
		write(h.RequestedHostname)
		write(string(h.Status))
		write(string(h.ValidationsInfo))
	}
	return d.Sum64()
}
