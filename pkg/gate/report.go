package gate

import (
	"log/slog"
	"time"

	"github.com/openshift-assisted/wizard-gate/pkg/header"
	"github.com/openshift-assisted/wizard-gate/pkg/validation"
)

// Report evaluates every step of the wizard, in declared order, for cluster
// and its hosts.
func (g *Gate) Report(cluster validation.Cluster) (*Report, error) {
	start := time.Now()

	r := &Report{
		Wizard:        g.m.Name(),
		ClusterID:     cluster.ID,
		ClusterName:   cluster.Name,
		ClusterStatus: cluster.Status,
	}
	r.Set(header.KindStepReport)
	if cluster.ID != "" {
		r.Metadata["cluster-id"] = cluster.ID
	}

	for _, step := range g.m.Order() {
		res, err := g.Evaluate(step, cluster, cluster.Hosts)
		if err != nil {
			return nil, err
		}
		r.Steps = append(r.Steps, res)

		r.Summary.Total++
		switch res.Verdict {
		case VerdictReady:
			r.Summary.Ready++
		case VerdictPending:
			r.Summary.Pending++
		default:
			r.Summary.NotReady++
		}
		if res.OnlySoftFailing {
			r.Summary.OnlySoftFailing++
		}
	}

	r.FirstIncompleteStep = g.FirstIncompleteStep(cluster.Hosts)
	r.FirstStep = g.FirstStep(FirstStepInput{
		ClusterStatus: cluster.Status,
		Hosts:         cluster.Hosts,
	})
	r.Duration = time.Since(start)

	slog.Debug("step report complete",
		"cluster", cluster.ID,
		"steps", r.Summary.Total,
		"ready", r.Summary.Ready,
		"notReady", r.Summary.NotReady,
		"pending", r.Summary.Pending,
		"duration", r.Duration)

	return r, nil
}
