package gate

import (
	"log/slog"
	"slices"

	"github.com/openshift-assisted/wizard-gate/pkg/stepmap"
	"github.com/openshift-assisted/wizard-gate/pkg/validation"
)

// FindStepForFailingValidation returns the first step, in declared order and
// starting at minimum, that requires id on the cluster or host side, directly
// or through a catalog group. The bool is false when no step claims id;
// callers then fall back to a default step. An unknown minimum is an error.
func (g *Gate) FindStepForFailingValidation(id validation.ID, minimum stepmap.StepID) (stepmap.StepID, bool, error) {
	start, ok := g.m.Index(minimum)
	if !ok {
		return "", false, g.m.Check(minimum)
	}

	order := g.m.Order()
	for _, step := range order[start:] {
		if g.m.ClaimsCluster(step, id) || g.m.ClaimsHost(step, id) {
			return step, true, nil
		}
	}
	return "", false, nil
}

// ValidationRef points at a failing validation, optionally with the group it
// was reported under.
type ValidationRef struct {
	ID           validation.ID    `json:"validationId" yaml:"validationId"`
	HostGroup    validation.Group `json:"hostGroup,omitempty" yaml:"hostGroup,omitempty"`
	ClusterGroup validation.Group `json:"clusterGroup,omitempty" yaml:"clusterGroup,omitempty"`
}

// FindValidationFixStep returns the first step of the wizard where the
// validation can be fixed. Reported groups match steps that require the whole
// group, in addition to the catalog.
func (g *Gate) FindValidationFixStep(ref ValidationRef) (stepmap.StepID, bool) {
	for _, step := range g.m.Order() {
		if g.m.ClaimsCluster(step, ref.ID) || g.m.ClaimsHost(step, ref.ID) {
			return step, true
		}
		req, err := g.m.Requirement(step)
		if err != nil {
			continue
		}
		if ref.ClusterGroup != "" && slices.Contains(req.Cluster.Groups, ref.ClusterGroup) {
			return step, true
		}
		if ref.HostGroup != "" && slices.Contains(req.Host.Groups, ref.HostGroup) {
			return step, true
		}
	}
	return "", false
}

// FailingHostValidation is a failing validation of a specific host.
type FailingHostValidation struct {
	HostID string            `json:"hostId" yaml:"hostId"`
	ID     validation.ID     `json:"id" yaml:"id"`
	Group  validation.Group  `json:"group" yaml:"group"`
	Status validation.Status `json:"status" yaml:"status"`
}

// FailingHostValidations lists the failing validations of every host that is
// not disabled, in host order.
func FailingHostValidations(hosts []validation.Host) []FailingHostValidation {
	var out []FailingHostValidation
	for _, host := range hosts {
		if host.Status == validation.HostStatusDisabled {
			continue
		}
		info := host.ValidationsInfo.Decode()
		for _, group := range info.Groups() {
			for _, v := range info[group] {
				if !v.Status.IsFailing() {
					continue
				}
				out = append(out, FailingHostValidation{
					HostID: host.ID,
					ID:     v.ID,
					Group:  group,
					Status: v.Status,
				})
			}
		}
	}
	return out
}

// FirstIncompleteStep returns the earliest step, at or after the map's
// failing-hosts landing step, that claims a failing host validation. When no
// step claims any of them the failing-hosts landing step is returned.
func (g *Gate) FirstIncompleteStep(hosts []validation.Host) stepmap.StepID {
	minimum := g.m.Landing().FailingHosts
	best, bestIdx := minimum, -1

	seen := make(map[validation.ID]struct{})
	for _, f := range FailingHostValidations(hosts) {
		if _, dup := seen[f.ID]; dup {
			continue
		}
		seen[f.ID] = struct{}{}

		step, ok, err := g.FindStepForFailingValidation(f.ID, minimum)
		if err != nil {
			slog.Warn("cannot route failing host validation", "validation", f.ID, "error", err)
			continue
		}
		if !ok {
			slog.Debug("no step claims failing host validation", "validation", f.ID, "host", f.HostID)
			continue
		}
		idx, _ := g.m.Index(step)
		if bestIdx < 0 || idx < bestIdx {
			best, bestIdx = step, idx
		}
	}
	return best
}
