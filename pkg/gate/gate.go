package gate

import (
	"fmt"
	"slices"

	"github.com/openshift-assisted/wizard-gate/pkg/stepmap"
	"github.com/openshift-assisted/wizard-gate/pkg/validation"
)

// Gate evaluates wizard steps against a Step Validation Map.
// It holds no mutable state and is safe for concurrent use.
type Gate struct {
	m *stepmap.Map
}

// New returns a Gate backed by m.
func New(m *stepmap.Map) *Gate {
	return &Gate{m: m}
}

// Map returns the Step Validation Map the gate evaluates against.
func (g *Gate) Map() *stepmap.Map {
	return g.m
}

// StepStatus returns the verdict of step. On error the verdict is
// VerdictNotReady so callers that ignore the error still block.
func (g *Gate) StepStatus(step stepmap.StepID, cluster validation.Cluster, hosts []validation.Host) (Verdict, error) {
	res, err := g.Evaluate(step, cluster, hosts)
	if err != nil {
		return VerdictNotReady, err
	}
	return res.Verdict, nil
}

// Evaluate returns the verdict of step together with the findings behind it.
func (g *Gate) Evaluate(step stepmap.StepID, cluster validation.Cluster, hosts []validation.Host) (StepResult, error) {
	req, err := g.m.Requirement(step)
	if err != nil {
		return StepResult{Step: step, Verdict: VerdictNotReady, Severity: SeverityDanger}, err
	}

	res := StepResult{Step: step, Title: g.m.Title(step)}

	switch cluster.Status {
	case validation.ClusterStatusReady:
		res.ClusterVerdict = VerdictReady
		res.Verdict = VerdictReady
		res.Severity = SeverityOK
		return res, nil
	case validation.ClusterStatusInsufficient, validation.ClusterStatusPendingForInput:
		var findings []Finding
		res.ClusterVerdict, findings = g.clusterVerdict(req, cluster.ValidationsInfo.Decode())
		res.Findings = append(res.Findings, findings...)
	default:
		res.ClusterVerdict = VerdictNotReady
		res.Findings = append(res.Findings, Finding{
			Source:  SourceCluster,
			Kind:    FindingStatus,
			Status:  string(cluster.Status),
			Message: fmt.Sprintf("cluster is %s", displayStatus(string(cluster.Status))),
		})
	}

	res.Verdict = res.ClusterVerdict
	g.evaluateHosts(req, hosts, &res)
	g.finish(&res)
	return res, nil
}

// EvaluateHosts evaluates only the host side of step.
func (g *Gate) EvaluateHosts(step stepmap.StepID, hosts []validation.Host) (StepResult, error) {
	req, err := g.m.Requirement(step)
	if err != nil {
		return StepResult{Step: step, Verdict: VerdictNotReady, Severity: SeverityDanger}, err
	}

	res := StepResult{Step: step, Title: g.m.Title(step), Verdict: VerdictReady}
	g.evaluateHosts(req, hosts, &res)
	g.finish(&res)
	return res, nil
}

func (g *Gate) evaluateHosts(req stepmap.Requirement, hosts []validation.Host, res *StepResult) {
	for _, host := range hosts {
		if host.Status == validation.HostStatusDisabled {
			continue
		}
		verdict, findings := g.hostVerdict(req, host)
		res.Hosts = append(res.Hosts, HostResult{
			ID:       host.ID,
			Hostname: host.RequestedHostname,
			Status:   host.Status,
			Verdict:  verdict,
		})
		res.Findings = append(res.Findings, findings...)
		res.Verdict = worst(res.Verdict, verdict)
	}
}

func (g *Gate) finish(res *StepResult) {
	var failing, soft int
	for _, f := range res.Findings {
		if f.Kind != FindingFailure {
			continue
		}
		failing++
		if f.Soft {
			soft++
		}
	}
	res.OnlySoftFailing = failing > 0 && failing == soft

	switch {
	case res.Verdict == VerdictNotReady:
		res.Severity = SeverityDanger
	case res.Verdict == VerdictPending:
		res.Severity = SeverityPending
	case res.OnlySoftFailing:
		res.Severity = SeverityWarning
	default:
		res.Severity = SeverityOK
	}
}

// clusterVerdict evaluates the cluster validations a step requires.
func (g *Gate) clusterVerdict(req stepmap.Requirement, info validation.Info) (Verdict, []Finding) {
	sel := g.selectRelevant(info, req.Cluster.Groups, req.Cluster.ValidationIDs)

	verdict := VerdictReady
	findings := sel.findings(Finding{Source: SourceCluster})
	switch {
	case sel.hardFailures > 0, sel.missing > 0:
		verdict = VerdictNotReady
	case sel.hardPending > 0:
		verdict = VerdictPending
	}
	return verdict, findings
}

// hostVerdict evaluates a single, non-disabled host.
func (g *Gate) hostVerdict(req stepmap.Requirement, host validation.Host) (Verdict, []Finding) {
	sel := g.selectRelevant(host.ValidationsInfo.Decode(), req.Host.Groups, req.Host.ValidationIDs)
	base := Finding{Source: SourceHost, HostID: host.ID, Hostname: host.RequestedHostname}

	if sel.hardFailures > 0 {
		return VerdictNotReady, sel.findings(base)
	}

	if req.Host.Allows(host.Status) {
		// Missing checks are ignored for hosts in an allowed status.
		sel.dropMissing()
		if sel.hardPending > 0 {
			return VerdictPending, sel.findings(base)
		}
		return VerdictReady, sel.findings(base)
	}

	switch host.Status {
	case validation.HostStatusInsufficient, validation.HostStatusPendingForInput:
		if sel.hardPending > 0 || sel.missing > 0 {
			return VerdictNotReady, sel.findings(base)
		}
		return VerdictReady, sel.findings(base)
	}

	sel.dropMissing()
	status := base
	status.Kind = FindingStatus
	status.Status = string(host.Status)
	status.Message = fmt.Sprintf("host is %s", displayStatus(string(host.Status)))
	return VerdictPending, append(sel.findings(base), status)
}

// OnlySoftFailing reports whether the host validations step requires contain
// at least one failure and every failure is soft.
func (g *Gate) OnlySoftFailing(info validation.Info, step stepmap.StepID) (bool, error) {
	req, err := g.m.Requirement(step)
	if err != nil {
		return false, err
	}
	return g.onlySoft(g.selectRelevant(info, req.Host.Groups, req.Host.ValidationIDs)), nil
}

// ClusterOnlySoftFailing is OnlySoftFailing for cluster validations.
func (g *Gate) ClusterOnlySoftFailing(info validation.Info, step stepmap.StepID) (bool, error) {
	req, err := g.m.Requirement(step)
	if err != nil {
		return false, err
	}
	return g.onlySoft(g.selectRelevant(info, req.Cluster.Groups, req.Cluster.ValidationIDs)), nil
}

func (g *Gate) onlySoft(sel selection) bool {
	return sel.hardFailures == 0 && sel.softFailures > 0
}

// HostStepValidations returns the part of info that step requires on hosts.
// Groups required as a whole are kept intact.
func (g *Gate) HostStepValidations(info validation.Info, step stepmap.StepID) (validation.Info, error) {
	req, err := g.m.Requirement(step)
	if err != nil {
		return nil, err
	}
	return filterInfo(info, req.Host.Groups, req.Host.ValidationIDs), nil
}

// ClusterStepValidations returns the part of info that step requires on the cluster.
func (g *Gate) ClusterStepValidations(info validation.Info, step stepmap.StepID) (validation.Info, error) {
	req, err := g.m.Requirement(step)
	if err != nil {
		return nil, err
	}
	return filterInfo(info, req.Cluster.Groups, req.Cluster.ValidationIDs), nil
}

func filterInfo(info validation.Info, groups []validation.Group, ids []validation.ID) validation.Info {
	out := validation.Info{}
	for group, vs := range info {
		if slices.Contains(groups, group) {
			out[group] = slices.Clone(vs)
			continue
		}
		var picked []validation.Validation
		for _, v := range vs {
			if slices.Contains(ids, v.ID) {
				picked = append(picked, v)
			}
		}
		if len(picked) > 0 {
			out[group] = picked
		}
	}
	return out
}

func displayStatus(s string) string {
	if s == "" {
		return "in an unknown status"
	}
	return s
}
