package gate

import (
	"time"

	"github.com/openshift-assisted/wizard-gate/pkg/header"
	"github.com/openshift-assisted/wizard-gate/pkg/stepmap"
	"github.com/openshift-assisted/wizard-gate/pkg/validation"
)

// Verdict is the readiness of a wizard step.
type Verdict string

const (
	VerdictReady    Verdict = "ready"
	VerdictNotReady Verdict = "not-ready"
	VerdictPending  Verdict = "pending"
)

// CanNext reports whether the wizard may move past a step with this verdict.
func (v Verdict) CanNext() bool {
	return v == VerdictReady
}

func (v Verdict) rank() int {
	switch v {
	case VerdictReady:
		return 0
	case VerdictPending:
		return 1
	default:
		return 2
	}
}

// worst returns the more severe of two verdicts.
func worst(a, b Verdict) Verdict {
	if b.rank() > a.rank() {
		return b
	}
	return a
}

// Severity selects how a step's state is presented.
type Severity string

const (
	SeverityOK      Severity = "ok"
	SeverityWarning Severity = "warning"
	SeverityPending Severity = "pending"
	SeverityDanger  Severity = "danger"
)

// Source tells whether a finding comes from the cluster or from a host.
type Source string

const (
	SourceCluster Source = "cluster"
	SourceHost    Source = "host"
)

// FindingKind classifies a finding.
type FindingKind string

const (
	// FindingFailure is a required validation in failure or error.
	FindingFailure FindingKind = "failure"
	// FindingPending is a required validation without a result yet.
	FindingPending FindingKind = "pending"
	// FindingMissing is a required validation or group absent from the payload.
	FindingMissing FindingKind = "missing"
	// FindingStatus is a cluster or host in a status the step does not accept.
	FindingStatus FindingKind = "status"
)

// Finding explains why a step is not ready, or warns about a soft failure.
type Finding struct {
	Source   Source           `json:"source" yaml:"source"`
	HostID   string           `json:"hostId,omitempty" yaml:"hostId,omitempty"`
	Hostname string           `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	Kind     FindingKind      `json:"kind" yaml:"kind"`
	ID       validation.ID    `json:"id,omitempty" yaml:"id,omitempty"`
	Group    validation.Group `json:"group,omitempty" yaml:"group,omitempty"`
	Status   string           `json:"status,omitempty" yaml:"status,omitempty"`
	Message  string           `json:"message,omitempty" yaml:"message,omitempty"`
	Soft     bool             `json:"soft,omitempty" yaml:"soft,omitempty"`
}

// HostResult is the verdict of a single host for a step.
type HostResult struct {
	ID       string                `json:"id" yaml:"id"`
	Hostname string                `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	Status   validation.HostStatus `json:"status" yaml:"status"`
	Verdict  Verdict               `json:"verdict" yaml:"verdict"`
}

// StepResult is the full evaluation of a step.
type StepResult struct {
	Step            stepmap.StepID `json:"step" yaml:"step"`
	Title           string         `json:"title" yaml:"title"`
	Verdict         Verdict        `json:"verdict" yaml:"verdict"`
	Severity        Severity       `json:"severity" yaml:"severity"`
	OnlySoftFailing bool           `json:"onlySoftFailing" yaml:"onlySoftFailing"`
	ClusterVerdict  Verdict        `json:"clusterVerdict,omitempty" yaml:"clusterVerdict,omitempty"`
	Hosts           []HostResult   `json:"hosts,omitempty" yaml:"hosts,omitempty"`
	Findings        []Finding      `json:"findings,omitempty" yaml:"findings,omitempty"`
}

// CanNext reports whether the wizard may move past the step.
func (r StepResult) CanNext() bool {
	return r.Verdict.CanNext()
}

// Blocking returns the findings that affect the verdict.
func (r StepResult) Blocking() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if !f.Soft {
			out = append(out, f)
		}
	}
	return out
}

// ReportSummary counts step verdicts.
type ReportSummary struct {
	Total           int `json:"total" yaml:"total"`
	Ready           int `json:"ready" yaml:"ready"`
	NotReady        int `json:"notReady" yaml:"notReady"`
	Pending         int `json:"pending" yaml:"pending"`
	OnlySoftFailing int `json:"onlySoftFailing" yaml:"onlySoftFailing"`
}

// Report is the evaluation of every step of the wizard for one cluster.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	Wizard              string                   `json:"wizard" yaml:"wizard"`
	ClusterID           string                   `json:"clusterId,omitempty" yaml:"clusterId,omitempty"`
	ClusterName         string                   `json:"clusterName,omitempty" yaml:"clusterName,omitempty"`
	ClusterStatus       validation.ClusterStatus `json:"clusterStatus" yaml:"clusterStatus"`
	Summary             ReportSummary            `json:"summary" yaml:"summary"`
	Steps               []StepResult             `json:"steps" yaml:"steps"`
	FirstIncompleteStep stepmap.StepID           `json:"firstIncompleteStep" yaml:"firstIncompleteStep"`
	FirstStep           stepmap.StepID           `json:"firstStep" yaml:"firstStep"`
	Duration            time.Duration            `json:"duration" yaml:"duration"`
}
