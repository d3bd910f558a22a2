package gate

import (
	"github.com/openshift-assisted/wizard-gate/pkg/stepmap"
	"github.com/openshift-assisted/wizard-gate/pkg/validation"
)

// StaticIPView is the editor used for static network configuration.
type StaticIPView string

const (
	StaticIPViewYAML StaticIPView = "yaml"
	StaticIPViewForm StaticIPView = "form"
)

// StaticIPInfo describes the static network configuration of a cluster.
type StaticIPInfo struct {
	View       StaticIPView `json:"view" yaml:"view"`
	IsComplete bool         `json:"isDataComplete" yaml:"isDataComplete"`
}

// FirstStepInput is what the wizard knows when a session opens.
type FirstStepInput struct {
	// NewCluster is set right after the cluster has been created.
	NewCluster bool `json:"newCluster,omitempty" yaml:"newCluster,omitempty"`
	// StaticIP is nil when the cluster uses DHCP.
	StaticIP *StaticIPInfo `json:"staticIp,omitempty" yaml:"staticIp,omitempty"`

	ClusterStatus validation.ClusterStatus `json:"clusterStatus" yaml:"clusterStatus"`
	Hosts         []validation.Host        `json:"hosts,omitempty" yaml:"hosts,omitempty"`

	CustomManifestsPending bool `json:"customManifestsPending,omitempty" yaml:"customManifestsPending,omitempty"`
}

// FirstStep returns the step the wizard should open on.
func (g *Gate) FirstStep(in FirstStepInput) stepmap.StepID {
	landing := g.m.Landing()

	if in.NewCluster && in.StaticIP == nil {
		return landing.NewCluster
	}

	if in.StaticIP != nil && !in.StaticIP.IsComplete {
		if in.StaticIP.View == StaticIPViewYAML {
			return landing.StaticIPYAML
		}
		return landing.StaticIPForm
	}

	switch in.ClusterStatus {
	case validation.ClusterStatusReady:
		if in.CustomManifestsPending {
			return landing.CustomManifests
		}
		return landing.Ready
	case validation.ClusterStatusPendingForInput,
		validation.ClusterStatusAddingHosts,
		validation.ClusterStatusInsufficient:
		return g.FirstIncompleteStep(in.Hosts)
	default:
		return landing.Fallback
	}
}
