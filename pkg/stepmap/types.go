package stepmap

import (
	"slices"

	"github.com/openshift-assisted/wizard-gate/pkg/header"
	"github.com/openshift-assisted/wizard-gate/pkg/validation"
)

// StepID identifies a wizard step.
type StepID string

// ClusterRequirement lists the cluster validations a step requires.
type ClusterRequirement struct {
	Groups        []validation.Group `json:"groups,omitempty" yaml:"groups,omitempty"`
	ValidationIDs []validation.ID    `json:"validationIds,omitempty" yaml:"validationIds,omitempty"`
}

// HostRequirement lists the host validations a step requires and the host
// statuses that count as settled for the step.
type HostRequirement struct {
	// AllowedStatuses empty means any host status is allowed.
	AllowedStatuses []validation.HostStatus `json:"allowedStatuses,omitempty" yaml:"allowedStatuses,omitempty"`
	Groups          []validation.Group      `json:"groups,omitempty" yaml:"groups,omitempty"`
	ValidationIDs   []validation.ID         `json:"validationIds,omitempty" yaml:"validationIds,omitempty"`
}

// Allows reports whether a host in status is settled for the step.
func (h HostRequirement) Allows(status validation.HostStatus) bool {
	return len(h.AllowedStatuses) == 0 || slices.Contains(h.AllowedStatuses, status)
}

// Requirement is the gating rule of a single wizard step.
type Requirement struct {
	// Title is an optional display title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	Cluster ClusterRequirement `json:"cluster" yaml:"cluster,omitempty"`
	Host    HostRequirement    `json:"host" yaml:"host,omitempty"`

	// SoftValidationIDs never block a step. Soft IDs apply to every step of
	// the wizard, not only the one listing them.
	SoftValidationIDs []validation.ID `json:"softValidationIds,omitempty" yaml:"softValidationIds,omitempty"`
}

// RequiresCluster reports whether a cluster validation is relevant to the step.
func (r Requirement) RequiresCluster(id validation.ID, group validation.Group) bool {
	return slices.Contains(r.Cluster.ValidationIDs, id) || slices.Contains(r.Cluster.Groups, group)
}

// RequiresHost reports whether a host validation is relevant to the step.
func (r Requirement) RequiresHost(id validation.ID, group validation.Group) bool {
	return slices.Contains(r.Host.ValidationIDs, id) || slices.Contains(r.Host.Groups, group)
}

func (r Requirement) clone() Requirement {
	return Requirement{
		Title: r.Title,
		Cluster: ClusterRequirement{
			Groups:        slices.Clone(r.Cluster.Groups),
			ValidationIDs: slices.Clone(r.Cluster.ValidationIDs),
		},
		Host: HostRequirement{
			AllowedStatuses: slices.Clone(r.Host.AllowedStatuses),
			Groups:          slices.Clone(r.Host.Groups),
			ValidationIDs:   slices.Clone(r.Host.ValidationIDs),
		},
		SoftValidationIDs: slices.Clone(r.SoftValidationIDs),
	}
}

// Landing names the step the wizard opens on for each resume situation.
// Empty entries fall back to Fallback, and Fallback to the first step.
type Landing struct {
	NewCluster      StepID `json:"newCluster,omitempty" yaml:"newCluster,omitempty"`
	StaticIPYAML    StepID `json:"staticIpYaml,omitempty" yaml:"staticIpYaml,omitempty"`
	StaticIPForm    StepID `json:"staticIpForm,omitempty" yaml:"staticIpForm,omitempty"`
	Ready           StepID `json:"ready,omitempty" yaml:"ready,omitempty"`
	CustomManifests StepID `json:"customManifests,omitempty" yaml:"customManifests,omitempty"`
	FailingHosts    StepID `json:"failingHosts,omitempty" yaml:"failingHosts,omitempty"`
	Fallback        StepID `json:"fallback,omitempty" yaml:"fallback,omitempty"`
}

// fields returns the landing entries keyed by their YAML name.
func (l *Landing) fields() map[string]*StepID {
	return map[string]*StepID{
		"newCluster":      &l.NewCluster,
		"staticIpYaml":    &l.StaticIPYAML,
		"staticIpForm":    &l.StaticIPForm,
		"ready":           &l.Ready,
		"customManifests": &l.CustomManifests,
		"failingHosts":    &l.FailingHosts,
		"fallback":        &l.Fallback,
	}
}

// Catalog lists the known members of each validation group.
type Catalog struct {
	Cluster map[validation.Group][]validation.ID `json:"cluster,omitempty" yaml:"cluster,omitempty"`
	Host    map[validation.Group][]validation.ID `json:"host,omitempty" yaml:"host,omitempty"`
}

// Document is the serialized form of a Step Validation Map.
type Document struct {
	header.Header `json:",inline" yaml:",inline"`

	Name    string                 `json:"name,omitempty" yaml:"name,omitempty"`
	Order   []StepID               `json:"order" yaml:"order"`
	Landing Landing                `json:"landing" yaml:"landing,omitempty"`
	Catalog Catalog                `json:"catalog,omitempty" yaml:"catalog,omitempty"`
	Steps   map[StepID]Requirement `json:"steps" yaml:"steps"`
}

func (d Document) clone() Document {
	out := Document{
		Header:  header.Header{Kind: d.Kind, APIVersion: d.APIVersion},
		Name:    d.Name,
		Order:   slices.Clone(d.Order),
		Landing: d.Landing,
		Catalog: Catalog{
			Cluster: cloneGroups(d.Catalog.Cluster),
			Host:    cloneGroups(d.Catalog.Host),
		},
		Steps: make(map[StepID]Requirement, len(d.Steps)),
	}
	if d.Metadata != nil {
		out.Metadata = make(map[string]string, len(d.Metadata))
		for k, v := range d.Metadata {
			out.Metadata[k] = v
		}
	}
	for id, req := range d.Steps {
		out.Steps[id] = req.clone()
	}
	return out
}

func cloneGroups(in map[validation.Group][]validation.ID) map[validation.Group][]validation.ID {
	if in == nil {
		return nil
	}
	out := make(map[validation.Group][]validation.ID, len(in))
	for g, ids := range in {
		out[g] = slices.Clone(ids)
	}
	return out
}
