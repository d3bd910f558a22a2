package validation

import (
	"bytes"
	"encoding/json"
	"time"

	"gopkg.in/yaml.v3"
)

// ClusterStatus is the lifecycle state of a cluster.
type ClusterStatus string

const (
	ClusterStatusInsufficient                ClusterStatus = "insufficient"
	ClusterStatusReady                       ClusterStatus = "ready"
	ClusterStatusError                       ClusterStatus = "error"
	ClusterStatusPreparingForInstallation    ClusterStatus = "preparing-for-installation"
	ClusterStatusPendingForInput             ClusterStatus = "pending-for-input"
	ClusterStatusInstalling                  ClusterStatus = "installing"
	ClusterStatusFinalizing                  ClusterStatus = "finalizing"
	ClusterStatusInstalled                   ClusterStatus = "installed"
	ClusterStatusAddingHosts                 ClusterStatus = "adding-hosts"
	ClusterStatusCancelled                   ClusterStatus = "cancelled"
	ClusterStatusInstallingPendingUserAction ClusterStatus = "installing-pending-user-action"
)

// HostStatus is the lifecycle state of a host.
type HostStatus string

const (
	HostStatusDiscovering                 HostStatus = "discovering"
	HostStatusKnown                       HostStatus = "known"
	HostStatusDisconnected                HostStatus = "disconnected"
	HostStatusInsufficient                HostStatus = "insufficient"
	HostStatusDisabled                    HostStatus = "disabled"
	HostStatusPreparingForInstallation    HostStatus = "preparing-for-installation"
	HostStatusPreparingFailed             HostStatus = "preparing-failed"
	HostStatusPreparingSuccessful         HostStatus = "preparing-successful"
	HostStatusPendingForInput             HostStatus = "pending-for-input"
	HostStatusInstalling                  HostStatus = "installing"
	HostStatusInstallingInProgress        HostStatus = "installing-in-progress"
	HostStatusInstallingPendingUserAction HostStatus = "installing-pending-user-action"
	HostStatusResettingPendingUserAction  HostStatus = "resetting-pending-user-action"
	HostStatusInstalled                   HostStatus = "installed"
	HostStatusError                       HostStatus = "error"
	HostStatusResetting                   HostStatus = "resetting"
	HostStatusAddedToExistingCluster      HostStatus = "added-to-existing-cluster"
	HostStatusCancelled                   HostStatus = "cancelled"
	HostStatusBinding                     HostStatus = "binding"
	HostStatusUnbinding                   HostStatus = "unbinding"
	HostStatusKnownUnbound                HostStatus = "known-unbound"
	HostStatusDisconnectedUnbound         HostStatus = "disconnected-unbound"
	HostStatusInsufficientUnbound         HostStatus = "insufficient-unbound"
	HostStatusDisabledUnbound             HostStatus = "disabled-unbound"
	HostStatusDiscoveringUnbound          HostStatus = "discovering-unbound"
)

// RawInfo is an undecoded validationsInfo payload. It unmarshals from either
// a JSON string (REST API) or an inline object (Kubernetes resources).
type RawInfo string

// Decode returns the tolerant decoding of r.
func (r RawInfo) Decode() Info {
	return Decode(string(r))
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *RawInfo) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = RawInfo(s)
		return nil
	}
	*r = RawInfo(b)
	return nil
}

// MarshalJSON always emits the REST API string form.
func (r RawInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(r))
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *RawInfo) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*r = ""
		return nil
	}
	if node.Kind == yaml.ScalarNode {
		*r = RawInfo(node.Value)
		return nil
	}
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	*r = RawInfo(b)
	return nil
}

// Host is the subset of a host resource relevant to step gating.
type Host struct {
	ID                string     `json:"id" yaml:"id"`
	RequestedHostname string     `json:"requestedHostname,omitempty" yaml:"requestedHostname,omitempty"`
	Role              string     `json:"role,omitempty" yaml:"role,omitempty"`
	Status            HostStatus `json:"status" yaml:"status"`
	ValidationsInfo   RawInfo    `json:"validationsInfo,omitempty" yaml:"validationsInfo,omitempty"`
}

// Cluster is the subset of a cluster resource relevant to step gating.
type Cluster struct {
	ID              string        `json:"id,omitempty" yaml:"id,omitempty"`
	Name            string        `json:"name,omitempty" yaml:"name,omitempty"`
	Status          ClusterStatus `json:"status" yaml:"status"`
	ValidationsInfo RawInfo       `json:"validationsInfo,omitempty" yaml:"validationsInfo,omitempty"`
	Hosts           []Host        `json:"hosts,omitempty" yaml:"hosts,omitempty"`
	UpdatedAt       time.Time     `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}
