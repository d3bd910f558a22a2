package validation

import "sort"

// Status is the outcome of a single validation.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusFailure  Status = "failure"
	StatusError    Status = "error"
	StatusPending  Status = "pending"
	StatusDisabled Status = "disabled"
)

// IsFailing reports whether the status is a failure or an error.
func (s Status) IsFailing() bool {
	return s == StatusFailure || s == StatusError
}

// IsPending reports whether the validation has not produced a result yet.
func (s Status) IsPending() bool {
	return s == StatusPending
}

// IsKnown reports whether s is one of the documented statuses.
func (s Status) IsKnown() bool {
	switch s {
	case StatusSuccess, StatusFailure, StatusError, StatusPending, StatusDisabled:
		return true
	}
	return false
}

// ID identifies a validation. Cluster and host validations share one namespace.
type ID string

// Group is the category a validation is reported under (hardware, network, ...).
type Group string

// Validation is a single validation record.
type Validation struct {
	ID      ID     `json:"id" yaml:"id"`
	Status  Status `json:"status" yaml:"status"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Info maps a validation group to the validations reported under it.
type Info map[Group][]Validation

// ClusterValidationsInfo and HostValidationsInfo share the Info shape.
type (
	ClusterValidationsInfo = Info
	HostValidationsInfo    = Info
)

// Groups returns the group names in sorted order.
func (i Info) Groups() []Group {
	groups := make([]Group, 0, len(i))
	for g := range i {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(a, b int) bool { return groups[a] < groups[b] })
	return groups
}

// Has reports whether group was reported, even if it is empty.
func (i Info) Has(group Group) bool {
	_, ok := i[group]
	return ok
}

// All returns every validation, ordered by group name and then report order.
func (i Info) All() []Validation {
	var all []Validation
	for _, g := range i.Groups() {
		all = append(all, i[g]...)
	}
	return all
}

// Find returns the first validation with id and the group it was reported in.
func (i Info) Find(id ID) (Validation, Group, bool) {
	for _, g := range i.Groups() {
		for _, v := range i[g] {
			if v.ID == id {
				return v, g, true
			}
		}
	}
	return Validation{}, "", false
}

// Failing returns every validation in a failure or error state.
func (i Info) Failing() []Validation {
	var failing []Validation
	for _, v := range i.All() {
		if v.Status.IsFailing() {
			failing = append(failing, v)
		}
	}
	return failing
}
