package stepmap

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	wgerrors "github.com/openshift-assisted/wizard-gate/pkg/errors"
	"github.com/openshift-assisted/wizard-gate/pkg/header"
	"github.com/openshift-assisted/wizard-gate/pkg/validation"
)

// maxSuggestionDistance bounds the edit distance of "did you mean" hints.
const maxSuggestionDistance = 3

// Map is a validated, immutable Step Validation Map.
type Map struct {
	doc          Document
	index        map[StepID]int
	soft         map[validation.ID]struct{}
	clusterGroup map[validation.ID]validation.Group
	hostGroup    map[validation.ID]validation.Group
}

// New validates doc and builds a Map from it. doc is copied, later changes
// to it do not affect the Map.
func New(doc Document) (*Map, error) {
	doc = doc.clone()

	var problems []error
	if err := doc.Check(header.KindStepsValidationMap); err != nil {
		problems = append(problems, err)
	}
	if len(doc.Order) == 0 {
		problems = append(problems, errors.New("order is empty"))
	}

	index := make(map[StepID]int, len(doc.Order))
	for i, step := range doc.Order {
		if step == "" {
			problems = append(problems, fmt.Errorf("order[%d] is empty", i))
			continue
		}
		if _, dup := index[step]; dup {
			problems = append(problems, fmt.Errorf("step %q is listed more than once in order", step))
			continue
		}
		index[step] = i
		if _, ok := doc.Steps[step]; !ok {
			problems = append(problems, fmt.Errorf("step %q has no entry in steps", step))
		}
	}

	extra := make([]string, 0)
	for step := range doc.Steps {
		if _, ok := index[step]; !ok {
			extra = append(extra, string(step))
		}
	}
	sort.Strings(extra)
	for _, step := range extra {
		problems = append(problems, fmt.Errorf("step %q is not listed in order", step))
	}

	if len(doc.Order) > 0 {
		if doc.Landing.Fallback == "" {
			doc.Landing.Fallback = doc.Order[0]
		}
		names := make([]string, 0, 7)
		fields := doc.Landing.fields()
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			step := fields[name]
			if *step == "" {
				*step = doc.Landing.Fallback
			}
			if _, ok := index[*step]; !ok {
				problems = append(problems, fmt.Errorf("landing.%s references unknown step %q", name, *step))
			}
		}
	}

	clusterGroup, err := groupIndex("catalog.cluster", doc.Catalog.Cluster)
	if err != nil {
		problems = append(problems, err)
	}
	hostGroup, err := groupIndex("catalog.host", doc.Catalog.Host)
	if err != nil {
		problems = append(problems, err)
	}

	if len(problems) > 0 {
		return nil, wgerrors.WrapWithContext(wgerrors.ErrCodeInvalidConfig,
			"invalid step validation map", errors.Join(problems...),
			map[string]any{"name": doc.Name, "problems": len(problems)})
	}

	soft := make(map[validation.ID]struct{})
	for _, req := range doc.Steps {
		for _, id := range req.SoftValidationIDs {
			soft[id] = struct{}{}
		}
	}

	return &Map{
		doc:          doc,
		index:        index,
		soft:         soft,
		clusterGroup: clusterGroup,
		hostGroup:    hostGroup,
	}, nil
}

func groupIndex(path string, groups map[validation.Group][]validation.ID) (map[validation.ID]validation.Group, error) {
	idx := make(map[validation.ID]validation.Group)
	var problems []error
	names := make([]validation.Group, 0, len(groups))
	for g := range groups {
		names = append(names, g)
	}
	slices.Sort(names)
	for _, g := range names {
		for _, id := range groups[g] {
			if prev, dup := idx[id]; dup {
				problems = append(problems, fmt.Errorf("%s: validation %q is listed in both %q and %q", path, id, prev, g))
				continue
			}
			idx[id] = g
		}
	}
	return idx, errors.Join(problems...)
}

// Name returns the wizard name.
func (m *Map) Name() string {
	return m.doc.Name
}

// Order returns the declared step order.
func (m *Map) Order() []StepID {
	return slices.Clone(m.doc.Order)
}

// Has reports whether step is part of the wizard.
func (m *Map) Has(step StepID) bool {
	_, ok := m.index[step]
	return ok
}

// Index returns the position of step in the declared order.
func (m *Map) Index(step StepID) (int, bool) {
	i, ok := m.index[step]
	return i, ok
}

// IsStepAfter reports whether step comes after other in the declared order.
// It is false when either step is unknown.
func (m *Map) IsStepAfter(step, other StepID) bool {
	i, ok := m.index[step]
	if !ok {
		return false
	}
	j, ok := m.index[other]
	if !ok {
		return false
	}
	return i > j
}

// Requirement returns the gating rule of step. An unknown step is a
// configuration error and yields an ErrCodeNotFound error.
func (m *Map) Requirement(step StepID) (Requirement, error) {
	req, ok := m.doc.Steps[step]
	if !ok {
		return Requirement{}, m.unknownStep(step)
	}
	return req.clone(), nil
}

// Check returns an error when step is not part of the wizard.
func (m *Map) Check(step StepID) error {
	if m.Has(step) {
		return nil
	}
	return m.unknownStep(step)
}

func (m *Map) unknownStep(step StepID) error {
	ctx := map[string]any{"step": string(step)}
	msg := fmt.Sprintf("step %q has no entry in the step validation map", step)
	if s, ok := m.suggest(step); ok {
		ctx["suggestion"] = string(s)
		msg = fmt.Sprintf("%s, did you mean %q?", msg, s)
	}
	return wgerrors.NewWithContext(wgerrors.ErrCodeNotFound, msg, ctx)
}

func (m *Map) suggest(step StepID) (StepID, bool) {
	best := StepID("")
	bestDist := maxSuggestionDistance + 1
	for _, candidate := range m.doc.Order {
		d := levenshtein.ComputeDistance(string(step), string(candidate))
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best, best != ""
}

// SoftValidationIDs returns the union of every step's soft validations, sorted.
func (m *Map) SoftValidationIDs() []validation.ID {
	ids := make([]validation.ID, 0, len(m.soft))
	for id := range m.soft {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// IsSoft reports whether id is a soft validation anywhere in the wizard.
func (m *Map) IsSoft(id validation.ID) bool {
	_, ok := m.soft[id]
	return ok
}

// ClusterGroupOf returns the catalog group of a cluster validation.
func (m *Map) ClusterGroupOf(id validation.ID) (validation.Group, bool) {
	g, ok := m.clusterGroup[id]
	return g, ok
}

// HostGroupOf returns the catalog group of a host validation.
func (m *Map) HostGroupOf(id validation.ID) (validation.Group, bool) {
	g, ok := m.hostGroup[id]
	return g, ok
}

// ClaimsCluster reports whether step requires the cluster validation id,
// directly or through its catalog group.
func (m *Map) ClaimsCluster(step StepID, id validation.ID) bool {
	req, ok := m.doc.Steps[step]
	if !ok {
		return false
	}
	if slices.Contains(req.Cluster.ValidationIDs, id) {
		return true
	}
	g, ok := m.clusterGroup[id]
	return ok && slices.Contains(req.Cluster.Groups, g)
}

// ClaimsHost reports whether step requires the host validation id,
// directly or through its catalog group.
func (m *Map) ClaimsHost(step StepID, id validation.ID) bool {
	req, ok := m.doc.Steps[step]
	if !ok {
		return false
	}
	if slices.Contains(req.Host.ValidationIDs, id) {
		return true
	}
	g, ok := m.hostGroup[id]
	return ok && slices.Contains(req.Host.Groups, g)
}

// Title returns the display title of step. Steps without an explicit title
// get one derived from the step ID.
func (m *Map) Title(step StepID) string {
	if req, ok := m.doc.Steps[step]; ok && req.Title != "" {
		return req.Title
	}
	return cases.Title(language.English).String(strings.ReplaceAll(string(step), "-", " "))
}

// Landing returns the landing steps with defaults applied.
func (m *Map) Landing() Landing {
	return m.doc.Landing
}

// Document returns a copy of the effective document, landing defaults included.
func (m *Map) Document() Document {
	return m.doc.clone()
}
