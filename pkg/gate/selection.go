package gate

import (
	"slices"

	"github.com/openshift-assisted/wizard-gate/pkg/validation"
)

type selected struct {
	validation.Validation
	group validation.Group
	soft  bool
}

// selection is the part of a validations payload a step cares about.
// Validations in success, disabled or an unknown status are not kept.
type selection struct {
	relevant      []selected
	missingIDs    []validation.ID
	missingGroups []validation.Group

	hardFailures int
	softFailures int
	hardPending  int
	missing      int
}

// selectRelevant collects the validations of info that belong to a required
// group or carry a required ID, and the required entries that are absent.
func (g *Gate) selectRelevant(info validation.Info, groups []validation.Group, ids []validation.ID) selection {
	var sel selection

	for _, group := range info.Groups() {
		wholeGroup := slices.Contains(groups, group)
		for _, v := range info[group] {
			if !wholeGroup && !slices.Contains(ids, v.ID) {
				continue
			}
			soft := g.m.IsSoft(v.ID)
			switch {
			case v.Status.IsFailing():
				if soft {
					sel.softFailures++
				} else {
					sel.hardFailures++
				}
			case v.Status.IsPending():
				if !soft {
					sel.hardPending++
				}
			default:
				continue
			}
			sel.relevant = append(sel.relevant, selected{Validation: v, group: group, soft: soft})
		}
	}

	for _, id := range ids {
		if g.m.IsSoft(id) {
			continue
		}
		if _, _, ok := info.Find(id); !ok {
			sel.missingIDs = append(sel.missingIDs, id)
		}
	}
	for _, group := range groups {
		if !info.Has(group) {
			sel.missingGroups = append(sel.missingGroups, group)
		}
	}
	sel.missing = len(sel.missingIDs) + len(sel.missingGroups)

	return sel
}

func (s *selection) dropMissing() {
	s.missingIDs = nil
	s.missingGroups = nil
	s.missing = 0
}

// findings renders the selection as findings stamped with base's source.
func (s selection) findings(base Finding) []Finding {
	out := make([]Finding, 0, len(s.relevant)+s.missing)
	for _, v := range s.relevant {
		f := base
		f.ID = v.ID
		f.Group = v.group
		f.Status = string(v.Status)
		f.Message = v.Message
		f.Soft = v.soft
		if v.Status.IsFailing() {
			f.Kind = FindingFailure
		} else {
			f.Kind = FindingPending
		}
		out = append(out, f)
	}
	for _, id := range s.missingIDs {
		f := base
		f.Kind = FindingMissing
		f.ID = id
		f.Message = "validation has not been reported"
		out = append(out, f)
	}
	for _, group := range s.missingGroups {
		f := base
		f.Kind = FindingMissing
		f.Group = group
		f.Message = "validation group has not been reported"
		out = append(out, f)
	}
	return out
}
