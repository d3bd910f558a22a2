package gate

import (
	"strconv"
)

// TableHeader implements serializer.TableRenderer.
func (r StepResult) TableHeader() []string {
	return []string{"STEP", "VERDICT", "SOURCE", "HOST", "KIND", "ID", "STATUS", "SOFT"}
}

// TableRows returns one row per finding, or a single row for a step without
// findings.
func (r StepResult) TableRows() [][]string {
	if len(r.Findings) == 0 {
		return [][]string{{string(r.Step), string(r.Verdict), "-", "-", "-", "-", "-", "-"}}
	}
	rows := make([][]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		host := f.HostID
		if f.Hostname != "" {
			host = f.Hostname
		}
		rows = append(rows, []string{
			string(r.Step),
			string(r.Verdict),
			string(f.Source),
			orDash(host),
			string(f.Kind),
			orDash(string(f.ID)),
			orDash(f.Status),
			strconv.FormatBool(f.Soft),
		})
	}
	return rows
}

// TableHeader implements serializer.TableRenderer.
func (r Report) TableHeader() []string {
	return []string{"STEP", "TITLE", "VERDICT", "SEVERITY", "SOFT-ONLY", "BLOCKING"}
}

// TableRows returns one row per step in wizard order.
func (r Report) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Steps))
	for _, s := range r.Steps {
		rows = append(rows, []string{
			string(s.Step),
			s.Title,
			string(s.Verdict),
			string(s.Severity),
			strconv.FormatBool(s.OnlySoftFailing),
			strconv.Itoa(len(s.Blocking())),
		})
	}
	return rows
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
