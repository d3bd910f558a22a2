package validation

import (
	"bytes"
	"encoding/json"
	"log/slog"
)

// record mirrors the wire form so missing fields can be told apart from empty ones.
type record struct {
	ID      *string `json:"id"`
	Status  *string `json:"status"`
	Message string  `json:"message"`
}

// Decode parses a validationsInfo string. It never fails; see DecodeBytes.
func Decode(raw string) Info {
	return DecodeBytes([]byte(raw))
}

// DecodeBytes parses a validationsInfo payload. Input that is not a mapping of
// groups to lists of objects yields an empty Info. Records with missing or
// mistyped fields are dropped and their siblings kept.
func DecodeBytes(data []byte) Info {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Info{}
	}

	var groups map[string]json.RawMessage
	if err := json.Unmarshal(data, &groups); err != nil {
		slog.Debug("discarding malformed validationsInfo", "error", err)
		return Info{}
	}

	info := make(Info, len(groups))
	for name, msg := range groups {
		var items []json.RawMessage
		if err := json.Unmarshal(msg, &items); err != nil {
			slog.Debug("discarding validationsInfo with non-list group",
				"group", name,
				"error", err)
			return Info{}
		}
		if items == nil {
			continue
		}

		validations := make([]Validation, 0, len(items))
		for _, item := range items {
			var fields map[string]json.RawMessage
			if err := json.Unmarshal(item, &fields); err != nil {
				slog.Debug("discarding validationsInfo with non-object record",
					"group", name,
					"error", err)
				return Info{}
			}
			var r record
			if err := json.Unmarshal(item, &r); err != nil {
				slog.Debug("dropping mistyped validation record",
					"group", name,
					"error", err)
				continue
			}
			if r.ID == nil || *r.ID == "" || r.Status == nil || *r.Status == "" {
				slog.Debug("dropping incomplete validation record", "group", name)
				continue
			}
			validations = append(validations, Validation{
				ID:      ID(*r.ID),
				Status:  Status(*r.Status),
				Message: r.Message,
			})
		}
		info[Group(name)] = validations
	}

	return info
}

// Encode renders info in the REST API string form.
func Encode(info Info) string {
	if info == nil {
		info = Info{}
	}
	b, err := json.Marshal(info)
	if err != nil {
		// Info only holds strings, so marshaling cannot fail in practice.
		return "{}"
	}
	return string(b)
}
