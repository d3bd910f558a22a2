package serializer

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	contentTypeJSON = "application/json"
	contentTypeYAML = "application/yaml"
)

// RespondJSON writes data as JSON with statusCode. The body is encoded before
// any header is written so an encoding failure becomes a clean 500.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		slog.Error("json encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	write(w, statusCode, contentTypeJSON, buf.Bytes())
}

// Respond writes data as YAML when the request accepts application/yaml (or
// text/yaml) before JSON, and as JSON otherwise.
func Respond(w http.ResponseWriter, r *http.Request, statusCode int, data any) {
	if !prefersYAML(r.Header.Get("Accept")) {
		RespondJSON(w, statusCode, data)
		return
	}

	buf := &bytes.Buffer{}
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		slog.Error("yaml encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if err := enc.Close(); err != nil {
		slog.Error("yaml encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	write(w, statusCode, contentTypeYAML, buf.Bytes())
}

func write(w http.ResponseWriter, statusCode int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		slog.Warn("response write failed", "error", err)
	}
}

// prefersYAML reports whether a YAML media type appears in accept before any
// JSON one. Quality values are not weighed.
func prefersYAML(accept string) bool {
	for _, part := range strings.Split(accept, ",") {
		mt := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		switch {
		case mt == contentTypeYAML, mt == "text/yaml", mt == "application/x-yaml":
			return true
		case mt == contentTypeJSON, strings.HasSuffix(mt, "+json"):
			return false
		}
	}
	return false
}
