package server

import (
	"net/http"
	"regexp"
	"slices"
)

// DefaultAPIVersion is served when the client does not ask for one.
const DefaultAPIVersion = "v1"

var (
	supportedAPIVersions = []string{"v1"}

	// e.g. application/vnd.openshift.wizgate.v1+json
	vendorMediaPattern = regexp.MustCompile(`application/vnd\.openshift\.wizgate\.(v[0-9]+)\+json`)
)

// negotiateAPIVersion returns the API version requested in the Accept header,
// or DefaultAPIVersion when none or an unsupported one is requested.
func negotiateAPIVersion(r *http.Request) string {
	m := vendorMediaPattern.FindStringSubmatch(r.Header.Get("Accept"))
	if len(m) != 2 || !isValidAPIVersion(m[1]) {
		return DefaultAPIVersion
	}
	return m[1]
}

func isValidAPIVersion(version string) bool {
	return slices.Contains(supportedAPIVersions, version)
}
