// Package validation models the validation results reported by the assisted
// installer for clusters and hosts, and decodes them from the opaque
// validationsInfo payloads returned by the REST API.
//
// # Payload Format
//
// A validationsInfo payload is a JSON object keyed by validation group, each
// group holding a list of validation records:
//
//	{
//	  "hardware": [
//	    {"id": "hostname-valid", "status": "pending", "message": "..."}
//	  ],
//	  "network": [
//	    {"id": "connected", "status": "success", "message": "..."}
//	  ]
//	}
//
// The REST API transports the object as a JSON encoded string while Kubernetes
// resources embed it inline; RawInfo accepts both.
//
// # Tolerant Decoding
//
// Decode never fails. Empty input, input that is not JSON, or JSON that does
// not have the group -> list of objects shape decodes to an empty Info.
// Records without an id or status are dropped individually. An empty Info
// means "nothing reported yet", never "everything passed".
//
// Validation IDs, groups and statuses are open string types: values introduced
// by newer backends pass through unchanged.
package validation
