package serializer

// Destination and source URIs understood by NewFileWriterOrStdout and
// FromFileWithKubeconfig.
const (
	// StdoutURI selects stdout for output and stdin for input.
	StdoutURI = "-"
	// ConfigMapURIScheme prefixes cm://namespace/name.
	ConfigMapURIScheme = "cm://"
)

// Format is an output format.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// IsUnknown reports whether f is not a supported format.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable:
		return false
	default:
		return true
	}
}

// Extension returns the file extension conventionally used for f.
func (f Format) Extension() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTable:
		return "txt"
	default:
		return "json"
	}
}

// SupportedFormats returns the names of all supported formats.
func SupportedFormats() []string {
	return []string{string(FormatJSON), string(FormatYAML), string(FormatTable)}
}
