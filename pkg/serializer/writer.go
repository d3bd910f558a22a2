package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"sort"
	"strings"
	"sync"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Serializer writes a value in a particular format.
type Serializer interface {
	Serialize(ctx context.Context, v any) error
}

// Closer is implemented by serializers holding a resource.
type Closer interface {
	Close() error
}

// TableRenderer lets a type control its table representation.
type TableRenderer interface {
	TableHeader() []string
	TableRows() [][]string
}

// Writer serializes values to an io.Writer.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer
	once   sync.Once
}

// NewWriter returns a Writer for format writing to output. Unknown formats
// fall back to JSON and a nil output to stdout.
func NewWriter(format Format, output io.Writer) *Writer {
	if format.IsUnknown() {
		slog.Warn("unknown output format, falling back to json", "format", format)
		format = FormatJSON
	}
	if output == nil {
		output = os.Stdout
	}
	return &Writer{format: format, output: output}
}

// NewStdoutWriter returns a Writer for format writing to stdout.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// NewFileWriterOrStdout returns a Serializer for the output destination path:
// stdout for "" or "-", a ConfigMap for cm://namespace/name, a file otherwise.
func NewFileWriterOrStdout(format Format, path string) (Serializer, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == StdoutURI {
		return NewStdoutWriter(format), nil
	}

	if strings.HasPrefix(path, ConfigMapURIScheme) {
		namespace, name, err := parseConfigMapURI(path)
		if err != nil {
			return nil, err
		}
		return NewConfigMapWriter(namespace, name, format), nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	w := NewWriter(format, f)
	w.closer = f
	return w, nil
}

// Serialize writes v in the writer's format.
func (w *Writer) Serialize(_ context.Context, v any) error {
	switch w.format {
	case FormatYAML:
		enc := yaml.NewEncoder(w.output)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize to yaml: %w", err)
		}
		return enc.Close()
	case FormatTable:
		return writeTable(w.output, v)
	default:
		enc := json.NewEncoder(w.output)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize to json: %w", err)
		}
		return nil
	}
}

// Close releases the underlying file, if any. It is safe to call repeatedly.
func (w *Writer) Close() error {
	var err error
	w.once.Do(func() {
		if w.closer != nil {
			err = w.closer.Close()
		}
	})
	return err
}

func writeTable(out io.Writer, v any) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	if r, ok := v.(TableRenderer); ok {
		fmt.Fprintln(tw, strings.Join(r.TableHeader(), "\t"))
		for _, row := range r.TableRows() {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		return tw.Flush()
	}

	rows := make([][2]string, 0)
	flatten("", reflect.ValueOf(v), &rows)

	fmt.Fprintln(tw, "FIELD\tVALUE")
	if len(rows) == 0 {
		fmt.Fprintln(tw, "<empty>\t")
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}

// flatten walks v and appends one row per leaf, keyed by its path.
func flatten(prefix string, v reflect.Value, rows *[][2]string) {
	if !v.IsValid() {
		*rows = append(*rows, [2]string{prefix, "<nil>"})
		return
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			*rows = append(*rows, [2]string{prefix, "<nil>"})
			return
		}
		flatten(prefix, v.Elem(), rows)
	case reflect.Struct:
		if s, ok := v.Interface().(fmt.Stringer); ok {
			*rows = append(*rows, [2]string{prefix, s.String()})
			return
		}
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			flatten(join(prefix, t.Field(i).Name), v.Field(i), rows)
		}
	case reflect.Map:
		keys := v.MapKeys()
		sort.Slice(keys, func(a, b int) bool {
			return fmt.Sprint(keys[a].Interface()) < fmt.Sprint(keys[b].Interface())
		})
		for _, k := range keys {
			flatten(join(prefix, fmt.Sprint(k.Interface())), v.MapIndex(k), rows)
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			flatten(fmt.Sprintf("%s[%d]", prefix, i), v.Index(i), rows)
		}
	default:
		*rows = append(*rows, [2]string{prefix, fmt.Sprint(v.Interface())})
	}
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
