package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fabricofdreams/falcon9dash/internal/model"
)

// JSONWriter encodes snapshots as JSON, one document per Write.
type JSONWriter struct {
	baseWriter

	// prefix and indent are passed to json.Encoder.SetIndent. Both empty
	// means compact output.
	prefix string
	indent string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent indents nested values with indent, each line starting with prefix.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.prefix = prefix
		w.indent = indent
	}
}

// WithPrettyPrint indents by two spaces.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter writing to output. Output is compact
// unless an indent option is given.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write encodes the bare snapshot.
func (w *JSONWriter) Write(report *model.DashboardReport) (int, error) {
	return w.encode(report)
}

// encode buffers the whole document so a failed encode writes nothing.
// Site names are written as is, without HTML escaping.
func (w *JSONWriter) encode(v any) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(w.prefix, w.indent)
	if err := enc.Encode(v); err != nil {
		return 0, fmt.Errorf("encode report: %w", err)
	}
	return w.output.Write(buf.Bytes())
}

// JSONReport wraps a snapshot with the version of the tool that made it.
type JSONReport struct {
	// Version is the launchdash version that generated this report.
	Version string `json:"version"`

	// Report is the dashboard snapshot.
	Report *model.DashboardReport `json:"report"`

	// Boosters tallies the scatter points per booster category.
	Boosters []model.GroupCount `json:"boosters"`
}

// FullJSONWriter outputs snapshots with a metadata wrapper.
type FullJSONWriter struct {
	*JSONWriter

	// version is the launchdash version string.
	version string
}

// NewFullJSONWriter creates a writer for wrapped snapshots.
func NewFullJSONWriter(output io.Writer, version string, opts ...JSONWriterOption) *FullJSONWriter {
	return &FullJSONWriter{
		JSONWriter: NewJSONWriter(output, opts...),
		version:    version,
	}
}

// Write outputs the snapshot wrapped with metadata.
func (w *FullJSONWriter) Write(report *model.DashboardReport) (int, error) {
	return w.encode(&JSONReport{
		Version:  w.version,
		Report:   report,
		Boosters: report.GroupCounts(),
	})
}
