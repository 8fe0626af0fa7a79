package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/fabricofdreams/falcon9dash/internal/model"
)

// Writer defines the interface for report output.
// Implementations write dashboard snapshots in various formats.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.DashboardReport) (int, error)
}

// Format names an output format of the summary command.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ErrUnknownFormat is returned by NewWriter for unsupported formats.
var ErrUnknownFormat = errors.New("unknown report format")

// NewWriter returns the writer for format, writing to output.
func NewWriter(format Format, output io.Writer, version string) (Writer, error) {
	switch Format(strings.ToLower(string(format))) {
	case FormatText, "":
		return NewTextWriter(output), nil
	case FormatMarkdown, "md":
		return NewMarkdownWriter(output), nil
	case FormatJSON:
		return NewFullJSONWriter(output, version, WithPrettyPrint()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// MultiWriter writes to multiple Writers in turn.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *model.DashboardReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output  io.Writer
	printer *message.Printer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{
		output:  output,
		printer: message.NewPrinter(language.English),
	}
}

// kg formats a payload mass with thousands separators, e.g. "9,600 kg".
func (b baseWriter) kg(v float64) string {
	return b.printer.Sprintf("%v kg", number.Decimal(v, number.MaxFractionDigits(1)))
}

// count formats an integer with thousands separators.
func (b baseWriter) count(n int) string {
	return b.printer.Sprintf("%d", n)
}

// percent formats a ratio in [0, 1] as a whole percentage.
func (b baseWriter) percent(ratio float64) string {
	return b.printer.Sprintf("%v", number.Percent(ratio, number.MaxFractionDigits(0)))
}

// selectionLabel is the human-readable form of a site selection.
func selectionLabel(s model.SiteSelection) string {
	if s.IsAll() {
		return "All Sites"
	}
	return s.String()
}
