package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fabricofdreams/falcon9dash/internal/model"
)

// TextWriter outputs snapshots as tables for terminal display.
type TextWriter struct {
	baseWriter

	// showSites adds the per-site outcome table.
	showSites bool
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithSiteTable toggles the per-site outcome table. It is on by default.
func WithSiteTable(show bool) TextWriterOption {
	return func(w *TextWriter) {
		w.showSites = show
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{
		baseWriter: newBaseWriter(output),
		showSites:  true,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the snapshot as text tables.
func (w *TextWriter) Write(report *model.DashboardReport) (int, error) {
	var sb strings.Builder

	sb.WriteString(w.inputsTable(report))
	sb.WriteString("\n\n")
	sb.WriteString(w.pieTable(report))
	sb.WriteString("\n\n")
	sb.WriteString(w.scatterTable(report))
	sb.WriteString("\n")
	if w.showSites {
		sb.WriteString("\n")
		sb.WriteString(w.sitesTable(report))
		sb.WriteString("\n")
	}

	return io.WriteString(w.output, sb.String())
}

func newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	return t
}

func (w *TextWriter) inputsTable(report *model.DashboardReport) string {
	t := newTable("SpaceX Launch Records Dashboard")
	t.AppendRow(table.Row{"Source", report.Source})
	t.AppendRow(table.Row{"Records", w.count(report.Records)})
	t.AppendRow(table.Row{"Launch sites", strings.Join(report.Sites, ", ")})
	t.AppendRow(table.Row{"Site selection", selectionLabel(report.Selection)})
	t.AppendRow(table.Row{"Payload range", w.kg(report.Range.Low) + " to " + w.kg(report.Range.High)})
	t.AppendRow(table.Row{"Payload in data", w.kg(report.Bounds.MinPositive) + " to " + w.kg(report.Bounds.Max)})
	return t.Render()
}

func (w *TextWriter) pieTable(report *model.DashboardReport) string {
	pie := report.Pie
	mode := cases.Title(language.English).String(string(pie.Mode))

	t := newTable(pie.Title)
	t.AppendHeader(table.Row{mode, "Launches"})
	for _, s := range pie.Slices {
		t.AppendRow(table.Row{s.Label, strconv.FormatFloat(s.Value, 'f', -1, 64)})
	}
	t.AppendFooter(table.Row{"Total", strconv.FormatFloat(pie.Total(), 'f', -1, 64)})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	return t.Render()
}

func (w *TextWriter) scatterTable(report *model.DashboardReport) string {
	t := newTable(report.Scatter.Title)
	t.AppendHeader(table.Row{"Booster", "Launches", "Successes"})
	for _, gc := range report.GroupCounts() {
		t.AppendRow(table.Row{gc.Group, w.count(gc.Launches), w.count(gc.Successes)})
	}
	t.AppendFooter(table.Row{"Total", w.count(len(report.Scatter.Points)), w.count(report.ScatterSuccesses())})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	return t.Render()
}

func (w *TextWriter) sitesTable(report *model.DashboardReport) string {
	t := newTable("Launch Sites")
	t.AppendHeader(table.Row{"Site", "Launches", "Successes", "Failures", "Success rate"})
	for _, s := range report.SiteSummaries {
		t.AppendRow(table.Row{
			s.Site,
			w.count(s.Launches),
			w.count(s.Successes),
			w.count(s.Failures()),
			w.percent(s.SuccessRate()),
		})
	}
	return t.Render()
}
