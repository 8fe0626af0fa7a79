package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/fabricofdreams/falcon9dash/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the snapshot in Markdown format.
func (w *MarkdownWriter) Write(report *model.DashboardReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writePie(md, report)
	w.writeScatter(md, report)
	w.writeSites(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the inputs the charts were computed with.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.DashboardReport) {
	md.H1("SpaceX Launch Records Dashboard")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", "`" + report.Source + "`"},
			{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Records", w.count(report.Records)},
			{"Launch sites", w.count(len(report.Sites))},
			{"Site selection", selectionLabel(report.Selection)},
			{"Payload range", w.kg(report.Range.Low) + " to " + w.kg(report.Range.High)},
			{"Payload in data", w.kg(report.Bounds.MinPositive) + " to " + w.kg(report.Bounds.Max)},
		},
	})
	md.PlainText("")
}

// writePie writes the pie slices as a table and a mermaid pie chart.
func (w *MarkdownWriter) writePie(md *markdown.Markdown, report *model.DashboardReport) {
	md.H2(report.Pie.Title)
	md.PlainText("")

	if report.Pie.IsEmpty() {
		md.Note("No successful launches to chart for this selection.")
		md.PlainText("")
		return
	}

	header := "Launch Site"
	if report.Pie.Mode == model.PieModeOutcomes {
		header = "Class"
	}
	rows := make([][]string, 0, len(report.Pie.Slices))
	for _, s := range report.Pie.Slices {
		rows = append(rows, []string{s.Label, strconv.FormatFloat(s.Value, 'f', -1, 64)})
	}
	md.Table(markdown.TableSet{
		Header: []string{header, "Launches"},
		Rows:   rows,
	})
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle(report.Pie.Title),
		piechart.WithShowData(true),
	)
	for _, s := range report.Pie.Slices {
		if s.Value > 0 {
			chart.LabelAndIntValue(s.Label, uint64(s.Value))
		}
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeScatter writes the scatter point counts per booster category.
func (w *MarkdownWriter) writeScatter(md *markdown.Markdown, report *model.DashboardReport) {
	md.H2(report.Scatter.Title)
	md.PlainText("")

	if len(report.Scatter.Points) == 0 {
		md.Note("No launches fall within the selected payload range.")
		md.PlainText("")
		return
	}

	counts := report.GroupCounts()
	rows := make([][]string, 0, len(counts)+1)
	for _, gc := range counts {
		rows = append(rows, []string{gc.Group, w.count(gc.Launches), w.count(gc.Successes)})
	}
	rows = append(rows, []string{
		"**Total**",
		"**" + w.count(len(report.Scatter.Points)) + "**",
		"**" + w.count(report.ScatterSuccesses()) + "**",
	})
	md.Table(markdown.TableSet{
		Header: []string{"Booster Version Category", "Launches", "Successes"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSites writes the per-site outcome table over all records.
func (w *MarkdownWriter) writeSites(md *markdown.Markdown, report *model.DashboardReport) {
	md.H2("Launch Sites")
	md.PlainText("")

	rows := make([][]string, 0, len(report.SiteSummaries))
	for _, s := range report.SiteSummaries {
		rows = append(rows, []string{
			s.Site,
			w.count(s.Launches),
			w.count(s.Successes),
			w.count(s.Failures()),
			w.percent(s.SuccessRate()),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Site", "Launches", "Successes", "Failures", "Success rate"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("*Generated by launchdash*")
}
