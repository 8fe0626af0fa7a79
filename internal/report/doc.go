// Package report renders dashboard snapshots for the summary command.
//
// This package contains writers for different output formats:
//   - TextWriter: Tables for terminal display
//   - MarkdownWriter: Markdown with a mermaid pie chart, for sharing
//   - JSONWriter: Structured JSON output for tool integration
//
// Snapshots are built by the dashboard package; writers only format them.
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
