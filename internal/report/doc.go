// Package report writes analysis reports.
//
// This package contains writers for different output formats:
//   - SimpleWriter: aligned text for terminal display
//   - JSONWriter: structured JSON for tool integration
//   - MarkdownWriter: tables and a mermaid pie chart for sharing
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
