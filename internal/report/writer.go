package report

import (
	"io"

	"github.com/nao1215/threadodds/internal/model"
)

// Writer outputs an analysis report.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.AnalysisReport) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// dash replaces an empty value with "-".
func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
