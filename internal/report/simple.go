package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/nao1215/threadodds/internal/model"
)

const ruleWidth = 70

// SimpleWriter outputs human-readable text reports with aligned columns.
type SimpleWriter struct {
	baseWriter

	// verbose adds synonyms and per-thread details.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.AnalysisReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeResults(&sb, report)
	w.writeThreads(&sb, report)
	w.writeFooter(&sb)

	return io.WriteString(w.output, sb.String())
}

func section(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")
}

// writeHeader writes the title and the summary.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.AnalysisReport) {
	s := report.Summary

	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("                         THREAD ODDS\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Generated:    %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	if w.verbose {
		fmt.Fprintf(sb, "Run ID:       %s\n", report.ID)
	}
	fmt.Fprintf(sb, "Threads:      %d/%d succeeded\n", s.SuccessCount, s.ThreadCount)
	fmt.Fprintf(sb, "Posts:        %d\n", s.PostCount)
	fmt.Fprintf(sb, "Mentions:     %d\n", s.TotalCount)
	fmt.Fprintf(sb, "Keywords:     %d\n", s.KeywordCount)
	fmt.Fprintf(sb, "Payout rate:  %s\n", s.PayoutRateDisplay())
	sb.WriteString("\n")
}

// writeResults writes the ranking table.
func (w *SimpleWriter) writeResults(sb *strings.Builder, report *model.AnalysisReport) {
	section(sb, "ODDS")

	nameWidth := runewidth.StringWidth("KEYWORD")
	for _, r := range report.Results {
		nameWidth = max(nameWidth, runewidth.StringWidth(r.Keyword))
	}

	fmt.Fprintf(sb, "  %4s  %s  %6s  %8s  %8s\n",
		"#", runewidth.FillRight("KEYWORD", nameWidth), "COUNT", "ODDS", "PROB")

	for i, r := range report.Results {
		fmt.Fprintf(sb, "  %4d  %s  %6d  %8s  %8s\n",
			i+1,
			runewidth.FillRight(r.Keyword, nameWidth),
			r.Count,
			r.OddsDisplay,
			r.ProbabilityDisplay,
		)
		if w.verbose && len(r.Synonyms) > 1 {
			fmt.Fprintf(sb, "        synonyms: %s\n", strings.Join(r.Synonyms, ", "))
		}
	}
	sb.WriteString("\n")
}

// writeThreads writes one line per requested thread.
func (w *SimpleWriter) writeThreads(sb *strings.Builder, report *model.AnalysisReport) {
	section(sb, "THREADS")

	for _, t := range report.Threads {
		if !t.Succeeded() {
			fmt.Fprintf(sb, "  [x] %s\n", t.URL)
			fmt.Fprintf(sb, "      Error: %s\n", t.ErrorMessage)
			continue
		}

		fmt.Fprintf(sb, "  [+] %s\n", t.URL)
		fmt.Fprintf(sb, "      Posts: %d of %d (range %s)\n", t.PostCount, t.TotalPosts, t.Range)
		if w.verbose {
			fmt.Fprintf(sb, "      Source: %s\n", t.Source)
			if t.Lossy {
				sb.WriteString("      Note: some characters could not be decoded\n")
			}
		}
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("Odds are computed from keyword mentions and are for entertainment only.\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
}
