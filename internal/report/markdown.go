package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/threadodds/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.AnalysisReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeResults(md, report)
	w.writeThreads(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the summary table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.AnalysisReport) {
	s := report.Summary

	md.H1("Thread Odds")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run ID", "`" + report.ID + "`"},
			{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Threads", strconv.Itoa(s.SuccessCount) + "/" + strconv.Itoa(s.ThreadCount)},
			{"Posts", strconv.Itoa(s.PostCount)},
			{"Mentions", strconv.Itoa(s.TotalCount)},
			{"Payout Rate", s.PayoutRateDisplay()},
		},
	})
	md.PlainText("")
}

// writeResults writes the ranking table and the share chart.
func (w *MarkdownWriter) writeResults(md *markdown.Markdown, report *model.AnalysisReport) {
	md.H2("Odds")
	md.PlainText("")

	rows := make([][]string, len(report.Results))
	for i, r := range report.Results {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			r.Keyword,
			strconv.Itoa(r.Count),
			r.OddsDisplay,
			r.ProbabilityDisplay,
			strings.Join(r.Synonyms, ", "),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Rank", "Keyword", "Count", "Odds", "Probability", "Synonyms"},
		Rows:   rows,
	})
	md.PlainText("")

	if report.Summary.TotalCount > 0 {
		w.writePieChart(md, report)
		md.Tipf("Favourite: %s at %s.", report.Results[0].Keyword, report.Results[0].OddsDisplay)
	} else {
		md.Note("No keyword was mentioned in the retrieved posts.")
	}
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of mention shares.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.AnalysisReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Mention Share"),
		piechart.WithShowData(true),
	)

	for _, r := range report.Results {
		if r.Count > 0 {
			chart.LabelAndIntValue(r.Keyword, uint64(r.Count))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeThreads writes the per-thread table and a warning for failures.
func (w *MarkdownWriter) writeThreads(md *markdown.Markdown, report *model.AnalysisReport) {
	md.H2("Threads")
	md.PlainText("")

	rows := make([][]string, len(report.Threads))
	for i, t := range report.Threads {
		rows[i] = []string{
			t.URL,
			string(t.Status),
			dash(t.Source),
			strconv.Itoa(t.PostCount),
			strconv.Itoa(t.TotalPosts),
			dash(t.Range),
			dash(t.ErrorMessage),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"URL", "Status", "Source", "Posts Used", "Total Posts", "Range", "Error"},
		Rows:   rows,
	})
	md.PlainText("")

	if failed := report.FailedThreads(); len(failed) > 0 {
		md.Warningf("%d thread(s) could not be used and were left out of the odds.", len(failed))
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [threadodds](https://github.com/nao1215/threadodds)*")
}
