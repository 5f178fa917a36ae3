package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/nao1215/threadodds/internal/model"
	"github.com/nao1215/threadodds/internal/odds"
)

// createTestReport creates a report with one good and one failed thread.
func createTestReport(t *testing.T) *model.AnalysisReport {
	t.Helper()

	ok := model.NewThreadReport(model.ThreadRequest{Reference: "https://egg.5ch.net/test/read.cgi/keiba/1/", Start: 1, End: 8})
	ok.Status = model.StatusSuccess
	ok.URL = "https://egg.5ch.net/test/read.cgi/keiba/1/"
	ok.Source = "dat"
	ok.PostCount = 8
	ok.TotalPosts = 120
	ok.Range = "1-8"

	bad := model.NewThreadReport(model.NewThreadRequest("https://egg.5ch.net/test/read.cgi/keiba/2/"))
	bad.Fail(errors.New("fetch failed: HTTP 503"))

	posts := []string{
		"Aチームは強いと思う", "Bチームが勝つでしょう", "やっぱりAだな", "Cチームも侮れない",
		"Aで間違いない", "Bの調子がいい", "チームAしかない", "A最強",
	}
	result, err := odds.Analyze(posts, []string{"Aチーム|A|チームA", "Bチーム|B", "Cチーム|C", "Dチーム"}, 0.8)
	if err != nil {
		t.Fatalf("failed to analyze: %v", err)
	}

	return model.NewAnalysisReport([]*model.ThreadReport{ok, bad}, result)
}

// TestSimpleWriter tests the human-readable report writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes summary and ranking", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := NewSimpleWriter(&buf).Write(createTestReport(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("expected %d bytes reported, got %d", buf.Len(), n)
		}

		out := buf.String()
		for _, want := range []string{
			"THREAD ODDS",
			"Threads:      1/2 succeeded",
			"Payout rate:  80%",
			"1.28",
			"62.5%",
			"fetch failed: HTTP 503",
			"Posts: 8 of 120 (range 1-8)",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q\n%s", want, out)
			}
		}

		if strings.Index(out, "Aチーム") > strings.Index(out, "Dチーム") {
			t.Error("expected Aチーム to be listed before Dチーム")
		}
		if strings.Contains(out, "synonyms:") {
			t.Error("expected synonyms only in verbose mode")
		}
	})

	t.Run("aligns wide keywords", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestReport(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var widths []int
		for _, line := range strings.Split(buf.String(), "\n") {
			if strings.HasPrefix(line, "  ") && strings.HasSuffix(line, "%") {
				widths = append(widths, runewidth.StringWidth(line))
			}
		}
		if len(widths) != 4 {
			t.Fatalf("expected 4 result rows, got %d", len(widths))
		}
		for _, w := range widths[1:] {
			if w != widths[0] {
				t.Errorf("expected equal row widths, got %v", widths)
			}
		}
	})

	t.Run("verbose output", func(t *testing.T) {
		t.Parallel()

		report := createTestReport(t)
		report.Threads[0].Lossy = true

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithVerbose(true)).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		for _, want := range []string{"Run ID:", "synonyms: Aチーム, A, チームA", "Source: dat", "could not be decoded"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})
}

// TestJSONWriter tests the JSON writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("compact", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestReport(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		if strings.Count(out, "\n") != 1 {
			t.Errorf("expected a single line, got %q", out)
		}

		var decoded struct {
			Results []struct {
				Keyword     string   `json:"keyword"`
				Odds        *float64 `json:"odds"`
				OddsDisplay string   `json:"odds_display"`
			} `json:"results"`
			Summary struct {
				SuccessCount int `json:"success_count"`
			} `json:"summary"`
		}
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(decoded.Results) != 4 {
			t.Fatalf("expected 4 results, got %d", len(decoded.Results))
		}
		if decoded.Results[3].Odds != nil || decoded.Results[3].OddsDisplay != "-" {
			t.Errorf("expected undefined odds for the last row, got %+v", decoded.Results[3])
		}
		if decoded.Summary.SuccessCount != 1 {
			t.Errorf("expected success count 1, got %d", decoded.Summary.SuccessCount)
		}
	})

	t.Run("indented", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithIndent("", "\t")).Write(createTestReport(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n\t\"results\"") {
			t.Error("expected tab indentation")
		}
	})

	t.Run("full report with version", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewFullJSONWriter(&buf, "v1.2.3", WithPrettyPrint()).Write(createTestReport(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded JSONReport
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.Version != "v1.2.3" {
			t.Errorf("expected version v1.2.3, got %q", decoded.Version)
		}
		if decoded.Report == nil || len(decoded.Report.Results) != 4 {
			t.Error("expected the report to be embedded")
		}
	})
}

// TestMarkdownWriter tests the Markdown writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("tables and chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestReport(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		for _, want := range []string{
			"# Thread Odds",
			"## Odds",
			"## Threads",
			"```mermaid",
			"pie showData",
			"Mention Share",
			"Aチーム, A, チームA",
			"[!WARNING]",
			"fetch failed: HTTP 503",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q\n%s", want, out)
			}
		}
		if strings.Contains(out, `"Dチーム"`) {
			t.Error("expected unmentioned groups to be left out of the chart")
		}
	})

	t.Run("no mentions", func(t *testing.T) {
		t.Parallel()

		result, err := odds.Analyze([]string{"nothing here"}, []string{"A", "B"}, 0.8)
		if err != nil {
			t.Fatalf("failed to analyze: %v", err)
		}
		th := model.NewThreadReport(model.NewThreadRequest("u"))
		th.Status = model.StatusSuccess

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(model.NewAnalysisReport([]*model.ThreadReport{th}, result)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		if strings.Contains(out, "```mermaid") {
			t.Error("expected no chart without mentions")
		}
		if !strings.Contains(out, "[!NOTE]") {
			t.Error("expected a note about missing mentions")
		}
	})
}
