package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/threadodds/internal/extract"
	"github.com/nao1215/threadodds/internal/odds"
)

func TestThreadReport(t *testing.T) {
	t.Parallel()

	r := NewThreadReport(NewThreadRequest("https://a.5ch.net/test/read.cgi/x/1/"))
	if r.Status != StatusPending || r.Succeeded() {
		t.Errorf("expected pending report, got %q", r.Status)
	}

	r.Selected = []extract.Post{{Number: 1, Body: "a"}}
	r.PostCount = 1
	r.Fail(errors.New("boom"))

	if r.Status != StatusError {
		t.Errorf("expected error status, got %q", r.Status)
	}
	if r.ErrorMessage != "boom" {
		t.Errorf("expected error message, got %q", r.ErrorMessage)
	}
	if r.PostCount != 0 || len(r.Bodies()) != 0 {
		t.Error("expected failed report to carry no posts")
	}
}

func TestNewAnalysisReport(t *testing.T) {
	t.Parallel()

	ok := NewThreadReport(NewThreadRequest("ok"))
	ok.Status = StatusSuccess
	bad := NewThreadReport(NewThreadRequest("bad"))
	bad.Fail(errors.New("no posts"))

	result, err := odds.Analyze([]string{"A", "A", "B"}, []string{"A", "B", "C"}, 0.8)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	report := NewAnalysisReport([]*ThreadReport{ok, bad}, result)

	if report.ID == "" || len(report.ID) != 26 {
		t.Errorf("expected a ULID, got %q", report.ID)
	}
	if report.Summary.ThreadCount != 2 || report.Summary.SuccessCount != 1 {
		t.Errorf("unexpected thread counts: %+v", report.Summary)
	}
	if report.Summary.KeywordCount != 3 || report.Summary.TotalCount != 3 || report.Summary.PostCount != 3 {
		t.Errorf("unexpected summary: %+v", report.Summary)
	}
	if report.Summary.PayoutRateDisplay() != "80%" {
		t.Errorf("expected 80%%, got %q", report.Summary.PayoutRateDisplay())
	}
	if len(report.FailedThreads()) != 1 || report.FailedThreads()[0] != bad {
		t.Error("expected the failed thread to be reported")
	}

	first := report.Results[0]
	if first.Keyword != "A" || first.OddsDisplay != "1.20" || first.ProbabilityDisplay != "66.7%" {
		t.Errorf("unexpected first row: %+v", first)
	}

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"keyword":"C","count":0,"odds":null`) {
		t.Errorf("expected null odds for C in %s", data)
	}
	if !strings.Contains(string(data), `"error":"no posts"`) {
		t.Errorf("expected error message in %s", data)
	}
}

func TestNewID(t *testing.T) {
	t.Parallel()

	now := time.Now()
	a, b := NewID(now), NewID(now)
	if a == b {
		t.Error("expected distinct identifiers")
	}
	if a >= b {
		t.Errorf("expected increasing identifiers, got %s then %s", a, b)
	}
}
