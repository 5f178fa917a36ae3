package pipeline

import (
	"context"

	"github.com/nao1215/threadodds/internal/model"
	"github.com/nao1215/threadodds/internal/scraper"
)

// ThreadScraper retrieves every post of a thread.
type ThreadScraper interface {
	Scrape(ctx context.Context, reference string) (*scraper.Thread, error)
}

// ScrapeStep downloads the thread named by the request.
type ScrapeStep struct {
	scraper ThreadScraper
}

// NewScrapeStep creates a step that scrapes with s.
func NewScrapeStep(s ThreadScraper) *ScrapeStep {
	return &ScrapeStep{scraper: s}
}

// Name returns the step name.
func (s *ScrapeStep) Name() string {
	return "scrape"
}

// Do scrapes the thread and stores all of its posts on the report.
func (s *ScrapeStep) Do(ctx context.Context, report *model.ThreadReport) error {
	th, err := s.scraper.Scrape(ctx, report.Request.Reference)
	if err != nil {
		return err
	}

	report.URL = th.Locator.String()
	report.Source = string(th.Source)
	report.Lossy = th.Lossy
	report.Posts = th.Posts
	report.TotalPosts = th.TotalPosts()
	return nil
}

// RangeStep keeps the posts inside the requested range.
type RangeStep struct{}

// NewRangeStep creates a range step.
func NewRangeStep() *RangeStep {
	return &RangeStep{}
}

// Name returns the step name.
func (s *RangeStep) Name() string {
	return "range"
}

// Do selects the requested posts. A range beyond the end of the thread
// selects nothing.
func (s *RangeStep) Do(_ context.Context, report *model.ThreadReport) error {
	lo, hi := report.Request.Bounds(len(report.Posts))
	report.Selected = report.Posts[lo:hi]
	report.PostCount = len(report.Selected)
	report.Range = report.Request.RangeLabel(len(report.Posts))
	return nil
}
