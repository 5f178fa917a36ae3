package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/threadodds/internal/keyword"
	"github.com/nao1215/threadodds/internal/model"
	"github.com/nao1215/threadodds/internal/odds"
)

const (
	// MinKeywordGroups is the fewest keyword groups a run accepts.
	MinKeywordGroups = 2

	// MinPayoutRate is the lowest accepted payout rate.
	MinPayoutRate = 0.1

	// MaxPayoutRate is the highest accepted payout rate.
	MaxPayoutRate = 1.0
)

// Analyzer turns thread requests and keyword specifications into an
// AnalysisReport.
type Analyzer struct {
	batch  *BatchProcessor
	logger *slog.Logger
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithAnalyzerLogger sets the logger.
func WithAnalyzerLogger(logger *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// NewAnalyzer creates an Analyzer that fetches threads with batch.
func NewAnalyzer(batch *BatchProcessor, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{batch: batch}

	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = slog.Default()
	}

	return a
}

// NewScrapeAnalyzer wires the standard scrape and range steps around s.
func NewScrapeAnalyzer(s ThreadScraper, concurrency int, logger *slog.Logger) *Analyzer {
	factory := func() *Pipeline {
		p := New(WithLogger(logger))
		p.AddSteps(NewScrapeStep(s), NewRangeStep())
		return p
	}

	batch := NewBatchProcessor(factory,
		WithConcurrency(concurrency),
		WithBatchLogger(logger),
	)
	return NewAnalyzer(batch, WithAnalyzerLogger(logger))
}

// Validate checks a run before any network access.
func Validate(requests []model.ThreadRequest, groups []keyword.Group, payoutRate float64) error {
	if len(requests) == 0 {
		return ErrNoThreads
	}
	if len(groups) < MinKeywordGroups {
		return fmt.Errorf("%w: got %d", ErrTooFewKeywords, len(groups))
	}
	if payoutRate < MinPayoutRate || payoutRate > MaxPayoutRate {
		return fmt.Errorf("%w: got %.0f%%", ErrInvalidPayoutRate, payoutRate*100)
	}
	return nil
}

// Run validates the request, scrapes every thread and prices the keyword
// groups over the posts of all successful threads, in request order.
//
// Threads that fail are reported in the result but do not stop the run.
// When no thread contributes a post the error wraps ErrNoPostsRetrieved
// together with each thread's error.
func (a *Analyzer) Run(ctx context.Context, requests []model.ThreadRequest, specs []string, payoutRate float64) (*model.AnalysisReport, error) {
	groups := keyword.ParseGroups(specs)
	if err := Validate(requests, groups, payoutRate); err != nil {
		return nil, err
	}

	threads, err := a.batch.ProcessBatch(ctx, requests)
	if err != nil {
		return nil, err
	}

	var (
		posts  []string
		causes []error
	)
	for _, t := range threads {
		if t.Succeeded() {
			posts = append(posts, t.Bodies()...)
			continue
		}
		causes = append(causes, fmt.Errorf("%s: %w", t.Request.Reference, t.Error))
	}

	if len(posts) == 0 {
		return nil, errors.Join(append([]error{ErrNoPostsRetrieved}, causes...)...)
	}

	result, err := odds.Analyze(posts, specs, payoutRate)
	if err != nil {
		return nil, err
	}

	report := model.NewAnalysisReport(threads, result)
	a.logger.Info("analysis complete",
		"id", report.ID,
		"posts", report.Summary.PostCount,
		"mentions", report.Summary.TotalCount,
		"threads", report.Summary.ThreadCount,
		"succeeded", report.Summary.SuccessCount,
	)

	return report, nil
}
