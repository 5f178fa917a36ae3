package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/threadodds/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency processes threads one at a time.
const DefaultConcurrency = 1

// BatchProcessor runs a fresh pipeline for each requested thread.
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each thread.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of threads processed at once.
	concurrency int

	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of threads processed at once.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch processes every request and returns one report per request
// in input order. A failed thread is recorded in its report and does not
// stop the others. The error is non-nil only when ctx was cancelled; the
// reports of threads that never started then carry the cancellation error.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, requests []model.ThreadRequest) ([]*model.ThreadReport, error) {
	bp.logger.Info("starting batch processing",
		"threads", len(requests),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	reports := make([]*model.ThreadReport, len(requests))
	for i, req := range requests {
		reports[i] = model.NewThreadReport(req)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i := range requests {
		report := reports[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				report.Fail(err)
				return err
			}

			bp.logger.Debug("processing thread",
				"thread", report.Request.Reference,
				"index", i+1,
				"total", len(requests),
			)

			started := time.Now()
			err := bp.pipelineFactory().Execute(gctx, report)
			report.Elapsed = time.Since(started)

			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				bp.logger.Warn("thread failed",
					"thread", report.Request.Reference,
					"error", err,
				)
				return nil
			}

			bp.logger.Info("thread processed",
				"thread", report.URL,
				"posts", report.PostCount,
				"total_posts", report.TotalPosts,
			)
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch processing complete",
		"threads", len(requests),
		"elapsed", time.Since(startTime),
	)

	return reports, err
}
