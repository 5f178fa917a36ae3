package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/threadodds/internal/model"
)

// Step is one stage of processing a thread.
type Step interface {
	// Do executes the step, updating report. A returned error stops the
	// pipeline and marks the thread as failed.
	Do(ctx context.Context, report *model.ThreadReport) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline executes steps in order for a single thread.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in sequence and stops at the first failure, which
// is recorded on report and returned. A report whose steps all succeed is
// marked successful.
func (p *Pipeline) Execute(ctx context.Context, report *model.ThreadReport) error {
	p.logger.Debug("running pipeline",
		"thread", report.Request.Reference,
		"steps", p.StepNames(),
	)

	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", err,
			)
			report.Fail(err)
			return err
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"thread", report.Request.Reference,
		)

		if err := step.Do(ctx, report); err != nil {
			p.logger.Warn("step failed",
				"step", step.Name(),
				"thread", report.Request.Reference,
				"error", err,
			)
			report.Fail(err)
			return err
		}
	}

	report.Status = model.StatusSuccess
	return nil
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
