package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/cyriscan/internal/model"
)

// Job carries one URL through the pipeline.
type Job struct {
	// URL is the page to scrape.
	URL string

	// Page is set by the fetch step.
	Page *model.FetchedPage

	// Record is set by the extract step.
	Record *model.RequirementRecord

	// Err is the first step error, if any.
	Err error

	// PerformedSteps lists the steps that ran, in order.
	PerformedSteps []string
}

// NewJob returns a job for url.
func NewJob(url string) *Job {
	return &Job{URL: url}
}

// Result returns the job's record, or a failed record carrying Err when
// no record was produced.
func (j *Job) Result() *model.RequirementRecord {
	if j.Record != nil {
		return j.Record
	}
	err := j.Err
	if err == nil {
		err = ErrNoRecord
	}
	return model.NewFailedRecord(j.URL, err)
}

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, each seeing what the previous ones
// stored in the Job.
type Step interface {
	// Do executes the step. Returning an error stops the pipeline.
	Do(ctx context.Context, job *Job) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
type Pipeline struct {
	steps []Step

	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
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

// Execute runs all steps in sequence.
//
// Cancellation is checked before each step; steps handle their own
// timeouts. The first error stops the run and is also recorded in job.Err.
func (p *Pipeline) Execute(ctx context.Context, job *Job) error {
	defer func() {
		p.logger.Debug("pipeline finished",
			"url", job.URL,
			"performed", job.PerformedSteps,
			"steps", p.StepNames(),
		)
	}()

	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"url", job.URL,
				"reason", err,
			)
			if job.Err == nil {
				job.Err = err
			}
			return err
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"url", job.URL,
		)

		if err := step.Do(ctx, job); err != nil {
			p.logger.Warn("step failed",
				"step", step.Name(),
				"url", job.URL,
				"error", err,
			)
			if job.Err == nil {
				job.Err = err
			}
			return err
		}

		job.PerformedSteps = append(job.PerformedSteps, step.Name())
	}
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
