package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/porytext/internal/logging"
	"github.com/yaklabco/porytext/pkg/lint"
)

// Runner fans Poryscript files out to a pool of pipeline workers.
type Runner struct {
	// Pipeline checks and converts one file at a time.
	Pipeline *lint.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and processes them concurrently.
// Each worker reads its own copy of a file, so files never share state.
// Outcomes are returned in path order regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	workers := opts.Jobs
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	// Each goroutine writes only its own slot. Per-file failures are kept in
	// the outcome, so no goroutine returns an error.
	outcomes := make([]*FileOutcome, len(files))
	pipelineOpts := opts.pipelineOptions()

	var g errgroup.Group
	g.SetLimit(min(workers, len(files)))
	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			outcome := r.process(ctx, path, pipelineOpts)
			outcomes[i] = &outcome
			return nil
		})
	}
	_ = g.Wait()

	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// process runs the pipeline for one file.
func (r *Runner) process(ctx context.Context, path string, opts lint.PipelineOptions) FileOutcome {
	ctx = logging.WithFile(ctx, path)
	logger := logging.FromContext(ctx)

	pr, err := r.Pipeline.ProcessFile(ctx, path, opts)
	if err != nil {
		logger.Debug("file failed", logging.FieldError, err)
		return FileOutcome{Path: path, Error: err}
	}

	logger.Debug("file processed",
		logging.FieldLines, len(pr.Lines),
		logging.FieldDiagnostics, len(pr.Diagnostics),
		logging.FieldConversions, pr.Conversions,
	)
	return FileOutcome{Path: path, Result: pr}
}
