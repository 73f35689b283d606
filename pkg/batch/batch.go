// Package batch drives the framing engine over an ordered list of files,
// with progress reporting and cooperative cancellation.
package batch

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/menta2k/photo-framer/internal/utils"
	"github.com/menta2k/photo-framer/pkg/framer"
)

// ProgressFunc is invoked after each file finishes, with the number of
// completed files, the total count and the file's base name. It runs on the
// processing goroutine; callers driving UI state must re-post it to their
// own context.
type ProgressFunc func(completed, total int, filename string)

// Outcome is delivered exactly once when an asynchronous run finishes.
type Outcome struct {
	Results []framer.Result
	Err     error
}

// Runner processes files strictly in input order through the engine's
// single-image pipeline. A Runner is good for one run: the cancellation flag
// only ever moves from false to true.
type Runner struct {
	engine    *framer.Engine
	logger    *slog.Logger
	cancelled atomic.Bool
}

// NewRunner creates a Runner bound to an engine.
func NewRunner(engine *framer.Engine) *Runner {
	return NewRunnerWithLogger(engine, nil)
}

// NewRunnerWithLogger is NewRunner with a custom logger. A nil logger falls
// back to slog.Default().
func NewRunnerWithLogger(engine *framer.Engine, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{engine: engine, logger: logger}
}

// Cancel requests that the run stop before the next file. The file currently
// being processed is allowed to finish, so no partial output is ever left
// corrupted. Safe to call from any goroutine.
func (r *Runner) Cancel() {
	r.cancelled.Store(true)
}

// Cancelled reports whether Cancel has been called.
func (r *Runner) Cancelled() bool {
	return r.cancelled.Load()
}

// Run processes files in order, producing one Result per file. Per-file
// failures are recorded in their Result and never stop the run; only an
// unwritable output directory or an undecodable frame aborts it, before any
// file is touched. When cancelled, the returned slice is the prefix
// completed so far. An empty file list yields an empty slice.
func (r *Runner) Run(files []string, progress ProgressFunc) ([]framer.Result, error) {
	cfg := r.engine.Config()
	if err := utils.EnsureDir(cfg.OutputDir); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	// Surface a frame that cannot be decoded before touching any file.
	if _, err := r.engine.Frame(); err != nil {
		return nil, err
	}

	total := len(files)
	results := make([]framer.Result, 0, total)
	for i, file := range files {
		if r.cancelled.Load() {
			r.logger.Info("processing cancelled", "completed", i, "total", total)
			break
		}

		results = append(results, r.engine.ProcessImage(file))

		if progress != nil {
			progress(i+1, total, filepath.Base(file))
		}
	}
	return results, nil
}

// RunAsync runs Run on its own goroutine and delivers the outcome on a
// buffered one-shot channel, so interactive callers keep their control loop
// responsive and can cancel from another goroutine.
func (r *Runner) RunAsync(files []string, progress ProgressFunc) <-chan Outcome {
	done := make(chan Outcome, 1)
	go func() {
		results, err := r.Run(files, progress)
		done <- Outcome{Results: results, Err: err}
	}()
	return done
}
