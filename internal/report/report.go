// Package report tracks the per-file outcomes of a single batch run.
// Every tool threads a *Run through its operations instead of leaning
// on shared console state, which keeps the runs testable.
package report

import (
	"github.com/hbomb79/MediaKit/pkg/logger"
)

// Failure records one file which could not be processed.
type Failure struct {
	Path string
	Err  error
}

// Run accumulates outcome counters for one invocation of a tool.
type Run struct {
	Log logger.Logger

	succeeded int
	skipped   int
	failures  []Failure
}

func NewRun(log logger.Logger) *Run {
	return &Run{Log: log, failures: make([]Failure, 0)}
}

func (run *Run) Success(format string, interpolations ...interface{}) {
	run.succeeded++
	run.Log.Emit(logger.SUCCESS, format, interpolations...)
}

func (run *Run) Skip(format string, interpolations ...interface{}) {
	run.skipped++
	run.Log.Emit(logger.WARNING, format, interpolations...)
}

func (run *Run) Fail(path string, err error) {
	run.failures = append(run.failures, Failure{Path: path, Err: err})
	run.Log.Emit(logger.ERROR, "Failed to process %s: %s\n", path, err.Error())
}

func (run *Run) Succeeded() int { return run.succeeded }

func (run *Run) Skipped() int { return run.skipped }

func (run *Run) Failed() int { return len(run.failures) }

func (run *Run) Failures() []Failure { return run.failures }

// Summarize emits the end-of-run summary line.
func (run *Run) Summarize() {
	status := logger.SUCCESS
	if run.Failed() > 0 {
		status = logger.WARNING
	}

	run.Log.Emit(status, "Finished: %d succeeded, %d skipped, %d failed\n",
		run.succeeded, run.skipped, run.Failed())
}
