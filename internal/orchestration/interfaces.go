package orchestration

import (
	"io"
	"math/big"
	"sync"
	"time"

	"github.com/agbru/limbcalc/internal/evaluator"
)

// EvaluationResult is the outcome of one engine on one request.
type EvaluationResult struct {
	// Name is the display name of the engine.
	Name string
	// Result is the computed value, nil if Err is set.
	Result *big.Int
	// Duration is the wall time of the evaluation.
	Duration time.Duration
	// Err is the failure, if any.
	Err error
}

// PresentationOptions configures how the agreed result is shown.
type PresentationOptions struct {
	Request evaluator.Request
	// Width is the limb width used to draw the limb map.
	Width   uint
	Verbose bool
	Details bool
}

// ProgressReporter displays progress while evaluators run. DisplayProgress
// runs in its own goroutine, must drain progressChan until it is closed, and
// calls wg.Done when finished.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan evaluator.ProgressUpdate, numEvaluators int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan evaluator.ProgressUpdate, numEvaluators int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan evaluator.ProgressUpdate, numEvaluators int, out io.Writer) {
	f(wg, progressChan, numEvaluators, out)
}

// NullProgressReporter drains progress without displaying it, for quiet mode
// and tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan evaluator.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders the comparison table and the agreed result.
type ResultPresenter interface {
	PresentComparisonTable(results []EvaluationResult, out io.Writer)
	PresentResult(result EvaluationResult, opts PresentationOptions, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler prints a failed evaluation and returns its exit code.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
