package orchestration

import (
	"time"

	"github.com/agbru/limbcalc/internal/evaluator"
	"github.com/agbru/limbcalc/internal/format"
)

// ProgressAggregator turns per-evaluator samples into one average with an
// ETA.
type ProgressAggregator struct {
	state         *format.ProgressWithETA
	numEvaluators int
}

// NewProgressAggregator tracks numEvaluators evaluators. It returns nil when
// there is nothing to track.
func NewProgressAggregator(numEvaluators int) *ProgressAggregator {
	if numEvaluators <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:         format.NewProgressWithETA(numEvaluators),
		numEvaluators: numEvaluators,
	}
}

// AggregatedProgress is the view after one update.
type AggregatedProgress struct {
	// Index is the evaluator that sent the update.
	Index int
	// Value is the raw sample.
	Value float64
	// AverageProgress is the mean over all evaluators.
	AverageProgress float64
	// ETA is the estimated time remaining, 0 when unknown.
	ETA time.Duration
}

// Update records one sample.
func (a *ProgressAggregator) Update(update evaluator.ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.Index, update.Value)
	return AggregatedProgress{
		Index:           update.Index,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// CalculateAverage returns the current mean without recording anything.
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current estimate without recording anything.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumEvaluators returns the number of evaluators tracked.
func (a *ProgressAggregator) NumEvaluators() int {
	return a.numEvaluators
}

// IsMultiEvaluator reports whether more than one evaluator is tracked.
func (a *ProgressAggregator) IsMultiEvaluator() bool {
	return a.numEvaluators > 1
}

// DrainChannel discards updates until progressChan is closed.
func DrainChannel(progressChan <-chan evaluator.ProgressUpdate) {
	for range progressChan {
	}
}
