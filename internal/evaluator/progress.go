package evaluator

import "github.com/agbru/limbcalc/internal/biguint"

// ProgressReporter receives the completed fraction of an evaluation.
type ProgressReporter = biguint.ProgressReporter

// ProgressUpdate is one progress sample sent by the evaluator at Index.
type ProgressUpdate struct {
	// Index identifies the evaluator among those running concurrently.
	Index int
	// Value is the completed fraction, in [0, 1].
	Value float64
}

// channelReporter adapts progressChan to a ProgressReporter. Sends never
// block: a full channel drops the sample, since a later one supersedes it.
func channelReporter(progressChan chan<- ProgressUpdate, index int) ProgressReporter {
	if progressChan == nil {
		return func(float64) {}
	}
	return func(v float64) {
		select {
		case progressChan <- ProgressUpdate{Index: index, Value: v}:
		default:
		}
	}
}
