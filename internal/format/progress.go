package format

import (
	"fmt"
	"strings"
	"time"
)

// maxETA caps estimates made from a very slow early rate.
const maxETA = 24 * time.Hour

// ProgressState holds the latest progress of each concurrently running
// evaluator. It is not safe for concurrent use; one display goroutine owns it.
type ProgressState struct {
	progresses    []float64
	numEvaluators int
}

// NewProgressState tracks numEvaluators evaluators, all at zero.
func NewProgressState(numEvaluators int) *ProgressState {
	return &ProgressState{
		progresses:    make([]float64, max(0, numEvaluators)),
		numEvaluators: numEvaluators,
	}
}

// Update records value for the evaluator at index. Out-of-range indices are
// ignored and values are clamped to [0, 1].
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = min(1, max(0, value))
	}
}

// CalculateAverage returns the mean progress over all evaluators.
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numEvaluators <= 0 {
		return 0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numEvaluators)
}

// ProgressWithETA adds a smoothed completion-rate estimate to ProgressState.
type ProgressWithETA struct {
	*ProgressState
	startTime    time.Time
	lastUpdate   time.Time
	lastProgress float64
	progressRate float64 // progress per second, exponentially smoothed
}

// NewProgressWithETA tracks numEvaluators evaluators starting now.
func NewProgressWithETA(numEvaluators int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(numEvaluators),
		startTime:     now,
		lastUpdate:    now,
	}
}

// UpdateWithETA records value for index and returns the average progress
// and the time remaining, or 0 while there is too little data to estimate.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (progress float64, eta time.Duration) {
	p.Update(index, value)
	progress = p.CalculateAverage()

	now := time.Now()
	elapsed := now.Sub(p.startTime)
	if elapsed < 100*time.Millisecond || progress <= 0.001 {
		p.lastUpdate = now
		p.lastProgress = progress
		return progress, 0
	}

	if since := now.Sub(p.lastUpdate).Seconds(); since > 0.05 {
		if delta := progress - p.lastProgress; delta > 0 {
			instant := delta / since
			if p.progressRate > 0 {
				p.progressRate = 0.7*p.progressRate + 0.3*instant
			} else {
				p.progressRate = progress / elapsed.Seconds()
			}
		}
		p.lastUpdate = now
		p.lastProgress = progress
	}
	return progress, p.estimate(progress)
}

// GetETA returns the current estimate without recording progress.
func (p *ProgressWithETA) GetETA() time.Duration {
	return p.estimate(p.CalculateAverage())
}

func (p *ProgressWithETA) estimate(progress float64) time.Duration {
	if p.progressRate <= 0 || progress >= 1.0 {
		return 0
	}
	eta := time.Duration((1.0 - progress) / p.progressRate * float64(time.Second))
	return min(eta, maxETA)
}

// ProgressBar renders progress as length cells of full and light shade.
func ProgressBar(progress float64, length int) string {
	progress = min(1, max(0, progress))
	count := int(progress * float64(length))
	var b strings.Builder
	b.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			b.WriteRune('█')
		} else {
			b.WriteRune('░')
		}
	}
	return b.String()
}

// FormatProgressBarWithETA renders "45.00% [████░░░░] ETA: 2m30s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("%6.2f%% [%s] ETA: %s", progress*100, ProgressBar(progress, width), FormatETA(eta))
}
