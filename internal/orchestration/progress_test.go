package orchestration

import (
	"testing"

	"github.com/agbru/limbcalc/internal/evaluator"
)

func TestNewProgressAggregator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n         int
		wantNil   bool
		wantMulti bool
	}{
		{3, false, true},
		{1, false, false},
		{0, true, false},
		{-1, true, false},
	}
	for _, tt := range tests {
		agg := NewProgressAggregator(tt.n)
		if (agg == nil) != tt.wantNil {
			t.Errorf("NewProgressAggregator(%d) nil = %v, want %v", tt.n, agg == nil, tt.wantNil)
			continue
		}
		if agg == nil {
			continue
		}
		if agg.NumEvaluators() != tt.n {
			t.Errorf("NumEvaluators() = %d, want %d", agg.NumEvaluators(), tt.n)
		}
		if agg.IsMultiEvaluator() != tt.wantMulti {
			t.Errorf("IsMultiEvaluator() = %v for %d", agg.IsMultiEvaluator(), tt.n)
		}
	}
}

func TestProgressAggregator_Update(t *testing.T) {
	t.Parallel()
	agg := NewProgressAggregator(2)

	ap := agg.Update(evaluator.ProgressUpdate{Index: 0, Value: 0.5})
	if ap.Index != 0 || ap.Value != 0.5 {
		t.Errorf("update echoed %+v", ap)
	}
	if ap.AverageProgress != 0.25 {
		t.Errorf("AverageProgress = %f, want 0.25", ap.AverageProgress)
	}

	ap = agg.Update(evaluator.ProgressUpdate{Index: 1, Value: 0.5})
	if ap.AverageProgress != 0.5 {
		t.Errorf("AverageProgress = %f, want 0.5", ap.AverageProgress)
	}
	if agg.CalculateAverage() != 0.5 {
		t.Errorf("CalculateAverage() = %f, want 0.5", agg.CalculateAverage())
	}
}

func TestProgressAggregator_GetETA(t *testing.T) {
	t.Parallel()
	if eta := NewProgressAggregator(1).GetETA(); eta != 0 {
		t.Errorf("initial ETA = %v, want 0", eta)
	}
}

func TestDrainChannel(t *testing.T) {
	t.Parallel()
	ch := make(chan evaluator.ProgressUpdate, 3)
	ch <- evaluator.ProgressUpdate{Value: 0.1}
	ch <- evaluator.ProgressUpdate{Value: 0.2}
	close(ch)
	DrainChannel(ch)

	empty := make(chan evaluator.ProgressUpdate)
	close(empty)
	DrainChannel(empty)
}
