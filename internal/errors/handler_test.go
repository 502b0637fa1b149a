package apperrors

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestHandleEvaluationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		duration time.Duration
		wantCode int
		wantOut  string
	}{
		{"nil error", nil, 0, ExitSuccess, ""},
		{"timeout", context.DeadlineExceeded, time.Second, ExitErrorTimeout, "Timeout"},
		{"canceled", WrapError(context.Canceled, "mul"), 0, ExitErrorCanceled, "Canceled"},
		{"capacity", IndexError{Operation: "shift", Index: 1024, Capacity: 1024}, 0, ExitErrorRange, "Capacity"},
		{"limb limit", MemoryError{Requested: 136, Available: 128, Limit: 128}, 0, ExitErrorRange, "Limb limit"},
		{"validation", ValidationError{Field: "operand", Message: "mismatch"}, 0, ExitErrorConfig, "Configuration"},
		{"generic", errors.New("boom"), 0, ExitErrorGeneric, "unexpected error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			code := HandleEvaluationError(tt.err, tt.duration, &buf, nil)
			if code != tt.wantCode {
				t.Errorf("expected exit code %d, got %d", tt.wantCode, code)
			}
			if !strings.Contains(buf.String(), tt.wantOut) {
				t.Errorf("expected output to contain %q, got %q", tt.wantOut, buf.String())
			}
		})
	}
}
