package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math/big"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	apperrors "github.com/agbru/limbcalc/internal/errors"
	"github.com/agbru/limbcalc/internal/evaluator"
	"github.com/agbru/limbcalc/internal/metrics"
	"github.com/agbru/limbcalc/internal/orchestration"
	"github.com/agbru/limbcalc/internal/sysmon"
	"github.com/agbru/limbcalc/internal/ui"
)

type mockSpinner struct {
	mu      sync.Mutex
	started bool
	stopped bool
	suffix  string
}

func (m *mockSpinner) Start() { m.mu.Lock(); m.started = true; m.mu.Unlock() }
func (m *mockSpinner) Stop()  { m.mu.Lock(); m.stopped = true; m.mu.Unlock() }
func (m *mockSpinner) UpdateSuffix(suffix string) {
	m.mu.Lock()
	m.suffix = suffix
	m.mu.Unlock()
}

func TestDisplayResult(t *testing.T) {
	t.Parallel()
	googol := new(big.Int).Exp(big.NewInt(10), big.NewInt(200), nil)
	shl := evaluator.Request{Op: evaluator.OpShiftLeft, A: big.NewInt(3), K: 1}

	tests := []struct {
		name        string
		result      *big.Int
		opts        orchestration.PresentationOptions
		contains    []string
		notContains []string
	}{
		{
			name:     "plain",
			result:   big.NewInt(6),
			opts:     orchestration.PresentationOptions{Request: shl},
			contains: []string{"3 bits, 2 set", "shl(3, k=1) = 6"},
		},
		{
			name:        "details",
			result:      big.NewInt(12345),
			opts:        orchestration.PresentationOptions{Request: shl, Details: true, Width: 8},
			contains:    []string{"Detailed result analysis", "Number of digits : 5", "Hexadecimal      : 0x3039", "Limb map (W=8", "00111001", "00110000", "L1"},
			notContains: []string{"truncated"},
		},
		{
			name:        "truncated",
			result:      googol,
			opts:        orchestration.PresentationOptions{Request: shl},
			contains:    []string{"(truncated)", "Tip: use the -v option"},
			notContains: []string{"Limb map"},
		},
		{
			name:        "verbose",
			result:      googol,
			opts:        orchestration.PresentationOptions{Request: shl, Verbose: true},
			contains:    []string{"shl(3, k=1) =\n100" + strings.Repeat(",000", 66) + "\n"},
			notContains: []string{"truncated"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			DisplayResult(tt.result, time.Millisecond, tt.opts, &buf)
			for _, s := range tt.contains {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("output missing %q:\n%s", s, buf.String())
				}
			}
			for _, s := range tt.notContains {
				if strings.Contains(buf.String(), s) {
					t.Errorf("output should not contain %q:\n%s", s, buf.String())
				}
			}
		})
	}
}

func TestPopCount(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   *big.Int
		want int
	}{
		{big.NewInt(0), 0},
		{big.NewInt(1), 1},
		{big.NewInt(0xff), 8},
		{new(big.Int).Lsh(big.NewInt(5), 200), 2},
	}
	for _, tt := range tests {
		if got := PopCount(tt.in); got != tt.want {
			t.Errorf("PopCount(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()
	if got := FormatDuration(0); got != "< 1µs" {
		t.Errorf("FormatDuration(0) = %q", got)
	}
	if got := FormatDuration(1500 * time.Microsecond); got != "1ms" {
		t.Errorf("FormatDuration(1.5ms) = %q, want 1ms", got)
	}
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	rs := &realSpinner{spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(io.Discard))}
	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
}

// The DisplayProgress tests replace newSpinner and do not run in parallel.

func TestDisplayProgress(t *testing.T) {
	original := newSpinner
	t.Cleanup(func() { newSpinner = original })
	mock := &mockSpinner{}
	newSpinner = func(...spinner.Option) Spinner { return mock }

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan evaluator.ProgressUpdate)
	go func() {
		progressChan <- evaluator.ProgressUpdate{Index: 0, Value: 0.5}
		progressChan <- evaluator.ProgressUpdate{Index: 1, Value: 1.0}
		close(progressChan)
	}()

	var buf bytes.Buffer
	DisplayProgress(&wg, progressChan, 2, &buf)
	wg.Wait()

	if !mock.started || !mock.stopped {
		t.Errorf("spinner started=%v stopped=%v, want both", mock.started, mock.stopped)
	}
	if !strings.Contains(buf.String(), "Avg progress: 100.00%") {
		t.Errorf("missing final progress line:\n%s", buf.String())
	}
}

func TestDisplayProgressNoEvaluators(t *testing.T) {
	original := newSpinner
	t.Cleanup(func() { newSpinner = original })
	newSpinner = func(...spinner.Option) Spinner {
		t.Error("no spinner expected without evaluators")
		return &mockSpinner{}
	}

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan evaluator.ProgressUpdate, 1)
	progressChan <- evaluator.ProgressUpdate{Value: 1}
	close(progressChan)
	DisplayProgress(&wg, progressChan, 0, io.Discard)
	wg.Wait()
}

func TestRenderLimbMap(t *testing.T) {
	t.Parallel()
	palette := ui.NoColorLimbPalette

	t.Run("carry across limbs", func(t *testing.T) {
		t.Parallel()
		out := RenderLimbMap(big.NewInt(0x1f), 4, palette)
		for _, want := range []string{"L0", "L1", "1111", "0001"} {
			if !strings.Contains(out, want) {
				t.Errorf("map missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("zero is one limb", func(t *testing.T) {
		t.Parallel()
		out := RenderLimbMap(big.NewInt(0), 4, palette)
		if !strings.Contains(out, "0000") || strings.Contains(out, "L1") {
			t.Errorf("unexpected zero map:\n%s", out)
		}
	})

	t.Run("capped", func(t *testing.T) {
		t.Parallel()
		x := new(big.Int).Lsh(big.NewInt(1), 4*(MaxMapLimbs+3))
		out := RenderLimbMap(x, 4, palette)
		if !strings.Contains(out, "... 4 more limb(s)") {
			t.Errorf("missing trailer:\n%s", out)
		}
	})
}

func TestSplitLimbs(t *testing.T) {
	t.Parallel()
	x, _ := new(big.Int).SetString("1ffffffffffffffff", 16)
	limbs := SplitLimbs(x, 64)
	if len(limbs) != 2 || limbs[0].Uint64() != ^uint64(0) || limbs[1].Uint64() != 1 {
		t.Errorf("SplitLimbs(2^65-1, 64) = %v", limbs)
	}
	if SplitLimbs(x, 0) != nil {
		t.Error("width 0 should yield no limbs")
	}
}

func TestPresentComparisonTable(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable([]orchestration.EvaluationResult{
		{Name: "bigint (math/big)", Result: big.NewInt(1), Duration: time.Millisecond},
		{Name: "limb-fixed (W=8, 8 bits)", Err: apperrors.IndexError{Operation: "shl", Index: 9, Capacity: 8}},
	}, &buf)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "Engine"+strings.Repeat(" ", 21)+"Duration") {
		t.Errorf("header not padded to the widest name: %q", lines[1])
	}
	if !strings.Contains(lines[2], "✅ Success") || !strings.Contains(lines[3], "❌ Failure") {
		t.Errorf("unexpected rows:\n%s", buf.String())
	}
}

func TestHandleError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want int
	}{
		{context.DeadlineExceeded, apperrors.ExitErrorTimeout},
		{context.Canceled, apperrors.ExitErrorCanceled},
		{apperrors.IndexError{Operation: "add", Index: 8, Capacity: 8}, apperrors.ExitErrorRange},
		{errors.New("boom"), apperrors.ExitErrorGeneric},
	}
	for _, tt := range tests {
		if got := (CLIResultPresenter{}).HandleError(tt.err, time.Second, io.Discard); got != tt.want {
			t.Errorf("HandleError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestDisplayMemoryStats(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayMemoryStats(metrics.MemoryDelta{Allocated: 2048, Allocations: 1234, GCCycles: 2, PeakSys: 1 << 20}, &buf)
	for _, want := range []string{"2.00 KiB", "1,234", "GC cycles:   2", "1.00 MiB"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestDisplaySystemStats(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplaySystemStats(sysmon.Stats{CPUPercent: 12.5, MemPercent: 50, MemTotal: 2 << 30, MemAvailable: 1 << 30, LogicalCPUs: 4}, &buf)
	for _, want := range []string{"12.5% of 4 logical processors", "1.00 GiB available of 2.00 GiB", "134,217,728 limbs"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}
}
