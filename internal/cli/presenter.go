package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	apperrors "github.com/agbru/limbcalc/internal/errors"
	"github.com/agbru/limbcalc/internal/evaluator"
	"github.com/agbru/limbcalc/internal/format"
	"github.com/agbru/limbcalc/internal/metrics"
	"github.com/agbru/limbcalc/internal/orchestration"
	"github.com/agbru/limbcalc/internal/sysmon"
	"github.com/agbru/limbcalc/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner and progress bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan evaluator.ProgressUpdate, numEvaluators int, out io.Writer) {
	DisplayProgress(wg, progressChan, numEvaluators, out)
}

// CLIResultPresenter implements the orchestration presentation interfaces
// with colorized terminal output.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
)

// PresentComparisonTable prints one row per engine with its duration and
// status. Columns are padded by hand because the cells carry ANSI codes.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.EvaluationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	nameWidth, durationWidth := len("Engine"), len("Duration")
	for _, res := range results {
		nameWidth = max(nameWidth, len(res.Name))
		durationWidth = max(durationWidth, len(FormatDuration(res.Duration)))
	}

	fmt.Fprintf(out, "%sEngine%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), pad(nameWidth-len("Engine")),
		ui.ColorUnderline(), ui.ColorReset(), pad(durationWidth-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		}
		duration := FormatDuration(res.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), pad(nameWidth-len(res.Name)),
			ui.ColorYellow(), duration, ui.ColorReset(), pad(durationWidth-len(duration)),
			status)
	}
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// PresentResult prints the agreed result with DisplayResult.
func (CLIResultPresenter) PresentResult(result orchestration.EvaluationResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(result.Result, result.Duration, opts, out)
}

// FormatDuration formats a duration for display.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return FormatDuration(d)
}

// HandleError prints the failure and returns its exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleEvaluationError(err, duration, out, CLIColorProvider{})
}

// CLIColorProvider feeds the active theme to apperrors.HandleEvaluationError.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// DisplayMemoryStats prints the allocation activity of a run.
func DisplayMemoryStats(delta metrics.MemoryDelta, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Allocated:   %s\n", format.FormatBytes(delta.Allocated))
	fmt.Fprintf(out, "  Allocations: %s\n", format.FormatNumberString(fmt.Sprint(delta.Allocations)))
	fmt.Fprintf(out, "  GC cycles:   %d\n", delta.GCCycles)
	fmt.Fprintf(out, "  Runtime sys: %s\n", format.FormatBytes(delta.PeakSys))
}

// DisplaySystemStats prints the host snapshot taken after a run.
func DisplaySystemStats(stats sysmon.Stats, out io.Writer) {
	fmt.Fprintf(out, "\nHost:\n")
	fmt.Fprintf(out, "  CPU:         %.1f%% of %d logical processors\n", stats.CPUPercent, stats.LogicalCPUs)
	fmt.Fprintf(out, "  Memory:      %.1f%% used, %s available of %s\n",
		stats.MemPercent, format.FormatBytes(stats.MemAvailable), format.FormatBytes(stats.MemTotal))
	if n := stats.LimbCapacity(); n > 0 {
		fmt.Fprintf(out, "  Limb room:   %s limbs\n", format.FormatNumberString(fmt.Sprint(n)))
	}
}
