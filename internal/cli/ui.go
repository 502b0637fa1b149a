package cli

import (
	"fmt"
	"io"
	"math/big"
	"math/bits"
	"strconv"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/limbcalc/internal/evaluator"
	"github.com/agbru/limbcalc/internal/format"
	"github.com/agbru/limbcalc/internal/orchestration"
	"github.com/agbru/limbcalc/internal/ui"
)

const (
	// TruncationLimit is the digit count from which a decimal result is
	// truncated in standard output.
	TruncationLimit = 100
	// DisplayEdges is the number of digits kept at each end of a truncated
	// result.
	DisplayEdges = 25
	// HexDisplayEdges is the number of hex characters kept at each end of a
	// truncated hexadecimal result.
	HexDisplayEdges = 40
	// ProgressRefreshRate is the refresh period of the progress line.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in cells of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the animation.
	Start()
	// Stop halts the animation and clears the line.
	Stop()
	// UpdateSuffix sets the text shown after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with the average progress of all
// evaluators and an ETA until progressChan is closed, then prints a final
// 100% line that stays on screen.
//
// Parameters:
//   - wg: Done is called on return.
//   - progressChan: the shared progress channel, drained until closed.
//   - numEvaluators: the number of evaluators reporting on the channel.
//   - out: the writer the spinner draws on.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan evaluator.ProgressUpdate, numEvaluators int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numEvaluators)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	label := "Progress"
	if agg.IsMultiEvaluator() {
		label = "Avg progress"
	}

	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	stopped := false
	defer func() {
		if !stopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				stopped = true
				fmt.Fprintf(out, "%s: %s\n", label, format.FormatProgressBarWithETA(1.0, 0, ProgressBarWidth))
				return
			}
			agg.Update(update)
		case <-ticker.C:
			s.UpdateSuffix(fmt.Sprintf(" %s: %s", label,
				format.FormatProgressBarWithETA(agg.CalculateAverage(), agg.GetETA(), ProgressBarWidth)))
		}
	}
}

// DisplayResult prints the agreed result of a request. The decimal value is
// truncated past TruncationLimit digits unless opts.Verbose is set; with
// opts.Details the hexadecimal form and the limb map follow.
func DisplayResult(result *big.Int, duration time.Duration, opts orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintf(out, "Result binary size: %s%s%s bits, %s%s%s set.\n",
		ui.ColorCyan(), format.FormatNumberString(strconv.Itoa(result.BitLen())), ui.ColorReset(),
		ui.ColorCyan(), format.FormatNumberString(strconv.Itoa(PopCount(result))), ui.ColorReset())

	if opts.Details {
		fmt.Fprintf(out, "\n%s--- Detailed result analysis ---%s\n", ui.ColorBold(), ui.ColorReset())
		fmt.Fprintf(out, "Evaluation time  : %s%s%s\n", ui.ColorGreen(), FormatDuration(duration), ui.ColorReset())
		digits := result.String()
		fmt.Fprintf(out, "Number of digits : %s%s%s\n", ui.ColorCyan(), format.FormatNumberString(strconv.Itoa(len(digits))), ui.ColorReset())
		hex := "0x" + result.Text(16)
		if !opts.Verbose {
			hex = format.TruncateMiddle(hex, 2*HexDisplayEdges, HexDisplayEdges)
		}
		fmt.Fprintf(out, "Hexadecimal      : %s%s%s\n", ui.ColorCyan(), hex, ui.ColorReset())
	}

	fmt.Fprintf(out, "\n%s--- Evaluated value ---%s\n", ui.ColorBold(), ui.ColorReset())
	expr := opts.Request.String()
	digits := result.String()
	switch {
	case opts.Verbose:
		fmt.Fprintf(out, "%s%s%s =\n%s%s%s\n", ui.ColorMagenta(), expr, ui.ColorReset(), ui.ColorGreen(), format.FormatNumberString(digits), ui.ColorReset())
	case len(digits) > TruncationLimit:
		fmt.Fprintf(out, "%s%s%s (truncated) = %s%s%s\n", ui.ColorMagenta(), expr, ui.ColorReset(),
			ui.ColorGreen(), format.TruncateMiddle(digits, TruncationLimit, DisplayEdges), ui.ColorReset())
		fmt.Fprintf(out, "(Tip: use the %s-v%s option to display the full value)\n", ui.ColorYellow(), ui.ColorReset())
	default:
		fmt.Fprintf(out, "%s%s%s = %s%s%s\n", ui.ColorMagenta(), expr, ui.ColorReset(), ui.ColorGreen(), format.FormatNumberString(digits), ui.ColorReset())
	}

	if opts.Details && opts.Width > 0 {
		fmt.Fprintf(out, "\n%s--- Limb map (W=%d, least significant first) ---%s\n", ui.ColorBold(), opts.Width, ui.ColorReset())
		fmt.Fprintln(out, RenderLimbMap(result, opts.Width, ui.CurrentLimbPalette()))
	}
}

// FormatDuration formats d for display, with "< 1µs" for zero.
func FormatDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// PopCount returns the number of set bits of x, which must not be negative.
func PopCount(x *big.Int) int {
	n := 0
	for _, w := range x.Bits() {
		n += bits.OnesCount(uint(w))
	}
	return n
}
