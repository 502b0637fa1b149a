package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/limbcalc/internal/config"
	"github.com/agbru/limbcalc/internal/evaluator"
	"github.com/agbru/limbcalc/internal/ui"
)

// PrintExecutionConfig shows the request, the engine shape, and the
// environment before a run.
func PrintExecutionConfig(cfg config.AppConfig, req evaluator.Request, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Evaluating %s%s%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), req.String(), ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	limit := "unbounded"
	if cfg.MaxLimbs > 0 {
		limit = fmt.Sprintf("%d limbs", cfg.MaxLimbs)
	}
	fmt.Fprintf(out, "Limb shape: width=%s%d%s bits, fixed capacity=%s%d%s bits, growth %s%s%s.\n",
		ui.ColorCyan(), cfg.Width, ui.ColorReset(), ui.ColorCyan(), cfg.Capacity, ui.ColorReset(),
		ui.ColorCyan(), limit, ui.ColorReset())
}

// PrintExecutionMode announces a single run or a comparison.
func PrintExecutionMode(evaluators []evaluator.Evaluator, out io.Writer) {
	var modeDesc string
	switch len(evaluators) {
	case 0:
		modeDesc = "No engine selected"
	case 1:
		modeDesc = fmt.Sprintf("Single evaluation with the %s%s%s engine",
			ui.ColorGreen(), evaluators[0].Name(), ui.ColorReset())
	default:
		modeDesc = fmt.Sprintf("Parallel comparison of %d engines", len(evaluators))
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
