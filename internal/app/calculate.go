package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/limbcalc/internal/cli"
	apperrors "github.com/agbru/limbcalc/internal/errors"
	"github.com/agbru/limbcalc/internal/evaluator"
	"github.com/agbru/limbcalc/internal/logging"
	"github.com/agbru/limbcalc/internal/metrics"
	"github.com/agbru/limbcalc/internal/orchestration"
	"github.com/agbru/limbcalc/internal/sysmon"
)

// runEvaluate runs the request given by flags on the selected engines and
// reports the outcome.
func (a *Application) runEvaluate(ctx context.Context, out io.Writer) int {
	req, err := a.Config.Request()
	if err != nil {
		return a.configFailure(err)
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	evaluators := orchestration.GetEvaluatorsToRun(a.Config.Engine, a.Factory)
	if len(evaluators) == 0 {
		fmt.Fprintf(a.ErrWriter, "No engine available for '%s'.\n", a.Config.Engine)
		return apperrors.ExitErrorConfig
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, req, out)
		cli.PrintExecutionMode(evaluators, out)
	}

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()
	results := orchestration.ExecuteEvaluations(ctx, evaluators, req, reporter, progressOut)
	delta := collector.Snapshot().Since(before)

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		Details:    a.Config.Details,
		Width:      a.Config.Width,
	}

	var code int
	if a.Config.Quiet {
		code = a.reportQuiet(results, req, outputCfg, out)
	} else {
		code = a.reportStandard(results, req, outputCfg, out)
		if a.Config.Details {
			cli.DisplayMemoryStats(delta, out)
			cli.DisplaySystemStats(sysmon.Sample(), out)
		}
	}

	a.Logger.Debug("run finished",
		logging.String("request", req.String()),
		logging.Int("engines", len(evaluators)),
		logging.Int("exit_code", code),
		logging.Uint64("allocated_bytes", delta.Allocated))
	a.dumpMetrics(out)
	return code
}

// reportStandard prints the comparison table and the agreed result, then
// saves it when an output file is configured.
func (a *Application) reportStandard(results []orchestration.EvaluationResult, req evaluator.Request, outputCfg cli.OutputConfig, out io.Writer) int {
	presenter := cli.CLIResultPresenter{}
	code := orchestration.AnalyzeComparisonResults(results, orchestration.PresentationOptions{
		Request: req,
		Width:   outputCfg.Width,
		Verbose: outputCfg.Verbose,
		Details: outputCfg.Details,
	}, presenter, presenter, out)
	if code != apperrors.ExitSuccess || outputCfg.OutputFile == "" {
		return code
	}

	best := findBestResult(results)
	if err := cli.WriteResultToFile(best.Result, req, best.Duration, best.Name, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	fmt.Fprintf(out, "\nResult saved to: %s\n", outputCfg.OutputFile)
	return code
}

// reportQuiet prints only the value. Failures and disagreements go to the
// error writer so stdout stays parseable.
func (a *Application) reportQuiet(results []orchestration.EvaluationResult, req evaluator.Request, outputCfg cli.OutputConfig, out io.Writer) int {
	best := findBestResult(results)
	if best == nil {
		for _, res := range results {
			if res.Err != nil {
				return cli.CLIResultPresenter{}.HandleError(res.Err, res.Duration, a.ErrWriter)
			}
		}
		return apperrors.ExitErrorGeneric
	}
	for _, res := range results {
		if res.Err == nil && res.Result.Cmp(best.Result) != 0 {
			fmt.Fprintf(a.ErrWriter, "%s and %s disagree on %s\n", best.Name, res.Name, req.String())
			return apperrors.ExitErrorMismatch
		}
	}
	if err := cli.DisplayResultWithConfig(out, best.Result, req, best.Duration, best.Name, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// findBestResult returns the fastest successful result, or nil.
func findBestResult(results []orchestration.EvaluationResult) *orchestration.EvaluationResult {
	var best *orchestration.EvaluationResult
	for i := range results {
		if results[i].Err == nil && (best == nil || results[i].Duration < best.Duration) {
			best = &results[i]
		}
	}
	return best
}
