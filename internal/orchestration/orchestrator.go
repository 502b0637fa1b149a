package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/limbcalc/internal/errors"
	"github.com/agbru/limbcalc/internal/evaluator"
)

// ProgressBufferMultiplier sizes the progress channel per evaluator so a slow
// display rarely causes samples to be dropped.
const ProgressBufferMultiplier = 5

// ExecuteEvaluations runs req on every evaluator concurrently and returns
// their results in input order. Each evaluator works on its own values, so a
// failure in one never affects another; errors are recorded, not propagated.
// Progress goes to reporter until every evaluator has returned.
func ExecuteEvaluations(ctx context.Context, evaluators []evaluator.Evaluator, req evaluator.Request, reporter ProgressReporter, out io.Writer) []EvaluationResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]EvaluationResult, len(evaluators))
	progressChan := make(chan evaluator.ProgressUpdate, len(evaluators)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(evaluators), out)

	for i, ev := range evaluators {
		g.Go(func() error {
			start := time.Now()
			res, err := ev.Evaluate(ctx, progressChan, i, req)
			results[i] = EvaluationResult{
				Name: ev.Name(), Result: res, Duration: time.Since(start), Err: err,
			}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults sorts results (successes first, then by
// duration), prints the comparison table, and checks that every successful
// engine produced the same value. It returns ExitErrorMismatch on
// disagreement, the first failure's exit code when nothing succeeded, and
// ExitSuccess otherwise, in which case the agreed result is presented.
func AnalyzeComparisonResults(results []EvaluationResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid, firstFailed *EvaluationResult
	for i := range results {
		switch {
		case results[i].Err != nil && firstFailed == nil:
			firstFailed = &results[i]
		case results[i].Err == nil && firstValid == nil:
			firstValid = &results[i]
		}
	}

	presenter.PresentComparisonTable(results, out)

	if firstValid == nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No engine could complete the evaluation.\n")
		if firstFailed == nil {
			return apperrors.ExitErrorGeneric
		}
		err := apperrors.EvaluationError{Engine: firstFailed.Name, Cause: firstFailed.Err}
		return errHandler.HandleError(err, firstFailed.Duration, out)
	}

	for _, res := range results {
		if res.Err == nil && res.Result.Cmp(firstValid.Result) != 0 {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %s and %s disagree on %s.\n", firstValid.Name, res.Name, opts.Request)
			return apperrors.ExitErrorMismatch
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(*firstValid, opts, out)
	return apperrors.ExitSuccess
}
