package orchestration

import "github.com/agbru/limbcalc/internal/evaluator"

// EngineAll selects every registered engine.
const EngineAll = "all"

// GetEvaluatorsToRun returns the evaluators named by engine, or every
// registered one in alphabetical order for "all". Engines that cannot be
// created are skipped; an unknown name yields nil.
func GetEvaluatorsToRun(engine string, factory evaluator.Factory) []evaluator.Evaluator {
	if engine == EngineAll {
		keys := factory.List()
		evaluators := make([]evaluator.Evaluator, 0, len(keys))
		for _, k := range keys {
			if ev, err := factory.Get(k); err == nil {
				evaluators = append(evaluators, ev)
			}
		}
		return evaluators
	}
	if ev, err := factory.Get(engine); err == nil {
		return []evaluator.Evaluator{ev}
	}
	return nil
}
