// Package evaluator runs arithmetic requests on interchangeable engines. The
// limb-chain engine from package biguint is the subject; the math/big oracle
// and, under the gmp build tag, libgmp serve as references. Every engine is
// wrapped by a decorator that adds tracing, metrics, logging, and progress
// forwarding, and engines are looked up by name through a Factory.
package evaluator

//go:generate mockgen -source=evaluator.go -destination=mocks/mock_evaluator.go -package=mocks

import (
	"context"
	"math/big"
)

// Evaluator is the abstraction the orchestration layer drives. Evaluate is
// safe to call concurrently: each call works on its own values.
type Evaluator interface {
	// Evaluate runs req and returns its result. Progress in [0, 1] is sent
	// without blocking to progressChan, tagged with index. A nil channel
	// discards progress.
	Evaluate(ctx context.Context, progressChan chan<- ProgressUpdate, index int, req Request) (*big.Int, error)

	// Name returns the display name of the engine.
	Name() string
}
