package evaluator

import (
	"context"
	"math/big"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/limbcalc/internal/logging"
	"github.com/agbru/limbcalc/internal/metrics"
)

// coreEvaluator is a bare engine: it runs one request and reports progress
// through a callback, with no cross-cutting concerns.
type coreEvaluator interface {
	EvaluateCore(ctx context.Context, reporter ProgressReporter, req Request) (*big.Int, error)
	Name() string
}

// InstrumentedEvaluator decorates a coreEvaluator with a trace span, metrics,
// a debug log line, and channel-based progress. It validates the request
// before the engine sees it.
type InstrumentedEvaluator struct {
	core    coreEvaluator
	logger  logging.Logger
	metrics *metrics.EvaluationMetrics
}

// NewInstrumented wraps core. A nil logger discards logs and nil metrics
// records nothing. It panics if core is nil.
func NewInstrumented(core coreEvaluator, logger logging.Logger, m *metrics.EvaluationMetrics) *InstrumentedEvaluator {
	if core == nil {
		panic("evaluator: the core evaluator cannot be nil")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &InstrumentedEvaluator{core: core, logger: logger, metrics: m}
}

// Name returns the name of the wrapped engine.
func (e *InstrumentedEvaluator) Name() string {
	return e.core.Name()
}

// Evaluate runs req on the wrapped engine. A successful evaluation always
// ends with a progress report of 1.0.
func (e *InstrumentedEvaluator) Evaluate(ctx context.Context, progressChan chan<- ProgressUpdate, index int, req Request) (result *big.Int, err error) {
	name := e.core.Name()
	ctx, span := otel.Tracer("limbcalc/evaluator").Start(ctx, "Evaluate",
		trace.WithAttributes(
			attribute.String("engine", name),
			attribute.String("op", string(req.Op)),
		))
	defer span.End()

	start := time.Now()
	defer func() {
		duration := time.Since(start)
		bits := 0
		if result != nil {
			bits = result.BitLen()
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		e.metrics.Observe(name, string(req.Op), duration, bits, err)
		e.logger.Debug("evaluation completed",
			logging.String("engine", name),
			logging.String("op", string(req.Op)),
			logging.Duration("duration", duration),
			logging.String("status", metrics.Status(err)),
			logging.Int("result_bits", bits),
		)
	}()

	if err = req.Validate(); err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	reporter := channelReporter(progressChan, index)
	result, err = e.core.EvaluateCore(ctx, reporter, req)
	if err == nil && result != nil {
		reporter(1.0)
	}
	return result, err
}
