package metrics

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "github.com/agbru/limbcalc/internal/errors"
)

// Namespace prefixes every collector registered by this package.
const Namespace = "limbcalc"

// Evaluation status label values.
const (
	StatusSuccess  = "success"
	StatusCanceled = "canceled"
	StatusRange    = "range"
	StatusLimit    = "limit"
	StatusError    = "error"
)

// EvaluationMetrics groups the collectors updated after each evaluation.
type EvaluationMetrics struct {
	evaluations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	resultBits  *prometheus.GaugeVec
}

// NewEvaluationMetrics registers the evaluation collectors with reg.
// Registering twice on the same registry panics, as promauto does.
func NewEvaluationMetrics(reg prometheus.Registerer) *EvaluationMetrics {
	factory := promauto.With(reg)
	return &EvaluationMetrics{
		evaluations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "evaluations_total",
				Help:      "The total number of evaluations processed",
			},
			[]string{"engine", "op", "status"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "evaluation_duration_seconds",
				Help:      "The duration of evaluations in seconds",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
			},
			[]string{"engine", "op"},
		),
		resultBits: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "result_bits",
				Help:      "Bit length of the last successful result per engine",
			},
			[]string{"engine"},
		),
	}
}

var (
	defaultOnce    sync.Once
	defaultMetrics *EvaluationMetrics
)

// Default returns the collectors registered on the global Prometheus registry.
func Default() *EvaluationMetrics {
	defaultOnce.Do(func() {
		defaultMetrics = NewEvaluationMetrics(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

// Observe records one finished evaluation. resultBits is only recorded on
// success.
func (m *EvaluationMetrics) Observe(engine, op string, d time.Duration, resultBits int, err error) {
	if m == nil {
		return
	}
	status := Status(err)
	m.evaluations.WithLabelValues(engine, op, status).Inc()
	m.duration.WithLabelValues(engine, op).Observe(d.Seconds())
	if err == nil {
		m.resultBits.WithLabelValues(engine).Set(float64(resultBits))
	}
}

// Status maps an evaluation error to its status label.
func Status(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case apperrors.IsContextError(err):
		return StatusCanceled
	case errors.Is(err, apperrors.ErrIndexOutOfRange):
		return StatusRange
	case errors.Is(err, apperrors.ErrOutOfMemory):
		return StatusLimit
	default:
		return StatusError
	}
}

