package evaluator

// Note: Factory is not mockable with mockgen because Register() uses the
// unexported coreEvaluator type. Use DefaultFactory in tests instead.

import (
	"fmt"
	"sort"
	"sync"

	"github.com/agbru/limbcalc/internal/biguint"
	"github.com/agbru/limbcalc/internal/logging"
	"github.com/agbru/limbcalc/internal/metrics"
)

// Creator builds a bare engine for the given options.
type Creator func(Options) (coreEvaluator, error)

// Factory creates and caches named evaluators.
type Factory interface {
	// Create returns a fresh Evaluator for name, bypassing the cache.
	Create(name string) (Evaluator, error)

	// Get returns the cached Evaluator for name, creating it on first use.
	Get(name string) (Evaluator, error)

	// List returns the registered names in sorted order.
	List() []string

	// Has reports whether name is registered, without creating it.
	Has(name string) bool

	// Register adds or replaces an engine.
	Register(name string, creator Creator) error

	// GetAll returns every engine that could be created.
	GetAll() map[string]Evaluator
}

var (
	globalMu       sync.RWMutex
	globalCreators = make(map[string]Creator)
)

// RegisterEvaluator makes an engine available to every factory created
// afterwards. Optional engines call it from init.
func RegisterEvaluator(name string, creator Creator) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalCreators[name] = creator
}

// DefaultFactory is the thread-safe Factory used by the application. Every
// evaluator it hands out is wrapped in an InstrumentedEvaluator.
type DefaultFactory struct {
	mu         sync.RWMutex
	opts       Options
	logger     logging.Logger
	metrics    *metrics.EvaluationMetrics
	creators   map[string]Creator
	evaluators map[string]Evaluator
}

// FactoryOption configures a DefaultFactory.
type FactoryOption func(*DefaultFactory)

// WithLogger sets the logger handed to every evaluator.
func WithLogger(l logging.Logger) FactoryOption {
	return func(f *DefaultFactory) { f.logger = l }
}

// WithMetrics sets the collectors updated by every evaluator.
func WithMetrics(m *metrics.EvaluationMetrics) FactoryOption {
	return func(f *DefaultFactory) { f.metrics = m }
}

// NewDefaultFactory returns a factory with the built-in engines plus any
// registered through RegisterEvaluator:
//   - "bigint": math/big reference
//   - "limb": growing limb chain, width from opts
//   - "limb4": growing limb chain with 4-bit limbs
//   - "limb-fixed": fixed-capacity limb chain, width and capacity from opts
func NewDefaultFactory(opts Options, options ...FactoryOption) *DefaultFactory {
	f := &DefaultFactory{
		opts:       opts,
		creators:   make(map[string]Creator),
		evaluators: make(map[string]Evaluator),
	}
	for _, o := range options {
		o(f)
	}

	_ = f.Register("bigint", func(Options) (coreEvaluator, error) { return OracleEvaluator{}, nil })
	_ = f.Register("limb", limbCreator("limb", func(o Options) biguint.Config {
		return biguint.Config{Width: o.Width, Policy: biguint.Growing, MaxLimbs: o.MaxLimbs}
	}))
	_ = f.Register("limb4", limbCreator("limb4", func(o Options) biguint.Config {
		return biguint.Config{Width: 4, Policy: biguint.Growing, MaxLimbs: o.MaxLimbs}
	}))
	_ = f.Register("limb-fixed", limbCreator("limb-fixed", func(o Options) biguint.Config {
		return biguint.Config{Width: o.Width, Policy: biguint.FixedCapacity, CapacityBits: o.CapacityBits}
	}))

	globalMu.RLock()
	for name, creator := range globalCreators {
		f.creators[name] = creator
	}
	globalMu.RUnlock()

	return f
}

func limbCreator(label string, shape func(Options) biguint.Config) Creator {
	return func(opts Options) (coreEvaluator, error) {
		cfg, err := shape(opts).Normalize()
		if err != nil {
			return nil, err
		}
		return NewLimbEvaluator(fmt.Sprintf("%s (%s)", label, describeConfig(cfg)), cfg)
	}
}

func describeConfig(cfg biguint.Config) string {
	switch {
	case cfg.Policy == biguint.FixedCapacity:
		return fmt.Sprintf("W=%d, %d bits", cfg.Width, cfg.CapacityBits)
	case cfg.MaxLimbs > 0:
		return fmt.Sprintf("W=%d, max %d limbs", cfg.Width, cfg.MaxLimbs)
	default:
		return fmt.Sprintf("W=%d", cfg.Width)
	}
}

// Register adds an engine. The creator runs lazily on first use; replacing
// an engine drops its cached instance.
func (f *DefaultFactory) Register(name string, creator Creator) error {
	if creator == nil {
		return fmt.Errorf("evaluator %q: nil creator", name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.creators[name] = creator
	delete(f.evaluators, name)
	return nil
}

// Has reports whether name is registered.
func (f *DefaultFactory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.creators[name]
	return ok
}

// Create returns a fresh evaluator for name without caching it.
func (f *DefaultFactory) Create(name string) (Evaluator, error) {
	f.mu.RLock()
	creator, ok := f.creators[name]
	f.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown engine: %s", name)
	}
	return f.build(name, creator)
}

// Get returns the cached evaluator for name, creating it on first use.
func (f *DefaultFactory) Get(name string) (Evaluator, error) {
	f.mu.RLock()
	if ev, exists := f.evaluators[name]; exists {
		f.mu.RUnlock()
		return ev, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()

	if ev, exists := f.evaluators[name]; exists {
		return ev, nil
	}
	creator, ok := f.creators[name]
	if !ok {
		return nil, fmt.Errorf("unknown engine: %s", name)
	}
	ev, err := f.build(name, creator)
	if err != nil {
		return nil, err
	}
	f.evaluators[name] = ev
	return ev, nil
}

// List returns the registered names sorted alphabetically.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll creates every registered engine that is not cached yet. Engines
// whose creator fails are left out.
func (f *DefaultFactory) GetAll() map[string]Evaluator {
	f.mu.Lock()
	defer f.mu.Unlock()

	for name, creator := range f.creators {
		if _, exists := f.evaluators[name]; exists {
			continue
		}
		if ev, err := f.build(name, creator); err == nil {
			f.evaluators[name] = ev
		}
	}

	result := make(map[string]Evaluator, len(f.evaluators))
	for name, ev := range f.evaluators {
		result[name] = ev
	}
	return result
}

func (f *DefaultFactory) build(name string, creator Creator) (Evaluator, error) {
	core, err := creator(f.opts)
	if err != nil {
		return nil, fmt.Errorf("engine %s: %w", name, err)
	}
	return NewInstrumented(core, f.logger, f.metrics), nil
}
