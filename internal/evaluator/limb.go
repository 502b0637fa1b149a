package evaluator

import (
	"context"
	"fmt"
	"math/big"

	"github.com/agbru/limbcalc/internal/biguint"
)

// LimbEvaluator runs requests on biguint values shaped by a fixed Config.
// Every call converts its operands into fresh values and releases all of them
// before returning.
type LimbEvaluator struct {
	name string
	cfg  biguint.Config
}

// NewLimbEvaluator returns an engine named name that evaluates under cfg.
// The configuration is validated here so a bad shape fails at selection.
func NewLimbEvaluator(name string, cfg biguint.Config) (*LimbEvaluator, error) {
	norm, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}
	return &LimbEvaluator{name: name, cfg: norm}, nil
}

// Name returns the name of the engine.
func (e *LimbEvaluator) Name() string { return e.name }

// Config returns the normalized value shape.
func (e *LimbEvaluator) Config() biguint.Config { return e.cfg }

// EvaluateCore converts req.A (and req.B) into limb chains, runs the
// operation, and converts the answer back. Only multiplication reports
// intermediate progress.
func (e *LimbEvaluator) EvaluateCore(ctx context.Context, reporter ProgressReporter, req Request) (*big.Int, error) {
	a, err := biguint.FromBig(e.cfg, req.A)
	if err != nil {
		return nil, fmt.Errorf("operand a: %w", err)
	}
	defer a.Release()

	switch req.Op {
	case OpAdd, OpMul:
		b, err := biguint.FromBig(e.cfg, req.B)
		if err != nil {
			return nil, fmt.Errorf("operand b: %w", err)
		}
		defer b.Release()
		if req.Op == OpAdd {
			if err := a.Add(b); err != nil {
				return nil, err
			}
			return a.ToBig(), nil
		}
		product, err := biguint.MulContext(ctx, b, a, reporter)
		if err != nil {
			return nil, err
		}
		defer product.Release()
		return product.ToBig(), nil
	case OpShiftLeft:
		if err := a.ShiftLeft(req.K); err != nil {
			return nil, err
		}
		return a.ToBig(), nil
	case OpBitLen:
		return big.NewInt(int64(a.BitLen())), nil
	case OpGetBit:
		bit, err := a.Bit(req.K)
		if err != nil {
			return nil, err
		}
		return new(big.Int).SetUint64(uint64(bit)), nil
	case OpSetBit:
		if err := a.SetBit(req.K); err != nil {
			return nil, err
		}
		return a.ToBig(), nil
	case OpClearBit:
		if err := a.ClearBit(req.K); err != nil {
			return nil, err
		}
		return a.ToBig(), nil
	}
	return nil, fmt.Errorf("unsupported operation %q", req.Op)
}
