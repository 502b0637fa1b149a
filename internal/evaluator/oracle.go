package evaluator

import (
	"context"
	"fmt"
	"math/big"
)

// OracleEvaluator runs requests on math/big. It is the reference the limb
// engines are compared against.
type OracleEvaluator struct{}

// Name returns the name of the engine.
func (OracleEvaluator) Name() string { return "bigint (math/big)" }

// EvaluateCore applies req to fresh math/big values. bitlen reports 1 for
// zero, matching the limb engine.
func (OracleEvaluator) EvaluateCore(_ context.Context, _ ProgressReporter, req Request) (*big.Int, error) {
	a := req.A
	z := new(big.Int)
	switch req.Op {
	case OpAdd:
		return z.Add(a, req.B), nil
	case OpMul:
		return z.Mul(req.B, a), nil
	case OpShiftLeft:
		return z.Lsh(a, req.K), nil
	case OpBitLen:
		return z.SetInt64(int64(max(1, a.BitLen()))), nil
	case OpGetBit:
		return z.SetUint64(uint64(a.Bit(int(req.K)))), nil
	case OpSetBit:
		return z.SetBit(a, int(req.K), 1), nil
	case OpClearBit:
		return z.SetBit(a, int(req.K), 0), nil
	}
	return nil, fmt.Errorf("unsupported operation %q", req.Op)
}
