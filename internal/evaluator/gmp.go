//go:build gmp

// The GMP engine is only compiled with -tags=gmp and needs libgmp installed
// (libgmp-dev on Debian/Ubuntu, brew install gmp on macOS).

package evaluator

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ncw/gmp"
)

func init() {
	RegisterEvaluator("gmp", func(Options) (coreEvaluator, error) { return GMPEvaluator{}, nil })
}

// GMPEvaluator runs requests on libgmp through cgo.
type GMPEvaluator struct{}

// Name returns the name of the engine.
func (GMPEvaluator) Name() string { return "gmp (libgmp)" }

// EvaluateCore applies req to gmp.Int values. Operands cross the cgo boundary
// as big-endian bytes.
func (GMPEvaluator) EvaluateCore(_ context.Context, _ ProgressReporter, req Request) (*big.Int, error) {
	a := toGMP(req.A)
	z := new(gmp.Int)
	switch req.Op {
	case OpAdd:
		z.Add(a, toGMP(req.B))
	case OpMul:
		z.Mul(toGMP(req.B), a)
	case OpShiftLeft:
		z.Lsh(a, req.K)
	case OpBitLen:
		return big.NewInt(int64(max(1, a.BitLen()))), nil
	case OpGetBit:
		return new(big.Int).SetUint64(uint64(a.Bit(int(req.K)))), nil
	case OpSetBit:
		z.SetBit(a, int(req.K), 1)
	case OpClearBit:
		z.SetBit(a, int(req.K), 0)
	default:
		return nil, fmt.Errorf("unsupported operation %q", req.Op)
	}
	return new(big.Int).SetBytes(z.Bytes()), nil
}

func toGMP(x *big.Int) *gmp.Int {
	return new(gmp.Int).SetBytes(x.Bytes())
}
