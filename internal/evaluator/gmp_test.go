//go:build gmp

package evaluator

import (
	"context"
	"math/big"
	"testing"
)

func TestGMPAgreesWithOracle(t *testing.T) {
	t.Parallel()

	a, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	requests := []Request{
		{Op: OpAdd, A: a, B: big.NewInt(1)},
		{Op: OpMul, A: a, B: a},
		{Op: OpShiftLeft, A: big.NewInt(3), K: 100},
		{Op: OpBitLen, A: big.NewInt(0)},
		{Op: OpGetBit, A: big.NewInt(5), K: 2},
		{Op: OpSetBit, A: big.NewInt(0), K: 70},
		{Op: OpClearBit, A: big.NewInt(7), K: 1},
	}
	for _, req := range requests {
		want, _ := OracleEvaluator{}.EvaluateCore(context.Background(), nil, req)
		got, err := GMPEvaluator{}.EvaluateCore(context.Background(), nil, req)
		if err != nil {
			t.Fatalf("%s: %v", req, err)
		}
		if got.Cmp(want) != 0 {
			t.Errorf("%s = %s, want %s", req, got, want)
		}
	}
}

func TestGMPIsRegistered(t *testing.T) {
	t.Parallel()
	if !NewDefaultFactory(Options{}).Has("gmp") {
		t.Error("gmp engine should register itself under the gmp tag")
	}
}
