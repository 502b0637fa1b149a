package evaluator

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/agbru/limbcalc/internal/biguint"
	apperrors "github.com/agbru/limbcalc/internal/errors"
)

func mustLimb(t *testing.T, cfg biguint.Config) *LimbEvaluator {
	t.Helper()
	e, err := NewLimbEvaluator("limb", cfg)
	if err != nil {
		t.Fatalf("NewLimbEvaluator: %v", err)
	}
	return e
}

func bigFromString(t *testing.T, s string) *big.Int {
	t.Helper()
	x, ok := new(big.Int).SetString(s, 0)
	if !ok {
		t.Fatalf("bad literal %q", s)
	}
	return x
}

func TestNewLimbEvaluatorRejectsBadWidth(t *testing.T) {
	t.Parallel()
	_, err := NewLimbEvaluator("bad", biguint.Config{Width: 65})
	var valErr apperrors.ValidationError
	if !errors.As(err, &valErr) || valErr.Field != "width" {
		t.Fatalf("err = %v, want width ValidationError", err)
	}
}

func TestLimbAgreesWithOracle(t *testing.T) {
	t.Parallel()

	configs := []biguint.Config{
		{Width: 1},
		{Width: 4},
		{Width: 7},
		{Width: 64},
		{Width: 8, Policy: biguint.FixedCapacity, CapacityBits: 512},
	}
	requests := []Request{
		{Op: OpAdd, A: big.NewInt(5), B: big.NewInt(3)},
		{Op: OpAdd, A: big.NewInt(0), B: big.NewInt(0)},
		{Op: OpAdd, A: bigFromString(t, "0xffffffffffffffff"), B: big.NewInt(1)},
		{Op: OpMul, A: big.NewInt(5), B: big.NewInt(3)},
		{Op: OpMul, A: big.NewInt(0), B: big.NewInt(12345)},
		{Op: OpMul, A: bigFromString(t, "123456789012345678901234567890"), B: bigFromString(t, "987654321")},
		{Op: OpShiftLeft, A: big.NewInt(3), K: 1},
		{Op: OpShiftLeft, A: big.NewInt(1), K: 130},
		{Op: OpShiftLeft, A: big.NewInt(0), K: 9},
		{Op: OpBitLen, A: big.NewInt(0)},
		{Op: OpBitLen, A: big.NewInt(8)},
		{Op: OpGetBit, A: big.NewInt(5), K: 2},
		{Op: OpGetBit, A: big.NewInt(5), K: 300},
		{Op: OpSetBit, A: big.NewInt(0), K: 70},
		{Op: OpClearBit, A: big.NewInt(7), K: 1},
		{Op: OpClearBit, A: big.NewInt(7), K: 200},
	}

	oracle := OracleEvaluator{}
	for _, cfg := range configs {
		e := mustLimb(t, cfg)
		for _, req := range requests {
			want, err := oracle.EvaluateCore(context.Background(), nil, req)
			if err != nil {
				t.Fatalf("oracle %s: %v", req, err)
			}
			got, err := e.EvaluateCore(context.Background(), func(float64) {}, req)
			if cfg.Policy == biguint.FixedCapacity && req.K >= e.Config().CapacityBits && req.Op != OpShiftLeft {
				if !errors.Is(err, apperrors.ErrIndexOutOfRange) {
					t.Errorf("W=%d fixed %s: err = %v, want ErrIndexOutOfRange", cfg.Width, req, err)
				}
				continue
			}
			if err != nil {
				t.Errorf("W=%d %s: unexpected error %v", cfg.Width, req, err)
				continue
			}
			if got.Cmp(want) != 0 {
				t.Errorf("W=%d %s = %s, want %s", cfg.Width, req, got, want)
			}
		}
	}
}

func TestLimbFixedCapacityOverflow(t *testing.T) {
	t.Parallel()

	e := mustLimb(t, biguint.Config{Width: 8, Policy: biguint.FixedCapacity, CapacityBits: 16})
	tests := []Request{
		{Op: OpShiftLeft, A: big.NewInt(0x8000), K: 1},
		{Op: OpAdd, A: big.NewInt(0xffff), B: big.NewInt(1)},
		{Op: OpMul, A: big.NewInt(0x100), B: big.NewInt(0x100)},
		{Op: OpSetBit, A: big.NewInt(0), K: 16},
	}
	for _, req := range tests {
		_, err := e.EvaluateCore(context.Background(), nil, req)
		if !errors.Is(err, apperrors.ErrIndexOutOfRange) {
			t.Errorf("%s: err = %v, want ErrIndexOutOfRange", req, err)
		}
	}

	_, err := e.EvaluateCore(context.Background(), nil, Request{Op: OpBitLen, A: big.NewInt(1 << 20)})
	var idxErr apperrors.IndexError
	if !errors.As(err, &idxErr) {
		t.Fatalf("oversized operand: err = %v, want IndexError", err)
	}
}

func TestLimbGrowthLimit(t *testing.T) {
	t.Parallel()

	e := mustLimb(t, biguint.Config{Width: 4, MaxLimbs: 2})
	_, err := e.EvaluateCore(context.Background(), nil, Request{Op: OpShiftLeft, A: big.NewInt(1), K: 8})
	var memErr apperrors.MemoryError
	if !errors.As(err, &memErr) || !errors.Is(err, apperrors.ErrOutOfMemory) {
		t.Fatalf("err = %v, want MemoryError", err)
	}

	got, err := e.EvaluateCore(context.Background(), nil, Request{Op: OpShiftLeft, A: big.NewInt(1), K: 7})
	if err != nil || got.Int64() != 128 {
		t.Fatalf("within limit: got %v, %v", got, err)
	}
}

func TestLimbMulReportsProgressAndHonoursCancel(t *testing.T) {
	t.Parallel()

	e := mustLimb(t, biguint.Config{Width: 64})
	req := Request{Op: OpMul, A: big.NewInt(3), B: new(big.Int).Lsh(big.NewInt(1), 400)}

	var last float64
	calls := 0
	if _, err := e.EvaluateCore(context.Background(), func(p float64) { last = p; calls++ }, req); err != nil {
		t.Fatal(err)
	}
	if calls == 0 || last != 1.0 {
		t.Errorf("progress calls=%d last=%v, want final 1.0", calls, last)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.EvaluateCore(ctx, nil, req); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled mul: err = %v, want context.Canceled", err)
	}
}
