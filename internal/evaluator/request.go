package evaluator

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	apperrors "github.com/agbru/limbcalc/internal/errors"
)

// Operation names one arithmetic request kind.
type Operation string

// Supported operations. K is the shift amount for OpShiftLeft and the bit
// index for the bit operations.
const (
	OpAdd       Operation = "add"
	OpMul       Operation = "mul"
	OpShiftLeft Operation = "shl"
	OpBitLen    Operation = "bitlen"
	OpGetBit    Operation = "getbit"
	OpSetBit    Operation = "setbit"
	OpClearBit  Operation = "clearbit"
)

// MaxK bounds the shift amount and bit index so every engine can address it
// with an int.
const MaxK = math.MaxInt32

var operations = []Operation{OpAdd, OpMul, OpShiftLeft, OpBitLen, OpGetBit, OpSetBit, OpClearBit}

// Operations returns every supported operation in display order.
func Operations() []Operation {
	return append([]Operation(nil), operations...)
}

// ParseOperation converts a flag value to an Operation.
func ParseOperation(s string) (Operation, error) {
	name := Operation(strings.ToLower(strings.TrimSpace(s)))
	for _, op := range operations {
		if op == name {
			return op, nil
		}
	}
	return "", apperrors.ValidationError{Field: "op", Message: fmt.Sprintf("unknown operation %q", s)}
}

// Binary reports whether the operation reads operand B.
func (op Operation) Binary() bool {
	return op == OpAdd || op == OpMul
}

// Request is one evaluation: Op applied to A (and B for binary operations),
// with K as the shift amount or bit index.
type Request struct {
	Op Operation
	A  *big.Int
	B  *big.Int
	K  uint
}

// Validate checks that the operation is known, K is addressable, and the
// operands the operation reads are present and non-negative.
func (r Request) Validate() error {
	if _, err := ParseOperation(string(r.Op)); err != nil {
		return err
	}
	if r.K > MaxK {
		return apperrors.ValidationError{Field: "k", Message: fmt.Sprintf("must not exceed %d", uint(MaxK))}
	}
	if err := validateOperand("a", r.A); err != nil {
		return err
	}
	if r.Op.Binary() {
		return validateOperand("b", r.B)
	}
	return nil
}

func validateOperand(field string, x *big.Int) error {
	if x == nil {
		return apperrors.ValidationError{Field: field, Message: "operand is required"}
	}
	if x.Sign() < 0 {
		return apperrors.ValidationError{Field: field, Message: "operand must not be negative"}
	}
	return nil
}

// String renders the request for logs and headers, e.g. "mul(5, 3)" or
// "shl(3, k=1)".
func (r Request) String() string {
	switch {
	case r.Op.Binary():
		return fmt.Sprintf("%s(%s, %s)", r.Op, r.A, r.B)
	case r.Op == OpBitLen:
		return fmt.Sprintf("%s(%s)", r.Op, r.A)
	default:
		return fmt.Sprintf("%s(%s, k=%d)", r.Op, r.A, r.K)
	}
}

// Options carries the engine shape chosen on the command line.
type Options struct {
	// Width is the limb width of the configurable limb engines.
	Width uint
	// CapacityBits sizes the fixed-capacity engine.
	CapacityBits uint
	// MaxLimbs bounds growing engines; zero means unbounded.
	MaxLimbs int
}
