package biguint

import (
	"fmt"
	"math"

	apperrors "github.com/agbru/limbcalc/internal/errors"
)

// The two arithmetic failure kinds. Errors returned by this package match
// them with errors.Is.
var (
	ErrOutOfMemory     = apperrors.ErrOutOfMemory
	ErrIndexOutOfRange = apperrors.ErrIndexOutOfRange
)

// BigUnsigned is an unsigned integer of arbitrary size held in a chain of
// W-bit limbs, index 0 least significant. The zero value is not usable;
// construct values with New, NewGrowing, FromUint64 or FromBig.
type BigUnsigned struct {
	cfg   Config
	mask  uint64
	limbs []uint64
}

// New returns a zero value shaped by cfg: one zero limb for Growing, the full
// zeroed buffer for FixedCapacity.
func New(cfg Config) (*BigUnsigned, error) {
	cfg, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}
	return newNormalized(cfg), nil
}

// NewGrowing returns a zero value with 64-bit limbs and unbounded growth.
func NewGrowing() *BigUnsigned {
	return newNormalized(Config{Width: DefaultWidth, Policy: Growing})
}

func newNormalized(cfg Config) *BigUnsigned {
	n := 1
	if cfg.Policy == FixedCapacity {
		n = cfg.fixedLimbs()
	}
	return &BigUnsigned{cfg: cfg, mask: limbMask(cfg.Width), limbs: acquireLimbs(n)}
}

// Config returns the normalized configuration of v.
func (v *BigUnsigned) Config() Config { return v.cfg }

// Width returns the limb width W in bits.
func (v *BigUnsigned) Width() uint { return v.cfg.Width }

// Len returns the number of limbs in the chain, trailing zero limbs included.
func (v *BigUnsigned) Len() int { return len(v.limbs) }

// Limbs returns a copy of the limb chain, least significant first.
func (v *BigUnsigned) Limbs() []uint64 {
	out := make([]uint64, len(v.limbs))
	copy(out, v.limbs)
	return out
}

// Clone returns a value with the same configuration and limbs and storage of
// its own.
func (v *BigUnsigned) Clone() *BigUnsigned {
	limbs := acquireLimbs(len(v.limbs))
	copy(limbs, v.limbs)
	return &BigUnsigned{cfg: v.cfg, mask: v.mask, limbs: limbs}
}

// Release returns the limb storage of v to the pool in one step. v must not
// be used afterwards.
func (v *BigUnsigned) Release() {
	releaseLimbs(v.limbs)
	v.limbs = nil
}

// IsZero reports whether no bit of v is set.
func (v *BigUnsigned) IsZero() bool {
	for _, l := range v.limbs {
		if l != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether v and o hold the same number. Missing limbs count as
// zero, so chains of different lengths can be equal. Values with different
// limb widths are never equal.
func (v *BigUnsigned) Equal(o *BigUnsigned) bool {
	if v.cfg.Width != o.cfg.Width {
		return false
	}
	n := max(len(v.limbs), len(o.limbs))
	for i := 0; i < n; i++ {
		if limbAt(v.limbs, i) != limbAt(o.limbs, i) {
			return false
		}
	}
	return true
}

func limbAt(limbs []uint64, i int) uint64 {
	if i < len(limbs) {
		return limbs[i]
	}
	return 0
}

// checkOperand rejects operands whose shape differs from the receiver's.
func (v *BigUnsigned) checkOperand(a *BigUnsigned) error {
	switch {
	case a == nil:
		return apperrors.ValidationError{Field: "operand", Message: "nil value"}
	case a.cfg.Width != v.cfg.Width:
		return apperrors.ValidationError{
			Field:   "operand",
			Message: fmt.Sprintf("limb width mismatch: %d and %d", v.cfg.Width, a.cfg.Width),
		}
	case a.cfg.Policy != v.cfg.Policy:
		return apperrors.ValidationError{
			Field:   "operand",
			Message: fmt.Sprintf("policy mismatch: %s and %s", v.cfg.Policy, a.cfg.Policy),
		}
	case a.cfg.CapacityBits != v.cfg.CapacityBits:
		return apperrors.ValidationError{
			Field:   "operand",
			Message: fmt.Sprintf("capacity mismatch: %d and %d bits", v.cfg.CapacityBits, a.cfg.CapacityBits),
		}
	}
	return nil
}

// checkIndex reports bit indices beyond a fixed capacity.
func (v *BigUnsigned) checkIndex(op string, x uint) error {
	if v.cfg.Policy == FixedCapacity && x >= v.cfg.CapacityBits {
		return v.rangeError(op, uint64(x))
	}
	return nil
}

func (v *BigUnsigned) rangeError(op string, index uint64) error {
	return apperrors.IndexError{Operation: op, Index: index, Capacity: uint64(v.cfg.CapacityBits)}
}

// checkGrowth reports whether the chain may become n limbs long. It never
// touches v. A growing chain is bounded by MaxLimbs when set and always by
// maxChainLimbs, so oversized requests fail before any allocation.
func (v *BigUnsigned) checkGrowth(op string, n uint) error {
	if n <= uint(len(v.limbs)) {
		return nil
	}
	switch v.cfg.Policy {
	case FixedCapacity:
		return v.rangeError(op, uint64(len(v.limbs))*uint64(v.cfg.Width))
	case Growing:
		limit := uint(maxChainLimbs)
		if v.cfg.MaxLimbs > 0 && uint(v.cfg.MaxLimbs) < limit {
			limit = uint(v.cfg.MaxLimbs)
		}
		if n > limit {
			return apperrors.WrapError(apperrors.MemoryError{
				Requested: limbBytes(n),
				Available: limbBytes(uint(len(v.limbs))),
				Limit:     limbBytes(limit),
			}, "%s: grow to %d limbs", op, n)
		}
	}
	return nil
}

// grow extends the chain with zero limbs up to length n. The limit check and
// the allocation both happen before v is touched.
func (v *BigUnsigned) grow(op string, n uint) error {
	if n <= uint(len(v.limbs)) {
		return nil
	}
	if err := v.checkGrowth(op, n); err != nil {
		return err
	}
	size := int(n)
	if size <= cap(v.limbs) {
		old := len(v.limbs)
		v.limbs = v.limbs[:size]
		clear(v.limbs[old:])
		return nil
	}
	limbs := acquireLimbs(size)
	copy(limbs, v.limbs)
	releaseLimbs(v.limbs)
	v.limbs = limbs
	return nil
}

// limbCount is the chain length needed to hold limb position i. It saturates
// instead of wrapping so the result always fails the growth limit when i is
// the largest position.
func limbCount(i uint) uint {
	if i == ^uint(0) {
		return i
	}
	return i + 1
}

// limbBytes is the storage size of n limbs, saturating at MaxUint64.
func limbBytes(n uint) uint64 {
	if uint64(n) > math.MaxUint64/8 {
		return math.MaxUint64
	}
	return uint64(n) * 8
}
