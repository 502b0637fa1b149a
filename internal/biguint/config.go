package biguint

import (
	"fmt"
	"math/bits"

	apperrors "github.com/agbru/limbcalc/internal/errors"
)

// Policy selects how a value manages its limb chain.
type Policy uint8

const (
	// Growing values start with one limb and grow on demand.
	Growing Policy = iota
	// FixedCapacity values allocate all limbs at construction and never grow.
	FixedCapacity
)

const (
	// DefaultWidth is the limb width used when Config.Width is zero.
	DefaultWidth = 64
	// MaxWidth is the widest supported limb; limbs are stored in uint64 words.
	MaxWidth = 64
	// DefaultCapacityBits is the fixed-capacity size used when
	// Config.CapacityBits is zero.
	DefaultCapacityBits = 1024
)

// maxChainBytes bounds the storage of one value: 1 TiB on 64-bit platforms,
// 1 GiB on 32-bit ones. Both sit below what the runtime can allocate, so a
// request past it is reported as ErrOutOfMemory rather than failing in make.
const maxChainBytes = 1 << (30 + 10*(bits.UintSize/64))

// maxChainLimbs is the longest chain any value may hold.
const maxChainLimbs = maxChainBytes / 8

// String returns the flag spelling of the policy.
func (p Policy) String() string {
	switch p {
	case Growing:
		return "growing"
	case FixedCapacity:
		return "fixed"
	default:
		return fmt.Sprintf("Policy(%d)", uint8(p))
	}
}

// Config fixes the shape of a value for its whole lifetime.
type Config struct {
	// Width is the number of significant bits per limb, 1 to 64.
	// Zero selects DefaultWidth.
	Width uint
	// Policy chooses between on-demand growth and a fixed buffer.
	Policy Policy
	// CapacityBits is the addressable size of a FixedCapacity value, rounded
	// up to a whole number of limbs. Zero selects DefaultCapacityBits.
	// Ignored for Growing values.
	CapacityBits uint
	// MaxLimbs bounds the chain length of a Growing value; zero means
	// unbounded. Exceeding it reports ErrOutOfMemory.
	MaxLimbs int
}

// Normalize fills defaults and validates c. Two configs that normalize to the
// same value describe interchangeable operands.
func (c Config) Normalize() (Config, error) {
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Width > MaxWidth {
		return Config{}, apperrors.ValidationError{
			Field:   "width",
			Message: fmt.Sprintf("must be between 1 and %d, got %d", MaxWidth, c.Width),
		}
	}
	switch c.Policy {
	case Growing:
		if c.MaxLimbs < 0 {
			return Config{}, apperrors.ValidationError{Field: "max-limbs", Message: "cannot be negative"}
		}
		c.CapacityBits = 0
	case FixedCapacity:
		if c.CapacityBits == 0 {
			c.CapacityBits = DefaultCapacityBits
		}
		limbs := c.CapacityBits / c.Width
		if c.CapacityBits%c.Width != 0 {
			limbs++
		}
		if limbs > maxChainLimbs {
			return Config{}, apperrors.WrapError(apperrors.MemoryError{
				Requested: limbBytes(limbs),
				Limit:     maxChainBytes,
			}, "capacity of %d bits", c.CapacityBits)
		}
		c.CapacityBits = limbs * c.Width
		c.MaxLimbs = 0
	default:
		return Config{}, apperrors.ValidationError{Field: "policy", Message: fmt.Sprintf("unknown policy %d", uint8(c.Policy))}
	}
	return c, nil
}

// fixedLimbs is the chain length of a normalized FixedCapacity config.
func (c Config) fixedLimbs() int {
	return int(c.CapacityBits / c.Width)
}

func limbMask(width uint) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return 1<<width - 1
}
