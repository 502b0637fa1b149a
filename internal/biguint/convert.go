package biguint

import (
	"math/big"

	apperrors "github.com/agbru/limbcalc/internal/errors"
)

// FromUint64 returns a value shaped by cfg holding x.
func FromUint64(cfg Config, x uint64) (*BigUnsigned, error) {
	return FromBig(cfg, new(big.Int).SetUint64(x))
}

// FromBig returns a value shaped by cfg holding x, which must not be negative.
// Bits are written from the most significant down so a growing chain is
// sized once.
func FromBig(cfg Config, x *big.Int) (*BigUnsigned, error) {
	if x == nil || x.Sign() < 0 {
		return nil, apperrors.ValidationError{Field: "value", Message: "must be a non-negative integer"}
	}
	v, err := New(cfg)
	if err != nil {
		return nil, err
	}
	for i := x.BitLen() - 1; i >= 0; i-- {
		if x.Bit(i) == 0 {
			continue
		}
		if err := v.SetBit(uint(i)); err != nil {
			v.Release()
			return nil, err
		}
	}
	return v, nil
}

// ToBig returns v as a math/big integer.
func (v *BigUnsigned) ToBig() *big.Int {
	z := new(big.Int)
	limb := new(big.Int)
	for i := len(v.limbs) - 1; i >= 0; i-- {
		z.Lsh(z, v.cfg.Width)
		z.Or(z, limb.SetUint64(v.limbs[i]))
	}
	return z
}
