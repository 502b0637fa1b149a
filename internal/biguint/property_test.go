package biguint

import (
	"math/big"
	"math/bits"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// newProperties returns a property set with the parameters shared by every
// test in this file.
func newProperties() *gopter.Properties {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	return gopter.NewProperties(parameters)
}

// widthGen draws limb widths over the whole supported range.
func widthGen() gopter.Gen { return gen.UInt64Range(1, MaxWidth) }

// valueOf builds a growing value of width w or panics; generator inputs are
// always valid.
func valueOf(w, x uint64) *BigUnsigned {
	v, err := FromUint64(Config{Width: uint(w)}, x)
	if err != nil {
		panic(err)
	}
	return v
}

func TestBitOperations_PropertyBased(t *testing.T) {
	properties := newProperties()

	properties.Property("set then get reads 1, clear then get reads 0", prop.ForAll(
		func(w, x, idx uint64) bool {
			v := valueOf(w, x)
			defer v.Release()
			i := uint(idx)
			if v.SetBit(i) != nil {
				return false
			}
			if bit, err := v.Bit(i); err != nil || bit != 1 {
				return false
			}
			if v.ClearBit(i) != nil {
				return false
			}
			bit, err := v.Bit(i)
			return err == nil && bit == 0
		},
		widthGen(), gen.UInt64(), gen.UInt64Range(0, 600),
	))

	properties.Property("bit length matches the highest set bit", prop.ForAll(
		func(w, x uint64) bool {
			v := valueOf(w, x)
			defer v.Release()
			return v.BitLen() == max(1, bits.Len64(x))
		},
		widthGen(), gen.UInt64(),
	))

	properties.Property("setting and clearing a new top bit restores bit length", prop.ForAll(
		func(w, x, gap uint64) bool {
			v := valueOf(w, x)
			defer v.Release()
			before := v.BitLen()
			top := uint(before) + uint(gap)
			if v.SetBit(top) != nil || v.BitLen() != int(top)+1 {
				return false
			}
			return v.ClearBit(top) == nil && v.BitLen() == before
		},
		widthGen(), gen.UInt64(), gen.UInt64Range(0, 200),
	))

	properties.TestingRun(t)
}

func TestAddition_PropertyBased(t *testing.T) {
	properties := newProperties()

	properties.Property("addition agrees with math/big", prop.ForAll(
		func(w, x, y uint64) bool {
			a, b := valueOf(w, x), valueOf(w, y)
			defer a.Release()
			defer b.Release()
			if a.Add(b) != nil {
				return false
			}
			want := new(big.Int).Add(new(big.Int).SetUint64(x), new(big.Int).SetUint64(y))
			return a.ToBig().Cmp(want) == 0
		},
		widthGen(), gen.UInt64(), gen.UInt64(),
	))

	properties.Property("addition is commutative limb for limb", prop.ForAll(
		func(w, x, y uint64) bool {
			p, q := valueOf(w, x), valueOf(w, y)
			p2, q2 := p.Clone(), q.Clone()
			if p.Add(q) != nil || q2.Add(p2) != nil {
				return false
			}
			return slices.Equal(p.Limbs(), q2.Limbs())
		},
		widthGen(), gen.UInt64(), gen.UInt64(),
	))

	properties.TestingRun(t)
}

func TestShift_PropertyBased(t *testing.T) {
	properties := newProperties()

	properties.Property("shifting by one doubles the value", prop.ForAll(
		func(w, x uint64) bool {
			v := valueOf(w, x)
			defer v.Release()
			if v.ShiftLeftOne() != nil {
				return false
			}
			return v.ToBig().Cmp(new(big.Int).Lsh(new(big.Int).SetUint64(x), 1)) == 0
		},
		widthGen(), gen.UInt64(),
	))

	properties.Property("shifting one by k sets only bit k", prop.ForAll(
		func(w, k uint64) bool {
			v := valueOf(w, 1)
			defer v.Release()
			if v.ShiftLeft(uint(k)) != nil {
				return false
			}
			for i := uint(0); i <= uint(k)+uint(w); i++ {
				bit, err := v.Bit(i)
				if err != nil || (bit == 1) != (i == uint(k)) {
					return false
				}
			}
			return v.BitLen() == int(k)+1
		},
		widthGen(), gen.UInt64Range(0, 300),
	))

	properties.Property("ShiftLeft(k) equals k single shifts", prop.ForAll(
		func(w, x, k uint64) bool {
			fast := valueOf(w, x)
			slow := fast.Clone()
			defer fast.Release()
			defer slow.Release()
			if fast.ShiftLeft(uint(k)) != nil {
				return false
			}
			for i := uint64(0); i < k; i++ {
				if slow.ShiftLeftOne() != nil {
					return false
				}
			}
			return slices.Equal(fast.Limbs(), slow.Limbs())
		},
		widthGen(), gen.UInt64(), gen.UInt64Range(0, 150),
	))

	properties.TestingRun(t)
}

func TestMultiplication_PropertyBased(t *testing.T) {
	properties := newProperties()

	properties.Property("multiplication agrees with math/big", prop.ForAll(
		func(w, x, y uint64) bool {
			a, b := valueOf(w, x), valueOf(w, y)
			defer a.Release()
			defer b.Release()
			product, err := Mul(b, a)
			if err != nil {
				return false
			}
			defer product.Release()
			want := new(big.Int).Mul(new(big.Int).SetUint64(x), new(big.Int).SetUint64(y))
			return product.ToBig().Cmp(want) == 0
		},
		widthGen(), gen.UInt64(), gen.UInt64(),
	))

	properties.Property("multiplying by zero yields zero", prop.ForAll(
		func(w, x uint64) bool {
			a, zero := valueOf(w, x), valueOf(w, 0)
			p1, err1 := Mul(zero, a)
			p2, err2 := Mul(a, zero)
			if err1 != nil || err2 != nil {
				return false
			}
			return p1.IsZero() && p2.IsZero() && p1.BitLen() == 1 && p2.BitLen() == 1
		},
		widthGen(), gen.UInt64(),
	))

	properties.Property("multiplication is commutative", prop.ForAll(
		func(w, x, y uint64) bool {
			a, b := valueOf(w, x), valueOf(w, y)
			p1, err1 := Mul(b, a)
			p2, err2 := Mul(a, b)
			return err1 == nil && err2 == nil && p1.Equal(p2)
		},
		widthGen(), gen.UInt64(), gen.UInt64(),
	))

	properties.TestingRun(t)
}

func TestConversion_PropertyBased(t *testing.T) {
	properties := newProperties()

	properties.Property("FromBig and ToBig round trip", prop.ForAll(
		func(w, hi, lo uint64) bool {
			x := new(big.Int).SetUint64(hi)
			x.Lsh(x, 64).Or(x, new(big.Int).SetUint64(lo))
			v, err := FromBig(Config{Width: uint(w)}, x)
			if err != nil {
				return false
			}
			defer v.Release()
			return v.ToBig().Cmp(x) == 0
		},
		widthGen(), gen.UInt64(), gen.UInt64(),
	))

	properties.TestingRun(t)
}
