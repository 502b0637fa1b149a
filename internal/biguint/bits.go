package biguint

// locate splits a bit index into a limb position and a bit offset. The
// position stays unsigned: with narrow limbs it may exceed any chain length.
func (v *BigUnsigned) locate(x uint) (uint, uint) {
	return x / v.cfg.Width, x % v.cfg.Width
}

// Bit returns bit x of v (0 or 1). Bits past the end of a growing chain read
// as 0 and the chain is left as it is.
func (v *BigUnsigned) Bit(x uint) (uint, error) {
	if err := v.checkIndex("get bit", x); err != nil {
		return 0, err
	}
	i, r := v.locate(x)
	if i >= uint(len(v.limbs)) {
		return 0, nil
	}
	return uint(v.limbs[i] >> r & 1), nil
}

// SetBit sets bit x of v to 1, growing a growing chain as needed.
func (v *BigUnsigned) SetBit(x uint) error {
	if err := v.checkIndex("set bit", x); err != nil {
		return err
	}
	i, r := v.locate(x)
	if err := v.grow("set bit", limbCount(i)); err != nil {
		return err
	}
	v.limbs[i] |= 1 << r
	return nil
}

// ClearBit sets bit x of v to 0. It never allocates: clearing past the end of
// the chain is a no-op.
func (v *BigUnsigned) ClearBit(x uint) error {
	if err := v.checkIndex("clear bit", x); err != nil {
		return err
	}
	i, r := v.locate(x)
	if i < uint(len(v.limbs)) {
		v.limbs[i] &^= 1 << r
	}
	return nil
}

// BitLen returns the position of the most significant set bit plus one, or 1
// when v is zero.
func (v *BigUnsigned) BitLen() int {
	if top := v.topBit(); top >= 0 {
		return top + 1
	}
	return 1
}

// topBit returns the index of the most significant set bit, or -1 for zero.
// Limbs are scanned from the top of the chain and bits from the top of the
// first non-zero limb, so trailing zero limbs are skipped.
func (v *BigUnsigned) topBit() int {
	w := int(v.cfg.Width)
	for i := len(v.limbs) - 1; i >= 0; i-- {
		limb := v.limbs[i]
		if limb == 0 {
			continue
		}
		for b := w - 1; b >= 0; b-- {
			if limb>>uint(b)&1 == 1 {
				return b + w*i
			}
		}
	}
	return -1
}
