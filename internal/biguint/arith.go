package biguint

import "context"

// ProgressReporter receives the completed fraction of a long operation, in
// [0, 1].
type ProgressReporter func(progress float64)

// fullAdder is the one-bit addition table, indexed by
// carry<<2 | receiverBit<<1 | operandBit.
var fullAdder = [8]struct{ sum, carry uint64 }{
	{0, 0}, // 0 + 0 + 0
	{1, 0}, // 0 + 0 + 1
	{1, 0}, // 0 + 1 + 0
	{0, 1}, // 0 + 1 + 1
	{1, 0}, // 1 + 0 + 0
	{0, 1}, // 1 + 0 + 1
	{0, 1}, // 1 + 1 + 0
	{1, 1}, // 1 + 1 + 1
}

// addLimbs writes x + y into z one bit at a time and returns the carry out of
// the last limb. Limbs missing from x or y read as zero; len(z) sets how many
// limb pairs are processed.
func addLimbs(z, x, y []uint64, width uint) uint64 {
	var carry uint64
	for i := range z {
		xi, yi := limbAt(x, i), limbAt(y, i)
		var out uint64
		for b := uint(0); b < width; b++ {
			row := fullAdder[carry<<2|(xi>>b&1)<<1|yi>>b&1]
			out |= row.sum << b
			carry = row.carry
		}
		z[i] = out
	}
	return carry
}

// Add sets v to v + a. The receiver grows to cover the whole operand and by
// one more limb when a carry leaves the top. A fixed-capacity receiver
// reports ErrIndexOutOfRange instead of dropping that carry. On error v is
// unchanged.
func (v *BigUnsigned) Add(a *BigUnsigned) error {
	if err := v.checkOperand(a); err != nil {
		return err
	}
	n := max(len(v.limbs), len(a.limbs))
	sum := acquireLimbs(n + 1)
	need := n
	if addLimbs(sum[:n], v.limbs, a.limbs, v.cfg.Width) != 0 {
		sum[n] = 1
		need = n + 1
	}
	if err := v.checkGrowth("add", uint(need)); err != nil {
		releaseLimbs(sum)
		return err
	}
	releaseLimbs(v.limbs)
	v.limbs = sum[:need]
	return nil
}

// ShiftLeftOne sets v to v << 1. The top bit of each limb moves into bit 0 of
// the next; a bit leaving the top limb is kept in a new limb (growing) or
// reported as ErrIndexOutOfRange (fixed capacity) before anything moves.
func (v *BigUnsigned) ShiftLeftOne() error {
	top := v.cfg.Width - 1
	if v.limbs[len(v.limbs)-1]>>top&1 == 1 {
		if err := v.grow("shift", uint(len(v.limbs))+1); err != nil {
			return err
		}
	}
	var outgoing uint64
	for i, limb := range v.limbs {
		next := limb >> top & 1
		limb = limb << 1 & v.mask
		if i > 0 {
			limb = limb&^1 | outgoing
		}
		v.limbs[i] = limb
		outgoing = next
	}
	return nil
}

// ShiftLeft sets v to v << k. The result, chain length included, is the same
// as k calls to ShiftLeftOne; limits are checked once, up front.
func (v *BigUnsigned) ShiftLeft(k uint) error {
	top := v.topBit()
	if k == 0 || top < 0 {
		return nil
	}
	w := v.cfg.Width
	newTop := uint(top) + k
	if newTop < uint(top) {
		newTop = ^uint(0)
	}
	if v.cfg.Policy == FixedCapacity && newTop >= v.cfg.CapacityBits {
		return v.rangeError("shift", uint64(newTop))
	}
	size := max(uint(len(v.limbs)), limbCount(newTop/w))
	if err := v.checkGrowth("shift", size); err != nil {
		return err
	}

	// size fits an int once checkGrowth accepts it, and so does k/w, which
	// is at most newTop/w.
	n := int(size)
	ws, bs := int(k/w), k%w
	out := acquireLimbs(n)
	for i, limb := range v.limbs {
		dst := i + ws
		if limb == 0 || dst >= n {
			continue
		}
		out[dst] |= limb << bs & v.mask
		if bs > 0 && dst+1 < n {
			out[dst+1] |= limb >> (w - bs)
		}
	}
	releaseLimbs(v.limbs)
	v.limbs = out
	return nil
}

// Mul returns a new value holding b * a. Neither operand is modified.
func Mul(b, a *BigUnsigned) (*BigUnsigned, error) {
	return MulContext(context.Background(), b, a, nil)
}

// MulContext is Mul with cancellation and progress reporting. For every set
// bit i of b it adds a << i into the result. The shifted operand is a private
// copy advanced by one bit per iteration, so at iteration i it holds exactly
// a << i.
func MulContext(ctx context.Context, b, a *BigUnsigned, reporter ProgressReporter) (*BigUnsigned, error) {
	if err := b.checkOperand(a); err != nil {
		return nil, err
	}
	if reporter == nil {
		reporter = func(float64) {}
	}

	result := newNormalized(b.cfg)
	shifted := a.Clone()
	defer shifted.Release()

	n := b.BitLen()
	step := max(1, n/100)
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			result.Release()
			return nil, ctx.Err()
		default:
		}

		if bit, _ := b.Bit(uint(i)); bit == 1 {
			if err := result.Add(shifted); err != nil {
				result.Release()
				return nil, err
			}
		}
		if i+1 < n {
			if err := shifted.ShiftLeftOne(); err != nil {
				result.Release()
				return nil, err
			}
		}
		if (i+1)%step == 0 || i+1 == n {
			reporter(float64(i+1) / float64(n))
		}
	}
	return result, nil
}
