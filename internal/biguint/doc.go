// Package biguint implements arbitrary-precision unsigned integers stored as a
// chain of fixed-width limbs, least-significant limb first.
//
// A BigUnsigned is configured once, at construction, with a limb width W
// (1 to 64 bits, stored in uint64 words) and exactly one limb-management
// policy:
//
//   - Growing values start with a single zero limb and append zero limbs
//     whenever a bit beyond the current length is written. An optional
//     MaxLimbs bound turns runaway growth into ErrOutOfMemory.
//   - FixedCapacity values allocate every limb up front (1024 bits by
//     default) and never grow. Addressing a bit at or beyond the capacity is
//     ErrIndexOutOfRange.
//
// Reads never allocate: Bit beyond the current length reports 0 and leaves
// the receiver untouched. Mutating operations check their limits before
// writing any limb, so a failed call leaves the receiver exactly as it was.
//
// Arithmetic is bit-oriented. Add is a ripple-carry full adder
// driven by its truth table, ShiftLeftOne carries the displaced top bit of
// every limb into the next one, and Mul is shift-and-add over the set bits of
// its first operand. Trailing zero limbs are never trimmed; BitLen scans from
// the most significant limb inward.
//
// Values are not safe for concurrent mutation. Distinct values never share
// storage and may be used from different goroutines.
package biguint
