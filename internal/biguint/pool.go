// This file provides pooled limb storage to reduce GC pressure when values
// are created and released in tight loops (multiplication temporaries,
// evaluator round trips).

package biguint

import (
	"math/bits"
	"sync"
)

// limbSlicePools pools []uint64 slices by size class. Classes are powers of 4
// so that a growing chain changes class rarely.
var limbSlicePools = [...]sync.Pool{
	{New: func() any { return make([]uint64, 1) }},
	{New: func() any { return make([]uint64, 4) }},
	{New: func() any { return make([]uint64, 16) }},
	{New: func() any { return make([]uint64, 64) }},
	{New: func() any { return make([]uint64, 256) }},
	{New: func() any { return make([]uint64, 1024) }},
	{New: func() any { return make([]uint64, 4096) }},
	{New: func() any { return make([]uint64, 16384) }}, // 1M bits at W=64
}

// limbSliceSizes defines the size classes for limb slice pools.
var limbSliceSizes = [...]int{1, 4, 16, 64, 256, 1024, 4096, 16384}

// limbPoolIndex returns the pool index for a given size, or -1 if the size
// is too large for pooling.
//
// limbSliceSizes are 4^i, so the class of size s is ceil(log4(s)), which is
// (bits.Len(s-1)+1)/2.
func limbPoolIndex(size int) int {
	if size <= 1 {
		return 0
	}
	if size > limbSliceSizes[len(limbSliceSizes)-1] {
		return -1
	}
	return (bits.Len(uint(size-1)) + 1) / 2
}

// acquireLimbs returns a zeroed limb slice of length size. Its capacity may be
// larger than requested; callers may reslice up to it after clearing.
func acquireLimbs(size int) []uint64 {
	idx := limbPoolIndex(size)
	if idx < 0 {
		return make([]uint64, size)
	}
	s := limbSlicePools[idx].Get().([]uint64)
	s = s[:cap(s)]
	clear(s)
	return s[:size]
}

// releaseLimbs hands a slice back to its pool. Slices whose capacity is not a
// pool class were allocated directly and are left to the GC. Safe with nil.
func releaseLimbs(s []uint64) {
	if s == nil {
		return
	}
	c := cap(s)
	idx := limbPoolIndex(c)
	if idx >= 0 && limbSliceSizes[idx] == c {
		limbSlicePools[idx].Put(s[:c])
	}
}
