package ringbuf

import "math/bits"

// DefaultMinCap is the built-in floor below which capacity never shrinks.
const DefaultMinCap = 32

// NextPow2 rounds n up to the next power of two. If rounding up would
// overflow int, n is returned unchanged.
func NextPow2(n int) int {
	if n <= 0 {
		return 1
	}
	// top is the largest representable power of two for this int width.
	top := 1 << (bits.UintSize - 2)
	if n >= top {
		return n
	}
	return 1 << bits.Len(uint(n-1))
}

// ShouldGrow reports whether pushing k more elements onto a buffer holding
// count out of cap elements requires a resize, and returns the target
// capacity (already NextPow2-rounded and clamped to maxCap) if so.
func ShouldGrow(count, k, cap, maxCap int) (target int, grow bool) {
	if count+k <= cap {
		return 0, false
	}
	target = NextPow2(count + k)
	if target > maxCap {
		target = maxCap
	}
	return target, true
}

// ShouldShrink reports whether, after a pop leaving count elements in a
// buffer of the given capacity, the buffer should shrink, and to what
// target capacity. Shrinking never goes below minCap nor below count.
func ShouldShrink(count, cap, minCap int) (target int, shrink bool) {
	if cap <= minCap {
		return 0, false
	}
	if count > cap/4 {
		return 0, false
	}
	target = cap / 2
	if target < minCap {
		target = minCap
	}
	if target < count {
		target = count
	}
	if target >= cap {
		return 0, false
	}
	return target, true
}
