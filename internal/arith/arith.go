// Package arith contains overflow-checked arithmetic for capacity math.
package arith

import "math"

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies a and b, returning ok = false when the result
// would overflow int. This is essential for count * elementSize calculations.
func MulOverflowSafe(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > 0 && b > 0 {
		if a > math.MaxInt/b {
			return 0, false
		}
	}
	if a < 0 && b < 0 {
		if a < math.MaxInt/b {
			return 0, false
		}
	}
	if a > 0 && b < 0 {
		if b < math.MinInt/a {
			return 0, false
		}
	}
	if a < 0 && b > 0 {
		if a < math.MinInt/b {
			return 0, false
		}
	}
	return a * b, true
}

// CapForGrowth returns the capacity a container should grow to so that
// need elements fit: max(cap*2, cap+1, need). Returns ok = false when
// the computation overflows int.
func CapForGrowth(cur, need int) (int, bool) {
	doubled, ok := MulOverflowSafe(cur, 2)
	if !ok {
		return 0, false
	}
	next := doubled
	if bumped, ok := AddOverflowSafe(cur, 1); !ok {
		return 0, false
	} else if bumped > next {
		next = bumped
	}
	if need > next {
		next = need
	}
	return next, true
}
