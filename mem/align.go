package mem

// Alignment arithmetic. Every allocator issues blocks whose base address
// satisfies a power-of-two alignment; these helpers implement the mask
// math in one place.

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// AlignUp returns n rounded up to the next multiple of align.
// align must be a power of two.
//
// Example:
//
//	AlignUp(1, 8)  = 8
//	AlignUp(8, 8)  = 8
//	AlignUp(9, 8)  = 16
func AlignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

// IsAligned reports whether n is a multiple of align.
// align must be a power of two.
func IsAligned(n, align int) bool {
	return n&(align-1) == 0
}

// Padding returns the number of bytes that must be skipped from addr to
// reach the next align-aligned address. align must be a power of two.
func Padding(addr uintptr, align int) int {
	mask := uintptr(align - 1)
	return int((uintptr(align) - addr&mask) & mask)
}
