package align

import "math"

// Padding returns the number of bytes needed to move x to the next multiple
// of alignment. Negative offsets are measured the same way, so an origin may
// sit past the offset it is compared with.
func Padding(alignment int, x int64) int64 {
	if alignment <= 1 {
		return 0
	}
	a := int64(alignment)
	r := x % a
	if r < 0 {
		r += a
	}
	return (a - r) % a
}

// To rounds x up to the next multiple of alignment.
func To(x int64, alignment int) int64 {
	return x + Padding(alignment, x)
}

// Max returns the larger alignment, treating anything below 1 as 1.
func Max(a, b int) int {
	if a < 1 {
		a = 1
	}
	if b > a {
		return b
	}
	return a
}

func SafeMul(a, b int64) (int64, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if b != 0 && a > math.MaxInt64/b {
		return 0, false
	}
	return a * b, true
}

func SafeAdd(a, b int64) (int64, bool) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, false
	}
	return a + b, true
}
