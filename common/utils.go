package common

import "cmp"

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// Clamp limits v to the closed range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - T: v limited to [lo, hi]
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}

// Lerp linearly interpolates between a and b by t. t is not clamped.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Remap maps a normalized slider value t in [0, 1] onto [lo, hi]. t is clamped first,
// so out-of-range input never produces a value outside the target range.
//
// Parameters:
//   - t: normalized input
//   - lo: value produced for t = 0
//   - hi: value produced for t = 1
//
// Returns:
//   - float32: the remapped value
func Remap(t, lo, hi float32) float32 {
	return Lerp(lo, hi, Clamp(t, 0, 1))
}
