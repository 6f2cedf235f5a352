package gamemath

import "math"

// Sqrt returns the float32 square root. The float64 result is correctly
// rounded, so narrowing it is bit-stable across platforms.
func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// Abs returns |x|.
func Abs(x float32) float32 {
	return math.Float32frombits(math.Float32bits(x) &^ (1 << 31))
}

// Signum returns 1 for positive values and +0, -1 for negative values and -0.
func Signum(x float32) float32 {
	if math.Signbit(float64(x)) {
		return -1
	}
	return 1
}

// Clamp clamps v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampSpeed clamps a value to [-max, max].
func ClampSpeed(speed, max float32) float32 {
	return Clamp(speed, -max, max)
}

// MinF returns the smaller of a and b.
func MinF(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
