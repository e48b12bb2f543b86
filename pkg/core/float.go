package core

import "math"

const (
	// MachineEpsilon is half the gap between 1 and the next float64
	MachineEpsilon = 0x1p-53
	// OneMinusEpsilon is the largest float64 below 1
	OneMinusEpsilon = 0x1.fffffffffffffp-1
	// ShadowEpsilon keeps shadow rays short of their target
	ShadowEpsilon = 0.0001
	// InvPi is 1/π
	InvPi = 1 / math.Pi
	// Inv2Pi is 1/(2π)
	Inv2Pi = 1 / (2 * math.Pi)
	// Inv4Pi is 1/(4π)
	Inv4Pi = 1 / (4 * math.Pi)
	// PiOver2 is π/2
	PiOver2 = math.Pi / 2
	// PiOver4 is π/4
	PiOver4 = math.Pi / 4
)

// Gamma returns the conservative relative error bound for n chained floating point operations
func Gamma(n int) float64 {
	return (float64(n) * MachineEpsilon) / (1 - float64(n)*MachineEpsilon)
}

// NextFloatUp returns the smallest float64 greater than v.
// +Inf is returned unchanged and -0 steps to the smallest positive value.
func NextFloatUp(v float64) float64 {
	if math.IsInf(v, 1) {
		return v
	}
	if v == 0 {
		v = 0
	}
	bits := math.Float64bits(v)
	if v >= 0 {
		bits++
	} else {
		bits--
	}
	return math.Float64frombits(bits)
}

// NextFloatDown returns the largest float64 less than v.
// -Inf is returned unchanged and +0 steps to the smallest negative value.
func NextFloatDown(v float64) float64 {
	if math.IsInf(v, -1) {
		return v
	}
	if v == 0 {
		v = math.Copysign(0, -1)
	}
	bits := math.Float64bits(v)
	if v > 0 {
		bits--
	} else {
		bits++
	}
	return math.Float64frombits(bits)
}

// Lerp linearly interpolates between a and b
func Lerp(t, a, b float64) float64 {
	return (1-t)*a + t*b
}

// Clamp restricts v to [low, high]
func Clamp(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

// ClampInt restricts v to [low, high]
func ClampInt(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

// Radians converts degrees to radians
func Radians(deg float64) float64 {
	return (math.Pi / 180) * deg
}

// GammaCorrect applies the sRGB transfer curve to a linear value
func GammaCorrect(value float64) float64 {
	if value <= 0.0031308 {
		return 12.92 * value
	}
	return 1.055*math.Pow(value, 1.0/2.4) - 0.055
}

// InverseGammaCorrect maps an sRGB-encoded value back to linear
func InverseGammaCorrect(value float64) float64 {
	if value <= 0.04045 {
		return value / 12.92
	}
	return math.Pow((value+0.055)/1.055, 2.4)
}

// SolveLinearSystem2x2 solves A·x = b, reporting false for singular systems
func SolveLinearSystem2x2(a [2][2]float64, b [2]float64) (float64, float64, bool) {
	det := a[0][0]*a[1][1] - a[0][1]*a[1][0]
	if math.Abs(det) < 1e-10 {
		return 0, 0, false
	}
	x0 := (a[1][1]*b[0] - a[0][1]*b[1]) / det
	x1 := (a[0][0]*b[1] - a[1][0]*b[0]) / det
	if math.IsNaN(x0) || math.IsNaN(x1) {
		return 0, 0, false
	}
	return x0, x1, true
}
