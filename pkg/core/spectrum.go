package core

import "math"

// Spectrum is an RGB radiance or reflectance triple
type Spectrum struct {
	R, G, B float64
}

// NewSpectrum creates a spectrum with all channels equal to v
func NewSpectrum(v float64) Spectrum {
	return Spectrum{v, v, v}
}

// NewRGB creates a spectrum from linear RGB components
func NewRGB(r, g, b float64) Spectrum {
	return Spectrum{r, g, b}
}

// Black is the zero spectrum
var Black = Spectrum{}

// Add returns the channel-wise sum
func (s Spectrum) Add(o Spectrum) Spectrum {
	return Spectrum{s.R + o.R, s.G + o.G, s.B + o.B}
}

// Sub returns the channel-wise difference
func (s Spectrum) Sub(o Spectrum) Spectrum {
	return Spectrum{s.R - o.R, s.G - o.G, s.B - o.B}
}

// Mul returns the channel-wise product
func (s Spectrum) Mul(o Spectrum) Spectrum {
	return Spectrum{s.R * o.R, s.G * o.G, s.B * o.B}
}

// Div returns the channel-wise quotient; channels divided by zero become zero
func (s Spectrum) Div(o Spectrum) Spectrum {
	div := func(a, b float64) float64 {
		if b == 0 {
			return 0
		}
		return a / b
	}
	return Spectrum{div(s.R, o.R), div(s.G, o.G), div(s.B, o.B)}
}

// Scale multiplies every channel by f
func (s Spectrum) Scale(f float64) Spectrum {
	return Spectrum{s.R * f, s.G * f, s.B * f}
}

// IsBlack reports whether every channel is zero
func (s Spectrum) IsBlack() bool {
	return s.R == 0 && s.G == 0 && s.B == 0
}

// HasNaN reports whether any channel is NaN
func (s Spectrum) HasNaN() bool {
	return math.IsNaN(s.R) || math.IsNaN(s.G) || math.IsNaN(s.B)
}

// MaxComponent returns the largest channel
func (s Spectrum) MaxComponent() float64 {
	return math.Max(s.R, math.Max(s.G, s.B))
}

// Clamp restricts every channel to [low, high]
func (s Spectrum) Clamp(low, high float64) Spectrum {
	return Spectrum{Clamp(s.R, low, high), Clamp(s.G, low, high), Clamp(s.B, low, high)}
}

// Sqrt returns the channel-wise square root
func (s Spectrum) Sqrt() Spectrum {
	return Spectrum{math.Sqrt(s.R), math.Sqrt(s.G), math.Sqrt(s.B)}
}

// Exp returns the channel-wise exponential
func (s Spectrum) Exp() Spectrum {
	return Spectrum{math.Exp(s.R), math.Exp(s.G), math.Exp(s.B)}
}

// Lerp interpolates between s and o
func (s Spectrum) Lerp(t float64, o Spectrum) Spectrum {
	return s.Scale(1 - t).Add(o.Scale(t))
}

// Y returns the luminance of the spectrum
func (s Spectrum) Y() float64 {
	return rgbToXYZ[1][0]*s.R + rgbToXYZ[1][1]*s.G + rgbToXYZ[1][2]*s.B
}

// ToXYZ converts linear RGB to CIE XYZ
func (s Spectrum) ToXYZ() [3]float64 {
	return RGBToXYZ([3]float64{s.R, s.G, s.B})
}

// ToRGB returns the channels as an array
func (s Spectrum) ToRGB() [3]float64 {
	return [3]float64{s.R, s.G, s.B}
}

// SpectrumFromXYZ converts CIE XYZ to an RGB spectrum
func SpectrumFromXYZ(xyz [3]float64) Spectrum {
	rgb := XYZToRGB(xyz)
	return Spectrum{rgb[0], rgb[1], rgb[2]}
}

var rgbToXYZ = [3][3]float64{
	{0.412453, 0.357580, 0.180423},
	{0.212671, 0.715160, 0.072169},
	{0.019334, 0.119193, 0.950227},
}

var xyzToRGB = [3][3]float64{
	{3.240479, -1.537150, -0.498535},
	{-0.969256, 1.875991, 0.041556},
	{0.055648, -0.204043, 1.057311},
}

// RGBToXYZ converts a linear RGB triple to CIE XYZ
func RGBToXYZ(rgb [3]float64) [3]float64 {
	return mul3(rgbToXYZ, rgb)
}

// XYZToRGB converts a CIE XYZ triple to linear RGB
func XYZToRGB(xyz [3]float64) [3]float64 {
	return mul3(xyzToRGB, xyz)
}

func mul3(m [3][3]float64, v [3]float64) [3]float64 {
	return [3]float64{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}
