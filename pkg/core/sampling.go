package core

import (
	"math"
	"math/rand"
)

// ConcentricSampleDisk maps a unit square sample to the unit disk with the concentric mapping
func ConcentricSampleDisk(u Vec2) Vec2 {
	// Map sample to [-1,1]² and handle degeneracy at the origin
	uOffset := NewVec2(2*u.X-1, 2*u.Y-1)
	if uOffset.X == 0 && uOffset.Y == 0 {
		return NewVec2(0, 0)
	}

	var theta, r float64
	if math.Abs(uOffset.X) > math.Abs(uOffset.Y) {
		r = uOffset.X
		theta = PiOver4 * (uOffset.Y / uOffset.X)
	} else {
		r = uOffset.Y
		theta = PiOver2 - PiOver4*(uOffset.X/uOffset.Y)
	}

	return NewVec2(r*math.Cos(theta), r*math.Sin(theta))
}

// CosineSampleHemisphere returns a cosine-weighted direction around +z
func CosineSampleHemisphere(u Vec2) Vec3 {
	d := ConcentricSampleDisk(u)
	z := math.Sqrt(math.Max(0, 1-d.X*d.X-d.Y*d.Y))
	return NewVec3(d.X, d.Y, z)
}

// CosineHemispherePdf is the density of CosineSampleHemisphere
func CosineHemispherePdf(cosTheta float64) float64 {
	return cosTheta * InvPi
}

// UniformSampleTriangle returns uniformly distributed barycentrics b0, b1
func UniformSampleTriangle(u Vec2) Vec2 {
	su0 := math.Sqrt(u.X)
	return NewVec2(1-su0, u.Y*su0)
}

// UniformSampleSphere returns a uniform direction on the unit sphere
func UniformSampleSphere(u Vec2) Vec3 {
	z := 1.0 - 2.0*u.X // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * u.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// UniformSpherePdf is the density of UniformSampleSphere
func UniformSpherePdf() float64 {
	return Inv4Pi
}

// UniformSampleCone returns a uniform direction inside a cone around +z
func UniformSampleCone(u Vec2, cosThetaMax float64) Vec3 {
	cosTheta := (1 - u.X) + u.X*cosThetaMax
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := u.Y * 2 * math.Pi
	return NewVec3(math.Cos(phi)*sinTheta, math.Sin(phi)*sinTheta, cosTheta)
}

// UniformConePdf is the density of UniformSampleCone
func UniformConePdf(cosThetaMax float64) float64 {
	return 1 / (2 * math.Pi * (1 - cosThetaMax))
}

// PowerHeuristic weights two sampling strategies with exponent 2
func PowerHeuristic(nf int, fPdf float64, ng int, gPdf float64) float64 {
	f := float64(nf) * fPdf
	g := float64(ng) * gPdf
	if math.IsInf(f*f, 1) {
		return 1
	}
	return (f * f) / (f*f + g*g)
}

// RandomFloat returns a uniform value in [0, 1)
func RandomFloat(rng *rand.Rand) float64 {
	return math.Min(rng.Float64(), OneMinusEpsilon)
}

// StratifiedSample1D fills samples with one value per stratum of [0, 1)
func StratifiedSample1D(samples []float64, rng *rand.Rand, jitter bool) {
	invN := 1.0 / float64(len(samples))
	for i := range samples {
		delta := 0.5
		if jitter {
			delta = rng.Float64()
		}
		samples[i] = math.Min((float64(i)+delta)*invN, OneMinusEpsilon)
	}
}

// StratifiedSample2D fills samples with one point per cell of an nx × ny grid, row by row
func StratifiedSample2D(samples []Vec2, nx, ny int, rng *rand.Rand, jitter bool) {
	dx, dy := 1.0/float64(nx), 1.0/float64(ny)
	i := 0
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			jx, jy := 0.5, 0.5
			if jitter {
				jx = rng.Float64()
				jy = rng.Float64()
			}
			samples[i] = NewVec2(
				math.Min((float64(x)+jx)*dx, OneMinusEpsilon),
				math.Min((float64(y)+jy)*dy, OneMinusEpsilon),
			)
			i++
		}
	}
}

// LatinHypercube2D fills samples so each axis has exactly one point per stratum
func LatinHypercube2D(samples []Vec2, rng *rand.Rand) {
	n := len(samples)
	invN := 1.0 / float64(n)
	for i := range samples {
		samples[i] = NewVec2(
			math.Min((float64(i)+rng.Float64())*invN, OneMinusEpsilon),
			math.Min((float64(i)+rng.Float64())*invN, OneMinusEpsilon),
		)
	}
	// Permute each dimension independently
	for i := 0; i < n; i++ {
		j := i + rng.Intn(n-i)
		samples[i].X, samples[j].X = samples[j].X, samples[i].X
	}
	for i := 0; i < n; i++ {
		j := i + rng.Intn(n-i)
		samples[i].Y, samples[j].Y = samples[j].Y, samples[i].Y
	}
}

// Shuffle permutes count blocks of nDimensions consecutive values
func Shuffle[T any](samples []T, count, nDimensions int, rng *rand.Rand) {
	for i := 0; i < count; i++ {
		other := i + rng.Intn(count-i)
		for j := 0; j < nDimensions; j++ {
			samples[nDimensions*i+j], samples[nDimensions*other+j] =
				samples[nDimensions*other+j], samples[nDimensions*i+j]
		}
	}
}
