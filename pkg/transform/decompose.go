package transform

import (
	"math"

	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	maxPolarIterations = 100
	polarConvergence   = 0.0001
)

// decomposed is the M = T·R·S factorization of an affine matrix
type decomposed struct {
	T core.Vec3
	R mgl64.Quat
	S mgl64.Mat4
}

// decompose extracts translation, then factors the remaining linear part
// into rotation and scale by polar decomposition.
func decompose(m mgl64.Mat4) decomposed {
	t := core.NewVec3(m.At(0, 3), m.At(1, 3), m.At(2, 3))

	linear := m
	for i := 0; i < 3; i++ {
		linear.Set(i, 3, 0)
		linear.Set(3, i, 0)
	}
	linear.Set(3, 3, 1)

	// Average R with its inverse transpose until it stops changing
	r := linear
	for count := 0; count < maxPolarIterations; count++ {
		rit := r.Transpose().Inv()
		var next mgl64.Mat4
		for i := range next {
			next[i] = 0.5 * (r[i] + rit[i])
		}

		norm := 0.0
		for i := 0; i < 3; i++ {
			n := math.Abs(r.At(i, 0)-next.At(i, 0)) +
				math.Abs(r.At(i, 1)-next.At(i, 1)) +
				math.Abs(r.At(i, 2)-next.At(i, 2))
			norm = math.Max(norm, n)
		}
		r = next
		if norm <= polarConvergence {
			break
		}
	}

	return decomposed{
		T: t,
		R: mgl64.Mat4ToQuat(r).Normalize(),
		S: r.Inv().Mul4(linear),
	}
}
