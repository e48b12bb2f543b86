package transform

import (
	"errors"
	"math"

	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

// Transform is an affine or projective 4x4 transform with its cached inverse
type Transform struct {
	M    mgl64.Mat4
	MInv mgl64.Mat4
}

// NewTransform creates a transform and computes its inverse once
func NewTransform(m mgl64.Mat4) Transform {
	return Transform{M: m, MInv: m.Inv()}
}

// NewTransformWithInverse creates a transform from a matrix and its known inverse
func NewTransformWithInverse(m, mInv mgl64.Mat4) Transform {
	return Transform{M: m, MInv: mInv}
}

// FromRows builds a transform from a row-major 4x4 array
func FromRows(r [4][4]float64) Transform {
	return NewTransform(mgl64.Mat4FromRows(
		mgl64.Vec4(r[0]), mgl64.Vec4(r[1]), mgl64.Vec4(r[2]), mgl64.Vec4(r[3]),
	))
}

// Identity returns the identity transform
func Identity() Transform {
	return Transform{M: mgl64.Ident4(), MInv: mgl64.Ident4()}
}

// Translate returns a translation by delta
func Translate(delta core.Vec3) Transform {
	return Transform{
		M:    mgl64.Translate3D(delta.X, delta.Y, delta.Z),
		MInv: mgl64.Translate3D(-delta.X, -delta.Y, -delta.Z),
	}
}

// Scale returns a non-uniform scale
func Scale(x, y, z float64) Transform {
	return Transform{
		M:    mgl64.Scale3D(x, y, z),
		MInv: mgl64.Scale3D(1/x, 1/y, 1/z),
	}
}

// RotateX returns a rotation of theta degrees around the x axis
func RotateX(theta float64) Transform {
	m := mgl64.HomogRotate3DX(core.Radians(theta))
	return Transform{M: m, MInv: m.Transpose()}
}

// RotateY returns a rotation of theta degrees around the y axis
func RotateY(theta float64) Transform {
	m := mgl64.HomogRotate3DY(core.Radians(theta))
	return Transform{M: m, MInv: m.Transpose()}
}

// RotateZ returns a rotation of theta degrees around the z axis
func RotateZ(theta float64) Transform {
	m := mgl64.HomogRotate3DZ(core.Radians(theta))
	return Transform{M: m, MInv: m.Transpose()}
}

// Rotate returns a rotation of theta degrees around an arbitrary axis
func Rotate(theta float64, axis core.Vec3) Transform {
	a := axis.Normalize()
	m := mgl64.HomogRotate3D(core.Radians(theta), mgl64.Vec3{a.X, a.Y, a.Z})
	return Transform{M: m, MInv: m.Transpose()}
}

// LookAt returns the world-to-camera transform for a camera at pos looking
// toward look, using a left-handed camera space with +z forward.
func LookAt(pos, look, up core.Vec3) (Transform, error) {
	dir := look.Subtract(pos).Normalize()
	right := up.Normalize().Cross(dir)
	if right.Length() == 0 {
		return Identity(), errors.New("look-at up vector is parallel to the viewing direction")
	}
	right = right.Normalize()
	newUp := dir.Cross(right)

	cameraToWorld := mgl64.Mat4FromCols(
		mgl64.Vec4{right.X, right.Y, right.Z, 0},
		mgl64.Vec4{newUp.X, newUp.Y, newUp.Z, 0},
		mgl64.Vec4{dir.X, dir.Y, dir.Z, 0},
		mgl64.Vec4{pos.X, pos.Y, pos.Z, 1},
	)
	return Transform{M: cameraToWorld.Inv(), MInv: cameraToWorld}, nil
}

// Perspective returns the projection used by perspective cameras, mapping
// z in [near, far] to [0, 1] and scaling x and y by the field of view.
func Perspective(fov, near, far float64) Transform {
	persp := mgl64.Mat4FromRows(
		mgl64.Vec4{1, 0, 0, 0},
		mgl64.Vec4{0, 1, 0, 0},
		mgl64.Vec4{0, 0, far / (far - near), -far * near / (far - near)},
		mgl64.Vec4{0, 0, 1, 0},
	)
	invTanAng := 1 / math.Tan(core.Radians(fov)/2)
	return Scale(invTanAng, invTanAng, 1).Mul(NewTransform(persp))
}

// Orthographic returns the projection used by orthographic cameras
func Orthographic(near, far float64) Transform {
	return Scale(1, 1, 1/(far-near)).Mul(Translate(core.NewVec3(0, 0, -near)))
}

// Mul returns the composition t·o, applying o first
func (t Transform) Mul(o Transform) Transform {
	return Transform{M: t.M.Mul4(o.M), MInv: o.MInv.Mul4(t.MInv)}
}

// Inverse returns the inverse transform
func (t Transform) Inverse() Transform {
	return Transform{M: t.MInv, MInv: t.M}
}

// IsIdentity reports whether the matrix is exactly the identity
func (t Transform) IsIdentity() bool {
	return t.M == mgl64.Ident4()
}

// HasScale reports whether the transform changes the length of the coordinate axes
func (t Transform) HasScale() bool {
	la2 := t.Vector(core.NewVec3(1, 0, 0)).LengthSquared()
	lb2 := t.Vector(core.NewVec3(0, 1, 0)).LengthSquared()
	lc2 := t.Vector(core.NewVec3(0, 0, 1)).LengthSquared()
	notOne := func(x float64) bool { return x < 0.999 || x > 1.001 }
	return notOne(la2) || notOne(lb2) || notOne(lc2)
}

// SwapsHandedness reports whether the linear part has a negative determinant
func (t Transform) SwapsHandedness() bool {
	return t.M.Mat3().Det() < 0
}

// Point transforms a point, dividing by the homogeneous weight
func (t Transform) Point(p core.Vec3) core.Vec3 {
	m := &t.M
	x := m.At(0, 0)*p.X + m.At(0, 1)*p.Y + m.At(0, 2)*p.Z + m.At(0, 3)
	y := m.At(1, 0)*p.X + m.At(1, 1)*p.Y + m.At(1, 2)*p.Z + m.At(1, 3)
	z := m.At(2, 0)*p.X + m.At(2, 1)*p.Y + m.At(2, 2)*p.Z + m.At(2, 3)
	w := m.At(3, 0)*p.X + m.At(3, 1)*p.Y + m.At(3, 2)*p.Z + m.At(3, 3)
	if w == 1 {
		return core.NewVec3(x, y, z)
	}
	return core.NewVec3(x, y, z).Divide(w)
}

// Vector transforms a direction, ignoring translation
func (t Transform) Vector(v core.Vec3) core.Vec3 {
	m := &t.M
	return core.NewVec3(
		m.At(0, 0)*v.X+m.At(0, 1)*v.Y+m.At(0, 2)*v.Z,
		m.At(1, 0)*v.X+m.At(1, 1)*v.Y+m.At(1, 2)*v.Z,
		m.At(2, 0)*v.X+m.At(2, 1)*v.Y+m.At(2, 2)*v.Z,
	)
}

// Normal transforms a surface normal by the inverse transpose, reading the
// inverse with swapped indices instead of building the transpose.
func (t Transform) Normal(n core.Vec3) core.Vec3 {
	mi := &t.MInv
	return core.NewVec3(
		mi.At(0, 0)*n.X+mi.At(1, 0)*n.Y+mi.At(2, 0)*n.Z,
		mi.At(0, 1)*n.X+mi.At(1, 1)*n.Y+mi.At(2, 1)*n.Z,
		mi.At(0, 2)*n.X+mi.At(1, 2)*n.Y+mi.At(2, 2)*n.Z,
	)
}

// Bounds transforms all eight corners of b and returns their bound
func (t Transform) Bounds(b core.Bounds3) core.Bounds3 {
	ret := core.EmptyBounds3()
	for i := 0; i < 8; i++ {
		ret = ret.UnionPoint(t.Point(b.Corner(i)))
	}
	return ret
}

// Ray transforms a ray, offsetting the origin past its rounding error
func (t Transform) Ray(r core.Ray) core.Ray {
	ray, _, _ := t.RayWithError(r)
	return ray
}

// RayDifferential transforms a ray and its offset rays
func (t Transform) RayDifferential(r core.RayDifferential) core.RayDifferential {
	ret := core.RayDifferential{
		Ray:              t.Ray(r.Ray),
		HasDifferentials: r.HasDifferentials,
	}
	if r.HasDifferentials {
		ret.RxOrigin = t.Point(r.RxOrigin)
		ret.RyOrigin = t.Point(r.RyOrigin)
		ret.RxDirection = t.Vector(r.RxDirection)
		ret.RyDirection = t.Vector(r.RyDirection)
	}
	return ret
}
