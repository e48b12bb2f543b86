package transform

import (
	"math"

	"github.com/df07/go-pbrt-renderer/pkg/core"
)

// PointWithError transforms an exact point and returns a conservative bound
// on the absolute rounding error of the result.
func (t Transform) PointWithError(p core.Vec3) (core.Vec3, core.Vec3) {
	m := &t.M
	absSum := func(row int) float64 {
		return math.Abs(m.At(row, 0)*p.X) + math.Abs(m.At(row, 1)*p.Y) +
			math.Abs(m.At(row, 2)*p.Z) + math.Abs(m.At(row, 3))
	}
	g3 := core.Gamma(3)
	pErr := core.NewVec3(absSum(0), absSum(1), absSum(2)).Multiply(g3)
	return t.Point(p), pErr
}

// PointWithAbsError transforms a point that already carries error pErr and
// returns the transformed point with the combined error bound.
func (t Transform) PointWithAbsError(p, pErr core.Vec3) (core.Vec3, core.Vec3) {
	m := &t.M
	g3 := core.Gamma(3)
	rowErr := func(row int) float64 {
		carried := math.Abs(m.At(row, 0))*pErr.X + math.Abs(m.At(row, 1))*pErr.Y +
			math.Abs(m.At(row, 2))*pErr.Z
		rounding := math.Abs(m.At(row, 0)*p.X) + math.Abs(m.At(row, 1)*p.Y) +
			math.Abs(m.At(row, 2)*p.Z) + math.Abs(m.At(row, 3))
		return (g3+1)*carried + g3*rounding
	}
	return t.Point(p), core.NewVec3(rowErr(0), rowErr(1), rowErr(2))
}

// VectorWithError transforms an exact vector and bounds its rounding error
func (t Transform) VectorWithError(v core.Vec3) (core.Vec3, core.Vec3) {
	m := &t.M
	absSum := func(row int) float64 {
		return math.Abs(m.At(row, 0)*v.X) + math.Abs(m.At(row, 1)*v.Y) + math.Abs(m.At(row, 2)*v.Z)
	}
	g3 := core.Gamma(3)
	return t.Vector(v), core.NewVec3(absSum(0), absSum(1), absSum(2)).Multiply(g3)
}

// RayWithError transforms a ray and returns the origin and direction error
// bounds. The origin is advanced to the edge of its error box along the
// direction and TMax shortened by the same amount.
func (t Transform) RayWithError(r core.Ray) (core.Ray, core.Vec3, core.Vec3) {
	o, oErr := t.PointWithError(r.Origin)
	d, dErr := t.VectorWithError(r.Direction)
	tMax := r.TMax
	if lengthSquared := d.LengthSquared(); lengthSquared > 0 {
		dt := d.Abs().Dot(oErr) / lengthSquared
		o = o.Add(d.Multiply(dt))
		tMax -= dt
	}
	return core.Ray{Origin: o, Direction: d, TMax: tMax, Time: r.Time}, oErr, dErr
}
