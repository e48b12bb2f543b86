package core

import "math"

// Ray represents a ray with an origin, direction, parametric extent and time
type Ray struct {
	Origin    Vec3
	Direction Vec3
	TMax      float64 // only ever shrinks as closer hits are found
	Time      float64
}

// NewRay creates an unbounded ray at time 0
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, TMax: math.Inf(1)}
}

// NewRayAt creates an unbounded ray at the given time
func NewRayAt(origin, direction Vec3, time float64) Ray {
	return Ray{Origin: origin, Direction: direction, TMax: math.Inf(1), Time: time}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// RayDifferential augments a ray with offset rays one pixel away in x and y
type RayDifferential struct {
	Ray
	HasDifferentials bool
	RxOrigin         Vec3
	RyOrigin         Vec3
	RxDirection      Vec3
	RyDirection      Vec3
}

// NewRayDifferential wraps a ray with no differentials
func NewRayDifferential(ray Ray) RayDifferential {
	return RayDifferential{Ray: ray}
}

// ScaleDifferentials scales the offset rays toward the main ray by s
func (r *RayDifferential) ScaleDifferentials(s float64) {
	r.RxOrigin = r.Origin.Add(r.RxOrigin.Subtract(r.Origin).Multiply(s))
	r.RyOrigin = r.Origin.Add(r.RyOrigin.Subtract(r.Origin).Multiply(s))
	r.RxDirection = r.Direction.Add(r.RxDirection.Subtract(r.Direction).Multiply(s))
	r.RyDirection = r.Direction.Add(r.RyDirection.Subtract(r.Direction).Multiply(s))
}

// OffsetRayOrigin moves p along the normal past its error box on the side w
// points to, then rounds each coordinate one ulp further away.
func OffsetRayOrigin(p, pError, n, w Vec3) Vec3 {
	d := n.Abs().Dot(pError)
	offset := n.Multiply(d)
	if w.Dot(n) < 0 {
		offset = offset.Negate()
	}
	po := p.Add(offset)
	round := func(v, off float64) float64 {
		if off > 0 {
			return NextFloatUp(v)
		}
		if off < 0 {
			return NextFloatDown(v)
		}
		return v
	}
	po.X = round(po.X, offset.X)
	po.Y = round(po.Y, offset.Y)
	po.Z = round(po.Z, offset.Z)
	return po
}
