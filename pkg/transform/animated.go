package transform

import (
	"math"

	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// Quaternions closer than this are treated as the same rotation
	rotationDotThreshold = 0.9995
	zeroSearchDepth      = 8
)

// AnimatedTransform interpolates between two keyframe transforms over a time range
type AnimatedTransform struct {
	startTransform   Transform
	endTransform     Transform
	startTime        float64
	endTime          float64
	actuallyAnimated bool
	hasRotation      bool
	start, end       decomposed
	terms            motionTerms
}

// NewAnimatedTransform creates an animated transform from start to end
func NewAnimatedTransform(start Transform, startTime float64, end Transform, endTime float64) *AnimatedTransform {
	at := &AnimatedTransform{
		startTransform:   start,
		endTransform:     end,
		startTime:        startTime,
		endTime:          endTime,
		actuallyAnimated: start.M != end.M,
	}
	if !at.actuallyAnimated {
		return at
	}

	at.start = decompose(start.M)
	at.end = decompose(end.M)

	// Take the shorter arc between the two rotations
	if at.start.R.Dot(at.end.R) < 0 {
		at.end.R = at.end.R.Scale(-1)
	}
	at.hasRotation = at.start.R.Dot(at.end.R) < rotationDotThreshold
	if at.hasRotation {
		at.terms = newMotionTerms(at.start, at.end)
	}
	return at
}

// NewStaticTransform wraps a single transform that never moves
func NewStaticTransform(t Transform) *AnimatedTransform {
	return NewAnimatedTransform(t, 0, t, 1)
}

// IsAnimated reports whether the keyframes differ
func (at *AnimatedTransform) IsAnimated() bool {
	return at.actuallyAnimated
}

// HasRotation reports whether the keyframes differ by a non-negligible rotation
func (at *AnimatedTransform) HasRotation() bool {
	return at.hasRotation
}

// HasScale reports whether either keyframe scales
func (at *AnimatedTransform) HasScale() bool {
	return at.startTransform.HasScale() || at.endTransform.HasScale()
}

// Interpolate returns the transform at the given time. Times at or outside
// the range return the keyframe transforms unchanged.
func (at *AnimatedTransform) Interpolate(time float64) Transform {
	if !at.actuallyAnimated || time <= at.startTime {
		return at.startTransform
	}
	if time >= at.endTime {
		return at.endTransform
	}
	dt := (time - at.startTime) / (at.endTime - at.startTime)

	trans := core.LerpVec3(dt, at.start.T, at.end.T)
	rotate := mgl64.QuatSlerp(at.start.R, at.end.R, dt)

	var scale mgl64.Mat4
	for i := range scale {
		scale[i] = core.Lerp(dt, at.start.S[i], at.end.S[i])
	}

	r := rotate.Mat4()
	return Translate(trans).
		Mul(NewTransformWithInverse(r, r.Transpose())).
		Mul(NewTransform(scale))
}

// Point transforms p at the given time
func (at *AnimatedTransform) Point(time float64, p core.Vec3) core.Vec3 {
	return at.Interpolate(time).Point(p)
}

// Vector transforms v at the given time
func (at *AnimatedTransform) Vector(time float64, v core.Vec3) core.Vec3 {
	return at.Interpolate(time).Vector(v)
}

// Ray transforms r using the transform at the ray's time
func (at *AnimatedTransform) Ray(r core.Ray) core.Ray {
	return at.Interpolate(r.Time).Ray(r)
}

// RayDifferential transforms r using the transform at the ray's time
func (at *AnimatedTransform) RayDifferential(r core.RayDifferential) core.RayDifferential {
	return at.Interpolate(r.Time).RayDifferential(r)
}

// MotionBounds bounds b over the full swept motion of the transform
func (at *AnimatedTransform) MotionBounds(b core.Bounds3) core.Bounds3 {
	if !at.actuallyAnimated {
		return at.startTransform.Bounds(b)
	}
	if !at.hasRotation {
		return at.startTransform.Bounds(b).Union(at.endTransform.Bounds(b))
	}
	bounds := core.EmptyBounds3()
	for corner := 0; corner < 8; corner++ {
		bounds = bounds.Union(at.BoundPointMotion(b.Corner(corner)))
	}
	return bounds
}

// BoundPointMotion bounds the trajectory of p by evaluating it at the
// endpoints and at every zero of its per-axis derivative.
func (at *AnimatedTransform) BoundPointMotion(p core.Vec3) core.Bounds3 {
	if !at.actuallyAnimated {
		return core.PointBounds3(at.startTransform.Point(p))
	}
	bounds := core.NewBounds3(at.startTransform.Point(p), at.endTransform.Point(p))
	if !at.hasRotation {
		return bounds
	}

	cosTheta := at.start.R.Dot(at.end.R)
	theta := math.Acos(core.Clamp(cosTheta, -1, 1))
	for c := 0; c < 3; c++ {
		zeros := intervalFindZeros(
			at.terms.c1[c].Eval(p), at.terms.c2[c].Eval(p), at.terms.c3[c].Eval(p),
			at.terms.c4[c].Eval(p), at.terms.c5[c].Eval(p),
			theta, core.Interval{Low: 0, High: 1}, zeroSearchDepth, nil)
		for _, z := range zeros {
			pz := at.Point(core.Lerp(z, at.startTime, at.endTime), p)
			bounds = bounds.UnionPoint(pz)
		}
	}
	return bounds
}
