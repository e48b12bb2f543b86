package film

import (
	"math"

	"github.com/df07/go-pbrt-renderer/pkg/core"
)

// Filter is a pixel reconstruction kernel centered at the origin
type Filter interface {
	Radius() core.Vec2
	Evaluate(p core.Vec2) float64
}

// BoxFilter weights every sample inside its radius equally
type BoxFilter struct {
	radius core.Vec2
}

// NewBoxFilter creates a box filter
func NewBoxFilter(radius core.Vec2) *BoxFilter {
	return &BoxFilter{radius: radius}
}

func (f *BoxFilter) Radius() core.Vec2            { return f.radius }
func (f *BoxFilter) Evaluate(p core.Vec2) float64 { return 1 }

// TriangleFilter falls off linearly to zero at its radius
type TriangleFilter struct {
	radius core.Vec2
}

// NewTriangleFilter creates a triangle filter
func NewTriangleFilter(radius core.Vec2) *TriangleFilter {
	return &TriangleFilter{radius: radius}
}

func (f *TriangleFilter) Radius() core.Vec2 { return f.radius }

func (f *TriangleFilter) Evaluate(p core.Vec2) float64 {
	return math.Max(0, f.radius.X-math.Abs(p.X)) * math.Max(0, f.radius.Y-math.Abs(p.Y))
}

// GaussianFilter is a Gaussian shifted down so it reaches zero at its radius
type GaussianFilter struct {
	radius     core.Vec2
	alpha      float64
	expX, expY float64
}

// NewGaussianFilter creates a Gaussian filter with falloff rate alpha
func NewGaussianFilter(radius core.Vec2, alpha float64) *GaussianFilter {
	return &GaussianFilter{
		radius: radius,
		alpha:  alpha,
		expX:   math.Exp(-alpha * radius.X * radius.X),
		expY:   math.Exp(-alpha * radius.Y * radius.Y),
	}
}

func (f *GaussianFilter) Radius() core.Vec2 { return f.radius }

func (f *GaussianFilter) Evaluate(p core.Vec2) float64 {
	return f.gaussian(p.X, f.expX) * f.gaussian(p.Y, f.expY)
}

func (f *GaussianFilter) gaussian(d, expv float64) float64 {
	return math.Max(0, math.Exp(-f.alpha*d*d)-expv)
}
