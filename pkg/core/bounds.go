package core

import "math"

// Bounds3 represents an axis-aligned bounding box
type Bounds3 struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewBounds3 creates the box spanned by two points in any order
func NewBounds3(p1, p2 Vec3) Bounds3 {
	return Bounds3{Min: p1.Min(p2), Max: p1.Max(p2)}
}

// EmptyBounds3 returns an inverted box that any Union absorbs
func EmptyBounds3() Bounds3 {
	inf := math.Inf(1)
	return Bounds3{
		Min: NewVec3(inf, inf, inf),
		Max: NewVec3(-inf, -inf, -inf),
	}
}

// PointBounds3 returns the degenerate box around a single point
func PointBounds3(p Vec3) Bounds3 {
	return Bounds3{Min: p, Max: p}
}

// Corner returns one of the eight box corners; bit 0 selects x, bit 1 y, bit 2 z
func (b Bounds3) Corner(i int) Vec3 {
	c := b.Min
	if i&1 != 0 {
		c.X = b.Max.X
	}
	if i&2 != 0 {
		c.Y = b.Max.Y
	}
	if i&4 != 0 {
		c.Z = b.Max.Z
	}
	return c
}

// Get returns Min for 0 and Max for 1
func (b Bounds3) Get(i int) Vec3 {
	if i == 0 {
		return b.Min
	}
	return b.Max
}

// Union returns a box that bounds both this box and another
func (b Bounds3) Union(other Bounds3) Bounds3 {
	return Bounds3{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// UnionPoint returns a box that bounds this box and a point
func (b Bounds3) UnionPoint(p Vec3) Bounds3 {
	return Bounds3{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Intersect returns the overlap of two boxes
func (b Bounds3) Intersect(other Bounds3) Bounds3 {
	return Bounds3{Min: b.Min.Max(other.Min), Max: b.Max.Min(other.Max)}
}

// Inside reports whether p lies within the box, boundary included
func (b Bounds3) Inside(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// IsEmpty reports whether the box has an inverted axis
func (b Bounds3) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Diagonal returns the vector from Min to Max
func (b Bounds3) Diagonal() Vec3 {
	return b.Max.Subtract(b.Min)
}

// Centroid returns the center point of the box
func (b Bounds3) Centroid() Vec3 {
	return b.Min.Multiply(0.5).Add(b.Max.Multiply(0.5))
}

// SurfaceArea returns the surface area of the box
func (b Bounds3) SurfaceArea() float64 {
	d := b.Diagonal()
	return 2.0 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

// MaximumExtent returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (b Bounds3) MaximumExtent() int {
	d := b.Diagonal()
	if d.X > d.Y && d.X > d.Z {
		return 0
	}
	if d.Y > d.Z {
		return 1
	}
	return 2
}

// Offset returns the position of p relative to the box: Min maps to 0 and Max to 1
func (b Bounds3) Offset(p Vec3) Vec3 {
	o := p.Subtract(b.Min)
	if b.Max.X > b.Min.X {
		o.X /= b.Max.X - b.Min.X
	}
	if b.Max.Y > b.Min.Y {
		o.Y /= b.Max.Y - b.Min.Y
	}
	if b.Max.Z > b.Min.Z {
		o.Z /= b.Max.Z - b.Min.Z
	}
	return o
}

// BoundingSphere returns the center and radius of a sphere enclosing the box
func (b Bounds3) BoundingSphere() (Vec3, float64) {
	center := b.Centroid()
	if !b.Inside(center) {
		return center, 0
	}
	return center, center.Distance(b.Max)
}

// IntersectP returns the parametric range where the ray overlaps the box
func (b Bounds3) IntersectP(ray Ray) (float64, float64, bool) {
	t0, t1 := 0.0, ray.TMax
	for axis := 0; axis < 3; axis++ {
		invDir := 1 / ray.Direction.Get(axis)
		tNear := (b.Min.Get(axis) - ray.Origin.Get(axis)) * invDir
		tFar := (b.Max.Get(axis) - ray.Origin.Get(axis)) * invDir
		if tNear > tFar {
			tNear, tFar = tFar, tNear
		}
		tFar *= 1 + 2*Gamma(3)
		if tNear > t0 {
			t0 = tNear
		}
		if tFar < t1 {
			t1 = tFar
		}
		if t0 > t1 {
			return 0, 0, false
		}
	}
	return t0, t1, true
}

// IntersectPInv tests the ray against the box using a precomputed inverse
// direction and per-axis sign flags, so no sign branches occur per node.
func (b Bounds3) IntersectPInv(ray *Ray, invDir Vec3, dirIsNeg [3]int) bool {
	tMin := (b.Get(dirIsNeg[0]).X - ray.Origin.X) * invDir.X
	tMax := (b.Get(1-dirIsNeg[0]).X - ray.Origin.X) * invDir.X
	tyMin := (b.Get(dirIsNeg[1]).Y - ray.Origin.Y) * invDir.Y
	tyMax := (b.Get(1-dirIsNeg[1]).Y - ray.Origin.Y) * invDir.Y

	tMax *= 1 + 2*Gamma(3)
	tyMax *= 1 + 2*Gamma(3)
	if tMin > tyMax || tyMin > tMax {
		return false
	}
	if tyMin > tMin {
		tMin = tyMin
	}
	if tyMax < tMax {
		tMax = tyMax
	}

	tzMin := (b.Get(dirIsNeg[2]).Z - ray.Origin.Z) * invDir.Z
	tzMax := (b.Get(1-dirIsNeg[2]).Z - ray.Origin.Z) * invDir.Z
	tzMax *= 1 + 2*Gamma(3)
	if tMin > tzMax || tzMin > tMax {
		return false
	}
	if tzMin > tMin {
		tMin = tzMin
	}
	if tzMax < tMax {
		tMax = tzMax
	}
	return tMin < ray.TMax && tMax > 0
}

// Bounds2i is an integer rectangle; Max is exclusive when iterating pixels
type Bounds2i struct {
	Min Point2i
	Max Point2i
}

// NewBounds2i creates the rectangle spanned by two points in any order
func NewBounds2i(p1, p2 Point2i) Bounds2i {
	return Bounds2i{
		Min: Point2i{min(p1.X, p2.X), min(p1.Y, p2.Y)},
		Max: Point2i{max(p1.X, p2.X), max(p1.Y, p2.Y)},
	}
}

// Diagonal returns Max - Min
func (b Bounds2i) Diagonal() Point2i {
	return Point2i{b.Max.X - b.Min.X, b.Max.Y - b.Min.Y}
}

// Area returns the number of pixels covered
func (b Bounds2i) Area() int {
	d := b.Diagonal()
	if d.X <= 0 || d.Y <= 0 {
		return 0
	}
	return d.X * d.Y
}

// Intersect returns the overlap of two rectangles
func (b Bounds2i) Intersect(other Bounds2i) Bounds2i {
	return Bounds2i{
		Min: Point2i{max(b.Min.X, other.Min.X), max(b.Min.Y, other.Min.Y)},
		Max: Point2i{min(b.Max.X, other.Max.X), min(b.Max.Y, other.Max.Y)},
	}
}

// InsideExclusive reports whether p lies in [Min, Max)
func (b Bounds2i) InsideExclusive(p Point2i) bool {
	return p.X >= b.Min.X && p.X < b.Max.X && p.Y >= b.Min.Y && p.Y < b.Max.Y
}

// Pixels calls fn for every pixel in row-major order
func (b Bounds2i) Pixels(fn func(p Point2i)) {
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			fn(Point2i{x, y})
		}
	}
}

// Bounds2f is a floating point rectangle
type Bounds2f struct {
	Min Vec2
	Max Vec2
}

// NewBounds2f creates the rectangle spanned by two points in any order
func NewBounds2f(p1, p2 Vec2) Bounds2f {
	return Bounds2f{
		Min: Vec2{math.Min(p1.X, p2.X), math.Min(p1.Y, p2.Y)},
		Max: Vec2{math.Max(p1.X, p2.X), math.Max(p1.Y, p2.Y)},
	}
}

// Diagonal returns Max - Min
func (b Bounds2f) Diagonal() Vec2 {
	return b.Max.Subtract(b.Min)
}

// Area returns the rectangle area
func (b Bounds2f) Area() float64 {
	d := b.Diagonal()
	return d.X * d.Y
}
