package geometry

import (
	"math"

	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/interaction"
	"github.com/df07/go-pbrt-renderer/pkg/transform"
)

// Cylinder is an open tube around the object-space z axis between ZMin and ZMax
type Cylinder struct {
	ShapeData
	Radius     float64
	ZMin, ZMax float64
	PhiMax     float64
}

// NewCylinder creates a cylinder swept phiMax degrees around z
func NewCylinder(objectToWorld transform.Transform, reverseOrientation bool, radius, zMin, zMax, phiMax float64) *Cylinder {
	return &Cylinder{
		ShapeData: NewShapeData(objectToWorld, reverseOrientation),
		Radius:    radius,
		ZMin:      math.Min(zMin, zMax),
		ZMax:      math.Max(zMin, zMax),
		PhiMax:    core.Radians(core.Clamp(phiMax, 0, 360)),
	}
}

func (c *Cylinder) ObjectBound() core.Bounds3 {
	return core.NewBounds3(
		core.NewVec3(-c.Radius, -c.Radius, c.ZMin),
		core.NewVec3(c.Radius, c.Radius, c.ZMax),
	)
}

func (c *Cylinder) WorldBound() core.Bounds3 {
	return c.worldBound(c.ObjectBound())
}

func (c *Cylinder) hitPoint(ray core.Ray, t float64) (core.Vec3, float64) {
	p := ray.At(t)
	hitRad := math.Sqrt(p.X*p.X + p.Y*p.Y)
	p.X *= c.Radius / hitRad
	p.Y *= c.Radius / hitRad
	phi := math.Atan2(p.Y, p.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return p, phi
}

func (c *Cylinder) clipped(p core.Vec3, phi float64) bool {
	return p.Z < c.ZMin || p.Z > c.ZMax || phi > c.PhiMax
}

func (c *Cylinder) solve(r *core.Ray) (core.Ray, core.EFloat, core.Vec3, float64, bool) {
	ray, o, d := c.rayToObject(r)

	a := d[0].Square().Add(d[1].Square())
	if a.V == 0 {
		// Parallel to the axis, the open tube is never hit
		return ray, core.EFloat{}, core.Vec3{}, 0, false
	}
	b := d[0].Mul(o[0]).Add(d[1].Mul(o[1])).Mul(core.ExactEFloat(2))
	cc := o[0].Square().Add(o[1].Square()).Sub(core.ExactEFloat(c.Radius * c.Radius))

	t0, t1, ok := core.Quadratic(a, b, cc)
	if !ok {
		return ray, core.EFloat{}, core.Vec3{}, 0, false
	}
	if t0.UpperBound() > ray.TMax || t1.LowerBound() <= 0 {
		return ray, core.EFloat{}, core.Vec3{}, 0, false
	}
	tShapeHit := t0
	usedFar := false
	if tShapeHit.LowerBound() <= 0 {
		tShapeHit = t1
		usedFar = true
		if tShapeHit.UpperBound() > ray.TMax {
			return ray, core.EFloat{}, core.Vec3{}, 0, false
		}
	}

	pHit, phi := c.hitPoint(ray, tShapeHit.V)
	if c.clipped(pHit, phi) {
		if usedFar || t1.UpperBound() > ray.TMax {
			return ray, core.EFloat{}, core.Vec3{}, 0, false
		}
		tShapeHit = t1
		pHit, phi = c.hitPoint(ray, tShapeHit.V)
		if c.clipped(pHit, phi) {
			return ray, core.EFloat{}, core.Vec3{}, 0, false
		}
	}
	return ray, tShapeHit, pHit, phi, true
}

func (c *Cylinder) Intersect(r *core.Ray, testAlphaTexture bool) (float64, *interaction.SurfaceInteraction, bool) {
	ray, tShapeHit, pHit, phi, ok := c.solve(r)
	if !ok {
		return 0, nil, false
	}

	u := phi / c.PhiMax
	v := (pHit.Z - c.ZMin) / (c.ZMax - c.ZMin)

	dpdu := core.NewVec3(-c.PhiMax*pHit.Y, c.PhiMax*pHit.X, 0)
	dpdv := core.NewVec3(0, 0, c.ZMax-c.ZMin)
	d2Pduu := core.NewVec3(pHit.X, pHit.Y, 0).Multiply(-c.PhiMax * c.PhiMax)
	dndu, dndv := weingarten(dpdu, dpdv, d2Pduu, core.Vec3{}, core.Vec3{})

	pError := core.NewVec3(pHit.X, pHit.Y, 0).Abs().Multiply(core.Gamma(3))
	local := interaction.NewSurfaceInteraction(pHit, pError, core.NewVec2(u, v), ray.Direction.Negate(),
		dpdu, dpdv, dndu, dndv, ray.Time, c.flipNormal())
	return tShapeHit.V, c.ObjectToWorld.SurfaceInteraction(local), true
}

func (c *Cylinder) IntersectP(r *core.Ray, testAlphaTexture bool) bool {
	_, _, _, _, ok := c.solve(r)
	return ok
}

func (c *Cylinder) Area() float64 {
	return (c.ZMax - c.ZMin) * c.Radius * c.PhiMax
}

func (c *Cylinder) Sample(u core.Vec2) (interaction.Interaction, float64) {
	z := core.Lerp(u.X, c.ZMin, c.ZMax)
	phi := u.Y * c.PhiMax
	pObj := core.NewVec3(c.Radius*math.Cos(phi), c.Radius*math.Sin(phi), z)

	var it interaction.Interaction
	it.N = c.ObjectToWorld.Normal(core.NewVec3(pObj.X, pObj.Y, 0)).Normalize()
	if c.ReverseOrientation {
		it.N = it.N.Negate()
	}
	pObjError := core.NewVec3(pObj.X, pObj.Y, 0).Abs().Multiply(core.Gamma(3))
	it.P, it.PError = c.ObjectToWorld.PointWithAbsError(pObj, pObjError)
	return it, 1 / c.Area()
}

func (c *Cylinder) SampleRef(ref *interaction.Interaction, u core.Vec2) (interaction.Interaction, float64) {
	return sampleRefByArea(c, ref, u)
}

func (c *Cylinder) Pdf(ref *interaction.Interaction, wi core.Vec3) float64 {
	return pdfByIntersection(c, ref, wi)
}
