package geometry

import (
	"math"

	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/interaction"
	"github.com/df07/go-pbrt-renderer/pkg/transform"
)

// Disc is an annulus in the object-space plane z = Height, facing +z
type Disc struct {
	ShapeData
	Height      float64
	Radius      float64
	InnerRadius float64
	PhiMax      float64
}

// NewDisc creates a disc (or annulus when innerRadius > 0) swept phiMax degrees
func NewDisc(objectToWorld transform.Transform, reverseOrientation bool, height, radius, innerRadius, phiMax float64) *Disc {
	return &Disc{
		ShapeData:   NewShapeData(objectToWorld, reverseOrientation),
		Height:      height,
		Radius:      radius,
		InnerRadius: innerRadius,
		PhiMax:      core.Radians(core.Clamp(phiMax, 0, 360)),
	}
}

func (d *Disc) ObjectBound() core.Bounds3 {
	return core.NewBounds3(
		core.NewVec3(-d.Radius, -d.Radius, d.Height),
		core.NewVec3(d.Radius, d.Radius, d.Height),
	)
}

func (d *Disc) WorldBound() core.Bounds3 {
	return d.worldBound(d.ObjectBound())
}

func (d *Disc) solve(r *core.Ray) (core.Ray, float64, core.Vec3, float64, float64, bool) {
	ray, _, _ := d.WorldToObject.RayWithError(*r)

	// Parallel rays never cross the plane
	if ray.Direction.Z == 0 {
		return ray, 0, core.Vec3{}, 0, 0, false
	}
	tShapeHit := (d.Height - ray.Origin.Z) / ray.Direction.Z
	if tShapeHit <= 0 || tShapeHit >= ray.TMax {
		return ray, 0, core.Vec3{}, 0, 0, false
	}

	pHit := ray.At(tShapeHit)
	dist2 := pHit.X*pHit.X + pHit.Y*pHit.Y
	if dist2 > d.Radius*d.Radius || dist2 < d.InnerRadius*d.InnerRadius {
		return ray, 0, core.Vec3{}, 0, 0, false
	}
	phi := math.Atan2(pHit.Y, pHit.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	if phi > d.PhiMax {
		return ray, 0, core.Vec3{}, 0, 0, false
	}
	return ray, tShapeHit, pHit, phi, math.Sqrt(dist2), true
}

func (d *Disc) Intersect(r *core.Ray, testAlphaTexture bool) (float64, *interaction.SurfaceInteraction, bool) {
	ray, tShapeHit, pHit, phi, rHit, ok := d.solve(r)
	if !ok {
		return 0, nil, false
	}

	u := phi / d.PhiMax
	v := (d.Radius - rHit) / (d.Radius - d.InnerRadius)
	dpdu := core.NewVec3(-d.PhiMax*pHit.Y, d.PhiMax*pHit.X, 0)
	dpdv := core.NewVec3(pHit.X, pHit.Y, 0).Multiply((d.InnerRadius - d.Radius) / rHit)

	// The plane equation is exact in z
	pHit.Z = d.Height
	local := interaction.NewSurfaceInteraction(pHit, core.Vec3{}, core.NewVec2(u, v), ray.Direction.Negate(),
		dpdu, dpdv, core.Vec3{}, core.Vec3{}, ray.Time, d.flipNormal())
	return tShapeHit, d.ObjectToWorld.SurfaceInteraction(local), true
}

func (d *Disc) IntersectP(r *core.Ray, testAlphaTexture bool) bool {
	_, _, _, _, _, ok := d.solve(r)
	return ok
}

func (d *Disc) Area() float64 {
	return d.PhiMax * 0.5 * (d.Radius*d.Radius - d.InnerRadius*d.InnerRadius)
}

func (d *Disc) Sample(u core.Vec2) (interaction.Interaction, float64) {
	pd := core.ConcentricSampleDisk(u)
	pObj := core.NewVec3(pd.X*d.Radius, pd.Y*d.Radius, d.Height)

	var it interaction.Interaction
	it.N = d.ObjectToWorld.Normal(core.NewVec3(0, 0, 1)).Normalize()
	if d.ReverseOrientation {
		it.N = it.N.Negate()
	}
	it.P, it.PError = d.ObjectToWorld.PointWithAbsError(pObj, core.Vec3{})
	return it, 1 / d.Area()
}

func (d *Disc) SampleRef(ref *interaction.Interaction, u core.Vec2) (interaction.Interaction, float64) {
	return sampleRefByArea(d, ref, u)
}

func (d *Disc) Pdf(ref *interaction.Interaction, wi core.Vec3) float64 {
	return pdfByIntersection(d, ref, wi)
}
