package geometry

import (
	"math"

	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/interaction"
	"github.com/df07/go-pbrt-renderer/pkg/transform"
)

// Shape is a geometric surface defined in its own object space
type Shape interface {
	ObjectBound() core.Bounds3
	WorldBound() core.Bounds3

	// Intersect finds the first hit in (0, ray.TMax]. It does not modify the ray.
	Intersect(ray *core.Ray, testAlphaTexture bool) (float64, *interaction.SurfaceInteraction, bool)
	IntersectP(ray *core.Ray, testAlphaTexture bool) bool

	Area() float64

	// Sample picks a point uniformly by area and returns its area density
	Sample(u core.Vec2) (interaction.Interaction, float64)

	// SampleRef picks a point as seen from ref and returns its solid angle density
	SampleRef(ref *interaction.Interaction, u core.Vec2) (interaction.Interaction, float64)

	// Pdf is the solid angle density of SampleRef choosing direction wi from ref
	Pdf(ref *interaction.Interaction, wi core.Vec3) float64
}

// ShapeData holds the placement shared by every shape
type ShapeData struct {
	ObjectToWorld            transform.Transform
	WorldToObject            transform.Transform
	ReverseOrientation       bool
	TransformSwapsHandedness bool
}

// NewShapeData caches the inverse placement and the handedness flag
func NewShapeData(objectToWorld transform.Transform, reverseOrientation bool) ShapeData {
	return ShapeData{
		ObjectToWorld:            objectToWorld,
		WorldToObject:            objectToWorld.Inverse(),
		ReverseOrientation:       reverseOrientation,
		TransformSwapsHandedness: objectToWorld.SwapsHandedness(),
	}
}

// flipNormal reports whether geometric normals must be reversed
func (d *ShapeData) flipNormal() bool {
	return d.ReverseOrientation != d.TransformSwapsHandedness
}

// worldBound transforms an object bound into world space
func (d *ShapeData) worldBound(objectBound core.Bounds3) core.Bounds3 {
	return d.ObjectToWorld.Bounds(objectBound)
}

// sampleRefByArea converts an area sample into a solid angle sample from ref
func sampleRefByArea(s Shape, ref *interaction.Interaction, u core.Vec2) (interaction.Interaction, float64) {
	it, pdf := s.Sample(u)
	wi := it.P.Subtract(ref.P)
	if wi.LengthSquared() == 0 {
		return it, 0
	}
	wi = wi.Normalize()
	pdf *= ref.P.DistanceSquared(it.P) / it.N.AbsDot(wi.Negate())
	if math.IsInf(pdf, 0) {
		pdf = 0
	}
	return it, pdf
}

// pdfByIntersection computes the solid angle density of area sampling by
// tracing a ray from ref toward wi against the shape.
func pdfByIntersection(s Shape, ref *interaction.Interaction, wi core.Vec3) float64 {
	ray := ref.SpawnRay(wi)
	_, isect, ok := s.Intersect(&ray, false)
	if !ok {
		return 0
	}
	pdf := ref.P.DistanceSquared(isect.P) / (isect.N.AbsDot(wi.Negate()) * s.Area())
	if math.IsInf(pdf, 0) || math.IsNaN(pdf) {
		return 0
	}
	return pdf
}

// rayToObject moves a world ray into object space as error-bounded components
func (d *ShapeData) rayToObject(r *core.Ray) (core.Ray, [3]core.EFloat, [3]core.EFloat) {
	ray, oErr, dErr := d.WorldToObject.RayWithError(*r)
	o := [3]core.EFloat{
		core.NewEFloat(ray.Origin.X, oErr.X),
		core.NewEFloat(ray.Origin.Y, oErr.Y),
		core.NewEFloat(ray.Origin.Z, oErr.Z),
	}
	dir := [3]core.EFloat{
		core.NewEFloat(ray.Direction.X, dErr.X),
		core.NewEFloat(ray.Direction.Y, dErr.Y),
		core.NewEFloat(ray.Direction.Z, dErr.Z),
	}
	return ray, o, dir
}

// weingarten derives dn/du and dn/dv from the first and second fundamental forms
func weingarten(dpdu, dpdv, d2Pduu, d2Pduv, d2Pdvv core.Vec3) (core.Vec3, core.Vec3) {
	E := dpdu.Dot(dpdu)
	F := dpdu.Dot(dpdv)
	G := dpdv.Dot(dpdv)
	n := dpdu.Cross(dpdv).Normalize()
	e := n.Dot(d2Pduu)
	f := n.Dot(d2Pduv)
	g := n.Dot(d2Pdvv)

	invEGF2 := 1 / (E*G - F*F)
	dndu := dpdu.Multiply((f*F - e*G) * invEGF2).Add(dpdv.Multiply((e*F - f*E) * invEGF2))
	dndv := dpdu.Multiply((g*F - f*G) * invEGF2).Add(dpdv.Multiply((f*F - g*E) * invEGF2))
	return dndu, dndv
}
