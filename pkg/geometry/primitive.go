package geometry

import (
	"github.com/df07/go-pbrt-renderer/pkg/bxdf"
	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/interaction"
	"github.com/df07/go-pbrt-renderer/pkg/material"
	"github.com/df07/go-pbrt-renderer/pkg/transform"
)

// Primitive is anything the scene can intersect: a shape with its
// appearance, a transformed instance, or an aggregate of primitives.
type Primitive interface {
	WorldBound() core.Bounds3

	// Intersect shrinks ray.TMax to the hit distance when it finds a closer hit
	Intersect(ray *core.Ray) (*interaction.SurfaceInteraction, bool)
	IntersectP(ray *core.Ray) bool

	AreaLight() interaction.AreaLight
	Material() material.Material
	ComputeScatteringFunctions(si *interaction.SurfaceInteraction, mode bxdf.TransportMode, allowMultipleLobes bool)
}

// GeometricPrimitive binds a shape to its material and optional area light.
// A nil material marks a boundary that rays pass straight through.
type GeometricPrimitive struct {
	Shape    Shape
	Mat      material.Material
	Emission interaction.AreaLight
}

// NewGeometricPrimitive creates a primitive; areaLight may be nil
func NewGeometricPrimitive(shape Shape, mat material.Material, areaLight interaction.AreaLight) *GeometricPrimitive {
	return &GeometricPrimitive{Shape: shape, Mat: mat, Emission: areaLight}
}

func (p *GeometricPrimitive) WorldBound() core.Bounds3 {
	return p.Shape.WorldBound()
}

func (p *GeometricPrimitive) Intersect(ray *core.Ray) (*interaction.SurfaceInteraction, bool) {
	tHit, si, ok := p.Shape.Intersect(ray, true)
	if !ok {
		return nil, false
	}
	ray.TMax = tHit
	si.Primitive = p
	return si, true
}

func (p *GeometricPrimitive) IntersectP(ray *core.Ray) bool {
	return p.Shape.IntersectP(ray, true)
}

func (p *GeometricPrimitive) AreaLight() interaction.AreaLight {
	return p.Emission
}

func (p *GeometricPrimitive) Material() material.Material {
	return p.Mat
}

func (p *GeometricPrimitive) ComputeScatteringFunctions(si *interaction.SurfaceInteraction, mode bxdf.TransportMode, allowMultipleLobes bool) {
	if p.Mat != nil {
		p.Mat.ComputeScatteringFunctions(si, mode, allowMultipleLobes)
	}
}

// TransformedPrimitive places another primitive with a possibly animated transform
type TransformedPrimitive struct {
	Primitive        Primitive
	PrimitiveToWorld *transform.AnimatedTransform
}

// NewTransformedPrimitive creates an instance of p placed by primitiveToWorld
func NewTransformedPrimitive(p Primitive, primitiveToWorld *transform.AnimatedTransform) *TransformedPrimitive {
	return &TransformedPrimitive{Primitive: p, PrimitiveToWorld: primitiveToWorld}
}

func (t *TransformedPrimitive) WorldBound() core.Bounds3 {
	return t.PrimitiveToWorld.MotionBounds(t.Primitive.WorldBound())
}

func (t *TransformedPrimitive) Intersect(r *core.Ray) (*interaction.SurfaceInteraction, bool) {
	interpolated := t.PrimitiveToWorld.Interpolate(r.Time)
	ray := interpolated.Inverse().Ray(*r)
	si, ok := t.Primitive.Intersect(&ray)
	if !ok {
		return nil, false
	}
	r.TMax = ray.TMax
	if !interpolated.IsIdentity() {
		si = interpolated.SurfaceInteraction(si)
	}
	if si.N.Dot(si.Shading.N) < 0 {
		panic("geometry: shading normal flipped away from geometric normal")
	}
	return si, true
}

func (t *TransformedPrimitive) IntersectP(r *core.Ray) bool {
	interpolated := t.PrimitiveToWorld.Interpolate(r.Time)
	ray := interpolated.Inverse().Ray(*r)
	return t.Primitive.IntersectP(&ray)
}

func (t *TransformedPrimitive) AreaLight() interaction.AreaLight {
	panic("geometry: TransformedPrimitive.AreaLight should never be called")
}

func (t *TransformedPrimitive) Material() material.Material {
	panic("geometry: TransformedPrimitive.Material should never be called")
}

func (t *TransformedPrimitive) ComputeScatteringFunctions(si *interaction.SurfaceInteraction, mode bxdf.TransportMode, allowMultipleLobes bool) {
	panic("geometry: TransformedPrimitive.ComputeScatteringFunctions should never be called")
}
