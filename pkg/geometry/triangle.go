package geometry

import (
	"math"

	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/interaction"
	"github.com/df07/go-pbrt-renderer/pkg/transform"
)

// TriangleMesh holds vertex positions shared by its triangles. Positions
// are stored in world space so triangles intersect without a transform.
type TriangleMesh struct {
	ShapeData
	Indices []int
	P       []core.Vec3
}

// Triangle is one face of a TriangleMesh
type Triangle struct {
	mesh *TriangleMesh
	v    int // offset of the first vertex index in mesh.Indices
}

// NewTriangleMesh transforms points to world space and returns one shape
// per index triple
func NewTriangleMesh(objectToWorld transform.Transform, reverseOrientation bool, indices []int, points []core.Vec3) []Shape {
	if len(indices)%3 != 0 {
		panic("geometry: triangle mesh index count must be a multiple of 3")
	}
	mesh := &TriangleMesh{
		ShapeData: NewShapeData(objectToWorld, reverseOrientation),
		Indices:   indices,
		P:         make([]core.Vec3, len(points)),
	}
	for i, p := range points {
		mesh.P[i] = objectToWorld.Point(p)
	}

	tris := make([]Shape, len(indices)/3)
	for i := range tris {
		tris[i] = &Triangle{mesh: mesh, v: 3 * i}
	}
	return tris
}

// NewQuad builds a parallelogram from corner p and edges u and v as two
// triangles facing along u x v
func NewQuad(p, u, v core.Vec3) []Shape {
	points := []core.Vec3{p, p.Add(u), p.Add(u).Add(v), p.Add(v)}
	return NewTriangleMesh(transform.Identity(), false, []int{0, 1, 2, 0, 2, 3}, points)
}

func (t *Triangle) vertices() (core.Vec3, core.Vec3, core.Vec3) {
	idx := t.mesh.Indices[t.v : t.v+3]
	return t.mesh.P[idx[0]], t.mesh.P[idx[1]], t.mesh.P[idx[2]]
}

func (t *Triangle) ObjectBound() core.Bounds3 {
	p0, p1, p2 := t.vertices()
	w2o := t.mesh.WorldToObject
	return core.PointBounds3(w2o.Point(p0)).UnionPoint(w2o.Point(p1)).UnionPoint(w2o.Point(p2))
}

func (t *Triangle) WorldBound() core.Bounds3 {
	p0, p1, p2 := t.vertices()
	return core.PointBounds3(p0).UnionPoint(p1).UnionPoint(p2)
}

// permute reorders v's components as (v[x], v[y], v[z])
func permute(v core.Vec3, x, y, z int) core.Vec3 {
	return core.NewVec3(v.Get(x), v.Get(y), v.Get(z))
}

// hit runs the watertight ray-triangle test in a ray-aligned space where
// the ray runs down +z from the origin. It returns the barycentrics and t.
func (t *Triangle) hit(ray *core.Ray) (b0, b1, b2, tHit float64, ok bool) {
	p0, p1, p2 := t.vertices()

	p0t := p0.Subtract(ray.Origin)
	p1t := p1.Subtract(ray.Origin)
	p2t := p2.Subtract(ray.Origin)

	kz := ray.Direction.Abs().MaxDimension()
	kx := (kz + 1) % 3
	ky := (kx + 1) % 3
	d := permute(ray.Direction, kx, ky, kz)
	p0t = permute(p0t, kx, ky, kz)
	p1t = permute(p1t, kx, ky, kz)
	p2t = permute(p2t, kx, ky, kz)

	// Shear so the ray direction becomes +z
	sx, sy, sz := -d.X/d.Z, -d.Y/d.Z, 1/d.Z
	p0t.X += sx * p0t.Z
	p0t.Y += sy * p0t.Z
	p1t.X += sx * p1t.Z
	p1t.Y += sy * p1t.Z
	p2t.X += sx * p2t.Z
	p2t.Y += sy * p2t.Z

	e0 := p1t.X*p2t.Y - p1t.Y*p2t.X
	e1 := p2t.X*p0t.Y - p2t.Y*p0t.X
	e2 := p0t.X*p1t.Y - p0t.Y*p1t.X
	if (e0 < 0 || e1 < 0 || e2 < 0) && (e0 > 0 || e1 > 0 || e2 > 0) {
		return 0, 0, 0, 0, false
	}
	det := e0 + e1 + e2
	if det == 0 {
		return 0, 0, 0, 0, false
	}

	p0t.Z *= sz
	p1t.Z *= sz
	p2t.Z *= sz
	tScaled := e0*p0t.Z + e1*p1t.Z + e2*p2t.Z
	if det < 0 && (tScaled >= 0 || tScaled < ray.TMax*det) {
		return 0, 0, 0, 0, false
	}
	if det > 0 && (tScaled <= 0 || tScaled > ray.TMax*det) {
		return 0, 0, 0, 0, false
	}

	invDet := 1 / det
	b0, b1, b2 = e0*invDet, e1*invDet, e2*invDet
	tHit = tScaled * invDet

	// Reject hits whose t is not provably positive
	maxZt := core.NewVec3(p0t.Z, p1t.Z, p2t.Z).Abs().MaxComponent()
	deltaZ := core.Gamma(3) * maxZt
	maxXt := core.NewVec3(p0t.X, p1t.X, p2t.X).Abs().MaxComponent()
	maxYt := core.NewVec3(p0t.Y, p1t.Y, p2t.Y).Abs().MaxComponent()
	deltaX := core.Gamma(5) * (maxXt + maxZt)
	deltaY := core.Gamma(5) * (maxYt + maxZt)
	deltaE := 2 * (core.Gamma(2)*maxXt*maxYt + deltaY*maxXt + deltaX*maxYt)
	maxE := core.NewVec3(e0, e1, e2).Abs().MaxComponent()
	deltaT := 3 * (core.Gamma(3)*maxE*maxZt + deltaE*maxZt + deltaZ*maxE) * math.Abs(invDet)
	if tHit <= deltaT {
		return 0, 0, 0, 0, false
	}
	return b0, b1, b2, tHit, true
}

// Default parameterization of every triangle
var triangleUV = [3]core.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}

func (t *Triangle) Intersect(ray *core.Ray, testAlphaTexture bool) (float64, *interaction.SurfaceInteraction, bool) {
	b0, b1, b2, tHit, ok := t.hit(ray)
	if !ok {
		return 0, nil, false
	}
	p0, p1, p2 := t.vertices()

	duv02 := triangleUV[0].Subtract(triangleUV[2])
	duv12 := triangleUV[1].Subtract(triangleUV[2])
	dp02, dp12 := p0.Subtract(p2), p1.Subtract(p2)
	determinant := duv02.X*duv12.Y - duv02.Y*duv12.X

	var dpdu, dpdv core.Vec3
	degenerate := math.Abs(determinant) < 1e-8
	if !degenerate {
		invDet := 1 / determinant
		dpdu = dp02.Multiply(duv12.Y).Subtract(dp12.Multiply(duv02.Y)).Multiply(invDet)
		dpdv = dp12.Multiply(duv02.X).Subtract(dp02.Multiply(duv12.X)).Multiply(invDet)
	}
	if degenerate || dpdu.Cross(dpdv).LengthSquared() == 0 {
		ng := p2.Subtract(p0).Cross(p1.Subtract(p0))
		if ng.LengthSquared() == 0 {
			return 0, nil, false
		}
		dpdu, dpdv = core.CoordinateSystem(ng.Normalize())
	}

	absSum := func(axis int) float64 {
		return math.Abs(b0*p0.Get(axis)) + math.Abs(b1*p1.Get(axis)) + math.Abs(b2*p2.Get(axis))
	}
	pError := core.NewVec3(absSum(0), absSum(1), absSum(2)).Multiply(core.Gamma(7))
	pHit := p0.Multiply(b0).Add(p1.Multiply(b1)).Add(p2.Multiply(b2))
	uvHit := triangleUV[0].Multiply(b0).Add(triangleUV[1].Multiply(b1)).Add(triangleUV[2].Multiply(b2))

	flip := t.mesh.flipNormal()
	si := interaction.NewSurfaceInteraction(pHit, pError, uvHit, ray.Direction.Negate(),
		dpdu, dpdv, core.Vec3{}, core.Vec3{}, ray.Time, flip)

	// The geometric normal follows the winding, not the parameterization
	n := dp02.Cross(dp12).Normalize()
	if flip {
		n = n.Negate()
	}
	si.N, si.Shading.N = n, n
	return tHit, si, true
}

func (t *Triangle) IntersectP(ray *core.Ray, testAlphaTexture bool) bool {
	_, _, _, _, ok := t.hit(ray)
	return ok
}

func (t *Triangle) Area() float64 {
	p0, p1, p2 := t.vertices()
	return 0.5 * p1.Subtract(p0).Cross(p2.Subtract(p0)).Length()
}

func (t *Triangle) Sample(u core.Vec2) (interaction.Interaction, float64) {
	p0, p1, p2 := t.vertices()
	b := core.UniformSampleTriangle(u)
	b2 := 1 - b.X - b.Y

	var it interaction.Interaction
	it.P = p0.Multiply(b.X).Add(p1.Multiply(b.Y)).Add(p2.Multiply(b2))
	it.N = p1.Subtract(p0).Cross(p2.Subtract(p0)).Normalize()
	if t.mesh.flipNormal() {
		it.N = it.N.Negate()
	}
	pAbsSum := p0.Multiply(b.X).Abs().Add(p1.Multiply(b.Y).Abs()).Add(p2.Multiply(b2).Abs())
	it.PError = pAbsSum.Multiply(core.Gamma(6))
	return it, 1 / t.Area()
}

func (t *Triangle) SampleRef(ref *interaction.Interaction, u core.Vec2) (interaction.Interaction, float64) {
	return sampleRefByArea(t, ref, u)
}

func (t *Triangle) Pdf(ref *interaction.Interaction, wi core.Vec3) float64 {
	return pdfByIntersection(t, ref, wi)
}
