package geometry

import (
	"math"

	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/interaction"
	"github.com/df07/go-pbrt-renderer/pkg/transform"
)

// Sphere is a sphere around the object-space origin, optionally clipped in z
// and swept only partway around the z axis.
type Sphere struct {
	ShapeData
	Radius               float64
	ZMin, ZMax           float64
	ThetaZMin, ThetaZMax float64
	PhiMax               float64
}

// NewSphere creates a full sphere of the given radius
func NewSphere(objectToWorld transform.Transform, reverseOrientation bool, radius float64) *Sphere {
	return NewPartialSphere(objectToWorld, reverseOrientation, radius, -radius, radius, 360)
}

// NewPartialSphere creates a sphere clipped to [zMin, zMax] and swept phiMax degrees
func NewPartialSphere(objectToWorld transform.Transform, reverseOrientation bool, radius, zMin, zMax, phiMax float64) *Sphere {
	lo := core.Clamp(math.Min(zMin, zMax), -radius, radius)
	hi := core.Clamp(math.Max(zMin, zMax), -radius, radius)
	return &Sphere{
		ShapeData: NewShapeData(objectToWorld, reverseOrientation),
		Radius:    radius,
		ZMin:      lo,
		ZMax:      hi,
		ThetaZMin: math.Acos(core.Clamp(lo/radius, -1, 1)),
		ThetaZMax: math.Acos(core.Clamp(hi/radius, -1, 1)),
		PhiMax:    core.Radians(core.Clamp(phiMax, 0, 360)),
	}
}

func (s *Sphere) ObjectBound() core.Bounds3 {
	return core.NewBounds3(
		core.NewVec3(-s.Radius, -s.Radius, s.ZMin),
		core.NewVec3(s.Radius, s.Radius, s.ZMax),
	)
}

func (s *Sphere) WorldBound() core.Bounds3 {
	return s.worldBound(s.ObjectBound())
}

// hitPoint projects the ray point at t back onto the sphere and returns it with its phi
func (s *Sphere) hitPoint(ray core.Ray, t float64) (core.Vec3, float64) {
	p := ray.At(t)
	p = p.Multiply(s.Radius / p.Length())
	if p.X == 0 && p.Y == 0 {
		p.X = 1e-5 * s.Radius
	}
	phi := math.Atan2(p.Y, p.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return p, phi
}

func (s *Sphere) clipped(p core.Vec3, phi float64) bool {
	return (s.ZMin > -s.Radius && p.Z < s.ZMin) ||
		(s.ZMax < s.Radius && p.Z > s.ZMax) ||
		phi > s.PhiMax
}

// solve runs the conservative quadratic test and returns the hit parameter,
// point and phi of the first unclipped root.
func (s *Sphere) solve(r *core.Ray) (core.Ray, core.EFloat, core.Vec3, float64, bool) {
	ray, o, d := s.rayToObject(r)

	a := d[0].Square().Add(d[1].Square()).Add(d[2].Square())
	b := d[0].Mul(o[0]).Add(d[1].Mul(o[1])).Add(d[2].Mul(o[2])).Mul(core.ExactEFloat(2))
	c := o[0].Square().Add(o[1].Square()).Add(o[2].Square()).Sub(core.ExactEFloat(s.Radius * s.Radius))

	t0, t1, ok := core.Quadratic(a, b, c)
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

	pHit, phi := s.hitPoint(ray, tShapeHit.V)
	if s.clipped(pHit, phi) {
		if usedFar || t1.UpperBound() > ray.TMax {
			return ray, core.EFloat{}, core.Vec3{}, 0, false
		}
		tShapeHit = t1
		pHit, phi = s.hitPoint(ray, tShapeHit.V)
		if s.clipped(pHit, phi) {
			return ray, core.EFloat{}, core.Vec3{}, 0, false
		}
	}
	return ray, tShapeHit, pHit, phi, true
}

func (s *Sphere) Intersect(r *core.Ray, testAlphaTexture bool) (float64, *interaction.SurfaceInteraction, bool) {
	ray, tShapeHit, pHit, phi, ok := s.solve(r)
	if !ok {
		return 0, nil, false
	}

	u := phi / s.PhiMax
	cosTheta := core.Clamp(pHit.Z/s.Radius, -1, 1)
	theta := math.Acos(cosTheta)
	dTheta := s.ThetaZMax - s.ThetaZMin
	v := (theta - s.ThetaZMin) / dTheta

	zRadius := math.Sqrt(pHit.X*pHit.X + pHit.Y*pHit.Y)
	cosPhi := pHit.X / zRadius
	sinPhi := pHit.Y / zRadius
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))

	dpdu := core.NewVec3(-s.PhiMax*pHit.Y, s.PhiMax*pHit.X, 0)
	dpdv := core.NewVec3(pHit.Z*cosPhi, pHit.Z*sinPhi, -s.Radius*sinTheta).Multiply(dTheta)

	d2Pduu := core.NewVec3(pHit.X, pHit.Y, 0).Multiply(-s.PhiMax * s.PhiMax)
	d2Pduv := core.NewVec3(-sinPhi, cosPhi, 0).Multiply(dTheta * pHit.Z * s.PhiMax)
	d2Pdvv := pHit.Multiply(-dTheta * dTheta)
	dndu, dndv := weingarten(dpdu, dpdv, d2Pduu, d2Pduv, d2Pdvv)

	pError := pHit.Abs().Multiply(core.Gamma(5))
	local := interaction.NewSurfaceInteraction(pHit, pError, core.NewVec2(u, v), ray.Direction.Negate(),
		dpdu, dpdv, dndu, dndv, ray.Time, s.flipNormal())
	return tShapeHit.V, s.ObjectToWorld.SurfaceInteraction(local), true
}

func (s *Sphere) IntersectP(r *core.Ray, testAlphaTexture bool) bool {
	_, _, _, _, ok := s.solve(r)
	return ok
}

func (s *Sphere) Area() float64 {
	return s.PhiMax * s.Radius * (s.ZMax - s.ZMin)
}

func (s *Sphere) Sample(u core.Vec2) (interaction.Interaction, float64) {
	pObj := core.UniformSampleSphere(u).Multiply(s.Radius)
	n := s.ObjectToWorld.Normal(pObj).Normalize()
	if s.ReverseOrientation {
		n = n.Negate()
	}
	// Reproject onto the surface before bounding the error
	pObj = pObj.Multiply(s.Radius / pObj.Length())
	pObjError := pObj.Abs().Multiply(core.Gamma(5))

	var it interaction.Interaction
	it.P, it.PError = s.ObjectToWorld.PointWithAbsError(pObj, pObjError)
	it.N = n
	return it, 1 / s.Area()
}

// SampleRef samples the cone of directions subtended by the sphere when ref
// is outside it, and falls back to area sampling otherwise.
func (s *Sphere) SampleRef(ref *interaction.Interaction, u core.Vec2) (interaction.Interaction, float64) {
	pCenter := s.ObjectToWorld.Point(core.Vec3{})
	pOrigin := core.OffsetRayOrigin(ref.P, ref.PError, ref.N, pCenter.Subtract(ref.P))
	if pOrigin.DistanceSquared(pCenter) <= s.Radius*s.Radius {
		return sampleRefByArea(s, ref, u)
	}

	dc := ref.P.Distance(pCenter)
	sinThetaMax2 := s.Radius * s.Radius / (dc * dc)
	cosThetaMax := math.Sqrt(math.Max(0, 1-sinThetaMax2))
	wc := pCenter.Subtract(ref.P).Normalize()
	wcX, wcY := core.CoordinateSystem(wc)

	cosTheta := (1 - u.X) + u.X*cosThetaMax
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := u.Y * 2 * math.Pi

	// Angle alpha from the sphere center to the sampled point
	ds := dc*cosTheta - math.Sqrt(math.Max(0, s.Radius*s.Radius-dc*dc*sinTheta*sinTheta))
	cosAlpha := (dc*dc + s.Radius*s.Radius - ds*ds) / (2 * dc * s.Radius)
	sinAlpha := math.Sqrt(math.Max(0, 1-cosAlpha*cosAlpha))

	nWorld := wcX.Multiply(-sinAlpha * math.Cos(phi)).
		Add(wcY.Multiply(-sinAlpha * math.Sin(phi))).
		Add(wc.Multiply(-cosAlpha))
	pWorld := pCenter.Add(nWorld.Multiply(s.Radius))

	it := interaction.Interaction{
		P:      pWorld,
		PError: pWorld.Abs().Multiply(core.Gamma(5)),
		N:      nWorld,
		Time:   ref.Time,
	}
	if s.ReverseOrientation {
		it.N = it.N.Negate()
	}
	return it, core.UniformConePdf(cosThetaMax)
}

func (s *Sphere) Pdf(ref *interaction.Interaction, wi core.Vec3) float64 {
	pCenter := s.ObjectToWorld.Point(core.Vec3{})
	pOrigin := core.OffsetRayOrigin(ref.P, ref.PError, ref.N, pCenter.Subtract(ref.P))
	if pOrigin.DistanceSquared(pCenter) <= s.Radius*s.Radius {
		return pdfByIntersection(s, ref, wi)
	}
	sinThetaMax2 := s.Radius * s.Radius / ref.P.DistanceSquared(pCenter)
	cosThetaMax := math.Sqrt(math.Max(0, 1-sinThetaMax2))
	return core.UniformConePdf(cosThetaMax)
}
