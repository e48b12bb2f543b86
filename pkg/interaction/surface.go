package interaction

import (
	"math"

	"github.com/df07/go-pbrt-renderer/pkg/bxdf"
	"github.com/df07/go-pbrt-renderer/pkg/core"
)

// AreaLight is the emission side of a light attached to a surface
type AreaLight interface {
	L(it *Interaction, w core.Vec3) core.Spectrum
}

// Primitive is the part of a scene primitive a surface hit refers back to
type Primitive interface {
	AreaLight() AreaLight
	ComputeScatteringFunctions(si *SurfaceInteraction, mode bxdf.TransportMode, allowMultipleLobes bool)
}

// Shading holds the possibly perturbed frame used for shading
type Shading struct {
	N, Dpdu, Dpdv, Dndu, Dndv core.Vec3
}

// SurfaceInteraction is a ray hit on a shape, with the local differential
// geometry of the surface and, once computed, its BSDF.
type SurfaceInteraction struct {
	Interaction
	UV                     core.Vec2
	Dpdu, Dpdv             core.Vec3
	Dndu, Dndv             core.Vec3
	Shading                Shading
	Dpdx, Dpdy             core.Vec3
	Dudx, Dvdx, Dudy, Dvdy float64
	BSDF                   *bxdf.BSDF
	Primitive              Primitive

	flipNormal bool
}

// NewSurfaceInteraction builds the geometric frame from dp/du and dp/dv.
// flipNormal is set when the shape's orientation is reversed or its
// transform swaps handedness.
func NewSurfaceInteraction(p, pError core.Vec3, uv core.Vec2, wo, dpdu, dpdv, dndu, dndv core.Vec3, time float64, flipNormal bool) *SurfaceInteraction {
	n := dpdu.Cross(dpdv).Normalize()
	if flipNormal {
		n = n.Negate()
	}
	return &SurfaceInteraction{
		Interaction: Interaction{P: p, Time: time, PError: pError, Wo: wo, N: n},
		UV:          uv,
		Dpdu:        dpdu,
		Dpdv:        dpdv,
		Dndu:        dndu,
		Dndv:        dndv,
		Shading:     Shading{N: n, Dpdu: dpdu, Dpdv: dpdv, Dndu: dndu, Dndv: dndv},
		flipNormal:  flipNormal,
	}
}

// FlipNormal reports whether the geometric normal was reversed at construction
func (si *SurfaceInteraction) FlipNormal() bool {
	return si.flipNormal
}

// SetShadingGeometry installs a shading frame. When orientationIsAuthoritative
// the geometric normal is flipped to agree with the shading normal, otherwise
// the shading normal is flipped to agree with the geometric one.
func (si *SurfaceInteraction) SetShadingGeometry(dpdus, dpdvs, dndus, dndvs core.Vec3, orientationIsAuthoritative bool) {
	ns := dpdus.Cross(dpdvs).Normalize()
	if si.flipNormal {
		ns = ns.Negate()
	}
	if orientationIsAuthoritative {
		si.N = si.N.FaceForward(ns)
	} else {
		ns = ns.FaceForward(si.N)
	}
	si.Shading = Shading{N: ns, Dpdu: dpdus, Dpdv: dpdvs, Dndu: dndus, Dndv: dndvs}
}

// ComputeDifferentials estimates the screen-space derivatives of p and uv
// by intersecting the offset rays with the tangent plane at the hit.
func (si *SurfaceInteraction) ComputeDifferentials(ray *core.RayDifferential) {
	if !ray.HasDifferentials || !si.computeDifferentials(ray) {
		si.Dudx, si.Dvdx, si.Dudy, si.Dvdy = 0, 0, 0, 0
		si.Dpdx, si.Dpdy = core.Vec3{}, core.Vec3{}
	}
}

func (si *SurfaceInteraction) computeDifferentials(ray *core.RayDifferential) bool {
	n := si.N
	d := n.Dot(si.P)
	tx := -(n.Dot(ray.RxOrigin) - d) / n.Dot(ray.RxDirection)
	ty := -(n.Dot(ray.RyOrigin) - d) / n.Dot(ray.RyDirection)
	if math.IsInf(tx, 0) || math.IsNaN(tx) || math.IsInf(ty, 0) || math.IsNaN(ty) {
		return false
	}
	px := ray.RxOrigin.Add(ray.RxDirection.Multiply(tx))
	py := ray.RyOrigin.Add(ray.RyDirection.Multiply(ty))
	si.Dpdx = px.Subtract(si.P)
	si.Dpdy = py.Subtract(si.P)

	// Project onto the two axes where the normal is smallest
	var dim [2]int
	switch {
	case math.Abs(n.X) > math.Abs(n.Y) && math.Abs(n.X) > math.Abs(n.Z):
		dim = [2]int{1, 2}
	case math.Abs(n.Y) > math.Abs(n.Z):
		dim = [2]int{0, 2}
	default:
		dim = [2]int{0, 1}
	}

	a := [2][2]float64{
		{si.Dpdu.Get(dim[0]), si.Dpdv.Get(dim[0])},
		{si.Dpdu.Get(dim[1]), si.Dpdv.Get(dim[1])},
	}
	bx := [2]float64{px.Get(dim[0]) - si.P.Get(dim[0]), px.Get(dim[1]) - si.P.Get(dim[1])}
	by := [2]float64{py.Get(dim[0]) - si.P.Get(dim[0]), py.Get(dim[1]) - si.P.Get(dim[1])}

	var ok bool
	if si.Dudx, si.Dvdx, ok = core.SolveLinearSystem2x2(a, bx); !ok {
		si.Dudx, si.Dvdx = 0, 0
	}
	if si.Dudy, si.Dvdy, ok = core.SolveLinearSystem2x2(a, by); !ok {
		si.Dudy, si.Dvdy = 0, 0
	}
	return true
}

// ComputeScatteringFunctions fills in the BSDF from the hit primitive's material
func (si *SurfaceInteraction) ComputeScatteringFunctions(ray *core.RayDifferential, mode bxdf.TransportMode, allowMultipleLobes bool) {
	si.ComputeDifferentials(ray)
	if si.Primitive != nil {
		si.Primitive.ComputeScatteringFunctions(si, mode, allowMultipleLobes)
	}
}

// Le is the radiance emitted from the surface toward w, if it is an area light
func (si *SurfaceInteraction) Le(w core.Vec3) core.Spectrum {
	if si.Primitive == nil {
		return core.Black
	}
	area := si.Primitive.AreaLight()
	if area == nil {
		return core.Black
	}
	return area.L(&si.Interaction, w)
}
