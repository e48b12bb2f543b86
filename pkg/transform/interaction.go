package transform

import (
	"github.com/df07/go-pbrt-renderer/pkg/interaction"
)

// SurfaceInteraction maps a hit into the transform's target space. The
// point error grows by the transform's own rounding and the shading normal
// is kept on the side of the geometric normal.
func (t Transform) SurfaceInteraction(si *interaction.SurfaceInteraction) *interaction.SurfaceInteraction {
	ret := *si
	ret.P, ret.PError = t.PointWithAbsError(si.P, si.PError)
	ret.N = t.Normal(si.N).Normalize()
	ret.Wo = t.Vector(si.Wo).Normalize()
	ret.Dpdu = t.Vector(si.Dpdu)
	ret.Dpdv = t.Vector(si.Dpdv)
	ret.Dndu = t.Normal(si.Dndu)
	ret.Dndv = t.Normal(si.Dndv)
	ret.Shading = interaction.Shading{
		N:    t.Normal(si.Shading.N).Normalize().FaceForward(ret.N),
		Dpdu: t.Vector(si.Shading.Dpdu),
		Dpdv: t.Vector(si.Shading.Dpdv),
		Dndu: t.Normal(si.Shading.Dndu),
		Dndv: t.Normal(si.Shading.Dndv),
	}
	ret.Dpdx = t.Vector(si.Dpdx)
	ret.Dpdy = t.Vector(si.Dpdy)
	return &ret
}
