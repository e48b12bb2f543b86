package interaction

import (
	"github.com/df07/go-pbrt-renderer/pkg/core"
)

// Interaction is a point where light scatters, either on a surface or at a
// light sample. N is zero for points that are not on a surface.
type Interaction struct {
	P      core.Vec3
	Time   float64
	PError core.Vec3
	Wo     core.Vec3
	N      core.Vec3
}

// NewInteraction creates an interaction at p with no surface normal
func NewInteraction(p core.Vec3, time float64) Interaction {
	return Interaction{P: p, Time: time}
}

// IsSurfaceInteraction reports whether the interaction carries a normal
func (it *Interaction) IsSurfaceInteraction() bool {
	return !it.N.IsZero()
}

// SpawnRay leaves the surface in direction d from an origin pushed past the
// point's error bounds.
func (it *Interaction) SpawnRay(d core.Vec3) core.Ray {
	o := core.OffsetRayOrigin(it.P, it.PError, it.N, d)
	return core.NewRayAt(o, d, it.Time)
}

// SpawnRayTo returns a ray toward p that stops just short of it
func (it *Interaction) SpawnRayTo(p core.Vec3) core.Ray {
	o := core.OffsetRayOrigin(it.P, it.PError, it.N, p.Subtract(it.P))
	d := p.Subtract(o)
	return core.Ray{Origin: o, Direction: d, TMax: 1 - core.ShadowEpsilon, Time: it.Time}
}

// SpawnRayToInteraction offsets both endpoints before connecting them
func (it *Interaction) SpawnRayToInteraction(other *Interaction) core.Ray {
	o := core.OffsetRayOrigin(it.P, it.PError, it.N, other.P.Subtract(it.P))
	target := core.OffsetRayOrigin(other.P, other.PError, other.N, o.Subtract(other.P))
	d := target.Subtract(o)
	return core.Ray{Origin: o, Direction: d, TMax: 1 - core.ShadowEpsilon, Time: it.Time}
}
