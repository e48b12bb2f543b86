package scene

import (
	"github.com/df07/go-pbrt-renderer/pkg/camera"
	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/geometry"
	"github.com/df07/go-pbrt-renderer/pkg/interaction"
	"github.com/df07/go-pbrt-renderer/pkg/lights"
	"github.com/df07/go-pbrt-renderer/pkg/log"
)

var logger = log.New("scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Aggregate      geometry.Primitive
	Lights         []lights.Light // every light, infinite ones included
	InfiniteLights []lights.Light // lights reached by rays that escape the scene
	CameraConfig   camera.Config

	worldBound core.Bounds3
}

// New assembles a scene around an aggregate and preprocesses every light
// against the aggregate's bounds.
func New(name string, aggregate geometry.Primitive, sceneLights []lights.Light, cameraConfig camera.Config) *Scene {
	s := &Scene{
		Name:         name,
		Aggregate:    aggregate,
		Lights:       sceneLights,
		CameraConfig: cameraConfig,
		worldBound:   aggregate.WorldBound(),
	}
	for _, light := range sceneLights {
		light.Preprocess(s.worldBound)
		if light.Type()&lights.Infinite != 0 {
			s.InfiniteLights = append(s.InfiniteLights, light)
		}
	}
	logger.Debugf("scene %q: %d lights (%d infinite), bounds %v", name, len(s.Lights), len(s.InfiniteLights), s.worldBound)
	return s
}

// WorldBound returns the bounds of all geometry in the scene
func (s *Scene) WorldBound() core.Bounds3 {
	return s.worldBound
}

// Intersect finds the closest hit along ray and shrinks ray.TMax to it
func (s *Scene) Intersect(ray *core.Ray) (*interaction.SurfaceInteraction, bool) {
	if ray.Direction.IsZero() {
		panic("scene: intersect with zero direction")
	}
	return s.Aggregate.Intersect(ray)
}

// IntersectP reports whether anything blocks ray before ray.TMax
func (s *Scene) IntersectP(ray *core.Ray) bool {
	if ray.Direction.IsZero() {
		panic("scene: intersect with zero direction")
	}
	return s.Aggregate.IntersectP(ray)
}

// BVHStats reports the shape of the aggregate when it is a BVH
func (s *Scene) BVHStats() (geometry.BVHStats, bool) {
	if bvh, ok := s.Aggregate.(*geometry.BVHAccel); ok {
		return bvh.Stats(), true
	}
	return geometry.BVHStats{}, false
}
