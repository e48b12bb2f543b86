package scene

import (
	"github.com/df07/go-pbrt-renderer/pkg/camera"
	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/geometry"
	"github.com/df07/go-pbrt-renderer/pkg/material"
	"github.com/df07/go-pbrt-renderer/pkg/transform"
)

// NewCornellScene builds a 2x2x2 box open toward the camera, lit by a
// quad in the ceiling. Walls face inward.
func NewCornellScene(bvh geometry.BVHConfig) *Scene {
	cameraConfig := camera.DefaultCameraConfig()
	cameraConfig.LookFrom = core.NewVec3(0, 1, 3.9)
	cameraConfig.LookAt = core.NewVec3(0, 1, 0)
	cameraConfig.FOV = 40

	b := NewBuilder("cornell", cameraConfig)

	white := material.NewLambertian(core.NewRGB(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewRGB(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewRGB(0.12, 0.45, 0.15))

	x, y, z := core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), core.NewVec3(0, 0, 2)
	corner := core.NewVec3(-1, 0, -1)
	b.addQuad(corner, z, x, white)                  // floor
	b.addQuad(core.NewVec3(-1, 2, -1), x, z, white) // ceiling
	b.addQuad(corner, x, y, white)                  // back
	b.addQuad(corner, y, z, red)                    // left
	b.addQuad(core.NewVec3(1, 0, -1), z, y, green)  // right

	// Ceiling light, emitting downward
	for _, tri := range geometry.NewQuad(core.NewVec3(-0.25, 1.98, -0.25), core.NewVec3(0.5, 0, 0), core.NewVec3(0, 0, 0.5)) {
		b.AddAreaLight(tri, core.NewRGB(17, 12, 4), 2, false)
	}

	b.AddShape(geometry.NewSphere(transform.Translate(core.NewVec3(-0.45, 0.35, -0.4)), false, 0.35), material.NewMirror(core.NewRGB(0.9, 0.9, 0.9)))
	b.AddShape(geometry.NewSphere(transform.Translate(core.NewVec3(0.45, 0.35, 0.2)), false, 0.35), material.NewDielectric(1.5))

	return b.Build(bvh)
}

// addQuad adds both triangles of a parallelogram
func (b *Builder) addQuad(p, u, v core.Vec3, mat material.Material) {
	for _, tri := range geometry.NewQuad(p, u, v) {
		b.AddShape(tri, mat)
	}
}
