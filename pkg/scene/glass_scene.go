package scene

import (
	"github.com/df07/go-pbrt-renderer/pkg/camera"
	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/geometry"
	"github.com/df07/go-pbrt-renderer/pkg/lights"
	"github.com/df07/go-pbrt-renderer/pkg/material"
	"github.com/df07/go-pbrt-renderer/pkg/transform"
)

// NewGlassScene builds specular objects lit by a point light. Everything
// interesting here is reached through perfect reflection and refraction,
// which makes it a Whitted workload.
func NewGlassScene(bvh geometry.BVHConfig) *Scene {
	cameraConfig := camera.DefaultCameraConfig()
	cameraConfig.LookFrom = core.NewVec3(-3, 3, 5)
	cameraConfig.LookAt = core.NewVec3(0, 0.6, 0)
	cameraConfig.FOV = 35

	b := NewBuilder("glass", cameraConfig)

	ground := material.NewTexturedLambertian(material.NewCheckerboardTexture(40, 40,
		core.NewRGB(0.8, 0.8, 0.8),
		core.NewRGB(0.3, 0.3, 0.3),
	))

	b.AddShape(geometry.NewSphere(transform.Translate(core.NewVec3(0, 1, 0)), false, 1), material.NewDielectric(1.5))
	b.AddShape(geometry.NewSphere(transform.Translate(core.NewVec3(1.8, 0.5, -1)), false, 0.5), material.NewMirror(core.NewRGB(0.95, 0.95, 0.95)))
	b.AddShape(geometry.NewCylinder(transform.Translate(core.NewVec3(-1.7, 0, -0.8)).Mul(transform.RotateX(-90)), false, 0.4, 0, 1.2, 360),
		material.NewDielectric(1.33))

	b.AddGround(0, 40, ground)
	b.AddPointLight(core.NewVec3(0, 5, 9), core.NewRGB(139.8, 118.6, 105.4))
	b.AddLight(lights.NewUniformInfiniteLight(core.NewRGB(0.1, 0.1, 0.1), 1))

	return b.Build(bvh)
}
