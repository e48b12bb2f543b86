package scene

import (
	"github.com/df07/go-pbrt-renderer/pkg/camera"
	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/geometry"
	"github.com/df07/go-pbrt-renderer/pkg/material"
	"github.com/df07/go-pbrt-renderer/pkg/transform"
)

// NewMovingScene builds spheres that translate and spin while the shutter is
// open, so each renders with motion blur
func NewMovingScene(bvh geometry.BVHConfig) *Scene {
	cameraConfig := camera.DefaultCameraConfig()
	cameraConfig.LookFrom = core.NewVec3(0, 1.5, 6)
	cameraConfig.LookAt = core.NewVec3(0, 0.5, 0)
	cameraConfig.FOV = 40

	b := NewBuilder("moving", cameraConfig)

	checker := material.NewTexturedLambertian(material.NewCheckerboardTexture(16, 8,
		core.NewRGB(0.9, 0.9, 0.2),
		core.NewRGB(0.1, 0.1, 0.1),
	))
	unit := geometry.NewGeometricPrimitive(geometry.NewSphere(transform.Identity(), false, 0.5), checker, nil)

	// Slides right by one unit over the shutter interval
	slide := transform.NewAnimatedTransform(
		transform.Translate(core.NewVec3(-1.5, 0.5, 0)), cameraConfig.ShutterOpen,
		transform.Translate(core.NewVec3(-0.5, 0.5, 0)), cameraConfig.ShutterClose)
	b.AddPrimitive(geometry.NewTransformedPrimitive(unit, slide))

	// Spins in place about its vertical axis
	spin := transform.NewAnimatedTransform(
		transform.Translate(core.NewVec3(1.2, 0.5, 0)), cameraConfig.ShutterOpen,
		transform.Translate(core.NewVec3(1.2, 0.5, 0)).Mul(transform.RotateY(90)), cameraConfig.ShutterClose)
	b.AddPrimitive(geometry.NewTransformedPrimitive(unit, spin))

	b.AddShape(geometry.NewSphere(transform.Translate(core.NewVec3(0.3, 0.3, 1.2)), false, 0.3),
		material.NewLambertian(core.NewRGB(0.2, 0.6, 0.3)))

	b.AddGround(0, 40, material.NewLambertian(core.NewRGB(0.5, 0.5, 0.5)))
	b.AddSphereLight(core.NewVec3(-2, 5, 4), 1, core.NewRGB(15, 15, 14), 4)

	return b.Build(bvh)
}
