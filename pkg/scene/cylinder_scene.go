package scene

import (
	"github.com/df07/go-pbrt-renderer/pkg/camera"
	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/geometry"
	"github.com/df07/go-pbrt-renderer/pkg/lights"
	"github.com/df07/go-pbrt-renderer/pkg/material"
	"github.com/df07/go-pbrt-renderer/pkg/transform"
)

// NewCylinderScene builds upright, lying and partial cylinders under a
// spherical area light and a spot light
func NewCylinderScene(bvh geometry.BVHConfig) *Scene {
	cameraConfig := camera.DefaultCameraConfig()
	cameraConfig.LookFrom = core.NewVec3(0, 1.5, 5)
	cameraConfig.LookAt = core.NewVec3(0, 0.8, 0)
	cameraConfig.FOV = 45

	b := NewBuilder("cylinders", cameraConfig)

	gray := material.NewLambertian(core.NewRGB(0.5, 0.5, 0.5))
	red := material.NewLambertian(core.NewRGB(0.8, 0.2, 0.2))
	blue := material.NewLambertian(core.NewRGB(0.2, 0.2, 0.8))
	glass := material.NewDielectric(1.5)

	// Cylinders are built along +z, so rotate -90 about x to stand them up
	upright := transform.RotateX(-90)

	b.AddShape(geometry.NewCylinder(transform.Translate(core.NewVec3(1.6, 0, 0)).Mul(upright), false, 0.5, 0, 2, 360), red)
	b.AddShape(geometry.NewCylinder(transform.Translate(core.NewVec3(-1.6, 0.3, 0)).Mul(transform.RotateY(90)), false, 0.3, -0.8, 0.8, 360), blue)
	b.AddShape(geometry.NewCylinder(transform.Translate(core.NewVec3(0, 0, -0.5)).Mul(upright), false, 0.6, 0, 1.5, 270), material.NewCopper())
	b.AddShape(geometry.NewSphere(transform.Translate(core.NewVec3(0.3, 0.35, 1.2)), false, 0.35), glass)
	// Open translucent shade
	shade := material.NewTranslucent(core.NewRGB(0.3, 0.28, 0.25), core.NewRGB(0.5, 0.45, 0.35))
	b.AddShape(geometry.NewCylinder(transform.Translate(core.NewVec3(-0.9, 0, 1)).Mul(upright), false, 0.3, 0, 0.8, 360), shade)

	b.AddGround(0, 50, gray)
	b.AddSphereLight(core.NewVec3(-3, 6, 4), 1.5, core.NewRGB(10, 10, 9), 4)
	b.AddSpotLight(core.NewVec3(0, 4, 1), core.NewVec3(0, 0, -0.5), core.NewRGB(12, 11, 9), 25, 8)
	b.AddLight(lights.NewUniformInfiniteLight(core.NewRGB(0.05, 0.05, 0.06), 1))

	return b.Build(bvh)
}
