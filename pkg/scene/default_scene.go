package scene

import (
	"github.com/df07/go-pbrt-renderer/pkg/camera"
	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/geometry"
	"github.com/df07/go-pbrt-renderer/pkg/material"
	"github.com/df07/go-pbrt-renderer/pkg/transform"
)

// NewDefaultScene builds a sphere inside two tilted rings, lit by a point light
func NewDefaultScene(bvh geometry.BVHConfig) *Scene {
	cameraConfig := camera.DefaultCameraConfig()
	cameraConfig.LookFrom = core.NewVec3(0, 0.5, 4)
	cameraConfig.FOV = 40

	b := NewBuilder("default", cameraConfig)

	red := material.NewLambertian(core.NewRGB(0.65, 0.25, 0.2))
	gold := material.NewGold()
	silver := material.NewMirror(core.NewRGB(0.9, 0.9, 0.9))
	gray := material.NewLambertian(core.NewRGB(0.5, 0.5, 0.5))

	// A full sphere with two thin bands of larger spheres around it
	b.AddShape(geometry.NewSphere(transform.Identity(), false, 0.5), red)
	b.AddShape(geometry.NewPartialSphere(transform.RotateX(60), false, 1.0, -0.05, 0.05, 360), gold)
	b.AddShape(geometry.NewPartialSphere(transform.RotateX(100), false, 0.8, -0.05, 0.05, 360), silver)

	b.AddGround(-1.2, 50, gray)
	b.AddPointLight(core.NewVec3(2, 4, 3), core.NewRGB(40, 38, 35))

	return b.Build(bvh)
}
