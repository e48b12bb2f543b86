package scene

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/df07/go-pbrt-renderer/pkg/camera"
	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/geometry"
	"github.com/df07/go-pbrt-renderer/pkg/lights"
	"github.com/df07/go-pbrt-renderer/pkg/material"
	"github.com/df07/go-pbrt-renderer/pkg/transform"
)

//go:embed assets/uvgrid.png
var uvGridPNG []byte

// uvGridTexture decodes the embedded 64x32 latitude-longitude test grid
func uvGridTexture() *material.ImageTexture {
	tex, err := material.DecodeImageTexture(bytes.NewReader(uvGridPNG))
	if err != nil {
		panic(fmt.Sprintf("scene: embedded uv grid: %v", err))
	}
	return tex
}

// NewTextureScene lines up procedural and image-textured shapes to show their (u,v) parameterizations
func NewTextureScene(bvh geometry.BVHConfig) *Scene {
	cameraConfig := camera.DefaultCameraConfig()
	cameraConfig.LookFrom = core.NewVec3(0, 2, 8)
	cameraConfig.LookAt = core.NewVec3(0, 1, 0)
	cameraConfig.FOV = 40

	b := NewBuilder("textures", cameraConfig)

	checkerboard := material.NewCheckerboardTexture(16, 8,
		core.NewRGB(0.9, 0.9, 0.9),
		core.NewRGB(0.2, 0.2, 0.8),
	)
	gradient := material.NewGradientTexture(64, 64,
		core.NewRGB(1.0, 0.2, 0.2),
		core.NewRGB(0.2, 1.0, 0.2),
	)
	brick := material.NewCheckerboardTexture(32, 32,
		core.NewRGB(0.7, 0.3, 0.1),
		core.NewRGB(0.5, 0.2, 0.05),
	)

	upright := transform.RotateX(-90)

	b.AddShape(geometry.NewSphere(transform.Translate(core.NewVec3(-2.5, 1, 0)), false, 1.0),
		material.NewTexturedLambertian(checkerboard))
	b.AddShape(geometry.NewCylinder(transform.Translate(core.NewVec3(0, 0, 0)).Mul(upright), false, 0.7, 0, 2, 360),
		material.NewTexturedLambertian(gradient))
	b.AddShape(geometry.NewDisc(transform.Translate(core.NewVec3(2.5, 1.1, 0)), false, 0, 0.9, 0.3, 360),
		material.NewTexturedLambertian(checkerboard))
	b.AddShape(geometry.NewSphere(transform.Translate(core.NewVec3(0, 0.6, 2)).Mul(upright), false, 0.6),
		material.NewTexturedLambertian(uvGridTexture()))

	b.AddGround(0, 30, material.NewTexturedLambertian(brick))
	b.AddSphereLight(core.NewVec3(0, 8, 5), 2, core.NewRGB(6, 6, 6), 4)
	b.AddLight(lights.NewGradientInfiniteLight(core.NewRGB(0.3, 0.4, 0.6), core.NewRGB(0.2, 0.2, 0.2), 1))

	return b.Build(bvh)
}
