package scene

import (
	"github.com/df07/go-pbrt-renderer/pkg/camera"
	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/geometry"
	"github.com/df07/go-pbrt-renderer/pkg/lights"
	"github.com/df07/go-pbrt-renderer/pkg/material"
	"github.com/df07/go-pbrt-renderer/pkg/transform"
)

// Builder collects primitives and lights before the aggregate is built
type Builder struct {
	name         string
	cameraConfig camera.Config
	primitives   []geometry.Primitive
	lights       []lights.Light
}

// NewBuilder starts an empty scene
func NewBuilder(name string, cameraConfig camera.Config) *Builder {
	return &Builder{name: name, cameraConfig: cameraConfig}
}

// AddShape adds a shape with a material and returns its primitive
func (b *Builder) AddShape(shape geometry.Shape, mat material.Material) *geometry.GeometricPrimitive {
	p := geometry.NewGeometricPrimitive(shape, mat, nil)
	b.primitives = append(b.primitives, p)
	return p
}

// AddPrimitive adds an already constructed primitive
func (b *Builder) AddPrimitive(p geometry.Primitive) {
	b.primitives = append(b.primitives, p)
}

// AddLight adds a light that has no geometry
func (b *Builder) AddLight(light lights.Light) {
	b.lights = append(b.lights, light)
}

// AddPointLight adds an isotropic point light at pos
func (b *Builder) AddPointLight(pos core.Vec3, intensity core.Spectrum) *lights.PointLight {
	light := lights.NewPointLight(transform.Translate(pos), intensity)
	b.lights = append(b.lights, light)
	return light
}

// AddSpotLight adds a spot light at from aimed at to
func (b *Builder) AddSpotLight(from, to core.Vec3, intensity core.Spectrum, coneAngle, coneDelta float64) *lights.SpotLight {
	light := lights.NewSpotLight(from, to, intensity, coneAngle, coneDelta)
	b.lights = append(b.lights, light)
	return light
}

// AddAreaLight makes shape an emitter. The emitting surface is black matte
// so it still occludes shadow rays.
func (b *Builder) AddAreaLight(shape geometry.Shape, emission core.Spectrum, nSamples int, twoSided bool) *lights.DiffuseAreaLight {
	light := lights.NewDiffuseAreaLight(emission, nSamples, shape, twoSided)
	b.primitives = append(b.primitives, geometry.NewGeometricPrimitive(shape, material.NewLambertian(core.Black), light))
	b.lights = append(b.lights, light)
	return light
}

// AddSphereLight adds a spherical area light
func (b *Builder) AddSphereLight(center core.Vec3, radius float64, emission core.Spectrum, nSamples int) *lights.DiffuseAreaLight {
	return b.AddAreaLight(geometry.NewSphere(transform.Translate(center), false, radius), emission, nSamples, false)
}

// AddGround adds a horizontal disc of the given radius facing +y at height y
func (b *Builder) AddGround(y, radius float64, mat material.Material) {
	toWorld := transform.Translate(core.NewVec3(0, y, 0)).Mul(transform.RotateX(-90))
	b.AddShape(geometry.NewDisc(toWorld, false, 0, radius, 0, 360), mat)
}

// Build constructs the BVH over everything added so far
func (b *Builder) Build(config geometry.BVHConfig) *Scene {
	return New(b.name, config.Build(b.primitives), b.lights, b.cameraConfig)
}
