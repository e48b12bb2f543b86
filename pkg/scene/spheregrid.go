package scene

import (
	"math"

	"github.com/df07/go-pbrt-renderer/pkg/camera"
	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/geometry"
	"github.com/df07/go-pbrt-renderer/pkg/lights"
	"github.com/df07/go-pbrt-renderer/pkg/material"
	"github.com/df07/go-pbrt-renderer/pkg/transform"
)

// sphereGridSize is the number of spheres along each side of the grid
const sphereGridSize = 20

// NewSphereGridScene builds a grid of small spheres on a ground disc under a
// gradient sky. The many small primitives make it a good BVH workload.
func NewSphereGridScene(bvh geometry.BVHConfig) *Scene {
	cameraConfig := camera.DefaultCameraConfig()
	cameraConfig.LookFrom = core.NewVec3(-0.5, 6, 12)
	cameraConfig.LookAt = core.NewVec3(4.5, 0, 4.5)
	cameraConfig.FOV = 40

	b := NewBuilder("spheregrid", cameraConfig)

	b.AddGround(0, 100, material.NewLambertian(core.NewRGB(0.5, 0.5, 0.5)))
	b.AddSphereLight(core.NewVec3(20, 25, 20), 8, core.NewRGB(12, 11.5, 10), 4)
	b.AddLight(lights.NewGradientInfiniteLight(core.NewRGB(0.5, 0.7, 1.0), core.NewRGB(1, 1, 1), 4))

	// Fit the grid into a fixed 9x9 footprint
	targetArea := 9.0
	spacing := targetArea / float64(sphereGridSize-1)
	radius := max(0.02, min(0.35, spacing*0.35))

	for i := 0; i < sphereGridSize; i++ {
		for j := 0; j < sphereGridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5
			center := core.NewVec3(x, radius, z)

			hue := float64(i) / float64(sphereGridSize-1) * 360.0
			chroma := 0.05 + float64(j)/float64(sphereGridSize-1)*0.2
			lightness := 0.65 + 0.1*math.Sin(float64(i+j)*0.5)
			color := oklchToRGB(lightness, chroma, hue)

			var mat material.Material
			if (i+j)%3 == 0 {
				mat = material.NewMirror(color)
			} else {
				mat = material.NewLambertian(color)
			}
			b.AddShape(geometry.NewSphere(transform.Translate(center), false, radius), mat)
		}
	}

	return b.Build(bvh)
}

// oklchToRGB converts an OKLCH color (hue in degrees) to linear RGB
func oklchToRGB(l, c, h float64) core.Spectrum {
	hRad := h * math.Pi / 180.0
	a := c * math.Cos(hRad)
	bb := c * math.Sin(hRad)

	l_ := l + 0.3963377774*a + 0.2158037573*bb
	m_ := l - 0.1055613458*a - 0.0638541728*bb
	s_ := l - 0.0894841775*a - 1.2914855480*bb

	lc, mc, sc := l_*l_*l_, m_*m_*m_, s_*s_*s_

	r := +4.0767416621*lc - 3.3077115913*mc + 0.2309699292*sc
	g := -1.2684380046*lc + 2.6097574011*mc - 0.3413193965*sc
	blue := -0.0041960863*lc - 0.7034186147*mc + 1.7076147010*sc

	return core.NewRGB(core.Clamp(r, 0, 1), core.Clamp(g, 0, 1), core.Clamp(blue, 0, 1))
}
