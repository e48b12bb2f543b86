package camera

import (
	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/film"
	"github.com/df07/go-pbrt-renderer/pkg/sampler"
	"github.com/df07/go-pbrt-renderer/pkg/transform"
)

// Camera turns film samples into world-space rays
type Camera interface {
	// GenerateRayDifferential returns the ray for sample along with rays
	// offset by one pixel in x and y, and a weight for its radiance
	GenerateRayDifferential(sample sampler.CameraSample) (float64, core.RayDifferential)
	Film() *film.Film
}

// Config places a camera in the scene
type Config struct {
	LookFrom      core.Vec3
	LookAt        core.Vec3
	Up            core.Vec3
	FOV           float64 // field of view of the shorter image axis, in degrees
	LensRadius    float64 // zero for a pinhole
	FocalDistance float64
	ShutterOpen   float64
	ShutterClose  float64
}

// DefaultCameraConfig looks down -z from (0,0,5)
func DefaultCameraConfig() Config {
	return Config{
		LookFrom:      core.NewVec3(0, 0, 5),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		FOV:           45,
		FocalDistance: 1e6,
		ShutterOpen:   0,
		ShutterClose:  1,
	}
}

// CameraToWorld builds the static camera placement for the config
func (c Config) CameraToWorld() (*transform.AnimatedTransform, error) {
	worldToCamera, err := transform.LookAt(c.LookFrom, c.LookAt, c.Up)
	if err != nil {
		return nil, err
	}
	return transform.NewStaticTransform(worldToCamera.Inverse()), nil
}

// DefaultScreenWindow spans [-1,1] on the shorter axis of the film
func DefaultScreenWindow(f *film.Film) core.Bounds2f {
	aspect := float64(f.FullResolution.X) / float64(f.FullResolution.Y)
	if aspect > 1 {
		return core.NewBounds2f(core.NewVec2(-aspect, -1), core.NewVec2(aspect, 1))
	}
	return core.NewBounds2f(core.NewVec2(-1, -1/aspect), core.NewVec2(1, 1/aspect))
}

// projective holds the raster, screen and camera space mappings shared by
// perspective and orthographic cameras
type projective struct {
	cameraToWorld *transform.AnimatedTransform
	film          *film.Film
	shutterOpen   float64
	shutterClose  float64

	cameraToScreen transform.Transform
	rasterToCamera transform.Transform
	lensRadius     float64
	focalDistance  float64
}

func newProjective(cameraToWorld *transform.AnimatedTransform, cameraToScreen transform.Transform, screenWindow core.Bounds2f,
	shutterOpen, shutterClose, lensRadius, focalDistance float64, f *film.Film) projective {
	res := f.FullResolution
	screenToRaster := transform.Scale(float64(res.X), float64(res.Y), 1).
		Mul(transform.Scale(
			1/(screenWindow.Max.X-screenWindow.Min.X),
			1/(screenWindow.Min.Y-screenWindow.Max.Y), 1)).
		Mul(transform.Translate(core.NewVec3(-screenWindow.Min.X, -screenWindow.Max.Y, 0)))
	rasterToScreen := screenToRaster.Inverse()

	return projective{
		cameraToWorld:  cameraToWorld,
		film:           f,
		shutterOpen:    shutterOpen,
		shutterClose:   shutterClose,
		cameraToScreen: cameraToScreen,
		rasterToCamera: cameraToScreen.Inverse().Mul(rasterToScreen),
		lensRadius:     lensRadius,
		focalDistance:  focalDistance,
	}
}

func (p *projective) Film() *film.Film { return p.film }

func (p *projective) time(sample sampler.CameraSample) float64 {
	return core.Lerp(sample.Time, p.shutterOpen, p.shutterClose)
}

// focus moves a camera-space ray onto the lens and bends it through the
// point it would have hit on the plane of focus
func (p *projective) focus(origin, dir core.Vec3, pLens core.Vec2) (core.Vec3, core.Vec3) {
	ft := p.focalDistance / dir.Z
	pFocus := origin.Add(dir.Multiply(ft))
	o := origin.Add(core.NewVec3(pLens.X, pLens.Y, 0))
	return o, pFocus.Subtract(o).Normalize()
}

func (p *projective) lensPoint(sample sampler.CameraSample) core.Vec2 {
	d := core.ConcentricSampleDisk(sample.PLens)
	return core.NewVec2(p.lensRadius*d.X, p.lensRadius*d.Y)
}

// PerspectiveCamera projects through a single point, optionally with a thin lens
type PerspectiveCamera struct {
	projective
	dxCamera, dyCamera core.Vec3
}

// NewPerspectiveCamera creates a perspective camera. fov applies to the
// shorter axis of the screen window.
func NewPerspectiveCamera(cameraToWorld *transform.AnimatedTransform, screenWindow core.Bounds2f,
	shutterOpen, shutterClose, lensRadius, focalDistance, fov float64, f *film.Film) *PerspectiveCamera {
	c := &PerspectiveCamera{
		projective: newProjective(cameraToWorld, transform.Perspective(fov, 1e-2, 1000), screenWindow,
			shutterOpen, shutterClose, lensRadius, focalDistance, f),
	}
	origin := c.rasterToCamera.Point(core.Vec3{})
	c.dxCamera = c.rasterToCamera.Point(core.NewVec3(1, 0, 0)).Subtract(origin)
	c.dyCamera = c.rasterToCamera.Point(core.NewVec3(0, 1, 0)).Subtract(origin)
	return c
}

// NewPerspectiveFromConfig builds a perspective camera for config over f
func NewPerspectiveFromConfig(config Config, f *film.Film) (*PerspectiveCamera, error) {
	cameraToWorld, err := config.CameraToWorld()
	if err != nil {
		return nil, err
	}
	return NewPerspectiveCamera(cameraToWorld, DefaultScreenWindow(f), config.ShutterOpen, config.ShutterClose,
		config.LensRadius, config.FocalDistance, config.FOV, f), nil
}

func (c *PerspectiveCamera) GenerateRayDifferential(sample sampler.CameraSample) (float64, core.RayDifferential) {
	pCamera := c.rasterToCamera.Point(core.NewVec3(sample.PFilm.X, sample.PFilm.Y, 0))
	dir := pCamera.Normalize()
	origin := core.Vec3{}

	var pLens core.Vec2
	if c.lensRadius > 0 {
		pLens = c.lensPoint(sample)
		origin, dir = c.focus(core.Vec3{}, dir, pLens)
	}
	ray := core.NewRayDifferential(core.NewRayAt(origin, dir, c.time(sample)))

	if c.lensRadius > 0 {
		ray.RxOrigin, ray.RxDirection = c.focus(core.Vec3{}, pCamera.Add(c.dxCamera).Normalize(), pLens)
		ray.RyOrigin, ray.RyDirection = c.focus(core.Vec3{}, pCamera.Add(c.dyCamera).Normalize(), pLens)
	} else {
		ray.RxOrigin, ray.RyOrigin = origin, origin
		ray.RxDirection = pCamera.Add(c.dxCamera).Normalize()
		ray.RyDirection = pCamera.Add(c.dyCamera).Normalize()
	}
	ray.HasDifferentials = true
	return 1, c.cameraToWorld.RayDifferential(ray)
}

// OrthographicCamera projects along parallel rays
type OrthographicCamera struct {
	projective
	dxCamera, dyCamera core.Vec3
}

// NewOrthographicCamera creates an orthographic camera. The screen window
// is measured in camera-space units.
func NewOrthographicCamera(cameraToWorld *transform.AnimatedTransform, screenWindow core.Bounds2f,
	shutterOpen, shutterClose, lensRadius, focalDistance float64, f *film.Film) *OrthographicCamera {
	c := &OrthographicCamera{
		projective: newProjective(cameraToWorld, transform.Orthographic(0, 1), screenWindow,
			shutterOpen, shutterClose, lensRadius, focalDistance, f),
	}
	c.dxCamera = c.rasterToCamera.Vector(core.NewVec3(1, 0, 0))
	c.dyCamera = c.rasterToCamera.Vector(core.NewVec3(0, 1, 0))
	return c
}

func (c *OrthographicCamera) GenerateRayDifferential(sample sampler.CameraSample) (float64, core.RayDifferential) {
	pCamera := c.rasterToCamera.Point(core.NewVec3(sample.PFilm.X, sample.PFilm.Y, 0))
	forward := core.NewVec3(0, 0, 1)
	origin, dir := pCamera, forward

	var pLens core.Vec2
	if c.lensRadius > 0 {
		pLens = c.lensPoint(sample)
		origin, dir = c.focus(pCamera, forward, pLens)
	}
	ray := core.NewRayDifferential(core.NewRayAt(origin, dir, c.time(sample)))

	if c.lensRadius > 0 {
		ray.RxOrigin, ray.RxDirection = c.focus(pCamera.Add(c.dxCamera), forward, pLens)
		ray.RyOrigin, ray.RyDirection = c.focus(pCamera.Add(c.dyCamera), forward, pLens)
	} else {
		ray.RxOrigin = origin.Add(c.dxCamera)
		ray.RyOrigin = origin.Add(c.dyCamera)
		ray.RxDirection, ray.RyDirection = dir, dir
	}
	ray.HasDifferentials = true
	return 1, c.cameraToWorld.RayDifferential(ray)
}
