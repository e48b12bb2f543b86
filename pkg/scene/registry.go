package scene

import (
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-pbrt-renderer/pkg/geometry"
)

// Info describes a built-in scene
type Info struct {
	Name        string // identifier used on the command line
	DisplayName string
	Description string
	Build       func(bvh geometry.BVHConfig) *Scene
}

var registry = map[string]Info{}

func register(name, description string, build func(geometry.BVHConfig) *Scene) {
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("scene: %q registered twice", name))
	}
	registry[name] = Info{Name: name, DisplayName: titleCase(name), Description: description, Build: build}
}

func init() {
	register("default", "Sphere inside two tilted partial-sphere rings, point light", NewDefaultScene)
	register("spheregrid", "Grid of 400 small spheres under a gradient sky", NewSphereGridScene)
	register("cylinders", "Full and partial cylinders under a spherical area light and a spot light", NewCylinderScene)
	register("textures", "Checkerboard, gradient and image textures on spheres, cylinders and discs", NewTextureScene)
	register("glass", "Glass and mirror objects lit by a point light", NewGlassScene)
	register("cornell", "Box of triangle-mesh walls lit by a ceiling quad light", NewCornellScene)
	register("moving", "Animated spheres rendered with motion blur", NewMovingScene)
}

// List returns every built-in scene sorted by name
func List() []Info {
	infos := make([]Info, 0, len(registry))
	for _, info := range registry {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// Load builds the named scene
func Load(name string, bvh geometry.BVHConfig) (*Scene, error) {
	info, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(names(), ", "))
	}
	if err := bvh.Validate(); err != nil {
		return nil, err
	}
	logger.Infof("building scene %q with %s BVH", name, bvh.SplitMethod)
	return info.Build(bvh), nil
}

func names() []string {
	var out []string
	for _, info := range List() {
		out = append(out, info.Name)
	}
	return out
}

// titleCase turns an identifier like "sphere-grid" into "Sphere Grid"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
