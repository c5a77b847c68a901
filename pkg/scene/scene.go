package scene

import (
	"fmt"
	"sort"

	"github.com/segfall/prism/pkg/accel"
	"github.com/segfall/prism/pkg/core"
	"github.com/segfall/prism/pkg/geometry"
	"github.com/segfall/prism/pkg/renderer"
)

// CameraConfig holds everything but the aspect ratio, which depends on the
// output resolution chosen at render time
type CameraConfig struct {
	Origin        core.Vec3
	LookAt        core.Vec3
	Up            core.Vec3
	VFov          float64
	Aperture      float64
	FocusDistance float64
}

// Scene bundles the primitive list, camera parameters and sky function that
// the renderer consumes
type Scene struct {
	Name       string
	Primitives []geometry.Primitive
	Camera     CameraConfig
	Sky        renderer.SkyFunc
}

// BuildCamera instantiates the scene camera for the given aspect ratio
func (s *Scene) BuildCamera(aspectRatio float64) *renderer.Camera {
	return renderer.NewCamera(
		s.Camera.Origin, s.Camera.LookAt, s.Camera.Up,
		s.Camera.VFov, aspectRatio, s.Camera.Aperture, s.Camera.FocusDistance,
	)
}

// BuildBVH decomposes composite primitives and builds the acceleration
// structure over the flattened list
func (s *Scene) BuildBVH(split accel.SplitType) *accel.BVH {
	return accel.Build(geometry.Decompose(s.Primitives), split)
}

// Builder constructs a scene, possibly reading assets from disk
type Builder func() (*Scene, error)

var builders = map[string]Builder{
	"default": NewDefaultScene,
	"cornell": NewCornellScene,
}

// ByName looks up a registered scene builder
func ByName(name string) (Builder, error) {
	builder, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("scene: unknown scene %q (available: %v)", name, Names())
	}
	return builder, nil
}

// Names returns the registered scene names, sorted
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
