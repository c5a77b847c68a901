package renderer

import (
	"github.com/segfall/prism/pkg/core"
)

// SkyFunc evaluates the background radiance for a ray that hits nothing
type SkyFunc func(ray core.Ray) core.Vec3

// SolidSky returns the same color for every miss
func SolidSky(color core.Vec3) SkyFunc {
	return func(ray core.Ray) core.Vec3 {
		return color
	}
}

// GradientSky blends from bottom to top by the ray's vertical direction
func GradientSky(bottom, top core.Vec3) SkyFunc {
	return func(ray core.Ray) core.Vec3 {
		t := 0.5 * (ray.Direction.Normalize().Y + 1.0)
		return bottom.Multiply(1.0 - t).Add(top.Multiply(t))
	}
}

// BlackSky absorbs every miss; used for enclosed scenes lit by emitters
func BlackSky() SkyFunc {
	return func(ray core.Ray) core.Vec3 {
		return core.Vec3{}
	}
}
