package renderer

import (
	"math"
	"math/rand"

	"github.com/segfall/prism/pkg/core"
)

// Camera generates primary rays through a thin lens
type Camera struct {
	origin     core.Vec3
	lowerLeft  core.Vec3
	horizontal core.Vec3
	vertical   core.Vec3
	u, v       core.Vec3 // lens plane basis
	lensRadius float64
}

// NewCamera creates a camera looking from origin toward lookat. The vertical
// field of view is in degrees; the focal plane sits at focusDist so points on
// it stay sharp while aperture > 0 blurs everything else.
func NewCamera(origin, lookat, vup core.Vec3, vfovDeg, aspectRatio, aperture, focusDist float64) *Camera {
	viewportWidth := 2.0 * math.Tan(vfovDeg*math.Pi/180.0/2.0)
	viewportHeight := viewportWidth / aspectRatio

	w := origin.Subtract(lookat).Normalize()
	u := vup.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(viewportWidth * focusDist)
	vertical := v.Multiply(viewportHeight * focusDist)
	lowerLeft := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDist))

	return &Camera{
		origin:     origin,
		lowerLeft:  lowerLeft,
		horizontal: horizontal,
		vertical:   vertical,
		u:          u,
		v:          v,
		lensRadius: aperture / 2.0,
	}
}

// GetRay generates a ray through normalized image coordinates (s, t) in
// [0,1], s left to right and t bottom to top. With a nonzero aperture the
// origin is jittered on the lens disk, and every ray carries a random time
// stamp for motion blur.
func (c *Camera) GetRay(s, t float64, rng *rand.Rand) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(rng).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	direction := c.lowerLeft.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction, rng.Float64())
}
