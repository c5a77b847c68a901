package material

import (
	"math"

	"github.com/segfall/prism/pkg/core"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns the color at the given UV coordinates and 3D point.
	// UV may be nil when the source reported RequiresUV false.
	Evaluate(uv *core.Vec2, point core.Vec3) core.Vec3

	// RequiresUV reports whether Evaluate needs UV coordinates. Geometry
	// only computes UVs for materials that ask for them.
	RequiresUV() bool
}

// SolidColor provides a uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv *core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// RequiresUV returns false; solid colors ignore surface parametrization
func (s *SolidColor) RequiresUV() bool {
	return false
}

// CheckerTexture alternates two colors on a UV grid
type CheckerTexture struct {
	Even, Odd core.Vec3
	Scale     float64 // number of checker cells per unit UV
}

// NewCheckerTexture creates a UV checkerboard with the given cell scale
func NewCheckerTexture(even, odd core.Vec3, scale float64) *CheckerTexture {
	return &CheckerTexture{Even: even, Odd: odd, Scale: scale}
}

// Evaluate returns the checker color for the UV cell containing (u, v)
func (c *CheckerTexture) Evaluate(uv *core.Vec2, point core.Vec3) core.Vec3 {
	u := int(math.Floor(uv.X * c.Scale))
	v := int(math.Floor(uv.Y * c.Scale))
	if (u+v)%2 == 0 {
		return c.Even
	}
	return c.Odd
}

// RequiresUV returns true; the checker pattern lives in UV space
func (c *CheckerTexture) RequiresUV() bool {
	return true
}
