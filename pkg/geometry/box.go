package geometry

import (
	"github.com/segfall/prism/pkg/core"
)

// AABox is an axis-aligned box built from six AARects
type AABox struct {
	Rects    [6]AARect
	Min, Max core.Vec3
	Material core.Material
}

// NewAABox creates an axis-aligned box spanning min to max
func NewAABox(min, max core.Vec3, material core.Material) *AABox {
	box := &AABox{Min: min, Max: max, Material: material}

	box.Rects = [6]AARect{
		// X faces
		{Min: core.Vec2{X: min.Y, Y: min.Z}, Max: core.Vec2{X: max.Y, Y: max.Z}, K: min.X, Axis: AxisX, Material: material},
		{Min: core.Vec2{X: min.Y, Y: min.Z}, Max: core.Vec2{X: max.Y, Y: max.Z}, K: max.X, Axis: AxisX, Material: material},
		// Y faces
		{Min: core.Vec2{X: min.X, Y: min.Z}, Max: core.Vec2{X: max.X, Y: max.Z}, K: min.Y, Axis: AxisY, Material: material},
		{Min: core.Vec2{X: min.X, Y: min.Z}, Max: core.Vec2{X: max.X, Y: max.Z}, K: max.Y, Axis: AxisY, Material: material},
		// Z faces
		{Min: core.Vec2{X: min.X, Y: min.Y}, Max: core.Vec2{X: max.X, Y: max.Y}, K: min.Z, Axis: AxisZ, Material: material},
		{Min: core.Vec2{X: min.X, Y: min.Y}, Max: core.Vec2{X: max.X, Y: max.Y}, K: max.Z, Axis: AxisZ, Material: material},
	}

	return box
}

// Intersect dispatches to the six faces and keeps the nearest hit
func (b *AABox) Intersect(ray core.Ray) (*core.Hit, bool) {
	var closest *core.Hit
	for i := range b.Rects {
		if hit, ok := b.Rects[i].Intersect(ray); ok {
			if closest == nil || hit.T < closest.T {
				closest = hit
			}
		}
	}
	return closest, closest != nil
}

// IntersectP reports whether the ray hits any face
func (b *AABox) IntersectP(ray core.Ray) bool {
	for i := range b.Rects {
		if b.Rects[i].IntersectP(ray) {
			return true
		}
	}
	return false
}

// BoundingBox returns the axis-aligned bounding box for this box
func (b *AABox) BoundingBox() core.AABB {
	return core.NewAABB(b.Min, b.Max)
}
