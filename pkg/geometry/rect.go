package geometry

import (
	"math"

	"github.com/segfall/prism/pkg/core"
)

// Axis identifies the coordinate axis an AARect is perpendicular to
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Value returns the component of v along the axis
func (a Axis) Value(v core.Vec3) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

// Flatten projects v onto the plane perpendicular to the axis, returning the
// two remaining components in axis order.
func (a Axis) Flatten(v core.Vec3) core.Vec2 {
	switch a {
	case AxisX:
		return core.Vec2{X: v.Y, Y: v.Z}
	case AxisY:
		return core.Vec2{X: v.X, Y: v.Z}
	default:
		return core.Vec2{X: v.X, Y: v.Y}
	}
}

// Unit returns the unit vector along the axis
func (a Axis) Unit() core.Vec3 {
	switch a {
	case AxisX:
		return core.Vec3{X: 1}
	case AxisY:
		return core.Vec3{Y: 1}
	default:
		return core.Vec3{Z: 1}
	}
}

// AARect is a rectangle on the plane perpendicular to Axis at offset K,
// bounded by Min/Max on the two remaining axes.
type AARect struct {
	Min, Max core.Vec2
	K        float64
	Axis     Axis
	Material core.Material
}

// NewAARect creates an axis-aligned rectangle
func NewAARect(min, max core.Vec2, k float64, axis Axis, material core.Material) *AARect {
	return &AARect{Min: min, Max: max, K: k, Axis: axis, Material: material}
}

// intersectPlane solves the single-axis plane equation for t. A ray parallel
// to the plane yields an infinite t, rejected by the range check.
func (r *AARect) intersectPlane(ray core.Ray) (float64, core.Vec2, bool) {
	t := (r.K - r.Axis.Value(ray.Origin)) / r.Axis.Value(ray.Direction)
	if math.IsInf(t, 0) || math.IsNaN(t) || t < core.Epsilon {
		return 0, core.Vec2{}, false
	}

	flat := r.Axis.Flatten(ray.At(t))
	if flat.X <= r.Min.X || flat.X >= r.Max.X || flat.Y <= r.Min.Y || flat.Y >= r.Max.Y {
		return 0, core.Vec2{}, false
	}
	return t, flat, true
}

// Intersect tests the ray against the rectangle. The projected point must lie
// strictly inside the bounds on the two free axes.
func (r *AARect) Intersect(ray core.Ray) (*core.Hit, bool) {
	t, _, ok := r.intersectPlane(ray)
	if !ok {
		return nil, false
	}

	point := ray.At(t)
	normal := r.Axis.Unit()
	if r.Axis.Value(ray.Direction) > 0 {
		normal = normal.Negate()
	}

	return &core.Hit{
		T:        t,
		Point:    point.Add(normal.Multiply(core.Epsilon)),
		Normal:   normal,
		UV:       r.UV(point),
		Out:      true,
		Material: r.Material,
	}, true
}

// IntersectP reports whether the ray hits the rectangle
func (r *AARect) IntersectP(ray core.Ray) bool {
	_, _, ok := r.intersectPlane(ray)
	return ok
}

// UV maps a surface point to [0,1] rectangle coordinates when the material
// textures by UV.
func (r *AARect) UV(point core.Vec3) *core.Vec2 {
	if !r.Material.RequiresUV() {
		return nil
	}

	flat := r.Axis.Flatten(point)
	return &core.Vec2{
		X: (flat.X - r.Min.X) / (r.Max.X - r.Min.X),
		Y: (flat.Y - r.Min.Y) / (r.Max.Y - r.Min.Y),
	}
}

// BoundingBox returns a box padded by Epsilon along the fixed axis so it has
// non-zero extent on every axis.
func (r *AARect) BoundingBox() core.AABB {
	axisMin := r.Axis.Unit().Multiply(r.K - core.Epsilon)
	axisMax := r.Axis.Unit().Multiply(r.K + core.Epsilon)

	switch r.Axis {
	case AxisX:
		return core.NewAABB(
			core.NewVec3(axisMin.X, r.Min.X, r.Min.Y),
			core.NewVec3(axisMax.X, r.Max.X, r.Max.Y),
		)
	case AxisY:
		return core.NewAABB(
			core.NewVec3(r.Min.X, axisMin.Y, r.Min.Y),
			core.NewVec3(r.Max.X, axisMax.Y, r.Max.Y),
		)
	default:
		return core.NewAABB(
			core.NewVec3(r.Min.X, r.Min.Y, axisMin.Z),
			core.NewVec3(r.Max.X, r.Max.Y, axisMax.Z),
		)
	}
}
