package geometry

import (
	"github.com/segfall/prism/pkg/core"
)

// Triangle is a standalone triangle owning its three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3
	Material   core.Material
	normal     core.Vec3 // cached geometric normal
	bbox       core.AABB
}

// NewTriangle creates a triangle, precomputing its normal and bounding box
func NewTriangle(v0, v1, v2 core.Vec3, material core.Material) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2, Material: material}
	t.normal = v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	t.bbox = core.NewAABBFromPoints(v0, v1, v2)
	return t
}

// NewTriangleWithNormal creates a triangle with an explicit normal
func NewTriangleWithNormal(v0, v1, v2, normal core.Vec3, material core.Material) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2, Material: material, normal: normal.Normalize()}
	t.bbox = core.NewAABBFromPoints(v0, v1, v2)
	return t
}

// intersectTriangle runs the Moller-Trumbore solve for a ray against the
// triangle (p0, p1, p2), returning the distance and barycentric (u, v).
// Edge convention is exclusive everywhere: hits require u > 0, v > 0 and
// u+v < 1, so rays grazing a vertex or an edge miss. A near-zero determinant
// (ray parallel to the plane, or a degenerate triangle) is a miss, never a
// NaN propagated upward.
func intersectTriangle(p0, p1, p2 core.Vec3, ray core.Ray) (t, u, v float64, ok bool) {
	const degenerate = 1e-12

	edge1 := p1.Subtract(p0)
	edge2 := p2.Subtract(p0)

	h := ray.Direction.Cross(edge2)
	det := edge1.Dot(h)
	if det > -degenerate && det < degenerate {
		return 0, 0, 0, false
	}

	invDet := 1.0 / det
	s := ray.Origin.Subtract(p0)
	u = invDet * s.Dot(h)
	if u <= 0 || u >= 1 {
		return 0, 0, 0, false
	}

	q := s.Cross(edge1)
	v = invDet * ray.Direction.Dot(q)
	if v <= 0 || u+v >= 1 {
		return 0, 0, 0, false
	}

	t = invDet * edge2.Dot(q)
	if t < core.Epsilon {
		return 0, 0, 0, false
	}

	return t, u, v, true
}

// triangleHit assembles a Hit from a successful triangle solve
func triangleHit(ray core.Ray, t, u, v float64, normal core.Vec3, material core.Material) *core.Hit {
	out := true
	if normal.Dot(ray.Direction) > 0 {
		normal = normal.Negate()
		out = false
	}

	var uv *core.Vec2
	if material.RequiresUV() {
		uv = &core.Vec2{X: u, Y: v}
	}

	return &core.Hit{
		T:        t,
		Point:    ray.At(t).Add(normal.Multiply(core.Epsilon)),
		Normal:   normal,
		UV:       uv,
		Out:      out,
		Material: material,
	}
}

// Intersect tests the ray against the triangle
func (tr *Triangle) Intersect(ray core.Ray) (*core.Hit, bool) {
	t, u, v, ok := intersectTriangle(tr.V0, tr.V1, tr.V2, ray)
	if !ok {
		return nil, false
	}
	return triangleHit(ray, t, u, v, tr.normal, tr.Material), true
}

// IntersectP reports whether the ray hits the triangle
func (tr *Triangle) IntersectP(ray core.Ray) bool {
	_, _, _, ok := intersectTriangle(tr.V0, tr.V1, tr.V2, ray)
	return ok
}

// Normal returns the cached geometric normal
func (tr *Triangle) Normal() core.Vec3 {
	return tr.normal
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (tr *Triangle) BoundingBox() core.AABB {
	return tr.bbox
}
