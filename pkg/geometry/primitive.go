package geometry

import (
	"fmt"

	"github.com/segfall/prism/pkg/core"
)

// Kind tags the closed set of primitive variants
type Kind uint8

const (
	KindNone Kind = iota
	KindSphere
	KindAARect
	KindAABox
	KindTriangle
	KindMeshTriangle
	KindTriangleMesh
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindSphere:
		return "sphere"
	case KindAARect:
		return "aarect"
	case KindAABox:
		return "aabox"
	case KindTriangle:
		return "triangle"
	case KindMeshTriangle:
		return "mesh triangle"
	case KindTriangleMesh:
		return "triangle mesh"
	}
	return "unknown"
}

// Primitive is a tagged variant over the closed set of shapes. Dispatch is an
// exhaustive switch on the tag rather than an interface, keeping the hot
// intersection path free of virtual calls. The zero value (KindNone) marks an
// uninitialized slot; any operation on it is a build invariant violation and
// panics.
type Primitive struct {
	kind Kind

	sphere   *Sphere
	rect     *AARect
	box      *AABox
	triangle *Triangle
	meshTri  *MeshTriangle
	mesh     *TriangleMesh
}

// NewSpherePrimitive wraps a sphere
func NewSpherePrimitive(s *Sphere) Primitive {
	return Primitive{kind: KindSphere, sphere: s}
}

// NewAARectPrimitive wraps an axis-aligned rectangle
func NewAARectPrimitive(r *AARect) Primitive {
	return Primitive{kind: KindAARect, rect: r}
}

// NewAABoxPrimitive wraps an axis-aligned box
func NewAABoxPrimitive(b *AABox) Primitive {
	return Primitive{kind: KindAABox, box: b}
}

// NewTrianglePrimitive wraps a standalone triangle
func NewTrianglePrimitive(t *Triangle) Primitive {
	return Primitive{kind: KindTriangle, triangle: t}
}

// NewMeshTrianglePrimitive wraps a triangle indexing shared mesh data
func NewMeshTrianglePrimitive(t *MeshTriangle) Primitive {
	return Primitive{kind: KindMeshTriangle, meshTri: t}
}

// NewTriangleMeshPrimitive wraps a whole triangle mesh
func NewTriangleMeshPrimitive(m *TriangleMesh) Primitive {
	return Primitive{kind: KindTriangleMesh, mesh: m}
}

// Kind returns the variant tag
func (p Primitive) Kind() Kind {
	return p.kind
}

func (p Primitive) badKind(op string) string {
	return fmt.Sprintf("geometry: %s called on %s primitive", op, p.kind)
}

// Intersect returns the nearest hit along the ray, or false on a miss
func (p Primitive) Intersect(ray core.Ray) (*core.Hit, bool) {
	switch p.kind {
	case KindSphere:
		return p.sphere.Intersect(ray)
	case KindAARect:
		return p.rect.Intersect(ray)
	case KindAABox:
		return p.box.Intersect(ray)
	case KindTriangle:
		return p.triangle.Intersect(ray)
	case KindMeshTriangle:
		return p.meshTri.Intersect(ray)
	case KindTriangleMesh:
		return p.mesh.Intersect(ray)
	}
	panic(p.badKind("Intersect"))
}

// IntersectP reports whether the ray hits the primitive at all, without
// computing hit details. Used for shadow/occlusion tests.
func (p Primitive) IntersectP(ray core.Ray) bool {
	switch p.kind {
	case KindSphere:
		return p.sphere.IntersectP(ray)
	case KindAARect:
		return p.rect.IntersectP(ray)
	case KindAABox:
		return p.box.IntersectP(ray)
	case KindTriangle:
		return p.triangle.IntersectP(ray)
	case KindMeshTriangle:
		return p.meshTri.IntersectP(ray)
	case KindTriangleMesh:
		return p.mesh.IntersectP(ray)
	}
	panic(p.badKind("IntersectP"))
}

// BoundingBox returns the primitive's AABB
func (p Primitive) BoundingBox() core.AABB {
	switch p.kind {
	case KindSphere:
		return p.sphere.BoundingBox()
	case KindAARect:
		return p.rect.BoundingBox()
	case KindAABox:
		return p.box.BoundingBox()
	case KindTriangle:
		return p.triangle.BoundingBox()
	case KindMeshTriangle:
		return p.meshTri.BoundingBox()
	case KindTriangleMesh:
		return p.mesh.BoundingBox()
	}
	panic(p.badKind("BoundingBox"))
}

// Material returns the primitive's shared material
func (p Primitive) Material() core.Material {
	switch p.kind {
	case KindSphere:
		return p.sphere.Material
	case KindAARect:
		return p.rect.Material
	case KindAABox:
		return p.box.Material
	case KindTriangle:
		return p.triangle.Material
	case KindMeshTriangle:
		return p.meshTri.Material
	case KindTriangleMesh:
		return p.mesh.Material
	}
	panic(p.badKind("Material"))
}

// RequiresUV reports whether the attached material needs UV coordinates
func (p Primitive) RequiresUV() bool {
	return p.Material().RequiresUV()
}

// UV computes texture coordinates for a point on the primitive's surface,
// or nil when the material does not require them.
func (p Primitive) UV(point core.Vec3) *core.Vec2 {
	switch p.kind {
	case KindSphere:
		return p.sphere.UV(point)
	case KindAARect:
		return p.rect.UV(point)
	case KindAABox, KindTriangle, KindMeshTriangle, KindTriangleMesh:
		// Boxes delegate to their rects during intersection; triangles
		// produce UVs from barycentrics at hit time.
		return nil
	}
	panic(p.badKind("UV"))
}

// Decompose flattens composite primitives into their parts: a box becomes
// its six rects and a mesh its triangles, so the BVH can partition the
// individual pieces. Simple primitives return themselves.
func (p Primitive) Decompose() []Primitive {
	switch p.kind {
	case KindSphere, KindAARect, KindTriangle, KindMeshTriangle:
		return []Primitive{p}
	case KindAABox:
		parts := make([]Primitive, 0, len(p.box.Rects))
		for i := range p.box.Rects {
			parts = append(parts, NewAARectPrimitive(&p.box.Rects[i]))
		}
		return parts
	case KindTriangleMesh:
		parts := make([]Primitive, 0, len(p.mesh.Triangles))
		for i := range p.mesh.Triangles {
			parts = append(parts, NewMeshTrianglePrimitive(&p.mesh.Triangles[i]))
		}
		return parts
	}
	panic(p.badKind("Decompose"))
}

// Decompose flattens a primitive list for BVH construction
func Decompose(primitives []Primitive) []Primitive {
	out := make([]Primitive, 0, len(primitives))
	for _, p := range primitives {
		out = append(out, p.Decompose()...)
	}
	return out
}
