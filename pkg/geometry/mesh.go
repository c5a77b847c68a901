package geometry

import (
	"fmt"

	"github.com/segfall/prism/pkg/core"
)

// MeshData holds vertex positions and normals shared by every triangle of a
// mesh. It is built once at scene setup and never mutated, so many triangles
// can reference one buffer across worker threads.
type MeshData struct {
	Vertices []core.Vec3
	Normals  []core.Vec3
}

// NewMeshData creates a shared vertex/normal buffer
func NewMeshData(vertices, normals []core.Vec3) *MeshData {
	return &MeshData{Vertices: vertices, Normals: normals}
}

// MeshTriangle is one triangle of a mesh, indexing into shared MeshData
type MeshTriangle struct {
	Data     *MeshData
	V        [3]int // vertex indices
	N        [3]int // normal indices
	Material core.Material
}

// NewMeshTriangle creates a mesh triangle referencing shared data
func NewMeshTriangle(data *MeshData, v, n [3]int, material core.Material) MeshTriangle {
	return MeshTriangle{Data: data, V: v, N: n, Material: material}
}

func (mt *MeshTriangle) points() (core.Vec3, core.Vec3, core.Vec3) {
	return mt.Data.Vertices[mt.V[0]], mt.Data.Vertices[mt.V[1]], mt.Data.Vertices[mt.V[2]]
}

// shadingNormal interpolates the vertex normals at barycentric (u, v),
// falling back to the geometric normal when the mesh carries none.
func (mt *MeshTriangle) shadingNormal(u, v float64) core.Vec3 {
	if len(mt.Data.Normals) == 0 {
		p0, p1, p2 := mt.points()
		return p1.Subtract(p0).Cross(p2.Subtract(p0)).Normalize()
	}

	n0 := mt.Data.Normals[mt.N[0]]
	n1 := mt.Data.Normals[mt.N[1]]
	n2 := mt.Data.Normals[mt.N[2]]
	return n0.Multiply(1 - u - v).Add(n1.Multiply(u)).Add(n2.Multiply(v)).Normalize()
}

// Intersect tests the ray against the triangle
func (mt *MeshTriangle) Intersect(ray core.Ray) (*core.Hit, bool) {
	p0, p1, p2 := mt.points()
	t, u, v, ok := intersectTriangle(p0, p1, p2, ray)
	if !ok {
		return nil, false
	}
	return triangleHit(ray, t, u, v, mt.shadingNormal(u, v), mt.Material), true
}

// IntersectP reports whether the ray hits the triangle
func (mt *MeshTriangle) IntersectP(ray core.Ray) bool {
	p0, p1, p2 := mt.points()
	_, _, _, ok := intersectTriangle(p0, p1, p2, ray)
	return ok
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (mt *MeshTriangle) BoundingBox() core.AABB {
	p0, p1, p2 := mt.points()
	return core.NewAABBFromPoints(p0, p1, p2)
}

// TriangleMesh groups mesh triangles sharing one MeshData. Intersection is a
// linear scan over the triangle list; scenes that care about performance
// should Decompose the mesh so the BVH partitions individual triangles.
type TriangleMesh struct {
	Data      *MeshData
	Triangles []MeshTriangle
	Material  core.Material
	bbox      core.AABB
}

// NewTriangleMesh creates a mesh from shared data and per-triangle index
// triples. Faces must hold a multiple of three vertex indices; normalFaces
// may be nil when the mesh has no normals, otherwise it must parallel faces.
func NewTriangleMesh(data *MeshData, faces, normalFaces []int, material core.Material) *TriangleMesh {
	if len(faces)%3 != 0 {
		panic("geometry: face indices must be a multiple of 3")
	}
	if normalFaces != nil && len(normalFaces) != len(faces) {
		panic("geometry: normal indices must parallel face indices")
	}

	numTriangles := len(faces) / 3
	triangles := make([]MeshTriangle, 0, numTriangles)
	for i := 0; i < numTriangles; i++ {
		v := [3]int{faces[i*3], faces[i*3+1], faces[i*3+2]}
		for _, idx := range v {
			if idx < 0 || idx >= len(data.Vertices) {
				panic(fmt.Sprintf("geometry: face index %d out of bounds", idx))
			}
		}

		n := v
		if normalFaces != nil {
			n = [3]int{normalFaces[i*3], normalFaces[i*3+1], normalFaces[i*3+2]}
		}
		triangles = append(triangles, NewMeshTriangle(data, v, n, material))
	}

	mesh := &TriangleMesh{Data: data, Triangles: triangles, Material: material}
	if len(triangles) > 0 {
		mesh.bbox = triangles[0].BoundingBox()
		for i := 1; i < len(triangles); i++ {
			mesh.bbox = mesh.bbox.Union(triangles[i].BoundingBox())
		}
	}
	return mesh
}

// Intersect scans the triangle list and returns the closest valid hit
func (m *TriangleMesh) Intersect(ray core.Ray) (*core.Hit, bool) {
	var closest *core.Hit
	for i := range m.Triangles {
		if hit, ok := m.Triangles[i].Intersect(ray); ok {
			if closest == nil || hit.T < closest.T {
				closest = hit
			}
		}
	}
	return closest, closest != nil
}

// IntersectP reports whether the ray hits any triangle
func (m *TriangleMesh) IntersectP(ray core.Ray) bool {
	for i := range m.Triangles {
		if m.Triangles[i].IntersectP(ray) {
			return true
		}
	}
	return false
}

// TriangleCount returns the number of triangles in the mesh
func (m *TriangleMesh) TriangleCount() int {
	return len(m.Triangles)
}

// BoundingBox returns the axis-aligned bounding box for the whole mesh
func (m *TriangleMesh) BoundingBox() core.AABB {
	return m.bbox
}
