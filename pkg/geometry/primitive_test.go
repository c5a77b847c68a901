package geometry

import (
	"testing"

	"github.com/segfall/prism/pkg/core"
)

func TestPrimitive_Dispatch(t *testing.T) {
	mat := &testMaterial{}
	sphere := NewSpherePrimitive(NewSphere(core.NewVec3(0, 0, 0), 1.0, mat))
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), 0)

	if sphere.Kind() != KindSphere {
		t.Fatalf("Expected sphere kind, got %s", sphere.Kind())
	}

	hit, ok := sphere.Intersect(ray)
	if !ok {
		t.Fatal("Expected hit through variant dispatch")
	}
	if !sphere.IntersectP(ray) {
		t.Error("IntersectP disagreed with Intersect")
	}
	if hit.Material != core.Material(mat) {
		t.Error("Expected hit to carry the primitive's material")
	}
	if sphere.Material() != core.Material(mat) {
		t.Error("Expected Material to return the wrapped shape's material")
	}
	if !sphere.BoundingBox().IsValid() {
		t.Error("Expected valid bounding box")
	}
}

func TestPrimitive_ZeroValuePanics(t *testing.T) {
	var p Primitive
	if p.Kind() != KindNone {
		t.Fatalf("Expected zero value to be none, got %s", p.Kind())
	}

	ops := map[string]func(){
		"Intersect":   func() { p.Intersect(core.Ray{}) },
		"IntersectP":  func() { p.IntersectP(core.Ray{}) },
		"BoundingBox": func() { p.BoundingBox() },
		"Material":    func() { p.Material() },
		"Decompose":   func() { p.Decompose() },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Expected %s on zero-value primitive to panic", name)
				}
			}()
			op()
		})
	}
}

func TestDecompose(t *testing.T) {
	mat := &testMaterial{}
	box := NewAABox(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), mat)
	mesh := testQuadMesh(mat, nil)

	primitives := []Primitive{
		NewSpherePrimitive(NewSphere(core.NewVec3(0, 0, 0), 1.0, mat)),
		NewAABoxPrimitive(box),
		NewTriangleMeshPrimitive(mesh),
	}

	flat := Decompose(primitives)

	// 1 sphere + 6 box faces + 2 mesh triangles
	if len(flat) != 9 {
		t.Fatalf("Expected 9 flattened primitives, got %d", len(flat))
	}

	counts := make(map[Kind]int)
	for _, p := range flat {
		counts[p.Kind()]++
	}
	if counts[KindSphere] != 1 || counts[KindAARect] != 6 || counts[KindMeshTriangle] != 2 {
		t.Errorf("Unexpected kind counts: %v", counts)
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindNone, "none"},
		{KindSphere, "sphere"},
		{KindAARect, "aarect"},
		{KindAABox, "aabox"},
		{KindTriangle, "triangle"},
		{KindMeshTriangle, "mesh triangle"},
		{KindTriangleMesh, "triangle mesh"},
		{Kind(200), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
