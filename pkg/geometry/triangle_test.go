package geometry

import (
	"math"
	"testing"

	"github.com/segfall/prism/pkg/core"
)

// right triangle in the z=0 plane with legs along x and y
func testTriangle(mat core.Material) *Triangle {
	return NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		mat,
	)
}

func TestTriangle_Intersect_Interior(t *testing.T) {
	tri := testTriangle(&testMaterial{needsUV: true})
	ray := core.NewRay(core.NewVec3(0.2, 0.2, 3), core.NewVec3(0, 0, -1), 0)

	hit, ok := tri.Intersect(ray)
	if !ok {
		t.Fatal("Expected hit, got miss")
	}
	if math.Abs(hit.T-3.0) > 1e-9 {
		t.Errorf("Expected t=3, got t=%f", hit.T)
	}
	if hit.UV == nil {
		t.Fatal("Expected barycentric UV for texturing material")
	}
	if math.Abs(hit.UV.X-0.2) > 1e-9 || math.Abs(hit.UV.Y-0.2) > 1e-9 {
		t.Errorf("Expected barycentric (0.2, 0.2), got %v", *hit.UV)
	}
	if !vecClose(hit.Normal, core.NewVec3(0, 0, 1), 1e-9) {
		t.Errorf("Expected normal (0,0,1), got %v", hit.Normal)
	}
	if !hit.Out {
		t.Error("Expected outward-facing hit")
	}
}

func TestTriangle_Intersect_EdgesExcluded(t *testing.T) {
	tri := testTriangle(&testMaterial{})

	// Grazes on vertices and edges miss under the half-open convention
	tests := []struct {
		name   string
		target core.Vec3
	}{
		{"vertex v0", core.NewVec3(0, 0, 0)},
		{"vertex v1", core.NewVec3(1, 0, 0)},
		{"vertex v2", core.NewVec3(0, 1, 0)},
		{"edge u=0", core.NewVec3(0, 0.5, 0)},
		{"edge v=0", core.NewVec3(0.5, 0, 0)},
		{"hypotenuse u+v=1", core.NewVec3(0.5, 0.5, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.target.Add(core.NewVec3(0, 0, 3)), core.NewVec3(0, 0, -1), 0)
			if hit, ok := tri.Intersect(ray); ok {
				t.Errorf("Expected miss on boundary, got hit at t=%f", hit.T)
			}
		})
	}
}

func TestTriangle_Intersect_Miss(t *testing.T) {
	tri := testTriangle(&testMaterial{})

	tests := []struct {
		name string
		ray  core.Ray
	}{
		{"outside barycentric", core.NewRay(core.NewVec3(0.8, 0.8, 3), core.NewVec3(0, 0, -1), 0)},
		{"parallel to plane", core.NewRay(core.NewVec3(0.2, 0.2, 1), core.NewVec3(1, 0, 0), 0)},
		{"behind origin", core.NewRay(core.NewVec3(0.2, 0.2, 3), core.NewVec3(0, 0, 1), 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := tri.Intersect(tt.ray); ok {
				t.Error("Expected miss")
			}
			if tri.IntersectP(tt.ray) {
				t.Error("IntersectP disagreed with Intersect")
			}
		})
	}
}

func TestTriangle_Intersect_Degenerate(t *testing.T) {
	// All three vertices collinear
	tri := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(2, 0, 0),
		&testMaterial{},
	)
	ray := core.NewRay(core.NewVec3(1, 0, 3), core.NewVec3(0, 0, -1), 0)
	if _, ok := tri.Intersect(ray); ok {
		t.Error("Expected miss for degenerate triangle")
	}
}

func TestTriangle_NormalFlippedFromBehind(t *testing.T) {
	tri := testTriangle(&testMaterial{})
	ray := core.NewRay(core.NewVec3(0.2, 0.2, -3), core.NewVec3(0, 0, 1), 0)

	hit, ok := tri.Intersect(ray)
	if !ok {
		t.Fatal("Expected hit from behind")
	}
	if !vecClose(hit.Normal, core.NewVec3(0, 0, -1), 1e-9) {
		t.Errorf("Expected flipped normal (0,0,-1), got %v", hit.Normal)
	}
	if hit.Out {
		t.Error("Expected Out=false when hitting the back face")
	}
}

func TestTriangle_NoUVWithoutTexture(t *testing.T) {
	tri := testTriangle(&testMaterial{})
	hit, ok := tri.Intersect(core.NewRay(core.NewVec3(0.2, 0.2, 3), core.NewVec3(0, 0, -1), 0))
	if !ok {
		t.Fatal("Expected hit")
	}
	if hit.UV != nil {
		t.Error("Expected nil UV when material does not require texturing")
	}
}

func TestTriangle_BoundingBox(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(-1, 0, 2),
		core.NewVec3(3, -2, 0),
		core.NewVec3(0, 1, 1),
		&testMaterial{},
	)
	bbox := tri.BoundingBox()
	if !vecClose(bbox.Min, core.NewVec3(-1, -2, 0), 1e-9) {
		t.Errorf("Expected min (-1,-2,0), got %v", bbox.Min)
	}
	if !vecClose(bbox.Max, core.NewVec3(3, 1, 2), 1e-9) {
		t.Errorf("Expected max (3,1,2), got %v", bbox.Max)
	}
}
