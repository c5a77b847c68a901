package core

import (
	"math/rand"
	"testing"
)

func TestAABB_HitInterval(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name         string
		ray          Ray
		wantHit      bool
		wantT1, t2   float64
		checkEntries bool
	}{
		{
			name:         "ray through center",
			ray:          NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1), 0),
			wantHit:      true,
			wantT1:       4,
			t2:           6,
			checkEntries: true,
		},
		{
			name:    "ray missing box",
			ray:     NewRay(NewVec3(0, 5, 5), NewVec3(0, 0, -1), 0),
			wantHit: false,
		},
		{
			name:    "ray parallel inside slab",
			ray:     NewRay(NewVec3(0, 0, 5), NewVec3(1, 0, -1), 0),
			wantHit: true,
		},
		{
			name:    "ray pointing away",
			ray:     NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, 1), 0),
			wantHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t1, t2, hit := box.Hit(tt.ray, 0.001, 1000.0)
			if hit != tt.wantHit {
				t.Fatalf("Expected hit=%t, got hit=%t", tt.wantHit, hit)
			}
			if tt.checkEntries {
				if t1 != tt.wantT1 || t2 != tt.t2 {
					t.Errorf("Expected interval [%f, %f], got [%f, %f]", tt.wantT1, tt.t2, t1, t2)
				}
			}
		})
	}
}

func TestAABB_UnionBoundsBoth(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	randomBox := func() AABB {
		a := NewVec3(rng.Float64()*10-5, rng.Float64()*10-5, rng.Float64()*10-5)
		b := NewVec3(rng.Float64()*10-5, rng.Float64()*10-5, rng.Float64()*10-5)
		return NewAABB(a.Min(b), a.Max(b))
	}

	for i := 0; i < 100; i++ {
		a := randomBox()
		b := randomBox()
		u := a.Union(b)

		lower := a.Min.Min(b.Min)
		upper := a.Max.Max(b.Max)

		if u.Min.X > lower.X || u.Min.Y > lower.Y || u.Min.Z > lower.Z {
			t.Fatalf("Union min %v exceeds component-wise min %v", u.Min, lower)
		}
		if u.Max.X < upper.X || u.Max.Y < upper.Y || u.Max.Z < upper.Z {
			t.Fatalf("Union max %v below component-wise max %v", u.Max, upper)
		}
		if !u.IsValid() {
			t.Fatalf("Union produced invalid AABB: %+v", u)
		}
	}
}

func TestAABB_IsValid(t *testing.T) {
	valid := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	if !valid.IsValid() {
		t.Error("Expected valid AABB")
	}

	inverted := NewAABB(NewVec3(1, 0, 0), NewVec3(0, 1, 1))
	if inverted.IsValid() {
		t.Error("Expected inverted AABB to be invalid")
	}
}

func TestAABB_LongestAxis(t *testing.T) {
	tests := []struct {
		name string
		box  AABB
		want int
	}{
		{"x longest", NewAABB(NewVec3(0, 0, 0), NewVec3(5, 1, 1)), 0},
		{"y longest", NewAABB(NewVec3(0, 0, 0), NewVec3(1, 5, 1)), 1},
		{"z longest", NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 5)), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.LongestAxis(); got != tt.want {
				t.Errorf("Expected axis %d, got %d", tt.want, got)
			}
		})
	}
}

func TestAABB_SurfaceArea(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 2, 3))
	expected := 2.0 * (1*2 + 2*3 + 3*1)
	if got := box.SurfaceArea(); got != expected {
		t.Errorf("Expected surface area %f, got %f", expected, got)
	}
}
