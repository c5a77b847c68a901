package renderer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/segfall/prism/pkg/core"
)

func TestCamera_CenterRay(t *testing.T) {
	origin := core.NewVec3(0, 0, 5)
	lookat := core.NewVec3(0, 0, 0)
	camera := NewCamera(origin, lookat, core.NewVec3(0, 1, 0), 90.0, 16.0/9.0, 0.0, 1.0)
	rng := rand.New(rand.NewSource(42))

	// The image center looks straight at the target
	ray := camera.GetRay(0.5, 0.5, rng)
	if ray.Origin != origin {
		t.Errorf("Expected ray origin %v, got %v", origin, ray.Origin)
	}

	want := lookat.Subtract(origin).Normalize()
	if ray.Direction.Normalize().Subtract(want).Length() > 1e-9 {
		t.Errorf("Expected center ray toward %v, got %v", want, ray.Direction.Normalize())
	}
	if ray.Time < 0 || ray.Time >= 1 {
		t.Errorf("Expected time in [0,1), got %f", ray.Time)
	}
}

func TestCamera_CornersSpanViewport(t *testing.T) {
	camera := NewCamera(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 90.0, 1.0, 0.0, 1.0)
	rng := rand.New(rand.NewSource(42))

	// 90 degree fov at focus distance 1 puts the viewport edges at +-1
	left := camera.GetRay(0.0, 0.5, rng)
	right := camera.GetRay(1.0, 0.5, rng)

	leftHit := left.At(1.0 / -left.Direction.Z * 1.0)
	rightHit := right.At(1.0 / -right.Direction.Z * 1.0)

	if math.Abs(leftHit.X+1.0) > 1e-9 {
		t.Errorf("Expected left edge at x=-1, got %f", leftHit.X)
	}
	if math.Abs(rightHit.X-1.0) > 1e-9 {
		t.Errorf("Expected right edge at x=1, got %f", rightHit.X)
	}
}

func TestCamera_ApertureJitter(t *testing.T) {
	origin := core.NewVec3(0, 0, 5)
	camera := NewCamera(origin, core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 45.0, 1.0, 0.5, 5.0)
	rng := rand.New(rand.NewSource(42))

	jittered := 0
	for i := 0; i < 50; i++ {
		ray := camera.GetRay(0.5, 0.5, rng)
		offset := ray.Origin.Subtract(origin).Length()
		if offset > 0.25+1e-9 {
			t.Fatalf("Lens offset %f exceeds lens radius", offset)
		}
		if offset > 0 {
			jittered++
		}

		// Jittered rays still converge on the focal plane
		focal := ray.At(-5.0 / ray.Direction.Z * 1.0)
		if focal.Subtract(core.NewVec3(0, 0, 0)).Length() > 1e-9 {
			t.Fatalf("Ray misses the focal point: %v", focal)
		}
	}
	if jittered == 0 {
		t.Error("Expected aperture to jitter ray origins")
	}
}
