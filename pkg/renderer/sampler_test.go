package renderer

import (
	"math"
	"sync"
	"testing"

	"github.com/segfall/prism/pkg/accel"
	"github.com/segfall/prism/pkg/core"
	"github.com/segfall/prism/pkg/geometry"
	"github.com/segfall/prism/pkg/material"
)

func testCamera() *Camera {
	return NewCamera(
		core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0),
		45.0, 1.0, 0.0, 5.0,
	)
}

func TestSampler_ConstantSkyConverges(t *testing.T) {
	// With no primitives every ray evaluates the sky, so every pass must
	// produce exactly the sky color at every pixel, with zero variance.
	skyColor := core.NewVec3(0.25, 0.5, 0.75)
	bvh := accel.Build(nil, accel.SplitMiddle)
	sampler := NewSampler(Config{Width: 8, Height: 6, SamplesPerPixel: 4}, testCamera(), SolidSky(skyColor), bvh)

	seen := 0
	final, stats := sampler.SampleImage(func(progress *SamplerProgress, sampleIndex int) {
		seen++
		for p := 0; p < len(progress.CurrentImage); p += 3 {
			if progress.CurrentImage[p] != skyColor.X ||
				progress.CurrentImage[p+1] != skyColor.Y ||
				progress.CurrentImage[p+2] != skyColor.Z {
				t.Fatalf("Pass %d pixel %d: expected exact sky color, got (%f,%f,%f)",
					sampleIndex, p/3,
					progress.CurrentImage[p], progress.CurrentImage[p+1], progress.CurrentImage[p+2])
			}
		}
	})

	// Passes 1..3 present the previous buffer, plus one final call
	if seen != 4 {
		t.Errorf("Expected 4 callback invocations, got %d", seen)
	}
	for p := 0; p < len(final.CurrentImage); p += 3 {
		if final.CurrentImage[p] != skyColor.X {
			t.Fatalf("Final buffer pixel %d not sky color", p/3)
		}
	}

	// One primary ray per pixel per pass, no bounces
	wantRays := uint64(8 * 6 * 4)
	if stats.TotalRays != wantRays {
		t.Errorf("Expected %d rays, got %d", wantRays, stats.TotalRays)
	}
	if stats.Samples != 4 {
		t.Errorf("Expected 4 samples, got %d", stats.Samples)
	}
}

func TestSampler_CallbackSequence(t *testing.T) {
	bvh := accel.Build(nil, accel.SplitMiddle)
	sampler := NewSampler(Config{Width: 4, Height: 4, SamplesPerPixel: 5}, testCamera(), BlackSky(), bvh)

	var mu sync.Mutex
	var indices []int
	sampler.SampleImage(func(progress *SamplerProgress, sampleIndex int) {
		mu.Lock()
		indices = append(indices, sampleIndex)
		mu.Unlock()
	})

	want := []int{1, 2, 3, 4, 5}
	if len(indices) != len(want) {
		t.Fatalf("Expected %d callbacks, got %d", len(want), len(indices))
	}
	for i := range want {
		if indices[i] != want[i] {
			t.Errorf("Callback %d: expected sample index %d, got %d", i, want[i], indices[i])
		}
	}
}

func TestSampler_BufferStableDuringCallback(t *testing.T) {
	// A scene with a diffuse sphere gives per-pass noise, so writes to the
	// current buffer are observable. The previous buffer handed to the
	// callback must stay bit-identical while the callback runs.
	primitives := []geometry.Primitive{
		geometry.NewSpherePrimitive(geometry.NewSphere(
			core.NewVec3(0, 0, 0), 1.0, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))),
	}
	bvh := accel.Build(primitives, accel.SplitSAH)
	sampler := NewSampler(Config{Width: 16, Height: 16, SamplesPerPixel: 6, NumWorkers: 4},
		testCamera(), GradientSky(core.NewVec3(1, 1, 1), core.NewVec3(0.5, 0.7, 1.0)), bvh)

	sampler.SampleImage(func(progress *SamplerProgress, sampleIndex int) {
		snapshot := make([]float64, len(progress.CurrentImage))
		copy(snapshot, progress.CurrentImage)

		// Give the concurrent pass time to write its own buffer
		for spin := 0; spin < 1000; spin++ {
			_ = math.Sqrt(float64(spin))
		}

		for p := range snapshot {
			if progress.CurrentImage[p] != snapshot[p] {
				t.Errorf("Pass %d: presented buffer mutated at index %d", sampleIndex, p)
				return
			}
		}
	})
}

func TestSampler_BuffersAlternate(t *testing.T) {
	bvh := accel.Build(nil, accel.SplitMiddle)
	sampler := NewSampler(Config{Width: 4, Height: 4, SamplesPerPixel: 4}, testCamera(), BlackSky(), bvh)

	var buffers []*SamplerProgress
	sampler.SampleImage(func(progress *SamplerProgress, sampleIndex int) {
		buffers = append(buffers, progress)
	})

	// Callbacks at passes 1, 2, 3 see alternating physical buffers; the
	// final call re-presents the last completed one.
	if len(buffers) != 4 {
		t.Fatalf("Expected 4 callbacks, got %d", len(buffers))
	}
	if buffers[0] == buffers[1] || buffers[1] == buffers[2] {
		t.Error("Expected consecutive passes to present different buffers")
	}
	if buffers[0] != buffers[2] {
		t.Error("Expected passes 1 and 3 to present the same physical buffer")
	}
	if buffers[3] != buffers[1] {
		t.Error("Expected the final callback to present the last completed buffer")
	}
}

func TestSampler_EmissiveScene(t *testing.T) {
	// A giant emissive sphere around the camera turns every primary ray
	// into pure emission.
	primitives := []geometry.Primitive{
		geometry.NewSpherePrimitive(geometry.NewSphere(
			core.NewVec3(0, 0, 0), 100.0, material.NewEmissive(core.NewVec3(2, 3, 4)))),
	}
	bvh := accel.Build(primitives, accel.SplitMiddle)
	sampler := NewSampler(Config{Width: 4, Height: 4, SamplesPerPixel: 1}, testCamera(), BlackSky(), bvh)

	final, _ := sampler.SampleImage(nil)
	for p := 0; p < len(final.CurrentImage); p += 3 {
		if final.CurrentImage[p] != 2 || final.CurrentImage[p+1] != 3 || final.CurrentImage[p+2] != 4 {
			t.Fatalf("Pixel %d: expected emission (2,3,4), got (%f,%f,%f)", p/3,
				final.CurrentImage[p], final.CurrentImage[p+1], final.CurrentImage[p+2])
		}
	}
}

func TestToneMapChannel(t *testing.T) {
	tests := []struct {
		value float64
		want  uint8
	}{
		{0.0, 0},
		{1.0, 255},
		{0.25, 127}, // sqrt(0.25)*255 = 127.5, truncated
		{0.5, 180},  // sqrt(0.5)*255 = 180.31
		{-0.5, 0},   // negative clamps
		{2.0, 255},  // overshoot clamps
	}

	for _, tt := range tests {
		if got := ToneMapChannel(tt.value); got != tt.want {
			t.Errorf("ToneMapChannel(%f) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestToneMap(t *testing.T) {
	progress := &SamplerProgress{CurrentImage: []float64{0.0, 1.0, 0.25}}
	bytes := ToneMap(progress)
	want := []uint8{0, 255, 127}
	for i := range want {
		if bytes[i] != want[i] {
			t.Errorf("Byte %d: expected %d, got %d", i, want[i], bytes[i])
		}
	}
}
