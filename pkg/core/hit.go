package core

import "math/rand"

// Hit describes where and how a ray intersected a primitive. The point is
// nudged along the normal by Epsilon to avoid shadow acne, and the normal is
// oriented against the incoming ray; Out records whether the outward-facing
// side was hit.
type Hit struct {
	T        float64
	Point    Vec3
	Normal   Vec3
	UV       *Vec2 // set only when the material requires texturing
	Out      bool
	Material Material
}

// ScatterResult contains a material's response to an incoming ray
type ScatterResult struct {
	Scattered   Ray  // Continuation ray
	Attenuation Vec3 // Color attenuation applied to the continuation
}

// Material is the capability set required of anything attached to a
// primitive. Materials are immutable after scene build and shared by
// reference across worker threads.
type Material interface {
	// Scatter returns the continuation ray and attenuation for a hit, or
	// false if the ray was absorbed.
	Scatter(rayIn Ray, hit *Hit, rng *rand.Rand) (ScatterResult, bool)

	// RequiresUV reports whether intersections must compute UV coordinates
	// for this material.
	RequiresUV() bool
}

// Emitter is implemented by materials that emit light
type Emitter interface {
	Emitted(hit *Hit) Vec3
}
