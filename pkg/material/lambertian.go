package material

import (
	"math/rand"

	"github.com/segfall/prism/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo ColorSource
}

// NewLambertian creates a diffuse material with a solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a diffuse material driven by a color source
func NewTexturedLambertian(albedo ColorSource) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter bounces the ray in a cosine-weighted direction around the normal
func (l *Lambertian) Scatter(rayIn core.Ray, hit *core.Hit, rng *rand.Rand) (core.ScatterResult, bool) {
	direction := hit.Normal.Add(core.RandomUnitVector(rng))

	// A random vector opposite the normal can cancel it out
	if direction.NearZero() {
		direction = hit.Normal
	}

	return core.ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction, rayIn.Time),
		Attenuation: l.Albedo.Evaluate(hit.UV, hit.Point),
	}, true
}

// RequiresUV delegates to the albedo source
func (l *Lambertian) RequiresUV() bool {
	return l.Albedo.RequiresUV()
}
