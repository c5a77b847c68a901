package material

import (
	"math/rand"

	"github.com/segfall/prism/pkg/core"
)

// Emissive represents a light-emitting material. It absorbs every incoming
// ray and contributes its emission through the Emitter interface.
type Emissive struct {
	Emission core.Vec3
}

// NewEmissive creates an emissive material
func NewEmissive(emission core.Vec3) *Emissive {
	return &Emissive{Emission: emission}
}

// Scatter always absorbs; lights do not bounce rays
func (e *Emissive) Scatter(rayIn core.Ray, hit *core.Hit, rng *rand.Rand) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

// Emitted returns the emitted light
func (e *Emissive) Emitted(hit *core.Hit) core.Vec3 {
	return e.Emission
}

// RequiresUV returns false
func (e *Emissive) RequiresUV() bool {
	return false
}
