package geometry

import (
	"math/rand"

	"github.com/segfall/prism/pkg/core"
)

// testMaterial is a minimal material for intersection tests
type testMaterial struct {
	needsUV bool
}

func (m *testMaterial) Scatter(rayIn core.Ray, hit *core.Hit, rng *rand.Rand) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

func (m *testMaterial) RequiresUV() bool {
	return m.needsUV
}

func vecClose(a, b core.Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}
