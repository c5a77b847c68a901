package core

import (
	"math"
	"math/rand"
)

// Epsilon rejects self-intersections: hits with t <= Epsilon are discarded
// and hit points are nudged along the normal by the same amount.
const Epsilon = 1e-4

// machineEpsilon is half the distance between 1.0 and the next float64,
// the rounding unit used by the Gamma error bound.
const machineEpsilon = 0x1p-53

// NextFloat returns the next representable float64 above f.
func NextFloat(f float64) float64 {
	if math.IsInf(f, 1) {
		return f
	}
	if f == -0.0 {
		f = 0.0
	}
	bits := math.Float64bits(f)
	if f >= 0 {
		bits++
	} else {
		bits--
	}
	return math.Float64frombits(bits)
}

// PreviousFloat returns the next representable float64 below f.
func PreviousFloat(f float64) float64 {
	if math.IsInf(f, -1) {
		return f
	}
	if f == 0.0 {
		f = math.Copysign(0, -1)
	}
	bits := math.Float64bits(f)
	if f <= 0 {
		bits++
	} else {
		bits--
	}
	return math.Float64frombits(bits)
}

// Gamma returns a conservative bound on the relative error accumulated by n
// floating point operations: (n*eps/2) / (1 - n*eps/2).
func Gamma(n int) float64 {
	nm := float64(n) * machineEpsilon
	return nm / (1 - nm)
}

// RandomUnitVector returns a uniformly distributed direction on the unit
// sphere, via rejection sampling in the unit cube.
func RandomUnitVector(rng *rand.Rand) Vec3 {
	for {
		v := Vec3{
			X: 2*rng.Float64() - 1,
			Y: 2*rng.Float64() - 1,
			Z: 2*rng.Float64() - 1,
		}
		if s := v.LengthSquared(); s > 0 && s <= 1 {
			return v.Normalize()
		}
	}
}

// RandomInUnitDisk returns a random point in the unit disk on the XY plane,
// used for thin-lens aperture sampling.
func RandomInUnitDisk(rng *rand.Rand) Vec3 {
	for {
		p := Vec3{X: 2*rng.Float64() - 1, Y: 2*rng.Float64() - 1}
		if p.LengthSquared() < 1 {
			return p
		}
	}
}
