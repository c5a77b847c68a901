package geometry

import (
	"math"

	"github.com/segfall/prism/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material core.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material core.Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Material: material}
}

// Intersect solves the ray-sphere quadratic and returns the nearest valid hit.
// The smaller root is preferred; the larger root is used when the smaller one
// lies behind the ray origin (origin inside the sphere).
func (s *Sphere) Intersect(ray core.Ray) (*core.Hit, bool) {
	oc := ray.Origin.Subtract(s.Center)

	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant <= 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)
	t := (-halfB - sqrtD) / a
	if t < core.Epsilon {
		t = (-halfB + sqrtD) / a
		if t < core.Epsilon {
			return nil, false
		}
	}

	point := ray.At(t)
	normal := point.Subtract(s.Center).Multiply(1.0 / s.Radius)
	out := true
	if normal.Dot(ray.Direction) > 0 {
		normal = normal.Negate()
		out = false
	}

	return &core.Hit{
		T:        t,
		Point:    point.Add(normal.Multiply(core.Epsilon)),
		Normal:   normal,
		UV:       s.UV(point),
		Out:      out,
		Material: s.Material,
	}, true
}

// IntersectP reports whether the ray hits the sphere
func (s *Sphere) IntersectP(ray core.Ray) bool {
	oc := ray.Origin.Subtract(s.Center)

	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant <= 0 {
		return false
	}

	sqrtD := math.Sqrt(discriminant)
	return (-halfB-sqrtD)/a >= core.Epsilon || (-halfB+sqrtD)/a >= core.Epsilon
}

// UV maps a surface point to spherical coordinates, computed only when the
// material textures by UV.
func (s *Sphere) UV(point core.Vec3) *core.Vec2 {
	if !s.Material.RequiresUV() {
		return nil
	}

	d := s.Center.Subtract(point).Multiply(1.0 / s.Radius)
	phi := math.Atan2(-d.Z, d.X) + math.Pi
	theta := math.Acos(-d.Y)

	return &core.Vec2{X: phi / (2 * math.Pi), Y: theta / math.Pi}
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}
