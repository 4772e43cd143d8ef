package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere is a basic sphere with explicit support for rays that start inside
// it, which the dielectric sampling in the evaluator relies on
type Sphere struct {
	ID        int
	Center    core.Vec3
	RadiusSq  float64
	InvRadius float64
}

// NewSphere creates a new sphere with the given primitive id
func NewSphere(id int, center core.Vec3, radius float64) Sphere {
	return Sphere{
		ID:        id,
		Center:    center,
		RadiusSq:  radius * radius,
		InvRadius: 1 / radius,
	}
}

// Intersect records the nearest positive hit on the ray, if any. The near
// root is tried first; when the origin is outside the sphere (c > 0) the far
// root cannot be an entering hit and is skipped.
func (s *Sphere) Intersect(ray *core.Ray) {
	oc := ray.Origin.Subtract(s.Center)
	b := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.RadiusSq
	d := b*b - c
	if d <= 0 {
		return
	}
	d = math.Sqrt(d)
	t := -b - d
	if t < ray.T && t > 0 {
		ray.T = t
		ray.HitID = s.ID
		return
	}
	if c > 0 {
		return // origin outside; the far root would be an exit hit
	}
	t = d - b
	if t < ray.T && t > 0 {
		ray.T = t
		ray.HitID = s.ID
	}
}

// IsOccluded reports whether the ray hits the sphere before ray.T. Only the
// near root matters for occlusion.
func (s *Sphere) IsOccluded(ray *core.Ray) bool {
	oc := ray.Origin.Subtract(s.Center)
	b := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.RadiusSq
	d := b*b - c
	if d <= 0 {
		return false
	}
	t := -b - math.Sqrt(d)
	return t < ray.T && t > 0
}

// Normal returns the outward unit normal at a point on the surface
func (s *Sphere) Normal(p core.Vec3) core.Vec3 {
	return p.Subtract(s.Center).Multiply(s.InvRadius)
}

// Albedo returns the diffuse reflectance at a point on the surface
func (s *Sphere) Albedo(p core.Vec3) core.Vec3 {
	return core.NewVec3(0.93, 0.93, 0.93)
}
