package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Plane is an infinite plane defined by a unit normal and a signed distance
// from the origin along that normal
type Plane struct {
	ID     int
	N      core.Vec3
	D      float64
	albedo core.Vec3
}

// NewPlane creates a new plane with the given primitive id
func NewPlane(id int, normal core.Vec3, dist float64) Plane {
	return Plane{ID: id, N: normal, D: dist, albedo: core.NewVec3(0.93, 0.93, 0.93)}
}

// Intersect records the nearest positive hit on the ray, if any
func (p *Plane) Intersect(ray *core.Ray) {
	t := -(ray.Origin.Dot(p.N) + p.D) / ray.Direction.Dot(p.N)
	if t < ray.T && t > 0 {
		ray.T = t
		ray.HitID = p.ID
	}
}

// IsOccluded reports whether the ray crosses the plane before ray.T
func (p *Plane) IsOccluded(ray *core.Ray) bool {
	t := -(ray.Origin.Dot(p.N) + p.D) / ray.Direction.Dot(p.N)
	return t < ray.T && t > 0
}

// Normal returns the plane normal
func (p *Plane) Normal(core.Vec3) core.Vec3 {
	return p.N
}

// Albedo returns the base reflectance; position-dependent wall textures are
// applied by the scene, which owns the surface images
func (p *Plane) Albedo(core.Vec3) core.Vec3 {
	return p.albedo
}
