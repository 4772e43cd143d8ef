package core

// Math constants shared by the intersection and shading code
const (
	// Epsilon offsets secondary and shadow rays from the surface they
	// spawn on, preventing immediate self-intersection.
	Epsilon = 1e-4
	// MaxDist is the nearest-hit sentinel a fresh ray starts with.
	MaxDist = 1e34
	// InvPi is the Lambertian BRDF normalization factor.
	InvPi = 0.31830988618379067
	// NoHit marks a ray that has not intersected anything.
	NoHit = -1
)

// Ray carries an origin, a unit direction and the mutable nearest-hit state
// that the scene intersection queries update in place. InvDirection holds the
// reciprocal direction for slab-style tests; zero direction components yield
// IEEE infinities there, which never win a `t < ray.T` comparison.
type Ray struct {
	Origin       Vec3
	Direction    Vec3
	InvDirection Vec3
	T            float64 // nearest hit distance found so far
	HitID        int     // primitive id of the nearest hit, NoHit if none
	Inside       bool    // true while travelling through a dielectric medium
}

// NewRay creates a ray with the nearest-hit state reset
func NewRay(origin, direction Vec3) Ray {
	return NewRayMaxDist(origin, direction, MaxDist)
}

// NewRayMaxDist creates a ray that ignores hits beyond maxDist, which is how
// shadow rays bound their search to the light distance
func NewRayMaxDist(origin, direction Vec3, maxDist float64) Ray {
	return Ray{
		Origin:       origin,
		Direction:    direction,
		InvDirection: Vec3{1 / direction.X, 1 / direction.Y, 1 / direction.Z},
		T:            maxDist,
		HitID:        NoHit,
	}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// IntersectionPoint returns the point at the nearest recorded hit
func (r Ray) IntersectionPoint() Vec3 {
	return r.At(r.T)
}
