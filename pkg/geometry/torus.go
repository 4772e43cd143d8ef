package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Torus is an implicit torus `(x²+y²+z² + R² − r²)² = 4R²(x²+y²)` with major
// radius R and tube radius r, positioned by an affine transform. Intersection
// reduces to the smallest positive real root of a quartic in t, solved with a
// Cardano-style cubic resolvent. The solver is numerically delicate: it runs
// in float64 end to end, and a near-zero pivot switches to a reciprocal
// parametrization to avoid dividing by a value close to zero.
type Torus struct {
	ID      int
	Rc2     float64 // major radius squared
	Rt2     float64 // tube radius squared
	BoundSq float64 // (R+r)², bounding sphere radius squared
	T       core.Mat4
	InvT    core.Mat4
}

// NewTorus creates a torus with major radius rc and tube radius rt
func NewTorus(id int, rc, rt float64) Torus {
	t := Torus{
		ID:      id,
		Rc2:     rc * rc,
		Rt2:     rt * rt,
		BoundSq: (rc + rt) * (rc + rt),
	}
	t.SetTransform(core.Identity())
	return t
}

// SetTransform installs a local-to-world transform and its general inverse
func (to *Torus) SetTransform(m core.Mat4) {
	to.T = m
	to.InvT = m.Inverted()
}

// quarticRoot returns the smallest positive root of the torus quartic for a
// local-space ray, or a negative value when there is none
func (to *Torus) quarticRoot(o, d core.Vec3) float64 {
	po := 1.0
	m := o.Dot(o)
	k3 := o.Dot(d)
	k32 := k3 * k3
	// bounding sphere test
	if k32 < m-to.BoundSq {
		return -1
	}
	k := (m - to.Rt2 - to.Rc2) * 0.5
	k2 := k32 + to.Rc2*d.Z*d.Z + k
	k1 := k*k3 + to.Rc2*o.Z*d.Z
	k0 := k*k + to.Rc2*o.Z*o.Z - to.Rc2*to.Rt2
	// a near-zero pivot degenerates the resolvent; flip to the
	// reciprocal parametrization
	if math.Abs(k3*(k32-k2)+k1) < 1e-4 {
		k1, k3 = k3, k1
		po = -1
		k0 = 1 / k0
		k1 *= k0
		k2 *= k0
		k3 *= k0
		k32 = k3 * k3
	}
	c2 := (2*k2 - 3*k32) / 3
	c1 := (k3*(k32-k2) + k1) * 2
	c0 := (k3*(k3*(-3*k32+4*k2)-8*k1) + 4*k0) / 3
	q := c2*c2 + c0
	r := 3*c0*c2 - c2*c2*c2 - c1*c1
	h := r*r - q*q*q
	var z float64
	if h < 0 {
		// three real cubic roots: trigonometric form
		sq := math.Sqrt(q)
		z = 2 * sq * math.Cos(math.Acos(r/(sq*q))/3)
	} else {
		// one real cubic root: hyperbolic form
		sq := math.Cbrt(math.Sqrt(h) + math.Abs(r))
		z = math.Copysign(math.Abs(sq+q/sq), r)
	}
	z = c2 - z
	d1 := z - 3*c2
	d2 := z*z - 3*c0
	if math.Abs(d1) < 1e-8 {
		if d2 < 0 {
			return -1
		}
		d2 = math.Sqrt(d2)
	} else {
		if d1 < 0 {
			return -1
		}
		d1 = math.Sqrt(d1 / 2)
		d2 = c1 / d1
	}
	// back-substitute: up to two candidate quartic roots per branch
	result := -1.0
	if h := d1*d1 - z + d2; h > 0 {
		sh := math.Sqrt(h)
		t1, t2 := -d1-sh-k3, -d1+sh-k3
		if po < 0 {
			t1, t2 = 2/t1, 2/t2
		}
		result = acceptRoot(result, t1)
		result = acceptRoot(result, t2)
	}
	if h := d1*d1 - z - d2; h > 0 {
		sh := math.Sqrt(h)
		t1, t2 := d1-sh-k3, d1+sh-k3
		if po < 0 {
			t1, t2 = 2/t1, 2/t2
		}
		result = acceptRoot(result, t1)
		result = acceptRoot(result, t2)
	}
	return result
}

// acceptRoot keeps the smaller of the two positive candidates
func acceptRoot(best, t float64) float64 {
	if t <= 0 {
		return best
	}
	if best < 0 || t < best {
		return t
	}
	return best
}

// Intersect records the nearest positive hit on the ray, if any
func (to *Torus) Intersect(ray *core.Ray) {
	o := to.InvT.TransformPoint(ray.Origin)
	d := to.InvT.TransformVector(ray.Direction)
	t := to.quarticRoot(o, d)
	if t > 0 && t < ray.T {
		ray.T = t
		ray.HitID = to.ID
	}
}

// IsOccluded reports whether the ray hits the torus before ray.T
func (to *Torus) IsOccluded(ray *core.Ray) bool {
	o := to.InvT.TransformPoint(ray.Origin)
	d := to.InvT.TransformVector(ray.Direction)
	t := to.quarticRoot(o, d)
	return t > 0 && t < ray.T
}

// Normal returns the world-space outward normal at a point on the surface,
// from the gradient of the implicit torus function
func (to *Torus) Normal(p core.Vec3) core.Vec3 {
	l := to.InvT.TransformPoint(p)
	d := l.Dot(l)
	n := l.MultiplyVec(core.NewVec3(
		d-to.Rt2-to.Rc2,
		d-to.Rt2-to.Rc2,
		d-to.Rt2+to.Rc2,
	)).Normalize()
	return to.T.TransformVector(n)
}

// Albedo returns the diffuse reflectance at a point on the surface
func (to *Torus) Albedo(core.Vec3) core.Vec3 {
	return core.NewVec3(1, 1, 1)
}
