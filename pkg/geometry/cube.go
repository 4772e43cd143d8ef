package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cube is an oriented box. Rays are transformed into the box's local space
// with the inverse of its transform, where a slab test applies.
type Cube struct {
	ID   int
	B    [2]core.Vec3 // local-space min and max corners
	M    core.Mat4    // local-to-world transform
	InvM core.Mat4
}

// NewCube creates an axis-aligned cube of the given size centered at pos.
// Orientation comes from SetTransform.
func NewCube(id int, pos, size core.Vec3) Cube {
	c := Cube{
		ID: id,
		B: [2]core.Vec3{
			pos.Subtract(size.Multiply(0.5)),
			pos.Add(size.Multiply(0.5)),
		},
	}
	c.SetTransform(core.Identity())
	return c
}

// SetTransform installs a rigid local-to-world transform and its inverse
func (c *Cube) SetTransform(m core.Mat4) {
	c.M = m
	c.InvM = m.FastInvertNoScale()
}

// slab intersects the local-space ray against the box, returning the
// entering and exiting distances (tmin > tmax means a miss)
func (c *Cube) slab(o, d core.Vec3) (tmin, tmax float64) {
	rdx, rdy, rdz := 1/d.X, 1/d.Y, 1/d.Z
	signX, signY, signZ := 0, 0, 0
	if d.X < 0 {
		signX = 1
	}
	if d.Y < 0 {
		signY = 1
	}
	if d.Z < 0 {
		signZ = 1
	}
	tmin = (bAxis(c.B[signX], 0) - o.X) * rdx
	tmax = (bAxis(c.B[1-signX], 0) - o.X) * rdx
	tymin := (bAxis(c.B[signY], 1) - o.Y) * rdy
	tymax := (bAxis(c.B[1-signY], 1) - o.Y) * rdy
	if tmin > tymax || tymin > tmax {
		return 1, 0
	}
	tmin = math.Max(tmin, tymin)
	tmax = math.Min(tmax, tymax)
	tzmin := (bAxis(c.B[signZ], 2) - o.Z) * rdz
	tzmax := (bAxis(c.B[1-signZ], 2) - o.Z) * rdz
	if tmin > tzmax || tzmin > tmax {
		return 1, 0
	}
	return math.Max(tmin, tzmin), math.Min(tmax, tzmax)
}

func bAxis(v core.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Intersect records the nearest positive hit on the ray, if any. The
// entering distance wins when positive; the exiting distance covers rays
// that start inside the box.
func (c *Cube) Intersect(ray *core.Ray) {
	o := c.InvM.TransformPoint(ray.Origin)
	d := c.InvM.TransformVector(ray.Direction)
	tmin, tmax := c.slab(o, d)
	if tmin > tmax {
		return
	}
	if tmin > 0 {
		if tmin < ray.T {
			ray.T = tmin
			ray.HitID = c.ID
		}
	} else if tmax > 0 {
		if tmax < ray.T {
			ray.T = tmax
			ray.HitID = c.ID
		}
	}
}

// IsOccluded reports whether the ray enters the box before ray.T
func (c *Cube) IsOccluded(ray *core.Ray) bool {
	o := c.InvM.TransformPoint(ray.Origin)
	d := c.InvM.TransformVector(ray.Direction)
	tmin, tmax := c.slab(o, d)
	return tmax > 0 && tmin < tmax && tmin < ray.T
}

// Normal returns the world-space outward normal at a point on the surface,
// recovered from whichever local axis-aligned face the point is closest to
func (c *Cube) Normal(p core.Vec3) core.Vec3 {
	objP := c.InvM.TransformPoint(p)
	n := core.NewVec3(-1, 0, 0)
	minDist := math.Abs(objP.X - c.B[0].X)
	if d := math.Abs(objP.X - c.B[1].X); d < minDist {
		minDist, n = d, core.NewVec3(1, 0, 0)
	}
	if d := math.Abs(objP.Y - c.B[0].Y); d < minDist {
		minDist, n = d, core.NewVec3(0, -1, 0)
	}
	if d := math.Abs(objP.Y - c.B[1].Y); d < minDist {
		minDist, n = d, core.NewVec3(0, 1, 0)
	}
	if d := math.Abs(objP.Z - c.B[0].Z); d < minDist {
		minDist, n = d, core.NewVec3(0, 0, -1)
	}
	if d := math.Abs(objP.Z - c.B[1].Z); d < minDist {
		n = core.NewVec3(0, 0, 1)
	}
	return c.M.TransformVector(n)
}

// Albedo returns the diffuse reflectance at a point on the surface
func (c *Cube) Albedo(core.Vec3) core.Vec3 {
	return core.NewVec3(1, 1, 1)
}
