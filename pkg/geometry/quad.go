package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Quad is an oriented finite quad lying in its local XZ plane at Y=0,
// intended to be used as an area light source
type Quad struct {
	ID   int
	Size float64 // half-extent of the square
	T    core.Mat4
	InvT core.Mat4
}

// NewQuad creates a quad with the given edge length (the stored Size is the
// half-extent) and primitive id
func NewQuad(id int, size float64) Quad {
	q := Quad{ID: id, Size: size * 0.5}
	q.SetTransform(core.Identity())
	return q
}

// SetTransform installs a rigid local-to-world transform and its inverse
func (q *Quad) SetTransform(m core.Mat4) {
	q.T = m
	q.InvT = m.FastInvertNoScale()
}

// Intersect records the nearest positive hit on the ray, if any. The
// plane-crossing distance comes from the local Y coordinates alone; the
// bounds check then uses the local X/Z hit position.
func (q *Quad) Intersect(ray *core.Ray) {
	oy := q.InvT.Cell[4]*ray.Origin.X + q.InvT.Cell[5]*ray.Origin.Y + q.InvT.Cell[6]*ray.Origin.Z + q.InvT.Cell[7]
	dy := q.InvT.Cell[4]*ray.Direction.X + q.InvT.Cell[5]*ray.Direction.Y + q.InvT.Cell[6]*ray.Direction.Z
	t := oy / -dy
	if t < ray.T && t > 0 {
		if ix, iz := q.localHit(ray, t); ix > -q.Size && ix < q.Size && iz > -q.Size && iz < q.Size {
			ray.T = t
			ray.HitID = q.ID
		}
	}
}

// IsOccluded reports whether the ray crosses the quad before ray.T
func (q *Quad) IsOccluded(ray *core.Ray) bool {
	oy := q.InvT.Cell[4]*ray.Origin.X + q.InvT.Cell[5]*ray.Origin.Y + q.InvT.Cell[6]*ray.Origin.Z + q.InvT.Cell[7]
	dy := q.InvT.Cell[4]*ray.Direction.X + q.InvT.Cell[5]*ray.Direction.Y + q.InvT.Cell[6]*ray.Direction.Z
	t := oy / -dy
	if t < ray.T && t > 0 {
		ix, iz := q.localHit(ray, t)
		return ix > -q.Size && ix < q.Size && iz > -q.Size && iz < q.Size
	}
	return false
}

// localHit returns the local-space X/Z coordinates of the hit at distance t
func (q *Quad) localHit(ray *core.Ray, t float64) (ix, iz float64) {
	ox := q.InvT.Cell[0]*ray.Origin.X + q.InvT.Cell[1]*ray.Origin.Y + q.InvT.Cell[2]*ray.Origin.Z + q.InvT.Cell[3]
	oz := q.InvT.Cell[8]*ray.Origin.X + q.InvT.Cell[9]*ray.Origin.Y + q.InvT.Cell[10]*ray.Origin.Z + q.InvT.Cell[11]
	dx := q.InvT.Cell[0]*ray.Direction.X + q.InvT.Cell[1]*ray.Direction.Y + q.InvT.Cell[2]*ray.Direction.Z
	dz := q.InvT.Cell[8]*ray.Direction.X + q.InvT.Cell[9]*ray.Direction.Y + q.InvT.Cell[10]*ray.Direction.Z
	return ox + t*dx, oz + t*dz
}

// Normal returns the world-space normal, the transformed local -Y axis
func (q *Quad) Normal(core.Vec3) core.Vec3 {
	return core.NewVec3(-q.T.Cell[1], -q.T.Cell[5], -q.T.Cell[9])
}

// Albedo returns the emissive color of the light quad
func (q *Quad) Albedo(core.Vec3) core.Vec3 {
	return core.NewVec3(10, 10, 10)
}

// Corner returns a world-space corner of the quad; lx and lz select the
// local corner as ±1 multiples of the half-extent
func (q *Quad) Corner(lx, lz float64) core.Vec3 {
	return q.T.TransformPoint(core.NewVec3(lx*q.Size, 0, lz*q.Size))
}
