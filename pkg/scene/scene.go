// Package scene owns the fixed renderable scene: one instance of each
// primitive plus four area-light quads, an animation clock, and the
// id-keyed shading queries the light transport evaluator dispatches on.
package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/texture"
)

// Primitive identifiers. These are the sole join key between "which shape
// was hit" and "how to shade it"; all four light quads share one id.
const (
	IDLights    = 0
	IDBall      = 1
	IDCorner    = 2
	IDCube      = 3
	IDLeftWall  = 4
	IDRightWall = 5
	IDFloor     = 6
	IDCeiling   = 7
	IDFrontWall = 8
	IDBackWall  = 9
	IDTorus     = 10
)

// Room wall offsets, mirrored by the plane set and the direction-keyed
// shortcut in FindNearest
const (
	leftWallX  = 3.0
	rightWallX = -2.99
	floorY     = 1.0
	ceilingY   = -2.0
	frontWallZ = 3.0
	backWallZ  = -3.99
)

const lightPlaneY = 1.5 // all four light quads hang at this height

// lightCenters holds the XZ centers of the four light quads, in the lane
// order the batched intersection test walks them
var lightCenters = [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

// Scene is the fixed test scene: four ceiling lights, a bouncing mirror
// ball, a large sphere rounding off the back corners, a spinning glass cube,
// six room planes and a glass torus
type Scene struct {
	animTime float64

	Lights [4]geometry.Quad
	Ball   geometry.Sphere
	Corner geometry.Sphere
	Cube   geometry.Cube
	Walls  [6]geometry.Plane // indexed by id - IDLeftWall
	Torus  geometry.Torus

	logo *texture.Surface
	red  *texture.Surface
	blue *texture.Surface
}

// New constructs the scene at time zero
func New() *Scene {
	s := &Scene{
		Ball:   geometry.NewSphere(IDBall, core.NewVec3(0, 0, 0), 0.6),
		Corner: geometry.NewSphere(IDCorner, core.NewVec3(0, 2.5, -3.07), 8),
		Cube:   geometry.NewCube(IDCube, core.NewVec3(0, 0, 0), core.NewVec3(1.15, 1.15, 1.15)),
		Torus:  geometry.NewTorus(IDTorus, 0.8, 0.25),
		logo:   texture.NewLogo(128, 64),
		red:    texture.NewCheckerboard(512, 512, 64, core.NewVec3(0.78, 0.1, 0.1), core.NewVec3(0.62, 0.08, 0.08)),
		blue:   texture.NewCheckerboard(512, 512, 64, core.NewVec3(0.1, 0.15, 0.78), core.NewVec3(0.08, 0.12, 0.62)),
	}
	for i := range s.Lights {
		s.Lights[i] = geometry.NewQuad(IDLights, 0.5)
		s.Lights[i].SetTransform(core.Translate(core.NewVec3(lightCenters[i][0], lightPlaneY, lightCenters[i][1])))
	}
	s.Walls[IDLeftWall-IDLeftWall] = geometry.NewPlane(IDLeftWall, core.NewVec3(1, 0, 0), leftWallX)
	s.Walls[IDRightWall-IDLeftWall] = geometry.NewPlane(IDRightWall, core.NewVec3(-1, 0, 0), rightWallX)
	s.Walls[IDFloor-IDLeftWall] = geometry.NewPlane(IDFloor, core.NewVec3(0, 1, 0), floorY)
	s.Walls[IDCeiling-IDLeftWall] = geometry.NewPlane(IDCeiling, core.NewVec3(0, -1, 0), ceilingY)
	s.Walls[IDFrontWall-IDLeftWall] = geometry.NewPlane(IDFrontWall, core.NewVec3(0, 0, 1), frontWallZ)
	s.Walls[IDBackWall-IDLeftWall] = geometry.NewPlane(IDBackWall, core.NewVec3(0, 0, -1), backWallZ)
	s.Torus.SetTransform(core.Translate(core.NewVec3(-0.25, 0, 2)).Multiply(core.RotateX(math.Pi / 4)))
	s.SetTime(0)
	return s
}

// SetTime moves the animated primitives to their pose at time t. It is a
// pure function of t: calling it repeatedly, or with non-monotonic values,
// always produces the same transforms for the same t. It must complete
// before any scanline worker reads the new transforms.
func (s *Scene) SetTime(t float64) {
	s.animTime = t
	// cube animation: spin
	base := core.RotateX(math.Pi / 4).Multiply(core.RotateZ(math.Pi / 4))
	spin := core.Translate(core.NewVec3(1.8, 0, 2.5)).Multiply(core.RotateY(t * 0.5)).Multiply(base)
	s.Cube.SetTransform(spin)
	// sphere animation: bounce
	bounce := math.Mod(t, 2.0) - 1
	s.Ball.Center = core.NewVec3(-1.8, -0.4+(1-bounce*bounce), 1)
}

// Time returns the current animation clock value
func (s *Scene) Time() float64 {
	return s.animTime
}

// FindNearest intersects the ray with every primitive, in a fixed order so
// exact distance ties resolve reproducibly. Room walls use a direction-keyed
// shortcut: only the facing wall of each axis pair can produce a positive
// distance.
func (s *Scene) FindNearest(ray *core.Ray) {
	if ray.Direction.X < 0 {
		wallHit(ray, leftWallX, ray.Origin.X, ray.InvDirection.X, IDLeftWall)
	} else {
		wallHit(ray, rightWallX, ray.Origin.X, ray.InvDirection.X, IDRightWall)
	}
	if ray.Direction.Y < 0 {
		wallHit(ray, floorY, ray.Origin.Y, ray.InvDirection.Y, IDFloor)
	} else {
		wallHit(ray, ceilingY, ray.Origin.Y, ray.InvDirection.Y, IDCeiling)
	}
	if ray.Direction.Z < 0 {
		wallHit(ray, frontWallZ, ray.Origin.Z, ray.InvDirection.Z, IDFrontWall)
	} else {
		wallHit(ray, backWallZ, ray.Origin.Z, ray.InvDirection.Z, IDBackWall)
	}
	s.intersectLights(ray)
	s.Ball.Intersect(ray)
	s.Corner.Intersect(ray)
	s.Cube.Intersect(ray)
	s.Torus.Intersect(ray)
}

// wallHit solves the single linear plane equation for one room wall
func wallHit(ray *core.Ray, offset, origin, invDir float64, id int) {
	t := -(origin + offset) * invDir
	if t < ray.T && t > 0 {
		ray.T = t
		ray.HitID = id
	}
}

// intersectLights tests the four light quads as one batch. The quads share
// one plane and one orientation, so a single plane solve feeds four
// independent in-bounds checks — the same comparisons in the same lane
// order a 4-wide vector version would evaluate.
func (s *Scene) intersectLights(ray *core.Ray) {
	t := (ray.Origin.Y - lightPlaneY) / -ray.Direction.Y
	if t >= ray.T || t <= 0 {
		return
	}
	half := s.Lights[0].Size
	for i := range lightCenters {
		ix := ray.Origin.X - lightCenters[i][0] + t*ray.Direction.X
		iz := ray.Origin.Z - lightCenters[i][1] + t*ray.Direction.Z
		if ix > -half && ix < half && iz > -half && iz < half {
			ray.T = t
			ray.HitID = IDLights
			return
		}
	}
}

// IsOccluded reports whether anything blocks the ray before ray.T, returning
// on the first qualifying hit. Walls and the corner sphere are deliberately
// skipped: in this fixed scene they never cast a meaningful shadow, and
// shadow rays terminate before reaching them.
func (s *Scene) IsOccluded(ray *core.Ray) bool {
	if s.Cube.IsOccluded(ray) {
		return true
	}
	if s.Ball.IsOccluded(ray) {
		return true
	}
	if s.lightsOccluded(ray) {
		return true
	}
	return s.Torus.IsOccluded(ray)
}

// lightsOccluded is the occlusion variant of the batched light quad test
func (s *Scene) lightsOccluded(ray *core.Ray) bool {
	t := (ray.Origin.Y - lightPlaneY) / -ray.Direction.Y
	if t >= ray.T || t <= 0 {
		return false
	}
	half := s.Lights[0].Size
	for i := range lightCenters {
		ix := ray.Origin.X - lightCenters[i][0] + t*ray.Direction.X
		iz := ray.Origin.Z - lightCenters[i][1] + t*ray.Direction.Z
		if ix > -half && ix < half && iz > -half && iz < half {
			return true
		}
	}
	return false
}

// Normal returns the surface normal for a hit, flipped to oppose the
// incoming direction so shading always sees a front-facing normal.
// Calling it with NoHit is a caller bug; it returns zero rather than fault.
func (s *Scene) Normal(id int, p, incoming core.Vec3) core.Vec3 {
	if id == core.NoHit {
		return core.Vec3{}
	}
	var n core.Vec3
	switch id {
	case IDLights:
		n = s.Lights[0].Normal(p) // all four are oriented the same
	case IDBall:
		n = s.Ball.Normal(p)
	case IDCorner:
		n = s.Corner.Normal(p)
	case IDCube:
		n = s.Cube.Normal(p)
	case IDTorus:
		n = s.Torus.Normal(p)
	default:
		// wall normals follow directly from the id layout
		axis := (id - IDLeftWall) / 2
		sign := float64(1 - 2*(id&1))
		switch axis {
		case 0:
			n = core.NewVec3(sign, 0, 0)
		case 1:
			n = core.NewVec3(0, sign, 0)
		default:
			n = core.NewVec3(0, 0, sign)
		}
	}
	if n.Dot(incoming) > 0 {
		n = n.Negate() // hit back side or inside
	}
	return n
}

// Albedo returns the diffuse reflectance for a hit. Wall albedo varies with
// position: the floor is a procedural checkerboard, the back wall carries
// the logo surface, the side walls sample image surfaces with wrapped
// coordinates.
func (s *Scene) Albedo(id int, p core.Vec3) core.Vec3 {
	switch id {
	case core.NoHit:
		return core.Vec3{}
	case IDLights:
		return s.Lights[0].Albedo(p)
	case IDBall:
		return s.Ball.Albedo(p)
	case IDCorner:
		return s.Corner.Albedo(p)
	case IDCube:
		return s.Cube.Albedo(p)
	case IDTorus:
		return s.Torus.Albedo(p)
	case IDFloor:
		return s.floorAlbedo(p)
	case IDBackWall:
		ix := int((p.X + 4) * (128.0 / 8))
		iy := int((2 - p.Y) * (64.0 / 3))
		return s.logo.At(ix, iy)
	case IDLeftWall:
		ix := int((p.Z - 4) * (512.0 / 7))
		iy := int((2 - p.Y) * (512.0 / 3))
		return s.red.At(ix, iy)
	case IDRightWall:
		ix := int((p.Z - 4) * (512.0 / 7))
		iy := int((2 - p.Y) * (512.0 / 3))
		return s.blue.At(ix, iy)
	default:
		return s.Walls[id-IDLeftWall].Albedo(p)
	}
}

// floorAlbedo is the checkerboard, with two tiles deliberately subdivided at
// a higher frequency to produce aliasing for filtering experiments
func (s *Scene) floorAlbedo(p core.Vec3) core.Vec3 {
	ix := int(p.X*2 + 96.01)
	iz := int(p.Z*2 + 96.01)
	if ix == 98 && iz == 98 {
		ix, iz = int(p.X*32.01), int(p.Z*32.01)
	}
	if ix == 94 && iz == 98 {
		ix, iz = int(p.X*64.01), int(p.Z*64.01)
	}
	if (ix+iz)&1 == 1 {
		return core.NewVec3(1, 1, 1)
	}
	return core.NewVec3(0.3, 0.3, 0.3)
}

// Reflectivity returns the mirror weight for a primitive id. Together with
// Refractivity it must leave a non-negative diffuse remainder; that is an
// authoring invariant, not a runtime check.
func (s *Scene) Reflectivity(id int) float64 {
	switch id {
	case IDBall:
		return 1
	case IDFloor:
		return 0.3
	default:
		return 0
	}
}

// Refractivity returns the dielectric weight for a primitive id
func (s *Scene) Refractivity(id int) float64 {
	if id == IDCube || id == IDTorus {
		return 1
	}
	return 0
}

// Absorption returns the Beer-Lambert absorption coefficient for a medium
func (s *Scene) Absorption(id int) core.Vec3 {
	if id == IDCube {
		return core.NewVec3(0.5, 0, 0.5)
	}
	return core.Vec3{}
}

// LightPos returns the representative light position used for direct
// illumination: the centroid of the four quads, nudged below the light plane
func (s *Scene) LightPos() core.Vec3 {
	return core.NewVec3(0, lightPlaneY-0.01, 0)
}

// LightColor returns the radiant intensity of the representative light
func (s *Scene) LightColor() core.Vec3 {
	return core.NewVec3(24, 24, 22)
}

// AreaLightColor returns the emission of the light quads (all identical)
func (s *Scene) AreaLightColor() core.Vec3 {
	return s.Lights[0].Albedo(core.Vec3{})
}

// LightArea returns the area of one light quad (all the same size)
func (s *Scene) LightArea() float64 {
	edge := s.Lights[0].Size * 2
	return edge * edge
}

// LightCount returns the number of light quads
func (s *Scene) LightCount() int {
	return len(s.Lights)
}

// RandomPointOnLight maps two uniform numbers in [0,1) to a point on one of
// the light quads. r0 is stratified: its quarter selects the quad and the
// remainder is renormalized to pick the position within the quad.
func (s *Scene) RandomPointOnLight(r0, r1 float64) core.Vec3 {
	idx := int(r0 * 4)
	if idx > 3 {
		idx = 3
	}
	stratum := float64(idx) * 0.25
	r2 := (r0 - stratum) / (1 - stratum)
	q := &s.Lights[idx]
	c1 := q.Corner(-1, -1)
	c2 := q.Corner(1, -1)
	c3 := q.Corner(-1, 1)
	return c1.Add(c2.Subtract(c1).Multiply(r2)).Add(c3.Subtract(c1).Multiply(r1))
}

// LightQuad returns the four world-space corners of light quad idx,
// clockwise, for solid angle sampling
func (s *Scene) LightQuad(idx int) [4]core.Vec3 {
	q := &s.Lights[idx]
	return [4]core.Vec3{
		q.Corner(-1, 1),
		q.Corner(1, 1),
		q.Corner(1, -1),
		q.Corner(-1, -1),
	}
}
