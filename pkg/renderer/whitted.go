package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Glass parameters for the dielectric primitives. The index of refraction is
// fixed; the absorption constant mirrors the glass cube's coefficient rather
// than being looked up per material (scene.Absorption exists but the trace
// path does not consult it).
const etaGlass = 1.2

var (
	glassAbsorption = core.NewVec3(0.5, 0, 0.5)
	ambientTerm     = core.NewVec3(0.2, 0.2, 0.2)
)

// Whitted evaluates outgoing radiance along a ray by recursively composing
// perfect specular reflection, Fresnel-blended dielectric refraction and
// directly lit Lambertian diffuse shading
type Whitted struct {
	scene    *scene.Scene
	MaxDepth int
}

// NewWhitted creates an evaluator over the given scene
func NewWhitted(s *scene.Scene, maxDepth int) *Whitted {
	return &Whitted{scene: s, MaxDepth: maxDepth}
}

// Trace returns the radiance arriving along the ray. Rays that leave the
// scene and rays past the recursion bound contribute zero; the bound is a
// deliberate bias, not an error.
func (w *Whitted) Trace(ray *core.Ray, depth int) core.Vec3 {
	w.scene.FindNearest(ray)
	if ray.HitID == core.NoHit {
		return core.Vec3{}
	}
	if depth > w.MaxDepth {
		return core.Vec3{}
	}
	p := ray.IntersectionPoint()
	n := w.scene.Normal(ray.HitID, p, ray.Direction)
	albedo := w.scene.Albedo(ray.HitID, p)
	reflectivity := w.scene.Reflectivity(ray.HitID)
	refractivity := w.scene.Refractivity(ray.HitID)
	diffuseness := 1 - (reflectivity + refractivity)

	var out core.Vec3
	// pure speculars such as mirrors
	if reflectivity > 0 {
		r := ray.Direction.Reflect(n)
		reflected := core.NewRay(p.Add(r.Multiply(core.Epsilon)), r)
		out = out.Add(w.Trace(&reflected, depth+1).MultiplyVec(albedo).Multiply(reflectivity))
	}
	// dielectrics such as glass
	if refractivity > 0 {
		r := ray.Direction.Reflect(n)
		reflected := core.NewRay(p.Add(r.Multiply(core.Epsilon)), r)
		n1, n2 := 1.0, etaGlass
		if ray.Inside {
			n1, n2 = etaGlass, 1.0
		}
		eta := n1 / n2
		cosi := ray.Direction.Negate().Dot(n)
		cost2 := 1 - eta*eta*(1-cosi*cosi)
		fr := 1.0
		if cost2 > 0 {
			// not totally internally reflecting: Schlick's Fresnel
			// approximation splits the energy
			a, b := n1-n2, n1+n2
			r0 := (a * a) / (b * b)
			c := 1 - cosi
			fr = r0 + (1-r0)*(c*c*c*c*c)
			tdir := ray.Direction.Multiply(eta).Add(n.Multiply(eta*cosi - math.Sqrt(math.Abs(cost2))))
			refracted := core.NewRay(p.Add(tdir.Multiply(core.Epsilon)), tdir)
			refracted.Inside = !ray.Inside
			out = out.Add(w.Trace(&refracted, depth+1).MultiplyVec(albedo).Multiply(1 - fr))
		}
		out = out.Add(w.Trace(&reflected, depth+1).MultiplyVec(albedo).Multiply(fr))
	}
	// diffuse surfaces: direct illumination plus a constant ambient
	// approximation for the missing diffuse interreflections
	if diffuseness > 0 {
		irradiance := w.DirectIllumination(p, n)
		brdf := albedo.Multiply(core.InvPi)
		out = out.Add(brdf.MultiplyVec(irradiance.Add(ambientTerm)).Multiply(diffuseness))
	}
	// Beer-Lambert absorption over the distance travelled inside a medium
	if ray.Inside {
		out = out.MultiplyVec(glassAbsorption.Multiply(-ray.T).Exp())
	}
	return out
}

// DirectIllumination gathers irradiance at a point from the representative
// light position, with inverse-square falloff and shadow-ray visibility
func (w *Whitted) DirectIllumination(p, n core.Vec3) core.Vec3 {
	l := w.scene.LightPos().Subtract(p)
	distance := l.Length()
	l = l.Multiply(1 / distance)
	ndotl := n.Dot(l)
	if ndotl < core.Epsilon {
		return core.Vec3{} // surface faces away from the light
	}
	// offset the origin and stop short of the light surface
	shadow := core.NewRayMaxDist(p.Add(l.Multiply(core.Epsilon)), l, distance-2*core.Epsilon)
	if w.scene.IsOccluded(&shadow) {
		return core.Vec3{}
	}
	attenuation := 1 / (distance * distance)
	return w.scene.LightColor().Multiply(attenuation * ndotl)
}
