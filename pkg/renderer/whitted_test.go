package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func TestWhitted_Trace_EscapeIsBlack(t *testing.T) {
	s := scene.New()
	w := NewWhitted(s, 8)

	ray := core.NewRay(core.NewVec3(10, 0, 0), core.NewVec3(1, 0, 0))
	if c := w.Trace(&ray, 0); c != (core.Vec3{}) {
		t.Errorf("Expected black for an escaping ray, got %v", c)
	}
}

func TestWhitted_Trace_DepthBound(t *testing.T) {
	s := scene.New()
	w := NewWhitted(s, 0)

	// the ray hits the ceiling, but past the recursion bound the result
	// is still black
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	if c := w.Trace(&ray, 1); c != (core.Vec3{}) {
		t.Errorf("Expected black past the recursion bound, got %v", c)
	}
}

func TestWhitted_Trace_DiffuseCeiling(t *testing.T) {
	s := scene.New()
	s.SetTime(0)
	w := NewWhitted(s, 8)

	// straight up between the lights: a purely diffuse hit with an
	// unobstructed path to the light position
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	c := w.Trace(&ray, 0)

	dist := 2 - 1.49 // ceiling to the light position, straight down
	irradiance := s.LightColor().Multiply(1 / (dist * dist))
	expected := s.Albedo(scene.IDCeiling, core.NewVec3(0, 2, 0)).
		Multiply(core.InvPi).
		MultiplyVec(irradiance.Add(core.NewVec3(0.2, 0.2, 0.2)))

	if c.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, c)
	}
	if c.Z >= c.X {
		t.Errorf("Expected the warm light tint (Z < X), got %v", c)
	}
}

func TestWhitted_Trace_MirrorBall(t *testing.T) {
	s := scene.New()
	s.SetTime(0)
	w := NewWhitted(s, 8)

	// straight at the resting ball; the mirror branch follows the
	// reflection into the scene
	ray := core.NewRay(core.NewVec3(-1.8, -0.4, -2), core.NewVec3(0, 0, 1))
	c := w.Trace(&ray, 0)

	for _, v := range []float64{c.X, c.Y, c.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			t.Fatalf("Expected finite non-negative radiance, got %v", c)
		}
	}
	if c == (core.Vec3{}) {
		t.Error("Expected the mirror to reflect a lit scene, got black")
	}
}

func TestWhitted_Trace_GlassCube(t *testing.T) {
	s := scene.New()
	s.SetTime(0)
	w := NewWhitted(s, 8)

	ray := core.NewRay(core.NewVec3(1.8, 0, -2), core.NewVec3(0, 0, 1))
	c := w.Trace(&ray, 0)

	for _, v := range []float64{c.X, c.Y, c.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			t.Fatalf("Expected finite non-negative radiance, got %v", c)
		}
	}
}

func TestWhitted_DirectIllumination_FacingAway(t *testing.T) {
	s := scene.New()
	w := NewWhitted(s, 8)

	// the light is above; a downward normal sees nothing
	c := w.DirectIllumination(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, 0))
	if c != (core.Vec3{}) {
		t.Errorf("Expected zero irradiance facing away, got %v", c)
	}
}

func TestWhitted_DirectIllumination_BallShadow(t *testing.T) {
	s := scene.New()
	w := NewWhitted(s, 8)

	// this floor point, the airborne ball and the light position are
	// collinear at t=1, so the ball shadows it; at t=0 the ball has
	// dropped out of the way
	p := core.NewVec3(-5.03596, -1, 2.79775)
	n := core.NewVec3(0, 1, 0)

	s.SetTime(1)
	if c := w.DirectIllumination(p, n); c != (core.Vec3{}) {
		t.Errorf("Expected full shadow at t=1, got %v", c)
	}

	s.SetTime(0)
	c := w.DirectIllumination(p, n)
	if c == (core.Vec3{}) {
		t.Error("Expected light to reach the point at t=0")
	}
	if c.X < 0 || c.Y < 0 || c.Z < 0 {
		t.Errorf("Expected non-negative irradiance, got %v", c)
	}
}

func TestWhitted_DirectIllumination_InverseSquare(t *testing.T) {
	s := scene.New()
	s.SetTime(0)
	w := NewWhitted(s, 8)

	// two unshadowed points straight below the light, one twice as far
	near := w.DirectIllumination(core.NewVec3(0, 0.49, 0), core.NewVec3(0, 1, 0))
	far := w.DirectIllumination(core.NewVec3(0, -0.51, 0), core.NewVec3(0, 1, 0))

	if near.X <= 0 || far.X <= 0 {
		t.Fatalf("Expected both points lit, got near=%v far=%v", near, far)
	}
	ratio := near.X / far.X
	if math.Abs(ratio-4) > 1e-9 {
		t.Errorf("Expected inverse-square ratio 4, got %f", ratio)
	}
}
