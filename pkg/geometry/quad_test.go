package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestQuad_Intersect(t *testing.T) {
	quad := NewQuad(0, 1) // unit edge, half-extent 0.5

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		expectHit bool
		expectedT float64
	}{
		{
			name:      "center hit from above",
			origin:    core.NewVec3(0, 1, 0),
			direction: core.NewVec3(0, -1, 0),
			expectHit: true,
			expectedT: 1,
		},
		{
			name:      "inside the bounds",
			origin:    core.NewVec3(0.4, 2, -0.4),
			direction: core.NewVec3(0, -1, 0),
			expectHit: true,
			expectedT: 2,
		},
		{
			name:      "outside the bounds",
			origin:    core.NewVec3(0.6, 1, 0),
			direction: core.NewVec3(0, -1, 0),
			expectHit: false,
		},
		{
			name:      "plane behind the origin",
			origin:    core.NewVec3(0, 1, 0),
			direction: core.NewVec3(0, 1, 0),
			expectHit: false,
		},
	}

	const tolerance = 1e-12
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, tt.direction)
			quad.Intersect(&ray)

			if !tt.expectHit {
				if ray.HitID != core.NoHit {
					t.Errorf("Expected miss, got hit at t=%f", ray.T)
				}
				return
			}
			if ray.HitID != 0 {
				t.Fatal("Expected hit, got miss")
			}
			if math.Abs(ray.T-tt.expectedT) > tolerance {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, ray.T)
			}
		})
	}
}

func TestQuad_Intersect_Translated(t *testing.T) {
	quad := NewQuad(0, 0.5)
	quad.SetTransform(core.Translate(core.NewVec3(1, 1.5, -1)))

	ray := core.NewRay(core.NewVec3(1, 0, -1), core.NewVec3(0, 1, 0))
	quad.Intersect(&ray)

	if ray.HitID != 0 {
		t.Fatal("Expected hit, got miss")
	}
	if math.Abs(ray.T-1.5) > 1e-12 {
		t.Errorf("Expected t=1.5, got t=%f", ray.T)
	}

	miss := core.NewRay(core.NewVec3(1.3, 0, -1), core.NewVec3(0, 1, 0))
	quad.Intersect(&miss)
	if miss.HitID != core.NoHit {
		t.Errorf("Expected miss outside the translated bounds, got t=%f", miss.T)
	}
}

func TestQuad_IsOccluded_MatchesIntersect(t *testing.T) {
	quad := NewQuad(0, 1)

	hit := core.NewRayMaxDist(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0), 2)
	if !quad.IsOccluded(&hit) {
		t.Error("Expected occlusion on a crossing ray")
	}

	short := core.NewRayMaxDist(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0), 0.5)
	if quad.IsOccluded(&short) {
		t.Error("Expected no occlusion beyond the ray range")
	}
}

func TestQuad_Normal_FacesDown(t *testing.T) {
	quad := NewQuad(0, 1)
	if n := quad.Normal(core.Vec3{}); n != core.NewVec3(0, -1, 0) {
		t.Errorf("Expected (0, -1, 0), got %v", n)
	}

	// translation must not change the orientation
	quad.SetTransform(core.Translate(core.NewVec3(-1, 1.5, -1)))
	if n := quad.Normal(core.Vec3{}); n != core.NewVec3(0, -1, 0) {
		t.Errorf("Expected (0, -1, 0) after translation, got %v", n)
	}
}

func TestQuad_Corner(t *testing.T) {
	quad := NewQuad(0, 1)
	quad.SetTransform(core.Translate(core.NewVec3(2, 3, 4)))

	c := quad.Corner(1, -1)
	expected := core.NewVec3(2.5, 3, 3.5)
	if c.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, c)
	}
}
