package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestPlane_Intersect(t *testing.T) {
	// the floor plane: y = -1
	floor := NewPlane(6, core.NewVec3(0, 1, 0), 1)

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		expectHit bool
		expectedT float64
	}{
		{
			name:      "straight down",
			origin:    core.NewVec3(0, 0, 0),
			direction: core.NewVec3(0, -1, 0),
			expectHit: true,
			expectedT: 1,
		},
		{
			name:      "oblique",
			origin:    core.NewVec3(0, 1, 0),
			direction: core.NewVec3(0, -1, 1).Normalize(),
			expectHit: true,
			expectedT: 2 * math.Sqrt2,
		},
		{
			name:      "pointing away",
			origin:    core.NewVec3(0, 0, 0),
			direction: core.NewVec3(0, 1, 0),
			expectHit: false,
		},
		{
			name:      "parallel",
			origin:    core.NewVec3(0, 0, 0),
			direction: core.NewVec3(1, 0, 0),
			expectHit: false,
		},
	}

	const tolerance = 1e-12
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, tt.direction)
			floor.Intersect(&ray)

			if !tt.expectHit {
				if ray.HitID != core.NoHit {
					t.Errorf("Expected miss, got hit at t=%f", ray.T)
				}
				return
			}
			if ray.HitID != 6 {
				t.Fatal("Expected hit, got miss")
			}
			if math.Abs(ray.T-tt.expectedT) > tolerance {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, ray.T)
			}
		})
	}
}

func TestPlane_IsOccluded_RespectsRange(t *testing.T) {
	floor := NewPlane(6, core.NewVec3(0, 1, 0), 1)

	near := core.NewRayMaxDist(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, 0), 2)
	if !floor.IsOccluded(&near) {
		t.Error("Expected plane at t=1 to occlude within range 2")
	}

	short := core.NewRayMaxDist(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, 0), 0.5)
	if floor.IsOccluded(&short) {
		t.Error("Expected plane beyond range 0.5 not to occlude")
	}
}

func TestPlane_Normal(t *testing.T) {
	p := NewPlane(4, core.NewVec3(1, 0, 0), 3)
	if n := p.Normal(core.Vec3{}); n != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected (1, 0, 0), got %v", n)
	}
}
