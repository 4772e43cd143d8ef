package core

import (
	"math"
	"testing"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		result   Vec3
		expected Vec3
	}{
		{name: "add", result: a.Add(b), expected: NewVec3(5, -3, 9)},
		{name: "subtract", result: a.Subtract(b), expected: NewVec3(-3, 7, -3)},
		{name: "multiply scalar", result: a.Multiply(2), expected: NewVec3(2, 4, 6)},
		{name: "multiply vec", result: a.MultiplyVec(b), expected: NewVec3(4, -10, 18)},
		{name: "negate", result: a.Negate(), expected: NewVec3(-1, -2, -3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, tt.result)
			}
		})
	}
}

func TestVec3_DotAndCross(t *testing.T) {
	a := NewVec3(1, 0, 0)
	b := NewVec3(0, 1, 0)

	if dot := a.Dot(b); dot != 0 {
		t.Errorf("Expected orthogonal dot product 0, got %f", dot)
	}
	if dot := NewVec3(1, 2, 3).Dot(NewVec3(4, 5, 6)); dot != 32 {
		t.Errorf("Expected dot product 32, got %f", dot)
	}

	cross := a.Cross(b)
	if cross != NewVec3(0, 0, 1) {
		t.Errorf("Expected X cross Y = Z, got %v", cross)
	}
	if anti := b.Cross(a); anti != NewVec3(0, 0, -1) {
		t.Errorf("Expected Y cross X = -Z, got %v", anti)
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 4, 0).Normalize()

	const tolerance = 1e-12
	if math.Abs(v.Length()-1) > tolerance {
		t.Errorf("Expected unit length, got %f", v.Length())
	}
	if v.Subtract(NewVec3(0.6, 0.8, 0)).Length() > tolerance {
		t.Errorf("Expected (0.6, 0.8, 0), got %v", v)
	}

	zero := NewVec3(0, 0, 0).Normalize()
	if zero != (Vec3{}) {
		t.Errorf("Expected zero vector to normalize to zero, got %v", zero)
	}
}

func TestVec3_Reflect(t *testing.T) {
	tests := []struct {
		name     string
		incoming Vec3
		normal   Vec3
		expected Vec3
	}{
		{
			name:     "45 degree bounce off floor",
			incoming: NewVec3(1, -1, 0).Normalize(),
			normal:   NewVec3(0, 1, 0),
			expected: NewVec3(1, 1, 0).Normalize(),
		},
		{
			name:     "head-on bounce",
			incoming: NewVec3(0, 0, 1),
			normal:   NewVec3(0, 0, -1),
			expected: NewVec3(0, 0, -1),
		},
		{
			name:     "grazing ray unchanged",
			incoming: NewVec3(1, 0, 0),
			normal:   NewVec3(0, 1, 0),
			expected: NewVec3(1, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.incoming.Reflect(tt.normal)
			if result.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_Exp(t *testing.T) {
	const tolerance = 1e-12

	if e := (Vec3{}).Exp(); e.Subtract(NewVec3(1, 1, 1)).Length() > tolerance {
		t.Errorf("Expected exp(0) = (1,1,1), got %v", e)
	}

	e := NewVec3(-math.Ln2, 0, -2*math.Ln2).Exp()
	if e.Subtract(NewVec3(0.5, 1, 0.25)).Length() > tolerance {
		t.Errorf("Expected (0.5, 1, 0.25), got %v", e)
	}
}

func TestVec3_Clamp(t *testing.T) {
	v := NewVec3(-0.5, 0.5, 1.5).Clamp(0, 1)
	if v != NewVec3(0, 0.5, 1) {
		t.Errorf("Expected (0, 0.5, 1), got %v", v)
	}
}

func TestVec3_GammaCorrect(t *testing.T) {
	v := NewVec3(0.25, 1, 0).GammaCorrect(2)
	if math.Abs(v.X-0.5) > 1e-12 || v.Y != 1 || v.Z != 0 {
		t.Errorf("Expected (0.5, 1, 0), got %v", v)
	}
}

func TestVec3_RGBA8(t *testing.T) {
	tests := []struct {
		name     string
		color    Vec3
		expected uint32
	}{
		{name: "black", color: NewVec3(0, 0, 0), expected: 0xff000000},
		{name: "red", color: NewVec3(1, 0, 0), expected: 0xffff0000},
		{name: "green", color: NewVec3(0, 1, 0), expected: 0xff00ff00},
		{name: "blue", color: NewVec3(0, 0, 1), expected: 0xff0000ff},
		{name: "mid gray", color: NewVec3(0.5, 0.5, 0.5), expected: 0xff7f7f7f},
		{name: "overbright clamps", color: NewVec3(10, 10, 10), expected: 0xffffffff},
		{name: "negative clamps", color: NewVec3(-1, -1, -1), expected: 0xff000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.color.RGBA8(); got != tt.expected {
				t.Errorf("Expected %#08x, got %#08x", tt.expected, got)
			}
		})
	}
}
