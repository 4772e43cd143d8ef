package core

import "math"

// Mat4 is a row-major 4x4 affine transform. The animated primitives are
// positioned with rigid transforms (rotation + translation, no scale), which
// keeps the fast inverse applicable.
type Mat4 struct {
	Cell [16]float64
}

// Identity returns the identity transform
func Identity() Mat4 {
	var m Mat4
	m.Cell[0], m.Cell[5], m.Cell[10], m.Cell[15] = 1, 1, 1, 1
	return m
}

// Translate returns a translation transform
func Translate(p Vec3) Mat4 {
	m := Identity()
	m.Cell[3], m.Cell[7], m.Cell[11] = p.X, p.Y, p.Z
	return m
}

// RotateX returns a rotation about the X axis by angle radians
func RotateX(angle float64) Mat4 {
	s, c := math.Sin(angle), math.Cos(angle)
	m := Identity()
	m.Cell[5], m.Cell[6] = c, -s
	m.Cell[9], m.Cell[10] = s, c
	return m
}

// RotateY returns a rotation about the Y axis by angle radians
func RotateY(angle float64) Mat4 {
	s, c := math.Sin(angle), math.Cos(angle)
	m := Identity()
	m.Cell[0], m.Cell[2] = c, s
	m.Cell[8], m.Cell[10] = -s, c
	return m
}

// RotateZ returns a rotation about the Z axis by angle radians
func RotateZ(angle float64) Mat4 {
	s, c := math.Sin(angle), math.Cos(angle)
	m := Identity()
	m.Cell[0], m.Cell[1] = c, -s
	m.Cell[4], m.Cell[5] = s, c
	return m
}

// Multiply returns the product m * other (other is applied first)
func (m Mat4) Multiply(other Mat4) Mat4 {
	var r Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += m.Cell[row*4+k] * other.Cell[k*4+col]
			}
			r.Cell[row*4+col] = sum
		}
	}
	return r
}

// TransformPoint applies the full affine transform to a point
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		X: m.Cell[0]*p.X + m.Cell[1]*p.Y + m.Cell[2]*p.Z + m.Cell[3],
		Y: m.Cell[4]*p.X + m.Cell[5]*p.Y + m.Cell[6]*p.Z + m.Cell[7],
		Z: m.Cell[8]*p.X + m.Cell[9]*p.Y + m.Cell[10]*p.Z + m.Cell[11],
	}
}

// TransformVector applies only the rotational part of the transform
func (m Mat4) TransformVector(v Vec3) Vec3 {
	return Vec3{
		X: m.Cell[0]*v.X + m.Cell[1]*v.Y + m.Cell[2]*v.Z,
		Y: m.Cell[4]*v.X + m.Cell[5]*v.Y + m.Cell[6]*v.Z,
		Z: m.Cell[8]*v.X + m.Cell[9]*v.Y + m.Cell[10]*v.Z,
	}
}

// FastInvertNoScale inverts a rigid transform (rotation + translation) by
// transposing the rotation and rotating the negated translation
func (m Mat4) FastInvertNoScale() Mat4 {
	r := Identity()
	r.Cell[0], r.Cell[1], r.Cell[2] = m.Cell[0], m.Cell[4], m.Cell[8]
	r.Cell[4], r.Cell[5], r.Cell[6] = m.Cell[1], m.Cell[5], m.Cell[9]
	r.Cell[8], r.Cell[9], r.Cell[10] = m.Cell[2], m.Cell[6], m.Cell[10]
	t := Vec3{-m.Cell[3], -m.Cell[7], -m.Cell[11]}
	r.Cell[3] = r.Cell[0]*t.X + r.Cell[1]*t.Y + r.Cell[2]*t.Z
	r.Cell[7] = r.Cell[4]*t.X + r.Cell[5]*t.Y + r.Cell[6]*t.Z
	r.Cell[11] = r.Cell[8]*t.X + r.Cell[9]*t.Y + r.Cell[10]*t.Z
	return r
}

// Inverted returns the general inverse via cofactor expansion. Used where a
// transform is not known to be rigid.
func (m Mat4) Inverted() Mat4 {
	c := &m.Cell
	inv := [16]float64{
		c[5]*c[10]*c[15] - c[5]*c[11]*c[14] - c[9]*c[6]*c[15] + c[9]*c[7]*c[14] + c[13]*c[6]*c[11] - c[13]*c[7]*c[10],
		-c[1]*c[10]*c[15] + c[1]*c[11]*c[14] + c[9]*c[2]*c[15] - c[9]*c[3]*c[14] - c[13]*c[2]*c[11] + c[13]*c[3]*c[10],
		c[1]*c[6]*c[15] - c[1]*c[7]*c[14] - c[5]*c[2]*c[15] + c[5]*c[3]*c[14] + c[13]*c[2]*c[7] - c[13]*c[3]*c[6],
		-c[1]*c[6]*c[11] + c[1]*c[7]*c[10] + c[5]*c[2]*c[11] - c[5]*c[3]*c[10] - c[9]*c[2]*c[7] + c[9]*c[3]*c[6],
		-c[4]*c[10]*c[15] + c[4]*c[11]*c[14] + c[8]*c[6]*c[15] - c[8]*c[7]*c[14] - c[12]*c[6]*c[11] + c[12]*c[7]*c[10],
		c[0]*c[10]*c[15] - c[0]*c[11]*c[14] - c[8]*c[2]*c[15] + c[8]*c[3]*c[14] + c[12]*c[2]*c[11] - c[12]*c[3]*c[10],
		-c[0]*c[6]*c[15] + c[0]*c[7]*c[14] + c[4]*c[2]*c[15] - c[4]*c[3]*c[14] - c[12]*c[2]*c[7] + c[12]*c[3]*c[6],
		c[0]*c[6]*c[11] - c[0]*c[7]*c[10] - c[4]*c[2]*c[11] + c[4]*c[3]*c[10] + c[8]*c[2]*c[7] - c[8]*c[3]*c[6],
		c[4]*c[9]*c[15] - c[4]*c[11]*c[13] - c[8]*c[5]*c[15] + c[8]*c[7]*c[13] + c[12]*c[5]*c[11] - c[12]*c[7]*c[9],
		-c[0]*c[9]*c[15] + c[0]*c[11]*c[13] + c[8]*c[1]*c[15] - c[8]*c[3]*c[13] - c[12]*c[1]*c[11] + c[12]*c[3]*c[9],
		c[0]*c[5]*c[15] - c[0]*c[7]*c[13] - c[4]*c[1]*c[15] + c[4]*c[3]*c[13] + c[12]*c[1]*c[7] - c[12]*c[3]*c[5],
		-c[0]*c[5]*c[11] + c[0]*c[7]*c[9] + c[4]*c[1]*c[11] - c[4]*c[3]*c[9] - c[8]*c[1]*c[7] + c[8]*c[3]*c[5],
		-c[4]*c[9]*c[14] + c[4]*c[10]*c[13] + c[8]*c[5]*c[14] - c[8]*c[6]*c[13] - c[12]*c[5]*c[10] + c[12]*c[6]*c[9],
		c[0]*c[9]*c[14] - c[0]*c[10]*c[13] - c[8]*c[1]*c[14] + c[8]*c[2]*c[13] + c[12]*c[1]*c[10] - c[12]*c[2]*c[9],
		-c[0]*c[5]*c[14] + c[0]*c[6]*c[13] + c[4]*c[1]*c[14] - c[4]*c[2]*c[13] - c[12]*c[1]*c[6] + c[12]*c[2]*c[5],
		c[0]*c[5]*c[10] - c[0]*c[6]*c[9] - c[4]*c[1]*c[10] + c[4]*c[2]*c[9] + c[8]*c[1]*c[6] - c[8]*c[2]*c[5],
	}
	det := c[0]*inv[0] + c[1]*inv[4] + c[2]*inv[8] + c[3]*inv[12]
	if det == 0 {
		return Identity()
	}
	invDet := 1 / det
	var r Mat4
	for i := range inv {
		r.Cell[i] = inv[i] * invDet
	}
	return r
}
