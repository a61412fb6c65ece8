package math

import "math"

// Mat4 is a 4x4 matrix stored column by column, the layout glUniformMatrix4fv
// expects with transpose=false. Element (row, col) lives at index col*4+row.
type Mat4 [16]float32

// At returns the element at row r, column c.
func (m Mat4) At(r, c int) float32 {
	return m[c*4+r]
}

// Identity returns the identity matrix.
func Identity() Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		m[i*5] = 1
	}
	return m
}

// Perspective builds a right-handed projection mapping view-space depth
// [-near, -far] to clip-space [-1, 1]. fovY is in radians.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	focal := float32(1 / math.Tan(float64(fovY)/2))
	depth := near - far

	var m Mat4
	m[0] = focal / aspect
	m[5] = focal
	m[10] = (far + near) / depth
	m[11] = -1
	m[14] = 2 * far * near / depth
	return m
}

// LookAt builds a view matrix for an eye at eye looking at center.
func LookAt(eye, center, up Vec3) Mat4 {
	forward := center.Sub(eye).Normalize()
	right := forward.Cross(up).Normalize()
	camUp := right.Cross(forward)

	m := Identity()
	for i, axis := range [3]Vec3{right, camUp, forward.Scale(-1)} {
		m[i] = axis.X
		m[4+i] = axis.Y
		m[8+i] = axis.Z
		m[12+i] = -axis.Dot(eye)
	}
	return m
}

// RotateY returns a rotation of angle radians about the +Y axis.
func RotateY(angle float32) Mat4 {
	sin, cos := math.Sincos(float64(angle))
	m := Identity()
	m[0] = float32(cos)
	m[2] = float32(-sin)
	m[8] = float32(sin)
	m[10] = float32(cos)
	return m
}

// Mul returns m * other, so other is applied first.
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m.At(r, k) * other.At(k, c)
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// TransformVec3 transforms p as a point (w=1) and divides by the resulting w
// when it is neither 0 nor 1.
func (m Mat4) TransformVec3(p Vec3) Vec3 {
	x := m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z := m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	if w != 0 && w != 1 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// Ptr returns a pointer to the first element for gl.UniformMatrix4fv.
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}

// Inverse returns the inverse of m, or the identity when m is singular.
// It expands along 2x2 minors of the top and bottom row pairs.
func (m Mat4) Inverse() Mat4 {
	a := func(r, c int) float32 { return m[c*4+r] }

	s0 := a(0, 0)*a(1, 1) - a(1, 0)*a(0, 1)
	s1 := a(0, 0)*a(1, 2) - a(1, 0)*a(0, 2)
	s2 := a(0, 0)*a(1, 3) - a(1, 0)*a(0, 3)
	s3 := a(0, 1)*a(1, 2) - a(1, 1)*a(0, 2)
	s4 := a(0, 1)*a(1, 3) - a(1, 1)*a(0, 3)
	s5 := a(0, 2)*a(1, 3) - a(1, 2)*a(0, 3)

	c5 := a(2, 2)*a(3, 3) - a(3, 2)*a(2, 3)
	c4 := a(2, 1)*a(3, 3) - a(3, 1)*a(2, 3)
	c3 := a(2, 1)*a(3, 2) - a(3, 1)*a(2, 2)
	c2 := a(2, 0)*a(3, 3) - a(3, 0)*a(2, 3)
	c1 := a(2, 0)*a(3, 2) - a(3, 0)*a(2, 2)
	c0 := a(2, 0)*a(3, 1) - a(3, 0)*a(2, 1)

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return Identity()
	}
	inv := 1 / det

	b := [4][4]float32{
		{
			a(1, 1)*c5 - a(1, 2)*c4 + a(1, 3)*c3,
			-a(0, 1)*c5 + a(0, 2)*c4 - a(0, 3)*c3,
			a(3, 1)*s5 - a(3, 2)*s4 + a(3, 3)*s3,
			-a(2, 1)*s5 + a(2, 2)*s4 - a(2, 3)*s3,
		},
		{
			-a(1, 0)*c5 + a(1, 2)*c2 - a(1, 3)*c1,
			a(0, 0)*c5 - a(0, 2)*c2 + a(0, 3)*c1,
			-a(3, 0)*s5 + a(3, 2)*s2 - a(3, 3)*s1,
			a(2, 0)*s5 - a(2, 2)*s2 + a(2, 3)*s1,
		},
		{
			a(1, 0)*c4 - a(1, 1)*c2 + a(1, 3)*c0,
			-a(0, 0)*c4 + a(0, 1)*c2 - a(0, 3)*c0,
			a(3, 0)*s4 - a(3, 1)*s2 + a(3, 3)*s0,
			-a(2, 0)*s4 + a(2, 1)*s2 - a(2, 3)*s0,
		},
		{
			-a(1, 0)*c3 + a(1, 1)*c1 - a(1, 2)*c0,
			a(0, 0)*c3 - a(0, 1)*c1 + a(0, 2)*c0,
			-a(3, 0)*s3 + a(3, 1)*s1 - a(3, 2)*s0,
			a(2, 0)*s3 - a(2, 1)*s1 + a(2, 2)*s0,
		},
	}

	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[c*4+r] = b[r][c] * inv
		}
	}
	return out
}
