package math

// Mat3 is a 3x3 matrix in column-major order.
type Mat3 [9]float32

// Column returns column i.
func (m Mat3) Column(i int) Vec3 {
	return Vec3{m[i*3], m[i*3+1], m[i*3+2]}
}

// MulVec3 returns m * v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}

// NormalizeColumns returns m with each column scaled to unit length.
// For a TRS matrix this strips the scale and leaves an orthonormal basis.
func (m Mat3) NormalizeColumns() Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		c := m.Column(i).Normalize()
		r[i*3], r[i*3+1], r[i*3+2] = c.X, c.Y, c.Z
	}
	return r
}
