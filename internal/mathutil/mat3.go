// Package mathutil provides small value-type vector and matrix math.
package mathutil

// Mat3 is a row-major rotation or linear map, used to tilt the sphere model
// and to swing the turntable light. Element (r, c) lives at index r*3+c.
type Mat3 [9]float64

func Mat3Identity() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Mat3Mul composes two maps: applying the result equals applying b, then a.
func Mat3Mul(a, b Mat3) Mat3 {
	var m Mat3
	for r := 0; r < 3; r++ {
		row := a[r*3 : r*3+3]
		for c := 0; c < 3; c++ {
			m[r*3+c] = row[0]*b[c] + row[1]*b[3+c] + row[2]*b[6+c]
		}
	}
	return m
}

// MulVec3 maps a normal or direction through m.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		Vec3{m[0], m[1], m[2]}.Dot(v),
		Vec3{m[3], m[4], m[5]}.Dot(v),
		Vec3{m[6], m[7], m[8]}.Dot(v),
	}
}

// Transpose swaps rows and columns. For a pure rotation this is its inverse.
func (m Mat3) Transpose() Mat3 {
	var t Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			t[c*3+r] = m[r*3+c]
		}
	}
	return t
}
