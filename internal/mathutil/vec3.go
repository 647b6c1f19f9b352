package mathutil

import "math"

// Vec3 is a 3-component vector (value type, stack-allocated).
type Vec3 [3]float64

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// MulAcross returns the componentwise product of a and b.
func (a Vec3) MulAcross(b Vec3) Vec3 {
	return Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func (a Vec3) Dot(b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Len returns the Euclidean length. Components are scaled by the largest
// magnitude first, so finite vectors near the float64 range do not overflow.
func (v Vec3) Len() float64 {
	m := v.maxAbs()
	if m == 0 || math.IsInf(m, 0) || math.IsNaN(m) {
		return m
	}
	x, y, z := v[0]/m, v[1]/m, v[2]/m
	return m * math.Sqrt(x*x+y*y+z*z)
}

func (v Vec3) maxAbs() float64 {
	m := 0.0
	for _, c := range v {
		if math.IsNaN(c) {
			return c
		}
		m = math.Max(m, math.Abs(c))
	}
	return m
}

// Normalize returns v scaled to unit length.
// Vectors shorter than 1e-12 (including the zero vector) and non-finite
// vectors normalize to zero.
func (v Vec3) Normalize() Vec3 {
	if !v.IsFinite() || v.Len() < 1e-12 {
		return Vec3{}
	}
	m := v.maxAbs()
	u := Vec3{v[0] / m, v[1] / m, v[2] / m}
	l := math.Sqrt(u[0]*u[0] + u[1]*u[1] + u[2]*u[2])
	return Vec3{u[0] / l, u[1] / l, u[2] / l}
}

// IsZero reports whether v is too short to normalize.
func (v Vec3) IsZero() bool {
	return v.Len() < 1e-12
}

// IsFinite reports whether every component is a finite number.
func (v Vec3) IsFinite() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Limit clamps each component to [lo, hi]. NaN components become lo.
func (v Vec3) Limit(lo, hi float64) Vec3 {
	return Vec3{clamp(v[0], lo, hi), clamp(v[1], lo, hi), clamp(v[2], lo, hi)}
}

func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) || x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
