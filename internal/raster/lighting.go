package raster

import (
	"errors"
	"fmt"
	"math"

	"phong-renderer/internal/mathutil"
)

// DefaultShininess is the specular exponent used when LightConfig.Shininess is zero.
const DefaultShininess = 10

// ErrDegenerateVector is returned when a direction cannot be normalized.
var ErrDegenerateVector = errors.New("degenerate vector")

// LightConfig describes one directional light, an ambient light, the view
// direction and the per-channel reflection coefficients of the surface.
type LightConfig struct {
	View         mathutil.Vec3 // surface toward viewer
	AmbientColor RGB
	DirColor     RGB
	DirVec       mathutil.Vec3 // surface toward light
	AReflect     mathutil.Vec3
	DReflect     mathutil.Vec3
	SReflect     mathutil.Vec3
	Shininess    float64 // 0 means DefaultShininess
}

// TestLight is a fixed configuration used as a fixture by tests and tools.
var TestLight = LightConfig{
	View:         mathutil.Vec3{0, 0, 1},
	AmbientColor: RGB{0, 0, 0},
	DirColor:     RGB{252, 219, 3},
	DirVec:       mathutil.Vec3{0.5, 0.75, 1},
	AReflect:     mathutil.Vec3{0.1, 0.1, 0.1},
	DReflect:     mathutil.Vec3{0.5, 0.5, 0.5},
	SReflect:     mathutil.Vec3{0.5, 0.5, 0.5},
	Shininess:    DefaultShininess,
}

// Terms holds the three Phong contributions, each already clamped to [0, 255].
type Terms struct {
	Ambient  mathutil.Vec3
	Diffuse  mathutil.Vec3
	Specular mathutil.Vec3
}

// Sum adds the three terms componentwise.
func (t Terms) Sum() mathutil.Vec3 {
	return t.Ambient.Add(t.Diffuse).Add(t.Specular)
}

// Validate checks that the view and light directions can be normalized.
func (lc LightConfig) Validate() error {
	if !lc.View.IsFinite() || lc.View.IsZero() {
		return fmt.Errorf("light: view %v: %w", lc.View, ErrDegenerateVector)
	}
	if !lc.DirVec.IsFinite() || lc.DirVec.IsZero() {
		return fmt.Errorf("light: direction %v: %w", lc.DirVec, ErrDegenerateVector)
	}
	if lc.Shininess < 0 || math.IsNaN(lc.Shininess) {
		return fmt.Errorf("light: shininess %v must be >= 0", lc.Shininess)
	}
	return nil
}

func (lc LightConfig) shininess() float64 {
	if lc.Shininess == 0 {
		return DefaultShininess
	}
	return lc.Shininess
}

// Terms computes the clamped ambient, diffuse and specular contributions for
// a surface normal. The normal need not be unit length; a zero normal
// receives ambient light only.
func (lc LightConfig) Terms(normal mathutil.Vec3) Terms {
	normaln := normal.Normalize()
	viewn := lc.View.Normalize()
	dirvecn := lc.DirVec.Normalize()

	ndotdir := math.Max(0, normaln.Dot(dirvecn))

	dirColor := lc.DirColor.Vec3()
	iambient := lc.AReflect.MulAcross(lc.AmbientColor.Vec3())
	idiffuse := dirColor.MulAcross(lc.DReflect).Scale(ndotdir)

	// No highlight when the light is behind the surface.
	var ispecular mathutil.Vec3
	if ndotdir > 0 {
		reflected := normaln.Scale(2 * ndotdir).Sub(dirvecn)
		rdotv := math.Max(0, reflected.Dot(viewn))
		ispecular = dirColor.MulAcross(lc.SReflect).Scale(math.Pow(rdotv, lc.shininess()))
	}

	return Terms{
		Ambient:  iambient.Limit(0, 255),
		Diffuse:  idiffuse.Limit(0, 255),
		Specular: ispecular.Limit(0, 255),
	}
}

// ColorFromNorm returns the Phong-shaded color for a surface normal.
func (lc LightConfig) ColorFromNorm(normal mathutil.Vec3) RGB {
	return RGBFromVec3(lc.Terms(normal).Sum())
}

// ColorFromNormChecked is like ColorFromNorm but rejects zero-length or
// non-finite normals and light directions with ErrDegenerateVector.
func (lc LightConfig) ColorFromNormChecked(normal mathutil.Vec3) (RGB, error) {
	if !normal.IsFinite() || normal.IsZero() {
		return RGB{}, fmt.Errorf("light: normal %v: %w", normal, ErrDegenerateVector)
	}
	if err := lc.Validate(); err != nil {
		return RGB{}, err
	}
	return lc.ColorFromNorm(normal), nil
}
