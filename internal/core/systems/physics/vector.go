package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a 3-component vector. Arithmetic methods return new values;
// AddInPlace, MulInPlace and Normalize mutate the receiver for accumulation.
type Vec3 mgl64.Vec3

// V3 builds a Vec3 from its components.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

func (v Vec3) X() float64 { return v[0] }
func (v Vec3) Y() float64 { return v[1] }
func (v Vec3) Z() float64 { return v[2] }

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3(mgl64.Vec3(v).Add(mgl64.Vec3(o)))
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3(mgl64.Vec3(v).Sub(mgl64.Vec3(o)))
}

// Mul scales every component by s.
func (v Vec3) Mul(s float64) Vec3 {
	return Vec3(mgl64.Vec3(v).Mul(s))
}

func (v Vec3) Dot(o Vec3) float64 {
	return mgl64.Vec3(v).Dot(mgl64.Vec3(o))
}

// Cross is right-handed: X cross Y == Z.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3(mgl64.Vec3(v).Cross(mgl64.Vec3(o)))
}

func (v Vec3) Len() float64 {
	return mgl64.Vec3(v).Len()
}

// LenSqr is the squared length; cheaper than Len for comparisons.
func (v Vec3) LenSqr() float64 {
	return v.Dot(v)
}

// Normalized returns the unit vector in the direction of v. The zero vector
// normalizes to itself instead of producing NaN.
func (v Vec3) Normalized() Vec3 {
	l := v.Len()
	if l > 0 {
		return Vec3{v[0] / l, v[1] / l, v[2] / l}
	}
	return Vec3{}
}

func (v *Vec3) AddInPlace(o Vec3) {
	*v = v.Add(o)
}

func (v *Vec3) MulInPlace(s float64) {
	*v = v.Mul(s)
}

// Normalize scales v to unit length in place. A zero vector is left as is.
func (v *Vec3) Normalize() {
	*v = v.Normalized()
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec3) IsFinite() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v[0], v[1], v[2])
}
