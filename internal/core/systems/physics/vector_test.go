package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func assertVec(t *testing.T, want, got Vec3) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], eps, "component %d of %v", i, got)
	}
}

func TestVec3Arithmetic(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, -5, 6)

	assert.Equal(t, V3(5, -3, 9), a.Add(b))
	assert.Equal(t, V3(-3, 7, -3), a.Sub(b))
	assert.Equal(t, V3(2, 4, 6), a.Mul(2))
	assert.Equal(t, 4.0-10.0+18.0, a.Dot(b))
	assert.Equal(t, V3(1, 2, 3), a, "pure operators must not mutate")
}

func TestVec3InPlace(t *testing.T) {
	v := V3(1, 1, 1)
	v.AddInPlace(V3(1, 2, 3))
	assert.Equal(t, V3(2, 3, 4), v)

	v.MulInPlace(0.5)
	assert.Equal(t, V3(1, 1.5, 2), v)
}

func TestVec3CrossIsRightHanded(t *testing.T) {
	x, y, z := V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1)

	assert.Equal(t, z, x.Cross(y))
	assert.Equal(t, x, y.Cross(z))
	assert.Equal(t, y, z.Cross(x))
	assert.Equal(t, z.Mul(-1), y.Cross(x))
}

func TestVec3Length(t *testing.T) {
	v := V3(3, 4, 12)
	assert.Equal(t, 13.0, v.Len())
	assert.Equal(t, 169.0, v.LenSqr())
	assert.Equal(t, 0.0, Vec3{}.Len())
}

func TestVec3Normalized(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
	}{
		{"axis", V3(0, 5, 0)},
		{"diagonal", V3(1, 1, 1)},
		{"negative", V3(-3, 4, -12)},
		{"large", V3(1e150, 1e150, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.v.Normalized()
			assert.InDelta(t, 1.0, n.Len(), 1e-12)
			assert.True(t, n.IsFinite())
		})
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	assert.Equal(t, Vec3{}, Vec3{}.Normalized())

	v := Vec3{}
	v.Normalize()
	assert.Equal(t, Vec3{}, v)
	assert.False(t, math.IsNaN(v[0]))
}

func TestVec3NormalizeInPlace(t *testing.T) {
	v := V3(0, 0, -2)
	v.Normalize()
	assert.Equal(t, V3(0, 0, -1), v)
}

func TestVec3IsFinite(t *testing.T) {
	assert.True(t, V3(1, 2, 3).IsFinite())
	assert.False(t, V3(math.NaN(), 0, 0).IsFinite())
	assert.False(t, V3(0, math.Inf(-1), 0).IsFinite())
}
