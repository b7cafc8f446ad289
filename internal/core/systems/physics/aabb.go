package physics

import "math"

// AABB is an axis-aligned bounding box. A well-formed box has Min <= Max on
// every axis; the zero value is a degenerate box at the origin.
type AABB struct {
	Min Vec3
	Max Vec3
}

func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromCenter builds a box around center with the given full extents.
func NewAABBFromCenter(center Vec3, width, height, depth float64) AABB {
	half := V3(width*0.5, height*0.5, depth*0.5)
	return AABB{
		Min: center.Sub(half),
		Max: center.Add(half),
	}
}

// Intersects uses closed intervals: boxes that only touch still intersect.
func (a AABB) Intersects(o AABB) bool {
	return a.Min[0] <= o.Max[0] && a.Max[0] >= o.Min[0] &&
		a.Min[1] <= o.Max[1] && a.Max[1] >= o.Min[1] &&
		a.Min[2] <= o.Max[2] && a.Max[2] >= o.Min[2]
}

// Contains reports whether p lies inside the box, boundaries included.
func (a AABB) Contains(p Vec3) bool {
	return p[0] >= a.Min[0] && p[0] <= a.Max[0] &&
		p[1] >= a.Min[1] && p[1] <= a.Max[1] &&
		p[2] >= a.Min[2] && p[2] <= a.Max[2]
}

func (a AABB) Center() Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

func (a AABB) Size() Vec3 {
	return a.Max.Sub(a.Min)
}

// Volume is the product of the extents. Ill-formed boxes are not validated
// and may report a negative volume.
func (a AABB) Volume() float64 {
	s := a.Size()
	return s[0] * s[1] * s[2]
}

// Expand grows the box by amount on every side. Negative amounts shrink it.
func (a *AABB) Expand(amount float64) {
	d := V3(amount, amount, amount)
	a.Min = a.Min.Sub(d)
	a.Max = a.Max.Add(d)
}

// ExpandToPoint widens the box just enough to cover p.
func (a *AABB) ExpandToPoint(p Vec3) {
	for i := range 3 {
		a.Min[i] = math.Min(a.Min[i], p[i])
		a.Max[i] = math.Max(a.Max[i], p[i])
	}
}

// ExpandToBox widens the box just enough to cover o.
func (a *AABB) ExpandToBox(o AABB) {
	a.ExpandToPoint(o.Min)
	a.ExpandToPoint(o.Max)
}
