package physics

import "math"

const (
	// DefaultGroundY is the height of the ground plane when none is given.
	DefaultGroundY = 0.0
	// RestingBounceThreshold is the speed below which a ground bounce is
	// snapped to zero so resting bodies do not jitter forever.
	RestingBounceThreshold = 1.0
)

// CollisionInfo describes one contact. When HasCollision is false the value
// is inert and every resolver ignores it.
type CollisionInfo struct {
	HasCollision     bool
	ContactPoint     Vec3
	Normal           Vec3
	PenetrationDepth float64
}

// NoCollision returns the inert CollisionInfo.
func NoCollision() CollisionInfo {
	return CollisionInfo{Normal: V3(0, 1, 0)}
}

func newCollision(point, normal Vec3, depth float64) CollisionInfo {
	return CollisionInfo{
		HasCollision:     true,
		ContactPoint:     point,
		Normal:           normal,
		PenetrationDepth: depth,
	}
}

// CheckGroundCollision tests the body against the horizontal plane y = groundY.
// Touching the plane counts as a contact of depth 0.
func CheckGroundCollision(body *RigidBody, groundY float64) CollisionInfo {
	box := body.AABB()
	if box.Min[1] > groundY {
		return NoCollision()
	}
	point := V3(body.Position[0], groundY, body.Position[2])
	return newCollision(point, V3(0, 1, 0), groundY-box.Min[1])
}

// ResolveGroundCollision lifts the body out of the ground, marks it grounded
// and bounces a falling body with its restitution.
func ResolveGroundCollision(body *RigidBody, info CollisionInfo) {
	if !info.HasCollision {
		return
	}
	liftFromGround(body, info)
	body.OnGround = true
	bounceOffGround(body)
}

func liftFromGround(body *RigidBody, info CollisionInfo) {
	body.Position[1] += info.PenetrationDepth
}

func bounceOffGround(body *RigidBody) {
	if body.Velocity[1] >= 0 {
		return
	}
	body.Velocity[1] = -body.Velocity[1] * body.Restitution
	if math.Abs(body.Velocity[1]) < RestingBounceThreshold {
		body.Velocity[1] = 0
	}
}

// CheckAABBCollision reports whether the boxes of a and b intersect.
func CheckAABBCollision(a, b *RigidBody) bool {
	return a.AABB().Intersects(b.AABB())
}

// GetAABBCollisionInfo returns the minimum translation contact between a and
// b. Normal points from b towards a, so moving a along it separates them.
// The contact point is the midpoint of the two centres, an approximation
// that resolution never reads.
func GetAABBCollisionInfo(a, b *RigidBody) CollisionInfo {
	boxA, boxB := a.AABB(), b.AABB()
	if !boxA.Intersects(boxB) {
		return NoCollision()
	}
	normal, depth := separation(boxA, boxB)
	point := a.Position.Add(b.Position).Mul(0.5)
	return newCollision(point, normal, depth)
}

// separation picks the axis with the least overlap. Ties go to x, then y.
// The order is arbitrary but must stay stable for replays.
func separation(a, b AABB) (normal Vec3, depth float64) {
	var overlap Vec3
	for i := range 3 {
		overlap[i] = math.Min(a.Max[i], b.Max[i]) - math.Max(a.Min[i], b.Min[i])
	}

	axis := 2
	switch {
	case overlap[0] <= overlap[1] && overlap[0] <= overlap[2]:
		axis = 0
	case overlap[1] <= overlap[2]:
		axis = 1
	}

	normal[axis] = 1
	if a.Center()[axis] < b.Center()[axis] {
		normal[axis] = -1
	}
	return normal, overlap[axis]
}

// ResolveAABBCollision separates a and b and exchanges an impulse along the
// contact normal. Static pairs and inert infos are ignored.
func ResolveAABBCollision(a, b *RigidBody, info CollisionInfo) {
	if !info.HasCollision || (a.static && b.static) {
		return
	}
	separatePair(a, b, info)
	exchangeImpulse(a, b, info)
}

// separatePair splits the correction by inverse mass, so the heavier body
// moves less. A static body never moves.
func separatePair(a, b *RigidBody, info CollisionInfo) {
	sep := info.Normal.Mul(info.PenetrationDepth)
	switch {
	case a.static:
		b.Position = b.Position.Sub(sep)
	case b.static:
		a.Position = a.Position.Add(sep)
	default:
		total := a.invMass + b.invMass
		a.Position = a.Position.Add(sep.Mul(a.invMass / total))
		b.Position = b.Position.Sub(sep.Mul(b.invMass / total))
	}
}

func exchangeImpulse(a, b *RigidBody, info CollisionInfo) {
	relative := a.Velocity.Sub(b.Velocity)
	alongNormal := relative.Dot(info.Normal)
	if alongNormal > 0 {
		return
	}

	e := math.Min(a.Restitution, b.Restitution)
	j := -(1 + e) * alongNormal / (a.invMass + b.invMass)
	impulse := info.Normal.Mul(j)

	if !a.static {
		a.Velocity = a.Velocity.Add(impulse.Mul(a.invMass))
	}
	if !b.static {
		b.Velocity = b.Velocity.Sub(impulse.Mul(b.invMass))
	}
}
