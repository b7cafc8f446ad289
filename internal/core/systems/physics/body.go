package physics

// Defaults applied by NewRigidBody and NewDefaultRigidBody.
const (
	DefaultMass        = 1.0
	DefaultFriction    = 0.7
	DefaultRestitution = 0.3
)

// RigidBody is a non-rotating axis-aligned box.
//
// Mass, inverse mass and the static flag are kept consistent by SetMass:
// a body is static exactly when its mass is <= 0, and then its inverse mass
// is exactly 0. Forces accumulate into Acceleration until Integrate consumes
// them.
type RigidBody struct {
	Position     Vec3
	Velocity     Vec3
	Acceleration Vec3
	// Size holds the full extents of the box.
	Size Vec3

	Friction    float64
	Restitution float64

	// OnGround is set by ResolveGroundCollision and never cleared here.
	OnGround bool

	mass    float64
	invMass float64
	static  bool
}

func NewRigidBody(position, size Vec3, mass float64) *RigidBody {
	b := &RigidBody{
		Position:    position,
		Size:        size,
		Friction:    DefaultFriction,
		Restitution: DefaultRestitution,
	}
	b.SetMass(mass)
	return b
}

// NewDefaultRigidBody returns a unit box of mass 1 at the origin.
func NewDefaultRigidBody() *RigidBody {
	return NewRigidBody(Vec3{}, V3(1, 1, 1), DefaultMass)
}

func (b *RigidBody) Mass() float64        { return b.mass }
func (b *RigidBody) InverseMass() float64 { return b.invMass }
func (b *RigidBody) IsStatic() bool       { return b.static }

// SetMass is the single place where mass, inverse mass and static-ness change.
func (b *RigidBody) SetMass(mass float64) {
	b.mass = mass
	if mass > 0 {
		b.invMass = 1 / mass
		b.static = false
		return
	}
	b.invMass = 0
	b.static = true
}

// MakeStatic pins the body and drops all of its motion.
func (b *RigidBody) MakeStatic() {
	b.SetMass(0)
	b.Velocity = Vec3{}
	b.Acceleration = Vec3{}
}

// MakeDynamic sets the body's mass. A non-positive mass leaves it static.
func (b *RigidBody) MakeDynamic(mass float64) {
	b.SetMass(mass)
}

// ApplyForce accumulates f/m into the acceleration until the next Integrate.
func (b *RigidBody) ApplyForce(f Vec3) {
	if b.static || b.invMass == 0 {
		return
	}
	b.Acceleration.AddInPlace(f.Mul(b.invMass))
}

// ApplyImpulse changes velocity instantly by j/m.
func (b *RigidBody) ApplyImpulse(j Vec3) {
	if b.static || b.invMass == 0 {
		return
	}
	b.Velocity.AddInPlace(j.Mul(b.invMass))
}

func (b *RigidBody) ClearForces() {
	b.Acceleration = Vec3{}
}

// Integrate advances the body by dt with semi-implicit Euler: velocity first,
// then position from the new velocity. Accumulated forces are consumed.
func (b *RigidBody) Integrate(dt float64) {
	if b.static {
		return
	}
	b.Velocity.AddInPlace(b.Acceleration.Mul(dt))
	b.Position.AddInPlace(b.Velocity.Mul(dt))
	b.ClearForces()
}

// AABB derives the bounding box from the current position and size.
func (b *RigidBody) AABB() AABB {
	half := b.Size.Mul(0.5)
	return AABB{
		Min: b.Position.Sub(half),
		Max: b.Position.Add(half),
	}
}

func (b *RigidBody) Center() Vec3 {
	return b.Position
}

// HasInfiniteMass compares the inverse mass with 0 exactly.
func (b *RigidBody) HasInfiniteMass() bool {
	return b.invMass == 0
}
