package physics

import "github.com/zeusync/rigidsim/pkg/sequence"

// Ground is an optional static plane at height Y.
type Ground struct {
	Enabled bool
	Y       float64
}

// FlatGround returns an enabled ground plane at y.
func FlatGround(y float64) Ground {
	return Ground{Enabled: true, Y: y}
}

type ContactKind uint8

const (
	ContactGround ContactKind = iota + 1
	ContactPair
)

func (k ContactKind) String() string {
	switch k {
	case ContactGround:
		return "ground"
	case ContactPair:
		return "pair"
	default:
		return "unknown"
	}
}

// Contact is one detected collision. Ground contacts have B == NilBody.
// Info.Normal points from B towards A.
type Contact struct {
	Kind ContactKind
	A    BodyID
	B    BodyID
	Info CollisionInfo

	a, b *RigidBody
}

// DetectContacts finds every collision at the current positions without
// changing any body. Ground contacts come first in index order, then pairs
// (i, j) with i < j. Static bodies are never tested against the ground and
// static pairs are skipped.
func (w *World) DetectContacts(ground Ground) []Contact {
	var contacts []Contact

	if ground.Enabled {
		for _, e := range w.entries {
			if e.body.static {
				continue
			}
			info := CheckGroundCollision(e.body, ground.Y)
			if !info.HasCollision {
				continue
			}
			contacts = append(contacts, Contact{
				Kind: ContactGround,
				A:    e.id,
				Info: info,
				a:    e.body,
			})
		}
	}

	for i := 0; i < len(w.entries); i++ {
		ei := w.entries[i]
		for j := i + 1; j < len(w.entries); j++ {
			ej := w.entries[j]
			if ei.body.static && ej.body.static {
				continue
			}
			info := GetAABBCollisionInfo(ei.body, ej.body)
			if !info.HasCollision {
				continue
			}
			contacts = append(contacts, Contact{
				Kind: ContactPair,
				A:    ei.id,
				B:    ej.id,
				Info: info,
				a:    ei.body,
				b:    ej.body,
			})
		}
	}

	return contacts
}

// ResolvePositions pushes bodies out of each other and out of the ground.
// It does not touch velocities.
func (w *World) ResolvePositions(contacts []Contact) {
	for _, c := range contacts {
		if !c.Info.HasCollision || c.a == nil {
			continue
		}
		switch c.Kind {
		case ContactGround:
			liftFromGround(c.a, c.Info)
		case ContactPair:
			if c.b == nil || (c.a.static && c.b.static) {
				continue
			}
			separatePair(c.a, c.b, c.Info)
		}
	}
}

// ResolveVelocities bounces grounded bodies and exchanges pair impulses.
func (w *World) ResolveVelocities(contacts []Contact) {
	for _, c := range contacts {
		if !c.Info.HasCollision || c.a == nil {
			continue
		}
		switch c.Kind {
		case ContactGround:
			bounceOffGround(c.a)
		case ContactPair:
			if c.b == nil || (c.a.static && c.b.static) {
				continue
			}
			exchangeImpulse(c.a, c.b, c.Info)
		}
	}
}

// Grounded lists the bodies that touched the ground in contacts. It is the
// per-tick replacement for the sticky RigidBody.OnGround flag.
func Grounded(contacts []Contact) []BodyID {
	ground := sequence.From(contacts).Filter(func(c Contact) bool {
		return c.Kind == ContactGround && c.Info.HasCollision
	})
	return sequence.ToArray(ground, func(c Contact) BodyID { return c.A })
}
