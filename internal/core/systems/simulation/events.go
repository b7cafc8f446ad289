package simulation

import "github.com/zeusync/rigidsim/internal/core/systems/physics"

// Event types published on the bus.
const (
	EventContact  = "physics.contact"
	EventGrounded = "physics.grounded"
	EventDigest   = "physics.digest"

	eventSource = "simulation"
)

// ContactEvent carries one contact resolved during Tick.
type ContactEvent struct {
	Tick    uint64
	Contact physics.Contact
}

// GroundedEvent lists the bodies resting on the ground after Tick. It is
// published every tick, also when Bodies is empty.
type GroundedEvent struct {
	Tick   uint64
	Bodies []physics.BodyID
}

type DigestEvent struct {
	Tick   uint64
	Digest uint64
	Bodies int
}

// TickReport summarizes one fixed step.
type TickReport struct {
	Tick     uint64
	Contacts []physics.Contact
	Grounded []physics.BodyID
	// Digest is set only on ticks where HasDigest is true.
	Digest    uint64
	HasDigest bool
}
