package physics

import (
	"slices"

	"github.com/google/uuid"

	"github.com/zeusync/rigidsim/internal/core/observability/log"
	"github.com/zeusync/rigidsim/pkg/sequence"
)

// World defaults.
const (
	DefaultTimeStep = 1.0 / 60.0
)

// DefaultGravity is Earth gravity along -Y.
var DefaultGravity = V3(0, -9.81, 0)

// BodyID is a stable handle for a body owned by a World. Unlike an index it
// survives removal of other bodies.
type BodyID uuid.UUID

// NilBody is the zero handle; no body ever has it.
var NilBody BodyID

func (id BodyID) String() string {
	return uuid.UUID(id).String()
}

type entry struct {
	id   BodyID
	body *RigidBody
}

// World owns a set of bodies, applies gravity and integrates them. It does
// not resolve collisions on its own; see DetectContacts and the Check/Resolve
// functions.
//
// Bodies keep their insertion order. RemoveBody shifts later indices down by
// one, so callers that hold on to bodies across removals should use BodyID.
type World struct {
	Gravity  Vec3
	TimeStep float64

	entries []entry
	byID    map[BodyID]*RigidBody
	logger  log.Log
}

type WorldOption func(*World)

func WithGravity(g Vec3) WorldOption {
	return func(w *World) { w.Gravity = g }
}

func WithTimeStep(dt float64) WorldOption {
	return func(w *World) { w.TimeStep = dt }
}

// WithLogger routes body lifecycle messages to l at debug level.
func WithLogger(l log.Log) WorldOption {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

func NewWorld(opts ...WorldOption) *World {
	w := &World{
		Gravity:  DefaultGravity,
		TimeStep: DefaultTimeStep,
		byID:     make(map[BodyID]*RigidBody),
		logger:   log.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// AddBody appends b and takes ownership of it. Adding nil is ignored and
// returns NilBody.
func (w *World) AddBody(b *RigidBody) BodyID {
	if b == nil {
		return NilBody
	}
	id := BodyID(uuid.New())
	w.entries = append(w.entries, entry{id: id, body: b})
	w.byID[id] = b
	w.logger.Debug("body added",
		log.Stringer("id", id),
		log.Int("index", len(w.entries)-1),
		log.Float64("mass", b.mass),
		log.Bool("static", b.static),
	)
	return id
}

// RemoveBody drops the body at index. Out of range indices are ignored.
func (w *World) RemoveBody(index int) {
	if index < 0 || index >= len(w.entries) {
		return
	}
	removed := w.entries[index]
	delete(w.byID, removed.id)
	w.entries = slices.Delete(w.entries, index, index+1)
	w.logger.Debug("body removed", log.Stringer("id", removed.id), log.Int("index", index))
}

// RemoveByID drops the body with the given handle and reports whether it existed.
func (w *World) RemoveByID(id BodyID) bool {
	index := w.IndexOf(id)
	if index < 0 {
		return false
	}
	w.RemoveBody(index)
	return true
}

func (w *World) ClearBodies() {
	n := len(w.entries)
	w.entries = nil
	w.byID = make(map[BodyID]*RigidBody)
	w.logger.Debug("bodies cleared", log.Int("count", n))
}

func (w *World) BodyCount() int {
	return len(w.entries)
}

// Body returns the body at index, or false when index is out of range.
func (w *World) Body(index int) (*RigidBody, bool) {
	if index < 0 || index >= len(w.entries) {
		return nil, false
	}
	return w.entries[index].body, true
}

// ID returns the handle of the body at index.
func (w *World) ID(index int) (BodyID, bool) {
	if index < 0 || index >= len(w.entries) {
		return NilBody, false
	}
	return w.entries[index].id, true
}

func (w *World) Lookup(id BodyID) (*RigidBody, bool) {
	b, ok := w.byID[id]
	return b, ok
}

// IndexOf returns the current index of id, or -1.
func (w *World) IndexOf(id BodyID) int {
	if _, ok := w.byID[id]; !ok {
		return -1
	}
	for i, e := range w.entries {
		if e.id == id {
			return i
		}
	}
	return -1
}

// Bodies returns the owned bodies in index order. The slice is a copy; the
// bodies are not.
func (w *World) Bodies() []*RigidBody {
	out := make([]*RigidBody, len(w.entries))
	for i, e := range w.entries {
		out[i] = e.body
	}
	return out
}

// DynamicBodies returns the non-static bodies in index order.
func (w *World) DynamicBodies() []*RigidBody {
	return w.dynamic().Collect()
}

// DynamicCount is the number of non-static bodies.
func (w *World) DynamicCount() int {
	return w.dynamic().Count()
}

func (w *World) dynamic() *sequence.Iterator[*RigidBody] {
	return sequence.From(w.Bodies()).Filter(func(b *RigidBody) bool { return !b.static })
}

// Step advances the world by its configured TimeStep.
func (w *World) Step() {
	w.StepDelta(w.TimeStep)
}

// StepDelta applies gravity and integrates every body by dt.
func (w *World) StepDelta(dt float64) {
	w.ApplyGravity()
	w.IntegrateBodies(dt)
}

// ApplyGravity adds gravity*mass as a force on every dynamic body, which
// yields the same acceleration regardless of mass.
func (w *World) ApplyGravity() {
	for _, e := range w.entries {
		if e.body.static {
			continue
		}
		e.body.ApplyForce(w.Gravity.Mul(e.body.mass))
	}
}

func (w *World) IntegrateBodies(dt float64) {
	for _, e := range w.entries {
		e.body.Integrate(dt)
	}
}
