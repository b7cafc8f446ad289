package physics

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Digest hashes the full simulation state of every body in index order.
// Two worlds that were built and stepped identically have equal digests,
// which makes it usable for lockstep and replay checks. Handles are not
// part of the state.
func (w *World) Digest() uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 8*18)
	for _, e := range w.entries {
		b := e.body
		buf = buf[:0]
		buf = appendVec(buf, b.Position)
		buf = appendVec(buf, b.Velocity)
		buf = appendVec(buf, b.Acceleration)
		buf = appendVec(buf, b.Size)
		buf = appendFloat(buf, b.mass)
		buf = appendFloat(buf, b.Friction)
		buf = appendFloat(buf, b.Restitution)
		var flags uint64
		if b.static {
			flags |= 1
		}
		if b.OnGround {
			flags |= 2
		}
		buf = binary.LittleEndian.AppendUint64(buf, flags)
		_, _ = d.Write(buf)
	}
	return d.Sum64()
}

func appendVec(buf []byte, v Vec3) []byte {
	for _, c := range v {
		buf = appendFloat(buf, c)
	}
	return buf
}

func appendFloat(buf []byte, f float64) []byte {
	return binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
}
