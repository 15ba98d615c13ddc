package imageview

import "math/bits"

// PCG-XSH-RR 64/32 constants.
const (
	// DefaultIncrement is the stream selector used by NewRand32.
	DefaultIncrement uint64 = 1442695040888963407

	pcgMultiplier uint64 = 6364136223846793005
)

// Rand32 is a seeded PCG32 generator (64-bit state, 32-bit output).
//
// The output stream is bit-compatible with oorandom's Rand32 for the same
// seed and increment, on every platform.
// Rand32 is not safe for concurrent use; the Scene owns exactly one.
type Rand32 struct {
	state uint64
	inc   uint64
}

// NewRand32 returns a generator seeded with seed on the default stream.
func NewRand32(seed uint64) *Rand32 {
	return NewRand32Inc(seed, DefaultIncrement)
}

// NewRand32Inc returns a generator seeded with seed on the stream selected
// by increment. Only the low 63 bits of increment are significant.
func NewRand32Inc(seed, increment uint64) *Rand32 {
	r := &Rand32{inc: increment<<1 | 1}
	r.Uint32()
	r.state += seed
	r.Uint32()
	return r
}

// Uint32 returns the next value of the stream.
func (r *Rand32) Uint32() uint32 {
	old := r.state
	r.state = old*pcgMultiplier + r.inc
	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	rot := int(old >> 59)
	return bits.RotateLeft32(xorshifted, -rot)
}

// Int32 returns the next value of the stream reinterpreted as signed.
func (r *Rand32) Int32() int32 {
	return int32(r.Uint32())
}

// State returns the raw generator state and increment.
func (r *Rand32) State() (state, inc uint64) {
	return r.state, r.inc
}
