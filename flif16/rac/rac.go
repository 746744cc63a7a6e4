// Package rac implements FLIF16's binary range coder: the arithmetic
// decoding primitive every higher-level reader (near-zero integers, MANIAC
// trees, transform parameters) is built on. The shape mirrors the teacher
// repo's MQ decoder (jpeg2000/mqc), a structurally equivalent
// context-adaptive binary arithmetic coder, adapted to FLIF16's 24-bit
// range/16-bit-minimum renormalization scheme instead of JPEG2000's.
package rac

import "github.com/cocosip/go-flif16/flif16/bytesource"

const (
	maxRangeBits = 24
	minRangeBits = 16
	maxRange     = uint32(1) << maxRangeBits
	minRange     = uint32(1) << minRangeBits
)

// Decoder is a binary range decoder over a growable byte source. All state
// needed to resume a suspended operation lives on the Decoder itself or on
// the small per-operation resume structs (Uniform, below) — none of it is
// implicit call-stack state, so every read is safely re-callable after
// ErrNeedMoreData.
type Decoder struct {
	src *bytesource.Source

	low, rng uint32

	initStarted bool

	// Resume state for a single in-flight bit decode: renorm may need more
	// bytes than are currently available, so the arithmetic update (which
	// must only be applied once) is gated behind renormPending.
	renormPending bool
	pendingBit    int
}

// New creates a range decoder over src. Init must be called (and may need
// to be retried) before any bit is decoded.
func New(src *bytesource.Source) *Decoder {
	return &Decoder{src: src}
}

// Init performs the RAC prelude: fill low with the first three stream
// bytes. Resumable — on ErrNeedMoreData, call Init again after extending
// the source; already-consumed bytes are not re-read.
func (d *Decoder) Init() error {
	if !d.initStarted {
		d.rng = maxRange
		d.initStarted = true
	}
	for d.rng > 1 {
		b, ok := d.src.GetByte()
		if !ok {
			return ErrNeedMoreData
		}
		d.low = d.low<<8 | uint32(b)
		d.rng >>= 8
	}
	d.rng = maxRange
	return nil
}

// readBit performs one binary decode against chance c (the split point in
// [1, rng-1]) and renormalizes. Resumable: the arithmetic commit happens at
// most once per logical read, guarded by renormPending.
func (d *Decoder) readBit(c uint32) (int, error) {
	if !d.renormPending {
		if d.low >= d.rng-c {
			d.pendingBit = 1
			d.low -= d.rng - c
			d.rng = c
		} else {
			d.pendingBit = 0
			d.rng -= c
		}
		d.renormPending = true
	}
	for d.rng <= minRange {
		b, ok := d.src.GetByte()
		if !ok {
			return 0, ErrNeedMoreData
		}
		d.low = d.low<<8 | uint32(b)
		d.rng <<= 8
	}
	d.renormPending = false
	return d.pendingBit, nil
}

// ReadBitEqui reads one equiprobable bit (chance = rng/2).
func (d *Decoder) ReadBitEqui() (int, error) {
	return d.readBit(d.rng >> 1)
}

// chanceToSplit converts a 12-bit probability (that the bit is 1) into the
// RAC split point c, using the same 32-bit-safe scaling formula as the
// reference decoder: c = round(rng * b12 / 4096) computed without needing a
// 64-bit multiply.
func chanceToSplit(rng uint32, b12 uint16) uint32 {
	p := uint32(b12)
	return (((rng&0xFFF)*p+0x800)>>12 + (rng>>12)*p)
}

// ReadWithChance reads one bit using a 12-bit probability that the bit is
// 1. It does not update the supplied chance context — callers own context
// adaptation (see the nzint codec), since the same context instance is
// typically shared across many reads at different chance values.
func (d *Decoder) ReadWithChance(b12 uint16) (int, error) {
	c := chanceToSplit(d.rng, b12)
	if c < 1 {
		c = 1
	}
	if c > d.rng-1 {
		c = d.rng - 1
	}
	return d.readBit(c)
}

// Range exposes the current range, mainly for tests asserting the §8
// invariant `2^16 < range <= 2^24`.
func (d *Decoder) Range() uint32 { return d.rng }

// Low exposes the current low value, mainly for tests.
func (d *Decoder) Low() uint32 { return d.low }

// Uniform is the resumable state for a single read_uniform(min, len)
// operation: a binary search over [min, min+len] reading one equiprobable
// bit per step. Each Uniform is single-use; construct a fresh one per
// field read.
type Uniform struct {
	min    int64
	length int64
	done   bool
}

// NewUniform starts a uniform-integer read over the inclusive range
// [min, max].
func NewUniform(min, max int64) *Uniform {
	return &Uniform{min: min, length: max - min}
}

// Step advances the bisection as far as currently-buffered bytes allow. On
// success it returns the decoded value with a nil error; on suspension it
// returns ErrNeedMoreData and must be retried (with the same Uniform) after
// more bytes arrive.
func (u *Uniform) Step(d *Decoder) (int64, error) {
	for u.length > 0 {
		bit, err := d.ReadBitEqui()
		if err != nil {
			return 0, err
		}
		mid := u.length / 2
		if bit == 1 {
			u.min += mid + 1
			u.length -= mid + 1
		} else {
			u.length = mid
		}
	}
	u.done = true
	return u.min, nil
}

// ReadUniformInt is a convenience wrapper for call sites that are
// themselves already resumable at a coarser granularity (they retry the
// whole enclosing step on ErrNeedMoreData, so a fresh Uniform per call is
// safe only when length is 0 on the first attempt — e.g. single-shot
// fixed-width fields). For fields that may suspend mid-read, callers must
// hold a *Uniform across retries instead.
func ReadUniformInt(d *Decoder, min, max int64) (int64, error) {
	u := NewUniform(min, max)
	return u.Step(d)
}
