package rac

import "math/bits"

// NZInt is the resumable state for one near-zero integer read
// (nz_int(ctx, min, max) in spec.md §4.2). It mirrors the reference
// decoder's segmented ff_flif16_rac_read_nz_int: a single read_nz_int call
// may suspend at any bit read and must be resumed by calling Step again
// with the same Decoder/ChanceTable/ChanceContext.
type NZInt struct {
	min, max int32

	active  bool
	segment int

	sign             int
	amin, amax       int32
	emax, e          int32
	have, left       int32
	minabs1, maxabs0 int32
	pos              int32
	pendingMant      bool
}

// NewNZInt starts a near-zero integer read over the inclusive range
// [min, max].
func NewNZInt(min, max int32) *NZInt {
	return &NZInt{min: min, max: max}
}

func log2Floor(x int32) int32 {
	if x <= 0 {
		return 0
	}
	return int32(bits.Len32(uint32(x))) - 1
}

// Step advances the read as far as currently-buffered bytes allow.
func (n *NZInt) Step(d *Decoder, t *ChanceTable, ctx *ChanceContext) (int32, error) {
	if n.min == n.max {
		return n.min, nil
	}

	if !n.active {
		n.segment = 0
		n.amin = 1
		n.active = true
		n.sign = 0
		n.have = 0
	}

	if n.segment == 0 {
		bit, err := ctx.readSymbol(d, t, slotZero)
		if err != nil {
			return 0, err
		}
		if bit != 0 {
			n.active = false
			return 0, nil
		}
		n.segment = 1
	}

	if n.segment == 1 {
		if n.min < 0 {
			if n.max > 0 {
				bit, err := ctx.readSymbol(d, t, slotSign)
				if err != nil {
					return 0, err
				}
				n.sign = bit
			} else {
				n.sign = 0
			}
		} else {
			n.sign = 1
		}
		if n.sign != 0 {
			n.amax = n.max
		} else {
			n.amax = -n.min
		}
		n.emax = log2Floor(n.amax)
		n.e = log2Floor(n.amin)
		n.segment = 2
	}

	if n.segment == 2 {
		for n.e < n.emax {
			bit, err := ctx.readSymbol(d, t, slotExp(int(n.e)*2+n.sign))
			if err != nil {
				return 0, err
			}
			if bit != 0 {
				break
			}
			n.e++
		}
		n.have = int32(1) << uint(n.e)
		n.left = n.have - 1
		n.pos = n.e
		n.segment = 3
	}

	for n.pos > 0 {
		if !n.pendingMant {
			n.pos--
			n.left >>= 1
			n.minabs1 = n.have | (int32(1) << uint(n.pos))
			n.maxabs0 = n.have | n.left

			if n.minabs1 > n.amax {
				continue
			}
			if n.maxabs0 < n.amin {
				n.have = n.minabs1
				continue
			}
			n.pendingMant = true
		}

		bit, err := ctx.readSymbol(d, t, slotMant(int(n.pos)))
		if err != nil {
			return 0, err
		}
		n.pendingMant = false
		if bit != 0 {
			n.have = n.minabs1
		}
	}

	result := n.have
	if n.sign == 0 {
		result = -n.have
	}
	n.active = false
	n.segment = 0
	return result, nil
}

// GNZInt is the generalized near-zero reader: it shifts an interval that
// does not straddle zero so the underlying NZInt sees a zero-straddling
// window, then offsets the result back (ff_flif16_rac_read_gnz_int).
type GNZInt struct {
	inner  *NZInt
	offset int32
}

// NewGNZInt starts a generalized near-zero integer read over [min, max].
func NewGNZInt(min, max int32) *GNZInt {
	switch {
	case min > 0:
		return &GNZInt{inner: NewNZInt(0, max-min), offset: min}
	case max < 0:
		return &GNZInt{inner: NewNZInt(min-max, 0), offset: max}
	default:
		return &GNZInt{inner: NewNZInt(min, max), offset: 0}
	}
}

// Step advances the read; semantics match NZInt.Step.
func (g *GNZInt) Step(d *Decoder, t *ChanceTable, ctx *ChanceContext) (int32, error) {
	v, err := g.inner.Step(d, t, ctx)
	if err != nil {
		return 0, err
	}
	return v + g.offset, nil
}
