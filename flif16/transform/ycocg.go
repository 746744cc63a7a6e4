package transform

import "github.com/cocosip/go-flif16/flif16/colorrange"

// YCoCg takes no parameters; it only needs Init to validate the
// predecessor has at least three planes with non-negative minimums, and an
// Inverse that runs FLIF16's reversible YCoCg transform and clamps each
// recovered channel into the predecessor's range.
func (t *Transform) ycocgInit(prev *colorrange.Range) error {
	if prev.NumPlanes < 3 {
		return ErrInvalidData
	}
	if prev.Min(0) < 0 || prev.Min(1) < 0 || prev.Min(2) < 0 {
		return ErrInvalidData
	}
	return nil
}

func (t *Transform) ycocgInverse(prev *colorrange.Range, vals []int32) []int32 {
	out := append([]int32(nil), vals...)
	r, g, b := colorrange.RCTInverse(vals[0], vals[1], vals[2])
	out[0] = clip(r, prev.Min(0), prev.Max(0))
	out[1] = clip(g, prev.Min(1), prev.Max(1))
	out[2] = clip(b, prev.Min(2), prev.Max(2))
	return out
}

func clip(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
