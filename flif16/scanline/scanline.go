// Package scanline implements FLIF16's non-interlaced pixel decoder
// (spec §4.8): a causal MEDIAN3 predictor feeding a per-plane MANIAC leaf
// lookup, with frame-dup (seen_before) short-circuiting whole frames.
//
// The interlaced ("zoomlevel") path is out of scope, per spec §1 — the
// reference decoder's mainline doesn't implement it either. Per-pixel
// frame-lookback indirection (a distinct, rarer feature from whole-frame
// seen_before duplication) is likewise not implemented, consistent with
// the transform package leaving FrameLookback declared-but-unsupported.
package scanline

import (
	"github.com/cocosip/go-flif16/flif16/colorrange"
	"github.com/cocosip/go-flif16/flif16/maniac"
	"github.com/cocosip/go-flif16/flif16/pixel"
	"github.com/cocosip/go-flif16/flif16/rac"
)

// PropertyRanges builds the base property-window vector used to construct
// plane p's MANIAC tree reader, matching predict's property vector
// layout exactly (same order, same count). hasAlpha reports whether plane
// 3 exists (more than three channels), whether or not it is constant.
func PropertyRanges(finalRange *colorrange.Range, p int, hasAlpha bool) []maniac.PropRange {
	var ranges []maniac.PropRange
	diffRange := func(lo, hi int32) maniac.PropRange {
		return maniac.PropRange{Min: lo - hi, Max: hi - lo}
	}

	if p < 3 {
		for ch := 0; ch < p; ch++ {
			ranges = append(ranges, maniac.PropRange{Min: finalRange.Min(ch), Max: finalRange.Max(ch)})
		}
		if hasAlpha {
			ranges = append(ranges, maniac.PropRange{Min: finalRange.Min(3), Max: finalRange.Max(3)})
		}
	}

	lo, hi := finalRange.Min(p), finalRange.Max(p)
	ranges = append(ranges,
		maniac.PropRange{Min: lo, Max: hi}, // guess
		maniac.PropRange{Min: 0, Max: 2},   // which
		diffRange(lo, hi),                  // left-topleft
		diffRange(lo, hi),                  // topleft-top
		diffRange(lo, hi),                  // top-topright
		diffRange(lo, hi),                  // toptop-top
		diffRange(lo, hi),                  // leftleft-left
	)
	return ranges
}

// planeOrder is the decode order from spec §4.8: alpha before luma before
// chroma. Plane 4 (frame lookback) is intentionally absent; see the
// package doc comment.
var planeOrder = [...]int{3, 0, 1, 2}

// Decoder drives the scanline pixel decode across every non-constant
// plane, frame, row and column, resumable at any single MANIAC read.
type Decoder struct {
	buf        *pixel.Buffer
	finalRange *colorrange.Range
	trees      []*maniac.Tree // indexed by plane number 0..3
	ct         *rac.ChanceTable
	alphazero  bool

	// invisiblePredictor selects the no-coding fill value written for a
	// fully-transparent pixel (alphazero, alpha == 0): 0 = MEDIAN3 guess,
	// 1 = left neighbor, 2 = top neighbor.
	invisiblePredictor int32

	seq []int // planeOrder filtered to planes present and non-constant

	planePos, frameIdx, row, col int
	colBegin, colEnd             int
	rowInited                    bool

	havePending bool
	pendingGNZ  *rac.GNZInt
	pendingCtx  *rac.ChanceContext
	pendingBase int32 // the snapped guess; final value = pendingBase + delta
}

// NewDecoder builds a scanline Decoder. trees must have one entry per
// plane 0..buf.NumPlanes-1 (nil for constant planes, which are never
// consulted).
func NewDecoder(buf *pixel.Buffer, finalRange *colorrange.Range, trees []*maniac.Tree, ct *rac.ChanceTable, alphazero bool) *Decoder {
	d := &Decoder{buf: buf, finalRange: finalRange, trees: trees, ct: ct, alphazero: alphazero}
	for _, p := range planeOrder {
		if p >= buf.NumPlanes {
			continue
		}
		if finalRange.Min(p) == finalRange.Max(p) {
			continue // constant plane: already fully populated at allocation
		}
		d.seq = append(d.seq, p)
	}
	return d
}

// SetInvisiblePredictor sets the fill-value selector for fully-transparent
// pixels, read from the bitstream once the transform pipeline is known
// (spec §4.5's "invisible-pixel predictor" field).
func (s *Decoder) SetInvisiblePredictor(v int32) {
	s.invisiblePredictor = v
}

// Step advances the decode as far as currently-buffered bytes allow,
// returning done=true once every plane/frame/row/column has been produced.
func (s *Decoder) Step(d *rac.Decoder) (bool, error) {
	for s.planePos < len(s.seq) {
		p := s.seq[s.planePos]

		for s.frameIdx < len(s.buf.Frames) {
			frame := s.buf.Frames[s.frameIdx]

			if frame.SeenBefore >= 0 {
				frame.Planes[p].CopyRowFrom(s.buf.Frames[frame.SeenBefore].Planes[p], 0)
				for r := 1; r < frame.Planes[p].Height; r++ {
					frame.Planes[p].CopyRowFrom(s.buf.Frames[frame.SeenBefore].Planes[p], r)
				}
				s.frameIdx++
				continue
			}

			for s.row < frame.Planes[p].Height {
				if !s.rowInited {
					s.colBegin, s.colEnd = frame.RowExtent(s.row, frame.Planes[p].Width)
					s.col = s.colBegin
					s.rowInited = true
				}

				for s.col < s.colEnd {
					done, err := s.stepPixel(d, frame, p)
					if err != nil {
						return false, err
					}
					if !done {
						return false, nil
					}
					s.col++
				}

				s.row++
				s.rowInited = false
			}

			s.row = 0
			s.frameIdx++
		}

		s.frameIdx = 0
		s.planePos++
	}
	return true, nil
}

// stepPixel decodes (or predicts, or copies) one pixel of plane p at the
// current (row, col). Returns done=false on ErrNeedMoreData, with all
// progress preserved in s.pending*.
func (s *Decoder) stepPixel(d *rac.Decoder, frame *pixel.Frame, p int) (bool, error) {
	if !s.havePending {
		if s.alphazero && p < 3 && s.buf.NumPlanes > 3 && frame.Planes[3].Get(s.row, s.col) == 0 {
			guess, left, top, _ := s.predict(frame, p)
			fill := guess
			switch s.invisiblePredictor {
			case 1:
				fill = left
			case 2:
				fill = top
			}
			frame.Planes[p].Set(s.row, s.col, fill)
			return true, nil
		}

		guess, _, _, props := s.predict(frame, p)
		prior := s.priorValues(frame, p)
		lo, hi := s.finalRange.MinMax(p, prior)
		snapped := s.finalRange.Snap(p, prior, guess)
		if lo > hi {
			hi = lo
		}

		s.pendingCtx = s.trees[p].Lookup(props)
		s.pendingGNZ = rac.NewGNZInt(lo-snapped, hi-snapped)
		s.pendingBase = snapped
		s.havePending = true
	}

	delta, err := s.pendingGNZ.Step(d, s.ct, s.pendingCtx)
	if err != nil {
		return false, err
	}
	frame.Planes[p].Set(s.row, s.col, s.pendingBase+delta)
	s.havePending = false
	return true, nil
}

// priorValues returns the values of planes already decoded ahead of p at
// the current pixel, for colorrange's conditional minmax. Decode order is
// alpha before color (planeOrder), so "previously decoded color planes"
// is empty while decoding alpha itself, not planes 0..p-1 by index.
func (s *Decoder) priorValues(frame *pixel.Frame, p int) []int32 {
	vals := make([]int32, s.buf.NumPlanes)
	if p < 3 {
		for ch := 0; ch < p; ch++ {
			vals[ch] = frame.Planes[ch].Get(s.row, s.col)
		}
		if s.buf.NumPlanes > 3 {
			vals[3] = frame.Planes[3].Get(s.row, s.col)
		}
	}
	return vals
}

// predict computes the causal MEDIAN3 guess, the raw left/top neighbors
// (used for the invisible-pixel fill), and the full property vector for
// plane p at the current pixel (spec §4.8).
func (s *Decoder) predict(frame *pixel.Frame, p int) (guess, left, top int32, props []int32) {
	pl := frame.Planes[p]
	r, c := s.row, s.col

	var topleft int32
	if c > s.colBegin {
		left = pl.Get(r, c-1)
	} else if r > 0 {
		left = pl.Get(r-1, c)
	}
	if r > 0 {
		top = pl.Get(r-1, c)
	} else {
		top = left
	}
	if r > 0 && c > s.colBegin {
		topleft = pl.Get(r-1, c-1)
	} else {
		topleft = top
	}

	var topright int32
	if r > 0 && c+1 < pl.Width {
		topright = pl.Get(r-1, c+1)
	} else {
		topright = top
	}
	var toptop int32
	if r >= 2 {
		toptop = pl.Get(r-2, c)
	} else {
		toptop = top
	}
	var leftleft int32
	if c >= s.colBegin+2 {
		leftleft = pl.Get(r, c-2)
	} else {
		leftleft = left
	}

	grad := left + top - topleft
	var which int
	guess, which = median3(grad, left, top)

	props = make([]int32, 0, p+8)
	if p < 3 {
		for ch := 0; ch < p; ch++ {
			props = append(props, frame.Planes[ch].Get(r, c))
		}
		if s.buf.NumPlanes > 3 {
			props = append(props, frame.Planes[3].Get(r, c))
		}
	}
	props = append(props,
		guess,
		int32(which),
		left-topleft,
		topleft-top,
		top-topright,
		toptop-top,
		leftleft-left,
	)
	return guess, left, top, props
}

// median3 returns the median of a, b, c and which of {0=a,1=b,2=c} it came
// from (the "gradient / left / top" identity, per spec's `which` property).
func median3(a, b, c int32) (int32, int) {
	lo, mid, hi := a, b, c
	if lo > mid {
		lo, mid = mid, lo
	}
	if mid > hi {
		mid, hi = hi, mid
	}
	if lo > mid {
		lo, mid = mid, lo
	}
	switch mid {
	case a:
		return mid, 0
	case b:
		return mid, 1
	default:
		return mid, 2
	}
}
