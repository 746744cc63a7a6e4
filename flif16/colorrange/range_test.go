package colorrange

import "testing"

func TestStaticRangeReturnsFixedBounds(t *testing.T) {
	r := NewStatic([]int32{0, 0, 0}, []int32{255, 255, 255})
	if lo, hi := r.Min(1), r.Max(1); lo != 0 || hi != 255 {
		t.Fatalf("got [%d,%d], want [0,255]", lo, hi)
	}
	if !r.IsStatic() {
		t.Fatal("static range should report IsStatic")
	}
}

func TestYCoCgBoundsCoverEveryReachableValue(t *testing.T) {
	base := NewStatic([]int32{0, 0, 0}, []int32{255, 255, 255})
	yc := NewYCoCg(base)

	for r := int32(0); r <= 255; r += 51 {
		for g := int32(0); g <= 255; g += 51 {
			for b := int32(0); b <= 255; b += 51 {
				y, co, cg := RCTForward(r, g, b)
				if y < yc.Min(0) || y > yc.Max(0) {
					t.Fatalf("Y=%d out of [%d,%d]", y, yc.Min(0), yc.Max(0))
				}
				if co < yc.Min(1) || co > yc.Max(1) {
					t.Fatalf("Co=%d out of [%d,%d]", co, yc.Min(1), yc.Max(1))
				}
				if cg < yc.Min(2) || cg > yc.Max(2) {
					t.Fatalf("Cg=%d out of [%d,%d]", cg, yc.Min(2), yc.Max(2))
				}
				rr, gg, bb := RCTInverse(y, co, cg)
				if rr != r || gg != g || bb != b {
					t.Fatalf("round trip failed: (%d,%d,%d) -> (%d,%d,%d) -> (%d,%d,%d)", r, g, b, y, co, cg, rr, gg, bb)
				}
			}
		}
	}
}

func TestRCTForwardMatchesReferenceDecoderFormula(t *testing.T) {
	// original_source/libavcodec/flif16_transform.c:423-478, R=255,G=0,B=0.
	y, co, cg := RCTForward(255, 0, 0)
	if y != 63 || co != 255 || cg != -127 {
		t.Fatalf("got (Y=%d,Co=%d,Cg=%d), want (63,255,-127)", y, co, cg)
	}

	r, g, b := RCTInverse(y, co, cg)
	if r != 255 || g != 0 || b != 0 {
		t.Fatalf("round trip got (%d,%d,%d), want (255,0,0)", r, g, b)
	}
}

func TestPermutePlanesSubtractDerivesRangeFromPredecessor(t *testing.T) {
	base := NewStatic([]int32{0, 0, 0}, []int32{255, 255, 255})
	perm := NewPermutePlanes(base, []int32{1, 0, 2}, true)

	// Plane 0 is unchanged (remapped to base plane 1).
	if lo, hi := perm.Min(0), perm.Max(0); lo != 0 || hi != 255 {
		t.Fatalf("plane 0 got [%d,%d], want [0,255]", lo, hi)
	}
	// Plane 1 = base plane 0 - base plane 1, range [-255,255].
	if lo, hi := perm.Min(1), perm.Max(1); lo != -255 || hi != 255 {
		t.Fatalf("plane 1 got [%d,%d], want [-255,255]", lo, hi)
	}
}

func TestBoundsIntersectsPredecessorRange(t *testing.T) {
	base := NewStatic([]int32{0, 0}, []int32{255, 255})
	b := NewBounds(base, []int32{10, 0}, []int32{255, 100})

	if lo, hi := b.Min(0), b.Max(0); lo != 10 || hi != 255 {
		t.Fatalf("plane 0 got [%d,%d], want [10,255]", lo, hi)
	}
	if lo, hi := b.Min(1), b.Max(1); lo != 0 || hi != 100 {
		t.Fatalf("plane 1 got [%d,%d], want [0,100]", lo, hi)
	}
}

func TestSnapClampsIntoBoundAndFixesDegenerateWindow(t *testing.T) {
	base := NewStatic([]int32{0}, []int32{10})
	if got := base.Snap(0, nil, -5); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
	if got := base.Snap(0, nil, 50); got != 10 {
		t.Fatalf("got %d, want 10", got)
	}

	// lo=10 > hi=5 collapses the window to the single point 10.
	degenerate := NewStatic([]int32{10}, []int32{5})
	if got := degenerate.Snap(0, nil, 0); got != 10 {
		t.Fatalf("degenerate window got %d, want 10", got)
	}
}
