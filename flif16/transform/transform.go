package transform

import (
	"github.com/cocosip/go-flif16/flif16/colorrange"
	"github.com/cocosip/go-flif16/flif16/rac"
)

// Transform is one pipeline stage: a tagged variant holding whichever
// fields its Kind needs, including resumable read state (segment counters
// and in-flight NZ/GNZ-int readers) so a Read call can be retried after
// ErrNeedMoreData with no lost progress.
type Transform struct {
	Kind      Kind
	numPlanes int
	prev      *colorrange.Range

	// ChannelCompact
	ccStage   int // 0 = reading nb for channel ccIdx, 1 = reading palette entries
	ccIdx     int32
	ccNB      []int32
	ccPalette [][]int32
	ccBudget  []int32 // prev.Max(p) - prev.Min(p), the nb upper bound minus 1
	ccRemain  int32   // palette entries left to read for the current channel
	ccPrev    int32   // previous palette entry's absolute value
	ccNBRead  *rac.NZInt
	ccValRead *rac.NZInt
	ccNBCtx   *rac.ChanceContext
	ccValCtx  *rac.ChanceContext

	// PermutePlanes
	ppStage    int // 0 = reading subtract bit, 1 = reading permutation entries
	ppIdx      int32
	ppSubtract bool
	ppPerm     []int32
	ppSubRead  *rac.NZInt
	ppPermRead *rac.NZInt
	ppSubCtx   *rac.ChanceContext
	ppPermCtx  *rac.ChanceContext

	// Bounds
	bStage  int // 0 = reading lo for channel bIdx, 1 = reading hi
	bIdx    int32
	bLo     []int32
	bHi     []int32
	bLoRead *rac.GNZInt
	bHiRead *rac.GNZInt
	bLoCtx  *rac.ChanceContext
	bHiCtx  *rac.ChanceContext
}

// New constructs an uninitialized Transform for the given Kind. Call Init
// before Read.
func New(k Kind) *Transform {
	return &Transform{Kind: k}
}

// Init validates the transform against the predecessor range and prepares
// any state Read will need. Declared-but-unimplemented kinds always fail
// with ErrUnsupported here, before any bits are consumed.
func (t *Transform) Init(prev *colorrange.Range) error {
	if !t.Kind.implemented() {
		return ErrUnsupported
	}
	t.numPlanes = prev.NumPlanes
	t.prev = prev
	switch t.Kind {
	case KindChannelCompact:
		return t.ccInit(prev)
	case KindYCoCg:
		return t.ycocgInit(prev)
	case KindPermutePlanes:
		return t.ppInit(prev)
	case KindBounds:
		return t.bInit(prev)
	}
	return ErrUnsupported
}

// Read advances the transform's parameter decode as far as buffered bytes
// allow. Returns done=true once every parameter has been consumed.
func (t *Transform) Read(d *rac.Decoder, ct *rac.ChanceTable) (bool, error) {
	switch t.Kind {
	case KindChannelCompact:
		return t.ccRead(d, ct)
	case KindYCoCg:
		return true, nil // no parameters
	case KindPermutePlanes:
		return t.ppRead(d, ct)
	case KindBounds:
		return t.bRead(d, ct)
	}
	return false, ErrUnsupported
}

// Meta derives the post-transform range from the predecessor range, once
// Read has finished.
func (t *Transform) Meta(prev *colorrange.Range) *colorrange.Range {
	switch t.Kind {
	case KindChannelCompact:
		return t.ccMeta(prev)
	case KindYCoCg:
		return colorrange.NewYCoCg(prev)
	case KindPermutePlanes:
		return colorrange.NewPermutePlanes(prev, t.ppPerm, t.ppSubtract)
	case KindBounds:
		return colorrange.NewBounds(prev, t.bLo, t.bHi)
	}
	return prev
}

// InversePixel maps one pixel's values, expressed in this transform's
// output plane order, back into the predecessor's value space. vals is
// indexed by plane number. ChannelCompact, YCoCg and PermutePlanes return a
// new slice; Bounds and unimplemented kinds return vals itself.
func (t *Transform) InversePixel(prev *colorrange.Range, vals []int32) []int32 {
	switch t.Kind {
	case KindChannelCompact:
		return t.ccInverse(prev, vals)
	case KindYCoCg:
		return t.ycocgInverse(prev, vals)
	case KindPermutePlanes:
		return t.ppInverse(prev, vals)
	case KindBounds:
		return vals // identity
	}
	return vals
}
