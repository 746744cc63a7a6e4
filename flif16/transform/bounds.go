package transform

import (
	"github.com/cocosip/go-flif16/flif16/colorrange"
	"github.com/cocosip/go-flif16/flif16/rac"
)

// Bounds narrows each channel's range to an explicit [lo,hi] pair read
// from the stream, rejecting windows that invert or fall outside the
// predecessor's range. It applies no per-pixel transform. Grounded on
// ff_flif16_transform_bounds_{init,read,meta}.
func (t *Transform) bInit(prev *colorrange.Range) error {
	if prev.NumPlanes > 4 {
		return ErrInvalidData
	}
	t.bLoCtx = rac.NewChanceContext()
	t.bHiCtx = rac.NewChanceContext()
	t.bLo = make([]int32, t.numPlanes)
	t.bHi = make([]int32, t.numPlanes)
	return nil
}

func (t *Transform) bRead(d *rac.Decoder, ct *rac.ChanceTable) (bool, error) {
	for t.bIdx < int32(t.numPlanes) {
		p := int(t.bIdx)
		switch t.bStage {
		case 0:
			if t.bLoRead == nil {
				t.bLoRead = rac.NewGNZInt(t.prev.Min(p), t.prev.Max(p))
			}
			v, err := t.bLoRead.Step(d, ct, t.bLoCtx)
			if err != nil {
				return false, err
			}
			t.bLoRead = nil
			t.bLo[p] = v
			t.bStage = 1
		case 1:
			if t.bHiRead == nil {
				t.bHiRead = rac.NewGNZInt(t.bLo[p], t.prev.Max(p))
			}
			v, err := t.bHiRead.Step(d, ct, t.bHiCtx)
			if err != nil {
				return false, err
			}
			t.bHiRead = nil
			if t.bLo[p] > v || t.bLo[p] < t.prev.Min(p) || v > t.prev.Max(p) {
				return false, ErrInvalidData
			}
			t.bHi[p] = v
			t.bStage = 0
			t.bIdx++
		}
	}
	return true, nil
}
