package transform

import (
	"github.com/cocosip/go-flif16/flif16/colorrange"
	"github.com/cocosip/go-flif16/flif16/rac"
)

// ChannelCompact reads, per channel, a compact sorted palette of the
// distinct values actually used and replaces each pixel with its palette
// index, narrowing the channel's range to [0, nb-1]. Grounded on
// ff_flif16_transform_channelcompact_{init,read,meta,reverse} in
// original_source/libavcodec/flif16_transform.c.
func (t *Transform) ccInit(prev *colorrange.Range) error {
	if prev.NumPlanes > 4 {
		return ErrInvalidData
	}
	t.ccNB = make([]int32, prev.NumPlanes)
	t.ccPalette = make([][]int32, prev.NumPlanes)
	t.ccNBCtx = rac.NewChanceContext()
	t.ccValCtx = rac.NewChanceContext()
	return nil
}

func (t *Transform) ccRead(d *rac.Decoder, ct *rac.ChanceTable) (bool, error) {
	for t.ccIdx < int32(t.numPlanes) {
		p := int(t.ccIdx)
		switch t.ccStage {
		case 0:
			if t.ccNBRead == nil {
				t.ccNBRead = rac.NewNZInt(0, t.prev.Max(p)-t.prev.Min(p))
			}
			v, err := t.ccNBRead.Step(d, ct, t.ccNBCtx)
			if err != nil {
				return false, err
			}
			t.ccNBRead = nil
			nb := v + 1
			t.ccNB[p] = nb
			t.ccPalette[p] = make([]int32, 0, nb)
			t.ccPrev = t.prev.Min(p)
			t.ccRemain = nb - 1
			t.ccStage = 1
		case 1:
			for int32(len(t.ccPalette[p])) < t.ccNB[p] {
				if t.ccValRead == nil {
					t.ccValRead = rac.NewNZInt(0, t.prev.Max(p)-t.ccPrev-t.ccRemain)
				}
				v, err := t.ccValRead.Step(d, ct, t.ccValCtx)
				if err != nil {
					return false, err
				}
				t.ccValRead = nil
				val := v + t.ccPrev
				t.ccPalette[p] = append(t.ccPalette[p], val)
				t.ccPrev = val + 1
				t.ccRemain--
			}
			t.ccStage = 0
			t.ccIdx++
		}
	}
	return true, nil
}

func (t *Transform) ccMeta(prev *colorrange.Range) *colorrange.Range {
	lo := make([]int32, t.numPlanes)
	hi := make([]int32, t.numPlanes)
	for p := 0; p < t.numPlanes; p++ {
		hi[p] = t.ccNB[p] - 1
	}
	return colorrange.NewStatic(lo, hi)
}

func (t *Transform) ccInverse(prev *colorrange.Range, vals []int32) []int32 {
	out := make([]int32, len(vals))
	for p, v := range vals {
		pal := t.ccPalette[p]
		if v < 0 || int(v) >= len(pal) {
			v = 0
		}
		out[p] = pal[v]
	}
	return out
}
