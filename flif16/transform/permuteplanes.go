package transform

import (
	"github.com/cocosip/go-flif16/flif16/colorrange"
	"github.com/cocosip/go-flif16/flif16/rac"
)

// PermutePlanes reorders planes and, when subtract is set, rebases planes
// 1 and 2 against plane 0 (a lossless decorrelation step, e.g. keeping
// green as-is and coding red/blue as offsets from it). Grounded on
// ff_flif16_transform_permuteplanes_{init,read,meta,reverse}.
func (t *Transform) ppInit(prev *colorrange.Range) error {
	if prev.NumPlanes < 3 {
		return ErrInvalidData
	}
	if prev.Min(0) < 0 || prev.Min(1) < 0 || prev.Min(2) < 0 {
		return ErrInvalidData
	}
	t.ppSubCtx = rac.NewChanceContext()
	t.ppPermCtx = rac.NewChanceContext()
	t.ppPerm = make([]int32, 0, t.numPlanes)
	return nil
}

func (t *Transform) ppRead(d *rac.Decoder, ct *rac.ChanceTable) (bool, error) {
	if t.ppStage == 0 {
		if t.ppSubRead == nil {
			t.ppSubRead = rac.NewNZInt(0, 1)
		}
		v, err := t.ppSubRead.Step(d, ct, t.ppSubCtx)
		if err != nil {
			return false, err
		}
		t.ppSubRead = nil
		t.ppSubtract = v != 0
		t.ppStage = 1
	}

	for t.ppIdx < int32(t.numPlanes) {
		if t.ppPermRead == nil {
			t.ppPermRead = rac.NewNZInt(0, int32(t.numPlanes)-1)
		}
		v, err := t.ppPermRead.Step(d, ct, t.ppPermCtx)
		if err != nil {
			return false, err
		}
		t.ppPermRead = nil
		t.ppPerm = append(t.ppPerm, v)
		t.ppIdx++
	}

	seen := make([]bool, t.numPlanes)
	for _, to := range t.ppPerm {
		if to < 0 || int(to) >= t.numPlanes || seen[to] {
			return false, ErrInvalidData
		}
		seen[to] = true
	}
	return true, nil
}

func (t *Transform) ppInverse(prev *colorrange.Range, vals []int32) []int32 {
	out := make([]int32, len(vals))
	out[t.ppPerm[0]] = vals[0]
	for p := 1; p < len(vals); p++ {
		dst := t.ppPerm[p]
		if t.ppSubtract && p < 3 {
			out[dst] = clip(vals[p]+vals[0], prev.Min(int(dst)), prev.Max(int(dst)))
		} else {
			out[dst] = vals[p]
		}
	}
	return out
}
