package scanline

import (
	"testing"

	"github.com/cocosip/go-flif16/flif16/bytesource"
	"github.com/cocosip/go-flif16/flif16/colorrange"
	"github.com/cocosip/go-flif16/flif16/maniac"
	"github.com/cocosip/go-flif16/flif16/pixel"
	"github.com/cocosip/go-flif16/flif16/rac"
	"github.com/stretchr/testify/require"
)

func TestMedian3ReturnsMiddleValueAndItsSource(t *testing.T) {
	cases := []struct {
		a, b, c  int32
		wantVal  int32
		wantWhic int
	}{
		{5, 1, 9, 5, 0},
		{1, 5, 9, 5, 1},
		{9, 1, 5, 5, 2},
		{3, 3, 3, 3, 0},
	}
	for _, c := range cases {
		v, which := median3(c.a, c.b, c.c)
		require.Equal(t, c.wantVal, v)
		require.Equal(t, c.wantWhic, which)
	}
}

func TestDecoderSkipsEveryConstantPlaneWithoutReadingAnyBits(t *testing.T) {
	buf := pixel.NewBuffer(2, 2, 1)
	buf.Frames = []*pixel.Frame{{
		Planes:     []*pixel.Plane{pixel.NewConstantPlane(2, 2, 127)},
		SeenBefore: -1,
	}}
	finalRange := colorrange.NewStatic([]int32{127}, []int32{127})

	d := rac.New(bytesource.New(nil))
	dec := NewDecoder(buf, finalRange, nil, nil, false)

	done, err := dec.Step(d)
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, int32(127), buf.Frames[0].Planes[0].Get(0, 0))
}

func TestNewDecoderOmitsConstantPlanesAndAbsentChannelsFromSequence(t *testing.T) {
	buf := pixel.NewBuffer(2, 2, 4)
	base := colorrange.NewStatic([]int32{0, 0, 0, 0}, []int32{255, 255, 255, 0})
	// Plane 3 (alpha) is constant (min==max==0); planes 0-2 vary.
	dec := NewDecoder(buf, base, make([]*maniac.Tree, 4), nil, false)
	require.Equal(t, []int{0, 1, 2}, dec.seq)

	// A three-channel buffer has no plane 3 at all.
	rgb := NewDecoder(pixel.NewBuffer(2, 2, 3), colorrange.NewStatic([]int32{0, 0, 0}, []int32{255, 255, 255}), make([]*maniac.Tree, 3), nil, false)
	require.Equal(t, []int{0, 1, 2}, rgb.seq)
}
