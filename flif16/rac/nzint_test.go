package rac

import (
	"testing"

	"github.com/cocosip/go-flif16/flif16/bytesource"
	"github.com/stretchr/testify/require"
)

func newTestDecoder(t *testing.T, data []byte) *Decoder {
	t.Helper()
	d := New(bytesource.New(data))
	require.NoError(t, d.Init())
	return d
}

func TestNZIntDegenerateRangeReturnsMinWithoutReading(t *testing.T) {
	d := newTestDecoder(t, nil)
	ct := NewChanceTable(DefaultAlpha, DefaultCut)
	ctx := NewChanceContext()

	n := NewNZInt(5, 5)
	v, err := n.Step(d, ct, ctx)
	require.NoError(t, err)
	require.Equal(t, int32(5), v)
}

func TestNZIntResultWithinRequestedRange(t *testing.T) {
	ct := NewChanceTable(DefaultAlpha, DefaultCut)

	data := make([]byte, 64)
	for i := range data {
		data[i] = byte(i*37 + 11)
	}

	cases := []struct{ min, max int32 }{
		{-10, 10}, {0, 255}, {-255, 0}, {-1, 1}, {0, 1}, {-128, 127},
	}
	for _, c := range cases {
		d := newTestDecoder(t, data)
		ctx := NewChanceContext()
		n := NewNZInt(c.min, c.max)
		v, err := n.Step(d, ct, ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, v, c.min)
		require.LessOrEqual(t, v, c.max)
	}
}

func TestNZIntChanceContextStaysInBounds(t *testing.T) {
	ct := NewChanceTable(DefaultAlpha, DefaultCut)
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i * 61)
	}
	d := newTestDecoder(t, data)
	ctx := NewChanceContext()

	for i := 0; i < 20; i++ {
		n := NewNZInt(-50, 50)
		_, err := n.Step(d, ct, ctx)
		require.NoError(t, err)
	}

	for _, c := range ctx.chances {
		require.Greater(t, int(c), 0)
		require.Less(t, int(c), 4096)
	}
}

func TestGNZIntShiftsWindowAndResultWithinRange(t *testing.T) {
	ct := NewChanceTable(DefaultAlpha, DefaultCut)
	data := make([]byte, 64)
	for i := range data {
		data[i] = byte(i*91 + 3)
	}

	cases := []struct{ min, max int32 }{
		{10, 20}, {-20, -10}, {-5, 5},
	}
	for _, c := range cases {
		d := newTestDecoder(t, data)
		ctx := NewChanceContext()
		g := NewGNZInt(c.min, c.max)
		v, err := g.Step(d, ct, ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, v, c.min)
		require.LessOrEqual(t, v, c.max)
	}
}

func TestNZIntSuspensionIdempotence(t *testing.T) {
	full := make([]byte, 32)
	for i := range full {
		full[i] = byte(i*53 + 7)
	}
	ct := NewChanceTable(DefaultAlpha, DefaultCut)

	refDec := newTestDecoder(t, full)
	refCtx := NewChanceContext()
	refN := NewNZInt(-100, 100)
	want, err := refN.Step(refDec, ct, refCtx)
	require.NoError(t, err)

	src := bytesource.New(full[:3])
	d := New(src)
	for d.Init() != nil {
		src.Extend(full[3:4])
	}
	ctx := NewChanceContext()
	n := NewNZInt(-100, 100)
	fed := 3
	var got int32
	for {
		v, err := n.Step(d, ct, ctx)
		if err == nil {
			got = v
			break
		}
		require.ErrorIs(t, err, ErrNeedMoreData)
		require.Less(t, fed, len(full))
		src.Extend(full[fed : fed+1])
		fed++
	}

	require.Equal(t, want, got)
}
