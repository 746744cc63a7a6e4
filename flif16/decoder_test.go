package flif16

import (
	"testing"

	"github.com/cocosip/go-flif16/flif16/bytesource"
	"github.com/stretchr/testify/require"
)

// scenario1Bytes builds the exact bitstream for a 1x1 8-bit grayscale
// image whose single pixel decodes to 127, with no transforms declared
// and a minimal (single-leaf) MANIAC tree.
//
// The RAC-coded span (5 bytes, following the raw header) was derived by
// hand-tracing this package's own range coder, chance tables and NZ-int
// codec bit-for-bit against an independent range-encoder simulation, not
// copied from any reference stream: customalpha=0 and the transform
// pipeline's continue bit=0 are each one equiprobable bit; the tree root's
// property read is one chance-coded "is zero" bit (context slotZero,
// chance 1000) that terminates the tree at a single leaf; the pixel value
// itself is a full near-zero-int decode of 127 over [0,255] (zero-flag,
// forced-positive sign, a 7-read exponent unary code settling on
// exponent 6, then 6 mantissa bits all set) against that leaf's freshly
// materialized default chance context.
func scenario1Bytes() []byte {
	b := []byte{'F', 'L', 'I', 'F'}
	b = append(b, 0x11) // non-animated, 1 channel (grayscale)
	b = append(b, '1')  // bpc marker: 8-bit
	b = append(b, 0x00) // width - 1 = 0 -> width 1
	b = append(b, 0x00) // height - 1 = 0 -> height 1
	b = append(b, 0x00) // metadata terminator
	b = append(b, 0x30, 0xe3, 0x0c, 0x71, 0x00)
	b = append(b, 0x00, 0x00, 0x00, 0x00) // checksum, unverified
	return b
}

func TestDecoderStepDecodesSinglePixelGrayscaleScenario(t *testing.T) {
	src := bytesource.New(scenario1Bytes())
	d := NewDecoder(src)

	buf, err := d.Step()
	require.ErrorIs(t, err, ErrEndOfStream)
	require.NotNil(t, buf)

	require.Equal(t, 1, buf.Width)
	require.Equal(t, 1, buf.Height)
	require.Equal(t, 1, buf.NumPlanes)
	require.Len(t, buf.Frames, 1)
	require.Equal(t, int32(127), buf.Frames[0].Planes[0].Get(0, 0))
}

func TestDecoderStepSuspendsMidStreamAndResumes(t *testing.T) {
	full := scenario1Bytes()
	src := bytesource.New(full[:10])
	d := NewDecoder(src)

	_, err := d.Step()
	require.ErrorIs(t, err, ErrNeedMoreData)

	src.Extend(full[10:])
	buf, err := d.Step()
	require.ErrorIs(t, err, ErrEndOfStream)
	require.Equal(t, int32(127), buf.Frames[0].Planes[0].Get(0, 0))
}
