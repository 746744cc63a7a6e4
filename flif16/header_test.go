package flif16

import (
	"testing"

	"github.com/cocosip/go-flif16/flif16/bytesource"
	"github.com/stretchr/testify/require"
)

func flifHeaderBytes() []byte {
	b := []byte{'F', 'L', 'I', 'F'}
	b = append(b, 0x13)      // non-animated, 3 channels (RGB)
	b = append(b, '1')       // bpc marker: 8-bit
	b = append(b, 0x03)      // width - 1 = 3  -> width 4
	b = append(b, 0x01)      // height - 1 = 1 -> height 2
	b = append(b, 0x00)      // metadata terminator
	return b
}

func TestParseHeaderReadsMagicChannelsAndDimensions(t *testing.T) {
	src := bytesource.New(flifHeaderBytes())
	d := &Decoder{src: src}

	done, err := d.parseHeader()
	require.NoError(t, err)
	require.True(t, done)
	require.False(t, d.animated)
	require.Equal(t, 3, d.channels)
	require.Equal(t, byte('1'), d.bpcMarker)
	require.Equal(t, 4, d.width)
	require.Equal(t, 2, d.height)
	require.Equal(t, 1, d.frames)
}

func TestParseHeaderRejectsBadMagic(t *testing.T) {
	src := bytesource.New([]byte{'F', 'L', 'X', 'F'})
	d := &Decoder{src: src}
	_, err := d.parseHeader()
	require.ErrorIs(t, err, ErrInvalidData)
}

func TestParseHeaderRejectsInvalidChannelCount(t *testing.T) {
	src := bytesource.New([]byte{'F', 'L', 'I', 'F', 0x12}) // low nibble 2: not 1/3/4
	d := &Decoder{src: src}
	_, err := d.parseHeader()
	require.ErrorIs(t, err, ErrInvalidData)
}

func TestParseHeaderReadsFrameCountWhenAnimated(t *testing.T) {
	b := []byte{'F', 'L', 'I', 'F', 0x53, '1', 0x00, 0x00, 0x01, 0x00}
	// animated (hi nibble 5), 3 channels; width-1=0, height-1=0, frames-2=1 -> 3 frames
	src := bytesource.New(b)
	d := &Decoder{src: src}

	done, err := d.parseHeader()
	require.NoError(t, err)
	require.True(t, done)
	require.True(t, d.animated)
	require.Equal(t, 3, d.frames)
}

func TestParseHeaderSuspendsMidMagicAndResumes(t *testing.T) {
	full := flifHeaderBytes()
	src := bytesource.New(full[:2])
	d := &Decoder{src: src}

	_, err := d.parseHeader()
	require.ErrorIs(t, err, ErrNeedMoreData)

	src.Extend(full[2:])
	done, err := d.parseHeader()
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, 4, d.width)
}

func TestParseHeaderSkipsOneMetadataChunkBeforeTerminator(t *testing.T) {
	b := []byte{'F', 'L', 'I', 'F', 0x11, '1', 0x00, 0x00}
	b = append(b, 'e', 'X', 'i', 'f') // tag
	b = append(b, 0x03)               // varint size = 3
	b = append(b, 'a', 'b', 'c')      // payload
	b = append(b, 0x00)               // terminator
	src := bytesource.New(b)
	d := &Decoder{src: src}

	done, err := d.parseHeader()
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, 1, d.channels)
}

func TestParseHeaderSuspendsMidMetadataPayloadAndResumes(t *testing.T) {
	b := []byte{'F', 'L', 'I', 'F', 0x11, '1', 0x00, 0x00}
	b = append(b, 'e', 'X', 'i', 'f', 0x03, 'a')
	src := bytesource.New(b)
	d := &Decoder{src: src}

	_, err := d.parseHeader()
	require.ErrorIs(t, err, ErrNeedMoreData)

	src.Extend([]byte{'b', 'c', 0x00})
	done, err := d.parseHeader()
	require.NoError(t, err)
	require.True(t, done)
}
