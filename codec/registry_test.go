package codec_test

import (
	"testing"

	"github.com/cocosip/go-flif16/codec"
	"github.com/stretchr/testify/require"
)

func TestFlif16CodecIsRegisteredByNameAndUID(t *testing.T) {
	byName, err := codec.Get("flif16")
	require.NoError(t, err)
	require.Equal(t, "flif16", byName.Name())

	byUID, err := codec.Get(byName.UID())
	require.NoError(t, err)
	require.Same(t, byName, byUID)
}

func TestGetUnknownCodecReturnsErrCodecNotFound(t *testing.T) {
	_, err := codec.Get("does-not-exist")
	require.ErrorIs(t, err, codec.ErrCodecNotFound)
}

func TestListIncludesFlif16Codec(t *testing.T) {
	codecs := codec.List()
	found := false
	for _, c := range codecs {
		if c.Name() == "flif16" {
			found = true
		}
	}
	require.True(t, found, "List() should include the flif16 codec")
}

func TestFlif16CodecEncodeIsUnimplemented(t *testing.T) {
	c, err := codec.Get("flif16")
	require.NoError(t, err)
	_, err = c.Encode(codec.EncodeParams{})
	require.Error(t, err)
}

func TestFlif16CodecDecodeRejectsTruncatedStream(t *testing.T) {
	c, err := codec.Get("flif16")
	require.NoError(t, err)
	_, err = c.Decode([]byte("FLI"))
	require.Error(t, err)
}
