package codec

import (
	"encoding/binary"
	"errors"

	"github.com/cocosip/go-flif16/flif16"
	"github.com/cocosip/go-flif16/flif16/bytesource"
	"github.com/google/uuid"
)

// flif16UID is a stable, deterministic identifier for this codec, derived
// the way the teacher derives DICOM transfer-syntax UIDs, but from the
// format's own name rather than a DICOM registry entry.
var flif16UID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("flif16")).String()

// Flif16Codec adapts the flif16 package's resumable decoder to the Codec
// interface. Encoding is out of scope (spec Non-goals) and always fails.
type Flif16Codec struct{}

// NewFlif16Codec constructs the FLIF16 codec adapter.
func NewFlif16Codec() *Flif16Codec {
	return &Flif16Codec{}
}

func (c *Flif16Codec) Name() string { return "flif16" }
func (c *Flif16Codec) UID() string  { return flif16UID }

// Encode is unimplemented: FLIF16 encoding is outside this module's scope.
func (c *Flif16Codec) Encode(params EncodeParams) ([]byte, error) {
	return nil, errors.New("codec: flif16 encoding is not implemented")
}

// Decode runs the full FLIF16 bitstream against a single in-memory buffer
// (no streaming) and returns the first frame as interleaved pixel bytes.
func (c *Flif16Codec) Decode(data []byte) (*DecodeResult, error) {
	dec := flif16.NewDecoder(bytesource.New(data))

	result, err := dec.Step()
	if errors.Is(err, flif16.ErrNeedMoreData) {
		// Decode is given the complete byte slice up front; a suspension
		// here means the stream itself is truncated, not merely buffered.
		return nil, errors.New("codec: flif16 stream is truncated")
	}
	if err != nil && !errors.Is(err, flif16.ErrEndOfStream) {
		return nil, err
	}

	frame := result.Frames[0]
	width, height, numPlanes := result.Width, result.Height, result.NumPlanes

	bitDepth := 8
	for r := 0; r < height && bitDepth == 8; r++ {
		for col := 0; col < width && bitDepth == 8; col++ {
			for p := 0; p < numPlanes; p++ {
				if frame.Planes[p].Get(r, col) > 255 {
					bitDepth = 16
				}
			}
		}
	}

	bytesPerSample := 1
	if bitDepth == 16 {
		bytesPerSample = 2
	}
	pixelData := make([]byte, width*height*numPlanes*bytesPerSample)
	i := 0
	for r := 0; r < height; r++ {
		for col := 0; col < width; col++ {
			for p := 0; p < numPlanes; p++ {
				v := frame.Planes[p].Get(r, col)
				if bitDepth == 16 {
					binary.BigEndian.PutUint16(pixelData[i:], uint16(v))
					i += 2
				} else {
					pixelData[i] = byte(v)
					i++
				}
			}
		}
	}

	return &DecodeResult{
		PixelData:  pixelData,
		Width:      width,
		Height:     height,
		Components: numPlanes,
		BitDepth:   bitDepth,
	}, nil
}

func init() {
	Register(NewFlif16Codec())
}
