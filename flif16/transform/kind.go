// Package transform implements FLIF16's reversible transform pipeline:
// declaration, parameter decoding, meta-range derivation, and per-pixel
// inverse application (spec §4.5). Each transform is a tagged variant
// carrying its own resume state, dispatched by a switch on Kind rather than
// through a Go interface — mirroring colorrange.Range and the reference
// decoder's own "represent as tagged variants, dispatch via switch" design.
package transform

// Kind identifies a transform variant. The numeric transform id space read
// from the bitstream is [0,13]; id 2 is reserved and always unsupported,
// matching the malformed-stream test scenario in spec §8.
type Kind int

const (
	KindChannelCompact Kind = iota
	KindYCoCg
	KindReserved2
	KindPermutePlanes
	KindBounds
	KindPalette
	KindPaletteAlpha
	KindColorBuckets
	KindDuplicateFrame
	KindFrameShape
	KindFrameLookback
	KindReserved11
	KindReserved12
	KindReserved13
)

const MaxTransformID = int32(KindReserved13)

// kindForID maps a bitstream transform id to its Kind. All ids are declared
// (the decoder recognizes and can name every one of them up through 13, per
// the reference format's header) but only a subset is implemented; the rest
// surface ErrUnsupported from Init.
func kindForID(id int32) (Kind, bool) {
	if id < 0 || id > MaxTransformID {
		return 0, false
	}
	return Kind(id), true
}

// implemented reports whether Kind k has a working Init/Read/Meta/Inverse,
// as opposed to being declared-but-unsupported.
func (k Kind) implemented() bool {
	switch k {
	case KindChannelCompact, KindYCoCg, KindPermutePlanes, KindBounds:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	switch k {
	case KindChannelCompact:
		return "ChannelCompact"
	case KindYCoCg:
		return "YCoCg"
	case KindReserved2:
		return "Reserved2"
	case KindPermutePlanes:
		return "PermutePlanes"
	case KindBounds:
		return "Bounds"
	case KindPalette:
		return "Palette"
	case KindPaletteAlpha:
		return "PaletteAlpha"
	case KindColorBuckets:
		return "ColorBuckets"
	case KindDuplicateFrame:
		return "DuplicateFrame"
	case KindFrameShape:
		return "FrameShape"
	case KindFrameLookback:
		return "FrameLookback"
	default:
		return "Reserved"
	}
}
