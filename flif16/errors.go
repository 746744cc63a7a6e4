// Package flif16 decodes the FLIF16 lossless image bitstream: magic and
// dimension header, metadata chunks, the RAC-coded second header, the
// transform pipeline, the per-plane MANIAC forest, and the scanline pixel
// data (spec §4.9's HEADER→SECONDHEADER→TRANSFORMS→MANIAC→PIXELDATA→
// CHECKSUM state machine).
package flif16

import (
	"errors"

	"github.com/cocosip/go-flif16/flif16/rac"
)

var (
	// ErrNeedMoreData means the byte window was exhausted mid-read; the
	// caller should append bytes and call Step again with no state lost.
	// It is the same value as rac.ErrNeedMoreData, so suspensions inside
	// the range coder and in the raw header both match it.
	ErrNeedMoreData = rac.ErrNeedMoreData

	// ErrInvalidData covers structural violations of the raw header: bad
	// magic, an out-of-range channel count, an unknown bits-per-channel
	// marker, or a varint exceeding its byte cap. Transform and MANIAC
	// validation failures are returned as the transform and maniac
	// packages' own errors (transform.ErrInvalidData,
	// maniac.ErrDegenerateRange).
	ErrInvalidData = errors.New("flif16: invalid data")

	// ErrUnsupported marks a declared-but-unimplemented feature: a second
	// header that requests custom bit-chance tables. Unimplemented
	// transform ids are returned as transform.ErrUnsupported. The header
	// parser does not detect interlaced streams.
	ErrUnsupported = errors.New("flif16: unsupported feature")

	// ErrEndOfStream is returned once the checksum section is reached;
	// checksum verification itself is out of scope (spec Design Note d).
	ErrEndOfStream = errors.New("flif16: end of stream")
)
