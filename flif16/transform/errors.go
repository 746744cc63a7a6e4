package transform

import "errors"

var (
	// ErrUnsupported is returned by Init for a declared but unimplemented
	// transform id (reserved slots, Palette, PaletteAlpha, ColorBuckets,
	// DuplicateFrame, FrameShape, FrameLookback).
	ErrUnsupported = errors.New("transform: unsupported transform id")

	// ErrInvalidData covers structural violations: an out-of-range
	// transform id, an incomplete PermutePlanes permutation, or Bounds
	// values outside the predecessor range.
	ErrInvalidData = errors.New("transform: invalid transform data")
)
