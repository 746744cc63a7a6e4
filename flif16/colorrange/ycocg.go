package colorrange

// RCTForward and RCTInverse are FLIF16's lossless YCoCg color transform,
// ported from the reference decoder's ff_flif16_transform_ycocg_forward/
// _reverse (original_source/libavcodec/flif16_transform.c); this is FLIF's
// own reversible transform, not the teacher's JPEG2000 RCT, which uses a
// different pair of formulas.

// RCTForward converts one RGB triple to YCoCg.
func RCTForward(r, g, b int32) (y, co, cg int32) {
	y = ((r+b)>>1+g)>>1
	co = r - b
	cg = g - (r+b)>>1
	return
}

// RCTInverse converts one YCoCg triple back to RGB.
func RCTInverse(y, co, cg int32) (r, g, b int32) {
	r = co + y + (1-cg)>>1 - co>>1
	g = y - (-cg)>>1
	b = y + (1-cg)>>1 - co>>1
	return
}
