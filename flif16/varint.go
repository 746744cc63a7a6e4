package flif16

import "github.com/cocosip/go-flif16/flif16/bytesource"

// varintReader decodes one base-128 big-endian varint: continuation bit in
// each byte's high bit, capped at 5 bytes (spec §6). Resumable: Step may be
// retried after ErrNeedMoreData without re-reading already-consumed bytes.
type varintReader struct {
	value int64
	count int
}

func (v *varintReader) step(src *bytesource.Source) (int64, error) {
	for v.count < 5 {
		b, ok := src.GetByte()
		if !ok {
			return 0, ErrNeedMoreData
		}
		v.value = v.value<<7 | int64(b&0x7f)
		v.count++
		if b&0x80 == 0 {
			return v.value, nil
		}
	}
	return 0, ErrInvalidData
}
