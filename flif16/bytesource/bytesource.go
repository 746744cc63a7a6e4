// Package bytesource provides an append-only byte window cursor for the
// FLIF16 decoder's suspendable reads.
package bytesource

// Source is a cursor over a byte window that grows between decoder
// invocations. The caller appends newly-arrived bytes via Extend; the
// decoder consumes them via GetByte/Remaining without ever seeing bytes
// rewound or removed.
type Source struct {
	data   []byte
	cursor int
}

// New creates a Source over an initial byte window (may be empty).
func New(initial []byte) *Source {
	return &Source{data: initial}
}

// Extend appends newly-available bytes to the window.
func (s *Source) Extend(b []byte) {
	s.data = append(s.data, b...)
}

// Remaining reports how many unread bytes are currently buffered.
func (s *Source) Remaining() int {
	return len(s.data) - s.cursor
}

// GetByte returns the next unread byte and advances the cursor. ok is
// false if no byte is currently available; callers must treat this as a
// suspension point and retry after Extend.
func (s *Source) GetByte() (b byte, ok bool) {
	if s.Remaining() <= 0 {
		return 0, false
	}
	b = s.data[s.cursor]
	s.cursor++
	return b, true
}

// Pos returns the absolute number of bytes consumed so far. Useful for
// diagnosing where a NeedMoreData suspension occurred.
func (s *Source) Pos() int {
	return s.cursor
}

// Len returns the total number of bytes currently buffered (read + unread).
func (s *Source) Len() int {
	return len(s.data)
}
