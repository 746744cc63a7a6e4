package maniac

import "errors"

// ErrDegenerateRange is returned when a node's scoped property range has
// collapsed to min >= max, which the reference decoder treats as a
// structural bitstream error.
var ErrDegenerateRange = errors.New("maniac: degenerate property range")
