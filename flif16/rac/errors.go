package rac

import "errors"

// ErrNeedMoreData signals that the byte source was exhausted mid-read. It is
// not a failure: callers must extend the source and re-invoke the exact same
// operation.
var ErrNeedMoreData = errors.New("rac: need more data")
