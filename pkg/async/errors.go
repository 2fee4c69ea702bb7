package async

import "errors"

// ErrPending is returned by Result while the future has not resolved.
var ErrPending = errors.New("async.pending")
