package store

import "errors"

// ErrPersistence marks a failed write. It aborts an acquisition walk:
// sequential coverage cannot be guaranteed once a write is dropped.
var ErrPersistence = errors.New("persistence failure")
