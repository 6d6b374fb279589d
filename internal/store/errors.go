package store

import "errors"

// ErrNotFound is returned when a requested row does not exist, or when a
// guarded state transition matched no pending row.
var ErrNotFound = errors.New("not found")
