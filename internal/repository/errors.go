package repository

import "errors"

// ErrNotFound is returned when a record does not resolve. Callers that
// expect benign races with deletion check for it with errors.Is and no-op.
var ErrNotFound = errors.New("not found")
