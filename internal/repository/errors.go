// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrNotFound indicates that a record does not exist, while
// ErrConflict signals that an operation cannot proceed because of the
// record's current state (e.g. deciding a request that has already
// left PENDING).
package repository

import "errors"

// ErrNotFound is returned when a looked-up record does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an update cannot be performed because
// of conflicting state, such as approving a request that was already
// decided. Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
