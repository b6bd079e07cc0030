package repositories

import "errors"

// Sentinel errors shared by every store implementation. Services and
// handlers match on these with errors.Is instead of inspecting message
// strings.
var (
	// ErrNotFound means the referenced document id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail means a user with that email already exists.
	ErrDuplicateEmail = errors.New("email already registered")
)
