package registry

import "errors"

var (
	// ErrNotFound means the requested plugin id does not exist.
	ErrNotFound = errors.New("plugin not found")

	// ErrForbidden means the caller is not the record's publisher.
	ErrForbidden = errors.New("caller is not the publisher")

	// ErrConflict means a concurrent writer changed the record between
	// our read and our conditional write, or a create collided on id.
	ErrConflict = errors.New("plugin version conflict")
)
