// Package store wraps the relational client in an explicit data-access object
// that is created at startup and injected into handlers, so tests can
// substitute a fake instead of reaching for a process-wide connection.
package store

import "errors"

var (
	// ErrEmailTaken means a user with the given email already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrNotFound means no matching row exists.
	ErrNotFound = errors.New("not found")
)
