package entities

import "errors"

var (
	// ErrNotFound is returned by stores and providers when the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidSession is returned when a session credential cannot be verified.
	ErrInvalidSession = errors.New("invalid session")
)
