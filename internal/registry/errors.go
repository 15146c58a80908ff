package registry

import "errors"

var (
	// ErrActionNotFound is returned when an unregister call matches nothing.
	ErrActionNotFound = errors.New("action not found")
	// ErrUnknownFlag is returned when no registered flag has the requested key.
	ErrUnknownFlag = errors.New("unknown flag key")
)
