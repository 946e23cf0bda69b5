package service

import "errors"

var (
	// ErrNotStarted is returned by batch operations before Start or after Stop.
	ErrNotStarted = errors.New("service not started")
	// ErrDuplicateSession is returned when a session ID was already submitted.
	ErrDuplicateSession = errors.New("duplicate session id")
)
