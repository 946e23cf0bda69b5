package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound  = errors.New("analysis not found")
	ErrMissingID = errors.New("analysis has no session id")
)
