package detector

import "errors"

// Sentinel error kinds for this package. Neither is fatal: both come with the
// empty result, and Detect swallows them.
var (
	ErrInputTooShort    = errors.New("input too short")
	ErrInternalAnalysis = errors.New("internal analysis error")
)
