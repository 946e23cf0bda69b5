package lexicon

import "errors"

// Sentinel error kinds for this package.
var (
	ErrUnknownLocale = errors.New("unknown locale")
)
