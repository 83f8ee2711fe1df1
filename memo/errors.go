package memo

import "errors"

// Sentinel errors returned by memo constructors.
var (
	// ErrInvalidOption is returned by [New] when an option is out of range
	// (a negative MaxEntries) or cannot work with the key type (a key type
	// that is not comparable and no Key function).
	ErrInvalidOption = errors.New("memo: invalid option value")
)
