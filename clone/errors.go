package clone

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by clone operations.
//
// Failures inside the graph arrive wrapped in a [*PathError]; use
// [errors.Is] to classify them and [errors.As] to read the path:
//
//	_, err := clone.Clone(o)
//	var pe *clone.PathError
//	if errors.Is(err, clone.ErrFunction) && errors.As(err, &pe) {
//	    log.Printf("function at %s", pe.Path)
//	}
var (
	// ErrPrimitive is returned when the root handed to [Clone] is not an
	// object. Nothing is cloned.
	ErrPrimitive = errors.New("clone: value is a primitive")

	// ErrFunction is returned when a function is reached and the policy does
	// not allow functions. Functions are never duplicated, only shared.
	ErrFunction = errors.New("clone: function cannot be cloned")

	// ErrAccessor is returned when a getter/setter property is reached and
	// the policy does not allow accessors.
	ErrAccessor = errors.New("clone: accessor property cannot be cloned")

	// ErrCopy is returned by [Into] when src cannot be copied into dst.
	ErrCopy = errors.New("clone: cannot copy value")
)

// PathError records where in the source graph a clone failed.
type PathError struct {
	// Path leads from the root to the offending node.
	Path Path
	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *PathError) Error() string {
	if len(e.Path) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v (at %s)", e.Err, e.Path)
}

// Unwrap returns the underlying error.
func (e *PathError) Unwrap() error { return e.Err }
