package clone

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
)

// Into deep-copies src into dst, which must be a non-nil pointer. Unlike
// [Native], the two sides may have different types: struct fields are
// matched by name (or `copy` tag), convertible values are converted and
// slices and maps are copied element by element. Cycles are not detected.
func Into(dst, src any) error {
	if err := deepcopy.Copy(dst, src); err != nil {
		return fmt.Errorf("%w: %w", ErrCopy, err)
	}
	return nil
}
