package layout

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrOutOfRange is returned by read operations whose address or location
	// lies beyond the grown size of the index.
	ErrOutOfRange = errors.New("out of range")

	// ErrPrecondition is returned when an operation is rejected before any
	// state was changed.
	ErrPrecondition = errors.New("precondition violated")

	// ErrInvariant signals that the forward and reverse index disagree.
	ErrInvariant = errors.New("invariant violated")
)

// assertf panics with an ErrInvariant error. Metrics computed over a broken
// mapping are meaningless, so there is nothing to recover.
func assertf(cond bool, format string, args ...interface{}) {
	if cond {
		return
	}
	panic(errors.Wrap(ErrInvariant, fmt.Sprintf(format, args...)))
}
