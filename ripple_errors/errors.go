// Provides common ripple error definitions.
//
// Nothing in ripple returns these as ordinary errors: they describe broken
// invariants or contract misuse and are raised as panics through Fail, wrapped
// with a stack trace, so a recovered value still matches with errors.Is.
package ripple_errors

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

var (
	ErrRemovedMismatch = errors.New("ripple: removed elements do not match the collection")
	ErrIndexOutOfRange = errors.New("ripple: index out of range")
	ErrCountMismatch   = errors.New("ripple: element counts do not chain")
	ErrUnorderedChange = errors.New("ripple: modifications overlap or are out of order")
	ErrEmptyEdit       = errors.New("ripple: modification neither removes nor inserts")
	ErrCorruptChange   = errors.New("ripple: change merge produced an inconsistent result")
	ErrReentrantCancel = errors.New("ripple: disconnect reentered from its own callbacks")
	ErrUnbalancedTx    = errors.New("ripple: transaction ended without a matching begin")
	ErrBadOrder        = errors.New("ripple: list order must be at least 3")
	ErrForeignElement  = errors.New("ripple: element does not belong to this list")
	ErrElementInUse    = errors.New("ripple: element already belongs to a list")
	ErrCorruptTree     = errors.New("ripple: order-statistics tree invariant broken")
)

// Fail panics with err annotated by the formatted message.
func Fail(err error, format string, args ...any) {
	panic(pkgerrors.Wrapf(err, format, args...))
}

// Check fails with err unless cond holds.
func Check(cond bool, err error, format string, args ...any) {
	if !cond {
		Fail(err, format, args...)
	}
}

// Corrupt builds (without panicking) a tree or change verification error.
func Corrupt(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}
