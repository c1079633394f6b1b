package broadcast

import (
	"github.com/drpcorg/ripple/ripple_errors"
	"github.com/drpcorg/ripple/utils"
)

type UpdateKind uint8

const (
	BeginTransaction UpdateKind = iota + 1
	Change
	EndTransaction
)

func (k UpdateKind) String() string {
	switch k {
	case BeginTransaction:
		return "begin"
	case Change:
		return "change"
	case EndTransaction:
		return "end"
	default:
		return "invalid"
	}
}

// Update is one item of a transactional stream. Change is set for Change
// updates only.
type Update[C any] struct {
	Kind   UpdateKind
	Change C
}

type emptier interface {
	IsEmpty() bool
}

// Coordinator collects the changes made inside a transaction and publishes
// them as a single begin, change, end triple when the outermost transaction
// ends. Nested transactions are invisible to subscribers. A merged change with
// an IsEmpty method reporting true is not published.
type Coordinator[C any] struct {
	// Log receives debug traces of flushes; nil discards them.
	Log utils.Logger

	merge      func(a, b C) C
	updates    Broadcaster[Update[C]]
	depth      int
	pending    C
	hasPending bool
}

// NewCoordinator uses merge to fold a change into the ones made before it in
// the same transaction.
func NewCoordinator[C any](merge func(a, b C) C) *Coordinator[C] {
	return &Coordinator[C]{merge: merge}
}

func (c *Coordinator[C]) Begin() {
	c.depth++
}

// End closes the innermost transaction. Closing the outermost one flushes
// the merged change, if any.
func (c *Coordinator[C]) End() {
	if c.depth == 0 {
		utils.LoggerOr(c.Log).Error("transaction: end without begin")
		ripple_errors.Fail(ripple_errors.ErrUnbalancedTx, "no open transaction")
	}
	c.depth--
	if c.depth > 0 || !c.hasPending {
		return
	}
	change := c.pending
	var zero C
	c.pending, c.hasPending = zero, false
	if e, ok := any(change).(emptier); ok && e.IsEmpty() {
		utils.LoggerOr(c.Log).Debug("transaction: changes cancelled out")
		return
	}
	TransactionCount.Inc()
	utils.LoggerOr(c.Log).Debug("transaction: flush", "subscribers", c.updates.Len())
	c.updates.SendAll(
		Update[C]{Kind: BeginTransaction},
		Update[C]{Kind: Change, Change: change},
		Update[C]{Kind: EndTransaction},
	)
}

// Send records a change. Outside a transaction it is its own transaction.
func (c *Coordinator[C]) Send(change C) {
	c.Begin()
	if c.hasPending {
		c.pending = c.merge(c.pending, change)
		MergedChangeCount.Inc()
	} else {
		c.pending, c.hasPending = change, true
	}
	c.End()
}

// WithTransaction runs f inside a transaction. The transaction is closed
// even if f panics.
func (c *Coordinator[C]) WithTransaction(f func()) {
	c.Begin()
	defer c.End()
	f()
}

// Depth is the number of open transactions.
func (c *Coordinator[C]) Depth() int {
	return c.depth
}

func (c *Coordinator[C]) Connect(sink Sink[Update[C]]) *Subscription {
	return c.updates.Connect(sink)
}

// Changes is the stream of merged changes without the brackets.
func (c *Coordinator[C]) Changes() Source[C] {
	return Changes[C](c)
}
