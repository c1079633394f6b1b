package delta

import (
	"github.com/drpcorg/ripple/ripple_errors"
)

type MergeKind uint8

const (
	// DisjointBefore: the next edit lies before the first one's output,
	// possibly ending right where it starts. It keeps its index.
	DisjointBefore MergeKind = iota
	// DisjointAfter: the next edit starts past the first one's output.
	DisjointAfter
	// CollapsedToNothing: together the edits change nothing.
	CollapsedToNothing
	// CollapsedTo: the edits compose into the single Modification of the outcome.
	CollapsedTo
)

func (k MergeKind) String() string {
	switch k {
	case DisjointBefore:
		return "disjointBefore"
	case DisjointAfter:
		return "disjointAfter"
	case CollapsedToNothing:
		return "collapsedToNothing"
	case CollapsedTo:
		return "collapsedTo"
	default:
		return "invalid"
	}
}

// MergeOutcome is the result of Modification.Merged. Modification is the next
// edit in original coordinates for the disjoint kinds, the composed edit for
// CollapsedTo and empty for CollapsedToNothing.
type MergeOutcome[T any] struct {
	Kind         MergeKind
	Modification Modification[T]
}

// classify places next, expressed against the state after m, relative to m.
func classify[T any](m, next Modification[T]) MergeKind {
	start, end := m.OutputRange()
	nstart, nend := next.InputRange()
	if nend <= start {
		return DisjointBefore
	}
	if nstart > end {
		return DisjointAfter
	}
	return CollapsedTo
}

// Merged composes m with next, an edit of the collection as m left it.
// The overlapped part of next.Removed must be what m inserted there.
func (m Modification[T]) Merged(next Modification[T]) MergeOutcome[T] {
	switch classify(m, next) {
	case DisjointBefore:
		return MergeOutcome[T]{Kind: DisjointBefore, Modification: next}
	case DisjointAfter:
		return MergeOutcome[T]{Kind: DisjointAfter, Modification: next.shifted(-m.DeltaCount())}
	}
	start, end := m.OutputRange()
	nstart, nend := next.InputRange()
	for k := max(start, nstart); k < min(end, nend); k++ {
		if !Equal(next.Removed[k-nstart], m.Inserted[k-start]) {
			ripple_errors.Fail(ripple_errors.ErrRemovedMismatch,
				"index %d: %v was inserted, %v is removed", k, m.Inserted[k-start], next.Removed[k-nstart])
		}
	}
	// next.Removed sticking out on either side is original content
	var before, after []T
	if nstart < start {
		before = next.Removed[:start-nstart]
	}
	if nend > end {
		after = next.Removed[end-nstart:]
	}
	// m.Inserted sticking out on either side survives next
	var head, tail []T
	if nstart > start {
		head = m.Inserted[:nstart-start]
	}
	if nend < end {
		tail = m.Inserted[nend-start:]
	}
	merged := Modification[T]{
		Index:    min(start, nstart),
		Removed:  concat(before, m.Removed, after),
		Inserted: concat(head, next.Inserted, tail),
	}
	if merged.IsIdentity() {
		return MergeOutcome[T]{Kind: CollapsedToNothing}
	}
	return MergeOutcome[T]{Kind: CollapsedTo, Modification: merged}
}
