package delta

import (
	"strings"

	"github.com/drpcorg/ripple/ripple_errors"
)

// ChangeSet is a batch of modifications against a collection of InitialCount
// elements, sorted by original index with non-overlapping input ranges.
// The zero value is the empty change of an empty collection.
type ChangeSet[T any] struct {
	initialCount int
	mods         []Modification[T]
}

// Empty is the change that leaves a collection of count elements alone.
func Empty[T any](count int) ChangeSet[T] {
	ripple_errors.Check(count >= 0, ripple_errors.ErrIndexOutOfRange, "count %d", count)
	return ChangeSet[T]{initialCount: count}
}

// NewChangeSet assembles modifications made against the same collection of
// count elements. They must be sorted, their input ranges may touch but not
// overlap; touching edits stay separate. Zero-value modifications are skipped.
func NewChangeSet[T any](count int, mods ...Modification[T]) ChangeSet[T] {
	c := Empty[T](count)
	prev := 0
	for _, m := range mods {
		if len(m.Removed) == 0 && len(m.Inserted) == 0 {
			continue
		}
		start, end := m.InputRange()
		ripple_errors.Check(start >= prev, ripple_errors.ErrUnorderedChange,
			"modification at %d after one ending at %d", start, prev)
		ripple_errors.Check(end <= count, ripple_errors.ErrIndexOutOfRange,
			"range %d..<%d of %d elements", start, end, count)
		c.mods = append(c.mods, Modification[T]{Index: m.Index, Removed: own(m.Removed), Inserted: own(m.Inserted)})
		prev = end
	}
	return c
}

// FromModification is the change made of the single edit m.
func FromModification[T any](count int, m Modification[T]) ChangeSet[T] {
	return NewChangeSet(count, m)
}

func (c ChangeSet[T]) InitialCount() int {
	return c.initialCount
}

func (c ChangeSet[T]) FinalCount() int {
	return c.initialCount + c.DeltaCount()
}

// DeltaCount is the net number of elements the change adds.
func (c ChangeSet[T]) DeltaCount() (d int) {
	for _, m := range c.mods {
		d += m.DeltaCount()
	}
	return
}

func (c ChangeSet[T]) IsEmpty() bool {
	return len(c.mods) == 0
}

// Modifications returns the batch in original index order. Callers must not
// modify the returned slice.
func (c ChangeSet[T]) Modifications() []Modification[T] {
	return c.mods
}

// Merged is Merge(c, next).
func (c ChangeSet[T]) Merged(next ChangeSet[T]) ChangeSet[T] {
	return Merge(c, next)
}

// Apply replays c on s, which must hold c.InitialCount() elements, and
// returns the edited slice. s is edited in place where capacity allows.
func Apply[T any](c ChangeSet[T], s []T) []T {
	ripple_errors.Check(len(s) == c.initialCount, ripple_errors.ErrCountMismatch,
		"change of %d elements applied to %d", c.initialCount, len(s))
	shift := 0
	for _, m := range c.mods {
		s = m.shifted(shift).Apply(s)
		shift += m.DeltaCount()
	}
	return s
}

// Map transforms every removed and inserted element; ranges and counts stay.
func Map[T, U any](c ChangeSet[T], f func(T) U) ChangeSet[U] {
	out := ChangeSet[U]{initialCount: c.initialCount}
	if len(c.mods) > 0 {
		out.mods = make([]Modification[U], len(c.mods))
		for i, m := range c.mods {
			out.mods[i] = MapModification(m, f)
		}
	}
	return out
}

func (c ChangeSet[T]) String() string {
	b := strings.Builder{}
	b.WriteString("{")
	for i, m := range c.mods {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.String())
	}
	b.WriteString("}")
	return b.String()
}
