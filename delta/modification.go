// Package delta describes edits of ordered collections and composes them.
//
// A Modification replaces one contiguous run of a collection. A ChangeSet is a
// sorted batch of non-overlapping modifications against a collection of known
// length. Two change sets taken against successive states merge into one change
// set against the first state:
//
//	Apply(Merge(a, b), s) == Apply(b, Apply(a, s))
//
// Broken preconditions (mismatching removed runs, counts that do not chain,
// out-of-range indices) panic with a ripple_errors sentinel.
package delta

import (
	"fmt"
	"slices"

	"github.com/drpcorg/ripple/ripple_errors"
)

// Modification replaces Removed, found at Index of the pre-edit collection,
// with Inserted. Empty runs are always nil.
type Modification[T any] struct {
	Index    int
	Removed  []T
	Inserted []T
}

// NewModification copies both runs into a new Modification. An edit that
// neither removes nor inserts carries no information and is rejected (ok is false).
func NewModification[T any](index int, removed, inserted []T) (m Modification[T], ok bool) {
	ripple_errors.Check(index >= 0, ripple_errors.ErrIndexOutOfRange, "modification at %d", index)
	if len(removed) == 0 && len(inserted) == 0 {
		return m, false
	}
	return Modification[T]{Index: index, Removed: own(removed), Inserted: own(inserted)}, true
}

func mustModification[T any](index int, removed, inserted []T) Modification[T] {
	m, ok := NewModification(index, removed, inserted)
	ripple_errors.Check(ok, ripple_errors.ErrEmptyEdit, "edit at %d", index)
	return m
}

// Insert makes a pure insertion; elems must not be empty.
func Insert[T any](index int, elems ...T) Modification[T] {
	return mustModification(index, nil, elems)
}

// Remove makes a pure removal of elems found at index; elems must not be empty.
func Remove[T any](index int, elems ...T) Modification[T] {
	return mustModification(index, elems, nil)
}

// Replace swaps the single element old at index for with.
func Replace[T any](index int, old, with T) Modification[T] {
	return mustModification(index, []T{old}, []T{with})
}

// ReplaceRange is NewModification for runs known to be non-empty together.
func ReplaceRange[T any](index int, removed, inserted []T) Modification[T] {
	return mustModification(index, removed, inserted)
}

// InputRange is the replaced range of the pre-edit collection.
func (m Modification[T]) InputRange() (start, end int) {
	return m.Index, m.Index + len(m.Removed)
}

// OutputRange is the range the inserted run occupies after the edit.
func (m Modification[T]) OutputRange() (start, end int) {
	return m.Index, m.Index + len(m.Inserted)
}

func (m Modification[T]) DeltaCount() int {
	return len(m.Inserted) - len(m.Removed)
}

// IsIdentity is true when the edit puts back exactly what it takes out.
func (m Modification[T]) IsIdentity() bool {
	return sameElements(m.Removed, m.Inserted)
}

func (m Modification[T]) shifted(by int) Modification[T] {
	m.Index += by
	return m
}

// Apply performs the edit on s in place and returns the resulting slice.
func (m Modification[T]) Apply(s []T) []T {
	start, end := m.InputRange()
	ripple_errors.Check(end <= len(s), ripple_errors.ErrIndexOutOfRange,
		"range %d..<%d of %d elements", start, end, len(s))
	for k, e := range m.Removed {
		if !Equal(s[start+k], e) {
			ripple_errors.Fail(ripple_errors.ErrRemovedMismatch,
				"index %d: have %v, removing %v", start+k, s[start+k], e)
		}
	}
	return slices.Replace(s, start, end, m.Inserted...)
}

// MapModification transforms every element of both runs.
func MapModification[T, U any](m Modification[T], f func(T) U) Modification[U] {
	return Modification[U]{Index: m.Index, Removed: mapAll(m.Removed, f), Inserted: mapAll(m.Inserted, f)}
}

func (m Modification[T]) String() string {
	start, end := m.InputRange()
	return fmt.Sprintf("%d..<%d → %v", start, end, m.Inserted)
}

func mapAll[T, U any](s []T, f func(T) U) []U {
	if len(s) == 0 {
		return nil
	}
	out := make([]U, len(s))
	for i, e := range s {
		out[i] = f(e)
	}
	return out
}

func own[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return slices.Clone(s)
}

// concat joins runs into a fresh slice; nil when every run is empty.
func concat[T any](runs ...[]T) []T {
	n := 0
	for _, r := range runs {
		n += len(r)
	}
	if n == 0 {
		return nil
	}
	out := make([]T, 0, n)
	for _, r := range runs {
		out = append(out, r...)
	}
	return out
}
