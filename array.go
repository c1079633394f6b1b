package ripple

import (
	"github.com/drpcorg/ripple/broadcast"
	"github.com/drpcorg/ripple/delta"
	"github.com/drpcorg/ripple/indexlist"
	"github.com/drpcorg/ripple/ripple_errors"
	"github.com/drpcorg/ripple/utils"
)

type cell[T any] struct {
	indexlist.Link
	value T
}

// Array is an observable ordered collection. Each mutation is published as a
// delta.ChangeSet against the array as it was before the mutation.
type Array[T any] struct {
	cells *indexlist.List[*cell[T]]
	tx    *broadcast.Coordinator[delta.ChangeSet[T]]
	log   utils.Logger
}

func NewArray[T any](opts Options, values ...T) *Array[T] {
	opts.SetDefaults()
	a := &Array[T]{
		cells: indexlist.New[*cell[T]](opts.Order),
		tx:    broadcast.NewCoordinator(delta.Merge[T]),
		log:   opts.Logger,
	}
	a.tx.Log = opts.Logger
	for _, v := range values {
		a.cells.Append(&cell[T]{value: v})
	}
	return a
}

func (a *Array[T]) Len() int {
	return a.cells.Len()
}

func (a *Array[T]) At(i int) T {
	return a.cells.Get(i).value
}

func (a *Array[T]) Values() []T {
	return a.Slice(0, a.Len())
}

func (a *Array[T]) Slice(from, to int) []T {
	out := make([]T, 0, to-from)
	a.cells.ForEach(from, to, func(c *cell[T]) {
		out = append(out, c.value)
	})
	return out
}

// Set replaces the value at i. The position keeps its Item.
func (a *Array[T]) Set(i int, value T) {
	c := a.cells.Get(i)
	old := c.value
	c.value = value
	a.tx.Send(delta.FromModification(a.Len(), delta.Replace(i, old, value)))
}

func (a *Array[T]) Insert(i int, values ...T) {
	a.ReplaceRange(i, i, values...)
}

func (a *Array[T]) Append(values ...T) {
	a.Insert(a.Len(), values...)
}

func (a *Array[T]) Remove(i int) T {
	v := a.At(i)
	a.RemoveRange(i, i+1)
	return v
}

func (a *Array[T]) RemoveRange(from, to int) {
	a.ReplaceRange(from, to)
}

// ReplaceRange puts values in place of from..<to.
func (a *Array[T]) ReplaceRange(from, to int, values ...T) {
	ripple_errors.Check(0 <= from && from <= to && to <= a.Len(), ripple_errors.ErrIndexOutOfRange,
		"range %d..<%d of %d elements", from, to, a.Len())
	m, ok := delta.NewModification(from, a.Slice(from, to), values)
	if !ok {
		return
	}
	count := a.Len()
	a.splice(m)
	a.tx.Send(delta.FromModification(count, m))
}

// Apply performs a change made against the current contents and publishes
// it as is. A change whose removed runs do not match the contents panics
// with ErrRemovedMismatch and leaves the array untouched.
func (a *Array[T]) Apply(change delta.ChangeSet[T]) {
	ripple_errors.Check(change.InitialCount() == a.Len(), ripple_errors.ErrCountMismatch,
		"change of %d elements applied to %d", change.InitialCount(), a.Len())
	if change.IsEmpty() {
		return
	}
	for _, m := range change.Modifications() {
		a.checkRemoved(m)
	}
	shift := 0
	for _, m := range change.Modifications() {
		m.Index += shift
		a.splice(m)
		shift += m.DeltaCount()
	}
	a.log.Debug("array: applied change", "modifications", len(change.Modifications()), "delta", change.DeltaCount())
	a.tx.Send(change)
}

// checkRemoved compares the run m removes with the current contents.
func (a *Array[T]) checkRemoved(m delta.Modification[T]) {
	start, end := m.InputRange()
	ripple_errors.Check(start >= 0 && end <= a.Len(), ripple_errors.ErrRemovedMismatch,
		"removing %d..<%d of %d elements", start, end, a.Len())
	for k, have := range a.Slice(start, end) {
		if want := m.Removed[k]; !delta.Equal(have, want) {
			ripple_errors.Fail(ripple_errors.ErrRemovedMismatch,
				"index %d: have %v, removing %v", start+k, have, want)
		}
	}
}

// splice edits storage only; the removed run is checked beforehand.
func (a *Array[T]) splice(m delta.Modification[T]) {
	for range m.Removed {
		a.cells.Remove(m.Index)
	}
	for k, v := range m.Inserted {
		a.cells.Insert(m.Index+k, &cell[T]{value: v})
	}
}

// Clear removes every value as one change and unlinks them from storage.
func (a *Array[T]) Clear() {
	if a.Len() == 0 {
		return
	}
	m := delta.Remove(0, a.Values()...)
	count := a.Len()
	a.cells.Clear()
	a.tx.Send(delta.FromModification(count, m))
}

func (a *Array[T]) BeginTransaction() {
	a.tx.Begin()
}

func (a *Array[T]) EndTransaction() {
	a.tx.End()
}

func (a *Array[T]) WithTransaction(f func()) {
	a.tx.WithTransaction(f)
}

func (a *Array[T]) Updates() broadcast.Source[broadcast.Update[delta.ChangeSet[T]]] {
	return a.tx
}

func (a *Array[T]) Changes() broadcast.Source[delta.ChangeSet[T]] {
	return a.tx.Changes()
}

// Item is a handle on one stored value that follows it as the array changes.
//
// An Item keeps its Array, and with it every stored value, reachable. The
// cell of a removed value no longer links into the array's storage.
type Item[T any] struct {
	array *Array[T]
	cell  *cell[T]
}

func (a *Array[T]) Item(i int) *Item[T] {
	return &Item[T]{array: a, cell: a.cells.Get(i)}
}

// Index is the current position of the value, or -1 once it was removed.
func (it *Item[T]) Index() int {
	if !it.array.cells.Contains(it.cell) {
		return -1
	}
	return it.array.cells.IndexOf(it.cell)
}

// Value is the last value held, even after removal.
func (it *Item[T]) Value() T {
	return it.cell.value
}
