package delta

import (
	"fmt"
	"testing"

	"github.com/drpcorg/ripple/ripple_errors"
	"github.com/stretchr/testify/assert"
)

func panicsWith(t *testing.T, target error, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if assert.True(t, ok, "expected a panic with an error, got %v", r) {
			assert.ErrorIs(t, err, target)
		}
	}()
	f()
}

func original(from, till int) (s []string) {
	for i := from; i < till; i++ {
		s = append(s, fmt.Sprintf("o%d", i))
	}
	return
}

func TestModification_Ranges(t *testing.T) {
	m := ReplaceRange(10, original(10, 20), []string{"a", "b", "c"})
	start, end := m.InputRange()
	assert.Equal(t, 10, start)
	assert.Equal(t, 20, end)
	start, end = m.OutputRange()
	assert.Equal(t, 10, start)
	assert.Equal(t, 13, end)
	assert.Equal(t, -7, m.DeltaCount())
	assert.Equal(t, "10..<20 → [a b c]", m.String())

	_, ok := NewModification[int](3, nil, []int{})
	assert.False(t, ok)
	panicsWith(t, ripple_errors.ErrEmptyEdit, func() { Insert[int](3) })
	panicsWith(t, ripple_errors.ErrIndexOutOfRange, func() { Insert(-1, 5) })
}

func TestModification_OwnsRuns(t *testing.T) {
	in := []int{1, 2}
	m := Insert(0, in...)
	in[0] = 7
	assert.Equal(t, []int{1, 2}, m.Inserted)
	assert.Nil(t, m.Removed)
}

func TestModification_Apply(t *testing.T) {
	s := []int{0, 1, 2, 3}
	s = Replace(1, 1, 9).Apply(s)
	assert.Equal(t, []int{0, 9, 2, 3}, s)
	s = Insert(4, 4, 5).Apply(s)
	assert.Equal(t, []int{0, 9, 2, 3, 4, 5}, s)
	s = Remove(0, 0, 9).Apply(s)
	assert.Equal(t, []int{2, 3, 4, 5}, s)

	panicsWith(t, ripple_errors.ErrRemovedMismatch, func() { Remove(0, 7).Apply([]int{1}) })
	panicsWith(t, ripple_errors.ErrIndexOutOfRange, func() { Remove(1, 1, 2).Apply([]int{0, 1}) })
}

func TestModification_IsIdentity(t *testing.T) {
	assert.True(t, ReplaceRange(2, []int{1, 2}, []int{1, 2}).IsIdentity())
	assert.False(t, ReplaceRange(2, []int{1, 2}, []int{2, 1}).IsIdentity())
	assert.False(t, Insert(2, 1).IsIdentity())

	type pair struct{ k, v []int }
	a, b := pair{[]int{1}, []int{2}}, pair{[]int{1}, []int{2}}
	assert.True(t, Replace(0, a, b).IsIdentity())
}

func TestModification_MergedFixtures(t *testing.T) {
	m := ReplaceRange(10, original(10, 20), []string{"a", "b", "c"})

	before := m.Merged(ReplaceRange(5, original(5, 10), []string{"1", "2"}))
	assert.Equal(t, DisjointBefore, before.Kind)
	assert.Equal(t, 5, before.Modification.Index)

	after := m.Merged(Insert(14, "1", "2"))
	assert.Equal(t, DisjointAfter, after.Kind)
	assert.Equal(t, 21, after.Modification.Index)
	assert.Equal(t, []string{"1", "2"}, after.Modification.Inserted)

	collapsed := m.Merged(ReplaceRange(11, []string{"b"}, []string{"1", "2"}))
	assert.Equal(t, CollapsedTo, collapsed.Kind)
	assert.Equal(t, "10..<20 → [a 1 2 c]", collapsed.Modification.String())
	assert.Equal(t, original(10, 20), collapsed.Modification.Removed)

	undone := m.Merged(ReplaceRange(10, []string{"a", "b", "c"}, original(10, 20)))
	assert.Equal(t, CollapsedToNothing, undone.Kind)
	assert.Equal(t, "collapsedToNothing", undone.Kind.String())
}

func TestModification_MergedEdges(t *testing.T) {
	// next reaches past both ends of m's output
	m := Replace(2, "x", "y")
	o := m.Merged(ReplaceRange(1, []string{"p", "y", "q"}, []string{"z"}))
	assert.Equal(t, CollapsedTo, o.Kind)
	assert.Equal(t, Modification[string]{Index: 1, Removed: []string{"p", "x", "q"}, Inserted: []string{"z"}}, o.Modification)

	// insertion right at the end of m's output composes
	o = m.Merged(Insert(3, "w"))
	assert.Equal(t, CollapsedTo, o.Kind)
	assert.Equal(t, []string{"y", "w"}, o.Modification.Inserted)

	// a pure removal followed by an insertion at the same place
	o = Remove(4, "a").Merged(Insert(4, "a"))
	assert.Equal(t, DisjointBefore, o.Kind)

	o = Insert(4, "a").Merged(Remove(4, "a"))
	assert.Equal(t, CollapsedToNothing, o.Kind)

	panicsWith(t, ripple_errors.ErrRemovedMismatch, func() {
		Insert(0, "a").Merged(Remove(0, "b"))
	})
}

func TestMapModification(t *testing.T) {
	m := ReplaceRange(1, []int{1, 2}, []int{3})
	s := MapModification(m, func(i int) string { return fmt.Sprint(i * 10) })
	assert.Equal(t, ReplaceRange(1, []string{"10", "20"}, []string{"30"}), s)
}
