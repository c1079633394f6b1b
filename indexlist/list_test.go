package indexlist

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/drpcorg/ripple/ripple_errors"
	"github.com/stretchr/testify/assert"
)

type item struct {
	Link
	id int
}

func items(n int) []*item {
	out := make([]*item, n)
	for i := range out {
		out[i] = &item{id: i}
	}
	return out
}

func ids(s []*item) []int {
	out := make([]int, len(s))
	for i, it := range s {
		out[i] = it.id
	}
	return out
}

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

func TestList_Basic(t *testing.T) {
	l := New[*item](5)
	all := items(40)
	for _, it := range all {
		l.Append(it)
	}
	assert.NoError(t, l.Check())
	assert.Equal(t, 40, l.Len())
	for i, it := range all {
		assert.Equal(t, it, l.Get(i))
		assert.Equal(t, i, l.IndexOf(it))
	}
	assert.Equal(t, ids(all), ids(l.Values()))

	var got []int
	l.ForEach(3, 17, func(it *item) { got = append(got, it.id) })
	assert.Equal(t, ids(all[3:17]), got)

	for i := range l.Range(10, 30) {
		if i == 12 {
			break
		}
	}
}

func TestList_SetAndRemove(t *testing.T) {
	l := New[*item](3)
	all := items(10)
	for _, it := range all {
		l.Append(it)
	}
	other := &item{id: 100}
	old := l.Set(4, other)
	assert.Same(t, all[4], old)
	assert.False(t, l.Contains(old))
	assert.Equal(t, 4, l.IndexOf(other))
	assert.Same(t, other, l.Set(4, other))

	removed := l.Remove(0)
	assert.Same(t, all[0], removed)
	assert.False(t, l.Contains(removed))
	assert.Equal(t, 3, l.IndexOf(other))
	assert.NoError(t, l.Check())

	panicsWith(t, ripple_errors.ErrForeignElement, func() { l.IndexOf(removed) })
	panicsWith(t, ripple_errors.ErrElementInUse, func() { l.Insert(0, other) })
	panicsWith(t, ripple_errors.ErrIndexOutOfRange, func() { l.Get(9) })
	panicsWith(t, ripple_errors.ErrIndexOutOfRange, func() { l.Insert(10, &item{}) })
	panicsWith(t, ripple_errors.ErrBadOrder, func() { New[*item](2) })

	// reinsertion of a removed element is fine
	l.Insert(0, removed)
	assert.Equal(t, 0, l.IndexOf(removed))
}

func TestList_ForeignElement(t *testing.T) {
	a, b := New[*item](4), New[*item](4)
	for _, it := range items(20) {
		a.Append(it)
	}
	x := a.Get(7)
	assert.False(t, b.Contains(x))
	assert.True(t, a.Contains(x))
	b.Append(&item{})
	panicsWith(t, ripple_errors.ErrForeignElement, func() { b.IndexOf(x) })
}

func TestList_Clear(t *testing.T) {
	l := New[*item](4)
	all := items(30)
	for _, it := range all {
		l.Append(it)
	}
	l.Clear()
	assert.Equal(t, 0, l.Len())
	for _, it := range all {
		assert.False(t, l.Contains(it))
	}
	l.Append(all[0])
	assert.Equal(t, 0, l.IndexOf(all[0]))
}

func TestList_RandomOps(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	for _, order := range []int{3, 4, 5, 8} {
		l := New[*item](order)
		var model []*item
		next := 0
		for step := 0; step < 3000; step++ {
			switch op := r.IntN(10); {
			case op < 4 && len(model) < 100:
				i := r.IntN(len(model) + 1)
				it := &item{id: next}
				next++
				l.Insert(i, it)
				model = slices.Insert(model, i, it)
			case op < 6 && len(model) < 100:
				it := &item{id: next}
				next++
				l.Append(it)
				model = append(model, it)
			case op < 9 && len(model) > 0:
				i := r.IntN(len(model))
				assert.Same(t, model[i], l.Remove(i))
				model = slices.Delete(model, i, i+1)
			case len(model) > 0:
				i := r.IntN(len(model))
				it := &item{id: next}
				next++
				l.Set(i, it)
				model[i] = it
			}

			if !assert.NoError(t, l.Check(), "order %d step %d", order, step) {
				return
			}
			assert.Equal(t, len(model), l.Len())
			for i, it := range model {
				if !assert.Equal(t, i, l.IndexOf(it), "order %d step %d", order, step) {
					return
				}
			}
			a := r.IntN(len(model) + 1)
			b := a + r.IntN(len(model)-a+1)
			var got []*item
			l.ForEach(a, b, func(it *item) { got = append(got, it) })
			assert.Equal(t, ids(model[a:b]), ids(got))
		}
	}
}
