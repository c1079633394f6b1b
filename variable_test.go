package ripple

import (
	"runtime"
	"testing"

	"github.com/drpcorg/ripple/broadcast"
	"github.com/stretchr/testify/assert"
)

func TestVariable_TransactionIsOneChange(t *testing.T) {
	v := NewVariable(Options{}, 1)
	var changes []ValueChange[int]
	var futures []int
	sc := v.Changes().Connect(func(c ValueChange[int]) { changes = append(changes, c) })
	sf := v.FutureValues().Connect(func(i int) { futures = append(futures, i) })
	defer sc.Disconnect()
	defer sf.Disconnect()

	v.WithTransaction(func() {
		v.Set(2)
		v.Set(3)
		assert.Equal(t, 3, v.Value())
	})
	assert.Equal(t, []ValueChange[int]{{Old: 1, New: 3}}, changes)
	assert.Equal(t, []int{3}, futures)

	runtime.GC()
	v.Update(func(i int) int { return i * 10 })
	assert.Equal(t, []ValueChange[int]{{Old: 1, New: 3}, {Old: 3, New: 30}}, changes)
	assert.Equal(t, []int{3, 30}, futures)
}

func TestVariable_Updates(t *testing.T) {
	v := NewVariable(Options{}, "a")
	var kinds []broadcast.UpdateKind
	s := v.Updates().Connect(func(u broadcast.Update[ValueChange[string]]) { kinds = append(kinds, u.Kind) })
	defer s.Disconnect()
	v.Set("b")
	assert.Equal(t, []broadcast.UpdateKind{broadcast.BeginTransaction, broadcast.Change, broadcast.EndTransaction}, kinds)
}

func TestVariable_ReentrantSet(t *testing.T) {
	v := NewVariable(Options{}, 0)
	var seen []int
	s := v.Values().Connect(func(i int) {
		seen = append(seen, i)
		if i > 0 && i < 3 {
			v.Set(i + 1)
		}
	})
	var second []int
	s2 := v.FutureValues().Connect(func(i int) { second = append(second, i) })
	v.Set(1)
	assert.Equal(t, []int{0, 1, 2, 3}, seen)
	assert.Equal(t, []int{1, 2, 3}, second)
	assert.Equal(t, 3, v.Value())

	s.Disconnect()
	s2.Disconnect()
	v.Set(4)
	assert.Equal(t, []int{0, 1, 2, 3}, seen)
	assert.Equal(t, []int{1, 2, 3}, second)
}
