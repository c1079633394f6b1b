package ripple

import (
	"github.com/drpcorg/ripple/broadcast"
)

// ValueChange is the change of a Variable from Old to New.
type ValueChange[T any] struct {
	Old T
	New T
}

// Merged keeps the first Old and the last New.
func (c ValueChange[T]) Merged(next ValueChange[T]) ValueChange[T] {
	return ValueChange[T]{Old: c.Old, New: next.New}
}

// Variable is an observable single value.
type Variable[T any] struct {
	value T
	tx    *broadcast.Coordinator[ValueChange[T]]
}

func NewVariable[T any](opts Options, value T) *Variable[T] {
	opts.SetDefaults()
	tx := broadcast.NewCoordinator(ValueChange[T].Merged)
	tx.Log = opts.Logger
	return &Variable[T]{value: value, tx: tx}
}

func (v *Variable[T]) Value() T {
	return v.value
}

func (v *Variable[T]) Set(value T) {
	old := v.value
	v.value = value
	v.tx.Send(ValueChange[T]{Old: old, New: value})
}

func (v *Variable[T]) Update(f func(T) T) {
	v.Set(f(v.value))
}

// WithTransaction runs f so that all the assignments it makes are observed
// as one change.
func (v *Variable[T]) WithTransaction(f func()) {
	v.tx.WithTransaction(f)
}

func (v *Variable[T]) Updates() broadcast.Source[broadcast.Update[ValueChange[T]]] {
	return v.tx
}

func (v *Variable[T]) Changes() broadcast.Source[ValueChange[T]] {
	return v.tx.Changes()
}

// FutureValues delivers every new value, never the current one.
func (v *Variable[T]) FutureValues() broadcast.Source[T] {
	return broadcast.MapSource(v.Changes(), func(c ValueChange[T]) T { return c.New })
}

// Values delivers the current value on connect, then every new one.
func (v *Variable[T]) Values() broadcast.Source[T] {
	return broadcast.SourceFunc[T](func(sink broadcast.Sink[T]) *broadcast.Subscription {
		s := v.FutureValues().Connect(sink)
		sink(v.value)
		return s
	})
}
