// Package broadcast delivers values from one producer to many consumers on a
// single logical thread, and brackets collection changes into transactions.
//
// Delivery is reentrant-safe: a consumer may send, connect or disconnect from
// inside its own callback. Values sent while a round is in progress are queued
// and delivered, to every consumer, once that round completes, so consumers
// observe sends in issue order and never nested.
package broadcast

import (
	"slices"

	"github.com/drpcorg/ripple/utils"
)

// Sink consumes delivered values.
type Sink[T any] func(T)

// Source is anything a Sink can be connected to.
type Source[T any] interface {
	Connect(sink Sink[T]) *Subscription
}

// SourceFunc adapts a connect function to Source.
type SourceFunc[T any] func(Sink[T]) *Subscription

func (f SourceFunc[T]) Connect(sink Sink[T]) *Subscription {
	return f(sink)
}

type connection[T any] struct {
	sink Sink[T]
	sub  *Subscription
}

// Broadcaster fans values out to its subscribers in registration order.
// It holds every subscription it hands out until that subscription is
// disconnected. The zero value is ready to use. A Broadcaster is not safe for concurrent
// use; reentrant calls from its own sinks are fine.
type Broadcaster[T any] struct {
	// Log receives debug traces of queued sends; nil discards them.
	Log utils.Logger

	// copy-on-write: a round iterates the slice it started with
	conns       []*connection[T]
	pending     utils.Queue[T]
	dispatching bool
}

func (b *Broadcaster[T]) Connect(sink Sink[T]) *Subscription {
	c := &connection[T]{sink: sink}
	c.sub = NewSubscription(func() { b.remove(c) })
	b.conns = append(slices.Clip(b.conns), c)
	return c.sub
}

func (b *Broadcaster[T]) remove(c *connection[T]) {
	b.conns = slices.DeleteFunc(slices.Clone(b.conns), func(o *connection[T]) bool { return o == c })
}

// Len is the number of connected subscribers.
func (b *Broadcaster[T]) Len() int {
	return len(b.conns)
}

func (b *Broadcaster[T]) IsConnected() bool {
	return b.Len() > 0
}

// Send delivers v to every subscriber, or queues it if a round is running.
func (b *Broadcaster[T]) Send(v T) {
	b.SendAll(v)
}

// SendAll queues values as one batch: no other send issued meanwhile can be
// delivered between them. Outside a round it then drains the queue.
func (b *Broadcaster[T]) SendAll(values ...T) {
	for _, v := range values {
		b.pending.Push(v)
	}
	if b.dispatching {
		SendCount.WithLabelValues("queued").Add(float64(len(values)))
		utils.LoggerOr(b.Log).Debug("broadcast: send queued behind the running round",
			"values", len(values), "pending", b.pending.Len())
		return
	}
	SendCount.WithLabelValues("direct").Add(float64(len(values)))
	b.dispatching = true
	defer func() {
		b.dispatching = false
		b.pending.Clear()
	}()
	for b.pending.Len() > 0 {
		v := b.pending.Pop()
		conns := b.conns
		for _, c := range conns {
			if c.sub.IsConnected() {
				c.sink(v)
			}
		}
	}
}
